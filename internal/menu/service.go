package menu

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Storage uploads objects and returns their public URL.
type Storage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

type Service struct {
	repo       Repository
	storage    Storage
	taxPercent float64
}

func NewService(repo Repository, storage Storage, taxPercent float64) *Service {
	return &Service{repo: repo, storage: storage, taxPercent: taxPercent}
}

// --------------------------------------------------
// Customer menu
// --------------------------------------------------

// ListDishes loads the whole menu and applies the filters to it.
func (s *Service) ListDishes(ctx context.Context, filters FilterState) ([]Dish, error) {
	dishes, err := s.repo.ListDishes(ctx)
	if err != nil {
		return nil, err
	}
	return Evaluate(dishes, filters), nil
}

func (s *Service) GetDish(ctx context.Context, id string) (*Dish, error) {
	return s.repo.GetDish(ctx, id)
}

func (s *Service) ListCategories(ctx context.Context) ([]Category, error) {
	return s.repo.ListCategories(ctx)
}

// QuoteCart prices a cart against the current menu.
func (s *Service) QuoteCart(ctx context.Context, lines []CartLine) (*CartQuote, error) {
	dishes, err := s.repo.ListDishes(ctx)
	if err != nil {
		return nil, err
	}
	return Quote(dishes, lines, s.taxPercent)
}

// --------------------------------------------------
// CMS
// --------------------------------------------------

func (s *Service) CreateDish(ctx context.Context, dish *Dish) error {
	if dish.ID == "" {
		dish.ID = Slugify(dish.Name)
	}
	if err := validateDish(dish); err != nil {
		return err
	}
	if err := s.repo.CreateDish(ctx, dish); err != nil {
		return err
	}

	log.Printf("[MENU] dish created id=%s category=%s", dish.ID, dish.CategoryID)
	return nil
}

// UpdateDish replaces the dish stored under id. The image is managed by
// UploadDishImage and is kept.
func (s *Service) UpdateDish(ctx context.Context, id string, dish *Dish) error {
	dish.ID = id
	if err := validateDish(dish); err != nil {
		return err
	}
	if err := s.repo.UpdateDish(ctx, dish); err != nil {
		return err
	}

	log.Printf("[MENU] dish updated id=%s", id)
	return nil
}

func (s *Service) DeleteDish(ctx context.Context, id string) error {
	if err := s.repo.DeleteDish(ctx, id); err != nil {
		return err
	}

	log.Printf("[MENU] dish deleted id=%s", id)
	return nil
}

func (s *Service) UpsertCategory(ctx context.Context, category *Category) error {
	if err := validateCategory(category); err != nil {
		return err
	}
	return s.repo.UpsertCategory(ctx, category)
}

// UploadDishImage stores the image under dishes/<id>/<uuid><ext> and
// records its public URL on the dish.
func (s *Service) UploadDishImage(
	ctx context.Context,
	id string,
	file io.Reader,
	filename string,
) (string, error) {
	if s.storage == nil {
		return "", ErrStorageDisabled
	}

	contentType, err := ValidateImageExtension(filename)
	if err != nil {
		return "", err
	}

	if _, err := s.repo.GetDish(ctx, id); err != nil {
		return "", err
	}

	key := fmt.Sprintf(
		"dishes/%s/%s%s",
		id,
		uuid.New().String(),
		strings.ToLower(filepath.Ext(filename)),
	)

	url, err := s.storage.Upload(ctx, key, file, contentType)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}

	if err := s.repo.SetDishImage(ctx, id, url); err != nil {
		return "", err
	}

	log.Printf("[MENU] image stored id=%s key=%s", id, key)
	return url, nil
}
