package jobs

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var ErrInvalidPosting = errors.New("invalid job posting")

var validate = validator.New()

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListOpen returns active postings, newest first.
func (s *Service) ListOpen(ctx context.Context) ([]Posting, error) {
	return s.repo.List(ctx, true)
}

// GetOpen hides inactive postings from the public site.
func (s *Service) GetOpen(ctx context.Context, id string) (*Posting, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.Active {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *Service) ListAll(ctx context.Context) ([]Posting, error) {
	return s.repo.List(ctx, false)
}

func (s *Service) Create(ctx context.Context, p *Posting) error {
	if err := validatePosting(p); err != nil {
		return err
	}

	p.ID = uuid.New().String()
	if err := s.repo.Create(ctx, p); err != nil {
		return err
	}

	log.Printf("[JOBS] posting created id=%s title=%q", p.ID, p.Title)
	return nil
}

func (s *Service) Update(ctx context.Context, id string, p *Posting) error {
	if err := validatePosting(p); err != nil {
		return err
	}

	p.ID = id
	return s.repo.Update(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	log.Printf("[JOBS] posting deleted id=%s", id)
	return nil
}

func validatePosting(p *Posting) error {
	p.Title = strings.TrimSpace(p.Title)
	if p.Requirements == nil {
		p.Requirements = []string{}
	}

	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidPosting, err)
	}
	return nil
}
