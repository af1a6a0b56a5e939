package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"portsanantonio/internal/github"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidContent   = errors.New("invalid content")
	ErrUnknownLegalType = errors.New("unknown legal page type")
)

var validate = validator.New()

// Publisher mirrors saved documents into a repository. *github.Client
// satisfies it.
type Publisher interface {
	CommitFile(ctx context.Context, path string, content []byte, message string) (*github.CommitResult, error)
}

type Service struct {
	repo      Repository
	publisher Publisher
}

// NewService accepts a nil publisher when GitHub mirroring is off.
func NewService(repo Repository, publisher Publisher) *Service {
	return &Service{repo: repo, publisher: publisher}
}

// --------------------------------------------------
// Footer
// --------------------------------------------------

func (s *Service) GetFooter(ctx context.Context) (*Footer, error) {
	var footer Footer
	doc, err := s.load(ctx, footerDocument, &footer)
	if err != nil {
		return nil, err
	}

	footer.UpdatedAt = doc.UpdatedAt
	footer.UpdatedBy = doc.UpdatedBy
	return &footer, nil
}

func (s *Service) SaveFooter(ctx context.Context, footer *Footer, editor string) error {
	if err := validate.Struct(footer); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidContent, err)
	}

	footer.UpdatedBy = editor
	doc, err := s.save(ctx, footerDocument, footer, editor)
	if err != nil {
		return err
	}
	footer.UpdatedAt = doc.UpdatedAt
	return nil
}

// --------------------------------------------------
// Legal pages
// --------------------------------------------------

func (s *Service) GetLegal(ctx context.Context, t LegalType) (*LegalPage, error) {
	var page LegalPage
	doc, err := s.load(ctx, legalDocument(t), &page)
	if err != nil {
		return nil, err
	}

	page.Type = t
	page.UpdatedAt = doc.UpdatedAt
	page.UpdatedBy = doc.UpdatedBy
	return &page, nil
}

func (s *Service) SaveLegal(ctx context.Context, t LegalType, page *LegalPage, editor string) error {
	if !legalTypes[t] {
		return ErrUnknownLegalType
	}
	if err := validate.Struct(page); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidContent, err)
	}

	page.Type = t
	page.UpdatedBy = editor
	doc, err := s.save(ctx, legalDocument(t), page, editor)
	if err != nil {
		return err
	}
	page.UpdatedAt = doc.UpdatedAt
	return nil
}

func (s *Service) load(ctx context.Context, name string, dst any) (*Document, error) {
	doc, err := s.repo.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(doc.Body, dst); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return doc, nil
}

func (s *Service) save(ctx context.Context, name string, v any, editor string) (*Document, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	doc := &Document{Name: name, Body: body, UpdatedBy: editor}
	if err := s.repo.Put(ctx, doc); err != nil {
		return nil, err
	}

	log.Printf("[CONTENT] %s saved by %s", name, editor)
	s.publish(ctx, name, body, editor)
	return doc, nil
}

// publish mirrors the document as content/<name>.json. Failures are only
// logged; the database is the source of truth.
func (s *Service) publish(ctx context.Context, name string, body []byte, editor string) {
	if s.publisher == nil {
		return
	}

	pretty, err := json.MarshalIndent(json.RawMessage(body), "", "  ")
	if err != nil {
		pretty = body
	}

	path := github.ContentRoot + name + ".json"
	message := fmt.Sprintf("Update %s", name)
	if editor != "" {
		message += " (by " + editor + ")"
	}

	if _, err := s.publisher.CommitFile(ctx, path, append(pretty, '\n'), message); err != nil {
		log.Printf("[CONTENT] publish %s failed: %v", path, err)
	}
}
