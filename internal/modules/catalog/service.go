package catalog

import (
	"context"
	"strings"
)

// Service is the product workflow used by the console and the CLI. It checks local
// preconditions before delegating to the Repository, so an invalid brief never
// reaches the network.
type Service interface {
	ListProducts(ctx context.Context) ([]*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	CreateProduct(ctx context.Context, brief Brief, description string, autoGenerate bool) (*Product, error)
	UpdateProduct(ctx context.Context, id string, brief Brief, description string, regenerate bool) (*Product, error)
	DeleteProduct(ctx context.Context, id string) error
	GenerateDescription(ctx context.Context, brief Brief) (string, error)
	Health(ctx context.Context) (*HealthStatus, error)
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) ListProducts(ctx context.Context) ([]*Product, error) {
	return s.repo.List(ctx)
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

func (s *service) CreateProduct(ctx context.Context, brief Brief, description string, autoGenerate bool) (*Product, error) {
	if err := validateBrief(&brief); err != nil {
		return nil, err
	}
	req := CreateRequest{Brief: brief, AutoGenerate: autoGenerate}
	if !autoGenerate {
		req.Description = &description
	}
	return s.repo.Create(ctx, req)
}

func (s *service) UpdateProduct(ctx context.Context, id string, brief Brief, description string, regenerate bool) (*Product, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	if err := validateBrief(&brief); err != nil {
		return nil, err
	}
	req := UpdateRequest{
		Name:                  brief.Name,
		Category:              brief.Category,
		Brand:                 brief.Brand,
		Tagline:               brief.Tagline,
		Features:              brief.Features,
		SEOKeywords:           brief.SEOKeywords,
		Tone:                  brief.Tone,
		Audience:              brief.Audience,
		Language:              brief.Language,
		AdditionalNotes:       brief.AdditionalNotes,
		Length:                brief.Length,
		RegenerateDescription: regenerate,
	}
	if !regenerate {
		req.Description = &description
	}
	return s.repo.Update(ctx, id, req)
}

func (s *service) DeleteProduct(ctx context.Context, id string) error {
	if err := requireID(id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) GenerateDescription(ctx context.Context, brief Brief) (string, error) {
	if err := validateBrief(&brief); err != nil {
		return "", err
	}
	return s.repo.Generate(ctx, brief)
}

func (s *service) Health(ctx context.Context) (*HealthStatus, error) {
	return s.repo.Health(ctx)
}

// validateBrief rejects a brief without a name and fills wire defaults in place.
func validateBrief(b *Brief) error {
	b.Name = strings.TrimSpace(b.Name)
	if b.Name == "" {
		return &ValidationError{Field: "name", Message: "a product name is required"}
	}
	if b.Features == nil {
		b.Features = []string{}
	}
	if b.SEOKeywords == nil {
		b.SEOKeywords = []string{}
	}
	b.Length = ParseLength(string(b.Length))
	return nil
}

func requireID(id string) error {
	if strings.TrimSpace(id) == "" {
		return &ValidationError{Field: "id", Message: "a product id is required"}
	}
	return nil
}
