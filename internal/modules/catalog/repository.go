package catalog

import "context"

// Repository is the remote product-record store.
type Repository interface {
	List(ctx context.Context) ([]*Product, error)
	Get(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, req CreateRequest) (*Product, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Product, error)
	Delete(ctx context.Context, id string) error
	Generate(ctx context.Context, brief Brief) (string, error)
	Health(ctx context.Context) (*HealthStatus, error)
}

// CreateRequest is the POST /api/products body. Description is omitted when
// AutoGenerate is set so the server writes the copy.
type CreateRequest struct {
	Brief
	Description  *string `json:"description,omitempty"`
	AutoGenerate bool    `json:"auto_generate"`
}

// UpdateRequest is the PUT /api/products/{id} body. Optional fields have no
// omitempty: an absent value is sent as null and clears the stored field.
type UpdateRequest struct {
	Name                  string   `json:"name"`
	Category              *string  `json:"category"`
	Brand                 *string  `json:"brand"`
	Tagline               *string  `json:"tagline"`
	Features              []string `json:"features"`
	SEOKeywords           []string `json:"seo_keywords"`
	Tone                  *string  `json:"tone"`
	Audience              *string  `json:"audience"`
	Language              *string  `json:"language"`
	AdditionalNotes       *string  `json:"additional_notes"`
	Length                Length   `json:"length"`
	Description           *string  `json:"description,omitempty"`
	RegenerateDescription bool     `json:"regenerate_description"`
}

// HealthStatus is the GET /health body.
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
