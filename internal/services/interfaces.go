package services

import (
	"context"

	domain "github.com/launchpage/api/internal/domain"
)

// SiteService exposes typed CRUD over the three site content collections.
type SiteService interface {
	// GetProfile loads the singleton site profile. A missing profile is a
	// valid state reported through the boolean.
	GetProfile(ctx context.Context) (domain.SiteProfile, bool, error)
	// SaveProfile upserts the singleton site profile, creating it on first save.
	SaveProfile(ctx context.Context, profile domain.SiteProfile) error

	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (domain.Product, bool, error)
	AddProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	UpdateProduct(ctx context.Context, product domain.Product) error
	RemoveProduct(ctx context.Context, id string) error

	ListTestimonials(ctx context.Context) ([]domain.Testimonial, error)
	GetTestimonial(ctx context.Context, id string) (domain.Testimonial, bool, error)
	AddTestimonial(ctx context.Context, testimonial domain.Testimonial) (domain.Testimonial, error)
	UpdateTestimonial(ctx context.Context, testimonial domain.Testimonial) error
	RemoveTestimonial(ctx context.Context, id string) error
}

// ImportService seeds site content from a bulk JSON document.
type ImportService interface {
	// Import writes the profile, products, and testimonials in input order.
	// The sequence is not transactional: documents written before a failure
	// stay committed, and the returned error reports where the run stopped.
	Import(ctx context.Context, data domain.SiteImport) (ImportSummary, error)
	// ImportJSON parses the bulk document and delegates to Import.
	ImportJSON(ctx context.Context, raw []byte) (ImportSummary, error)
}

// ImportSummary counts the writes performed by one import run.
type ImportSummary struct {
	ProfileSaved bool
	Products     int
	Testimonials int
}
