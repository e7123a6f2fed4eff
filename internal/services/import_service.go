package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	domain "github.com/launchpage/api/internal/domain"
	"github.com/launchpage/api/internal/platform/requestctx"
)

// Import stages, in write order.
const (
	StageProfile      = "profile"
	StageProducts     = "products"
	StageTestimonials = "testimonials"
)

// ImportError reports where a bulk import stopped. Writes performed before
// the failing document stay committed.
type ImportError struct {
	// Stage is the collection being written when the run failed.
	Stage string
	// Index is the position within the stage's input slice, or -1 for the
	// singleton profile stage.
	Index int
	Err   error
}

func (e *ImportError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("import %s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("import %s[%d]: %v", e.Stage, e.Index, e.Err)
}

func (e *ImportError) Unwrap() error { return e.Err }

// ImportServiceDeps wires dependencies for the import service implementation.
type ImportServiceDeps struct {
	Site SiteService
}

type importService struct {
	site SiteService
}

// NewImportService constructs an ImportService that seeds content through
// the site service, so imported documents get the same sanitization and
// validation as interactive writes.
func NewImportService(deps ImportServiceDeps) (ImportService, error) {
	if deps.Site == nil {
		return nil, errors.New("import service: site service is required")
	}
	return &importService{site: deps.Site}, nil
}

func (s *importService) Import(ctx context.Context, data domain.SiteImport) (ImportSummary, error) {
	logger := requestctx.Logger(ctx)
	var summary ImportSummary

	if data.User != nil {
		if err := s.site.SaveProfile(ctx, *data.User); err != nil {
			return summary, &ImportError{Stage: StageProfile, Index: -1, Err: err}
		}
		summary.ProfileSaved = true
	}

	for i, product := range data.Products {
		if _, err := s.site.AddProduct(ctx, product); err != nil {
			return summary, &ImportError{Stage: StageProducts, Index: i, Err: err}
		}
		summary.Products++
	}

	for i, testimonial := range data.Testimonials {
		if _, err := s.site.AddTestimonial(ctx, testimonial); err != nil {
			return summary, &ImportError{Stage: StageTestimonials, Index: i, Err: err}
		}
		summary.Testimonials++
	}

	logger.Info("site import finished",
		zap.Bool("profile_saved", summary.ProfileSaved),
		zap.Int("products", summary.Products),
		zap.Int("testimonials", summary.Testimonials),
	)
	return summary, nil
}

func (s *importService) ImportJSON(ctx context.Context, raw []byte) (ImportSummary, error) {
	var data domain.SiteImport
	if err := json.Unmarshal(raw, &data); err != nil {
		return ImportSummary{}, fmt.Errorf("import: decode bulk document: %w", err)
	}
	return s.Import(ctx, data)
}
