package services

import (
	"context"
	"errors"
	"testing"

	domain "github.com/launchpage/api/internal/domain"
)

type stubSiteService struct {
	SiteService

	saveProfileFn    func(ctx context.Context, profile domain.SiteProfile) error
	addProductFn     func(ctx context.Context, product domain.Product) (domain.Product, error)
	addTestimonialFn func(ctx context.Context, testimonial domain.Testimonial) (domain.Testimonial, error)
}

func (s *stubSiteService) SaveProfile(ctx context.Context, profile domain.SiteProfile) error {
	if s.saveProfileFn == nil {
		return errors.New("unexpected SaveProfile")
	}
	return s.saveProfileFn(ctx, profile)
}

func (s *stubSiteService) AddProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	if s.addProductFn == nil {
		return domain.Product{}, errors.New("unexpected AddProduct")
	}
	return s.addProductFn(ctx, product)
}

func (s *stubSiteService) AddTestimonial(ctx context.Context, testimonial domain.Testimonial) (domain.Testimonial, error) {
	if s.addTestimonialFn == nil {
		return domain.Testimonial{}, errors.New("unexpected AddTestimonial")
	}
	return s.addTestimonialFn(ctx, testimonial)
}

func newTestImportService(t *testing.T, site SiteService) ImportService {
	t.Helper()
	svc, err := NewImportService(ImportServiceDeps{Site: site})
	if err != nil {
		t.Fatalf("NewImportService: %v", err)
	}
	return svc
}

func TestImportWritesInOrder(t *testing.T) {
	var order []string
	site := &stubSiteService{
		saveProfileFn: func(_ context.Context, profile domain.SiteProfile) error {
			order = append(order, "profile:"+profile.Name)
			return nil
		},
		addProductFn: func(_ context.Context, product domain.Product) (domain.Product, error) {
			order = append(order, "product:"+product.Name)
			product.ID = "p1"
			return product, nil
		},
		addTestimonialFn: func(_ context.Context, testimonial domain.Testimonial) (domain.Testimonial, error) {
			order = append(order, "testimonial:"+testimonial.Name)
			testimonial.ID = "t1"
			return testimonial, nil
		},
	}
	svc := newTestImportService(t, site)

	summary, err := svc.Import(context.Background(), domain.SiteImport{
		User:     &domain.SiteProfile{Name: "Soosana"},
		Products: []domain.Product{{Name: "A"}, {Name: "B"}},
	})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if !summary.ProfileSaved || summary.Products != 2 || summary.Testimonials != 0 {
		t.Fatalf("summary = %+v, want profile + 2 products", summary)
	}
	want := []string{"profile:Soosana", "product:A", "product:B"}
	if len(order) != len(want) {
		t.Fatalf("write order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("write order = %v, want %v", order, want)
		}
	}
}

func TestImportEmptyDocumentIsNoop(t *testing.T) {
	svc := newTestImportService(t, &stubSiteService{})

	summary, err := svc.Import(context.Background(), domain.SiteImport{})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if summary.ProfileSaved || summary.Products != 0 || summary.Testimonials != 0 {
		t.Fatalf("summary = %+v, want empty", summary)
	}
}

func TestImportStopsAtFailingProduct(t *testing.T) {
	storeErr := errors.New("firestore unavailable")
	site := &stubSiteService{
		saveProfileFn: func(context.Context, domain.SiteProfile) error { return nil },
		addProductFn: func(_ context.Context, product domain.Product) (domain.Product, error) {
			if product.Name == "B" {
				return domain.Product{}, storeErr
			}
			product.ID = "p1"
			return product, nil
		},
	}
	svc := newTestImportService(t, site)

	summary, err := svc.Import(context.Background(), domain.SiteImport{
		User:     &domain.SiteProfile{Name: "Soosana"},
		Products: []domain.Product{{Name: "A"}, {Name: "B"}, {Name: "C"}},
	})
	if err == nil {
		t.Fatal("Import succeeded, want failure on second product")
	}
	var importErr *ImportError
	if !errors.As(err, &importErr) {
		t.Fatalf("err = %T, want *ImportError", err)
	}
	if importErr.Stage != StageProducts || importErr.Index != 1 {
		t.Fatalf("failure at %s[%d], want %s[1]", importErr.Stage, importErr.Index, StageProducts)
	}
	if !errors.Is(err, storeErr) {
		t.Fatalf("err = %v, want wrapped store error", err)
	}
	if !summary.ProfileSaved || summary.Products != 1 {
		t.Fatalf("summary = %+v, want committed writes before the failure", summary)
	}
}

func TestImportProfileFailureReportsStage(t *testing.T) {
	site := &stubSiteService{
		saveProfileFn: func(context.Context, domain.SiteProfile) error {
			return errors.New("denied")
		},
	}
	svc := newTestImportService(t, site)

	_, err := svc.Import(context.Background(), domain.SiteImport{User: &domain.SiteProfile{Name: "x"}})
	var importErr *ImportError
	if !errors.As(err, &importErr) {
		t.Fatalf("err = %T, want *ImportError", err)
	}
	if importErr.Stage != StageProfile || importErr.Index != -1 {
		t.Fatalf("failure at %s[%d], want %s[-1]", importErr.Stage, importErr.Index, StageProfile)
	}
}

func TestImportJSON(t *testing.T) {
	site := &stubSiteService{
		saveProfileFn: func(_ context.Context, profile domain.SiteProfile) error {
			if profile.Brand != "Soosana" {
				t.Fatalf("brand = %q, want Soosana", profile.Brand)
			}
			return nil
		},
		addTestimonialFn: func(_ context.Context, testimonial domain.Testimonial) (domain.Testimonial, error) {
			testimonial.ID = "t1"
			return testimonial, nil
		},
	}
	svc := newTestImportService(t, site)

	raw := []byte(`{
		"user": {"brand": "Soosana", "name": "Soosana", "phone": "050-0000000"},
		"testimonials": [{"name": "Dana", "text": "great class"}]
	}`)
	summary, err := svc.ImportJSON(context.Background(), raw)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if !summary.ProfileSaved || summary.Testimonials != 1 {
		t.Fatalf("summary = %+v", summary)
	}
}

func TestImportJSONRejectsMalformedInput(t *testing.T) {
	svc := newTestImportService(t, &stubSiteService{})

	if _, err := svc.ImportJSON(context.Background(), []byte(`{"user":`)); err == nil {
		t.Fatal("ImportJSON accepted malformed input")
	}
}
