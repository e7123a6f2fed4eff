package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	domain "github.com/launchpage/api/internal/domain"
	"github.com/launchpage/api/internal/repositories"
)

const (
	siteCollection        = "siteData"
	productCollection     = "products"
	testimonialCollection = "testimonials"

	// The profile lives under a fixed well-known id inside siteCollection
	// rather than a generated one.
	profileDocID = "user"
)

// ErrInvalidInput marks rejected caller arguments.
var ErrInvalidInput = errors.New("site service: invalid input")

// SiteServiceDeps wires dependencies for the site service implementation.
type SiteServiceDeps struct {
	Store repositories.DocumentStore
	// Policy sanitizes free-text fields before persistence; the rendered site
	// injects them into markup. Defaults to bluemonday's UGC policy.
	Policy *bluemonday.Policy
}

type siteService struct {
	store  repositories.DocumentStore
	policy *bluemonday.Policy
}

// NewSiteService constructs a SiteService backed by the provided document store.
func NewSiteService(deps SiteServiceDeps) (SiteService, error) {
	if deps.Store == nil {
		return nil, errors.New("site service: document store is required")
	}
	policy := deps.Policy
	if policy == nil {
		policy = bluemonday.UGCPolicy()
	}
	return &siteService{store: deps.Store, policy: policy}, nil
}

func (s *siteService) GetProfile(ctx context.Context) (domain.SiteProfile, bool, error) {
	record, ok, err := s.store.Get(ctx, siteCollection, profileDocID)
	if err != nil || !ok {
		return domain.SiteProfile{}, false, err
	}
	return profileFromRecord(record), true, nil
}

func (s *siteService) SaveProfile(ctx context.Context, profile domain.SiteProfile) error {
	profile = s.sanitizeProfile(profile)
	_, err := s.store.Create(ctx, siteCollection, recordFromProfile(profile), profileDocID)
	return err
}

func (s *siteService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	records, err := s.store.List(ctx, productCollection)
	if err != nil {
		return nil, err
	}
	products := make([]domain.Product, 0, len(records))
	for _, record := range records {
		products = append(products, productFromRecord(record))
	}
	return products, nil
}

func (s *siteService) GetProduct(ctx context.Context, id string) (domain.Product, bool, error) {
	record, ok, err := s.store.Get(ctx, productCollection, id)
	if err != nil || !ok {
		return domain.Product{}, false, err
	}
	return productFromRecord(record), true, nil
}

func (s *siteService) AddProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	if strings.TrimSpace(product.Name) == "" {
		return domain.Product{}, fmt.Errorf("%w: product name is required", ErrInvalidInput)
	}
	product = s.sanitizeProduct(product)

	record, err := s.store.Create(ctx, productCollection, recordFromProduct(product), "")
	if err != nil {
		return domain.Product{}, err
	}
	product.ID = record.ID()
	return product, nil
}

func (s *siteService) UpdateProduct(ctx context.Context, product domain.Product) error {
	if strings.TrimSpace(product.ID) == "" {
		return fmt.Errorf("%w: product id is required", ErrInvalidInput)
	}
	product = s.sanitizeProduct(product)
	return s.store.Update(ctx, productCollection, product.ID, recordFromProduct(product))
}

func (s *siteService) RemoveProduct(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: product id is required", ErrInvalidInput)
	}
	return s.store.Remove(ctx, productCollection, id)
}

func (s *siteService) ListTestimonials(ctx context.Context) ([]domain.Testimonial, error) {
	records, err := s.store.List(ctx, testimonialCollection)
	if err != nil {
		return nil, err
	}
	testimonials := make([]domain.Testimonial, 0, len(records))
	for _, record := range records {
		testimonials = append(testimonials, testimonialFromRecord(record))
	}
	return testimonials, nil
}

func (s *siteService) GetTestimonial(ctx context.Context, id string) (domain.Testimonial, bool, error) {
	record, ok, err := s.store.Get(ctx, testimonialCollection, id)
	if err != nil || !ok {
		return domain.Testimonial{}, false, err
	}
	return testimonialFromRecord(record), true, nil
}

func (s *siteService) AddTestimonial(ctx context.Context, testimonial domain.Testimonial) (domain.Testimonial, error) {
	if strings.TrimSpace(testimonial.Name) == "" {
		return domain.Testimonial{}, fmt.Errorf("%w: testimonial name is required", ErrInvalidInput)
	}
	testimonial = s.sanitizeTestimonial(testimonial)

	record, err := s.store.Create(ctx, testimonialCollection, recordFromTestimonial(testimonial), "")
	if err != nil {
		return domain.Testimonial{}, err
	}
	testimonial.ID = record.ID()
	return testimonial, nil
}

func (s *siteService) UpdateTestimonial(ctx context.Context, testimonial domain.Testimonial) error {
	if strings.TrimSpace(testimonial.ID) == "" {
		return fmt.Errorf("%w: testimonial id is required", ErrInvalidInput)
	}
	testimonial = s.sanitizeTestimonial(testimonial)
	return s.store.Update(ctx, testimonialCollection, testimonial.ID, recordFromTestimonial(testimonial))
}

func (s *siteService) RemoveTestimonial(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: testimonial id is required", ErrInvalidInput)
	}
	return s.store.Remove(ctx, testimonialCollection, id)
}

func (s *siteService) sanitizeProfile(profile domain.SiteProfile) domain.SiteProfile {
	profile.Description = s.policy.Sanitize(profile.Description)
	profile.AboutIntro = s.policy.Sanitize(profile.AboutIntro)
	profile.AboutMore = s.policy.Sanitize(profile.AboutMore)
	return profile
}

func (s *siteService) sanitizeProduct(product domain.Product) domain.Product {
	product.Description = s.policy.Sanitize(product.Description)
	for i, feature := range product.Features {
		product.Features[i] = s.policy.Sanitize(feature)
	}
	return product
}

func (s *siteService) sanitizeTestimonial(testimonial domain.Testimonial) domain.Testimonial {
	testimonial.Text = s.policy.Sanitize(testimonial.Text)
	return testimonial
}

func profileFromRecord(record domain.Record) domain.SiteProfile {
	return domain.SiteProfile{
		Brand:       stringField(record, "brand"),
		Name:        stringField(record, "name"),
		Title:       stringField(record, "title"),
		Description: stringField(record, "description"),
		Image:       stringField(record, "image"),
		Phone:       stringField(record, "phone"),
		AboutIntro:  stringField(record, "aboutIntro"),
		AboutMore:   stringField(record, "aboutDetails"),
	}
}

func recordFromProfile(profile domain.SiteProfile) domain.Record {
	return domain.Record{
		"brand":        profile.Brand,
		"name":         profile.Name,
		"title":        profile.Title,
		"description":  profile.Description,
		"image":        profile.Image,
		"phone":        profile.Phone,
		"aboutIntro":   profile.AboutIntro,
		"aboutDetails": profile.AboutMore,
	}
}

func productFromRecord(record domain.Record) domain.Product {
	return domain.Product{
		ID:          record.ID(),
		Name:        stringField(record, "name"),
		Description: stringField(record, "description"),
		Price:       stringField(record, "price"),
		Features:    stringSliceField(record, "features"),
		Image:       stringField(record, "image"),
	}
}

func recordFromProduct(product domain.Product) domain.Record {
	features := product.Features
	if features == nil {
		features = []string{}
	}
	return domain.Record{
		"name":        product.Name,
		"description": product.Description,
		"price":       product.Price,
		"features":    features,
		"image":       product.Image,
	}
}

func testimonialFromRecord(record domain.Record) domain.Testimonial {
	return domain.Testimonial{
		ID:    record.ID(),
		Name:  stringField(record, "name"),
		Text:  stringField(record, "text"),
		Image: stringField(record, "image"),
	}
}

func recordFromTestimonial(testimonial domain.Testimonial) domain.Record {
	return domain.Record{
		"name":  testimonial.Name,
		"text":  testimonial.Text,
		"image": testimonial.Image,
	}
}

func stringField(record domain.Record, key string) string {
	value, _ := record[key].(string)
	return value
}

func stringSliceField(record domain.Record, key string) []string {
	switch value := record[key].(type) {
	case []string:
		return value
	case []any:
		out := make([]string, 0, len(value))
		for _, item := range value {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
