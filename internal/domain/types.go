package domain

// Record is the raw document representation exchanged with the document store.
// The "id" field is always present on records returned by the store.
type Record map[string]any

// ID returns the record's document id, or the empty string when unset.
func (r Record) ID() string {
	if r == nil {
		return ""
	}
	id, _ := r["id"].(string)
	return id
}

// SiteProfile is the singleton brand/owner document rendered on the landing page.
// It is created implicitly on first save and never deleted.
type SiteProfile struct {
	Brand       string `firestore:"brand" json:"brand"`
	Name        string `firestore:"name" json:"name"`
	Title       string `firestore:"title" json:"title"`
	Description string `firestore:"description" json:"description"`
	Image       string `firestore:"image" json:"image"`
	Phone       string `firestore:"phone" json:"phone"`
	AboutIntro  string `firestore:"aboutIntro,omitempty" json:"aboutIntro,omitempty"`
	AboutMore   string `firestore:"aboutDetails,omitempty" json:"aboutDetails,omitempty"`
}

// Product is a course or offering listed on the landing page.
// Price is a display string, not a numeric amount.
type Product struct {
	ID          string   `firestore:"id" json:"id"`
	Name        string   `firestore:"name" json:"name"`
	Description string   `firestore:"description" json:"description"`
	Price       string   `firestore:"price" json:"price"`
	Features    []string `firestore:"features" json:"features"`
	Image       string   `firestore:"image" json:"image"`
}

// Testimonial is a student/customer quote shown on the landing page.
type Testimonial struct {
	ID    string `firestore:"id" json:"id"`
	Name  string `firestore:"name" json:"name"`
	Text  string `firestore:"text" json:"text"`
	Image string `firestore:"image" json:"image"`
}

// SiteImport is the bulk seed document accepted by the import service.
// Every top-level key is optional.
type SiteImport struct {
	User         *SiteProfile  `json:"user,omitempty"`
	Products     []Product     `json:"products,omitempty"`
	Testimonials []Testimonial `json:"testimonials,omitempty"`
}
