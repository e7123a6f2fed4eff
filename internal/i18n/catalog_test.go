package i18n

import "testing"

func TestTranslate(t *testing.T) {
	tests := []struct {
		key  string
		lang string
		want string
	}{
		{"courses.title", "en", "My Courses"},
		{"courses.title", "he", "הקורסים שלי"},
		{"nav.home", "he", "דף הבית"},
		{"footer.rights", "en", "All rights reserved"},
		{"courses.missing", "en", "courses.missing"},
		{"nope", "en", "nope"},
		{"courses.title.extra", "en", "courses.title.extra"},
		{"courses.title", "", "הקורסים שלי"},
		{"courses.title", "en-US", "My Courses"},
	}
	for _, tt := range tests {
		if got := Translate(tt.key, tt.lang); got != tt.want {
			t.Errorf("Translate(%q, %q) = %q, want %q", tt.key, tt.lang, got, tt.want)
		}
	}
}

func TestResolveLanguage(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"he", "he"},
		{"en", "en"},
		{"en-US", "en"},
		{"he-IL", "he"},
		{"iw", "he"},
		{"fr", "he"},
		{"", "he"},
		{"not a tag", "he"},
	}
	for _, tt := range tests {
		if got := ResolveLanguage(tt.in); got != tt.want {
			t.Errorf("ResolveLanguage(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestToggleLanguage(t *testing.T) {
	if got := ToggleLanguage("he"); got != "en" {
		t.Fatalf("ToggleLanguage(he) = %q", got)
	}
	if got := ToggleLanguage("en"); got != "he" {
		t.Fatalf("ToggleLanguage(en) = %q", got)
	}
	if got := ToggleLanguage(""); got != "en" {
		t.Fatalf("ToggleLanguage(empty) = %q, want en (default is Hebrew)", got)
	}
}
