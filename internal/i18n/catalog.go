// Package i18n holds the static UI translation catalogs and resolves
// caller language preferences against the supported set.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Supported languages, in matcher preference order. Hebrew is the default.
const (
	LangHebrew  = "he"
	LangEnglish = "en"
)

var supported = []language.Tag{
	language.Hebrew,
	language.English,
}

var matcher = language.NewMatcher(supported)

var catalogs = map[string]map[string]any{
	LangHebrew: {
		"nav": map[string]any{
			"home":         "דף הבית",
			"about":        "אודות",
			"courses":      "קורסים",
			"testimonials": "סטודנטים ממליצים",
		},
		"about": map[string]any{
			"title":   "אודותיי",
			"intro":   "כתוב כאן על הרקע המקצועי והאקדמי שלך. הניסיון שלך בהוראה, תחומי המומחיות שלך, והפילוסופיה שלך בהוראה.",
			"details": "ספר על השכלתך, הקורסים שאתה מלמד, ומה הופך את שיטת ההוראה שלך לייחודית ואפקטיבית עבור הסטודנטים.",
		},
		"courses": map[string]any{
			"title":  "הקורסים שלי",
			"button": "הזמן עכשיו",
			"empty":  "אין קורסים להצגה",
		},
		"testimonials": map[string]any{
			"title": "מה הסטודנטים אומרים",
			"empty": "אין המלצות להצגה",
		},
		"footer": map[string]any{
			"contact": "צור קשר",
			"rights":  "כל הזכויות שמורות",
		},
	},
	LangEnglish: {
		"nav": map[string]any{
			"home":         "Home",
			"about":        "About",
			"courses":      "Courses",
			"testimonials": "Student Testimonials",
		},
		"about": map[string]any{
			"title":   "About Me",
			"intro":   "Write here about your professional and academic background. Your teaching experience, areas of expertise, and your teaching philosophy.",
			"details": "Share your education, the courses you teach, and what makes your teaching method unique and effective for students.",
		},
		"courses": map[string]any{
			"title":  "My Courses",
			"button": "Enroll Now",
			"empty":  "No courses to display",
		},
		"testimonials": map[string]any{
			"title": "What Students Say",
			"empty": "No testimonials to display",
		},
		"footer": map[string]any{
			"contact": "Contact",
			"rights":  "All rights reserved",
		},
	},
}

// Translate looks up a dotted key (e.g. "courses.title") in the catalog for
// lang. Unknown keys and unknown languages fall back to the key itself, so
// missing entries render visibly instead of blanking the UI.
func Translate(key, lang string) string {
	node, ok := catalogs[ResolveLanguage(lang)]
	if !ok {
		return key
	}
	var current any = node
	for _, part := range strings.Split(key, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return key
		}
		current, ok = m[part]
		if !ok {
			return key
		}
	}
	if value, ok := current.(string); ok {
		return value
	}
	return key
}

// ResolveLanguage maps an arbitrary BCP 47 tag (e.g. "en-US", "he-IL") onto
// one of the supported languages. Empty or unparseable input resolves to
// Hebrew, the site's native language.
func ResolveLanguage(lang string) string {
	trimmed := strings.TrimSpace(lang)
	if trimmed == "" {
		return LangHebrew
	}
	tag, err := language.Parse(trimmed)
	if err != nil {
		return LangHebrew
	}
	_, index, _ := matcher.Match(tag)
	base, _ := supported[index].Base()
	return base.String()
}

// ToggleLanguage flips between the two supported languages.
func ToggleLanguage(lang string) string {
	if ResolveLanguage(lang) == LangHebrew {
		return LangEnglish
	}
	return LangHebrew
}
