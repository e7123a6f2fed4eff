package i18n

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestPrefsStore(t *testing.T) *PrefsStore {
	t.Helper()
	store, err := NewPrefsStore(filepath.Join(t.TempDir(), "prefs.json"))
	if err != nil {
		t.Fatalf("NewPrefsStore: %v", err)
	}
	return store
}

func TestPrefsDefaults(t *testing.T) {
	store := newTestPrefsStore(t)

	prefs, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if prefs.Language != "he" || prefs.Theme != "light" {
		t.Fatalf("defaults = %+v, want he/light", prefs)
	}
}

func TestPrefsRoundTrip(t *testing.T) {
	store := newTestPrefsStore(t)

	if _, err := store.SetLanguage("en"); err != nil {
		t.Fatalf("SetLanguage: %v", err)
	}
	if _, err := store.SetTheme("dark"); err != nil {
		t.Fatalf("SetTheme: %v", err)
	}

	prefs, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if prefs.Language != "en" {
		t.Fatalf("language = %q, want en", prefs.Language)
	}
	if prefs.Theme != "dark" {
		t.Fatalf("theme = %q, want dark", prefs.Theme)
	}
}

func TestPrefsNormalizesLanguage(t *testing.T) {
	store := newTestPrefsStore(t)

	prefs, err := store.SetLanguage("en-US")
	if err != nil {
		t.Fatalf("SetLanguage: %v", err)
	}
	if prefs.Language != "en" {
		t.Fatalf("language = %q, want en", prefs.Language)
	}
}

func TestPrefsRejectsUnknownTheme(t *testing.T) {
	store := newTestPrefsStore(t)

	prefs, err := store.SetTheme("neon")
	if err != nil {
		t.Fatalf("SetTheme: %v", err)
	}
	if prefs.Theme != "light" {
		t.Fatalf("theme = %q, want light", prefs.Theme)
	}
}

func TestPrefsToggleTheme(t *testing.T) {
	store := newTestPrefsStore(t)

	prefs, err := store.ToggleTheme()
	if err != nil {
		t.Fatalf("ToggleTheme: %v", err)
	}
	if prefs.Theme != "dark" {
		t.Fatalf("theme after first toggle = %q, want dark", prefs.Theme)
	}
	prefs, err = store.ToggleTheme()
	if err != nil {
		t.Fatalf("ToggleTheme: %v", err)
	}
	if prefs.Theme != "light" {
		t.Fatalf("theme after second toggle = %q, want light", prefs.Theme)
	}
}

func TestPrefsFileUsesStorageKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prefs.json")
	store, err := NewPrefsStore(path)
	if err != nil {
		t.Fatalf("NewPrefsStore: %v", err)
	}

	if _, err := store.SetLanguage("en"); err != nil {
		t.Fatalf("SetLanguage: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read prefs file: %v", err)
	}
	for _, key := range []string{"userLanguage", "userTheme"} {
		if !strings.Contains(string(raw), `"`+key+`"`) {
			t.Fatalf("prefs file missing key %q: %s", key, raw)
		}
	}
}
