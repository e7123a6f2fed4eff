package i18n

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Theme values stored in preferences.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Preferences is the persisted viewer preference document. Field names match
// the keys the rendered site reads from its local storage.
type Preferences struct {
	Language string `json:"userLanguage"`
	Theme    string `json:"userTheme"`
}

// PrefsStore persists viewer preferences to a JSON file. A missing file
// yields the defaults (Hebrew, light theme).
type PrefsStore struct {
	mu   sync.Mutex
	path string
}

// NewPrefsStore builds a store writing to path.
func NewPrefsStore(path string) (*PrefsStore, error) {
	if path == "" {
		return nil, errors.New("i18n: preferences path is required")
	}
	return &PrefsStore{path: path}, nil
}

// Load reads the stored preferences, filling in defaults for absent or
// unrecognized values.
func (s *PrefsStore) Load() (Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// SetLanguage persists the viewer language, normalized to a supported tag.
func (s *PrefsStore) SetLanguage(lang string) (Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefs, err := s.load()
	if err != nil {
		return Preferences{}, err
	}
	prefs.Language = ResolveLanguage(lang)
	if err := s.save(prefs); err != nil {
		return Preferences{}, err
	}
	return prefs, nil
}

// SetTheme persists the viewer theme. Anything but "dark" stores as light.
func (s *PrefsStore) SetTheme(theme string) (Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefs, err := s.load()
	if err != nil {
		return Preferences{}, err
	}
	if theme == ThemeDark {
		prefs.Theme = ThemeDark
	} else {
		prefs.Theme = ThemeLight
	}
	if err := s.save(prefs); err != nil {
		return Preferences{}, err
	}
	return prefs, nil
}

// ToggleTheme flips between light and dark and persists the result.
func (s *PrefsStore) ToggleTheme() (Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefs, err := s.load()
	if err != nil {
		return Preferences{}, err
	}
	if prefs.Theme == ThemeDark {
		prefs.Theme = ThemeLight
	} else {
		prefs.Theme = ThemeDark
	}
	if err := s.save(prefs); err != nil {
		return Preferences{}, err
	}
	return prefs, nil
}

func (s *PrefsStore) load() (Preferences, error) {
	prefs := Preferences{Language: LangHebrew, Theme: ThemeLight}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return prefs, nil
		}
		return Preferences{}, fmt.Errorf("i18n: read preferences %s: %w", s.path, err)
	}
	if err := json.Unmarshal(raw, &prefs); err != nil {
		return Preferences{}, fmt.Errorf("i18n: decode preferences %s: %w", s.path, err)
	}

	if prefs.Language == "" {
		prefs.Language = LangHebrew
	} else {
		prefs.Language = ResolveLanguage(prefs.Language)
	}
	if prefs.Theme != ThemeDark {
		prefs.Theme = ThemeLight
	}
	return prefs, nil
}

func (s *PrefsStore) save(prefs Preferences) error {
	raw, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("i18n: encode preferences: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("i18n: create preferences dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("i18n: write preferences %s: %w", s.path, err)
	}
	return nil
}
