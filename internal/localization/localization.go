// Package localization loads translation strings from JSON files, one file per
// language code (en.json, uk.json), and renders them with {name} placeholders.
package localization

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"jobboard/chat/internal/models"
)

// Localizer holds translations keyed by language, then by message key.
// It is read-only after construction.
type Localizer struct {
	translations map[string]map[string]string
	fallback     string
}

// NewLocalizer loads every *.json file in dir. Keys missing from a language
// are looked up in fallback.
func NewLocalizer(dir, fallback string) (*Localizer, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read locales dir: %w", err)
	}

	l := &Localizer{
		translations: make(map[string]map[string]string),
		fallback:     fallback,
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", entry.Name(), err)
		}
		var strs map[string]string
		if err := json.Unmarshal(data, &strs); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", entry.Name(), err)
		}
		l.translations[strings.TrimSuffix(entry.Name(), ".json")] = strs
	}
	return l, nil
}

// GetString returns the translation of key, falling back to the fallback
// language and finally to the key itself.
func (l *Localizer) GetString(lang, key string) string {
	if v, ok := l.translations[lang][key]; ok {
		return v
	}
	if v, ok := l.translations[l.fallback][key]; ok {
		return v
	}
	return key
}

// Render looks up key like GetString and substitutes {name} placeholders from vars.
func (l *Localizer) Render(lang, key string, vars map[string]string) string {
	text := l.GetString(lang, key)
	for name, value := range vars {
		text = strings.ReplaceAll(text, "{"+name+"}", value)
	}
	return text
}

// ApplicationGreeting returns the seed-message builder for application rooms in lang.
func (l *Localizer) ApplicationGreeting(lang string) func(*models.Application) string {
	return func(app *models.Application) string {
		if app.JobTitle == "" {
			return l.GetString(lang, "application_greeting_no_job")
		}
		return l.Render(lang, "application_greeting", map[string]string{"job": app.JobTitle})
	}
}
