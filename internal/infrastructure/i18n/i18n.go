package i18n

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Translator resolves message keys to localized strings. Lookups fall back
// to the configured default locale, and finally to the caller's fallback text.
type Translator struct {
	bundle        *i18n.Bundle
	defaultLocale string
}

// NewTranslator loads all embedded locale files into a bundle
func NewTranslator(defaultLocale string) (*Translator, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded locales: %w", err)
	}
	for _, entry := range entries {
		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+entry.Name()); err != nil {
			return nil, fmt.Errorf("failed to load locale file %s: %w", entry.Name(), err)
		}
	}

	return &Translator{bundle: bundle, defaultLocale: defaultLocale}, nil
}

// DefaultLocale returns the locale used when a request carries no usable Accept-Language
func (t *Translator) DefaultLocale() string {
	return t.defaultLocale
}

// Localize resolves key in the given locale, substituting templateData.
// When the key is missing in both the requested and default locales,
// fallback is returned (or the key itself when fallback is empty).
func (t *Translator) Localize(locale, key string, templateData map[string]any, fallback string) string {
	localizer := i18n.NewLocalizer(t.bundle, locale, t.defaultLocale)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: templateData,
	})
	if err != nil {
		if fallback != "" {
			return fallback
		}
		return key
	}
	return msg
}
