package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

// LocaleKey is the gin context key holding the resolved locale
const LocaleKey = "locale"

type localeContextKey struct{}

// supportedLocales are the languages the embedded message bundles cover
var supportedLocales = []string{"en", "hi", "es", "fr", "de"}

// Locale resolves the request locale from the Accept-Language header,
// honoring q-values, and stores it in the gin context. Requests without a
// usable preference get the configured default locale.
func Locale(defaultLocale string) gin.HandlerFunc {
	// the first tag is the matcher's fallback
	supported := []language.Tag{language.Make(defaultLocale)}
	for _, code := range supportedLocales {
		if code != defaultLocale {
			supported = append(supported, language.Make(code))
		}
	}
	matcher := language.NewMatcher(supported)

	return func(c *gin.Context) {
		locale := defaultLocale
		if header := c.GetHeader("Accept-Language"); header != "" {
			if tags, _, err := language.ParseAcceptLanguage(header); err == nil && len(tags) > 0 {
				if _, idx, conf := matcher.Match(tags...); conf > language.No {
					base, _ := supported[idx].Base()
					locale = base.String()
				}
			}
		}
		c.Set(LocaleKey, locale)
		// make the locale visible outside gin too (GraphQL resolvers)
		c.Request = c.Request.WithContext(WithLocale(c.Request.Context(), locale))
		c.Next()
	}
}

// GetLocale retrieves the resolved locale from the gin context
func GetLocale(c *gin.Context) string {
	return c.GetString(LocaleKey)
}

// WithLocale returns a context carrying the resolved locale
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeContextKey{}, locale)
}

// LocaleFromContext retrieves the locale from a plain context, empty when unset
func LocaleFromContext(ctx context.Context) string {
	if locale, ok := ctx.Value(localeContextKey{}).(string); ok {
		return locale
	}
	return ""
}
