package i18n

import (
	"fmt"
	"strings"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/lv"
	ut "github.com/go-playground/universal-translator"
	"golang.org/x/text/language"
)

const (
	LocaleEN = "en"
	LocaleLV = "lv"
)

// Catalog renders message codes in the supported locales.
type Catalog struct {
	uni           *ut.UniversalTranslator
	matcher       language.Matcher
	supported     []string
	defaultLocale string
}

func NewCatalog(defaultLocale string) (*Catalog, error) {
	translators := map[string]locales.Translator{
		LocaleEN: en.New(),
		LocaleLV: lv.New(),
	}

	fallback, ok := translators[defaultLocale]
	if !ok {
		return nil, fmt.Errorf("unsupported default locale: %s", defaultLocale)
	}

	uni := ut.New(fallback, en.New(), lv.New())

	sources := map[string]map[Code]string{
		LocaleEN: messagesEN,
		LocaleLV: messagesLV,
	}
	for locale, messages := range sources {
		trans, found := uni.GetTranslator(locale)
		if !found {
			return nil, fmt.Errorf("translator not registered: %s", locale)
		}
		for code, text := range messages {
			if err := trans.Add(string(code), text, true); err != nil {
				return nil, fmt.Errorf("failed to add %s for %s: %w", code, locale, err)
			}
		}
	}

	// Order matters: the first tag is the matcher's fallback.
	supported := []string{defaultLocale}
	for _, l := range []string{LocaleLV, LocaleEN} {
		if l != defaultLocale {
			supported = append(supported, l)
		}
	}
	tags := make([]language.Tag, len(supported))
	for i, l := range supported {
		tags[i] = language.Make(l)
	}

	return &Catalog{
		uni:           uni,
		matcher:       language.NewMatcher(tags),
		supported:     supported,
		defaultLocale: defaultLocale,
	}, nil
}

func (c *Catalog) DefaultLocale() string {
	return c.defaultLocale
}

func (c *Catalog) Supports(locale string) bool {
	for _, l := range c.supported {
		if l == locale {
			return true
		}
	}
	return false
}

// Message renders code in locale. Unknown codes render as the code itself.
func (c *Catalog) Message(locale string, code Code) string {
	trans, _ := c.uni.GetTranslator(locale)
	text, err := trans.T(string(code))
	if err != nil || text == "" {
		return string(code)
	}
	return text
}

func (c *Catalog) Messages(locale string, codes []Code) []string {
	out := make([]string, len(codes))
	for i, code := range codes {
		out[i] = c.Message(locale, code)
	}
	return out
}

// Negotiate picks the locale for a request. An explicit value (query or
// cookie) wins when supported, then the Accept-Language header, then the
// default locale.
func (c *Catalog) Negotiate(explicit []string, acceptLanguage string) string {
	for _, candidate := range explicit {
		candidate = strings.ToLower(strings.TrimSpace(candidate))
		if c.Supports(candidate) {
			return candidate
		}
	}

	if acceptLanguage == "" {
		return c.defaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return c.defaultLocale
	}

	_, index, confidence := c.matcher.Match(tags...)
	if confidence == language.No {
		return c.defaultLocale
	}
	return c.supported[index]
}
