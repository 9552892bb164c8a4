package i18n

import (
	"fmt"
	"io/fs"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/authbridge/pkg/credential"
)

// DefaultLang is the fallback language.
const DefaultLang = "en"

// Messages is an immutable set of catalogs. Safe for concurrent use.
type Messages struct {
	catalogs    map[string]map[string]string
	tags        []language.Tag
	langs       []string
	matcher     language.Matcher
	defaultLang string
}

// Option configures Load.
type Option func(*Messages)

// WithDefaultLanguage sets the fallback language. Default: "en".
func WithDefaultLanguage(lang string) Option {
	return func(m *Messages) {
		if lang != "" {
			m.defaultLang = lang
		}
	}
}

// Load builds Messages from {lang}.yaml catalogs at the root of fsys.
func Load(fsys fs.FS, opts ...Option) (*Messages, error) {
	m := &Messages{defaultLang: DefaultLang}
	for _, opt := range opts {
		opt(m)
	}

	catalogs, err := loadCatalogs(fsys)
	if err != nil {
		return nil, err
	}
	if len(catalogs) == 0 {
		return nil, ErrNoCatalogs
	}
	if _, ok := catalogs[m.defaultLang]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingDefault, m.defaultLang)
	}
	m.catalogs = catalogs

	// The matcher returns the first tag on no match, so the default goes first.
	m.langs = []string{m.defaultLang}
	for lang := range catalogs {
		if lang != m.defaultLang {
			m.langs = append(m.langs, lang)
		}
	}
	slices.Sort(m.langs[1:])

	m.tags = make([]language.Tag, 0, len(m.langs))
	for _, lang := range m.langs {
		tag, err := language.Parse(lang)
		if err != nil {
			return nil, fmt.Errorf("%w: catalog %q is not a language tag: %s", ErrInvalidFile, lang, err)
		}
		m.tags = append(m.tags, tag)
	}
	m.matcher = language.NewMatcher(m.tags)

	return m, nil
}

var (
	defaultOnce sync.Once
	defaultMsgs *Messages
)

// Default returns the embedded English, Spanish and French catalogs.
func Default() *Messages {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(embedded, "locales")
		if err != nil {
			panic(err)
		}
		m, err := Load(sub)
		if err != nil {
			panic(err)
		}
		defaultMsgs = m
	})
	return defaultMsgs
}

// Languages lists the loaded languages, default first.
func (m *Messages) Languages() []string {
	return slices.Clone(m.langs)
}

// Match resolves a language tag, or an Accept-Language header, to a loaded
// catalog language.
func (m *Messages) Match(lang string) string {
	if strings.TrimSpace(lang) == "" {
		return m.defaultLang
	}
	_, idx := language.MatchStrings(m.matcher, lang)
	return m.langs[idx]
}

// T returns the text for key in the best matching language. Missing keys
// fall back to the default language, then to the key itself. Placeholders
// written as {name} are replaced from args given as name, value pairs.
func (m *Messages) T(lang, key string, args ...string) string {
	text, ok := m.catalogs[m.Match(lang)][key]
	if !ok {
		text, ok = m.catalogs[m.defaultLang][key]
	}
	if !ok {
		return key
	}
	return replace(text, args)
}

// For returns the message for a failed sign-in of the given kind.
func (m *Messages) For(lang string, kind credential.ErrorKind) string {
	if kind == credential.KindNone {
		return m.T(lang, "signin.success_anonymous")
	}
	key := "signin.error." + string(kind)
	if _, ok := m.catalogs[m.defaultLang][key]; !ok {
		key = "signin.error." + string(credential.KindUnknown)
	}
	return m.T(lang, key)
}

// Result returns the message to show for a finished sign-in.
func (m *Messages) Result(lang string, res credential.Result) string {
	if !res.Success {
		kind := res.ErrorKind
		if kind == credential.KindNone {
			kind = credential.KindUnknown
		}
		return m.For(lang, kind)
	}
	if res.User != nil && res.User.DisplayName != "" {
		return m.T(lang, "signin.success", "name", res.User.DisplayName)
	}
	return m.T(lang, "signin.success_anonymous")
}

func replace(text string, args []string) string {
	if len(args) < 2 || !strings.Contains(text, "{") {
		return text
	}
	pairs := make([]string, 0, len(args))
	for i := 0; i+1 < len(args); i += 2 {
		pairs = append(pairs, "{"+args[i]+"}", args[i+1])
	}
	return strings.NewReplacer(pairs...).Replace(text)
}
