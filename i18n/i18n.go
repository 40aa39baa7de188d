// Package i18n localizes themecopy's own user-facing strings.
//
// It wraps the gotext library behind T() and N() helpers. Catalogs are
// embedded in the binary via //go:embed and loaded once at startup by
// Init(); an untranslated string passes through unchanged.
package i18n

import (
	"embed"
	"os"
	"strings"

	"github.com/leonelquinteros/gotext"
)

// catalogs embeds the compiled translation files.
// Directory structure: locales/{lang}/LC_MESSAGES/themecopy.po
//
//go:embed all:locales
var catalogs embed.FS

// domain is the gettext domain name.
const domain = "themecopy"

var locale *gotext.Locale

// Init loads the catalog for lang. An empty lang auto-detects from the
// environment (LANGUAGE, LC_ALL, LC_MESSAGES, LANG, in that order).
// Call once at startup, before any T() or N() call.
func Init(lang string) {
	if lang == "" {
		lang = detectLanguage()
	}
	locale = gotext.NewLocaleFSWithPath(lang, catalogs, "locales")
	locale.AddDomain(domain)
	locale.SetDomain(domain)
}

// T translates a string, returning it unchanged when no translation
// exists.
func T(msgid string) string {
	if locale == nil {
		return msgid
	}
	return locale.Get(msgid)
}

// N translates with plural forms; the target language's plural formula
// picks the form.
func N(singular, plural string, n int) string {
	if locale == nil {
		if n == 1 {
			return singular
		}
		return plural
	}
	return locale.GetN(singular, plural, n)
}

// detectLanguage follows GNU gettext conventions for picking the
// user's preferred language from the environment.
func detectLanguage() string {
	for _, env := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		val := os.Getenv(env)
		if val == "" {
			continue
		}
		// LANGUAGE can be a colon-separated list; take the first.
		if env == "LANGUAGE" {
			val, _, _ = strings.Cut(val, ":")
		}
		// Strip encoding suffix ("ru_RU.UTF-8" -> "ru_RU").
		if idx := strings.IndexByte(val, '.'); idx >= 0 {
			val = val[:idx]
		}
		// "C" and "POSIX" mean no translation.
		if val == "C" || val == "POSIX" || val == "" {
			continue
		}
		return val
	}
	return "en"
}
