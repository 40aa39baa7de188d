// Package langmeta provides locale display metadata (native names and
// emoji flags) for the `locales` listing.
package langmeta

import "strings"

// Meta describes locale display metadata.
type Meta struct {
	Name string
	Flag string
}

// Registry contains metadata for the locales Shopify shops commonly
// publish. Regional variants fall back to the base language in
// Resolve().
var Registry = map[string]Meta{
	"ar": {Name: "العربية", Flag: "🇸🇦"},
	"bg": {Name: "Български", Flag: "🇧🇬"},
	"cs": {Name: "Čeština", Flag: "🇨🇿"},
	"da": {Name: "Dansk", Flag: "🇩🇰"},
	"de": {Name: "Deutsch", Flag: "🇩🇪"},
	"el": {Name: "Ελληνικά", Flag: "🇬🇷"},
	"en": {Name: "English", Flag: "🇺🇸"},
	"en-GB": {Name: "English (UK)", Flag: "🇬🇧"},
	"es": {Name: "Español", Flag: "🇪🇸"},
	"fi": {Name: "Suomi", Flag: "🇫🇮"},
	"fr": {Name: "Français", Flag: "🇫🇷"},
	"fr-CA": {Name: "Français (Canada)", Flag: "🇨🇦"},
	"he": {Name: "עברית", Flag: "🇮🇱"},
	"hi": {Name: "हिन्दी", Flag: "🇮🇳"},
	"hr": {Name: "Hrvatski", Flag: "🇭🇷"},
	"hu": {Name: "Magyar", Flag: "🇭🇺"},
	"id": {Name: "Bahasa Indonesia", Flag: "🇮🇩"},
	"it": {Name: "Italiano", Flag: "🇮🇹"},
	"ja": {Name: "日本語", Flag: "🇯🇵"},
	"ko": {Name: "한국어", Flag: "🇰🇷"},
	"lt": {Name: "Lietuvių", Flag: "🇱🇹"},
	"nb": {Name: "Norsk bokmål", Flag: "🇳🇴"},
	"nl": {Name: "Nederlands", Flag: "🇳🇱"},
	"pl": {Name: "Polski", Flag: "🇵🇱"},
	"pt-BR": {Name: "Português (Brasil)", Flag: "🇧🇷"},
	"pt-PT": {Name: "Português (Portugal)", Flag: "🇵🇹"},
	"pt": {Name: "Português", Flag: "🇵🇹"},
	"ro": {Name: "Română", Flag: "🇷🇴"},
	"ru": {Name: "Русский", Flag: "🇷🇺"},
	"sk": {Name: "Slovenčina", Flag: "🇸🇰"},
	"sl": {Name: "Slovenščina", Flag: "🇸🇮"},
	"sv": {Name: "Svenska", Flag: "🇸🇪"},
	"th": {Name: "ไทย", Flag: "🇹🇭"},
	"tr": {Name: "Türkçe", Flag: "🇹🇷"},
	"uk": {Name: "Українська", Flag: "🇺🇦"},
	"vi": {Name: "Tiếng Việt", Flag: "🇻🇳"},
	"zh-CN": {Name: "简体中文", Flag: "🇨🇳"},
	"zh-TW": {Name: "繁體中文", Flag: "🇹🇼"},
	"zh-Hans": {Name: "简体中文", Flag: "🇨🇳"},
	"zh-Hant": {Name: "繁體中文", Flag: "🇹🇼"},
}

// Resolve returns metadata for a locale code. Lookup is
// case-normalized ("PT-br" → "pt-BR") and regional variants fall back
// to the base language ("fr-BE" → "fr").
func Resolve(code string) (Meta, bool) {
	normalized := normalize(code)
	if m, ok := Registry[normalized]; ok {
		return m, true
	}
	if i := strings.IndexByte(normalized, '-'); i > 0 {
		if m, ok := Registry[normalized[:i]]; ok {
			return m, true
		}
	}
	return Meta{}, false
}

// normalize lowercases the language part and adjusts the subtag case:
// two-letter region subtags are uppercased, longer script subtags are
// title-cased ("zh-hant" → "zh-Hant").
func normalize(code string) string {
	parts := strings.Split(strings.TrimSpace(code), "-")
	if len(parts) == 0 || parts[0] == "" {
		return ""
	}
	parts[0] = strings.ToLower(parts[0])
	for i := 1; i < len(parts); i++ {
		sub := parts[i]
		switch {
		case len(sub) == 2:
			parts[i] = strings.ToUpper(sub)
		case len(sub) >= 3:
			parts[i] = strings.ToUpper(sub[:1]) + strings.ToLower(sub[1:])
		}
	}
	return strings.Join(parts, "-")
}
