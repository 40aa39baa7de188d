// Package theme models translatable theme resources and implements the
// read (fetch) and write (register) halves of the copy pipeline.
//
// The Admin API addresses every translatable theme artifact by a GID
// that embeds the owning theme's numeric ID, e.g.
//
//	gid://shopify/OnlineStoreThemeJsonTemplate/123456789/templates/index.json
//
// Two themes on the same shop carry structurally matching resources
// whose GIDs differ only in that theme-ID segment, so the composite key
// of a resource is its GID with the theme-ID segment removed.
package theme

import (
	"strconv"
	"strings"
)

// ResourceType identifies one class of translatable theme resource.
type ResourceType string

const (
	ResourceTheme         ResourceType = "ONLINE_STORE_THEME"
	ResourceSectionGroup  ResourceType = "ONLINE_STORE_THEME_SECTION_GROUP"
	ResourceJSONTemplate  ResourceType = "ONLINE_STORE_THEME_JSON_TEMPLATE"
	ResourceSettingsData  ResourceType = "ONLINE_STORE_THEME_SETTINGS_DATA_SECTIONS"
	ResourceLocaleContent ResourceType = "ONLINE_STORE_THEME_LOCALE_CONTENT"
)

// ResourceTypes is the fixed processing order of a copy run.
var ResourceTypes = []ResourceType{
	ResourceTheme,
	ResourceSectionGroup,
	ResourceJSONTemplate,
	ResourceSettingsData,
	ResourceLocaleContent,
}

// Label returns a short human-readable name for summaries.
func (rt ResourceType) Label() string {
	switch rt {
	case ResourceTheme:
		return "Theme"
	case ResourceSectionGroup:
		return "Section Groups"
	case ResourceJSONTemplate:
		return "JSON Templates"
	case ResourceSettingsData:
		return "Settings Data"
	case ResourceLocaleContent:
		return "Locale Content"
	}
	return string(rt)
}

// Resource is one translatable resource of a theme.
type Resource struct {
	// ID is the full GID.
	ID string
	// Key is the theme-independent composite key (see package doc).
	Key string
	// Digests maps translatable field keys to content digests. A
	// registration must quote the digest of the field it overwrites.
	Digests map[string]string
}

// Translation is one existing (field key, value) pair for a locale.
type Translation struct {
	Key   string
	Value string
}

// BelongsTo reports whether gid references a resource owned by themeID.
func BelongsTo(gid string, themeID int64) bool {
	return strings.Contains(gid, themeSegment(themeID))
}

// ResourceKey strips the first theme-ID segment from gid, producing the
// composite key shared by matching resources across themes. Exact
// string equality of keys is the only matching rule.
func ResourceKey(gid string, themeID int64) string {
	return strings.Replace(gid, themeSegment(themeID), "", 1)
}

func themeSegment(themeID int64) string {
	return "/" + strconv.FormatInt(themeID, 10)
}
