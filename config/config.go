// Package config resolves run configuration from the optional
// themecopy.yaml file, the environment and command-line flags.
//
// Precedence for every setting: flag > environment > config file.
// For the Admin API token the stored credential (see the settings
// package) is a final fallback after the environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/themetools/themecopy/settings"
)

// DefaultFileName is looked up in the working directory when --config
// is not given.
const DefaultFileName = "themecopy.yaml"

// TokenEnvVar names the environment variable carrying the Admin API
// token.
const TokenEnvVar = "SHOPIFY_ADMIN_TOKEN"

// File is the on-disk YAML configuration. Every field is optional;
// flags override anything set here. Tokens never live in the config
// file.
type File struct {
	Shop          string   `yaml:"shop"`
	SourceThemeID int64    `yaml:"source_theme_id"`
	DestThemeID   int64    `yaml:"dest_theme_id"`
	APIVersion    string   `yaml:"api_version"`
	Locales       []string `yaml:"locales"`
}

// Load reads the config file at path. A missing file is only an error
// when the path was explicitly requested.
func Load(path string, explicit bool) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &File{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &f, nil
}

// ResolveToken returns the Admin API token: the --token flag wins,
// then SHOPIFY_ADMIN_TOKEN (a .env file in the working directory is
// loaded first), then the stored credential for the shop. An empty
// result is a fatal configuration error for the caller — no network
// call may be made without a token.
func ResolveToken(flagValue, shop string) string {
	if flagValue != "" {
		return flagValue
	}
	_ = godotenv.Load() // absence of .env is normal
	if env := os.Getenv(TokenEnvVar); env != "" {
		return env
	}
	return settings.Get(shop)
}

// SplitLocales parses a comma-separated locale list, trimming spaces
// and dropping empty entries.
func SplitLocales(csv string) []string {
	var out []string
	for _, part := range strings.Split(csv, ",") {
		if locale := strings.TrimSpace(part); locale != "" {
			out = append(out, locale)
		}
	}
	return out
}
