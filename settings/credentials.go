// Package settings stores per-shop Admin API tokens in the XDG data
// directory:
//
//	$XDG_DATA_HOME/themecopy/auth.json  (default: ~/.local/share/themecopy/)
//
// The file is a JSON object keyed by shop domain. File permissions are
// 0600 (owner read/write only).
//
// The store is the lowest-priority token source; the --token flag and
// the SHOPIFY_ADMIN_TOKEN environment variable both override it.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	dataDirName = "themecopy"
	fileName    = "auth.json"
)

// Info holds the stored credential for one shop.
type Info struct {
	Token string `json:"token"`
	// Note is a free-form label ("staging", "client X"), shown by
	// `themecopy auth status`.
	Note string `json:"note,omitempty"`
}

// Store maps shop domains to credentials.
type Store map[string]*Info

// dataDir returns the XDG data directory for themecopy.
// Respects $XDG_DATA_HOME, falls back to ~/.local/share.
func dataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, dataDirName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", dataDirName), nil
}

// Path returns the auth file location.
func Path() (string, error) {
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// Load reads the store. A missing or unreadable file yields an empty
// store so callers fall through to the other token sources.
func Load() Store {
	path, err := Path()
	if err != nil {
		return Store{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Store{}
	}
	var s Store
	if err := json.Unmarshal(data, &s); err != nil {
		return Store{}
	}
	if s == nil {
		s = Store{}
	}
	return s
}

// Save writes the store with owner-only permissions.
func Save(s Store) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding auth store: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing auth store: %w", err)
	}
	return nil
}

// Get returns the stored token for shop, or "" when none is stored.
func Get(shop string) string {
	if info := Load()[shop]; info != nil {
		return info.Token
	}
	return ""
}

// Set stores a token for shop, replacing any existing entry.
func Set(shop, token, note string) error {
	s := Load()
	s[shop] = &Info{Token: token, Note: note}
	return Save(s)
}

// Delete removes the stored token for shop. Deleting an absent entry
// is not an error.
func Delete(shop string) error {
	s := Load()
	if _, ok := s[shop]; !ok {
		return nil
	}
	delete(s, shop)
	return Save(s)
}
