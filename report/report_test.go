package report

import (
	"bytes"
	"strings"
	"testing"
)

func TestVerbosefRespectsVerbosity(t *testing.T) {
	var buf bytes.Buffer
	rep := &Reporter{Out: &buf}

	rep.Verbosef("hidden %d", 1)
	if buf.Len() != 0 {
		t.Fatalf("Verbosef wrote %q with Verbose off", buf.String())
	}

	rep.Verbose = true
	rep.Verbosef("shown %d", 2)
	if got := buf.String(); got != "shown 2\n" {
		t.Fatalf("Verbosef output = %q, want %q", got, "shown 2\n")
	}
}

func TestKeyfRespectsShowKeys(t *testing.T) {
	var buf bytes.Buffer
	rep := &Reporter{Out: &buf}

	rep.Keyf("gid://shopify/X/1/templates/index.json", "title", "Hello")
	if buf.Len() != 0 {
		t.Fatalf("Keyf wrote %q with ShowKeys off", buf.String())
	}

	rep.ShowKeys = true
	rep.Keyf("gid://shopify/X/1/templates/index.json", "title", "Hello")
	got := buf.String()
	if !strings.Contains(got, "index.json") || !strings.Contains(got, "title") || !strings.Contains(got, "Hello") {
		t.Fatalf("Keyf output = %q, want resource, key and value", got)
	}
}

func TestKeyfTruncatesLongValues(t *testing.T) {
	var buf bytes.Buffer
	rep := &Reporter{Out: &buf, ShowKeys: true}

	long := strings.Repeat("x", 200)
	rep.Keyf("gid://shopify/X/1/a", "k", long)
	if strings.Contains(buf.String(), long) {
		t.Fatal("Keyf did not truncate a 200-character value")
	}
}

func TestErrorfPrefix(t *testing.T) {
	var buf bytes.Buffer
	rep := &Reporter{Out: &buf}

	rep.Errorf("boom %s", "now")
	if got := buf.String(); !strings.Contains(got, "[ERROR]") || !strings.Contains(got, "boom now") {
		t.Fatalf("Errorf output = %q, want [ERROR] prefix and message", got)
	}
}

func TestShortGID(t *testing.T) {
	tests := []struct {
		gid  string
		want string
	}{
		{"gid://shopify/OnlineStoreThemeJsonTemplate/111/templates/index.json", "index.json"},
		{"gid://shopify/OnlineStoreTheme/111", "111"},
		{"plain", "plain"},
	}
	for _, tc := range tests {
		if got := ShortGID(tc.gid); got != tc.want {
			t.Fatalf("ShortGID(%q) = %q, want %q", tc.gid, got, tc.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Fatalf("Truncate(short) = %q, want unchanged", got)
	}
	if got := Truncate("0123456789", 4); got != "0123..." {
		t.Fatalf("Truncate() = %q, want %q", got, "0123...")
	}
}
