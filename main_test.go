package main

import (
	"context"
	"strings"
	"testing"
)

func TestFirstNonEmpty(t *testing.T) {
	if got := firstNonEmpty("", "second", "third"); got != "second" {
		t.Fatalf("firstNonEmpty() = %q, want second", got)
	}
	if got := firstNonEmpty("", ""); got != "" {
		t.Fatalf("firstNonEmpty() = %q, want empty", got)
	}
}

func TestMaskToken(t *testing.T) {
	if got := maskToken("shpat_1234567890abcd"); got != "****abcd" {
		t.Fatalf("maskToken() = %q, want ****abcd", got)
	}
	if got := maskToken("ab"); got != "****" {
		t.Fatalf("maskToken(short) = %q, want ****", got)
	}
}

func TestRunCopyRequiresShop(t *testing.T) {
	flagShop = ""
	flagToken = ""
	flagConfig = ""
	t.Setenv("SHOPIFY_ADMIN_TOKEN", "")

	err := runCopy(context.Background(), copyOptions{srcThemeID: 1, dstThemeID: 2})
	if err == nil || !strings.Contains(err.Error(), "--shop") {
		t.Fatalf("runCopy() without shop = %v, want missing --shop error", err)
	}
}

func TestRunCopyRequiresThemeIDs(t *testing.T) {
	flagShop = "test.myshopify.com"
	flagToken = "token"
	flagConfig = ""
	t.Cleanup(func() { flagShop, flagToken = "", "" })

	err := runCopy(context.Background(), copyOptions{})
	if err == nil || !strings.Contains(err.Error(), "theme-id") {
		t.Fatalf("runCopy() without theme ids = %v, want theme id error", err)
	}
}

func TestRunCopyRequiresTokenBeforeNetwork(t *testing.T) {
	flagShop = "test.myshopify.com"
	flagToken = ""
	flagConfig = ""
	t.Cleanup(func() { flagShop = "" })
	t.Setenv("SHOPIFY_ADMIN_TOKEN", "")
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	// No fake server exists; reaching the network would fail loudly
	// with a different error than the token message.
	err := runCopy(context.Background(), copyOptions{srcThemeID: 111, dstThemeID: 222})
	if err == nil || !strings.Contains(err.Error(), "token") {
		t.Fatalf("runCopy() without token = %v, want token error", err)
	}
}

func TestRootCommandWiring(t *testing.T) {
	root := newRootCmd()

	for _, name := range []string{"copy", "locales", "auth", "version"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Fatalf("subcommand %q not wired: %v", name, err)
		}
	}

	copyCmd, _, _ := root.Find([]string{"copy"})
	for _, flag := range []string{"source-theme-id", "dest-theme-id", "locales", "dry-run", "show-keys", "timing"} {
		if copyCmd.Flags().Lookup(flag) == nil {
			t.Fatalf("copy flag --%s not registered", flag)
		}
	}
	for _, flag := range []string{"shop", "token", "api-version", "config", "verbose"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Fatalf("persistent flag --%s not registered", flag)
		}
	}
}
