// Package report implements the colored progress reporter shared by
// every component. The reporter is constructed once in main and passed
// down explicitly; verbosity lives on the object, not in package-level
// state.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
)

// Reporter writes human-readable progress to Out.
type Reporter struct {
	Out      io.Writer
	Verbose  bool
	ShowKeys bool
}

// New returns a reporter writing to stderr.
func New() *Reporter {
	return &Reporter{Out: os.Stderr}
}

func (r *Reporter) Infof(format string, args ...any) {
	fmt.Fprintf(r.Out, colorBlue+"[INFO]"+colorReset+" "+format+"\n", args...)
}

func (r *Reporter) Successf(format string, args ...any) {
	fmt.Fprintf(r.Out, colorGreen+"[OK]"+colorReset+" "+format+"\n", args...)
}

func (r *Reporter) Warnf(format string, args ...any) {
	fmt.Fprintf(r.Out, colorYellow+"[WARN]"+colorReset+" "+format+"\n", args...)
}

func (r *Reporter) Errorf(format string, args ...any) {
	fmt.Fprintf(r.Out, colorRed+"[ERROR]"+colorReset+" "+format+"\n", args...)
}

// Verbosef logs only when verbose output was requested.
func (r *Reporter) Verbosef(format string, args ...any) {
	if !r.Verbose {
		return
	}
	fmt.Fprintf(r.Out, format+"\n", args...)
}

// Keyf logs a single copied key/value pair when --show-keys is active.
// Values are truncated so one pair stays on one line.
func (r *Reporter) Keyf(resourceID, key, value string) {
	if !r.ShowKeys {
		return
	}
	fmt.Fprintf(r.Out, "     . %s || %s: %q\n", ShortGID(resourceID), key, Truncate(value, 60))
}

// ShortGID returns the last path segment of a Shopify GID, which is
// enough to identify a resource in logs.
func ShortGID(gid string) string {
	if i := strings.LastIndexByte(gid, '/'); i >= 0 {
		return gid[i+1:]
	}
	return gid
}

// Truncate shortens s to at most maxLen characters for log output.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
