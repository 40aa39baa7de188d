// Package copier drives a full copy run: every resource type in fixed
// order, every requested locale, fetch source → fetch destination →
// match → write, with summary accounting and optional per-locale
// timing.
//
// The fatality policy is deliberately asymmetric. Fetch errors abort
// the resource type being processed: fetching is read-only, so nothing
// is lost by discarding partial results, and a half-fetched source
// must never drive writes. Write errors are per-batch and non-fatal:
// partial writes are acceptable because re-running the tool registers
// the same values again (registrations overwrite, they do not append).
package copier

import (
	"context"
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/themetools/themecopy/match"
	"github.com/themetools/themecopy/report"
	"github.com/themetools/themecopy/shopify"
	"github.com/themetools/themecopy/theme"
)

// Copier orchestrates one copy run.
type Copier struct {
	Client   *shopify.Client
	Reporter *report.Reporter
	DryRun   bool
	Timing   bool
}

// Counts accumulates per-resource-type outcomes across all locales.
// Copied, Skipped and Failed count resource passes: one source
// resource processed for one locale.
type Counts struct {
	Resources    int // source resources of this type
	Copied       int // matched passes that registered cleanly
	Skipped      int // passes with no destination match
	Failed       int // matched passes hit by a write error
	Translations int // registrations written (or simulated)
	FailedWrites int // registrations lost to write errors
}

// Summary is the final accounting of a run.
type Summary struct {
	Locales    []string
	PerType    map[theme.ResourceType]*Counts
	LocaleTime map[string]time.Duration
	FetchErrs  []error
}

// Failed reports whether the run hit a fatal (fetch-phase) error.
func (s *Summary) Failed() bool { return len(s.FetchErrs) > 0 }

// Totals sums the per-type counts.
func (s *Summary) Totals() Counts {
	var total Counts
	for _, c := range s.PerType {
		total.Resources += c.Resources
		total.Copied += c.Copied
		total.Skipped += c.Skipped
		total.Failed += c.Failed
		total.Translations += c.Translations
		total.FailedWrites += c.FailedWrites
	}
	return total
}

// Run copies translations for every resource type and locale. It never
// returns early: fetch errors are recorded in the summary and the next
// resource type proceeds, so one broken type does not block the rest.
func (c *Copier) Run(ctx context.Context, srcTheme, dstTheme int64, locales []string) *Summary {
	sum := &Summary{
		Locales:    locales,
		PerType:    make(map[theme.ResourceType]*Counts, len(theme.ResourceTypes)),
		LocaleTime: make(map[string]time.Duration, len(locales)),
	}

	fetcher := &theme.Fetcher{Client: c.Client, Reporter: c.Reporter}
	writer := &theme.Writer{Client: c.Client, Reporter: c.Reporter, DryRun: c.DryRun}

	for _, rt := range theme.ResourceTypes {
		counts := &Counts{}
		sum.PerType[rt] = counts

		c.Reporter.Infof("%s ...", rt.Label())

		srcResources, err := fetcher.ListResources(ctx, rt, srcTheme)
		if err != nil {
			c.Reporter.Errorf("fetching source %s: %v", rt.Label(), err)
			sum.FetchErrs = append(sum.FetchErrs, err)
			continue
		}
		if len(srcResources) == 0 {
			c.Reporter.Verbosef("  (none)")
			continue
		}
		counts.Resources = len(srcResources)

		dstResources, err := fetcher.ListResources(ctx, rt, dstTheme)
		if err != nil {
			c.Reporter.Errorf("fetching destination %s: %v", rt.Label(), err)
			sum.FetchErrs = append(sum.FetchErrs, err)
			continue
		}

		srcIDs := make([]string, len(srcResources))
		for i, r := range srcResources {
			srcIDs[i] = r.ID
		}

		for _, locale := range locales {
			start := time.Now()
			c.Reporter.Verbosef("  * %s", locale)

			translations, err := fetcher.FetchTranslations(ctx, srcIDs, locale)
			if err != nil {
				c.Reporter.Errorf("fetching %s translations (%s): %v", rt.Label(), locale, err)
				sum.FetchErrs = append(sum.FetchErrs, err)
				sum.LocaleTime[locale] += time.Since(start)
				// A broken fetch aborts the whole resource type, not
				// just this locale.
				break
			}

			regs, stats := match.Build(srcResources, dstResources, translations, locale, c.Reporter, c.DryRun)
			counts.Skipped += stats.Skipped

			writer.Progress = nil
			bar := c.progressBar(len(regs), rt, locale)
			if bar != nil {
				writer.Progress = func(n int) { _ = bar.Add(n) }
			}

			result := writer.Register(ctx, regs)
			if bar != nil {
				_ = bar.Finish()
			}

			counts.Failed += len(result.FailedResources)
			counts.Copied += stats.Matched - len(result.FailedResources)
			counts.Translations += result.Written
			counts.FailedWrites += result.Failed

			sum.LocaleTime[locale] += time.Since(start)
		}
	}
	return sum
}

// progressBar returns a live progress bar for one (type, locale) write
// pass, or nil when progress display is off. Verbose output and the
// bar would fight over the terminal, so verbose wins.
func (c *Copier) progressBar(total int, rt theme.ResourceType, locale string) *progressbar.ProgressBar {
	if !c.Timing || c.Reporter.Verbose || total == 0 {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(c.Reporter.Out),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription(fmt.Sprintf("  %s %s", rt.Label(), locale)),
		progressbar.OptionClearOnFinish(),
	)
}
