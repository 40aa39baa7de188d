package copier

import (
	"fmt"
	"strings"

	"github.com/themetools/themecopy/report"
	"github.com/themetools/themecopy/theme"
)

// Print writes the final per-type table and, when requested, the
// per-locale timing table.
func (s *Summary) Print(rep *report.Reporter, timing bool) {
	fmt.Fprintln(rep.Out)
	fmt.Fprintf(rep.Out, "%-16s %-10s %-10s %-10s %s\n", "Type", "Copied", "Skipped", "Failed", "Translations")
	fmt.Fprintln(rep.Out, strings.Repeat("-", 60))

	for _, rt := range theme.ResourceTypes {
		c := s.PerType[rt]
		if c == nil {
			continue
		}
		fmt.Fprintf(rep.Out, "%-16s %-10d %-10d %-10d %d\n", rt.Label(), c.Copied, c.Skipped, c.Failed, c.Translations)
	}

	total := s.Totals()
	fmt.Fprintln(rep.Out, strings.Repeat("-", 60))
	fmt.Fprintf(rep.Out, "%-16s %-10d %-10d %-10d %d\n", "Total", total.Copied, total.Skipped, total.Failed, total.Translations)
	if total.FailedWrites > 0 {
		rep.Warnf("%d translations failed to register; re-run to retry them", total.FailedWrites)
	}

	if timing {
		fmt.Fprintln(rep.Out)
		fmt.Fprintln(rep.Out, "Timing per locale:")
		for _, locale := range s.Locales {
			fmt.Fprintf(rep.Out, "  %s: %.2fs\n", locale, s.LocaleTime[locale].Seconds())
		}
	}
	fmt.Fprintln(rep.Out)
}
