// Package match aligns source-theme resources with destination-theme
// resources by composite key and reshapes the source translations into
// registrations against the destination.
package match

import (
	"github.com/themetools/themecopy/report"
	"github.com/themetools/themecopy/theme"
)

// Stats counts match outcomes for one (resource type, locale) pass.
type Stats struct {
	Matched     int // source resources with a destination counterpart
	Skipped     int // source resources with no destination counterpart
	SkippedKeys int // field keys dropped (no destination content digest)
}

// Build produces the registrations for one locale: for every source
// resource whose composite key also exists on the destination, each
// translated field key is re-registered on the destination resource
// with the value copied verbatim. Source-only resources are skipped —
// a missing destination resource cannot be invented.
//
// When --show-keys is active every emitted pair is logged as a side
// effect; the returned sequence is unaffected.
func Build(src, dst []theme.Resource, translations map[string][]theme.Translation, locale string, rep *report.Reporter, dryRun bool) ([]theme.Registration, Stats) {
	destByKey := make(map[string]theme.Resource, len(dst))
	for _, d := range dst {
		destByKey[d.Key] = d
	}

	var (
		regs  []theme.Registration
		stats Stats
	)
	for _, s := range src {
		d, ok := destByKey[s.Key]
		if !ok {
			stats.Skipped++
			rep.Verbosef("     - %s: no matching destination resource, skipped", report.ShortGID(s.ID))
			continue
		}
		stats.Matched++

		emitted := 0
		for _, t := range translations[s.ID] {
			digest, ok := d.Digests[t.Key]
			if !ok || digest == "" {
				stats.SkippedKeys++
				rep.Verbosef("     - %s || %s: no destination content digest, skipped", report.ShortGID(d.ID), t.Key)
				continue
			}
			regs = append(regs, theme.Registration{
				ResourceID: d.ID,
				Locale:     locale,
				Key:        t.Key,
				Value:      t.Value,
				Digest:     digest,
			})
			rep.Keyf(d.ID, t.Key, t.Value)
			emitted++
		}

		if !rep.ShowKeys {
			suffix := ""
			if dryRun {
				suffix = " [DRY]"
			}
			rep.Verbosef("     > %s (%d keys)%s", report.ShortGID(d.ID), emitted, suffix)
		}
	}
	return regs, stats
}
