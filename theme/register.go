package theme

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/themetools/themecopy/batch"
	"github.com/themetools/themecopy/report"
	"github.com/themetools/themecopy/shopify"
)

// Registration is one translation write: a field value registered on a
// destination resource for a locale.
type Registration struct {
	ResourceID string // destination resource GID
	Locale     string
	Key        string
	Value      string
	Digest     string // destination translatable-content digest for Key
}

const registerMutation = `mutation($id: ID!, $translations: [TranslationInput!]!) {
  translationsRegister(resourceId: $id, translations: $translations) {
    userErrors { field message }
  }
}`

// Writer registers translations on the destination theme in batches of
// at most MaxTranslationsPerMutation. Unlike the fetcher, a failed
// batch is not fatal: the error is reported, the batch is counted as
// failed and later batches still run, since a re-run repairs the gap.
type Writer struct {
	Client   *shopify.Client
	Reporter *report.Reporter
	DryRun   bool

	// Progress, when set, is called after each processed batch with the
	// number of registrations in it.
	Progress func(n int)
}

// Result aggregates write outcomes.
type Result struct {
	Written int // registrations accepted (or simulated in dry-run)
	Failed  int // registrations lost to batch errors or user errors
	// FailedResources lists destination GIDs that had at least one
	// failed batch or rejected input.
	FailedResources []string
}

type translationInput struct {
	Key                       string `json:"key"`
	Locale                    string `json:"locale"`
	Value                     string `json:"value"`
	TranslatableContentDigest string `json:"translatableContentDigest"`
}

// Register writes all registrations, grouped per destination resource
// and chunked to the mutation cap. In dry-run mode no mutation is
// issued and every registration counts as written.
func (w *Writer) Register(ctx context.Context, regs []Registration) Result {
	var res Result
	for _, group := range groupByResource(regs) {
		resourceFailed := false
		for _, chunk := range batch.Chunk(group, MaxTranslationsPerMutation) {
			if w.DryRun {
				res.Written += len(chunk)
			} else {
				written, failed := w.registerBatch(ctx, chunk)
				res.Written += written
				res.Failed += failed
				if failed > 0 {
					resourceFailed = true
				}
			}
			if w.Progress != nil {
				w.Progress(len(chunk))
			}
		}
		if resourceFailed {
			res.FailedResources = append(res.FailedResources, group[0].ResourceID)
		}
	}
	return res
}

func (w *Writer) registerBatch(ctx context.Context, regs []Registration) (written, failed int) {
	inputs := make([]translationInput, len(regs))
	for i, r := range regs {
		inputs[i] = translationInput{
			Key:                       r.Key,
			Locale:                    r.Locale,
			Value:                     r.Value,
			TranslatableContentDigest: r.Digest,
		}
	}

	id := regs[0].ResourceID
	vars := map[string]any{"id": id, "translations": inputs}
	data, err := w.Client.Execute(ctx, registerMutation, vars)
	if err != nil {
		w.Reporter.Errorf("registering %d translations on %s: %v", len(regs), report.ShortGID(id), err)
		return 0, len(regs)
	}

	var out struct {
		TranslationsRegister struct {
			UserErrors []struct {
				Field   []string `json:"field"`
				Message string   `json:"message"`
			} `json:"userErrors"`
		} `json:"translationsRegister"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		w.Reporter.Errorf("decoding register result for %s: %v", report.ShortGID(id), err)
		return 0, len(regs)
	}

	errs := out.TranslationsRegister.UserErrors
	for _, ue := range errs {
		w.Reporter.Errorf("register rejected on %s: %s (%s)", report.ShortGID(id), ue.Message, strings.Join(ue.Field, "."))
	}
	if len(errs) >= len(regs) {
		return 0, len(regs)
	}
	return len(regs) - len(errs), len(errs)
}

// groupByResource splits registrations into per-resource runs,
// preserving first-seen resource order and registration order within
// each resource. The register mutation targets a single resource.
func groupByResource(regs []Registration) [][]Registration {
	var order []string
	groups := make(map[string][]Registration)
	for _, r := range regs {
		if _, ok := groups[r.ResourceID]; !ok {
			order = append(order, r.ResourceID)
		}
		groups[r.ResourceID] = append(groups[r.ResourceID], r)
	}
	out := make([][]Registration, 0, len(order))
	for _, id := range order {
		out = append(out, groups[id])
	}
	return out
}
