package theme

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/themetools/themecopy/batch"
	"github.com/themetools/themecopy/report"
	"github.com/themetools/themecopy/shopify"
)

// Batch caps are part of the Admin API contract: larger batches are
// rejected server-side, so the fetcher and writer never produce one.
const (
	// MaxIDsPerQuery caps translatableResourcesByIds lookups.
	MaxIDsPerQuery = 250
	// MaxTranslationsPerMutation caps translationsRegister inputs.
	MaxTranslationsPerMutation = 100

	listPageSize = 100
)

const listResourcesQuery = `query($first: Int!, $after: String, $type: TranslatableResourceType!) {
  translatableResources(first: $first, after: $after, resourceType: $type) {
    pageInfo { hasNextPage endCursor }
    edges { node { resourceId translatableContent { key digest } } }
  }
}`

const translationsByIDsQuery = `query($ids: [ID!]!, $first: Int!, $locale: String!) {
  translatableResourcesByIds(resourceIds: $ids, first: $first) {
    edges { node { resourceId translations(locale: $locale) { key value } } }
  }
}`

// Fetcher reads translatable resources and their existing translations.
// All fetch errors are fatal to the resource type being processed:
// partial results are discarded, never returned.
type Fetcher struct {
	Client   *shopify.Client
	Reporter *report.Reporter
}

// ListResources enumerates every resource of type rt owned by themeID,
// in API order. The underlying query is shop-wide; nodes belonging to
// other themes are filtered out by GID.
func (f *Fetcher) ListResources(ctx context.Context, rt ResourceType, themeID int64) ([]Resource, error) {
	var (
		out    []Resource
		cursor *string
	)
	for {
		vars := map[string]any{"first": listPageSize, "after": cursor, "type": string(rt)}
		data, err := f.Client.Execute(ctx, listResourcesQuery, vars)
		if err != nil {
			return nil, fmt.Errorf("listing %s resources: %w", rt, err)
		}

		var page struct {
			TranslatableResources struct {
				PageInfo struct {
					HasNextPage bool    `json:"hasNextPage"`
					EndCursor   *string `json:"endCursor"`
				} `json:"pageInfo"`
				Edges []struct {
					Node struct {
						ResourceID          string `json:"resourceId"`
						TranslatableContent []struct {
							Key    string `json:"key"`
							Digest string `json:"digest"`
						} `json:"translatableContent"`
					} `json:"node"`
				} `json:"edges"`
			} `json:"translatableResources"`
		}
		if err := json.Unmarshal(data, &page); err != nil {
			return nil, fmt.Errorf("decoding %s resource page: %w", rt, err)
		}

		conn := page.TranslatableResources
		for _, edge := range conn.Edges {
			node := edge.Node
			if !BelongsTo(node.ResourceID, themeID) {
				continue
			}
			res := Resource{
				ID:      node.ResourceID,
				Key:     ResourceKey(node.ResourceID, themeID),
				Digests: make(map[string]string, len(node.TranslatableContent)),
			}
			for _, content := range node.TranslatableContent {
				res.Digests[content.Key] = content.Digest
			}
			out = append(out, res)
		}

		if !conn.PageInfo.HasNextPage {
			break
		}
		cursor = conn.PageInfo.EndCursor
	}
	return out, nil
}

// FetchTranslations returns the existing translations of the given
// resources for one locale, keyed by resource GID. IDs are looked up in
// batches of at most MaxIDsPerQuery; any batch failure discards the
// whole fetch.
func (f *Fetcher) FetchTranslations(ctx context.Context, ids []string, locale string) (map[string][]Translation, error) {
	out := make(map[string][]Translation, len(ids))
	for _, group := range batch.Chunk(ids, MaxIDsPerQuery) {
		vars := map[string]any{"ids": group, "first": len(group), "locale": locale}
		data, err := f.Client.Execute(ctx, translationsByIDsQuery, vars)
		if err != nil {
			return nil, fmt.Errorf("fetching %s translations for %d resources: %w", locale, len(group), err)
		}

		var page struct {
			TranslatableResourcesByIds struct {
				Edges []struct {
					Node struct {
						ResourceID   string `json:"resourceId"`
						Translations []struct {
							Key   string  `json:"key"`
							Value *string `json:"value"`
						} `json:"translations"`
					} `json:"node"`
				} `json:"edges"`
			} `json:"translatableResourcesByIds"`
		}
		if err := json.Unmarshal(data, &page); err != nil {
			return nil, fmt.Errorf("decoding translations batch: %w", err)
		}

		for _, edge := range page.TranslatableResourcesByIds.Edges {
			node := edge.Node
			translations := make([]Translation, 0, len(node.Translations))
			for _, t := range node.Translations {
				// Null values are untranslated fields; nothing to copy.
				if t.Value == nil {
					continue
				}
				translations = append(translations, Translation{Key: t.Key, Value: *t.Value})
			}
			out[node.ResourceID] = translations
		}
	}
	return out, nil
}
