package copier

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/themetools/themecopy/report"
	"github.com/themetools/themecopy/shopify"
	"github.com/themetools/themecopy/theme"
)

// fakeShop simulates a shop where the source theme (111) has two JSON
// templates and the destination theme (222) has one of them. Every
// other resource type is empty.
type fakeShop struct {
	t *testing.T

	failSectionGroupList bool

	registerCalls []registerCall
}

type registerCall struct {
	ResourceID   string
	Translations []map[string]any
}

func (f *fakeShop) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Query     string         `json:"query"`
			Variables map[string]any `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			f.t.Errorf("decoding request: %v", err)
			return
		}

		switch {
		case strings.Contains(req.Query, "translatableResources("):
			f.serveList(w, req.Variables)
		case strings.Contains(req.Query, "translatableResourcesByIds"):
			f.serveTranslations(w, req.Variables)
		case strings.Contains(req.Query, "translationsRegister"):
			f.serveRegister(w, req.Variables)
		default:
			f.t.Errorf("unexpected query: %s", req.Query)
		}
	}
}

func (f *fakeShop) serveList(w http.ResponseWriter, vars map[string]any) {
	rt, _ := vars["type"].(string)
	if rt == string(theme.ResourceSectionGroup) && f.failSectionGroupList {
		w.Write([]byte(`{"errors":[{"message":"section group listing exploded"}]}`))
		return
	}

	edges := "[]"
	if rt == string(theme.ResourceJSONTemplate) {
		edges = `[
			{"node":{"resourceId":"gid://shopify/OnlineStoreThemeJsonTemplate/111/templates/index.json",
				"translatableContent":[{"key":"title","digest":"src-index"}]}},
			{"node":{"resourceId":"gid://shopify/OnlineStoreThemeJsonTemplate/111/templates/product.json",
				"translatableContent":[{"key":"title","digest":"src-product"}]}},
			{"node":{"resourceId":"gid://shopify/OnlineStoreThemeJsonTemplate/222/templates/index.json",
				"translatableContent":[{"key":"title","digest":"dst-index"}]}}
		]`
	}
	w.Write([]byte(`{"data":{"translatableResources":{
		"pageInfo":{"hasNextPage":false,"endCursor":null},
		"edges":` + edges + `}}}`))
}

func (f *fakeShop) serveTranslations(w http.ResponseWriter, vars map[string]any) {
	ids, _ := vars["ids"].([]any)
	type edge struct {
		Node map[string]any `json:"node"`
	}
	var edges []edge
	for _, raw := range ids {
		id, _ := raw.(string)
		var translations []map[string]any
		if strings.HasSuffix(id, "111/templates/index.json") {
			translations = []map[string]any{{"key": "title", "value": "Hello"}}
		}
		edges = append(edges, edge{Node: map[string]any{"resourceId": id, "translations": translations}})
	}
	resp := map[string]any{"data": map[string]any{
		"translatableResourcesByIds": map[string]any{"edges": edges},
	}}
	out, _ := json.Marshal(resp)
	w.Write(out)
}

func (f *fakeShop) serveRegister(w http.ResponseWriter, vars map[string]any) {
	call := registerCall{ResourceID: vars["id"].(string)}
	for _, raw := range vars["translations"].([]any) {
		call.Translations = append(call.Translations, raw.(map[string]any))
	}
	f.registerCalls = append(f.registerCalls, call)
	w.Write([]byte(`{"data":{"translationsRegister":{"userErrors":[]}}}`))
}

func newTestCopier(t *testing.T, shop *fakeShop, dryRun bool) (*Copier, *bytes.Buffer) {
	t.Helper()
	srv := httptest.NewServer(shop.handler())
	t.Cleanup(srv.Close)

	var buf bytes.Buffer
	rep := &report.Reporter{Out: &buf, Verbose: true}
	client := shopify.NewClient("test.myshopify.com", "token", shopify.WithBaseURL(srv.URL))
	return &Copier{Client: client, Reporter: rep, DryRun: dryRun}, &buf
}

func TestRunCopiesMatchedResources(t *testing.T) {
	shop := &fakeShop{t: t}
	c, _ := newTestCopier(t, shop, false)

	sum := c.Run(context.Background(), 111, 222, []string{"en"})

	if sum.Failed() {
		t.Fatalf("run failed: %v", sum.FetchErrs)
	}

	counts := sum.PerType[theme.ResourceJSONTemplate]
	if counts.Resources != 2 {
		t.Fatalf("source resources = %d, want 2", counts.Resources)
	}
	if counts.Copied != 1 || counts.Skipped != 1 || counts.Failed != 0 {
		t.Fatalf("counts = %+v, want 1 copied / 1 skipped / 0 failed", counts)
	}
	if counts.Translations != 1 {
		t.Fatalf("translations = %d, want 1", counts.Translations)
	}

	if len(shop.registerCalls) != 1 {
		t.Fatalf("register calls = %d, want 1", len(shop.registerCalls))
	}
	call := shop.registerCalls[0]
	if call.ResourceID != "gid://shopify/OnlineStoreThemeJsonTemplate/222/templates/index.json" {
		t.Fatalf("registered on %q, want the destination template", call.ResourceID)
	}
	input := call.Translations[0]
	if input["key"] != "title" || input["value"] != "Hello" || input["locale"] != "en" {
		t.Fatalf("registration input = %v, want en title Hello", input)
	}
	if input["translatableContentDigest"] != "dst-index" {
		t.Fatalf("digest = %v, want the destination digest", input["translatableContentDigest"])
	}
}

func TestRunDryRunMatchesLiveCountsWithoutMutations(t *testing.T) {
	liveShop := &fakeShop{t: t}
	live, _ := newTestCopier(t, liveShop, false)
	liveSum := live.Run(context.Background(), 111, 222, []string{"en"})

	dryShop := &fakeShop{t: t}
	dry, _ := newTestCopier(t, dryShop, true)
	drySum := dry.Run(context.Background(), 111, 222, []string{"en"})

	if len(dryShop.registerCalls) != 0 {
		t.Fatalf("dry-run issued %d mutations, want 0", len(dryShop.registerCalls))
	}

	for _, rt := range theme.ResourceTypes {
		liveCounts, dryCounts := liveSum.PerType[rt], drySum.PerType[rt]
		if *liveCounts != *dryCounts {
			t.Fatalf("%s: dry counts %+v differ from live counts %+v", rt.Label(), dryCounts, liveCounts)
		}
	}
}

func TestRunFetchFailureAbortsTypeOnly(t *testing.T) {
	shop := &fakeShop{t: t, failSectionGroupList: true}
	c, _ := newTestCopier(t, shop, false)

	sum := c.Run(context.Background(), 111, 222, []string{"en"})

	if !sum.Failed() {
		t.Fatal("run should be marked failed after a fetch error")
	}
	if len(sum.FetchErrs) != 1 {
		t.Fatalf("fetch errors = %d, want 1", len(sum.FetchErrs))
	}

	// The broken type contributes nothing; the rest still copies.
	if sum.PerType[theme.ResourceSectionGroup].Resources != 0 {
		t.Fatal("failed type should have no counted resources")
	}
	if sum.PerType[theme.ResourceJSONTemplate].Copied != 1 {
		t.Fatalf("JSON templates copied = %d, want 1 despite the earlier failure", sum.PerType[theme.ResourceJSONTemplate].Copied)
	}
}

func TestRunAccumulatesLocaleTiming(t *testing.T) {
	shop := &fakeShop{t: t}
	c, _ := newTestCopier(t, shop, false)

	sum := c.Run(context.Background(), 111, 222, []string{"en", "fr"})

	for _, locale := range []string{"en", "fr"} {
		if _, ok := sum.LocaleTime[locale]; !ok {
			t.Fatalf("no timing recorded for %s", locale)
		}
	}
}

func TestSummaryPrint(t *testing.T) {
	shop := &fakeShop{t: t}
	c, buf := newTestCopier(t, shop, false)

	sum := c.Run(context.Background(), 111, 222, []string{"en"})
	sum.Print(c.Reporter, true)

	out := buf.String()
	for _, want := range []string{"JSON Templates", "Total", "Timing per locale:", "en:"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary output missing %q:\n%s", want, out)
		}
	}
}
