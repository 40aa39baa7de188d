package theme

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/themetools/themecopy/report"
	"github.com/themetools/themecopy/shopify"
)

// gqlRequest is the decoded body of one GraphQL call to the fake API.
type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// fakeClient starts a fake Admin API that answers every request via
// handle, which returns the raw response body.
func fakeClient(t *testing.T, handle func(req gqlRequest) string) *shopify.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req gqlRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
			return
		}
		w.Write([]byte(handle(req)))
	}))
	t.Cleanup(srv.Close)
	return shopify.NewClient("test.myshopify.com", "token", shopify.WithBaseURL(srv.URL))
}

func quietReporter() *report.Reporter {
	return &report.Reporter{Out: &bytes.Buffer{}}
}

// stringIDs extracts the "ids" variable of a bulk translation query.
func stringIDs(t *testing.T, req gqlRequest) []string {
	t.Helper()
	raw, ok := req.Variables["ids"].([]any)
	if !ok {
		t.Fatalf("ids variable missing or wrong type: %v", req.Variables["ids"])
	}
	ids := make([]string, len(raw))
	for i, v := range raw {
		ids[i], _ = v.(string)
	}
	return ids
}
