package report

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dr-neptune/ado-cli/internal/ado"
	"github.com/dr-neptune/ado-cli/internal/config"
)

// Full fetch cycle: query for ids, batch-fetch the fields, render the
// sectioned report.
func TestQueryFetchRenderFlow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/wiql"):
			w.Write([]byte(`{"workItems":[{"id":1},{"id":2}]}`))
		case strings.HasSuffix(r.URL.Path, "/workitemsbatch"):
			w.Write([]byte(`{"count":2,"value":[
				{"id":1,"rev":1,"fields":{
					"System.Title":"Sprint item","System.State":"Active",
					"System.IterationPath":"Fabrikam\\Sprint 1"}},
				{"id":2,"rev":1,"fields":{
					"System.Title":"Backlog item","System.State":"New",
					"System.IterationPath":"Fabrikam\\Backlog"}}
			]}`))
		default:
			t.Errorf("unexpected request to %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := ado.New(config.Config{
		URL:     server.URL,
		Project: "Fabrikam",
		User:    "dev@example.com",
		Token:   "pat",
	})

	ctx := context.Background()
	ids, err := client.RunQuery(ctx, "SELECT [System.Id] FROM WorkItems")
	if err != nil {
		t.Fatalf("RunQuery: %v", err)
	}
	items, err := client.FetchBatch(ctx, ids, ado.DisplayFields)
	if err != nil {
		t.Fatalf("FetchBatch: %v", err)
	}

	doc, dropped := Render(items, sprintRule)
	if dropped != 0 {
		t.Errorf("dropped = %d, want 0", dropped)
	}

	sprintIdx := strings.Index(doc, "# Current Sprint")
	backlogIdx := strings.Index(doc, "# Backlog")
	if sprintIdx < 0 || backlogIdx < 0 || sprintIdx > backlogIdx {
		t.Fatalf("sections missing or out of order:\n%s", doc)
	}
	if !strings.Contains(doc, "## #1 Sprint item [Active]") {
		t.Errorf("sprint entry missing:\n%s", doc)
	}
	if !strings.Contains(doc, "## #2 Backlog item [New]") {
		t.Errorf("backlog entry missing:\n%s", doc)
	}
	if got := strings.Count(doc, "## #"); got != 2 {
		t.Errorf("report has %d entries, want 2:\n%s", got, doc)
	}
}
