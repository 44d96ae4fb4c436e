package wiql

import (
	"strings"
	"testing"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no quotes", "plain text", "plain text"},
		{"one quote", "O'Brien", "O''Brien"},
		{"several quotes", "a'b'c", "a''b''c"},
		{"only quotes", "'''", "''''''"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Escape(tt.input); got != tt.want {
				t.Errorf("Escape(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEscapeDoublesQuoteCount(t *testing.T) {
	inputs := []string{"x'y", "''", "a'b'c'd", "no quotes here"}
	for _, in := range inputs {
		got := Escape(in)
		want := 2 * strings.Count(in, "'")
		if strings.Count(got, "'") != want {
			t.Errorf("Escape(%q): %d quotes, want %d", in, strings.Count(got, "'"), want)
		}
	}
}

func TestSearchQuery(t *testing.T) {
	got := SearchQuery("dev@example.com", 30, []string{"Closed", "Removed"}, "System.CreatedDate", Desc)
	want := "SELECT [System.Id] FROM WorkItems" +
		" WHERE [System.AssignedTo] = 'dev@example.com'" +
		" AND [System.CreatedDate] >= @Today - 30" +
		" AND [System.State] <> 'Closed'" +
		" AND [System.State] <> 'Removed'" +
		" ORDER BY [System.CreatedDate] desc"
	if got != want {
		t.Errorf("SearchQuery:\n got  %q\n want %q", got, want)
	}
}

func TestSearchQueryNoExcludedStates(t *testing.T) {
	got := SearchQuery("dev@example.com", 7, nil, "System.ChangedDate", Asc)
	if strings.Contains(got, "System.State") {
		t.Errorf("query should carry no state filter: %q", got)
	}
	if !strings.HasSuffix(got, "ORDER BY [System.ChangedDate] asc") {
		t.Errorf("missing sort clause: %q", got)
	}
}

func TestSearchQueryEscapesAssignee(t *testing.T) {
	got := SearchQuery("o'brien@example.com", 30, nil, "System.Id", Asc)
	if !strings.Contains(got, "'o''brien@example.com'") {
		t.Errorf("assignee not escaped into a single quoted literal: %q", got)
	}
}

func TestTitleQuery(t *testing.T) {
	got := TitleQuery("login bug")
	want := "SELECT [System.Id] FROM WorkItems WHERE [System.Title] CONTAINS 'login bug'"
	if got != want {
		t.Errorf("TitleQuery = %q, want %q", got, want)
	}
}

func TestTitleQueryEscapes(t *testing.T) {
	got := TitleQuery("can't reproduce")
	if !strings.Contains(got, "'can''t reproduce'") {
		t.Errorf("substring not escaped: %q", got)
	}
	if strings.Contains(got, "CreatedDate") || strings.Contains(got, "System.State") {
		t.Errorf("title query must not filter on date or state: %q", got)
	}
}
