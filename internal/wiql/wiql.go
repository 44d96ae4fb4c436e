// Package wiql builds Work Item Query Language filter strings for the
// Azure DevOps query endpoint.
package wiql

import (
	"fmt"
	"strings"
)

// Sort directions accepted by SearchQuery.
const (
	Asc  = "asc"
	Desc = "desc"
)

// Escape doubles single quotes so free text is safe inside a WIQL
// string literal.
func Escape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// SearchQuery builds a query selecting work item IDs assigned to the
// given identity, created within the last maxAgeDays days, excluding
// the given states. The caller is responsible for passing a
// non-negative maxAgeDays.
func SearchQuery(assignee string, maxAgeDays int, excludedStates []string, sortField, sortDir string) string {
	var b strings.Builder
	b.WriteString("SELECT [System.Id] FROM WorkItems")
	fmt.Fprintf(&b, " WHERE [System.AssignedTo] = '%s'", Escape(assignee))
	fmt.Fprintf(&b, " AND [System.CreatedDate] >= @Today - %d", maxAgeDays)
	for _, state := range excludedStates {
		fmt.Fprintf(&b, " AND [System.State] <> '%s'", Escape(state))
	}
	fmt.Fprintf(&b, " ORDER BY [%s] %s", sortField, sortDir)
	return b.String()
}

// TitleQuery builds a query selecting work item IDs whose title
// contains the given substring. No date or state filter.
func TitleQuery(substring string) string {
	return fmt.Sprintf(
		"SELECT [System.Id] FROM WorkItems WHERE [System.Title] CONTAINS '%s'",
		Escape(substring))
}
