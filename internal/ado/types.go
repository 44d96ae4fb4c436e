package ado

// Fully-qualified field reference names used by the work item API.
// Field access by name is centralized here and in the WorkItem
// accessors so new fields are added in one place.
const (
	FieldTitle              = "System.Title"
	FieldState              = "System.State"
	FieldDescription        = "System.Description"
	FieldIterationPath      = "System.IterationPath"
	FieldAssignedTo         = "System.AssignedTo"
	FieldCreatedDate        = "System.CreatedDate"
	FieldAcceptanceCriteria = "Microsoft.VSTS.Common.AcceptanceCriteria"
	FieldStoryPoints        = "Microsoft.VSTS.Scheduling.StoryPoints"
)

// DisplayFields is the field set fetched for rendering and editing.
var DisplayFields = []string{
	FieldTitle,
	FieldState,
	FieldDescription,
	FieldAcceptanceCriteria,
	FieldStoryPoints,
	FieldIterationPath,
	FieldAssignedTo,
}

// WiqlRequest is the body for POST _apis/wit/wiql.
type WiqlRequest struct {
	Query string `json:"query"`
}

// WiqlResponse wraps the flat-query result.
type WiqlResponse struct {
	WorkItems []WorkItemRef `json:"workItems"`
}

// WorkItemRef is a work item reference returned by a query.
type WorkItemRef struct {
	ID int `json:"id"`
}

// BatchRequest is the body for POST _apis/wit/workitemsbatch.
type BatchRequest struct {
	IDs    []int    `json:"ids"`
	Fields []string `json:"fields,omitempty"`
	Expand string   `json:"$expand,omitempty"`
}

// BatchResponse wraps the batch result.
type BatchResponse struct {
	Count int        `json:"count"`
	Value []WorkItem `json:"value"`
}

// WorkItem is a work item as returned by the batch and single-item
// endpoints. Fields is keyed by fully-qualified reference name; use
// the typed accessors rather than indexing it directly.
type WorkItem struct {
	ID     int            `json:"id"`
	Rev    int            `json:"rev"`
	Fields map[string]any `json:"fields"`
}

// PatchOp is a single JSON-patch operation against a work item field.
type PatchOp struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value,omitempty"`
}

// AddField builds an "add" operation for the given field reference name.
func AddField(field string, value any) PatchOp {
	return PatchOp{Op: "add", Path: "/fields/" + field, Value: value}
}

// RemoveField builds a "remove" operation that clears the given field.
func RemoveField(field string) PatchOp {
	return PatchOp{Op: "remove", Path: "/fields/" + field}
}

// Title returns the work item title, or "" when absent.
func (w WorkItem) Title() string { return w.stringField(FieldTitle) }

// State returns the work item state, or "" when absent.
func (w WorkItem) State() string { return w.stringField(FieldState) }

// Description returns the raw HTML description, or "" when absent.
func (w WorkItem) Description() string { return w.stringField(FieldDescription) }

// AcceptanceCriteria returns the raw HTML acceptance criteria, or ""
// when absent.
func (w WorkItem) AcceptanceCriteria() string { return w.stringField(FieldAcceptanceCriteria) }

// IterationPath returns the iteration path, or "" when absent.
func (w WorkItem) IterationPath() string { return w.stringField(FieldIterationPath) }

// StoryPoints returns the story point estimate and whether one is set.
func (w WorkItem) StoryPoints() (float64, bool) {
	switch v := w.Fields[FieldStoryPoints].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

// AssignedTo returns the assignee identity. The API returns either a
// plain string or an identity object; both forms are handled, with the
// unique name preferred over the display name.
func (w WorkItem) AssignedTo() string {
	switch v := w.Fields[FieldAssignedTo].(type) {
	case string:
		return v
	case map[string]any:
		if s, ok := v["uniqueName"].(string); ok && s != "" {
			return s
		}
		if s, ok := v["displayName"].(string); ok {
			return s
		}
	}
	return ""
}

func (w WorkItem) stringField(field string) string {
	s, _ := w.Fields[field].(string)
	return s
}
