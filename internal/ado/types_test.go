package ado

import "testing"

func TestAccessorDefaults(t *testing.T) {
	var empty WorkItem
	if empty.Title() != "" || empty.State() != "" || empty.IterationPath() != "" {
		t.Error("string accessors on an empty item must return \"\"")
	}
	if _, ok := empty.StoryPoints(); ok {
		t.Error("StoryPoints on an empty item must report absent")
	}
	if empty.AssignedTo() != "" {
		t.Error("AssignedTo on an empty item must return \"\"")
	}
}

func TestAccessorMalformedFields(t *testing.T) {
	item := WorkItem{Fields: map[string]any{
		FieldTitle:       42,
		FieldStoryPoints: "five",
	}}
	if item.Title() != "" {
		t.Errorf("Title on a non-string field = %q, want \"\"", item.Title())
	}
	if _, ok := item.StoryPoints(); ok {
		t.Error("StoryPoints on a non-numeric field must report absent")
	}
}

func TestStoryPoints(t *testing.T) {
	item := WorkItem{Fields: map[string]any{FieldStoryPoints: 5.0}}
	points, ok := item.StoryPoints()
	if !ok || points != 5.0 {
		t.Errorf("StoryPoints = %v, %v", points, ok)
	}
}

func TestAssignedToString(t *testing.T) {
	item := WorkItem{Fields: map[string]any{FieldAssignedTo: "dev@example.com"}}
	if got := item.AssignedTo(); got != "dev@example.com" {
		t.Errorf("AssignedTo = %q", got)
	}
}

func TestAssignedToIdentityObject(t *testing.T) {
	tests := []struct {
		name     string
		identity map[string]any
		want     string
	}{
		{
			"unique name preferred",
			map[string]any{"displayName": "Dev Eloper", "uniqueName": "dev@example.com"},
			"dev@example.com",
		},
		{
			"display name fallback",
			map[string]any{"displayName": "Dev Eloper"},
			"Dev Eloper",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := WorkItem{Fields: map[string]any{FieldAssignedTo: tt.identity}}
			if got := item.AssignedTo(); got != tt.want {
				t.Errorf("AssignedTo = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAddField(t *testing.T) {
	op := AddField(FieldTitle, "X")
	if op.Op != "add" || op.Path != "/fields/System.Title" || op.Value != "X" {
		t.Errorf("AddField = %+v", op)
	}
}

func TestRemoveField(t *testing.T) {
	op := RemoveField(FieldStoryPoints)
	if op.Op != "remove" || op.Path != "/fields/Microsoft.VSTS.Scheduling.StoryPoints" {
		t.Errorf("RemoveField = %+v", op)
	}
	if op.Value != nil {
		t.Errorf("remove op must carry no value: %+v", op)
	}
}
