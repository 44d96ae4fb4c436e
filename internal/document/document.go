// Package document marshals a single work item into an editable
// markdown file with YAML frontmatter and parses the edited file back
// into patch operations.
package document

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dr-neptune/ado-cli/internal/ado"
	"github.com/dr-neptune/ado-cli/internal/markup"
)

// Doc is the intermediate representation between a work item and its
// editable markdown file.
type Doc struct {
	ID                 int
	Title              string
	State              string
	Points             *float64
	Iteration          string
	Assignee           string
	Rev                int
	Description        string
	AcceptanceCriteria string
}

type frontmatter struct {
	ID        int      `yaml:"id"`
	Title     string   `yaml:"title"`
	State     string   `yaml:"state"`
	Points    *float64 `yaml:"points,omitempty"`
	Iteration string   `yaml:"iteration,omitempty"`
	Assignee  string   `yaml:"assignee,omitempty"`
	Rev       int      `yaml:"rev"`
	URL       string   `yaml:"url,omitempty"`
	Synced    string   `yaml:"synced,omitempty"`
}

// Marshal renders a work item as an editable markdown document. The
// frontmatter goes through the YAML encoder so titles with colons or
// other YAML-significant characters survive the round trip back
// through Unmarshal.
func Marshal(item ado.WorkItem, baseURL, project string) string {
	baseURL = strings.TrimRight(baseURL, "/")

	meta := frontmatter{
		ID:        item.ID,
		Title:     item.Title(),
		State:     item.State(),
		Iteration: item.IterationPath(),
		Assignee:  item.AssignedTo(),
		Rev:       item.Rev,
		URL:       fmt.Sprintf("%s/%s/_workitems/edit/%d", baseURL, project, item.ID),
		Synced:    time.Now().UTC().Format(time.RFC3339),
	}
	if points, ok := item.StoryPoints(); ok {
		meta.Points = &points
	}
	fm, _ := yaml.Marshal(meta)

	var b strings.Builder

	b.WriteString("---\n")
	b.WriteString("# title, state, points, and the sections below are pushed on 'ado push';\n")
	b.WriteString("# delete the points line to clear the estimate.\n")
	b.WriteString("# id, rev, iteration, url, and synced are read-only context.\n")
	b.Write(fm)
	b.WriteString("---\n\n")

	b.WriteString(fmt.Sprintf("# #%d: %s\n\n", item.ID, item.Title()))

	b.WriteString("## Description\n\n")
	if desc := item.Description(); desc != "" {
		writeBlock(&b, markup.ToLocal(desc))
	}
	b.WriteString("\n")

	b.WriteString("## Acceptance Criteria\n\n")
	if criteria := item.AcceptanceCriteria(); criteria != "" {
		writeBlock(&b, markup.ToLocal(criteria))
	}

	return b.String()
}

func writeBlock(b *strings.Builder, text string) {
	b.WriteString(text)
	if !strings.HasSuffix(text, "\n") {
		b.WriteString("\n")
	}
}

// Unmarshal parses an edited markdown document back into a Doc.
func Unmarshal(content string) (*Doc, error) {
	fm, body, err := splitFrontmatter(content)
	if err != nil {
		return nil, err
	}

	var meta frontmatter
	if err := yaml.Unmarshal([]byte(fm), &meta); err != nil {
		return nil, fmt.Errorf("parsing frontmatter: %w", err)
	}
	if meta.ID <= 0 {
		return nil, fmt.Errorf("frontmatter missing required 'id' field")
	}

	body = stripTitleHeading(body)
	desc, criteria := splitSections(body)

	return &Doc{
		ID:                 meta.ID,
		Title:              meta.Title,
		State:              meta.State,
		Points:             meta.Points,
		Iteration:          meta.Iteration,
		Assignee:           meta.Assignee,
		Rev:                meta.Rev,
		Description:        strings.TrimSpace(desc),
		AcceptanceCriteria: strings.TrimSpace(criteria),
	}, nil
}

// ChangedOps compares the edited document against the current remote
// state and returns one add operation per changed field, plus a
// human-readable change list for dry runs. Rich-text fields are
// compared in their local form, so conversion noise does not produce
// spurious updates.
func ChangedOps(doc *Doc, current ado.WorkItem) ([]ado.PatchOp, []string) {
	var ops []ado.PatchOp
	var changes []string

	if doc.Title != current.Title() {
		ops = append(ops, ado.AddField(ado.FieldTitle, doc.Title))
		changes = append(changes, fmt.Sprintf("title: %q -> %q", current.Title(), doc.Title))
	}
	if doc.State != "" && doc.State != current.State() {
		ops = append(ops, ado.AddField(ado.FieldState, doc.State))
		changes = append(changes, fmt.Sprintf("state: %q -> %q", current.State(), doc.State))
	}
	if doc.Points != nil {
		currentPoints, ok := current.StoryPoints()
		if !ok || currentPoints != *doc.Points {
			ops = append(ops, ado.AddField(ado.FieldStoryPoints, *doc.Points))
			changes = append(changes, fmt.Sprintf("points: %g -> %g", currentPoints, *doc.Points))
		}
	} else if currentPoints, ok := current.StoryPoints(); ok {
		// Deleting the points line clears the remote estimate.
		ops = append(ops, ado.RemoveField(ado.FieldStoryPoints))
		changes = append(changes, fmt.Sprintf("points: %g -> (cleared)", currentPoints))
	}
	if doc.Description != markup.ToLocal(current.Description()) {
		ops = append(ops, ado.AddField(ado.FieldDescription, markup.ToRemote(doc.Description)))
		changes = append(changes, "description: (updated)")
	}
	if doc.AcceptanceCriteria != markup.ToLocal(current.AcceptanceCriteria()) {
		ops = append(ops, ado.AddField(ado.FieldAcceptanceCriteria, markup.ToRemote(doc.AcceptanceCriteria)))
		changes = append(changes, "acceptance criteria: (updated)")
	}

	return ops, changes
}

// CreateOps builds the patch document for a new work item.
func CreateOps(title, description string, points float64, assignee string) []ado.PatchOp {
	return []ado.PatchOp{
		ado.AddField(ado.FieldTitle, title),
		ado.AddField(ado.FieldDescription, markup.ToRemote(description)),
		ado.AddField(ado.FieldAssignedTo, assignee),
		ado.AddField(ado.FieldStoryPoints, points),
	}
}

// splitFrontmatter separates YAML frontmatter from the body.
func splitFrontmatter(content string) (string, string, error) {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "---") {
		return "", "", fmt.Errorf("no YAML frontmatter found (must start with ---)")
	}

	rest := content[3:]
	rest = strings.TrimLeft(rest, "\n\r")
	idx := strings.Index(rest, "\n---")
	if idx < 0 {
		return "", "", fmt.Errorf("no closing --- for frontmatter")
	}

	fm := rest[:idx]
	body := rest[idx+4:]
	body = strings.TrimLeft(body, "\n\r")

	return fm, body, nil
}

// stripTitleHeading removes the "# #<id>: Title" heading from the body.
func stripTitleHeading(body string) string {
	lines := strings.SplitN(body, "\n", 2)
	if len(lines) > 0 && strings.HasPrefix(strings.TrimSpace(lines[0]), "# ") {
		if len(lines) > 1 {
			return strings.TrimLeft(lines[1], "\n\r")
		}
		return ""
	}
	return body
}

var (
	descriptionHeading = regexp.MustCompile(`(?m)^## Description\s*$`)
	criteriaHeading    = regexp.MustCompile(`(?m)^## Acceptance Criteria\s*$`)
)

// splitSections separates the Description and Acceptance Criteria
// sections. Either heading may be absent; without a Description heading
// the whole remaining body is the description.
func splitSections(body string) (string, string) {
	criteria := ""
	if loc := criteriaHeading.FindStringIndex(body); loc != nil {
		criteria = body[loc[1]:]
		body = body[:loc[0]]
	}
	if loc := descriptionHeading.FindStringIndex(body); loc != nil {
		body = body[loc[1]:]
	}
	return body, criteria
}
