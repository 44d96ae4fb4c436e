// Package report partitions fetched work items into named sprint
// buckets and renders them as a sectioned markdown document.
package report

import (
	"fmt"
	"strings"

	"github.com/dr-neptune/ado-cli/internal/ado"
	"github.com/dr-neptune/ado-cli/internal/config"
	"github.com/dr-neptune/ado-cli/internal/markup"
)

// Rule maps exact iteration paths to buckets. Buckets render in
// declared order; CatchAll, when non-empty, names a trailing bucket for
// work items whose iteration path matches no entry. With no catch-all,
// unmatched items are dropped and reported in the drop count.
type Rule struct {
	Buckets  []config.Bucket
	CatchAll string
}

// Render builds the sectioned document from the fetched work items and
// returns it along with the number of items dropped because their
// iteration path matched no bucket. Items keep their fetched order
// within a bucket, and each item lands in exactly one section.
func Render(items []ado.WorkItem, rule Rule) (string, int) {
	grouped := make(map[string][]ado.WorkItem, len(rule.Buckets)+1)
	dropped := 0

	for _, item := range items {
		name, ok := rule.bucketFor(item.IterationPath())
		if !ok {
			dropped++
			continue
		}
		grouped[name] = append(grouped[name], item)
	}

	var b strings.Builder
	b.WriteString("<!-- Generated from Azure DevOps. This overview is read-only; -->\n")
	b.WriteString("<!-- edit a single item via 'ado get <id>' and 'ado push'. -->\n\n")

	for _, name := range rule.sectionOrder() {
		b.WriteString(fmt.Sprintf("# %s\n\n", name))
		for _, item := range grouped[name] {
			writeEntry(&b, item)
		}
	}

	return b.String(), dropped
}

func (r Rule) bucketFor(iterationPath string) (string, bool) {
	for _, bucket := range r.Buckets {
		if bucket.Path == iterationPath {
			return bucket.Name, true
		}
	}
	if r.CatchAll != "" {
		return r.CatchAll, true
	}
	return "", false
}

func (r Rule) sectionOrder() []string {
	names := make([]string, 0, len(r.Buckets)+1)
	for _, bucket := range r.Buckets {
		names = append(names, bucket.Name)
	}
	if r.CatchAll != "" {
		names = append(names, r.CatchAll)
	}
	return names
}

func writeEntry(b *strings.Builder, item ado.WorkItem) {
	header := fmt.Sprintf("## #%d %s [%s]", item.ID, item.Title(), item.State())
	if points, ok := item.StoryPoints(); ok {
		header += fmt.Sprintf(" (%g pts)", points)
	}
	b.WriteString(header)
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("Iteration: %s\n\n", item.IterationPath()))

	if desc := item.Description(); desc != "" {
		b.WriteString("### Description\n\n")
		b.WriteString(markup.ToLocal(desc))
		b.WriteString("\n\n")
	}
	if criteria := item.AcceptanceCriteria(); criteria != "" {
		b.WriteString("### Acceptance Criteria\n\n")
		b.WriteString(markup.ToLocal(criteria))
		b.WriteString("\n\n")
	}
}
