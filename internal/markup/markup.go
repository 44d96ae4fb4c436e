// Package markup converts work item rich-text fields between the HTML
// the service stores and the local markdown documents. The two
// directions are independent best-effort transforms, not inverses.
package markup

import (
	"bytes"
	"regexp"
	"strings"
	"sync"

	htmltomd "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// The goldmark instance is configured once and shared; parsing state is
// per-call.
var (
	markdownInstance goldmark.Markdown
	markdownOnce     sync.Once
)

func getMarkdown() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdownInstance = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		)
	})
	return markdownInstance
}

var (
	openWrapper  = regexp.MustCompile(`(?s)^<(?:div|p)>\s*`)
	closeWrapper = regexp.MustCompile(`(?s)\s*</(?:div|p)>$`)
	residualTag  = regexp.MustCompile(`<[^>]*>`)
)

// ToRemote renders local markdown to the unwrapped inline HTML fragment
// the work item fields store. A single outermost <p> or <div> container
// is stripped, anchored at the very start and end of the fragment, so a
// one-paragraph description is stored without a block wrapper.
func ToRemote(md string) string {
	var buf bytes.Buffer
	if err := getMarkdown().Convert([]byte(md), &buf); err != nil {
		// Conversion over an in-memory buffer cannot fail in practice;
		// fall back to the raw text rather than dropping the field.
		return strings.TrimSpace(md)
	}
	html := strings.TrimSpace(buf.String())
	html = openWrapper.ReplaceAllString(html, "")
	html = closeWrapper.ReplaceAllString(html, "")
	return strings.TrimSpace(html)
}

// ToLocal converts a work item HTML fragment to markdown. Whatever the
// generic converter leaves behind is swept for remaining tag-like
// substrings, so the result is guaranteed tag-free. Lossy by design:
// round-trips preserve structure, not bytes.
func ToLocal(html string) string {
	converter := htmltomd.NewConverter("", true, nil)
	md, err := converter.ConvertString(html)
	if err != nil {
		md = html
	}
	md = residualTag.ReplaceAllString(md, "")
	return strings.TrimSpace(md)
}
