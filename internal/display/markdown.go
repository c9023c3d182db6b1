package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/hammamikhairi/recipebox/internal/domain"
)

// RecipeMarkdown builds the detail view of a recipe as markdown.
func RecipeMarkdown(r domain.Recipe) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", r.Name)
	if r.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", r.Description)
	}
	b.WriteString("## Ingredients\n\n")
	if len(r.Ingredients) == 0 {
		b.WriteString("_none_\n")
	}
	for _, item := range r.Ingredients {
		fmt.Fprintf(&b, "- %s\n", item)
	}
	if r.HasImage() {
		fmt.Fprintf(&b, "\n_Image: %s_\n", DescribeImage(r.Image))
	}
	fmt.Fprintf(&b, "\n`id: %s`\n", r.ID)
	return b.String()
}

// RenderMarkdown renders markdown for the terminal.
// Returns the original text if rendering fails or styling is off.
func RenderMarkdown(markdown string, styled bool) string {
	if !styled {
		return markdown
	}

	// Long lines are hard to scan; cap the wrap width.
	const maxReadableWidth = 100
	wrapWidth := TermWidth()
	if wrapWidth > maxReadableWidth {
		wrapWidth = maxReadableWidth
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrapWidth),
	)
	if err != nil {
		return markdown
	}
	rendered, err := renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return rendered
}
