package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/recipebox/internal/domain"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3f3f46")).
			Padding(0, 1)

	draftCardStyle = cardStyle.
			BorderForeground(lipgloss.Color("#fcd34d"))

	cardTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d9f99d")).
			Bold(true)

	cardIndexStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#57534e"))

	bulletStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d6d3d1"))
)

// maxCardWidth keeps cards readable on wide terminals.
const maxCardWidth = 72

// RenderCard renders one recipe card. index is the 1-based position in
// the visible list, used as a short reference in commands.
func RenderCard(index int, r domain.Recipe, showIngredients bool, width int) string {
	var b strings.Builder
	b.WriteString(cardIndexStyle.Render(fmt.Sprintf("#%d ", index)))
	b.WriteString(cardTitleStyle.Render(r.Name))
	b.WriteString(cardIndexStyle.Render("  (" + r.ID + ")"))

	if r.Description != "" {
		b.WriteString("\n")
		b.WriteString(bodyStyle.Render(r.Description))
	}
	if r.HasImage() {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("image: " + DescribeImage(r.Image)))
	}

	b.WriteString("\n")
	if showIngredients {
		b.WriteString(renderIngredients(r.Ingredients))
	} else {
		b.WriteString(dimStyle.Render(fmt.Sprintf("%d ingredients (toggle %d to view)", len(r.Ingredients), index)))
	}

	return cardStyle.Width(cardWidth(width)).Render(b.String())
}

// RenderDraft renders the open draft as a form preview.
func RenderDraft(d domain.Draft, width int) string {
	var b strings.Builder
	switch d.Mode {
	case domain.ModeEditing:
		b.WriteString(modeDraftStyle.Render("Editing " + d.OriginalID))
	default:
		b.WriteString(modeDraftStyle.Render("New recipe"))
	}

	field := func(label, value string) {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-12s", label)))
		if value == "" {
			b.WriteString(dimStyle.Render("(empty)"))
			return
		}
		b.WriteString(bodyStyle.Render(value))
	}
	field("name", d.Recipe.Name)
	field("description", d.Recipe.Description)
	field("ingredients", domain.JoinIngredients(d.Recipe.Ingredients))
	field("image", DescribeImage(d.Recipe.Image))

	return draftCardStyle.Width(cardWidth(width)).Render(b.String())
}

// DescribeImage shortens embedded images so cards stay one screen tall.
func DescribeImage(src string) string {
	if !strings.HasPrefix(src, "data:") {
		return src
	}
	mime := strings.TrimPrefix(src, "data:")
	if i := strings.IndexAny(mime, ";,"); i >= 0 {
		mime = mime[:i]
	}
	return fmt.Sprintf("embedded %s (%d bytes)", mime, len(src))
}

func renderIngredients(items []string) string {
	if len(items) == 0 {
		return dimStyle.Render("no ingredients")
	}
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = bulletStyle.Render("• ") + bodyStyle.Render(item)
	}
	return strings.Join(lines, "\n")
}

func cardWidth(width int) int {
	if width <= 0 || width > maxCardWidth {
		return maxCardWidth
	}
	return width
}

// PlainCard renders a card without styling, for piped output.
func PlainCard(index int, r domain.Recipe, showIngredients bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d. %s (%s)\n", index, r.Name, r.ID)
	if r.Description != "" {
		fmt.Fprintf(&b, "   %s\n", r.Description)
	}
	if r.HasImage() {
		fmt.Fprintf(&b, "   image: %s\n", DescribeImage(r.Image))
	}
	if showIngredients {
		fmt.Fprintf(&b, "   ingredients: %s\n", domain.JoinIngredients(r.Ingredients))
	} else {
		fmt.Fprintf(&b, "   %d ingredients\n", len(r.Ingredients))
	}
	return b.String()
}
