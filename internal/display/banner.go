package display

import (
	_ "embed"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

//go:embed banner.txt
var bannerRaw string

// Tagline is printed under the banner art.
const Tagline = "a pocket recipe catalog"

// RenderBanner returns the banner art and tagline centred for the
// current terminal width. To change the art just replace banner.txt.
func RenderBanner() string {
	return renderBanner(TermWidth())
}

func renderBanner(width int) string {
	lines := strings.Split(strings.TrimRight(bannerRaw, "\n"), "\n")
	art := BannerStyle.Render(strings.Join(lines, "\n"))
	tag := dimStyle.Render(Tagline)

	block := lipgloss.JoinVertical(lipgloss.Center, art, "", tag)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block) + "\n"
}

// TermWidth returns the current terminal column count, or 80 as fallback.
func TermWidth() int {
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return 80
}
