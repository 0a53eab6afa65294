package render

import "github.com/charmbracelet/lipgloss"

// Styles holds all lipgloss styles for command output.
type Styles struct {
	Logo   lipgloss.Style
	Index  lipgloss.Style // display number in the list
	Title  lipgloss.Style
	URL    lipgloss.Style
	Note   lipgloss.Style // program names and other secondary text
	Error  lipgloss.Style
	Notice lipgloss.Style // URL inside confirmations
}

// DefaultStyles returns the default style configuration for renderer r.
// A nil renderer uses lipgloss's default (stdout) renderer.
func DefaultStyles(r *lipgloss.Renderer) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}

	accent := lipgloss.AdaptiveColor{Light: "#1F5FAF", Dark: "#5F87D7"} // link blue
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#808080"}
	danger := lipgloss.Color("#FA6464")

	return Styles{
		Logo: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#AAAAF0")),

		Index: r.NewStyle().
			Bold(true),

		Title: r.NewStyle().
			Bold(true).
			Foreground(accent),

		URL: r.NewStyle().
			Italic(true),

		Note: r.NewStyle().
			Foreground(subtle),

		Error: r.NewStyle().
			Bold(true).
			Foreground(danger),

		Notice: r.NewStyle().
			Italic(true),
	}
}
