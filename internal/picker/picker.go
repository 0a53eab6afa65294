package picker

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/kshyr/linkstash/internal/model"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	urlStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true)
)

// chrome is the number of lines used by the header and footer.
const chrome = 4

// Picker is a simple TUI for choosing a stashed link.
// Links are shown newest first, numbered by display index.
type Picker struct {
	links     []model.Link
	cursor    int
	offset    int // first visible link
	selected  bool
	cancelled bool
	width     int
	height    int
	keys      KeyMap
	help      help.Model
}

// New creates a new Picker over links, which must be newest first.
func New(links []model.Link) Picker {
	return Picker{
		links:  links,
		cursor: 0,
		width:  80,
		height: 24,
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		p.help.Width = msg.Width
		p.scroll()
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Quit):
			p.cancelled = true
			return p, tea.Quit

		case key.Matches(msg, p.keys.Open):
			if len(p.links) > 0 {
				p.selected = true
			} else {
				p.cancelled = true
			}
			return p, tea.Quit

		case key.Matches(msg, p.keys.Down):
			if p.cursor < len(p.links)-1 {
				p.cursor++
			}

		case key.Matches(msg, p.keys.Up):
			if p.cursor > 0 {
				p.cursor--
			}

		case key.Matches(msg, p.keys.Top):
			p.cursor = 0

		case key.Matches(msg, p.keys.Bottom):
			if len(p.links) > 0 {
				p.cursor = len(p.links) - 1
			}
		}
		p.scroll()
	}

	return p, nil
}

// visibleCount returns how many links fit on screen (two lines each).
func (p Picker) visibleCount() int {
	n := (p.height - chrome) / 2
	if n < 1 {
		n = 1
	}
	return n
}

// scroll keeps the cursor inside the visible window.
func (p *Picker) scroll() {
	visible := p.visibleCount()
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+visible {
		p.offset = p.cursor - visible + 1
	}
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	// Header
	b.WriteString(headerStyle.Render(fmt.Sprintf("linkstash (%d links)", len(p.links))))
	b.WriteString("\n\n")

	// List items
	end := p.offset + p.visibleCount()
	if end > len(p.links) {
		end = len(p.links)
	}
	for i := p.offset; i < end; i++ {
		link := p.links[i]
		cursor := "  "
		style := normalStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedStyle
		}

		prefix := strconv.Itoa(i+1) + ". "
		width := p.width - len(cursor) - len(prefix)
		title := ansi.Truncate(link.Title, width, "…")
		url := ansi.Truncate(link.URL, width, "…")

		b.WriteString(cursor + style.Render(prefix+title) + "\n")
		b.WriteString(strings.Repeat(" ", len(cursor)+len(prefix)) + urlStyle.Render(url) + "\n")
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(p.help.View(p.keys))

	return b.String()
}

// SelectedIndex returns the display index of the chosen link.
// ok is false if the user cancelled.
func (p Picker) SelectedIndex() (index int, ok bool) {
	if p.cancelled || !p.selected || p.cursor >= len(p.links) {
		return 0, false
	}
	return p.cursor + 1, true
}

// Cancelled returns true if the user cancelled the selection.
func (p Picker) Cancelled() bool {
	return p.cancelled
}

// Selector runs a Picker as a full bubbletea program.
type Selector struct {
	opts []tea.ProgramOption
}

// NewSelector creates a Selector; opts are passed to tea.NewProgram.
func NewSelector(opts ...tea.ProgramOption) *Selector {
	return &Selector{opts: opts}
}

// Select lets the user choose one of links, which must be newest first.
func (s *Selector) Select(ctx context.Context, links []model.Link) (int, bool, error) {
	opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, s.opts...)
	program := tea.NewProgram(New(links), opts...)

	finalModel, err := program.Run()
	if err != nil {
		return 0, false, fmt.Errorf("running picker: %w", err)
	}

	picked := finalModel.(Picker)
	if picked.Cancelled() {
		return 0, false, nil
	}
	index, ok := picked.SelectedIndex()
	return index, ok, nil
}
