package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/tada/internal/model"
)

// Palette is the set of colors a theme drives. Styles are derived from it.
type Palette struct {
	Title, Text, Muted, Accent, Success, Pending, Error, Border lipgloss.Color
	SelectedBg                                                  lipgloss.Color
}

var palettes = map[model.Theme]Palette{
	model.ThemeDark: {
		Title: "231", Text: "252", Muted: "245", Accent: "39",
		Success: "42", Pending: "214", Error: "9", Border: "240",
		SelectedBg: "237",
	},
	model.ThemeLight: {
		Title: "16", Text: "235", Muted: "244", Accent: "26",
		Success: "28", Pending: "130", Error: "160", Border: "250",
		SelectedBg: "254",
	},
}

// PaletteFor returns the palette of th, falling back to the default theme.
func PaletteFor(th model.Theme) Palette {
	if p, ok := palettes[th]; ok {
		return p
	}
	return palettes[model.DefaultTheme]
}

// Styles bundles every style the CLI and TUI render with.
type Styles struct {
	Theme model.Theme

	Title, Text, Muted, Accent, Success, Pending, Error lipgloss.Style

	Selected   lipgloss.Style // cursor row
	Done       lipgloss.Style // completed task text
	Picked     lipgloss.Style // row being moved
	DropTarget lipgloss.Style // row under the cursor while moving
	Help       lipgloss.Style
	Panel      lipgloss.Style
	InputBox   lipgloss.Style

	BoxChecked, BoxUnchecked string
}

// NewStyles builds styles for th on renderer r. A nil renderer uses the
// default one bound to stdout.
func NewStyles(r *lipgloss.Renderer, th model.Theme) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	p := PaletteFor(th)
	if _, ok := palettes[th]; !ok {
		th = model.DefaultTheme
	}
	return Styles{
		Theme: th,

		Title:   r.NewStyle().Bold(true).Foreground(p.Title),
		Text:    r.NewStyle().Foreground(p.Text),
		Muted:   r.NewStyle().Foreground(p.Muted),
		Accent:  r.NewStyle().Foreground(p.Accent),
		Success: r.NewStyle().Foreground(p.Success),
		Pending: r.NewStyle().Foreground(p.Pending),
		Error:   r.NewStyle().Foreground(p.Error).Bold(true),

		Selected:   r.NewStyle().Bold(true).Foreground(p.Accent),
		Done:       r.NewStyle().Faint(true).Strikethrough(true),
		Picked:     r.NewStyle().Bold(true).Foreground(p.Pending),
		DropTarget: r.NewStyle().Background(p.SelectedBg).Foreground(p.Accent).Bold(true),
		Help:       r.NewStyle().Foreground(p.Muted),
		Panel: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),
		InputBox: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent).
			Padding(0, 1),

		BoxChecked:   "☑",
		BoxUnchecked: "☐",
	}
}
