package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/ui"
)

// row adapts a task to bubbles/list.Item. It carries the id, never a
// position, so controls survive filtering and reordering.
type row struct {
	task model.Task
}

func (r row) FilterValue() string { return r.task.Text }

// rowState is shared between the model and the delegate so a theme switch
// or a pick-up restyles rows on the next render.
type rowState struct {
	styles ui.Styles
	moveID string
}

// Custom delegate to control how rows render (single line)
type delegate struct {
	state *rowState
}

func (d delegate) Height() int                               { return 1 }
func (d delegate) Spacing() int                              { return 0 }
func (d delegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d delegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	r, ok := item.(row)
	if !ok {
		return
	}
	s := d.state.styles
	moving := d.state.moveID != ""
	picked := moving && r.task.ID == d.state.moveID
	cursor := index == m.Index()

	box := s.BoxUnchecked
	if r.task.Completed {
		box = s.BoxChecked
	}

	// Drop target: one flat highlight over the whole row.
	if moving && cursor && !picked {
		plain := fmt.Sprintf("%s %s (%s)", box, r.task.Text, r.task.Category)
		fmt.Fprint(w, s.DropTarget.Render("→ "+plain))
		return
	}

	boxStyled := s.Muted.Render(box)
	textStyled := s.Text.Render(r.task.Text)
	if r.task.Completed {
		boxStyled = s.Success.Render(box)
		textStyled = s.Done.Render(r.task.Text)
	}
	line := fmt.Sprintf("%s %s %s", boxStyled, textStyled, s.Muted.Render("("+r.task.Category+")"))

	prefix := "  "
	switch {
	case picked:
		prefix = s.Picked.Render("≡ ")
	case cursor:
		prefix = s.Selected.Render("> ")
	}
	fmt.Fprint(w, prefix+line)
}
