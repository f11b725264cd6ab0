// Package tui is the interactive task list.
//
// Every mutation follows the same loop: change the session's list, persist
// it in full, rebuild every visible row from the list and the current
// category filter.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/session"
	"github.com/idilsaglam/tada/internal/tasklist"
	"github.com/idilsaglam/tada/internal/ui"
)

type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeEdit
	modeMove
)

// Options tune the TUI.
type Options struct {
	// CopyText writes to the clipboard. Defaults to atotto/clipboard.
	CopyText func(string) error
}

// Model implements tea.Model over a session.
type Model struct {
	sess *session.Session
	keys keyMap
	opts Options

	list  list.Model
	rows  *rowState
	input textinput.Model

	mode      mode
	filters   []model.Filter
	filterIdx int
	addCat    int    // index into sess.Categories() while adding
	editID    string // task being edited

	status    string
	statusErr bool
	width     int
	height    int
}

// New builds the model and renders the initial rows with the saved theme.
func New(sess *session.Session, opts Options) *Model {
	if opts.CopyText == nil {
		opts.CopyText = clipboard.WriteAll
	}
	rs := &rowState{styles: ui.NewStyles(nil, sess.Theme)}

	l := list.New(nil, delegate{state: rs}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.SetStatusBarItemName("task", "tasks")

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	m := &Model{
		sess:   sess,
		keys:   newKeyMap(),
		opts:   opts,
		list:   l,
		rows:   rs,
		input:  ti,
		width:  80,
		height: 24,
	}
	m.list.AdditionalShortHelpKeys = m.helpKeys
	m.list.AdditionalFullHelpKeys = m.helpKeys
	m.applyStyles()
	m.filters = sess.Filters()
	m.resize()
	m.render()
	return m
}

// Run starts the program on the terminal and blocks until quit.
func Run(sess *session.Session, opts Options) error {
	p := tea.NewProgram(New(sess, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case modeAdd, modeEdit:
			return m.updateInput(msg)
		case modeMove:
			return m.updateMove(msg)
		}
		return m.updateBrowse(msg)
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Add):
		if len(m.sess.Categories()) == 0 {
			m.setStatus("no categories configured", true)
			return m, nil
		}
		m.mode = modeAdd
		m.addCat = m.defaultAddCategory()
		m.input.SetValue("")
		m.input.Placeholder = "New task..."
		m.clearStatus()
		m.resize()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Edit):
		r, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.mode = modeEdit
		m.editID = r.task.ID
		m.input.SetValue(r.task.Text)
		m.input.CursorEnd()
		m.input.Placeholder = "Task text..."
		m.clearStatus()
		m.resize()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Toggle):
		if r, ok := m.selected(); ok {
			_, err := m.sess.List.ToggleComplete(r.task.ID)
			m.commit("toggle", err, r.task.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if r, ok := m.selected(); ok {
			m.commit("delete", m.sess.List.Delete(r.task.ID), "")
		}
		return m, nil

	case key.Matches(msg, m.keys.Move):
		// dragstart
		if r, ok := m.selected(); ok {
			m.mode = modeMove
			m.rows.moveID = r.task.ID
			m.setStatus("moving: pick a target and press enter", false)
		}
		return m, nil

	case key.Matches(msg, m.keys.NextFilter):
		m.cycleFilter(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevFilter):
		m.cycleFilter(-1)
		return m, nil

	case key.Matches(msg, m.keys.Theme):
		th, err := m.sess.ToggleTheme()
		if err != nil {
			m.setStatus("theme: "+err.Error(), true)
			return m, nil
		}
		m.rows.styles = ui.NewStyles(nil, th)
		m.applyStyles()
		m.render()
		m.setStatus("theme: "+string(th), false)
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		if r, ok := m.selected(); ok {
			if err := m.opts.CopyText(r.task.Text); err != nil {
				m.sess.Log.Warn("clipboard write failed", "err", err)
				m.setStatus("copy: "+err.Error(), true)
			} else {
				m.setStatus("copied", false)
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// updateMove handles the pick-up/hover/drop cycle. Cursor keys go to the
// list; the row under the cursor is the drop target.
func (m *Model) updateMove(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit) && msg.String() == "ctrl+c":
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		// dragleave
		m.endMove()
		m.clearStatus()
		return m, nil

	case key.Matches(msg, m.keys.Drop), key.Matches(msg, m.keys.Move):
		src := m.rows.moveID
		m.endMove()
		if r, ok := m.selected(); ok {
			m.commit("move", m.sess.List.Move(src, r.task.ID), src)
		}
		return m, nil

	case key.Matches(msg, m.keys.NextFilter):
		m.cycleFilter(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevFilter):
		m.cycleFilter(-1)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closeInput()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		if m.mode == modeAdd {
			cats := m.sess.Categories()
			t, err := m.sess.List.Add(m.input.Value(), cats[m.addCat])
			if !m.commit("add", err, t.ID) {
				return m, nil
			}
		} else {
			if !m.commit("edit", m.sess.List.SetText(m.editID, m.input.Value()), m.editID) {
				return m, nil
			}
		}
		m.closeInput()
		return m, nil

	case m.mode == modeAdd && key.Matches(msg, m.keys.NextCategory):
		m.addCat = (m.addCat + 1) % len(m.sess.Categories())
		return m, nil

	case m.mode == modeAdd && key.Matches(msg, m.keys.PrevCategory):
		n := len(m.sess.Categories())
		m.addCat = (m.addCat - 1 + n) % n
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// commit persists a mutation and re-renders. It reports whether the
// mutation went through; on failure the list is unchanged and the error
// is shown in the status line.
func (m *Model) commit(action string, err error, focusID string) bool {
	if err := m.sess.Apply(action, err); err != nil {
		switch {
		case errors.Is(err, tasklist.ErrEmptyText):
			m.setStatus("task text cannot be empty", true)
		case errors.Is(err, tasklist.ErrNotFound):
			m.setStatus(action+": task no longer exists", true)
			m.render()
		default:
			m.setStatus(action+": "+err.Error(), true)
		}
		return false
	}
	m.filters = m.sess.Filters()
	m.render()
	if focusID != "" {
		m.selectID(focusID)
	}
	m.clearStatus()
	return true
}

// render rebuilds every row from the list and the current filter.
func (m *Model) render() {
	f := m.filter()
	tasks := m.sess.List.Filter(f)
	items := make([]list.Item, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, row{task: t})
	}
	m.list.SetItems(items)
	if n := len(items); n > 0 && m.list.Index() >= n {
		m.list.Select(n - 1)
	}

	all := m.sess.List.Tasks()
	dn, pn := tasklist.Stats(all)
	s := m.rows.styles
	m.list.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d   %s %s",
		"Todos",
		s.Success.Render("✔"), dn,
		s.Pending.Render("•"), pn,
		s.Accent.Render("Total"), len(all),
		s.Muted.Render("filter:"), f.String(),
	)
}

func (m *Model) filter() model.Filter {
	if m.filterIdx < 0 || m.filterIdx >= len(m.filters) {
		m.filterIdx = 0
	}
	if len(m.filters) == 0 {
		return model.All
	}
	return m.filters[m.filterIdx]
}

// cycleFilter changes only what is displayed; nothing is saved.
func (m *Model) cycleFilter(step int) {
	n := len(m.filters)
	if n == 0 {
		return
	}
	var keep string
	if r, ok := m.selected(); ok {
		keep = r.task.ID
	}
	m.filterIdx = ((m.filterIdx+step)%n + n) % n
	m.render()
	if keep != "" {
		m.selectID(keep)
	}
	m.sess.Log.Debug("filter changed", "filter", m.filter().String())
}

func (m *Model) defaultAddCategory() int {
	cats := m.sess.Categories()
	want := m.sess.Cfg.DefaultCategory
	if f := m.filter(); f != model.All {
		want = string(f)
	}
	for i, c := range cats {
		if c == want {
			return i
		}
	}
	return 0
}

func (m *Model) selected() (row, bool) {
	r, ok := m.list.SelectedItem().(row)
	return r, ok
}

func (m *Model) selectID(id string) {
	for i, it := range m.list.Items() {
		if r, ok := it.(row); ok && r.task.ID == id {
			m.list.Select(i)
			return
		}
	}
}

func (m *Model) endMove() {
	m.mode = modeBrowse
	m.rows.moveID = ""
}

func (m *Model) closeInput() {
	m.mode = modeBrowse
	m.editID = ""
	m.input.SetValue("")
	m.input.Blur()
	m.resize()
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status, m.statusErr = s, isErr
}

func (m *Model) clearStatus() { m.setStatus("", false) }

func (m *Model) helpKeys() []key.Binding {
	if m.mode == modeMove {
		return m.keys.moveHelp()
	}
	return m.keys.browseHelp()
}

func (m *Model) applyStyles() {
	s := m.rows.styles
	m.list.Styles.Title = s.Title
	m.list.Styles.HelpStyle = s.Help
	m.list.Styles.PaginationStyle = s.Help
	m.list.Styles.StatusBar = s.Muted
	m.input.PromptStyle = s.Accent
	m.input.TextStyle = s.Text
}

func (m *Model) resize() {
	h := m.height - 4
	if m.mode == modeAdd || m.mode == modeEdit {
		h -= 4
	}
	if h < 3 {
		h = 3
	}
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	m.list.SetSize(w, h)
}

func (m *Model) View() string {
	s := m.rows.styles
	content := m.list.View()

	if m.mode == modeAdd || m.mode == modeEdit {
		title := "Edit task"
		if m.mode == modeAdd {
			title = "Add task " + s.Muted.Render("category:") + " " +
				s.Accent.Render(m.sess.Categories()[m.addCat]) + " " + s.Help.Render("(tab to change)")
		}
		if m.status != "" && m.statusErr {
			title += " — " + s.Error.Render(m.status)
		}
		content += "\n" + s.InputBox.Render(title+"\n"+m.input.View())
	} else if m.status != "" {
		st := s.Muted
		if m.statusErr {
			st = s.Error
		}
		content += "\n" + st.Render(m.status)
	}

	footer := s.Help.Render(fmt.Sprintf("theme: %s", m.sess.Theme))
	return s.Panel.Render(strings.TrimRight(content, "\n") + "\n" + footer)
}
