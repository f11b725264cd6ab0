package cli

import (
	"fmt"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/session"
	"github.com/idilsaglam/tada/internal/tasklist"
	"github.com/idilsaglam/tada/internal/ui"
)

// numbered keeps a task's 1-based position in the full list, so the
// numbers printed under a filter still work with done/rm/mv.
type numbered struct {
	pos  int
	task model.Task
}

func doList(sess *session.Session, p *ui.Printer, f model.Filter, group bool) int {
	s := p.Styles()
	all := sess.List.Tasks()
	var shown []numbered
	for i, t := range all {
		if f.Match(t) {
			shown = append(shown, numbered{pos: i + 1, task: t})
		}
	}

	d, pn := tasklist.Stats(all)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		s.Title.Render("Todos"),
		s.Success.Render("✔"), d,
		s.Pending.Render("•"), pn,
		s.Accent.Render("Total"), len(all),
	)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, s.Muted.Render(ui.ProgressBar(d, d+pn, 28)))
	if f.String() != model.All {
		lines = append(lines, s.Muted.Render("filter: ")+f.String())
	}
	lines = append(lines, "")

	if group {
		lines = append(lines, groupLines(s, shown)...)
	} else {
		lines = append(lines, flatLines(s, shown)...)
	}
	lines = append(lines, "")
	lines = append(lines, s.Muted.Render("Tip: add with `tada add -c Home \"Buy milk\"`"))
	p.Panel(lines)
	return exitOK
}

func flatLines(s ui.Styles, items []numbered) []string {
	if len(items) == 0 {
		return []string{s.Muted.Render("no tasks")}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		idx := fmt.Sprintf("%2d.", it.pos)
		box := s.Muted.Render(s.BoxUnchecked)
		text := it.task.Text
		if len(text) > 80 {
			text = text[:77] + "..."
		}
		if it.task.Completed {
			box = s.Success.Render(s.BoxChecked)
			text = s.Done.Render(text)
		}
		out = append(out, fmt.Sprintf("%s %s %s %s",
			s.Muted.Render(idx), box, text, s.Muted.Render("("+it.task.Category+")")))
	}
	return out
}

func groupLines(s ui.Styles, items []numbered) []string {
	var pend, done []numbered
	for _, it := range items {
		if it.task.Completed {
			done = append(done, it)
		} else {
			pend = append(pend, it)
		}
	}
	var lines []string
	lines = append(lines, s.Accent.Render("Pending"))
	if len(pend) == 0 {
		lines = append(lines, s.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(s, pend)...)
	}
	lines = append(lines, "")
	lines = append(lines, s.Accent.Render("Done"))
	if len(done) == 0 {
		lines = append(lines, s.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(s, done)...)
	}
	return lines
}
