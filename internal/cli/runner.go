package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/idilsaglam/tada/internal/export"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/session"
	"github.com/idilsaglam/tada/internal/tasklist"
	"github.com/idilsaglam/tada/internal/ui"
)

// Exit codes: 0 ok, 1 runtime/storage error, 2 usage.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// Options tune output behavior from root flags.
type Options struct {
	Group   bool // list grouped by pending/done
	Printer *ui.Printer
	// RunTUI starts the interactive list. Injected so tests never grab a terminal.
	RunTUI func(*session.Session) error
	// Now stamps exports.
	Now func() time.Time
}

// Run dispatches subcommands and returns an exit code. No subcommand
// opens the interactive list.
func Run(sess *session.Session, args []string, opt Options) int {
	if opt.Now == nil {
		opt.Now = time.Now
	}
	p := opt.Printer
	if len(args) == 0 {
		return doUI(sess, opt)
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(p.Out())
		return exitOK

	case "ui":
		return doUI(sess, opt)

	case "ls":
		fs := newFlagSet("ls", p)
		cat := categoryFlag(fs)
		group := fs.Bool("group", opt.Group, "group by pending/done")
		if err := fs.Parse(a); err != nil {
			return exitUsage
		}
		return doList(sess, p, model.Filter(*cat), *group)

	case "add":
		fs := newFlagSet("add", p)
		cat := categoryFlag(fs)
		if err := fs.Parse(a); err != nil {
			return exitUsage
		}
		if fs.NArg() == 0 && !sess.Cfg.AllowEmptyText {
			p.Fail("usage: tada add [-c category] <text...>")
			return exitUsage
		}
		category := *cat
		if category == "" {
			category = sess.Cfg.DefaultCategory
		}
		return doAdd(sess, p, strings.Join(fs.Args(), " "), category)

	case "edit":
		if len(a) < 1 {
			p.Fail("usage: tada edit <index> <text...>")
			return exitUsage
		}
		n, ok := parseIndex(p, "edit", a[0])
		if !ok {
			return exitUsage
		}
		return doEdit(sess, p, n, strings.Join(a[1:], " "))

	case "done":
		if len(a) != 1 {
			p.Fail("usage: tada done <index>")
			return exitUsage
		}
		n, ok := parseIndex(p, "done", a[0])
		if !ok {
			return exitUsage
		}
		return doToggle(sess, p, n)

	case "rm":
		if len(a) != 1 {
			p.Fail("usage: tada rm <index>")
			return exitUsage
		}
		n, ok := parseIndex(p, "rm", a[0])
		if !ok {
			return exitUsage
		}
		return doRemove(sess, p, n)

	case "mv":
		if len(a) != 2 {
			p.Fail("usage: tada mv <from> <to>")
			return exitUsage
		}
		from, ok := parseIndex(p, "mv", a[0])
		if !ok {
			return exitUsage
		}
		to, ok := parseIndex(p, "mv", a[1])
		if !ok {
			return exitUsage
		}
		return doMove(sess, p, from, to)

	case "theme":
		if len(a) > 1 {
			p.Fail("usage: tada theme [light|dark|toggle]")
			return exitUsage
		}
		arg := ""
		if len(a) == 1 {
			arg = a[0]
		}
		return doTheme(sess, p, arg)

	case "categories":
		for _, c := range sess.Categories() {
			fmt.Fprintln(p.Out(), c)
		}
		return exitOK

	case "export":
		fs := newFlagSet("export", p)
		cat := categoryFlag(fs)
		if err := fs.Parse(a); err != nil {
			return exitUsage
		}
		if fs.NArg() != 1 {
			p.Fail("usage: tada export [-c category] <file.pdf>")
			return exitUsage
		}
		return doExport(sess, p, fs.Arg(0), model.Filter(*cat), opt.Now())
	}

	p.Fail("unknown subcommand: " + cmd)
	PrintHelp(p.Out())
	return exitUsage
}

func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `tada - a categorized todo list

Usage:
  tada [flags] [subcommand] [args]

Subcommands:
  ui                        Interactive list (default)
  add [-c cat] <text...>    Add a task (text can be multiple words)
  ls [-c cat] [--group]     List tasks, optionally one category
  edit <index> <text...>    Replace the text of the task at 1-based index
  done <index>              Toggle done for the task at 1-based index
  rm <index>                Remove the task at 1-based index
  mv <from> <to>            Move a task onto another position
  theme [light|dark|toggle] Show or change the theme
  categories                List known categories
  export [-c cat] <file>    Write a printable PDF checklist

Flags:
  --config <file>   --data-dir <dir>   --log-level <lvl>   --log-format <fmt>
  --log-file <file> --no-color         --group             --allow-empty

Interactive keys:
  a add   e edit   space/x done   d delete   m move (enter drops, esc cancels)
  f/F filter   t theme   y copy   q quit

Examples:
  tada add -c Home "Buy milk"
  tada ls -c Work
  tada done 2
  tada mv 1 3
`)
}

// -------------- subcommand impls ----------------

func doUI(sess *session.Session, opt Options) int {
	if opt.RunTUI == nil {
		opt.Printer.Fail("interactive mode is not available")
		return exitError
	}
	if err := opt.RunTUI(sess); err != nil {
		opt.Printer.Fail("tui: " + err.Error())
		return exitError
	}
	return exitOK
}

func doAdd(sess *session.Session, p *ui.Printer, text, category string) int {
	_, err := sess.List.Add(text, category)
	if err := sess.Apply("add", err); err != nil {
		return report(p, "add", err, sess.List.Len())
	}
	p.OK("added")
	return exitOK
}

func doEdit(sess *session.Session, p *ui.Printer, userIndex int, text string) int {
	t, err := sess.List.At(userIndex - 1)
	if err == nil {
		err = sess.List.SetText(t.ID, text)
	}
	if err := sess.Apply("edit", err); err != nil {
		return report(p, "edit", err, sess.List.Len())
	}
	p.OK("edited")
	return exitOK
}

func doToggle(sess *session.Session, p *ui.Printer, userIndex int) int {
	t, err := sess.List.At(userIndex - 1)
	if err == nil {
		_, err = sess.List.ToggleComplete(t.ID)
	}
	if err := sess.Apply("toggle", err); err != nil {
		return report(p, "done", err, sess.List.Len())
	}
	p.OK("toggled")
	return exitOK
}

func doRemove(sess *session.Session, p *ui.Printer, userIndex int) int {
	t, err := sess.List.At(userIndex - 1)
	if err == nil {
		err = sess.List.Delete(t.ID)
	}
	if err := sess.Apply("delete", err); err != nil {
		return report(p, "rm", err, sess.List.Len())
	}
	p.OK("removed")
	return exitOK
}

func doMove(sess *session.Session, p *ui.Printer, from, to int) int {
	src, err := sess.List.At(from - 1)
	var dst model.Task
	if err == nil {
		dst, err = sess.List.At(to - 1)
	}
	if err == nil {
		err = sess.List.Move(src.ID, dst.ID)
	}
	if err := sess.Apply("move", err); err != nil {
		return report(p, "mv", err, sess.List.Len())
	}
	p.OK("moved")
	return exitOK
}

func doTheme(sess *session.Session, p *ui.Printer, arg string) int {
	var next model.Theme
	switch strings.ToLower(arg) {
	case "":
		fmt.Fprintln(p.Out(), sess.Theme)
		return exitOK
	case "toggle":
		next = sess.Theme.Toggle()
	default:
		th, ok := model.ParseTheme(arg)
		if !ok {
			p.Fail("theme: want light, dark or toggle, got " + arg)
			return exitUsage
		}
		next = th
	}
	if err := sess.SetTheme(next); err != nil {
		p.Fail(err.Error())
		return exitError
	}
	p.OK("theme: " + string(next))
	return exitOK
}

func doExport(sess *session.Session, p *ui.Printer, path string, f model.Filter, now time.Time) int {
	if strings.ToLower(filepath.Ext(path)) != ".pdf" {
		p.Fail("export: only .pdf is supported")
		return exitUsage
	}
	out, err := os.Create(path)
	if err != nil {
		p.Fail("export: " + err.Error())
		return exitError
	}
	title := "Todos"
	if f.String() != model.All {
		title += " - " + f.String()
	}
	tasks := sess.List.Filter(f)
	if err := export.PDF(out, title, tasks, now); err != nil {
		out.Close()
		p.Fail("export: " + err.Error())
		return exitError
	}
	if err := out.Close(); err != nil {
		p.Fail("export: " + err.Error())
		return exitError
	}
	sess.Log.Info("exported", "path", path, "tasks", len(tasks))
	p.OK(fmt.Sprintf("exported %d tasks to %s", len(tasks), path))
	return exitOK
}

// report maps a failed mutation to a message and exit code.
func report(p *ui.Printer, action string, err error, have int) int {
	switch {
	case errors.Is(err, tasklist.ErrNotFound):
		p.Fail(fmt.Sprintf("index out of range: have %d", have))
		p.Hint("Hint: run `tada ls` to see valid indexes")
		return exitUsage
	case errors.Is(err, tasklist.ErrEmptyText):
		p.Fail(action + ": empty text")
		return exitUsage
	case errors.Is(err, tasklist.ErrEmptyCategory):
		p.Fail(action + ": empty category")
		return exitUsage
	}
	p.Fail(action + ": " + err.Error())
	return exitError
}

func parseIndex(p *ui.Printer, cmd, s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		p.Fail(cmd + ": not a number: " + s)
		return 0, false
	}
	return n, true
}

func newFlagSet(name string, p *ui.Printer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() { p.Fail("usage: see `tada help`") }
	return fs
}

func categoryFlag(fs *flag.FlagSet) *string {
	c := new(string)
	fs.StringVar(c, "c", "", "category")
	fs.StringVar(c, "category", "", "category")
	return c
}
