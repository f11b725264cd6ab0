// Package tasklist holds the ordered task list and its state transitions.
// It has no knowledge of storage or rendering; callers persist and redraw
// after every successful mutation.
package tasklist

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/idilsaglam/tada/internal/model"
)

var (
	// ErrNotFound is returned when an id or position does not resolve to a task.
	ErrNotFound = errors.New("task not found")
	// ErrEmptyText is returned when text is blank and empty text is not allowed.
	ErrEmptyText = errors.New("empty task text")
	// ErrEmptyCategory is returned by Add without a category.
	ErrEmptyCategory = errors.New("empty category")
)

// Options tune list behavior.
type Options struct {
	// AllowEmptyText accepts blank task text on Add and SetText.
	AllowEmptyText bool
	// NewID generates task ids. Defaults to random UUIDs.
	NewID func() string
}

// List is an ordered sequence of tasks addressed by id.
type List struct {
	tasks    []model.Task
	opts     Options
	migrated bool
}

// New builds a list from loaded tasks. Tasks without an id get one.
func New(tasks []model.Task, opts Options) *List {
	if opts.NewID == nil {
		opts.NewID = func() string { return uuid.NewString() }
	}
	l := &List{
		tasks: make([]model.Task, len(tasks)),
		opts:  opts,
	}
	copy(l.tasks, tasks)

	seen := make(map[string]bool, len(l.tasks))
	for i := range l.tasks {
		if l.tasks[i].ID == "" || seen[l.tasks[i].ID] {
			l.tasks[i].ID = opts.NewID()
			l.migrated = true
		}
		seen[l.tasks[i].ID] = true
	}
	return l
}

// Migrated reports whether New had to assign ids, meaning the
// stored copy is out of date.
func (l *List) Migrated() bool { return l.migrated }

// Tasks returns a copy of the full list in order.
func (l *List) Tasks() []model.Task {
	out := make([]model.Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

// Len returns the number of tasks.
func (l *List) Len() int { return len(l.tasks) }

// Index returns the position of id, or -1.
func (l *List) Index(id string) int {
	for i := range l.tasks {
		if l.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// At returns the task at a 0-based position.
func (l *List) At(i int) (model.Task, error) {
	if i < 0 || i >= len(l.tasks) {
		return model.Task{}, fmt.Errorf("position %d of %d: %w", i, len(l.tasks), ErrNotFound)
	}
	return l.tasks[i], nil
}

// Get returns the task with the given id.
func (l *List) Get(id string) (model.Task, error) {
	i, err := l.resolve(id)
	if err != nil {
		return model.Task{}, err
	}
	return l.tasks[i], nil
}

// Add appends a new pending task.
func (l *List) Add(text, category string) (model.Task, error) {
	text = strings.TrimSpace(text)
	category = strings.TrimSpace(category)
	if category == "" {
		return model.Task{}, ErrEmptyCategory
	}
	if text == "" && !l.opts.AllowEmptyText {
		return model.Task{}, ErrEmptyText
	}
	t := model.Task{
		ID:       l.opts.NewID(),
		Text:     text,
		Category: category,
	}
	l.tasks = append(l.tasks, t)
	return t, nil
}

// SetText commits edited text into the task.
func (l *List) SetText(id, text string) error {
	i, err := l.resolve(id)
	if err != nil {
		return err
	}
	text = strings.TrimSpace(text)
	if text == "" && !l.opts.AllowEmptyText {
		return ErrEmptyText
	}
	l.tasks[i].Text = text
	return nil
}

// ToggleComplete flips the completed flag and returns the new value.
func (l *List) ToggleComplete(id string) (bool, error) {
	i, err := l.resolve(id)
	if err != nil {
		return false, err
	}
	l.tasks[i].Completed = !l.tasks[i].Completed
	return l.tasks[i].Completed, nil
}

// Delete removes the task; later tasks shift down by one.
func (l *List) Delete(id string) error {
	i, err := l.resolve(id)
	if err != nil {
		return err
	}
	l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
	return nil
}

// Move takes the task src out of the list and inserts it at the position
// dst held before the removal. Moving forward therefore lands one slot
// before dst's old position: [A B C] moving A onto C gives [B C A].
func (l *List) Move(srcID, dstID string) error {
	from, err := l.resolve(srcID)
	if err != nil {
		return fmt.Errorf("move source: %w", err)
	}
	to, err := l.resolve(dstID)
	if err != nil {
		return fmt.Errorf("move target: %w", err)
	}
	if from == to {
		return nil
	}
	t := l.tasks[from]
	l.tasks = append(l.tasks[:from], l.tasks[from+1:]...)
	if to > len(l.tasks) {
		to = len(l.tasks)
	}
	l.tasks = append(l.tasks, model.Task{})
	copy(l.tasks[to+1:], l.tasks[to:])
	l.tasks[to] = t
	return nil
}

// Filter returns the tasks visible under f, in list order.
func (l *List) Filter(f model.Filter) []model.Task {
	out := make([]model.Task, 0, len(l.tasks))
	for _, t := range l.tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// Categories returns the distinct categories in order of first appearance.
func (l *List) Categories() []string {
	seen := map[string]bool{}
	var out []string
	for _, t := range l.tasks {
		if !seen[t.Category] {
			seen[t.Category] = true
			out = append(out, t.Category)
		}
	}
	return out
}

// Stats counts done and pending tasks.
func Stats(tasks []model.Task) (done, pending int) {
	for _, t := range tasks {
		if t.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}

func (l *List) resolve(id string) (int, error) {
	i := l.Index(id)
	if i < 0 {
		return -1, fmt.Errorf("id %q: %w", id, ErrNotFound)
	}
	return i, nil
}
