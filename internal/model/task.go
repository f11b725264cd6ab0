package model

import "strings"

// Task is the domain model for a todo entry.
// ID is stable for the task's lifetime; position in the list is not.
type Task struct {
	ID        string `json:"id,omitempty"`
	Text      string `json:"text"`
	Category  string `json:"category"`
	Completed bool   `json:"completed"`
}

// Theme is the persisted light/dark display mode.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// DefaultTheme applies when nothing was saved yet.
const DefaultTheme = ThemeDark

// ParseTheme reports whether s names a known theme.
func ParseTheme(s string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, true
	case ThemeDark:
		return ThemeDark, true
	}
	return "", false
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// All is the filter sentinel that matches every category.
const All = "All"

// Filter selects which tasks are displayed. It never changes stored data.
type Filter string

// Match reports whether the task is visible under the filter.
func (f Filter) Match(t Task) bool {
	return f == "" || f == All || string(f) == t.Category
}

// String renders the filter for headers.
func (f Filter) String() string {
	if f == "" {
		return All
	}
	return string(f)
}
