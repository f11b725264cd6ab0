package model

import "testing"

func TestParseTheme(t *testing.T) {
	tests := []struct {
		in     string
		want   Theme
		wantOK bool
	}{
		{"light", ThemeLight, true},
		{"DARK", ThemeDark, true},
		{" light ", ThemeLight, true},
		{"neon", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseTheme(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseTheme(%q): got (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestThemeToggle(t *testing.T) {
	if got := ThemeDark.Toggle(); got != ThemeLight {
		t.Errorf("dark.Toggle: got %q, want light", got)
	}
	if got := ThemeLight.Toggle(); got != ThemeDark {
		t.Errorf("light.Toggle: got %q, want dark", got)
	}
}

func TestFilterMatch(t *testing.T) {
	work := Task{Text: "report", Category: "Work"}
	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"empty matches", "", true},
		{"all matches", All, true},
		{"same category", "Work", true},
		{"other category", "Home", false},
		{"case sensitive", "work", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Match(work); got != tt.want {
				t.Errorf("Match: got %v, want %v", got, tt.want)
			}
		})
	}
}
