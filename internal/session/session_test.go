package session

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/idilsaglam/tada/internal/config"
	"github.com/idilsaglam/tada/internal/logging"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/tasklist"
)

func testConfig() *config.Config {
	return &config.Config{
		Categories:      []string{"Work", "Home"},
		DefaultCategory: "Work",
	}
}

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("t%d", n)
	}
}

func open(t *testing.T, kv store.KV, logger *logging.Logger) *Session {
	t.Helper()
	s, err := Open(testConfig(), kv, logger, tasklist.Options{NewID: seqIDs()})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s
}

func TestOpenEmpty(t *testing.T) {
	s := open(t, store.NewMemoryKV(), nil)
	if s.List.Len() != 0 {
		t.Errorf("Len: got %d, want 0", s.List.Len())
	}
	if s.Theme != model.ThemeDark {
		t.Errorf("Theme: got %q, want dark", s.Theme)
	}
}

func TestOpenCorruptLogsAndStartsEmpty(t *testing.T) {
	kv := store.NewMemoryKV()
	kv.Set(store.TasksKey, "not json")

	var buf bytes.Buffer
	logger, _ := logging.New(logging.Options{Level: "info", Format: "logfmt", Console: &buf})
	s := open(t, kv, logger)

	if s.List.Len() != 0 {
		t.Errorf("Len: got %d, want 0", s.List.Len())
	}
	if !strings.Contains(buf.String(), "unreadable") {
		t.Errorf("expected a warning, got %q", buf.String())
	}
}

func TestOpenMigratesLegacyRecords(t *testing.T) {
	kv := store.NewMemoryKV()
	kv.Set(store.TasksKey, `[{"text":"a","category":"Home","completed":true}]`)

	s := open(t, kv, nil)
	raw, _, _ := kv.Get(store.TasksKey)
	if !strings.Contains(raw, `"id":"t1"`) {
		t.Errorf("migrated ids not persisted: %s", raw)
	}
	task, err := s.List.At(0)
	if err != nil || !task.Completed || task.Text != "a" {
		t.Errorf("At(0): got (%+v, %v)", task, err)
	}
}

func TestApplyPersists(t *testing.T) {
	kv := store.NewMemoryKV()
	s := open(t, kv, nil)

	_, err := s.List.Add("Buy milk", "Home")
	if err := s.Apply("add", err); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	reloaded, err := store.New(kv).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []model.Task{{ID: "t1", Text: "Buy milk", Category: "Home"}}
	if !reflect.DeepEqual(reloaded, want) {
		t.Errorf("stored: got %+v, want %+v", reloaded, want)
	}
}

func TestApplyPassesErrorsThroughWithoutSaving(t *testing.T) {
	kv := store.NewMemoryKV()
	s := open(t, kv, nil)

	err := s.Apply("delete", s.List.Delete("nope"))
	if !errors.Is(err, tasklist.ErrNotFound) {
		t.Errorf("Apply: got %v, want ErrNotFound", err)
	}
	if _, ok, _ := kv.Get(store.TasksKey); ok {
		t.Error("failed mutation must not write")
	}
}

func TestToggleThemeSurvivesReopen(t *testing.T) {
	kv := store.NewMemoryKV()
	s := open(t, kv, nil)
	th, err := s.ToggleTheme()
	if err != nil || th != model.ThemeLight {
		t.Fatalf("ToggleTheme: got (%q, %v)", th, err)
	}
	if again := open(t, kv, nil); again.Theme != model.ThemeLight {
		t.Errorf("reopened Theme: got %q, want light", again.Theme)
	}
}

func TestFiltersIncludeStoredCategories(t *testing.T) {
	kv := store.NewMemoryKV()
	kv.Set(store.TasksKey, `[{"id":"x","text":"a","category":"Garden","completed":false},{"id":"y","text":"b","category":"Home","completed":false}]`)
	s := open(t, kv, nil)

	want := []model.Filter{model.All, "Work", "Home", "Garden"}
	if got := s.Filters(); !reflect.DeepEqual(got, want) {
		t.Errorf("Filters: got %v, want %v", got, want)
	}
}

func TestAllowEmptyTextFromConfig(t *testing.T) {
	cfg := testConfig()
	cfg.AllowEmptyText = true
	s, err := Open(cfg, store.NewMemoryKV(), nil, tasklist.Options{NewID: seqIDs()})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := s.List.Add("", "Home"); err != nil {
		t.Errorf("Add empty with allow_empty_text: %v", err)
	}
}
