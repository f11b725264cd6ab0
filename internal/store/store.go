// Package store persists the task list and theme over a key-value backend.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/idilsaglam/tada/internal/model"
)

// Storage keys.
const (
	TasksKey = "tasks"
	ThemeKey = "theme"
)

// ErrCorrupt marks stored task data that could not be decoded or validated.
var ErrCorrupt = errors.New("corrupt task data")

// KV is a string key-value backend. Set overwrites the whole value.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

const tasksSchemaText = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["text", "category", "completed"],
    "properties": {
      "id": {"type": "string"},
      "text": {"type": "string"},
      "category": {"type": "string"},
      "completed": {"type": "boolean"}
    }
  }
}`

var tasksSchema = jsonschema.MustCompileString("tasks.schema.json", tasksSchemaText)

// Store reads and writes tasks and theme.
type Store struct {
	kv KV
}

// New wraps a backend.
func New(kv KV) *Store {
	return &Store{kv: kv}
}

// Load returns the stored tasks. A missing key yields an empty list.
// Undecodable content yields an empty list and an error wrapping ErrCorrupt.
func (s *Store) Load() ([]model.Task, error) {
	raw, ok, err := s.kv.Get(TasksKey)
	if err != nil {
		return []model.Task{}, fmt.Errorf("read %s: %w", TasksKey, err)
	}
	if !ok {
		return []model.Task{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return []model.Task{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if doc == nil {
		// "null" is what an empty list marshalled from a nil slice looks like.
		return []model.Task{}, nil
	}
	if err := tasksSchema.Validate(doc); err != nil {
		return []model.Task{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	var tasks []model.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return []model.Task{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return tasks, nil
}

// Save overwrites the stored list.
func (s *Store) Save(tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	b, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := s.kv.Set(TasksKey, string(b)); err != nil {
		return fmt.Errorf("write %s: %w", TasksKey, err)
	}
	return nil
}

// LoadTheme returns the saved theme, or model.DefaultTheme when unset
// or unrecognised.
func (s *Store) LoadTheme() (model.Theme, error) {
	raw, ok, err := s.kv.Get(ThemeKey)
	if err != nil {
		return model.DefaultTheme, fmt.Errorf("read %s: %w", ThemeKey, err)
	}
	if !ok {
		return model.DefaultTheme, nil
	}
	th, valid := model.ParseTheme(raw)
	if !valid {
		return model.DefaultTheme, nil
	}
	return th, nil
}

// SaveTheme overwrites the stored theme.
func (s *Store) SaveTheme(th model.Theme) error {
	if _, ok := model.ParseTheme(string(th)); !ok {
		return fmt.Errorf("unknown theme %q", th)
	}
	if err := s.kv.Set(ThemeKey, string(th)); err != nil {
		return fmt.Errorf("write %s: %w", ThemeKey, err)
	}
	return nil
}
