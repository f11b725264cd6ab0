package store

// MemoryKV is an in-process KV for tests and dry runs.
type MemoryKV struct {
	m map[string]string
}

// NewMemoryKV returns an empty backend.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{m: map[string]string{}}
}

func (kv *MemoryKV) Get(key string) (string, bool, error) {
	v, ok := kv.m[key]
	return v, ok, nil
}

func (kv *MemoryKV) Set(key, value string) error {
	kv.m[key] = value
	return nil
}
