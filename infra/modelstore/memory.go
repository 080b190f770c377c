package modelstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/kilianp07/auslib/core/library"
)

type memoryObject struct {
	handle  library.Handle
	payload []byte
}

// Memory keeps objects in process memory. Payloads are stored encoded so
// that callers cannot alter them after Add.
type Memory struct {
	mu      sync.RWMutex
	objects map[library.Kind]map[string]memoryObject
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{objects: make(map[library.Kind]map[string]memoryObject)}
}

func (m *Memory) Add(_ context.Context, kind library.Kind, name string, payload any) (library.Handle, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return library.Handle{}, fmt.Errorf("encode %s %q: %w", kind, name, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	byName, ok := m.objects[kind]
	if !ok {
		byName = make(map[string]memoryObject)
		m.objects[kind] = byName
	}
	if _, dup := byName[name]; dup {
		return library.Handle{}, ErrDuplicateName
	}
	h := library.Handle{ID: uuid.New(), Kind: kind, Name: name}
	byName[name] = memoryObject{handle: h, payload: b}
	return h, nil
}

func (m *Memory) Lookup(_ context.Context, kind library.Kind, name string) (library.Handle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[kind][name]
	if !ok {
		return library.Handle{}, ErrNotFound
	}
	return obj.handle, nil
}

// List returns the handles of kind ordered by name.
func (m *Memory) List(_ context.Context, kind library.Kind) ([]library.Handle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]library.Handle, 0, len(m.objects[kind]))
	for _, obj := range m.objects[kind] {
		out = append(out, obj.handle)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Memory) Decode(_ context.Context, kind library.Kind, name string, out any) error {
	m.mu.RLock()
	obj, ok := m.objects[kind][name]
	m.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	return json.Unmarshal(obj.payload, out)
}

func (m *Memory) Close() error { return nil }
