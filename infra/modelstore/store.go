// Package modelstore holds the building model objects produced by a library
// run. Objects are keyed by kind and name and carry a JSON payload.
package modelstore

import (
	"context"
	"fmt"

	"github.com/kilianp07/auslib/core/factory"
	"github.com/kilianp07/auslib/core/library"
)

var (
	ErrNotFound      = library.ErrNotFound
	ErrDuplicateName = library.ErrDuplicateName
)

// Store is a library.Model that can return stored payloads.
type Store interface {
	library.Model
	// Decode unmarshals the payload of the named object into out.
	Decode(ctx context.Context, kind library.Kind, name string, out any) error
	Close() error
}

var registry = factory.NewRegistry[Store]()

// Register adds a store backend.
func Register(name string, f factory.Factory[Store]) error {
	return registry.Register(name, f)
}

// New creates the store described by cfg. An empty type selects memory.
func New(cfg factory.ModuleConfig) (Store, error) {
	if cfg.Type == "" {
		cfg.Type = "memory"
	}
	return registry.Create(cfg)
}

// SQLiteConfig configures the sqlite backend.
type SQLiteConfig struct {
	Path string `json:"path"`
}

func init() {
	_ = Register("memory", func(map[string]any) (Store, error) {
		return NewMemory(), nil
	})
	_ = Register("sqlite", func(conf map[string]any) (Store, error) {
		var c SQLiteConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, fmt.Errorf("sqlite store config: %w", err)
		}
		if c.Path == "" {
			return nil, fmt.Errorf("sqlite store: path is required")
		}
		return NewSQLite(c.Path)
	})
}
