package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no blob exists under a key.
var ErrNotFound = errors.New("blob not found")

// Store is a key-value area for opaque state blobs. Each feature store
// serialises its state as a JSON object under a fixed namespace key, so
// the layout stays compatible with whatever backend serves it.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Scoped returns a view of s with every key prefixed. Per-session state
// reuses the fixed namespace names without colliding across sessions.
func Scoped(s Store, prefix string) Store {
	return &scoped{s: s, prefix: prefix}
}

type scoped struct {
	s      Store
	prefix string
}

func (p *scoped) Get(ctx context.Context, key string) ([]byte, error) {
	return p.s.Get(ctx, p.prefix+key)
}

func (p *scoped) Set(ctx context.Context, key string, value []byte) error {
	return p.s.Set(ctx, p.prefix+key, value)
}

func (p *scoped) Delete(ctx context.Context, key string) error {
	return p.s.Delete(ctx, p.prefix+key)
}
