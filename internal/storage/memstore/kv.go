// Package memstore implements the stores as in-memory collections persisted
// wholesale to a durable key-value collaborator. Every mutation writes the
// full JSON-encoded collection back under its fixed key before returning, so
// no partial-write state is ever observable.
package memstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adventure-league/tracker/internal/domain"
)

// Fixed collection keys.
const (
	keyUsers      = "users"
	keyCharacters = "characters"
	keyVouchers   = "loot-vouchers"
	keyTokens     = "attendance-tokens"
)

// KV is the durable key-value contract a collection is persisted through.
type KV interface {
	// Get returns the stored value, or ok=false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// FileKV stores one JSON file per key under a directory. Writes go through a
// temp file and rename so a crash never leaves a half-written collection.
type FileKV struct {
	dir string
}

func NewFileKV(dir string) (*FileKV, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileKV{dir: dir}, nil
}

func (f *FileKV) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

func (f *FileKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: read %s: %v", domain.ErrPersistence, key, err)
	}
	return data, true, nil
}

func (f *FileKV) Set(_ context.Context, key string, value []byte) error {
	tmp := f.path(key) + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", domain.ErrPersistence, key, err)
	}
	if err := os.Rename(tmp, f.path(key)); err != nil {
		return fmt.Errorf("%w: write %s: %v", domain.ErrPersistence, key, err)
	}
	return nil
}

func (f *FileKV) Delete(_ context.Context, key string) error {
	if err := os.Remove(f.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: remove %s: %v", domain.ErrPersistence, key, err)
	}
	return nil
}

// loadCollection decodes the collection stored under key. ok=false means the
// key has never been written, which callers treat as "seed me".
func loadCollection[T any](ctx context.Context, kv KV, key string) ([]T, bool, error) {
	data, ok, err := kv.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false, fmt.Errorf("%w: decode %s: %v", domain.ErrPersistence, key, err)
	}
	return items, true, nil
}

func saveCollection[T any](ctx context.Context, kv KV, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", domain.ErrPersistence, key, err)
	}
	return kv.Set(ctx, key, data)
}
