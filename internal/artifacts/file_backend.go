// Shopper Spectrum - Retail Product Recommendation and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package artifacts

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const fileSuffix = ".gob.gz"

// FileBackend stores each artifact as {dir}/{name}.gob.gz.
type FileBackend struct {
	dir string
	mu  sync.RWMutex
}

// NewFileBackend creates dir if needed.
func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil { //nolint:gosec // 0750 is acceptable for artifact storage
		return nil, fmt.Errorf("create artifact directory: %w", err)
	}
	return &FileBackend{dir: dir}, nil
}

func (b *FileBackend) path(name string) string {
	return filepath.Join(b.dir, name+fileSuffix)
}

// Put writes every blob to a temporary file before renaming any of them into
// place, so a failed write never leaves a new artifact behind.
func (b *FileBackend) Put(ctx context.Context, blobs map[string][]byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	temps := make(map[string]string, len(blobs))
	cleanup := func() {
		for _, tmp := range temps {
			_ = os.Remove(tmp) //nolint:errcheck // best-effort cleanup of temp files
		}
	}

	for name, data := range blobs {
		if err := ctx.Err(); err != nil {
			cleanup()
			return err
		}
		f, err := os.CreateTemp(b.dir, name+".*.tmp")
		if err != nil {
			cleanup()
			return fmt.Errorf("create temp file for %s: %w", name, err)
		}
		temps[name] = f.Name()
		if _, err := f.Write(data); err != nil {
			_ = f.Close() //nolint:errcheck // write error takes precedence
			cleanup()
			return fmt.Errorf("write %s: %w", name, err)
		}
		if err := f.Close(); err != nil {
			cleanup()
			return fmt.Errorf("close %s: %w", name, err)
		}
	}

	for name, tmp := range temps {
		if err := os.Rename(tmp, b.path(name)); err != nil {
			cleanup()
			return fmt.Errorf("commit %s: %w", name, err)
		}
		delete(temps, name)
	}
	return nil
}

func (b *FileBackend) Get(_ context.Context, name string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, err := os.ReadFile(b.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

func (b *FileBackend) Has(_ context.Context, name string) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	info, err := os.Stat(b.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.Mode().IsRegular() && info.Size() > 0, nil
}

func (b *FileBackend) Close() error { return nil }

var _ Backend = (*FileBackend)(nil)
