// Shopper Spectrum - Retail Product Recommendation and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package artifacts

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Key prefixes for BadgerDB storage
const (
	manifestKeyPrefix = "artifact:"
	chunkKeyPrefix    = "chunk:"
)

// defaultChunkSize keeps every write well under badger's transaction size limit.
const defaultChunkSize = 4 << 20

// BadgerBackend stores artifacts in a BadgerDB. Blobs are split into chunks
// written under a fresh generation ID; a small manifest per artifact points
// at the live generation. All manifests of one Put commit in one transaction,
// so readers see either the old set or the new set.
type BadgerBackend struct {
	db        *badger.DB
	chunkSize int
}

type manifest struct {
	Generation string `json:"generation"`
	Chunks     int    `json:"chunks"`
	Size       int    `json:"size"`
}

// OpenBadgerBackend opens (or creates) a BadgerDB at dir.
func OpenBadgerBackend(dir string) (*BadgerBackend, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for artifacts: %w", err)
	}
	return NewBadgerBackend(db), nil
}

// NewBadgerBackend wraps an already-open DB.
func NewBadgerBackend(db *badger.DB) *BadgerBackend {
	return &BadgerBackend{db: db, chunkSize: defaultChunkSize}
}

func manifestKey(name string) []byte {
	return []byte(manifestKeyPrefix + name)
}

func chunkKey(name, generation string, i int) []byte {
	return []byte(fmt.Sprintf("%s%s:%s:%06d", chunkKeyPrefix, name, generation, i))
}

func (b *BadgerBackend) Put(ctx context.Context, blobs map[string][]byte) error {
	generation := uuid.New().String()
	manifests := make(map[string]manifest, len(blobs))

	wb := b.db.NewWriteBatch()
	defer wb.Cancel()
	for name, data := range blobs {
		if err := ctx.Err(); err != nil {
			return err
		}
		m := manifest{Generation: generation, Size: len(data)}
		for off := 0; off < len(data) || m.Chunks == 0; off += b.chunkSize {
			end := min(off+b.chunkSize, len(data))
			if err := wb.Set(chunkKey(name, generation, m.Chunks), data[off:end]); err != nil {
				return fmt.Errorf("stage %s chunk %d: %w", name, m.Chunks, err)
			}
			m.Chunks++
		}
		manifests[name] = m
	}
	if err := wb.Flush(); err != nil {
		return fmt.Errorf("flush artifact chunks: %w", err)
	}

	previous := make(map[string]manifest, len(manifests))
	err := b.db.Update(func(txn *badger.Txn) error {
		for name, m := range manifests {
			if old, err := readManifest(txn, name); err == nil {
				previous[name] = old
			}
			data, err := json.Marshal(m)
			if err != nil {
				return fmt.Errorf("marshal manifest for %s: %w", name, err)
			}
			if err := txn.Set(manifestKey(name), data); err != nil {
				return fmt.Errorf("set manifest for %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		b.dropChunks(manifests)
		return err
	}

	b.dropChunks(previous)
	return nil
}

// dropChunks deletes the chunks of the given generations; failures only leak space.
func (b *BadgerBackend) dropChunks(manifests map[string]manifest) {
	wb := b.db.NewWriteBatch()
	defer wb.Cancel()
	for name, m := range manifests {
		for i := 0; i < m.Chunks; i++ {
			_ = wb.Delete(chunkKey(name, m.Generation, i)) //nolint:errcheck // best-effort cleanup
		}
	}
	_ = wb.Flush() //nolint:errcheck // best-effort cleanup
}

func readManifest(txn *badger.Txn, name string) (manifest, error) {
	var m manifest
	item, err := txn.Get(manifestKey(name))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return m, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return m, fmt.Errorf("get manifest for %s: %w", name, err)
	}
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &m)
	})
	return m, err
}

func (b *BadgerBackend) Get(_ context.Context, name string) ([]byte, error) {
	var data []byte
	err := b.db.View(func(txn *badger.Txn) error {
		m, err := readManifest(txn, name)
		if err != nil {
			return err
		}
		data = make([]byte, 0, m.Size)
		for i := 0; i < m.Chunks; i++ {
			item, err := txn.Get(chunkKey(name, m.Generation, i))
			if err != nil {
				return fmt.Errorf("get %s chunk %d: %w", name, i, err)
			}
			if err := item.Value(func(val []byte) error {
				data = append(data, val...)
				return nil
			}); err != nil {
				return err
			}
		}
		if len(data) != m.Size {
			return fmt.Errorf("%s: read %d bytes, manifest says %d", name, len(data), m.Size)
		}
		return nil
	})
	return data, err
}

func (b *BadgerBackend) Has(_ context.Context, name string) (bool, error) {
	found := false
	err := b.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(manifestKey(name))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	return found, err
}

func (b *BadgerBackend) Close() error {
	return b.db.Close()
}

var _ Backend = (*BadgerBackend)(nil)
