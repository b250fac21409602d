// Shopper Spectrum - Retail Product Recommendation and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package artifacts

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/tomtom215/shopperspectrum/internal/metrics"
)

// Artifact names.
const (
	CustomerProductMatrix = "customer_product_matrix"
	ProductSimilarity     = "product_similarity"
	ClusterModel          = "cluster_model"
	RFMScaler             = "rfm_scaler"
	SegmentLabels         = "segment_labels"
)

// Required lists the artifacts that together form the queryable state.
var Required = []string{
	CustomerProductMatrix,
	ProductSimilarity,
	ClusterModel,
	RFMScaler,
	SegmentLabels,
}

var (
	// ErrNotFound is returned when an artifact has never been saved.
	ErrNotFound = errors.New("artifact not found")

	// ErrChecksumMismatch is returned when a stored artifact fails verification.
	ErrChecksumMismatch = errors.New("artifact checksum mismatch")
)

// Metadata describes a stored artifact.
type Metadata struct {
	Name string `json:"name"`

	// BuildID ties together artifacts written by the same build.
	BuildID string `json:"build_id"`

	BuiltAt time.Time `json:"built_at"`
	SavedAt time.Time `json:"saved_at"`

	// Checksum is the SHA-256 of the uncompressed gob payload.
	Checksum string `json:"checksum"`

	// SizeBytes is the compressed payload size.
	SizeBytes int64 `json:"size_bytes"`
}

// Backend stores opaque envelopes by artifact name.
type Backend interface {
	// Put writes every blob or none of them.
	Put(ctx context.Context, blobs map[string][]byte) error
	// Get returns ErrNotFound for an unknown name.
	Get(ctx context.Context, name string) ([]byte, error)
	Has(ctx context.Context, name string) (bool, error)
	Close() error
}

// Item is one artifact to save.
type Item struct {
	Name  string
	Value any
}

// Store encodes artifacts into checksummed envelopes on a Backend.
type Store struct {
	backend Backend
}

// NewStore wraps backend.
func NewStore(backend Backend) *Store {
	return &Store{backend: backend}
}

// envelope is the stored format.
type envelope struct {
	Metadata       Metadata
	CompressedData []byte
}

func encode(item Item, meta Metadata) ([]byte, error) {
	var raw bytes.Buffer
	if err := gob.NewEncoder(&raw).Encode(item.Value); err != nil {
		return nil, fmt.Errorf("encode %s: %w", item.Name, err)
	}

	hash := sha256.Sum256(raw.Bytes())
	meta.Name = item.Name
	meta.Checksum = hex.EncodeToString(hash[:])

	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	if _, err := gzw.Write(raw.Bytes()); err != nil {
		return nil, fmt.Errorf("compress %s: %w", item.Name, err)
	}
	if err := gzw.Close(); err != nil {
		return nil, fmt.Errorf("finalize compression of %s: %w", item.Name, err)
	}
	meta.SizeBytes = int64(compressed.Len())
	meta.SavedAt = time.Now().UTC()

	var out bytes.Buffer
	if err := gob.NewEncoder(&out).Encode(envelope{Metadata: meta, CompressedData: compressed.Bytes()}); err != nil {
		return nil, fmt.Errorf("write envelope for %s: %w", item.Name, err)
	}
	return out.Bytes(), nil
}

// SaveAll encodes every item first and then writes them in one backend batch,
// so an encoding failure leaves the backend untouched.
//
//nolint:gocritic // meta passed by value is acceptable for this write operation
func (s *Store) SaveAll(ctx context.Context, meta Metadata, items ...Item) error {
	blobs := make(map[string][]byte, len(items))
	for _, item := range items {
		data, err := encode(item, meta)
		if err != nil {
			metrics.ArtifactErrors.WithLabelValues(item.Name, "save").Inc()
			return err
		}
		blobs[item.Name] = data
	}
	if err := s.backend.Put(ctx, blobs); err != nil {
		for name := range blobs {
			metrics.ArtifactErrors.WithLabelValues(name, "save").Inc()
		}
		return fmt.Errorf("write artifacts: %w", err)
	}
	for name, data := range blobs {
		metrics.ArtifactBytes.WithLabelValues(name).Set(float64(len(data)))
	}
	return nil
}

// Save writes a single artifact.
//
//nolint:gocritic // meta passed by value is acceptable for this write operation
func (s *Store) Save(ctx context.Context, name string, value any, meta Metadata) error {
	return s.SaveAll(ctx, meta, Item{Name: name, Value: value})
}

// Load decodes the named artifact into target, which must be a pointer.
func (s *Store) Load(ctx context.Context, name string, target any) (*Metadata, error) {
	meta, err := s.load(ctx, name, target)
	if err != nil && !errors.Is(err, ErrNotFound) {
		metrics.ArtifactErrors.WithLabelValues(name, "load").Inc()
	}
	return meta, err
}

func (s *Store) load(ctx context.Context, name string, target any) (*Metadata, error) {
	data, err := s.backend.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&env); err != nil {
		return nil, fmt.Errorf("read envelope for %s: %w", name, err)
	}

	gzr, err := gzip.NewReader(bytes.NewReader(env.CompressedData))
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", name, err)
	}
	defer func() { _ = gzr.Close() }() //nolint:errcheck // error on gzip close after read is not actionable

	raw, err := io.ReadAll(gzr)
	if err != nil {
		return nil, fmt.Errorf("read decompressed %s: %w", name, err)
	}

	hash := sha256.Sum256(raw)
	if checksum := hex.EncodeToString(hash[:]); checksum != env.Metadata.Checksum {
		return nil, fmt.Errorf("%w: %s expected %s, got %s", ErrChecksumMismatch, name, env.Metadata.Checksum, checksum)
	}

	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(target); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return &env.Metadata, nil
}

// Stat returns the metadata of the named artifact without decoding its payload.
func (s *Store) Stat(ctx context.Context, name string) (*Metadata, error) {
	data, err := s.backend.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	var env envelope
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&env); err != nil {
		return nil, fmt.Errorf("read envelope for %s: %w", name, err)
	}
	return &env.Metadata, nil
}

// Missing returns the required artifacts that are not stored, in Required order.
func (s *Store) Missing(ctx context.Context) ([]string, error) {
	var missing []string
	for _, name := range Required {
		ok, err := s.backend.Has(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("check %s: %w", name, err)
		}
		if !ok {
			missing = append(missing, name)
		}
	}
	return missing, nil
}

// Complete reports whether all required artifacts are stored.
func (s *Store) Complete(ctx context.Context) (bool, error) {
	missing, err := s.Missing(ctx)
	if err != nil {
		return false, err
	}
	return len(missing) == 0, nil
}

// Close closes the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}
