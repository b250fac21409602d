// Shopper Spectrum - Retail Product Recommendation and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package artifacts

import (
	"fmt"

	"github.com/tomtom215/shopperspectrum/internal/config"
)

// Open creates a Store on the backend named in cfg.
func Open(cfg config.ArtifactsConfig) (*Store, error) {
	switch cfg.Backend {
	case config.BackendFile, "":
		b, err := NewFileBackend(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return NewStore(b), nil
	case config.BackendBadger:
		b, err := OpenBadgerBackend(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return NewStore(b), nil
	default:
		return nil, fmt.Errorf("unknown artifact backend %q", cfg.Backend)
	}
}
