// Shopper Spectrum - Retail Product Recommendation and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package artifacts

import (
	"bytes"
	"encoding/gob"
)

// envelopeProbe lets tests rewrite a stored envelope.
type envelopeProbe envelope

func (e *envelopeProbe) decode(data []byte) error {
	var env envelope
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&env); err != nil {
		return err
	}
	*e = envelopeProbe(env)
	return nil
}

func (e *envelopeProbe) encode() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(envelope(*e))
	return buf.Bytes(), err
}
