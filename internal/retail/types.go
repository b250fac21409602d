// Shopper Spectrum - Retail Product Recommendation and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package retail

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Column names of the transaction log contract.
const (
	ColumnCustomerID  = "CustomerID"
	ColumnDescription = "Description"
	ColumnQuantity    = "Quantity"
	ColumnInvoiceNo   = "InvoiceNo"
	ColumnInvoiceDate = "InvoiceDate"
)

// RequiredColumns must all be present in the transaction log header.
var RequiredColumns = []string{
	ColumnCustomerID,
	ColumnDescription,
	ColumnQuantity,
	ColumnInvoiceNo,
	ColumnInvoiceDate,
}

// Transaction is one invoice line item.
type Transaction struct {
	CustomerID  string
	Description string
	Quantity    float64
	InvoiceNo   string

	// InvoiceDate is the zero time when the source row had no date.
	InvoiceDate time.Time
}

// HasDate reports whether the line item carries an invoice date.
func (t Transaction) HasDate() bool {
	return !t.InvoiceDate.IsZero()
}

// LoadStats summarizes a load.
type LoadStats struct {
	RowsRead    int
	RowsKept    int
	RowsDropped int
	Undated     int
	Customers   int
	Products    int
	Duration    time.Duration
}

// ErrDataFormat matches every *DataFormatError via errors.Is.
var ErrDataFormat = errors.New("data format error")

// DataFormatError reports a transaction log that violates the column contract.
type DataFormatError struct {
	Path    string
	Missing []string
	Row     int
	Detail  string
}

func (e *DataFormatError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "data format error in %s", e.Path)
	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, ": missing required columns %s", strings.Join(e.Missing, ", "))
	}
	if e.Row > 0 {
		fmt.Fprintf(&b, ": row %d", e.Row)
	}
	if e.Detail != "" {
		fmt.Fprintf(&b, ": %s", e.Detail)
	}
	return b.String()
}

// Is makes errors.Is(err, ErrDataFormat) true for any DataFormatError.
func (e *DataFormatError) Is(target error) bool {
	return target == ErrDataFormat
}

// missingColumns returns the required columns absent from header, in contract order.
func missingColumns(header []string) []string {
	present := make(map[string]struct{}, len(header))
	for _, h := range header {
		present[strings.TrimSpace(h)] = struct{}{}
	}
	var missing []string
	for _, c := range RequiredColumns {
		if _, ok := present[c]; !ok {
			missing = append(missing, c)
		}
	}
	return missing
}
