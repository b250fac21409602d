// Shopper Spectrum - Retail Product Recommendation and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

// Package retail loads the retail transaction log that feeds both model builders.
//
// The log is a delimited file (or a Parquet file) with at least the columns
// CustomerID, Description, Quantity, InvoiceNo and InvoiceDate. It is read
// through an in-memory DuckDB connection so that delimiter and quoting
// detection, large files and Parquet input are handled by the database.
//
// Loading applies the record invariant once, before any aggregation: a row
// with an empty CustomerID, Description or Quantity is dropped. A file that
// lacks one of the required columns, or whose Quantity or InvoiceDate values
// cannot be parsed, fails with *DataFormatError.
//
//	txns, stats, err := retail.Load(ctx, "online_retail.csv")
//	if errors.Is(err, retail.ErrDataFormat) {
//	    // fatal to the build step
//	}
package retail
