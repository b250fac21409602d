// Shopper Spectrum - Retail Product Recommendation and Customer Segmentation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopperspectrum

package retail

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	// DuckDB driver - reads CSV and Parquet transaction logs in-process
	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/rs/zerolog"

	"github.com/tomtom215/shopperspectrum/internal/logging"
)

// DefaultDateLayouts are tried in order when parsing InvoiceDate.
var DefaultDateLayouts = []string{
	"1/2/2006 15:04",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// Option configures a Reader.
type Option func(*Reader)

// WithDateLayouts overrides the InvoiceDate layouts.
func WithDateLayouts(layouts ...string) Option {
	return func(r *Reader) {
		if len(layouts) > 0 {
			r.layouts = layouts
		}
	}
}

// Reader reads a transaction log through an in-memory DuckDB connection.
type Reader struct {
	db      *sql.DB
	path    string
	source  string
	columns map[string]string
	layouts []string
	logger  zerolog.Logger
}

// NewReader opens path and verifies that it satisfies the column contract.
// A missing file is reported as the underlying os error; a file that cannot
// be read as a table or lacks required columns is a *DataFormatError.
func NewReader(ctx context.Context, path string, opts ...Option) (*Reader, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open transaction log: %w", err)
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	r := &Reader{
		db:      db,
		path:    path,
		source:  sourceExpr(path),
		layouts: DefaultDateLayouts,
		logger:  logging.WithComponent("loader"),
	}
	for _, opt := range opts {
		opt(r)
	}

	if err := r.probe(ctx); err != nil {
		db.Close() //nolint:errcheck // best-effort cleanup on error path
		return nil, err
	}
	return r, nil
}

// sourceExpr builds the DuckDB table function for path. Table function
// arguments cannot be bound as parameters, so the path is quoted as a literal.
func sourceExpr(path string) string {
	lit := "'" + strings.ReplaceAll(path, "'", "''") + "'"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet", ".pq":
		return fmt.Sprintf("read_parquet(%s)", lit)
	default:
		return fmt.Sprintf("read_csv(%s, header = true, all_varchar = true)", lit)
	}
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// probe reads the header and records the source name of each required column.
func (r *Reader) probe(ctx context.Context) error {
	rows, err := r.db.QueryContext(ctx, "SELECT * FROM "+r.source+" LIMIT 0")
	if err != nil {
		return &DataFormatError{Path: r.path, Detail: err.Error()}
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return &DataFormatError{Path: r.path, Detail: err.Error()}
	}
	if missing := missingColumns(header); len(missing) > 0 {
		return &DataFormatError{Path: r.path, Missing: missing}
	}

	r.columns = make(map[string]string, len(RequiredColumns))
	for _, h := range header {
		trimmed := strings.TrimSpace(h)
		if _, seen := r.columns[trimmed]; !seen {
			r.columns[trimmed] = h
		}
	}
	return nil
}

// Columns returns the required column names as they appear in the source header.
func (r *Reader) Columns() []string {
	out := make([]string, 0, len(RequiredColumns))
	for _, c := range RequiredColumns {
		out = append(out, r.columns[c])
	}
	return out
}

// missingMarkers are the cell values read as absent, matching the null
// tokens common spreadsheet and dataframe exports write.
var missingMarkers = map[string]struct{}{
	"#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {},
	"N/A": {}, "NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {},
	"nan": {}, "null": {},
}

// cell returns the trimmed value of s, or "" when s is null or a missing marker.
func cell(s sql.NullString) string {
	v := strings.TrimSpace(nullable(s))
	if _, missing := missingMarkers[v]; missing {
		return ""
	}
	return v
}

// ReadAll reads every row, dropping rows with a missing CustomerID,
// Description or Quantity, or a non-finite Quantity.
func (r *Reader) ReadAll(ctx context.Context) ([]Transaction, LoadStats, error) {
	start := time.Now()
	var stats LoadStats

	selects := make([]string, 0, len(RequiredColumns))
	for _, c := range RequiredColumns {
		selects = append(selects, fmt.Sprintf("CAST(%s AS VARCHAR)", quoteIdent(r.columns[c])))
	}
	query := "SELECT " + strings.Join(selects, ", ") + " FROM " + r.source

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, stats, &DataFormatError{Path: r.path, Detail: err.Error()}
	}
	defer rows.Close()

	var txns []Transaction
	customers := make(map[string]struct{})
	products := make(map[string]struct{})

	for rows.Next() {
		var customer, description, quantity, invoice, date sql.NullString
		if err := rows.Scan(&customer, &description, &quantity, &invoice, &date); err != nil {
			return nil, stats, fmt.Errorf("scan row %d: %w", stats.RowsRead+1, err)
		}
		stats.RowsRead++

		txn, keep, err := r.convert(stats.RowsRead, customer, description, quantity, invoice, date)
		if err != nil {
			return nil, stats, err
		}
		if !keep {
			stats.RowsDropped++
			continue
		}
		if !txn.HasDate() {
			stats.Undated++
		}
		customers[txn.CustomerID] = struct{}{}
		products[txn.Description] = struct{}{}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, stats, &DataFormatError{Path: r.path, Detail: err.Error()}
	}

	stats.RowsKept = len(txns)
	stats.Customers = len(customers)
	stats.Products = len(products)
	stats.Duration = time.Since(start)

	r.logger.Info().
		Str("path", r.path).
		Strs("columns", r.Columns()).
		Int("rows_read", stats.RowsRead).
		Int("rows_dropped", stats.RowsDropped).
		Int("undated", stats.Undated).
		Int("customers", stats.Customers).
		Int("products", stats.Products).
		Dur("duration", stats.Duration).
		Msg("Transaction log loaded")

	return txns, stats, nil
}

func (r *Reader) convert(row int, customer, description, quantity, invoice, date sql.NullString) (Transaction, bool, error) {
	cid := normalizeCustomerID(cell(customer))
	desc := cell(description)
	qty := cell(quantity)
	if cid == "" || desc == "" || qty == "" {
		return Transaction{}, false, nil
	}

	q, err := strconv.ParseFloat(qty, 64)
	if err != nil {
		return Transaction{}, false, &DataFormatError{
			Path: r.path, Row: row,
			Detail: fmt.Sprintf("%s %q is not numeric", ColumnQuantity, qty),
		}
	}
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return Transaction{}, false, nil
	}

	txn := Transaction{
		CustomerID:  cid,
		Description: desc,
		Quantity:    q,
		InvoiceNo:   cell(invoice),
	}

	if raw := cell(date); raw != "" {
		ts, ok := parseDate(raw, r.layouts)
		if !ok {
			return Transaction{}, false, &DataFormatError{
				Path: r.path, Row: row,
				Detail: fmt.Sprintf("%s %q matches no known layout", ColumnInvoiceDate, raw),
			}
		}
		txn.InvoiceDate = ts
	}
	return txn, true, nil
}

func nullable(s sql.NullString) string {
	if !s.Valid {
		return ""
	}
	return s.String
}

// normalizeCustomerID strips the ".0" suffix float-typed exports add to integer IDs.
func normalizeCustomerID(id string) string {
	id = strings.TrimSpace(id)
	if head, ok := strings.CutSuffix(id, ".0"); ok && head != "" && isDigits(head) {
		return head
	}
	return id
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func parseDate(raw string, layouts []string) (time.Time, bool) {
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.UTC(), true
		}
	}
	return time.Time{}, false
}

// Close releases the DuckDB connection.
func (r *Reader) Close() error {
	return r.db.Close()
}

// Load reads the transaction log at path. It is the single entry point used
// by the build pipeline.
func Load(ctx context.Context, path string, opts ...Option) ([]Transaction, LoadStats, error) {
	r, err := NewReader(ctx, path, opts...)
	if err != nil {
		return nil, LoadStats{}, err
	}
	defer r.Close() //nolint:errcheck // read-only connection

	return r.ReadAll(ctx)
}
