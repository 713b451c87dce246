// Package report builds CSV exports for managers and writes them,
// gzip-compressed, to a Sink.
package report

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// SalesRow is one product line of a sales export.
type SalesRow struct {
	ProductID    string
	Name         string
	Units        int
	Revenue      int64
	CurrentPrice int64
	PromoStatus  string
}

var salesHeader = []string{"product_id", "name", "units_sold", "revenue", "current_price", "promo_status"}

// Sink stores an exported report and returns where it was written.
type Sink interface {
	Write(ctx context.Context, name string, data []byte) (location string, err error)
}

// WriteSalesCSV writes rows as CSV with a header line.
func WriteSalesCSV(w io.Writer, rows []SalesRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(salesHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, r := range rows {
		record := []string{
			r.ProductID,
			r.Name,
			strconv.Itoa(r.Units),
			strconv.FormatInt(r.Revenue, 10),
			strconv.FormatInt(r.CurrentPrice, 10),
			r.PromoStatus,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row for %s: %w", r.ProductID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// EncodeSales renders rows as gzip-compressed CSV.
func EncodeSales(rows []SalesRow) ([]byte, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)

	if err := WriteSalesCSV(gz, rows); err != nil {
		gz.Close()
		return nil, err
	}
	if err := gz.Close(); err != nil {
		return nil, fmt.Errorf("failed to compress report: %w", err)
	}

	return buf.Bytes(), nil
}

// SalesFileName names a sales export generated at t.
func SalesFileName(t time.Time) string {
	return "sales-" + t.UTC().Format("20060102T150405Z") + ".csv.gz"
}
