package main

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/pkg/errors"
)

const (
	unknownKey    = "??:??:??"
	unknownVendor = "UNKNOWN-VENDOR"
)

// FormatReport turns totals into report rows. With a nil resolver every entry
// becomes one address row. Otherwise entries are vendor prefixes; resolved
// ones become vendor rows and the rest are summed into a single trailing
// unknown-vendor row.
func FormatReport(entries []TrafficEntry, vendors VendorResolver) []ReportRow {
	rows := make([]ReportRow, 0, len(entries)+1)

	if vendors == nil {
		for _, e := range entries {
			rows = append(rows, ReportRow{Key: e.Key.String(), Bytes: e.Bytes})
		}
		return rows
	}

	var unknown uint64
	for _, e := range entries {
		prefix := e.Key.OUI()
		vendor, ok := vendors.Resolve(prefix)
		if !ok {
			unknown += e.Bytes
			continue
		}
		rows = append(rows, ReportRow{Key: prefix.String(), Vendor: vendor, Bytes: e.Bytes})
	}
	if unknown > 0 {
		rows = append(rows, ReportRow{Key: unknownKey, Vendor: unknownVendor, Bytes: unknown})
	}

	return rows
}

// SortRows orders rows by bytes descending, then by vendor name (grouped
// rows) or address, then by address.
func SortRows(rows []ReportRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Bytes != b.Bytes {
			return a.Bytes > b.Bytes
		}
		if a.Vendor != b.Vendor {
			return a.Vendor < b.Vendor
		}
		return a.Key < b.Key
	})
}

// WriteReport writes one tab-separated line per row.
func WriteReport(w io.Writer, rows []ReportRow) error {
	bw := bufio.NewWriter(w)
	for _, r := range rows {
		var err error
		if r.Grouped() {
			_, err = fmt.Fprintf(bw, "%s\t%s\t%d\n", r.Key, r.Vendor, r.Bytes)
		} else {
			_, err = fmt.Fprintf(bw, "%s\t%d\n", r.Key, r.Bytes)
		}
		if err != nil {
			return errors.Wrap(err, "write report")
		}
	}
	return errors.Wrap(bw.Flush(), "write report")
}
