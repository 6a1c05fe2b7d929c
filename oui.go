package main

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/klauspost/oui"
	"github.com/pkg/errors"
)

// VendorResolver maps a vendor prefix to a vendor name.
type VendorResolver interface {
	Resolve(prefix OUI) (string, bool)
}

// OuiTable is a vendor table loaded from an `OUI<TAB>Vendor` file.
type OuiTable struct {
	records []VendorRecord // load order
	sorted  []VendorRecord // stably sorted by prefix
}

// LoadOuiTable reads the vendor table at path.
func LoadOuiTable(path string) (*OuiTable, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, &SourceUnavailableError{Path: path, Err: err}
	}
	defer fh.Close()

	return ReadOuiTable(path, fh)
}

// ReadOuiTable parses a vendor table. name is only used in error messages.
func ReadOuiTable(name string, r io.Reader) (*OuiTable, error) {
	records := []VendorRecord{}

	scanner := bufio.NewScanner(r)
	line := 1
	for ; scanner.Scan(); line++ {
		text := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}

		splitted := strings.SplitN(text, "\t", 2)
		if len(splitted) != 2 {
			return nil, malformed(name, line, errors.New("missing tab-separated vendor name"))
		}
		prefix, err := ParseOUI(splitted[0])
		if err != nil {
			return nil, malformed(name, line, err)
		}
		vendor := splitted[1]
		if strings.TrimSpace(vendor) == "" {
			return nil, malformed(name, line, errors.New("empty vendor name"))
		}
		if strings.Contains(vendor, "\t") {
			return nil, malformed(name, line, errors.New("vendor name contains a tab"))
		}

		records = append(records, VendorRecord{Prefix: prefix, Vendor: vendor})
	}
	if err := scanner.Err(); err != nil {
		return nil, scanError(name, line, err)
	}

	return NewOuiTable(records), nil
}

// NewOuiTable builds a table from records. Duplicated prefixes are kept; the
// earliest one wins on lookup.
func NewOuiTable(records []VendorRecord) *OuiTable {
	sorted := make([]VendorRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i].Prefix[:], sorted[j].Prefix[:]) < 0
	})

	return &OuiTable{records: records, sorted: sorted}
}

// Len returns the number of records in the table.
func (t *OuiTable) Len() int {
	return len(t.records)
}

// Records returns the table in load order.
func (t *OuiTable) Records() []VendorRecord {
	return t.records
}

// Resolve does a binary search for prefix.
func (t *OuiTable) Resolve(prefix OUI) (string, bool) {
	idx := sort.Search(len(t.sorted), func(i int) bool {
		return bytes.Compare(t.sorted[i].Prefix[:], prefix[:]) >= 0
	})
	if idx < len(t.sorted) && t.sorted[idx].Prefix == prefix {
		return t.sorted[idx].Vendor, true
	}
	return "", false
}

// registry is the part of an oui database used for lookups.
type registry interface {
	Query(mac string) (*oui.Entry, error)
}

// ieeeResolver resolves vendors from an IEEE oui.txt registry file.
type ieeeResolver struct {
	db registry
}

// LoadIEEERegistry opens an IEEE oui.txt registry as a VendorResolver.
func LoadIEEERegistry(path string) (VendorResolver, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, &SourceUnavailableError{Path: path, Err: err}
	}
	defer fh.Close()

	return ReadIEEERegistry(path, fh)
}

// ReadIEEERegistry parses an IEEE oui.txt registry. name is only used in
// error messages.
func ReadIEEERegistry(name string, r io.Reader) (VendorResolver, error) {
	db, err := oui.OpenStatic(r)
	if err != nil {
		return nil, errors.Wrapf(err, "parse IEEE registry %s", name)
	}

	return &ieeeResolver{db: db}, nil
}

func (r *ieeeResolver) Resolve(prefix OUI) (string, bool) {
	entry, err := r.db.Query(MAC{prefix[0], prefix[1], prefix[2]}.String())
	if err != nil || entry == nil {
		return "", false
	}
	vendor := strings.TrimSpace(entry.Manufacturer)
	return vendor, vendor != ""
}
