package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func acmeTable() *OuiTable {
	return NewOuiTable([]VendorRecord{
		{Prefix: OUI{0xaa, 0xbb, 0xcc}, Vendor: "Acme"},
		{Prefix: OUI{0x00, 0x11, 0x22}, Vendor: "Zeta"},
	})
}

func TestFormatReportByAddress(t *testing.T) {
	assert := require.New(t)

	rows := FormatReport([]TrafficEntry{
		{Key: macA1, Bytes: 100},
		{Key: macB, Bytes: 7},
	}, nil)
	assert.Equal([]ReportRow{
		{Key: "aa:bb:cc:01:02:03", Bytes: 100},
		{Key: "11:22:33:44:55:66", Bytes: 7},
	}, rows)
}

func TestFormatReportByVendor(t *testing.T) {
	assert := require.New(t)

	rows := FormatReport([]TrafficEntry{
		{Key: MAC{0x11, 0x22, 0x33}, Bytes: 5},
		{Key: MAC{0xaa, 0xbb, 0xcc}, Bytes: 150},
		{Key: MAC{0x44, 0x55, 0x66}, Bytes: 20},
		{Key: MAC{0x00, 0x11, 0x22}, Bytes: 1},
	}, acmeTable())
	assert.Equal([]ReportRow{
		{Key: "aa:bb:cc", Vendor: "Acme", Bytes: 150},
		{Key: "00:11:22", Vendor: "Zeta", Bytes: 1},
		{Key: "??:??:??", Vendor: "UNKNOWN-VENDOR", Bytes: 25},
	}, rows)
}

func TestFormatReportNoUnknownRow(t *testing.T) {
	assert := require.New(t)

	rows := FormatReport([]TrafficEntry{{Key: MAC{0xaa, 0xbb, 0xcc}, Bytes: 3}}, acmeTable())
	assert.Equal([]ReportRow{{Key: "aa:bb:cc", Vendor: "Acme", Bytes: 3}}, rows)

	// Unresolved keys with zero bytes do not produce an unknown row.
	rows = FormatReport([]TrafficEntry{{Key: MAC{0x12, 0x34, 0x56}, Bytes: 0}}, acmeTable())
	assert.Empty(rows)

	assert.Empty(FormatReport(nil, acmeTable()))
	assert.Empty(FormatReport(nil, nil))
}

func TestSortRows(t *testing.T) {
	assert := require.New(t)

	rows := []ReportRow{
		{Key: "b", Bytes: 50},
		{Key: "c", Bytes: 200},
		{Key: "a", Bytes: 200},
	}
	SortRows(rows)
	assert.Equal([]ReportRow{
		{Key: "a", Bytes: 200},
		{Key: "c", Bytes: 200},
		{Key: "b", Bytes: 50},
	}, rows)
}

func TestSortRowsByVendorName(t *testing.T) {
	assert := require.New(t)

	rows := []ReportRow{
		{Key: "00:00:01", Vendor: "Zeta", Bytes: 10},
		{Key: "??:??:??", Vendor: "UNKNOWN-VENDOR", Bytes: 10},
		{Key: "ff:00:00", Vendor: "Acme", Bytes: 10},
		{Key: "aa:00:00", Vendor: "Acme", Bytes: 10},
		{Key: "00:00:02", Vendor: "Beta", Bytes: 99},
	}
	SortRows(rows)
	assert.Equal([]ReportRow{
		{Key: "00:00:02", Vendor: "Beta", Bytes: 99},
		{Key: "aa:00:00", Vendor: "Acme", Bytes: 10},
		{Key: "ff:00:00", Vendor: "Acme", Bytes: 10},
		{Key: "??:??:??", Vendor: "UNKNOWN-VENDOR", Bytes: 10},
		{Key: "00:00:01", Vendor: "Zeta", Bytes: 10},
	}, rows)
}

func TestWriteReport(t *testing.T) {
	assert := require.New(t)

	var buf bytes.Buffer
	assert.NoError(WriteReport(&buf, []ReportRow{
		{Key: "aa:bb:cc:01:02:03", Bytes: 100},
		{Key: "11:22:33:44:55:66", Bytes: 7},
	}))
	assert.Equal("aa:bb:cc:01:02:03\t100\n11:22:33:44:55:66\t7\n", buf.String())

	buf.Reset()
	assert.NoError(WriteReport(&buf, []ReportRow{
		{Key: "aa:bb:cc", Vendor: "Acme", Bytes: 150},
		{Key: "??:??:??", Vendor: "UNKNOWN-VENDOR", Bytes: 25},
	}))
	assert.Equal("aa:bb:cc\tAcme\t150\n??:??:??\tUNKNOWN-VENDOR\t25\n", buf.String())

	buf.Reset()
	assert.NoError(WriteReport(&buf, nil))
	assert.Empty(buf.String())
}
