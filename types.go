package main

import "time"

// MAC is a raw 6 byte hardware address.
type MAC [6]byte

// OUI is the 3 byte vendor prefix of a MAC.
type OUI [3]byte

// Direction selects which address of a packet is accounted.
type Direction byte

const (
	Transmitter Direction = 't'
	Receiver    Direction = 'r'
)

func (d Direction) String() string {
	return string([]byte{byte(d)})
}

type PacketRecord struct {
	Transmitter MAC
	Receiver    MAC
	Bytes       uint64
}

// TrafficEntry is the running byte total for one aggregation key. When
// grouping by vendor the key's last three bytes are zero.
type TrafficEntry struct {
	Key   MAC
	Bytes uint64
}

type ReportRow struct {
	Key    string
	Vendor string
	Bytes  uint64
}

// Grouped reports whether the row belongs to a per-vendor report.
func (r ReportRow) Grouped() bool {
	return r.Vendor != ""
}

type VendorRecord struct {
	Prefix OUI
	Vendor string
}

// Run describes one report for persistence.
type Run struct {
	Time      time.Time
	Direction Direction
	Grouped   bool
}
