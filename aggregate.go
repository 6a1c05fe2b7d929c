package main

import (
	"io"
	"math"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Aggregator sums packet bytes per station, keeping keys in the order they
// were first seen.
type Aggregator struct {
	direction Direction
	byVendor  bool

	index   map[MAC]int
	entries []TrafficEntry

	total     uint64
	records   int
	broadcast int
}

// NewAggregator returns an Aggregator accounting the given direction,
// keyed by full address or by vendor prefix.
func NewAggregator(direction Direction, byVendor bool) *Aggregator {
	return &Aggregator{
		direction: direction,
		byVendor:  byVendor,
		index:     map[MAC]int{},
	}
}

// Ingest adds one record. Records whose selected address is broadcast are
// dropped. The sum of all accepted bytes is kept within math.MaxInt64, so no
// total or sum of totals can overflow.
func (a *Aggregator) Ingest(rec PacketRecord) error {
	a.records++

	mac := rec.Transmitter
	if a.direction == Receiver {
		mac = rec.Receiver
	}
	if IsBroadcast(mac) {
		a.broadcast++
		return nil
	}
	if rec.Bytes > math.MaxInt64-a.total {
		return errors.Errorf("byte total exceeds %d after record %d", uint64(math.MaxInt64), a.records)
	}

	key := GroupKey(mac, a.byVendor)
	idx, ok := a.index[key]
	if !ok {
		idx = len(a.entries)
		a.index[key] = idx
		a.entries = append(a.entries, TrafficEntry{Key: key})
	}
	a.entries[idx].Bytes += rec.Bytes
	a.total += rec.Bytes
	return nil
}

// Entries returns the accumulated totals in first-seen order.
func (a *Aggregator) Entries() []TrafficEntry {
	out := make([]TrafficEntry, len(a.entries))
	copy(out, a.entries)
	return out
}

// Aggregate drains src and returns the per-key totals. A source error aborts
// the whole aggregation.
func Aggregate(src RecordSource, direction Direction, byVendor bool, slog *zap.SugaredLogger) ([]TrafficEntry, error) {
	agg := NewAggregator(direction, byVendor)
	for {
		rec, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if err := agg.Ingest(rec); err != nil {
			return nil, err
		}
	}

	slog.Debugw("aggregated packet records",
		"records", agg.records,
		"broadcast", agg.broadcast,
		"keys", len(agg.entries),
		"byVendor", byVendor)
	return agg.Entries(), nil
}
