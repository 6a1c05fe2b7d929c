package main

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/pkg/errors"
)

// RecordSource yields packet records until it returns io.EOF.
type RecordSource interface {
	Next() (PacketRecord, error)
}

// logSource reads a tab-separated packet log:
//
//	<ignored> <transmitter MAC> <receiver MAC> <bytes>
type logSource struct {
	name    string
	scanner *bufio.Scanner
	line    int
}

// NewLogSource returns a RecordSource over a tab-separated packet log. name is
// only used in error messages.
func NewLogSource(name string, r io.Reader) RecordSource {
	return &logSource{name: name, scanner: bufio.NewScanner(r)}
}

func (s *logSource) Next() (PacketRecord, error) {
	for s.scanner.Scan() {
		s.line++
		text := strings.TrimRight(s.scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		rec, err := parseLogLine(text)
		if err != nil {
			return PacketRecord{}, malformed(s.name, s.line, err)
		}
		return rec, nil
	}
	if err := s.scanner.Err(); err != nil {
		return PacketRecord{}, scanError(s.name, s.line+1, err)
	}
	return PacketRecord{}, io.EOF
}

func parseLogLine(text string) (PacketRecord, error) {
	var rec PacketRecord

	fields := strings.Split(text, "\t")
	if len(fields) < 4 {
		return rec, errors.Errorf("want 4 tab-separated fields, got %d", len(fields))
	}

	var err error
	if rec.Transmitter, err = ParseMAC(fields[1]); err != nil {
		return rec, errors.Wrap(err, "transmitter")
	}
	if rec.Receiver, err = ParseMAC(fields[2]); err != nil {
		return rec, errors.Wrap(err, "receiver")
	}
	if rec.Bytes, err = strconv.ParseUint(strings.TrimSpace(fields[3]), 10, 64); err != nil {
		return rec, errors.Errorf("bad byte count %q", fields[3])
	}

	return rec, nil
}

// pcapSource reads Ethernet frames from a pcap capture file.
type pcapSource struct {
	name   string
	reader *pcapgo.Reader
	frame  int
}

// NewPcapSource returns a RecordSource over a pcap capture. Each frame's
// source and destination addresses become the transmitter and receiver and
// its original wire length the byte count.
func NewPcapSource(name string, r io.Reader) (RecordSource, error) {
	reader, err := pcapgo.NewReader(r)
	if err != nil {
		return nil, malformed(name, 0, errors.Wrap(err, "bad pcap header"))
	}
	return &pcapSource{name: name, reader: reader}, nil
}

func (s *pcapSource) Next() (PacketRecord, error) {
	data, ci, err := s.reader.ReadPacketData()
	if err == io.EOF {
		return PacketRecord{}, io.EOF
	}
	s.frame++
	if err != nil {
		return PacketRecord{}, malformed(s.name, s.frame, err)
	}

	packet := gopacket.NewPacket(data, s.reader.LinkType(), gopacket.Default)
	ethLayer := packet.Layer(layers.LayerTypeEthernet)
	if ethLayer == nil {
		return PacketRecord{}, malformed(s.name, s.frame, errors.New("frame has no Ethernet layer"))
	}
	eth := ethLayer.(*layers.Ethernet)

	var rec PacketRecord
	copy(rec.Transmitter[:], eth.SrcMAC)
	copy(rec.Receiver[:], eth.DstMAC)
	rec.Bytes = uint64(ci.Length)
	return rec, nil
}

// openSource opens path as a packet log, or as a pcap capture when capture is
// set. The returned closer releases the file.
func openSource(path string, capture bool) (RecordSource, io.Closer, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, nil, &SourceUnavailableError{Path: path, Err: err}
	}
	if !capture {
		return NewLogSource(path, fh), fh, nil
	}
	src, err := NewPcapSource(path, fh)
	if err != nil {
		fh.Close()
		return nil, nil, err
	}
	return src, fh, nil
}
