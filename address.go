package main

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/gopacket/layers"
	"github.com/pkg/errors"
)

// ParseMAC parses the textual form xx:xx:xx:xx:xx:xx. Both hex cases are
// accepted; anything else is an error.
func ParseMAC(s string) (MAC, error) {
	var mac MAC

	parts := strings.Split(s, ":")
	if len(parts) != len(mac) {
		return mac, errors.Errorf("bad MAC address %q: want 6 octets, got %d", s, len(parts))
	}
	for i, part := range parts {
		b, err := parseOctet(part)
		if err != nil {
			return mac, errors.Wrapf(err, "bad MAC address %q", s)
		}
		mac[i] = b
	}

	return mac, nil
}

// ParseOUI parses a vendor prefix written as xxxxxx, or as xx?xx?xx where the
// separator is one of ":-." and the same in both places.
func ParseOUI(s string) (OUI, error) {
	var oui OUI

	hex := strings.TrimSpace(s)
	switch {
	case len(hex) == 6:
	case len(hex) == 8 && hex[2] == hex[5] && strings.IndexByte(":-.", hex[2]) >= 0:
		hex = hex[0:2] + hex[3:5] + hex[6:8]
	default:
		return oui, errors.Errorf("bad OUI %q: want xx:xx:xx or 6 hex digits", s)
	}
	for i := range oui {
		b, err := parseOctet(hex[2*i : 2*i+2])
		if err != nil {
			return oui, errors.Wrapf(err, "bad OUI %q", s)
		}
		oui[i] = b
	}

	return oui, nil
}

func parseOctet(s string) (byte, error) {
	if len(s) != 2 {
		return 0, errors.Errorf("octet %q is not two hex digits", s)
	}
	v, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0, errors.Errorf("octet %q is not hexadecimal", s)
	}
	return byte(v), nil
}

func (m MAC) String() string {
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x",
		m[0], m[1], m[2], m[3], m[4], m[5])
}

// OUI returns the vendor prefix of m.
func (m MAC) OUI() OUI {
	return OUI{m[0], m[1], m[2]}
}

func (o OUI) String() string {
	return fmt.Sprintf("%02x:%02x:%02x", o[0], o[1], o[2])
}

// IsBroadcast reports whether every byte of mac is 0xff.
func IsBroadcast(mac MAC) bool {
	return bytes.Equal(mac[:], layers.EthernetBroadcast)
}

// GroupKey returns the aggregation key for mac. With byVendor set the
// address is truncated to its OUI and the remaining bytes are zeroed.
func GroupKey(mac MAC, byVendor bool) MAC {
	if !byVendor {
		return mac
	}
	oui := mac.OUI()
	return MAC{oui[0], oui[1], oui[2]}
}
