// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package preference

import "fmt"

// Protocol names an animated-QR transfer protocol.
type Protocol int

const (
	// ProtocolAuto defers to the stored per-wallet preference.
	ProtocolAuto Protocol = iota

	// ProtocolBBQR is the BBQr multi-part format.
	ProtocolBBQR

	// ProtocolURv2 is Uniform Resources, version 2.
	ProtocolURv2
)

func (p Protocol) String() string {
	switch p {
	case ProtocolAuto:
		return "auto"
	case ProtocolBBQR:
		return "bbqr"
	case ProtocolURv2:
		return "urv2"
	default:
		return fmt.Sprintf("Protocol(%d)", int(p))
	}
}

// ParseProtocol parses the lowercase name produced by String. The empty
// string is ProtocolAuto.
func ParseProtocol(name string) (Protocol, error) {
	switch name {
	case "", "auto":
		return ProtocolAuto, nil
	case "bbqr":
		return ProtocolBBQR, nil
	case "urv2", "ur":
		return ProtocolURv2, nil
	default:
		return ProtocolAuto, fmt.Errorf("unknown protocol %q (valid: auto, bbqr, urv2)", name)
	}
}
