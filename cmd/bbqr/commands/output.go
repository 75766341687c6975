// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/BlueWallet/BlueWallet-sub014/cmd/bbqr/cli"
	"github.com/BlueWallet/BlueWallet-sub014/lib/bbqr"
	"github.com/BlueWallet/BlueWallet-sub014/lib/binhash"
	"github.com/BlueWallet/BlueWallet-sub014/lib/codec"
)

// payloadParams select how a reassembled payload is written.
type payloadParams struct {
	Output       string `flag:"output,o" desc:"write the payload to this file instead of stdout"`
	Display      bool   `flag:"display,d" desc:"render for display: PSBTs as base64, everything else as text"`
	Diag         bool   `flag:"diag" desc:"render a CBOR payload in diagnostic notation"`
	ExpectDigest string `flag:"expect-digest" desc:"fail unless the payload digest equals this hex value"`
}

func (p payloadParams) validate() error {
	if p.Display && p.Diag {
		return cli.Validation("--display and --diag are mutually exclusive")
	}
	if p.ExpectDigest != "" {
		if _, err := binhash.ParseDigest(p.ExpectDigest); err != nil {
			return cli.Validation("--expect-digest: %w", err)
		}
	}
	return nil
}

// write verifies and emits payload according to p.
func (p payloadParams) write(s *session, payload *bbqr.Payload) error {
	digest := binhash.HashBytes(payload.Data)
	s.logger.Info("decoded",
		"bytes", len(payload.Data),
		"file_type", payload.FileType.String(),
		"encoding", payload.Encoding.String(),
		"parts", payload.PartCount,
		"digest", digest.String(),
	)

	if p.ExpectDigest != "" {
		expected, _ := binhash.ParseDigest(p.ExpectDigest)
		if expected != digest {
			return cli.Conflict("payload digest %s does not match expected %s", digest, expected)
		}
	}

	var rendered []byte
	switch {
	case p.Diag:
		diagnostic, err := codec.Diagnose(payload.Data)
		if err != nil {
			return cli.Validation("payload (type %s) is not CBOR: %w", payload.FileType, err)
		}
		rendered = []byte(diagnostic + "\n")
	case p.Display:
		rendered = []byte(payload.DisplayString() + "\n")
	default:
		rendered = payload.Data
	}

	if p.Output != "" {
		if err := os.WriteFile(p.Output, rendered, 0o644); err != nil {
			return cli.Internal("writing %s: %w", p.Output, err)
		}
		return nil
	}
	if _, err := s.env.Stdout.Write(rendered); err != nil {
		return cli.Internal("writing payload: %w", err)
	}
	return nil
}

// classifyDecodeError maps codec errors onto CLI categories.
func classifyDecodeError(err error) error {
	switch {
	case errors.Is(err, bbqr.ErrMissingParts), errors.Is(err, bbqr.ErrIncomplete):
		return cli.NotFound("%w", err).WithHint("Scan the missing parts and try again.")
	case errors.Is(err, bbqr.ErrConflictingDuplicate), errors.Is(err, bbqr.ErrInconsistentFrames):
		return cli.Conflict("%w", err).WithHint("The input mixes frames from more than one transfer.")
	default:
		return cli.Validation("%w", err)
	}
}

// formatHeaderRow renders one header as tab-separated columns.
func formatHeaderRow(w io.Writer, header bbqr.Header, frameLength int) {
	fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%d\n",
		header.PartIndex, header.PartCount,
		header.Encoding, header.FileType,
		frameLength-bbqr.HeaderLen)
}
