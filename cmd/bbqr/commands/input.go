// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/BlueWallet/BlueWallet-sub014/cmd/bbqr/cli"
)

// readInput resolves input data from either a file (the single element
// of args) or stdin. More than one positional argument is an error.
func readInput(env *Environment, args []string) ([]byte, error) {
	switch len(args) {
	case 0:
		data, err := io.ReadAll(env.Stdin)
		if err != nil {
			return nil, cli.Internal("read stdin: %w", err)
		}
		return data, nil
	case 1:
		data, err := os.ReadFile(args[0])
		if err != nil {
			if os.IsNotExist(err) {
				return nil, cli.NotFound("read %s: %w", args[0], err)
			}
			return nil, cli.Internal("read %s: %w", args[0], err)
		}
		return data, nil
	default:
		return nil, cli.Validation("expected at most one input file, got %d arguments", len(args))
	}
}

// openInput is readInput for line-oriented consumers: it returns a
// reader over the file or stdin without buffering the whole input.
func openInput(env *Environment, args []string) (io.ReadCloser, error) {
	switch len(args) {
	case 0:
		return io.NopCloser(env.Stdin), nil
	case 1:
		file, err := os.Open(args[0])
		if err != nil {
			if os.IsNotExist(err) {
				return nil, cli.NotFound("open %s: %w", args[0], err)
			}
			return nil, cli.Internal("open %s: %w", args[0], err)
		}
		return file, nil
	default:
		return nil, cli.Validation("expected at most one input file, got %d arguments", len(args))
	}
}

// readFrames reads one frame per line, trimming surrounding whitespace
// and skipping blank lines.
func readFrames(env *Environment, args []string) ([]string, error) {
	input, err := openInput(env, args)
	if err != nil {
		return nil, err
	}
	defer input.Close()

	var frames []string
	scanner := newFrameScanner(input)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			frames = append(frames, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, cli.Internal("reading frames: %w", err)
	}
	if len(frames) == 0 {
		return nil, cli.Validation("no frames in input")
	}
	return frames, nil
}

// maxFrameLine bounds one input line. The largest QR code holds 4296
// characters; the slack allows for stray whitespace.
const maxFrameLine = 64 << 10

func newFrameScanner(input io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 4096), maxFrameLine)
	return scanner
}

// decodeHexInput strips whitespace from hex-encoded input and decodes
// it to binary bytes. Whitespace between hex digit pairs is allowed
// (e.g., "70 73 62 74" or "70736274").
func decodeHexInput(data []byte) ([]byte, error) {
	cleaned := bytes.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, data)

	if len(cleaned) == 0 {
		return nil, fmt.Errorf("empty input after stripping whitespace from hex")
	}

	decoded := make([]byte, hex.DecodedLen(len(cleaned)))
	count, err := hex.Decode(decoded, cleaned)
	if err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	return decoded[:count], nil
}
