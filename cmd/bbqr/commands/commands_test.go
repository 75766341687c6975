// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BlueWallet/BlueWallet-sub014/cmd/bbqr/cli"
	"github.com/BlueWallet/BlueWallet-sub014/lib/bbqr"
	"github.com/BlueWallet/BlueWallet-sub014/lib/binhash"
	"github.com/BlueWallet/BlueWallet-sub014/lib/codec"
	"github.com/BlueWallet/BlueWallet-sub014/lib/config"
	"github.com/BlueWallet/BlueWallet-sub014/lib/testutil"
)

// harness runs the command tree against in-memory streams with a
// private config and preference file.
type harness struct {
	t      *testing.T
	dir    string
	stderr bytes.Buffer

	// ctx replaces context.Background() when set.
	ctx context.Context
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	configPath := filepath.Join(dir, "bbqr.yaml")
	content := fmt.Sprintf("preference:\n  state_file: %s\nlog:\n  level: debug\n",
		filepath.Join(dir, "preferences.cbor"))
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv(config.EnvVar, configPath)
	return &harness{t: t, dir: dir}
}

func (h *harness) run(stdin string, args ...string) (string, error) {
	var stdout bytes.Buffer
	ctx := h.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	env := &Environment{
		Context: ctx,
		Stdin:   strings.NewReader(stdin),
		Stdout:  &stdout,
		Stderr:  &h.stderr,
	}
	err := Root(env).Execute(args)
	return stdout.String(), err
}

// mustRun fails the test on error.
func (h *harness) mustRun(stdin string, args ...string) string {
	h.t.Helper()
	out, err := h.run(stdin, args...)
	if err != nil {
		h.t.Fatalf("bbqr %s: %v\nstderr:\n%s", strings.Join(args, " "), err, h.stderr.String())
	}
	return out
}

func requireCategory(t *testing.T, err error, category cli.ErrorCategory) {
	t.Helper()
	var toolErr *cli.ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("error = %v (%T), want ToolError with category %s", err, err, category)
	}
	if toolErr.Category != category {
		t.Fatalf("category = %s, want %s (error: %v)", toolErr.Category, category, err)
	}
}

func psbtPayload(length int) []byte {
	data := testutil.RandomBytes(length, 7)
	copy(data, []byte{0x70, 0x73, 0x62, 0x74, 0xff})
	return data
}

func TestEncodeKnownFrame(t *testing.T) {
	h := newHarness(t)
	out := h.mustRun("hello", "encode", "--encoding", "hex")
	if want := "B$HB01006" + "8656C6C6F\n"; out != want {
		t.Errorf("encode output = %q, want %q", out, want)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	h := newHarness(t)
	payload := psbtPayload(3000)

	for _, encoding := range []string{"auto", "hex", "base32"} {
		t.Run(encoding, func(t *testing.T) {
			out := h.mustRun(string(payload), "encode", "--encoding", encoding, "--max-version", "12")
			frames := strings.Fields(out)
			if len(frames) < 2 {
				t.Fatalf("expected a multi-part transfer, got %d frames", len(frames))
			}

			decoded := h.mustRun(strings.Join(testutil.Shuffled(frames, 3), "\n"), "decode")
			if decoded != string(payload) {
				t.Errorf("decode returned %d bytes, want the original %d", len(decoded), len(payload))
			}
		})
	}
}

func TestEncodeFromFileAndDecodeToFile(t *testing.T) {
	h := newHarness(t)
	payload := []byte(`{"wallet": "coldcard", "xpub": "tpubD6NzVbkrYhZ4"}`)
	input := filepath.Join(h.dir, "wallet.json")
	if err := os.WriteFile(input, payload, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	framesPath := filepath.Join(h.dir, "frames.txt")
	out := h.mustRun("", "encode", input)
	if !strings.HasPrefix(out, "B$") || out[3] != 'J' {
		t.Errorf("expected a JSON frame, got %q", out)
	}
	if err := os.WriteFile(framesPath, []byte(out), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	output := filepath.Join(h.dir, "decoded.json")
	if stdout := h.mustRun("", "decode", "--output", output, framesPath); stdout != "" {
		t.Errorf("decode --output wrote %q to stdout", stdout)
	}
	got, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("decoded file = %q, want %q", got, payload)
	}
}

func TestEncodeFragmentCapacity(t *testing.T) {
	h := newHarness(t)
	payload := psbtPayload(1000)

	// The config default of 175 bytes per fragment asks for 6 parts.
	frames := strings.Fields(h.mustRun(string(payload), "encode"))
	if len(frames) < 6 {
		t.Errorf("got %d frames, want at least 6 from the fragment floor", len(frames))
	}

	frames = strings.Fields(h.mustRun(string(payload), "encode", "--fragment-capacity", "-1"))
	if len(frames) != 1 {
		t.Errorf("with the floor disabled got %d frames, want 1", len(frames))
	}

	// A floor no plan can meet is dropped rather than failing.
	frames = strings.Fields(h.mustRun("hello", "encode", "--encoding", "hex", "--fragment-capacity", "1"))
	if len(frames) != 1 {
		t.Errorf("infeasible floor: got %d frames, want 1", len(frames))
	}
}

func TestEncodeInputModes(t *testing.T) {
	h := newHarness(t)

	hexOut := h.mustRun("68 65 6c\n6c 6f\n", "encode", "--hex", "--encoding", "hex")
	textOut := h.mustRun("68656c6c6f\n", "encode", "--text", "--encoding", "hex")
	rawOut := h.mustRun("hello", "encode", "--encoding", "hex")
	if hexOut != rawOut || textOut != rawOut {
		t.Errorf("input modes disagree:\nhex:  %q\ntext: %q\nraw:  %q", hexOut, textOut, rawOut)
	}

	_, err := h.run("zz", "encode", "--hex")
	requireCategory(t, err, cli.CategoryValidation)

	_, err = h.run("00", "encode", "--hex", "--text")
	requireCategory(t, err, cli.CategoryValidation)
}

func TestEncodeRejectsBadFlags(t *testing.T) {
	h := newHarness(t)
	tests := [][]string{
		{"encode", "--type", "spreadsheet"},
		{"encode", "--encoding", "base64"},
		{"encode", "--min-version", "2"},
		{"encode", "--min-split", "9", "--max-split", "3"},
		{"encode", "--max-version", "5", "--max-split", "1", "--fragment-capacity", "-1", "--encoding", "hex"},
	}
	for _, args := range tests {
		t.Run(strings.Join(args[1:], " "), func(t *testing.T) {
			_, err := h.run(strings.Repeat("x", 2000), args...)
			requireCategory(t, err, cli.CategoryValidation)
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	h := newHarness(t)
	frames := strings.Fields(h.mustRun(string(psbtPayload(600)), "encode", "--encoding", "hex", "--max-version", "5"))
	if len(frames) < 3 {
		t.Fatalf("need at least 3 frames, got %d", len(frames))
	}

	t.Run("missing parts", func(t *testing.T) {
		_, err := h.run(strings.Join(frames[1:], "\n"), "decode")
		requireCategory(t, err, cli.CategoryNotFound)
		if !errors.Is(err, bbqr.ErrMissingParts) {
			t.Errorf("error should wrap ErrMissingParts: %v", err)
		}
		if cli.ExitCode(err) != 3 {
			t.Errorf("exit code = %d, want 3", cli.ExitCode(err))
		}
	})

	t.Run("mixed transfers", func(t *testing.T) {
		other := h.mustRun("another payload", "encode", "--encoding", "base32")
		_, err := h.run(strings.Join(frames, "\n")+"\n"+other, "decode")
		requireCategory(t, err, cli.CategoryConflict)
	})

	t.Run("not frames", func(t *testing.T) {
		_, err := h.run("hello world\n", "decode")
		requireCategory(t, err, cli.CategoryValidation)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := h.run("\n\n", "decode")
		requireCategory(t, err, cli.CategoryValidation)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := h.run("", "decode", filepath.Join(h.dir, "absent.txt"))
		requireCategory(t, err, cli.CategoryNotFound)
	})
}

func TestDecodeExpectDigest(t *testing.T) {
	h := newHarness(t)
	payload := []byte("digest me")
	out := h.mustRun(string(payload), "encode")

	digest := binhash.FormatDigest(binhash.HashBytes(payload))
	if decoded := h.mustRun(out, "decode", "--expect-digest", digest); decoded != string(payload) {
		t.Errorf("decode = %q, want %q", decoded, payload)
	}

	wrong := binhash.FormatDigest(binhash.HashBytes([]byte("something else")))
	_, err := h.run(out, "decode", "--expect-digest", wrong)
	requireCategory(t, err, cli.CategoryConflict)

	_, err = h.run(out, "decode", "--expect-digest", "not-hex")
	requireCategory(t, err, cli.CategoryValidation)
}

func TestDecodeDisplayAndDiag(t *testing.T) {
	h := newHarness(t)

	psbt := psbtPayload(200)
	frames := h.mustRun(string(psbt), "encode")
	display := h.mustRun(frames, "decode", "--display")
	if want := base64.StdEncoding.EncodeToString(psbt) + "\n"; display != want {
		t.Errorf("decode --display = %q, want base64 of the PSBT", display)
	}

	document, err := codec.Marshal(map[string]any{"fee": 1200, "inputs": []string{"a", "b"}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	frames = h.mustRun(string(document), "encode", "--type", "cbor")
	diag := h.mustRun(frames, "decode", "--diag")
	for _, want := range []string{`"fee": 1200`, `"inputs"`} {
		if !strings.Contains(diag, want) {
			t.Errorf("decode --diag = %q, missing %q", diag, want)
		}
	}

	_, err = h.run(frames, "decode", "--diag", "--display")
	requireCategory(t, err, cli.CategoryValidation)
}

func TestScan(t *testing.T) {
	h := newHarness(t)
	payload := psbtPayload(2000)
	frames := strings.Fields(h.mustRun(string(payload), "encode", "--max-version", "8"))
	if len(frames) < 3 {
		t.Fatalf("need at least 3 frames, got %d", len(frames))
	}

	// Scanners repeat codes and pick up unrelated ones. The noise line
	// goes first so it is read before the transfer completes.
	repeated := append(append([]string(nil), frames...), frames[0], frames[1])
	lines := append([]string{"https://example.com/not-a-frame"}, testutil.Shuffled(repeated, 11)...)
	input := strings.Join(lines, "\n")

	if decoded := h.mustRun(input, "scan"); decoded != string(payload) {
		t.Errorf("scan returned %d bytes, want the original %d", len(decoded), len(payload))
	}
	if !strings.Contains(h.stderr.String(), "frame rejected") {
		t.Errorf("expected the noise line to be logged as rejected:\n%s", h.stderr.String())
	}
}

func TestScanIncomplete(t *testing.T) {
	h := newHarness(t)
	frames := strings.Fields(h.mustRun(string(psbtPayload(2000)), "encode", "--max-version", "8"))

	_, err := h.run(strings.Join(frames[:len(frames)-1], "\n"), "scan")
	requireCategory(t, err, cli.CategoryNotFound)
	var incomplete *bbqr.IncompleteError
	if !errors.As(err, &incomplete) {
		t.Fatalf("error should carry an IncompleteError: %v", err)
	}
	if want := len(frames) - 1; len(incomplete.Missing) != 1 || incomplete.Missing[0] != want {
		t.Errorf("missing = %v, want [%d]", incomplete.Missing, want)
	}

	_, err = h.run("noise\nmore noise\n", "scan")
	requireCategory(t, err, cli.CategoryValidation)
}

func TestInspect(t *testing.T) {
	h := newHarness(t)
	frames := h.mustRun(string(psbtPayload(600)), "encode", "--encoding", "hex", "--max-version", "5")

	out := h.mustRun(frames, "inspect")
	for _, want := range []string{"INDEX", "ENCODING", "hex", "psbt", "payload: 600 bytes psbt"} {
		if !strings.Contains(out, want) {
			t.Errorf("inspect output missing %q:\n%s", want, out)
		}
	}

	out, err := h.run(frames+"garbage\n", "inspect")
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 2 {
		t.Errorf("inspect with a bad line: error = %v, want ExitError code 2", err)
	}
	if !strings.Contains(out, "line ") {
		t.Errorf("inspect should report the bad line:\n%s", out)
	}

	lines := strings.Fields(frames)
	out, err = h.run(strings.Join(lines[1:], "\n"), "inspect")
	if !errors.As(err, &exitErr) || exitErr.Code != 3 {
		t.Errorf("inspect with a missing part: error = %v, want ExitError code 3", err)
	}
	if !strings.Contains(out, "missing") {
		t.Errorf("inspect should report missing parts:\n%s", out)
	}
}

func TestInspectCBOR(t *testing.T) {
	h := newHarness(t)
	document, err := codec.Marshal([]int{1, 2, 3})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	frames := h.mustRun(string(document), "encode", "--type", "C")
	if out := h.mustRun(frames, "inspect"); !strings.Contains(out, "cbor: well-formed") {
		t.Errorf("inspect output missing well-formed line:\n%s", out)
	}

	frames = h.mustRun("\xa1\x61", "encode", "--type", "C")
	_, err = h.run(frames, "inspect")
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) {
		t.Errorf("inspect of truncated CBOR: error = %v, want ExitError", err)
	}
}

func TestPlan(t *testing.T) {
	h := newHarness(t)
	out := h.mustRun("", "plan", "--length", "10000", "--encoding", "hex")

	want, err := bbqr.Plan(20000, bbqr.EncodingHex, bbqr.DefaultBounds())
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	for _, line := range []string{
		"characters:     20000",
		fmt.Sprintf("version:        %d", want.Version),
		fmt.Sprintf("parts:          %d", want.PartCount),
		fmt.Sprintf("chars per part: %d", want.CharsPerPart),
	} {
		if !strings.Contains(out, line) {
			t.Errorf("plan output missing %q:\n%s", line, out)
		}
	}

	_, err = h.run("", "plan", "--length", "100000", "--encoding", "hex", "--max-split", "2")
	requireCategory(t, err, cli.CategoryValidation)
	if !errors.Is(err, bbqr.ErrNoFeasibleSplit) {
		t.Errorf("error should wrap ErrNoFeasibleSplit: %v", err)
	}

	_, err = h.run("", "plan", "--length", "10", "extra")
	requireCategory(t, err, cli.CategoryValidation)
}

func TestPrefs(t *testing.T) {
	h := newHarness(t)

	if out := h.mustRun("", "prefs", "show"); out != "" {
		t.Errorf("prefs show on a fresh store = %q, want empty", out)
	}
	h.mustRun("", "prefs", "require-bbqr", "coldcard")

	if out := h.mustRun("", "prefs", "show"); out != "coldcard\n" {
		t.Errorf("prefs show = %q, want coldcard", out)
	}
	if out := h.mustRun("", "preferences", "list"); out != "coldcard\n" {
		t.Errorf("preferences list = %q, want coldcard", out)
	}
	if out := h.mustRun("", "prefs", "resolve", "coldcard"); out != "bbqr\n" {
		t.Errorf("resolve coldcard = %q, want bbqr", out)
	}
	if out := h.mustRun("", "prefs", "resolve", "keystone"); out != "urv2\n" {
		t.Errorf("resolve keystone = %q, want urv2", out)
	}

	_, err := h.run("", "prefs", "require-bbqr")
	requireCategory(t, err, cli.CategoryValidation)
}

func TestEncodeWalletPreference(t *testing.T) {
	h := newHarness(t)
	h.mustRun("", "prefs", "require-bbqr", "coldcard")

	if out := h.mustRun("hello", "encode", "--wallet", "coldcard"); !strings.HasPrefix(out, "B$") {
		t.Errorf("encode for a BBQr wallet = %q", out)
	}

	_, err := h.run("hello", "encode", "--wallet", "keystone")
	requireCategory(t, err, cli.CategoryValidation)
	if !strings.Contains(err.Error(), "--protocol bbqr") {
		t.Errorf("error should suggest --protocol bbqr: %v", err)
	}

	// Forcing BBQr for a wallet remembers the choice.
	h.mustRun("hello", "encode", "--wallet", "keystone", "--protocol", "bbqr")
	if out := h.mustRun("", "prefs", "resolve", "keystone"); out != "bbqr\n" {
		t.Errorf("resolve keystone after forcing = %q, want bbqr", out)
	}

	_, err = h.run("hello", "encode", "--protocol", "urv2")
	requireCategory(t, err, cli.CategoryValidation)
}

func TestConfigErrors(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("hello", "encode", "--config", filepath.Join(h.dir, "absent.yaml"))
	requireCategory(t, err, cli.CategoryValidation)

	bad := filepath.Join(h.dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("encode:\n  max_version: 99\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err = h.run("hello", "encode", "--config", bad)
	requireCategory(t, err, cli.CategoryValidation)

	_, err = h.run("hello", "encode", "--log-level", "chatty")
	requireCategory(t, err, cli.CategoryValidation)
}

func TestUnknownCommand(t *testing.T) {
	h := newHarness(t)
	_, err := h.run("", "decdoe")
	requireCategory(t, err, cli.CategoryValidation)
	if !strings.Contains(err.Error(), `"decode"`) {
		t.Errorf("error should suggest decode: %v", err)
	}
}
