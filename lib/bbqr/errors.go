// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bbqr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Malformed input. Returned (wrapped with detail) by [ParseHeader] and
// header construction.
var (
	ErrMalformedHeader     = errors.New("bbqr: malformed header")
	ErrInvalidEncoding     = errors.New("bbqr: invalid encoding")
	ErrInvalidFileType     = errors.New("bbqr: invalid file type")
	ErrInvalidPartCount    = errors.New("bbqr: invalid part count")
	ErrPartIndexOutOfRange = errors.New("bbqr: part index out of range")
)

// Cross-frame problems. The typed errors below match these through
// errors.Is.
var (
	ErrInconsistentFrames   = errors.New("bbqr: inconsistent frames")
	ErrConflictingDuplicate = errors.New("bbqr: conflicting duplicate part")
	ErrMissingParts         = errors.New("bbqr: missing parts")
	ErrIncomplete           = errors.New("bbqr: decode incomplete")
)

var (
	// ErrNoFeasibleSplit means the payload cannot be represented within
	// the requested version and split bounds. Relaxing the bounds may
	// help.
	ErrNoFeasibleSplit = errors.New("bbqr: no feasible split")

	// ErrInvalidBounds means the caller's version or split bounds are
	// themselves out of range or inverted.
	ErrInvalidBounds = errors.New("bbqr: invalid bounds")

	// ErrNoFrames is returned by Decode for an empty batch.
	ErrNoFrames = errors.New("bbqr: no frames")

	// ErrInvalidPayload means the reassembled text does not decode
	// under its declared encoding.
	ErrInvalidPayload = errors.New("bbqr: invalid payload")
)

// InconsistentFramesError reports the first header field that differs
// from the metadata adopted from earlier frames.
type InconsistentFramesError struct {
	Field string
	Got   string
	Want  string
}

func (e *InconsistentFramesError) Error() string {
	return fmt.Sprintf("bbqr: inconsistent frames: %s %s != %s", e.Field, e.Got, e.Want)
}

func (e *InconsistentFramesError) Is(target error) bool {
	return target == ErrInconsistentFrames
}

// ConflictingDuplicateError reports a part index seen twice with
// different chunk text.
type ConflictingDuplicateError struct {
	Index int
}

func (e *ConflictingDuplicateError) Error() string {
	return fmt.Sprintf("bbqr: duplicate part %d with different content", e.Index)
}

func (e *ConflictingDuplicateError) Is(target error) bool {
	return target == ErrConflictingDuplicate
}

// MissingPartsError lists every absent part index of a batch passed to
// [Decode], in ascending order.
type MissingPartsError struct {
	Indices []int
}

func (e *MissingPartsError) Error() string {
	return "bbqr: missing parts: " + joinIndices(e.Indices)
}

func (e *MissingPartsError) Is(target error) bool {
	return target == ErrMissingParts
}

// IncompleteError is returned by [StreamDecoder.Finalize] before every
// part has arrived, and by [StreamDecoder.Collect] when its input ends
// early. Missing is empty when no frame was received at all.
type IncompleteError struct {
	Missing []int
}

func (e *IncompleteError) Error() string {
	if len(e.Missing) == 0 {
		return "bbqr: decode incomplete: no frames received"
	}
	return "bbqr: decode incomplete: missing parts " + joinIndices(e.Missing)
}

func (e *IncompleteError) Is(target error) bool {
	return target == ErrIncomplete
}

func joinIndices(indices []int) string {
	formatted := make([]string, len(indices))
	for i, index := range indices {
		formatted[i] = strconv.Itoa(index)
	}
	return strings.Join(formatted, ", ")
}
