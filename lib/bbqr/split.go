// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bbqr

import "fmt"

// Bounds limits the split planner's search. A zero field takes the
// value from [DefaultBounds].
type Bounds struct {
	MinVersion int
	MaxVersion int
	MinSplit   int
	MaxSplit   int
}

// DefaultBounds allows every tabulated version and every legal part
// count.
func DefaultBounds() Bounds {
	return Bounds{
		MinVersion: MinVersion,
		MaxVersion: MaxVersion,
		MinSplit:   1,
		MaxSplit:   MaxParts,
	}
}

// WithDefaults fills zero fields from DefaultBounds.
func (b Bounds) WithDefaults() Bounds {
	defaults := DefaultBounds()
	if b.MinVersion == 0 {
		b.MinVersion = defaults.MinVersion
	}
	if b.MaxVersion == 0 {
		b.MaxVersion = defaults.MaxVersion
	}
	if b.MinSplit == 0 {
		b.MinSplit = defaults.MinSplit
	}
	if b.MaxSplit == 0 {
		b.MaxSplit = defaults.MaxSplit
	}
	return b
}

// Validate checks that both ranges are inside the legal domain and
// not inverted. Zero fields are checked after defaulting.
func (b Bounds) Validate() error {
	b = b.WithDefaults()
	if _, ok := CapacityFor(b.MinVersion); !ok {
		return fmt.Errorf("%w: min version %d not in %d..%d", ErrInvalidBounds, b.MinVersion, MinVersion, MaxVersion)
	}
	if _, ok := CapacityFor(b.MaxVersion); !ok {
		return fmt.Errorf("%w: max version %d not in %d..%d", ErrInvalidBounds, b.MaxVersion, MinVersion, MaxVersion)
	}
	if b.MinVersion > b.MaxVersion {
		return fmt.Errorf("%w: min version %d > max version %d", ErrInvalidBounds, b.MinVersion, b.MaxVersion)
	}
	if b.MinSplit < 1 || b.MinSplit > MaxParts || b.MaxSplit < 1 || b.MaxSplit > MaxParts {
		return fmt.Errorf("%w: split %d..%d not within 1..%d", ErrInvalidBounds, b.MinSplit, b.MaxSplit, MaxParts)
	}
	if b.MinSplit > b.MaxSplit {
		return fmt.Errorf("%w: min split %d > max split %d", ErrInvalidBounds, b.MinSplit, b.MaxSplit)
	}
	return nil
}

// SplitPlan is the planner's answer: PartCount frames of QR version
// Version, each carrying CharsPerPart characters of encoded payload
// except the last, which carries the remainder.
type SplitPlan struct {
	Version      int
	PartCount    int
	CharsPerPart int
}

// Plan chooses how to split encodedLength characters of payload text in
// the given encoding. Among all versions in bounds it picks the plan
// with the fewest parts, breaking ties by the smallest version: fewer
// codes to scan matters more than denser codes.
//
// Multi-part plans use a chunk size rounded down to the encoding's
// modulus so every non-final chunk decodes on its own. A payload that
// fits one frame keeps the full unrounded capacity.
func Plan(encodedLength int, encoding Encoding, bounds Bounds) (SplitPlan, error) {
	if err := bounds.Validate(); err != nil {
		return SplitPlan{}, err
	}
	if !encoding.Valid() {
		return SplitPlan{}, fmt.Errorf("%w: %q", ErrInvalidEncoding, byte(encoding))
	}
	if encodedLength < 0 {
		return SplitPlan{}, fmt.Errorf("bbqr: negative payload length %d", encodedLength)
	}
	bounds = bounds.WithDefaults()
	modulus := encoding.Modulus()

	var best SplitPlan
	found := false
	for version := bounds.MinVersion; version <= bounds.MaxVersion; version++ {
		capacity, ok := CapacityFor(version)
		if !ok {
			continue
		}
		baseCapacity := capacity.Alphanumeric - HeaderLen
		if baseCapacity <= 0 {
			continue
		}
		adjustedCapacity := baseCapacity - baseCapacity%modulus

		var candidate SplitPlan
		if baseCapacity >= encodedLength {
			candidate = SplitPlan{Version: version, PartCount: 1, CharsPerPart: baseCapacity}
		} else {
			count := (encodedLength + adjustedCapacity - 1) / adjustedCapacity
			// The final part may use the unrounded capacity.
			if (count-1)*adjustedCapacity+baseCapacity < encodedLength {
				count++
			}
			candidate = SplitPlan{Version: version, PartCount: count, CharsPerPart: adjustedCapacity}
		}

		if candidate.PartCount < bounds.MinSplit || candidate.PartCount > bounds.MaxSplit {
			continue
		}
		if !found || candidate.PartCount < best.PartCount {
			best = candidate
			found = true
		}
		// Versions ascend, so an equal part count never beats the
		// earlier, smaller version.
	}

	if !found {
		return SplitPlan{}, fmt.Errorf("%w: %d characters within versions %d..%d and splits %d..%d",
			ErrNoFeasibleSplit, encodedLength,
			bounds.MinVersion, bounds.MaxVersion, bounds.MinSplit, bounds.MaxSplit)
	}
	return best, nil
}

// chunks slices text according to plan. The last chunk takes whatever
// remains and may be empty only for an empty payload.
func (p SplitPlan) chunks(text string) []string {
	parts := make([]string, p.PartCount)
	for index := range parts {
		start := min(index*p.CharsPerPart, len(text))
		end := min(start+p.CharsPerPart, len(text))
		if index == p.PartCount-1 {
			end = len(text)
		}
		parts[index] = text[start:end]
	}
	return parts
}
