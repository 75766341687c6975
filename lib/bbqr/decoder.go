// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bbqr

import (
	"fmt"
	"strconv"
	"strings"
)

// Payload is a fully reassembled transfer.
type Payload struct {
	Data      []byte
	Encoding  Encoding
	FileType  FileType
	PartCount int
}

// Decode reassembles a complete batch of frames given in any order.
// Exact duplicates are absorbed; a duplicate index with different text
// is a [ConflictingDuplicateError]. Every header must agree on
// encoding, file type, and part count. If any index is absent the error
// is a [MissingPartsError] naming all of them.
func Decode(frames []string) (*Payload, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}

	headers := make([]Header, len(frames))
	for i, frame := range frames {
		header, err := ParseHeader(frame)
		if err != nil {
			return nil, err
		}
		headers[i] = header
	}

	meta := metadataOf(headers[0])
	for _, header := range headers[1:] {
		if err := meta.check(header); err != nil {
			return nil, err
		}
	}

	parts := newAssembly(meta)
	for i, frame := range frames {
		if _, err := parts.add(headers[i].PartIndex, frame[HeaderLen:]); err != nil {
			return nil, err
		}
	}

	if missing := parts.missing(); len(missing) > 0 {
		return nil, &MissingPartsError{Indices: missing}
	}
	return parts.payload()
}

// metadata is the per-transfer header state every frame must repeat.
type metadata struct {
	encoding  Encoding
	fileType  FileType
	partCount int
}

func metadataOf(header Header) metadata {
	return metadata{
		encoding:  header.Encoding,
		fileType:  header.FileType,
		partCount: header.PartCount,
	}
}

func (m metadata) check(header Header) error {
	switch {
	case header.Encoding != m.encoding:
		return &InconsistentFramesError{
			Field: "encoding",
			Got:   string(rune(header.Encoding)),
			Want:  string(rune(m.encoding)),
		}
	case header.FileType != m.fileType:
		return &InconsistentFramesError{
			Field: "file type",
			Got:   string(rune(header.FileType)),
			Want:  string(rune(m.fileType)),
		}
	case header.PartCount != m.partCount:
		return &InconsistentFramesError{
			Field: "part count",
			Got:   strconv.Itoa(header.PartCount),
			Want:  strconv.Itoa(m.partCount),
		}
	}
	return nil
}

// assembly accumulates chunk text by part index for one transfer.
type assembly struct {
	metadata
	chunks map[int]string
}

func newAssembly(meta metadata) *assembly {
	return &assembly{
		metadata: meta,
		chunks:   make(map[int]string, meta.partCount),
	}
}

// add stores chunk under index. It returns false for an exact
// duplicate and leaves the assembly unchanged on error.
func (a *assembly) add(index int, chunk string) (bool, error) {
	if existing, ok := a.chunks[index]; ok {
		if existing != chunk {
			return false, &ConflictingDuplicateError{Index: index}
		}
		return false, nil
	}
	a.chunks[index] = chunk
	return true, nil
}

func (a *assembly) complete() bool {
	return len(a.chunks) == a.partCount
}

func (a *assembly) missing() []int {
	var missing []int
	for index := 0; index < a.partCount; index++ {
		if _, ok := a.chunks[index]; !ok {
			missing = append(missing, index)
		}
	}
	return missing
}

// payload concatenates the chunks in index order and decodes them. The
// caller guarantees completeness. Every chunk but the last must be a
// multiple of the encoding's modulus.
func (a *assembly) payload() (*Payload, error) {
	modulus := a.encoding.Modulus()
	var builder strings.Builder
	for index := 0; index < a.partCount; index++ {
		chunk := a.chunks[index]
		if index < a.partCount-1 && len(chunk)%modulus != 0 {
			return nil, fmt.Errorf("%w: part %d has %d characters, not a multiple of %d",
				ErrInvalidPayload, index, len(chunk), modulus)
		}
		builder.WriteString(chunk)
	}

	data, err := a.encoding.decodeText(builder.String())
	if err != nil {
		return nil, err
	}
	return &Payload{
		Data:      data,
		Encoding:  a.encoding,
		FileType:  a.fileType,
		PartCount: a.partCount,
	}, nil
}
