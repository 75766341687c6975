// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bbqr

import "context"

// StreamState is the lifecycle position of a [StreamDecoder].
type StreamState int

const (
	// StreamEmpty: no frame accepted yet; metadata unknown.
	StreamEmpty StreamState = iota

	// StreamAccumulating: metadata adopted from the first frame, some
	// parts still missing.
	StreamAccumulating

	// StreamComplete: every part present; Finalize will succeed unless
	// the payload text itself is corrupt.
	StreamComplete
)

func (s StreamState) String() string {
	switch s {
	case StreamEmpty:
		return "empty"
	case StreamAccumulating:
		return "accumulating"
	case StreamComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// StreamDecoder reassembles a transfer one frame at a time, for frames
// arriving from a live scanner in arbitrary order.
//
// The first accepted frame fixes the transfer's encoding, file type and
// part count. Later frames that disagree, or that repeat an index with
// different text, fail the Receive call without changing what has been
// accumulated, so the caller can keep scanning.
//
// A StreamDecoder is not safe for concurrent use. Several producers
// should feed a single goroutine, for example through
// [StreamDecoder.Collect].
type StreamDecoder struct {
	// session is nil in StreamEmpty.
	session *assembly
}

// NewStreamDecoder returns an empty decoder.
func NewStreamDecoder() *StreamDecoder {
	return &StreamDecoder{}
}

// State reports the decoder's lifecycle position.
func (d *StreamDecoder) State() StreamState {
	switch {
	case d.session == nil:
		return StreamEmpty
	case d.session.complete():
		return StreamComplete
	default:
		return StreamAccumulating
	}
}

// Receive adds one frame. It returns true when the frame carried a part
// not seen before and false for an exact duplicate.
func (d *StreamDecoder) Receive(frame string) (bool, error) {
	header, err := ParseHeader(frame)
	if err != nil {
		return false, err
	}

	if d.session == nil {
		session := newAssembly(metadataOf(header))
		accepted, err := session.add(header.PartIndex, frame[HeaderLen:])
		if err != nil {
			return false, err
		}
		d.session = session
		return accepted, nil
	}

	if err := d.session.check(header); err != nil {
		return false, err
	}
	return d.session.add(header.PartIndex, frame[HeaderLen:])
}

// Metadata returns the adopted transfer metadata. ok is false before
// the first frame; PartIndex is always zero.
func (d *StreamDecoder) Metadata() (header Header, ok bool) {
	if d.session == nil {
		return Header{}, false
	}
	return Header{
		Encoding:  d.session.encoding,
		FileType:  d.session.fileType,
		PartCount: d.session.partCount,
	}, true
}

// Received is the number of distinct parts accepted.
func (d *StreamDecoder) Received() int {
	if d.session == nil {
		return 0
	}
	return len(d.session.chunks)
}

// Total is the expected part count, or zero before the first frame.
func (d *StreamDecoder) Total() int {
	if d.session == nil {
		return 0
	}
	return d.session.partCount
}

// Missing lists the part indices not yet received, ascending. Empty
// before the first frame, since the part count is not yet known.
func (d *StreamDecoder) Missing() []int {
	if d.session == nil {
		return nil
	}
	return d.session.missing()
}

// Progress is Received/Total in [0, 1], and 0 before the first frame.
func (d *StreamDecoder) Progress() float64 {
	if d.session == nil {
		return 0
	}
	return float64(len(d.session.chunks)) / float64(d.session.partCount)
}

// Complete reports whether every part has been received.
func (d *StreamDecoder) Complete() bool {
	return d.session != nil && d.session.complete()
}

// Finalize decodes the accumulated parts. Before completion it returns
// an [IncompleteError] listing what is still missing. The decoder keeps
// its state; call Reset to start a new transfer.
func (d *StreamDecoder) Finalize() (*Payload, error) {
	if !d.Complete() {
		return nil, &IncompleteError{Missing: d.Missing()}
	}
	return d.session.payload()
}

// Reset discards all parts and metadata, returning to StreamEmpty.
func (d *StreamDecoder) Reset() {
	d.session = nil
}

// ScanEvent describes the outcome of one frame handled by Collect.
type ScanEvent struct {
	Frame string

	// Accepted is true for a new part, false for a duplicate or a
	// rejected frame.
	Accepted bool

	// Err is non-nil when the frame was rejected. Rejection does not
	// stop collection: a camera routinely sees unrelated QR codes.
	Err error

	Received int
	Total    int
}

// Collect drains frames into the decoder until the transfer completes,
// the channel closes, or ctx is done. It is the single consumer for
// callers with several concurrent frame producers. observe, if non-nil,
// is called synchronously after every frame.
//
// On completion it returns the finalized payload. A closed channel
// before completion yields an [IncompleteError]; cancellation yields
// ctx.Err(). Accumulated state survives both, so collection can be
// resumed with another call.
func (d *StreamDecoder) Collect(ctx context.Context, frames <-chan string, observe func(ScanEvent)) (*Payload, error) {
	for !d.Complete() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case frame, ok := <-frames:
			if !ok {
				return d.Finalize()
			}
			accepted, err := d.Receive(frame)
			if observe != nil {
				observe(ScanEvent{
					Frame:    frame,
					Accepted: accepted,
					Err:      err,
					Received: d.Received(),
					Total:    d.Total(),
				})
			}
		}
	}
	return d.Finalize()
}
