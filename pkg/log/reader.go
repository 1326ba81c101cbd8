package log

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// Filter selects capture events. Zero-valued fields match everything.
type Filter struct {
	// SessionID filters by exact session match.
	SessionID string

	Direction *Direction
	Layer     *Layer
	Category  *Category

	// TimeStart filters events at or after this time.
	TimeStart *time.Time

	// TimeEnd filters events before this time.
	TimeEnd *time.Time

	// Peer matches frames and messages with this source or destination.
	Peer *uint8

	// OpCode matches frames and messages with this opcode.
	OpCode *uint8
}

// matches returns true if the event matches all filter criteria.
func (f *Filter) matches(event Event) bool {
	if f.SessionID != "" && event.SessionID != f.SessionID {
		return false
	}
	if f.Direction != nil && event.Direction != *f.Direction {
		return false
	}
	if f.Layer != nil && event.Layer != *f.Layer {
		return false
	}
	if f.Category != nil && event.Category != *f.Category {
		return false
	}
	if f.TimeStart != nil && event.Timestamp.Before(*f.TimeStart) {
		return false
	}
	if f.TimeEnd != nil && !event.Timestamp.Before(*f.TimeEnd) {
		return false
	}
	if f.Peer != nil || f.OpCode != nil {
		src, dst, op, ok := addressing(event)
		if !ok {
			return false
		}
		if f.Peer != nil && src != *f.Peer && dst != *f.Peer {
			return false
		}
		if f.OpCode != nil && (op == nil || *op != *f.OpCode) {
			return false
		}
	}
	return true
}

// addressing extracts the header fields of frame and message events.
func addressing(event Event) (src, dst uint8, op *uint8, ok bool) {
	switch {
	case event.Frame != nil:
		return event.Frame.Source, event.Frame.Destination, event.Frame.OpCode, true
	case event.Message != nil:
		return event.Message.Source, event.Message.Destination, event.Message.OpCode, true
	case event.Ping != nil:
		return event.LocalAddress, event.Ping.Target, nil, true
	default:
		return 0, 0, nil, false
	}
}

// Reader streams events from a capture.
type Reader struct {
	closer  io.Closer
	decoder *cbor.Decoder
	filter  Filter
}

// NewReader opens a capture file and reads all events.
func NewReader(path string) (*Reader, error) {
	return NewFilteredReader(path, Filter{})
}

// NewFilteredReader opens a capture file and reads events matching filter.
func NewFilteredReader(path string, filter Filter) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &Reader{
		closer:  f,
		decoder: NewDecoder(f),
		filter:  filter,
	}, nil
}

// NewStreamReader reads events matching filter from r, e.g. standard input.
func NewStreamReader(r io.Reader, filter Filter) *Reader {
	return &Reader{
		decoder: NewDecoder(r),
		filter:  filter,
	}
}

// Next returns the next matching event, or io.EOF at the end of the capture.
func (r *Reader) Next() (Event, error) {
	for {
		var event Event
		if err := r.decoder.Decode(&event); err != nil {
			if errors.Is(err, io.EOF) {
				return Event{}, io.EOF
			}
			return Event{}, err
		}

		if r.filter.matches(event) {
			return event, nil
		}
	}
}

// Close closes the underlying file, if any.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}
