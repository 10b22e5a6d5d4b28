package shastina

import (
	"math"

	"github.com/canidlogic/shastina/buffer"
	"github.com/canidlogic/shastina/scode"
)

const (
	defaultMaxTokenLen   = 1023
	defaultMaxStringLen  = 32766
)

type pending int

const (
	pendingNone pending = iota
	pendingQuoted
	pendingApostrophe
	pendingCurly
)

// Reader is the public streaming front end (spec.md §6): it wires the
// input filter (C2), the token recognizer (C3), the literal reader (C4),
// and the decode/encode pipeline (C5) around one Source.
//
// A Reader is single-threaded and pull-based; it is not safe for
// concurrent use, and like the Source it wraps, it is not re-entrant
// across goroutines.
type Reader struct {
	filter *Filter
	buf    *buffer.Buffer

	maxTokenLen   int
	maxStringLen  int
	maxCurlyDepth int

	err     *scode.Error
	tokLine int
	pend    pending
}

// New creates a Reader pulling from src. There is no corresponding Free:
// a Reader owns no resources beyond Go-managed memory, so it is reclaimed
// by the garbage collector like any other value.
func New(src Source, opts ...Option) *Reader {
	r := &Reader{
		maxTokenLen:   defaultMaxTokenLen,
		maxStringLen:  defaultMaxStringLen,
		maxCurlyDepth: math.MaxInt,
		tokLine:       1,
	}
	for _, o := range opts {
		o(r)
	}
	r.filter = NewFilter(src)
	r.buf = buffer.New(buffer.DefaultInitCap, r.maxTokenLen+1)
	return r
}

// Status returns the reader's current error code (scode.OK if none) and
// the line at which it was raised, or the line of the last successfully
// read token/body when there is no error.
func (r *Reader) Status() (scode.Code, int) {
	if r.err != nil {
		return r.err.Code, r.err.Line
	}
	return scode.OK, r.tokLine
}

// Count returns the byte length of the last token body read into the
// reader's internal buffer, or zero in the error state.
func (r *Reader) Count() int {
	if r.err != nil {
		return 0
	}
	return r.buf.Len()
}

// Bytes returns the reader's internal buffer contents. When nullTerm is
// true the returned slice is NUL-terminated; the second return value is
// false if that representation would lie about the data's length because
// it contains an embedded zero byte.
func (r *Reader) Bytes(nullTerm bool) ([]byte, bool) {
	if r.err != nil {
		return nil, true
	}
	if nullTerm {
		return r.buf.CString()
	}
	return r.buf.Bytes(), true
}

// Line returns the line of the last token or string body successfully
// read, or the line an error was raised at, or scode.LineUnknown if the
// host's line counter has saturated.
func (r *Reader) Line() int {
	if r.err != nil {
		return r.err.Line
	}
	return r.tokLine
}

// BOM reports whether the underlying stream began with a UTF-8 byte order
// mark.
func (r *Reader) BOM() bool {
	return r.filter.BOM()
}

// fail freezes the reader in an error state: buffer cleared, line frozen,
// code recorded. Every error path in Token/String funnels through here so
// the sticky-error contract in spec.md §7 holds uniformly.
func (r *Reader) fail(code scode.Code) error {
	line := r.filter.Line()
	err := scode.New(code, line)
	r.err = err
	r.buf.Reset()
	return err
}

// failAt is like fail but for errors surfaced by the filter itself, which
// already carry the line they were raised at.
func (r *Reader) failAt(err *scode.Error) error {
	r.err = err
	r.buf.Reset()
	return err
}
