package shastina

import (
	"math"

	"github.com/canidlogic/shastina/scode"
)

// ErrPushback is the panic value raised by Filter.Pushback when called
// against its discipline: at most one byte of pushback, never before the
// first read, never twice without an intervening read, never in a
// terminal (EOF/IOErr) state. Per spec.md §5 this is a programming fault
// in the filter's caller, not a recoverable condition, so it is rejected
// loudly rather than returned as an error.
var ErrPushback = panicError("shastina: invalid pushback")

type panicError string

func (e panicError) Error() string { return string(e) }

// Filter is the line-counting input filter (spec.md §4.1, component C2):
// it normalises newline conventions to LF, strips a leading UTF-8 BOM,
// counts lines, and offers one byte of pushback. A Filter owns no mutable
// state besides what is described here and is not safe for concurrent use.
type Filter struct {
	src Source

	started bool
	line    int
	last    int // most recently emitted byte, or EOF

	pbSet  bool
	pbByte int

	// laSet/laByte hold the byte read ahead while coalescing a newline
	// pair, kept apart from the caller's pushback slot.
	laSet  bool
	laByte int

	eof bool // the source has returned EOF and is not polled again

	bomPresent bool

	sticky      error
	pendingFail error
}

// NewFilter wraps src in a Filter, ready to read starting at line 1.
func NewFilter(src Source) *Filter {
	return &Filter{src: src, line: 1, last: EOF}
}

// Reset rebinds f to a new source and clears all state, as if freshly
// constructed with NewFilter.
func (f *Filter) Reset(src Source) {
	*f = Filter{src: src, line: 1, last: EOF}
}

// BOM reports whether the stream began with a UTF-8 byte order mark.
func (f *Filter) BOM() bool { return f.bomPresent }

// Line returns the line of the most recently read byte (1-based), or
// scode.LineUnknown once the counter has saturated at math.MaxInt.
func (f *Filter) Line() int {
	if f.line == math.MaxInt {
		return scode.LineUnknown
	}
	return f.line
}

// Pushback returns b on the next call to Read instead of pulling from the
// source. Only one byte of pushback is available at a time, and it may
// only follow an actual read of that byte.
func (f *Filter) Pushback(b int) {
	if !f.started || f.pbSet || f.sticky != nil || f.last == EOF || f.last == IOErr {
		panic(ErrPushback)
	}
	f.pbSet = true
	f.pbByte = b
}

// Read returns the next CR/LF-normalised byte, or EOF. Once an error is
// returned, every subsequent call returns the same error.
func (f *Filter) Read() (int, error) {
	if f.pendingFail != nil {
		err := f.pendingFail
		f.pendingFail = nil
		f.sticky = err
		return 0, err
	}
	if f.sticky != nil {
		return 0, f.sticky
	}
	if f.pbSet {
		f.pbSet = false
		return f.pbByte, nil
	}

	c, err := f.readNormalized()
	if err != nil {
		f.sticky = err
		return 0, err
	}
	if c != EOF && f.last == '\n' && f.line < math.MaxInt {
		f.line++
	}
	f.last = c
	return c, nil
}

// readNormalized performs the BOM check (first call only) and CR/LF
// coalescing described in spec.md §4.1, without touching line/last.
func (f *Filter) readNormalized() (int, error) {
	var c int
	if !f.started {
		f.started = true
		b1 := f.src.ReadByte()
		switch {
		case b1 == IOErr:
			return 0, scode.New(scode.IO, f.line)
		case b1 == 0xEF:
			b2 := f.src.ReadByte()
			b3 := EOF
			if b2 == 0xBB {
				b3 = f.src.ReadByte()
			}
			if b2 == IOErr || b3 == IOErr {
				return 0, scode.New(scode.IO, f.line)
			}
			if b2 != 0xBB || b3 != 0xBF {
				return 0, scode.New(scode.BadSignature, f.line)
			}
			f.bomPresent = true
			c = f.src.ReadByte()
		default:
			c = b1
		}
	} else if f.laSet {
		f.laSet = false
		c = f.laByte
	} else if f.eof {
		return EOF, nil
	} else {
		c = f.src.ReadByte()
	}

	if c == IOErr {
		return 0, scode.New(scode.IO, f.line)
	}
	if c == EOF {
		f.eof = true
		return EOF, nil
	}
	if c == '\r' || c == '\n' {
		c2 := f.src.ReadByte()
		switch {
		case c2 == IOErr:
			// The pair byte can't be read, but we still have a terminator
			// to deliver: report it now and fail the caller's next Read.
			f.pendingFail = scode.New(scode.IO, f.line)
		case (c == '\n' && c2 == '\r') || (c == '\r' && c2 == '\n'):
			// consumed as part of the pair
		case c2 == EOF:
			f.eof = true
		default:
			f.laSet = true
			f.laByte = c2
		}
		return '\n', nil
	}
	return c, nil
}
