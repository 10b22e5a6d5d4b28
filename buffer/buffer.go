// Package buffer implements the bounded growable byte buffer used throughout
// the shastina reader as the storage for tokens and decoded string bodies.
//
// A Buffer grows by doubling, the same amortised strategy the lex.queue type
// uses for its item ring, but it additionally enforces a hard cap (maxcap)
// instead of growing forever: appending past that cap returns ErrOverflow
// and leaves the buffer at the length it had before the failed append.
package buffer

import "errors"

// ErrOverflow is returned by Append when writing the next byte would exceed
// the buffer's configured maximum capacity. The buffer is left unchanged by
// a failed Append; callers decide which scode.Code the overflow means in
// their context (LongToken, LongString, HugeBlock, ...).
var ErrOverflow = errors.New("buffer: append exceeds maximum capacity")

// DefaultInitCap is the initial capacity used by New when none is given.
const DefaultInitCap = 64

// Buffer is a bounded growable byte sequence. The zero value is not usable;
// construct one with New.
//
// One byte of maxcap is always reserved for a trailing NUL: Buffer keeps a
// C-string-friendly terminator as a convenience for consumers that want one,
// but strings containing embedded zero bytes are still preserved in full —
// Append never truncates on a zero byte, and HasNull reports whether a zero
// was stored so that callers relying on NUL-terminated semantics can detect
// when that convenience would lie to them.
type Buffer struct {
	data    []byte
	maxCap  int
	hasNull bool
}

// New creates a Buffer with the given initial and maximum capacities.
// maxCap must be at least 1 (room for the reserved terminator byte); initCap
// is clamped to maxCap-1 if it would leave no room for that byte.
func New(initCap, maxCap int) *Buffer {
	if maxCap < 1 {
		maxCap = 1
	}
	if initCap > maxCap-1 {
		initCap = maxCap - 1
	}
	if initCap < 0 {
		initCap = 0
	}
	return &Buffer{
		data:   make([]byte, 0, initCap),
		maxCap: maxCap,
	}
}

// Reset empties the buffer without releasing its backing array.
func (b *Buffer) Reset() {
	b.data = b.data[:0]
	b.hasNull = false
}

// Len returns the number of bytes currently stored.
func (b *Buffer) Len() int { return len(b.data) }

// Cap returns the buffer's maximum capacity, reserved terminator byte
// included.
func (b *Buffer) Cap() int { return b.maxCap }

// HasNull reports whether a literal zero byte has ever been appended since
// the last Reset.
func (b *Buffer) HasNull() bool { return b.hasNull }

// Bytes returns the buffer's contents. The returned slice aliases the
// buffer's storage and is only valid until the next Append or Reset.
func (b *Buffer) Bytes() []byte { return b.data }

// CString returns the buffer's contents followed by a trailing NUL, and
// reports whether that representation is safe to treat as a C string (i.e.
// the data itself contains no embedded zero byte). When ok is false, the
// returned slice is still NUL-terminated but naive terminator scanning would
// truncate it.
func (b *Buffer) CString() (s []byte, ok bool) {
	out := make([]byte, len(b.data)+1)
	copy(out, b.data)
	return out, !b.hasNull
}

// Append adds one byte to the buffer, growing the backing array by doubling
// as needed. It returns ErrOverflow, without modifying the buffer, if len+1
// would exceed maxCap-1 (the byte reserved for the terminator).
func (b *Buffer) Append(c byte) error {
	if len(b.data) >= b.maxCap-1 {
		return ErrOverflow
	}
	if len(b.data) == cap(b.data) {
		b.grow()
	}
	b.data = append(b.data, c)
	if c == 0 {
		b.hasNull = true
	}
	return nil
}

// AppendBytes appends a slice of bytes one at a time, stopping and returning
// ErrOverflow (with the prefix that did fit already applied) the moment any
// byte would overflow.
func (b *Buffer) AppendBytes(p []byte) error {
	for _, c := range p {
		if err := b.Append(c); err != nil {
			return err
		}
	}
	return nil
}

func (b *Buffer) grow() {
	n := cap(b.data) * 2
	if n == 0 {
		n = DefaultInitCap
	}
	if n > b.maxCap-1 {
		n = b.maxCap - 1
	}
	nd := make([]byte, len(b.data), n)
	copy(nd, b.data)
	b.data = nd
}
