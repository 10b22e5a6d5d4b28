package shastina

import (
	"math"

	"github.com/canidlogic/shastina/scode"
)

// readDelimited reads the body of a quoted or apostrophe string (spec.md
// §4.4): everything up to, but not including, an unescaped close byte.
// Escape handling here is purely lexical — the escape flag is set iff the
// byte just read is a backslash, with no toggling for runs of backslashes
// — so the decode pipeline (C5) later has full authority over what an
// escape sequence means; an escaped close byte is consumed as payload,
// not treated as a terminator.
//
// An unescaped '&' opens a string-mode comment (spec.md §6) that extends
// through the next LF; the '&', the comment text, and the LF itself are
// discarded rather than appended to the payload.
func (r *Reader) readDelimited(close byte) error {
	r.buf.Reset()
	escape := false
	for {
		c, err := r.filter.Read()
		if err != nil {
			return err
		}
		if c == EOF {
			return r.fail(scode.OpenString)
		}
		b := byte(c)
		if b == '&' && !escape {
			if err := r.skipLineComment(); err != nil {
				return err
			}
			continue
		}
		if b == close && !escape {
			return nil
		}
		if b == 0 {
			return r.fail(scode.NullChar)
		}
		if err := r.buf.Append(b); err != nil {
			return r.fail(scode.LongString)
		}
		escape = b == '\\'
	}
}

// readCurly reads the body of a curly string (spec.md §4.4): balanced
// '{'/'}' nesting, with the outermost pair already consumed by the
// recognizer. Escaped braces do not affect the nesting count. As in
// readDelimited, an unescaped '&' opens a string-mode comment extending
// through the next LF.
func (r *Reader) readCurly() error {
	r.buf.Reset()
	depth := 1
	escape := false
	for {
		c, err := r.filter.Read()
		if err != nil {
			return err
		}
		if c == EOF {
			return r.fail(scode.OpenString)
		}
		b := byte(c)
		if b == '&' && !escape {
			if err := r.skipLineComment(); err != nil {
				return err
			}
			continue
		}
		if b == 0 {
			return r.fail(scode.NullChar)
		}
		if !escape {
			switch b {
			case '{':
				if depth == math.MaxInt {
					return r.fail(scode.DeepCurly)
				}
				if depth >= r.maxCurlyDepth {
					return r.fail(scode.DeepCurly)
				}
				depth++
			case '}':
				depth--
				if depth == 0 {
					return nil
				}
			}
		}
		if err := r.buf.Append(b); err != nil {
			return r.fail(scode.LongString)
		}
		escape = b == '\\'
	}
}

// skipLineComment discards bytes through the next LF (or EOF), for the
// '&' string-mode comment spec.md §6 describes alongside the '#'
// top-level comment skipComment handles.
func (r *Reader) skipLineComment() error {
	for {
		c, err := r.filter.Read()
		if err != nil {
			return err
		}
		if c == EOF || c == '\n' {
			return nil
		}
	}
}
