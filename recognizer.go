package shastina

import (
	"github.com/canidlogic/shastina/decode"
	"github.com/canidlogic/shastina/scode"
)

// Token implements the token recognizer (spec.md §4.3, component C3): it
// skips whitespace and comments, reads one token's bytes, and classifies
// it. On a StringPrefix result, the reader remembers which literal syntax
// to read next; the caller must follow up with String before calling
// Token again.
func (r *Reader) Token() (Token, error) {
	if r.err != nil {
		return Token{Kind: KindError, Err: r.err}, r.err
	}
	if r.pend != pendingNone {
		panic(ErrPushback)
	}

	r.buf.Reset()

	if err := r.skipLayout(); err != nil {
		return Token{Kind: KindError, Err: r.err}, err
	}

	tokenLine := r.filter.Line()

	c, err := r.filter.Read()
	if err != nil {
		return r.recognizerErr(err)
	}
	// skipLayout guarantees the next byte is real; EOF would have already
	// propagated as an error from there.
	if !IsLegal(byte(c)) {
		return r.recognizerErr(r.fail(scode.BadChar))
	}
	if appendErr := r.buf.Append(byte(c)); appendErr != nil {
		return r.recognizerErr(r.fail(scode.LongToken))
	}

	if c == '|' {
		tok, final, err := r.tryFinal(tokenLine)
		if err != nil {
			return tok, err
		}
		if final {
			return tok, nil
		}
	}
	if !IsAtomic(byte(c)) {
		if err := r.readBody(tokenLine); err != nil {
			return r.recognizerErr(err)
		}
	}

	r.tokLine = tokenLine
	return r.classify(), nil
}

// skipLayout consumes whitespace and '#'-comments until the next
// substantive byte, which it pushes back, or fails with scode.EOF if the
// stream ends first.
func (r *Reader) skipLayout() error {
	for {
		c, err := r.filter.Read()
		if err != nil {
			return r.failAt(err.(*scode.Error))
		}
		switch {
		case c == EOF:
			return r.fail(scode.EOF)
		case c == ' ' || c == '\t' || c == '\n':
			continue
		case c == '#':
			if err := r.skipComment(); err != nil {
				return err
			}
			continue
		default:
			r.filter.Pushback(c)
			return nil
		}
	}
}

func (r *Reader) skipComment() error {
	for {
		c, err := r.filter.Read()
		if err != nil {
			return r.failAt(err.(*scode.Error))
		}
		if c == EOF || c == '\n' {
			return nil
		}
	}
}

// tryFinal handles the '|' lookahead for the |; final token (spec.md
// §4.3 step 4), using an explicit flag rather than peeking past the end
// of the one-byte buffer the reference implementation reads out of bounds.
func (r *Reader) tryFinal(tokenLine int) (Token, bool, error) {
	c2, err := r.filter.Read()
	if err != nil {
		t, e := r.recognizerErr(err)
		return t, false, e
	}
	sawSemicolon := c2 == int(';')
	if sawSemicolon {
		if appendErr := r.buf.Append(';'); appendErr != nil {
			t, e := r.recognizerErr(r.fail(scode.LongToken))
			return t, false, e
		}
	} else if c2 != EOF {
		r.filter.Pushback(c2)
	}
	if !sawSemicolon {
		return Token{}, false, nil
	}

	if err := r.requireTrailerClean(); err != nil {
		t, e := r.recognizerErr(err)
		return t, false, e
	}
	r.tokLine = tokenLine
	return Token{Kind: KindFinal, Bytes: append([]byte(nil), r.buf.Bytes()...)}, true, nil
}

// requireTrailerClean skips whitespace/comments after |; and fails with
// scode.Trailer on any other content.
func (r *Reader) requireTrailerClean() error {
	for {
		c, err := r.filter.Read()
		if err != nil {
			return err
		}
		switch {
		case c == EOF:
			return nil
		case c == ' ' || c == '\t' || c == '\n':
			continue
		case c == '#':
			if err := r.skipComment(); err != nil {
				return err
			}
			continue
		default:
			return r.fail(scode.Trailer)
		}
	}
}

// readBody reads the remainder of a multi-byte token (spec.md §4.3 step
// 5): the first byte has already been appended by the caller.
func (r *Reader) readBody(tokenLine int) error {
	for {
		c, err := r.filter.Read()
		if err != nil {
			return err
		}
		if c == EOF {
			return nil
		}
		b := byte(c)
		if !IsLegal(b) {
			return r.fail(scode.BadChar)
		}
		if IsInclusiveTerminator(b) {
			if err := r.buf.Append(b); err != nil {
				return r.fail(scode.LongToken)
			}
			return nil
		}
		if IsExclusiveTerminator(b) {
			r.filter.Pushback(c)
			return nil
		}
		if err := r.buf.Append(b); err != nil {
			return r.fail(scode.LongToken)
		}
	}
}

// classify inspects the completed token's last byte to split off a string
// or embed prefix (spec.md §4.3 "Post-classification").
func (r *Reader) classify() Token {
	data := r.buf.Bytes()
	last := data[len(data)-1]
	switch last {
	case '"':
		r.pend = pendingQuoted
		return Token{Kind: KindStringPrefix, Bytes: copyPrefix(data), StringSyntax: decode.KindQuoted}
	case '\'':
		r.pend = pendingApostrophe
		return Token{Kind: KindStringPrefix, Bytes: copyPrefix(data), StringSyntax: decode.KindApostrophe}
	case '{':
		r.pend = pendingCurly
		return Token{Kind: KindStringPrefix, Bytes: copyPrefix(data), StringSyntax: decode.KindCurly}
	case '`':
		return Token{Kind: KindEmbedPrefix, Bytes: copyPrefix(data)}
	default:
		return Token{Kind: KindSimple, Bytes: append([]byte(nil), data...)}
	}
}

func copyPrefix(data []byte) []byte {
	return append([]byte(nil), data[:len(data)-1]...)
}

func (r *Reader) recognizerErr(err error) (Token, error) {
	if serr, ok := err.(*scode.Error); ok {
		if r.err == nil {
			r.failAt(serr)
		}
		return Token{Kind: KindError, Err: r.err}, r.err
	}
	return Token{Kind: KindError, Err: r.err}, err
}
