package shastina

import (
	"github.com/canidlogic/shastina/decode"
	"github.com/canidlogic/shastina/scode"
)

// String reads and decodes the body of the literal whose prefix the most
// recent call to Token returned as a StringPrefix (spec.md §4.4 and
// §4.5). Calling it without a pending string prefix is a caller fault,
// reported the same way Token reports a misordered call.
func (r *Reader) String(params decode.StringParams) (Token, error) {
	if r.err != nil {
		return Token{Kind: KindError, Err: r.err}, r.err
	}
	if r.pend == pendingNone {
		panic(ErrPushback)
	}

	pend := r.pend
	r.pend = pendingNone

	var readErr error
	switch pend {
	case pendingQuoted:
		readErr = r.readDelimited('"')
	case pendingApostrophe:
		readErr = r.readDelimited('\'')
	case pendingCurly:
		readErr = r.readCurly()
	}
	if readErr != nil {
		if serr, ok := readErr.(*scode.Error); ok && r.err == nil {
			r.failAt(serr)
		}
		return Token{Kind: KindError, Err: r.err}, readErr
	}

	payload := append([]byte(nil), r.buf.Bytes()...)
	bodyLine := r.filter.Line()

	out, err := decode.Decode(payload, params, r.maxStringLen+1)
	if err != nil {
		derr, ok := err.(*scode.Error)
		if !ok {
			derr = scode.New(scode.BadEscape, bodyLine)
		} else if derr.Line <= 0 {
			derr = scode.New(derr.Code, bodyLine)
		}
		failErr := r.failAt(derr)
		return Token{Kind: KindError, Err: r.err}, failErr
	}

	r.tokLine = bodyLine
	return Token{Kind: KindStringPrefix, StringSyntax: params.Kind, Body: out}, nil
}
