package shastina

import (
	"strings"
	"testing"

	"github.com/canidlogic/shastina/decode"
	"github.com/canidlogic/shastina/scode"
)

func newReader(src string) *Reader {
	return New(BytesSource([]byte(src)))
}

func stdStringParams(kind decode.Kind) decode.StringParams {
	var m decode.DecodingMap
	switch kind {
	case decode.KindCurly:
		m = decode.StdCurlyMap()
	default:
		m = decode.StdQuotedMap()
	}
	return decode.StringParams{
		Kind:      kind,
		Decoder:   m,
		NumEscape: decode.StdNumEscapes,
		Encoder:   decode.StdEncoderTable.Encode,
		Override:  decode.OverrideUTF8,
	}
}

func TestFilterBOMStripped(t *testing.T) {
	f := NewFilter(BytesSource(append([]byte{0xEF, 0xBB, 0xBF}, "ab"...)))
	c, err := f.Read()
	if err != nil || c != 'a' {
		t.Fatalf("Read() = (%d, %v), want ('a', nil)", c, err)
	}
	if !f.BOM() {
		t.Fatal("BOM() = false after a BOM-prefixed stream")
	}
	c, err = f.Read()
	if err != nil || c != 'b' {
		t.Fatalf("Read() = (%d, %v), want ('b', nil)", c, err)
	}
}

func TestFilterNewlineNormalization(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"LF", "a\nb"},
		{"CR", "a\rb"},
		{"CRLF", "a\r\nb"},
		{"LFCR", "a\n\rb"},
	}
	for _, c := range cases {
		f := NewFilter(BytesSource([]byte(c.in)))
		var got []int
		for {
			b, err := f.Read()
			if err != nil {
				t.Fatalf("%s: Read: unexpected error: %v", c.name, err)
			}
			if b == EOF {
				break
			}
			got = append(got, b)
		}
		want := []int{'a', '\n', 'b'}
		if len(got) != len(want) {
			t.Fatalf("%s: got %v, want %v", c.name, got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("%s: got %v, want %v", c.name, got, want)
			}
		}
	}
}

func TestFilterLineCounting(t *testing.T) {
	f := NewFilter(BytesSource([]byte("a\nb\nc")))
	if f.Line() != 1 {
		t.Fatalf("initial Line() = %d, want 1", f.Line())
	}
	for _, want := range []int{1, 1, 2, 2, 3} {
		_, err := f.Read()
		if err != nil {
			t.Fatal(err)
		}
		if f.Line() != want {
			t.Fatalf("Line() = %d, want %d", f.Line(), want)
		}
	}
}

func TestFilterPushbackIdempotent(t *testing.T) {
	f := NewFilter(BytesSource([]byte("ab")))
	c, err := f.Read()
	if err != nil || c != 'a' {
		t.Fatalf("Read() = (%d, %v)", c, err)
	}
	f.Pushback(c)
	c2, err := f.Read()
	if err != nil || c2 != 'a' {
		t.Fatalf("Read() after Pushback = (%d, %v), want 'a'", c2, err)
	}
	if f.Line() != 1 {
		t.Fatalf("Line() after redelivered pushback = %d, want 1", f.Line())
	}
}

func TestFilterPushbackMisuse(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Pushback before any Read: expected panic")
		}
	}()
	f := NewFilter(BytesSource([]byte("a")))
	f.Pushback('a')
}

func TestTokenSimple(t *testing.T) {
	r := newReader("hello")
	tok, err := r.Token()
	if err != nil {
		t.Fatalf("Token: unexpected error: %v", err)
	}
	if tok.Kind != KindSimple || string(tok.Bytes) != "hello" {
		t.Fatalf("Token() = %+v, want Simple \"hello\"", tok)
	}
}

func TestTokenFinal(t *testing.T) {
	r := newReader("|;")
	tok, err := r.Token()
	if err != nil {
		t.Fatalf("Token: unexpected error: %v", err)
	}
	if tok.Kind != KindFinal {
		t.Fatalf("Token() kind = %v, want Final", tok.Kind)
	}
}

func TestTokenFinalRejectsTrailer(t *testing.T) {
	r := newReader("|; junk")
	_, err := r.Token()
	serr, ok := err.(*scode.Error)
	if !ok || serr.Code != scode.Trailer {
		t.Fatalf("Token: got %v, want *scode.Error{Code: Trailer}", err)
	}
}

func TestTokenAtomicDelimiters(t *testing.T) {
	for _, b := range []string{"(", ")", "[", "]", ",", "%", ";"} {
		r := newReader(b)
		tok, err := r.Token()
		if err != nil {
			t.Fatalf("Token(%q): unexpected error: %v", b, err)
		}
		if tok.Kind != KindSimple || string(tok.Bytes) != b {
			t.Fatalf("Token(%q) = %+v, want Simple %q", b, tok, b)
		}
	}
}

func TestTokenStringPrefixEmptyPrefix(t *testing.T) {
	// A bare opening quote is itself an atomic token: the prefix is empty.
	r := newReader(`"abc"`)
	tok, err := r.Token()
	if err != nil {
		t.Fatalf("Token: unexpected error: %v", err)
	}
	if tok.Kind != KindStringPrefix || len(tok.Bytes) != 0 {
		t.Fatalf("Token() = %+v, want StringPrefix with empty prefix", tok)
	}
	body, err := r.String(stdStringParams(decode.KindQuoted))
	if err != nil {
		t.Fatalf("String: unexpected error: %v", err)
	}
	if string(body.Body) != "abc" {
		t.Fatalf("String().Body = %q, want %q", body.Body, "abc")
	}
}

func TestTokenStringPrefixWithName(t *testing.T) {
	r := newReader(`name"abc"`)
	tok, err := r.Token()
	if err != nil {
		t.Fatalf("Token: unexpected error: %v", err)
	}
	if tok.Kind != KindStringPrefix || string(tok.Bytes) != "name" {
		t.Fatalf("Token() = %+v, want StringPrefix prefix \"name\"", tok)
	}
}

func TestStringApostrophe(t *testing.T) {
	r := newReader(`'it''s'`)
	// Apostrophe strings close on the first unescaped apostrophe; this
	// source has two apostrophe-delimited literals back to back, not an
	// escape, so only the first is read here.
	tok, err := r.Token()
	if err != nil {
		t.Fatalf("Token: unexpected error: %v", err)
	}
	if tok.Kind != KindStringPrefix || tok.StringSyntax != decode.KindApostrophe {
		t.Fatalf("Token() = %+v, want apostrophe StringPrefix", tok)
	}
	body, err := r.String(stdStringParams(decode.KindApostrophe))
	if err != nil {
		t.Fatalf("String: unexpected error: %v", err)
	}
	if string(body.Body) != "it" {
		t.Fatalf("String().Body = %q, want %q", body.Body, "it")
	}
}

func TestStringCurlyNesting(t *testing.T) {
	r := newReader(`{a{b}c}`)
	tok, err := r.Token()
	if err != nil {
		t.Fatalf("Token: unexpected error: %v", err)
	}
	if tok.Kind != KindStringPrefix || tok.StringSyntax != decode.KindCurly {
		t.Fatalf("Token() = %+v, want curly StringPrefix", tok)
	}
	body, err := r.String(stdStringParams(decode.KindCurly))
	if err != nil {
		t.Fatalf("String: unexpected error: %v", err)
	}
	if string(body.Body) != "a{b}c" {
		t.Fatalf("String().Body = %q, want %q", body.Body, "a{b}c")
	}
}

func TestStringAmpersandComment(t *testing.T) {
	// An unescaped '&' opens a string-mode comment extending to the next
	// LF; the comment text (including a close byte that would otherwise
	// terminate the string) is discarded rather than appended.
	r := newReader("\"ab&this \" is not the end\ncd\"")
	_, err := r.Token()
	if err != nil {
		t.Fatalf("Token: unexpected error: %v", err)
	}
	body, err := r.String(stdStringParams(decode.KindQuoted))
	if err != nil {
		t.Fatalf("String: unexpected error: %v", err)
	}
	if string(body.Body) != "abcd" {
		t.Fatalf("String().Body = %q, want %q", body.Body, "abcd")
	}
}

func TestStringEscapedAmpersandIsLiteral(t *testing.T) {
	// A backslash-escaped '&' is ordinary payload, not a comment opener.
	r := newReader(`"a\&b"`)
	_, err := r.Token()
	if err != nil {
		t.Fatalf("Token: unexpected error: %v", err)
	}
	body, err := r.String(stdStringParams(decode.KindQuoted))
	if err != nil {
		t.Fatalf("String: unexpected error: %v", err)
	}
	if string(body.Body) != "a&b" {
		t.Fatalf("String().Body = %q, want %q", body.Body, "a&b")
	}
}

func TestStringAmpersandCommentInCurly(t *testing.T) {
	r := newReader("{a&b}c}\nd}")
	_, err := r.Token()
	if err != nil {
		t.Fatalf("Token: unexpected error: %v", err)
	}
	body, err := r.String(stdStringParams(decode.KindCurly))
	if err != nil {
		t.Fatalf("String: unexpected error: %v", err)
	}
	if string(body.Body) != "ad" {
		t.Fatalf("String().Body = %q, want %q", body.Body, "ad")
	}
}

func TestStringDoubleBackslashBeforeDelimiterFails(t *testing.T) {
	// The escape flag is a pure one-byte lookback: the second backslash
	// sets escape again, so the closing quote right after it is consumed
	// as payload rather than ending the string, and the source runs out
	// looking for an unescaped close byte.
	r := newReader(`"ab\\"`)
	_, err := r.Token()
	if err != nil {
		t.Fatalf("Token: unexpected error: %v", err)
	}
	_, err = r.String(stdStringParams(decode.KindQuoted))
	serr, ok := err.(*scode.Error)
	if !ok || serr.Code != scode.OpenString {
		t.Fatalf("String: got %v, want *scode.Error{Code: OpenString}", err)
	}
}

func TestStringUnterminatedFails(t *testing.T) {
	r := newReader(`"abc`)
	_, err := r.Token()
	if err != nil {
		t.Fatalf("Token: unexpected error: %v", err)
	}
	_, err = r.String(stdStringParams(decode.KindQuoted))
	serr, ok := err.(*scode.Error)
	if !ok || serr.Code != scode.OpenString {
		t.Fatalf("String: got %v, want *scode.Error{Code: OpenString}", err)
	}
}

func TestStringWithoutPendingPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("String without a pending prefix: expected panic")
		}
	}()
	r := newReader("abc")
	_, _ = r.String(stdStringParams(decode.KindQuoted))
}

func TestTokenWithoutStringPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Token after an unconsumed StringPrefix: expected panic")
		}
	}()
	r := newReader(`"abc"`)
	_, _ = r.Token()
	_, _ = r.Token()
}

func TestStickyErrorAfterFailure(t *testing.T) {
	r := newReader(`"abc`)
	if _, err := r.Token(); err != nil {
		t.Fatal(err)
	}
	if _, err := r.String(stdStringParams(decode.KindQuoted)); err == nil {
		t.Fatal("expected error")
	}
	_, err := r.Token()
	serr, ok := err.(*scode.Error)
	if !ok || serr.Code != scode.OpenString {
		t.Fatalf("Token after sticky error: got %v, want OpenString", err)
	}
}

func TestTokenSequenceAcrossComments(t *testing.T) {
	r := newReader("# a comment\nfoo # trailing\nbar")
	tok, err := r.Token()
	if err != nil || tok.Kind != KindSimple || string(tok.Bytes) != "foo" {
		t.Fatalf("Token() = (%+v, %v), want Simple \"foo\"", tok, err)
	}
	tok, err = r.Token()
	if err != nil || tok.Kind != KindSimple || string(tok.Bytes) != "bar" {
		t.Fatalf("Token() = (%+v, %v), want Simple \"bar\"", tok, err)
	}
}

func TestTokenPrematureEOF(t *testing.T) {
	r := newReader("  \n  ")
	_, err := r.Token()
	serr, ok := err.(*scode.Error)
	if !ok || serr.Code != scode.EOF {
		t.Fatalf("Token: got %v, want *scode.Error{Code: EOF}", err)
	}
}

func TestTokenEmbedPrefixHasNoPendingString(t *testing.T) {
	r := newReader("embed`")
	tok, err := r.Token()
	if err != nil {
		t.Fatalf("Token: unexpected error: %v", err)
	}
	if tok.Kind != KindEmbedPrefix || string(tok.Bytes) != "embed" {
		t.Fatalf("Token() = %+v, want EmbedPrefix \"embed\"", tok)
	}
	if r.pend != pendingNone {
		t.Fatal("embed prefix left a pending literal state behind")
	}
}

func TestFullScriptWalk(t *testing.T) {
	r := newReader(`one two "three" |;`)
	var simples []string
	for {
		tok, err := r.Token()
		if err != nil {
			t.Fatalf("Token: unexpected error: %v", err)
		}
		switch tok.Kind {
		case KindSimple:
			simples = append(simples, string(tok.Bytes))
		case KindStringPrefix:
			body, err := r.String(stdStringParams(tok.StringSyntax))
			if err != nil {
				t.Fatalf("String: unexpected error: %v", err)
			}
			simples = append(simples, string(body.Body))
		case KindFinal:
			if got, want := strings.Join(simples, ","), "one,two,three"; got != want {
				t.Fatalf("walked tokens = %q, want %q", got, want)
			}
			return
		}
	}
}
