package decode

// Sentinel entity codes for the standard escapes that need further digit
// parsing. They sit just above the Unicode range so they can never collide
// with a literal pass-through entity (which is always the byte's own
// value, 1-255); decodeEntities always resolves them via NumEscapeFunc
// before they would otherwise reach emitEntity, so their exact values only
// need to be distinct, not meaningful on their own.
const (
	entEscUnicode = maxUnicode + 1 + iota
	entEscDecimal
	entEscHex
)

// StdNumEscapes is the numeric-escape table for StdQuotedMap/StdCurlyMap:
// \u#### (exactly four hex digits), \d###; (1-7 decimal digits terminated
// by ';'), and \x###; (1-6 hex digits terminated by ';'). The decimal and
// hex forms open with a backslash rather than '&' — spec.md §6 reserves an
// unescaped '&' as the opener of a string-mode comment extending to the
// next LF, so an escape cannot begin with a bare ampersand; see DESIGN.md.
func StdNumEscapes(entity int) (NumEscape, bool) {
	switch entity {
	case entEscUnicode:
		return NumEscape{Base: 16, MinDigits: 4, MaxDigits: 4, Terminator: -1, MinCode: 0, MaxCode: maxUnicode}, true
	case entEscDecimal:
		return NumEscape{Base: 10, MinDigits: 1, MaxDigits: 7, Terminator: ';', MinCode: 0, MaxCode: maxUnicode}, true
	case entEscHex:
		return NumEscape{Base: 16, MinDigits: 1, MaxDigits: 6, Terminator: ';', MinCode: 0, MaxCode: maxUnicode}, true
	}
	return NumEscape{}, false
}

// addIdentity registers every byte in [1, 255] except skip as a one-byte
// pass-through entity equal to its own value.
func addIdentity(t *Trie, skip ...byte) {
	skipped := make(map[byte]bool, len(skip))
	for _, b := range skip {
		skipped[b] = true
	}
	for b := 1; b <= 0xFF; b++ {
		if skipped[byte(b)] {
			continue
		}
		t.Add([]byte{byte(b)}, b)
	}
}

func addStdEscapes(t *Trie) {
	t.Add([]byte{'\\', '\\'}, int('\\'))
	t.Add([]byte{'\\', '"'}, int('"'))
	t.Add([]byte{'\\', 'n'}, int('\n'))
	t.Add([]byte{'\\', 't'}, int('\t'))
	t.Add([]byte{'\\', '&'}, int('&'))
	t.Add([]byte{'\\', 'u'}, entEscUnicode)
	t.Add([]byte{'\\', 'd'}, entEscDecimal)
	t.Add([]byte{'\\', 'x'}, entEscHex)
}

// StdQuotedMap returns Shastina's default decoding map for double-quoted
// string bodies: every byte decodes to itself except a leading backslash,
// which must open one of the escapes above.
func StdQuotedMap() *Trie {
	t := NewTrie()
	addIdentity(t, '\\')
	addStdEscapes(t)
	return t
}

// StdCurlyMap returns the default decoding map for curly-bracketed string
// bodies. Curly nesting is already resolved at the byte level by the
// literal reader, so '{' and '}' decode as ordinary pass-through bytes
// here; the same backslash escapes apply.
func StdCurlyMap() *Trie {
	t := NewTrie()
	addIdentity(t, '\\')
	addStdEscapes(t)
	return t
}

// StdEncoderTable is a minimal encoder table for entities that are not
// routed through a UTF override (spec.md's "application-defined special
// keys" channel). It is empty by default; callers needing Unicode output
// should pair it with an Override instead of populating it.
var StdEncoderTable = EncoderTable{}
