package decode

import (
	"encoding/binary"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"

	"github.com/canidlogic/shastina/buffer"
	"github.com/canidlogic/shastina/scode"
)

// Override selects a Unicode output transformation scheme that bypasses the
// encoder table for entities in the Unicode range (spec.md §4.5.2).
type Override int

// Output/input override modes.
const (
	OverrideNone Override = iota
	OverrideUTF8
	OverrideCESU8
	OverrideUTF16LE
	OverrideUTF16BE
	OverrideUTF32LE
	OverrideUTF32BE
)

const (
	surrogateMin     = 0xD800
	surrogateMax     = 0xDFFF
	maxUnicode       = 0x10FFFF
	supplementOffset = 0x10000
)

func isSurrogate(cp int) bool {
	return cp >= surrogateMin && cp <= surrogateMax
}

// encodeUTF8Raw writes the classical 1-4 byte UTF-8 encoding of cp per the
// byte-count table in spec.md §4.5.2. Unlike unicode/utf8.EncodeRune, it
// does not refuse the surrogate range: CESU-8 needs a literal 3-byte
// encoding of each surrogate half, which the standard library's notion of
// valid UTF-8 forbids and would silently replace with U+FFFD.
func encodeUTF8Raw(cp int, out []byte) int {
	switch {
	case cp <= 0x7F:
		out[0] = byte(cp)
		return 1
	case cp <= 0x7FF:
		out[0] = 0xC0 | byte(cp>>6)
		out[1] = 0x80 | byte(cp&0x3F)
		return 2
	case cp <= 0xFFFF:
		out[0] = 0xE0 | byte(cp>>12)
		out[1] = 0x80 | byte((cp>>6)&0x3F)
		out[2] = 0x80 | byte(cp&0x3F)
		return 3
	default:
		out[0] = 0xF0 | byte(cp>>18)
		out[1] = 0x80 | byte((cp>>12)&0x3F)
		out[2] = 0x80 | byte((cp>>6)&0x3F)
		out[3] = 0x80 | byte(cp&0x3F)
		return 4
	}
}

// decodeUTF8Raw is the mirror of encodeUTF8Raw for input decoding: it
// accepts surrogate-range code points that a standards-conformant UTF-8
// decoder would reject, which CESU-8 input relies on.
func decodeUTF8Raw(p []byte) (cp int, size int, ok bool) {
	if len(p) == 0 {
		return 0, 0, false
	}
	b0 := p[0]
	switch {
	case b0 < 0x80:
		return int(b0), 1, true
	case b0&0xE0 == 0xC0:
		if len(p) < 2 || p[1]&0xC0 != 0x80 {
			return 0, 0, false
		}
		return int(b0&0x1F)<<6 | int(p[1]&0x3F), 2, true
	case b0&0xF0 == 0xE0:
		if len(p) < 3 || p[1]&0xC0 != 0x80 || p[2]&0xC0 != 0x80 {
			return 0, 0, false
		}
		return int(b0&0x0F)<<12 | int(p[1]&0x3F)<<6 | int(p[2]&0x3F), 3, true
	case b0&0xF8 == 0xF0:
		if len(p) < 4 || p[1]&0xC0 != 0x80 || p[2]&0xC0 != 0x80 || p[3]&0xC0 != 0x80 {
			return 0, 0, false
		}
		return int(b0&0x07)<<18 | int(p[1]&0x3F)<<12 | int(p[2]&0x3F)<<6 | int(p[3]&0x3F), 4, true
	}
	return 0, 0, false
}

// splitSurrogates computes the UTF-16 surrogate pair for a supplemental
// codepoint (cp >= 0x10000), per spec.md §4.5.2.
func splitSurrogates(cp int) (hi, lo int) {
	v := cp - supplementOffset
	return 0xD800 + (v >> 10), 0xDC00 + (v & 0x3FF)
}

func encodeUTFOverride(e int, mode Override, out *buffer.Buffer) error {
	var buf [4]byte
	switch mode {
	case OverrideUTF8:
		n := encodeUTF8Raw(e, buf[:])
		return appendRaw(out, buf[:n])
	case OverrideCESU8:
		if e < supplementOffset {
			n := encodeUTF8Raw(e, buf[:])
			return appendRaw(out, buf[:n])
		}
		hi, lo := splitSurrogates(e)
		var b6 [6]byte
		encodeUTF8Raw(hi, b6[:3])
		encodeUTF8Raw(lo, b6[3:])
		return appendRaw(out, b6[:])
	case OverrideUTF16LE:
		return encodeUTF16(e, true, out)
	case OverrideUTF16BE:
		return encodeUTF16(e, false, out)
	case OverrideUTF32LE:
		binary.LittleEndian.PutUint32(buf[:], uint32(e))
		return appendRaw(out, buf[:4])
	case OverrideUTF32BE:
		binary.BigEndian.PutUint32(buf[:], uint32(e))
		return appendRaw(out, buf[:4])
	}
	return nil
}

// encodeUTF16 delegates the common case — a valid BMP or supplemental
// scalar value — to golang.org/x/text/encoding/unicode, which already
// knows how to split a supplemental codepoint into a surrogate pair in the
// requested byte order. The one case it cannot take is a lone surrogate
// value passed through by a non-strict caller (spec.md's "surrogates are
// passed through the UTF path unchanged" for Strict == false): x/text's
// encoder only accepts valid Unicode scalar values, so that case is
// written out by hand.
func encodeUTF16(e int, little bool, out *buffer.Buffer) error {
	if isSurrogate(e) {
		var b2 [2]byte
		if little {
			binary.LittleEndian.PutUint16(b2[:], uint16(e))
		} else {
			binary.BigEndian.PutUint16(b2[:], uint16(e))
		}
		return appendRaw(out, b2[:])
	}
	endian := unicode.LittleEndian
	if !little {
		endian = unicode.BigEndian
	}
	enc := unicode.UTF16(endian, unicode.IgnoreBOM).NewEncoder()
	var rb [utf8.UTFMax]byte
	n := utf8.EncodeRune(rb[:], rune(e))
	var dst [4]byte
	nDst, _, err := enc.Transform(dst[:], rb[:n], true)
	if err != nil {
		return scode.New(scode.HugeBlock, 0)
	}
	return appendRaw(out, dst[:nDst])
}
