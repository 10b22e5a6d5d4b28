package decode

import (
	"encoding/binary"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/canidlogic/shastina/buffer"
	"github.com/canidlogic/shastina/scode"
)

// decodeInputOverride handles StringParams.InputOverride != OverrideNone:
// payload is already text in the named scheme rather than Shastina escape
// syntax, so the decoding map is skipped entirely and each decoded
// codepoint is fed straight to the encode stage (still subject to
// Override/OutputStrict on the way out, so a caller can transcode between
// two of the UTF schemes in one call).
func decodeInputOverride(payload []byte, p StringParams, maxOut int) ([]byte, error) {
	runes, err := decodeOverrideRunes(payload, p.InputOverride)
	if err != nil {
		return nil, err
	}
	out := buffer.New(buffer.DefaultInitCap, maxOut)
	for _, r := range runes {
		if err := emitEntity(int(r), p, out); err != nil {
			return nil, err
		}
	}
	return out.Bytes(), nil
}

func decodeOverrideRunes(payload []byte, mode Override) ([]rune, error) {
	switch mode {
	case OverrideUTF8:
		return []rune(string(payload)), nil
	case OverrideCESU8:
		return decodeCESU8(payload)
	case OverrideUTF16LE:
		return decodeUTF16Input(payload, true)
	case OverrideUTF16BE:
		return decodeUTF16Input(payload, false)
	case OverrideUTF32LE:
		return decodeUTF32Input(payload, true)
	case OverrideUTF32BE:
		return decodeUTF32Input(payload, false)
	}
	return nil, scode.New(scode.BadEscape, 0)
}

func decodeUTF16Input(payload []byte, little bool) ([]rune, error) {
	if len(payload)%2 != 0 {
		return nil, scode.New(scode.OpenString, 0)
	}
	endian := unicode.LittleEndian
	if !little {
		endian = unicode.BigEndian
	}
	dec := unicode.UTF16(endian, unicode.IgnoreBOM).NewDecoder()
	out, _, err := transform.Bytes(dec, payload)
	if err != nil {
		return nil, scode.New(scode.BadEscape, 0)
	}
	return []rune(string(out)), nil
}

func decodeUTF32Input(payload []byte, little bool) ([]rune, error) {
	if len(payload)%4 != 0 {
		return nil, scode.New(scode.OpenString, 0)
	}
	out := make([]rune, 0, len(payload)/4)
	for i := 0; i < len(payload); i += 4 {
		var v uint32
		if little {
			v = binary.LittleEndian.Uint32(payload[i : i+4])
		} else {
			v = binary.BigEndian.Uint32(payload[i : i+4])
		}
		if v > maxUnicode {
			return nil, scode.New(scode.BadEscape, 0)
		}
		out = append(out, rune(v))
	}
	return out, nil
}

// decodeCESU8 parses CESU-8 input: identical to UTF-8 except that
// supplemental codepoints are represented as two 3-byte sequences encoding
// a surrogate pair instead of one 4-byte sequence. unicode/utf8 treats
// those 3-byte sequences as invalid (RFC 3629 forbids surrogates in
// UTF-8), so decoding walks the bytes with decodeUTF8Raw instead.
func decodeCESU8(payload []byte) ([]rune, error) {
	var out []rune
	i := 0
	for i < len(payload) {
		cp, size, ok := decodeUTF8Raw(payload[i:])
		if !ok {
			return nil, scode.New(scode.BadEscape, 0)
		}
		i += size
		if !isSurrogate(cp) {
			out = append(out, rune(cp))
			continue
		}
		cp2, size2, ok := decodeUTF8Raw(payload[i:])
		if !ok || !isSurrogate(cp2) {
			return nil, scode.New(scode.BadEscape, 0)
		}
		i += size2
		hi, lo := cp, cp2
		if hi > lo {
			hi, lo = lo, hi
		}
		out = append(out, rune(supplementOffset+((hi-surrogateMin)<<10)+(lo-0xDC00)))
	}
	return out, nil
}
