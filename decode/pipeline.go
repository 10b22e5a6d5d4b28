// Package decode implements the decoder/encoder pipeline (spec.md §4.5): a
// prefix-trie "decoding map" that turns an already-delimited string payload
// into a sequence of entity codes, followed by an encoder stage that either
// calls a caller-supplied encoder table or one of several Unicode output
// overrides (UTF-8, CESU-8, UTF-16LE/BE, UTF-32LE/BE).
//
// Decode operates on the payload bytes the literal reader has already
// collected (delimiters stripped, escape/nesting already resolved at the
// byte level) rather than on a live byte source: the trie backtrack needed
// for greedy longest-match is then just an index into a slice already in
// memory, so the "buffer at most trie-depth lookahead" requirement holds
// trivially.
package decode

import (
	"github.com/canidlogic/shastina/buffer"
	"github.com/canidlogic/shastina/scode"
)

// Kind records which of the three literal-string syntaxes a payload came
// from. The pipeline itself does not branch on it; it exists so a caller
// building a StringParams can pick the matching default decoding map.
type Kind int

// String syntaxes.
const (
	KindQuoted Kind = iota
	KindApostrophe
	KindCurly
)

// DecodingMap is a prefix-trie node: the contract Decode walks to turn
// payload bytes into entity codes. Implementations may be a precomputed
// trie (see Trie), a generated table, or an arbitrary closure — the
// contract only needs Branch and Entity.
type DecodingMap interface {
	// Branch follows the child edge for b, if one exists.
	Branch(b byte) (DecodingMap, bool)
	// Entity returns the non-negative entity code registered at this node,
	// or -1 if this node does not terminate an entity.
	Entity() int
}

// NumEscape describes a numeric escape such as \u####, \d###;, or \x###;:
// once the decoder matches the entity that opens the escape, it switches to
// consuming MinDigits..MaxDigits further payload bytes in Base, optionally
// followed by Terminator, and substitutes the accumulated codepoint for the
// entity actually emitted.
type NumEscape struct {
	Base      int // 2, 8, 10, or 16
	MinDigits int
	MaxDigits int // 0 means unbounded; stops at the first non-digit, and a value above MaxCode fails
	// Terminator is the byte that must follow the digits and is consumed
	// with them, or -1 if the escape has no terminator (fixed digit count).
	Terminator int
	MinCode    int
	MaxCode    int
}

// NumEscapeFunc maps an entity code to its numeric-escape descriptor, if
// the entity opens one.
type NumEscapeFunc func(entity int) (NumEscape, bool)

// EncoderFunc is the entity encoder callback (spec.md §3): given an entity
// code and a caller-owned output buffer, it writes the entity's encoding
// into buf and returns the number of bytes written when buf is large
// enough, or the number of bytes required (without writing anything) when
// it is not — the caller is expected to retry with a buffer of at least
// that size. Unknown entities return 0.
type EncoderFunc func(entity int, buf []byte) int

// StringParams configures one call to Decode.
type StringParams struct {
	Kind      Kind
	Decoder   DecodingMap
	NumEscape NumEscapeFunc
	Encoder   EncoderFunc

	// Override selects a Unicode output scheme that bypasses Encoder for
	// entities in the Unicode range.
	Override Override
	// OutputStrict routes surrogate-range entities to Encoder instead of
	// the UTF override path, even when Override is set.
	OutputStrict bool
	// InputOverride, when not OverrideNone, means payload is already text
	// encoded in that scheme rather than Shastina escape syntax: Decode
	// skips the decoding map entirely and feeds each decoded codepoint
	// straight to the encode stage.
	InputOverride Override
}

// Decode runs the entity decode pass (§4.5.1) followed by the encode pass
// (§4.5.2) over payload — the bytes a literal reader collected between (and
// excluding) the opening and closing delimiters of a quoted or curly string
// — and returns the encoded output. maxOut bounds the output buffer; an
// overflow is reported as scode.HugeBlock.
func Decode(payload []byte, p StringParams, maxOut int) ([]byte, error) {
	if p.InputOverride != OverrideNone {
		return decodeInputOverride(payload, p, maxOut)
	}
	out := buffer.New(buffer.DefaultInitCap, maxOut)
	if err := decodeEntities(payload, p, out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func decodeEntities(payload []byte, p StringParams, out *buffer.Buffer) error {
	n := len(payload)
	i := 0
	for i < n {
		entity, consumed, ok := matchLongest(p.Decoder, payload[i:])
		if !ok {
			return scode.New(scode.BadEscape, 0)
		}
		i += consumed
		if p.NumEscape != nil {
			if desc, ok := p.NumEscape(entity); ok {
				cp, used, err := parseNumEscape(payload[i:], desc)
				if err != nil {
					return err
				}
				i += used
				entity = cp
			}
		}
		if err := emitEntity(entity, p, out); err != nil {
			return err
		}
	}
	return nil
}

// matchLongest walks the trie from its root over the start of payload,
// greedily extending while a branch succeeds, and returns the entity and
// byte length of the longest prefix that terminated at a node with a
// registered entity.
func matchLongest(root DecodingMap, payload []byte) (entity int, consumed int, ok bool) {
	cur := root
	bestEntity, bestLen := -1, 0
	for j := 0; j < len(payload); j++ {
		child, matched := cur.Branch(payload[j])
		if !matched {
			break
		}
		cur = child
		if e := cur.Entity(); e >= 0 {
			bestEntity, bestLen = e, j+1
		}
	}
	if bestEntity < 0 {
		return 0, 0, false
	}
	return bestEntity, bestLen, true
}

func emitEntity(e int, p StringParams, out *buffer.Buffer) error {
	switch {
	case e < 0 || e > maxUnicode:
		return encodeViaTable(e, p.Encoder, out)
	case p.Override == OverrideNone:
		return encodeViaTable(e, p.Encoder, out)
	case isSurrogate(e) && p.OutputStrict:
		return encodeViaTable(e, p.Encoder, out)
	default:
		return encodeUTFOverride(e, p.Override, out)
	}
}
