package decode

import "github.com/canidlogic/shastina/scode"

func digitVal(c byte, base int) (int, bool) {
	var v int
	switch {
	case c >= '0' && c <= '9':
		v = int(c - '0')
	case c >= 'a' && c <= 'z':
		v = int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		v = int(c-'A') + 10
	default:
		return 0, false
	}
	if v >= base {
		return 0, false
	}
	return v, true
}

// parseNumEscape consumes a numeric escape body from rest — the payload
// bytes immediately following the entity that opened the escape — and
// returns the accumulated codepoint and the number of bytes consumed
// (digits plus terminator, if any).
func parseNumEscape(rest []byte, d NumEscape) (cp int, consumed int, err error) {
	i, digits, val := 0, 0, 0
	for (d.MaxDigits == 0 || digits < d.MaxDigits) && i < len(rest) {
		v, ok := digitVal(rest[i], d.Base)
		if !ok {
			break
		}
		val = val*d.Base + v
		i++
		digits++
		if val > d.MaxCode {
			return 0, 0, scode.New(scode.BadEscape, 0)
		}
	}
	if digits < d.MinDigits {
		return 0, 0, scode.New(scode.BadEscape, 0)
	}
	if d.Terminator >= 0 {
		if i >= len(rest) || int(rest[i]) != d.Terminator {
			return 0, 0, scode.New(scode.BadEscape, 0)
		}
		i++
	}
	if val < d.MinCode || val > d.MaxCode {
		return 0, 0, scode.New(scode.BadEscape, 0)
	}
	// Reserved: a numeric escape must never decode to a surrogate, paired
	// or not (spec.md §4.5.1).
	if isSurrogate(val) {
		return 0, 0, scode.New(scode.BadEscape, 0)
	}
	return val, i, nil
}
