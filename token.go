package shastina

import (
	"github.com/canidlogic/shastina/decode"
	"github.com/canidlogic/shastina/scode"
)

// Kind discriminates the Token variants of spec.md §3.
type Kind int

// Token variants.
const (
	KindSimple Kind = iota
	KindFinal
	KindStringPrefix
	KindEmbedPrefix
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindSimple:
		return "simple"
	case KindFinal:
		return "final"
	case KindStringPrefix:
		return "string-prefix"
	case KindEmbedPrefix:
		return "embed-prefix"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Token is the discriminated result of Reader.Token (and, for string
// prefixes, of the subsequent Reader.String call).
type Token struct {
	Kind Kind

	// Bytes holds the literal token bytes for Simple and Final, or the
	// prefix bytes preceding the opening delimiter for StringPrefix and
	// EmbedPrefix (may be empty, e.g. a bare quote).
	Bytes []byte

	// StringSyntax is meaningful only for StringPrefix tokens: which of
	// the decoding-map syntaxes (quoted, apostrophe, curly) the body
	// should be read and decoded with.
	StringSyntax decode.Kind

	// Body holds the decoded-and-encoded string body once Reader.String
	// has been called for a StringPrefix token. It is nil on the token
	// Token itself returns from.
	Body []byte

	// Err is set when Kind == KindError.
	Err *scode.Error
}
