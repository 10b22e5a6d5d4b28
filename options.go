package shastina

// Option configures a Reader at construction time, following the
// functional-options pattern lexer.Option uses for its own knobs.
type Option func(*Reader)

// WithMaxTokenLen sets the maximum token length in bytes. The default is
// 1023, the minimum spec.md §6 requires.
func WithMaxTokenLen(n int) Option {
	return func(r *Reader) { r.maxTokenLen = n }
}

// WithMaxStringLen sets the maximum decoded string-body length in bytes.
// The default is 32766, the minimum spec.md §6 requires.
func WithMaxStringLen(n int) Option {
	return func(r *Reader) { r.maxStringLen = n }
}

// WithMaxCurlyDepth sets the maximum curly-brace nesting depth. The
// default saturates at the host int's maximum, per spec.md §6.
func WithMaxCurlyDepth(n int) Option {
	return func(r *Reader) { r.maxCurlyDepth = n }
}
