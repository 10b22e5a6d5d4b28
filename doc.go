// Copyright 2017-2020 Denis Bernard <db047h@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

/*
Package shastina implements a streaming lexical front end for the
Shastina metalanguage: a byte source is normalised by a line-counting
input filter, split into tokens by a recognizer, and — for quoted,
apostrophe, and curly string literals — run through a decode/encode
pipeline that turns escape sequences into entities and re-encodes them
under a chosen Unicode output scheme.

Pipeline

The five stages are layered the way a hand-written recursive
descent reader would be, not assembled from an intermediate token
queue:

	Source -> Filter -> Reader.Token -> Reader.String -> decode.Decode

A Source yields raw bytes (see NewSource and BytesSource). A Filter
wraps it with BOM stripping, CR/LF normalisation, line counting, and a
single byte of pushback (see NewFilter). A Reader owns a Filter and
adds token recognition, literal-body reading, and buffer-size limits.

Reading a script

Callers drive a Reader by repeatedly calling Token. A Simple or Final
token carries its own bytes. A StringPrefix token means the next call
must be String, supplying the decoding map, numeric-escape table,
entity encoder, and output override to use for that literal; an
EmbedPrefix token hands control to a caller-specific mechanism for
reading the embedded block, which this package does not define.

Errors are sticky: once Token or String returns a non-nil error, every
subsequent call returns the same *scode.Error until the Reader is
discarded. Status, Line, and Count let a caller inspect the error state
without re-triggering it.

Decoding

The decode subpackage implements the entity decode and encode passes
independently of the reader, so callers can reuse it against payloads
obtained some other way. See decode.StdQuotedMap and decode.StdCurlyMap
for a ready-made ASCII-escape decoding map, and decode.Override for the
supported Unicode output schemes.
*/
package shastina
