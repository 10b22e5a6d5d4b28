package decode

import (
	"github.com/canidlogic/shastina/buffer"
	"github.com/canidlogic/shastina/scode"
)

// EncoderTable is a fixed entity -> literal-bytes map implementing the
// EncoderFunc contract; the "encoding table" of spec.md's glossary.
type EncoderTable map[int][]byte

// Encode implements the EncoderFunc "query required length, then call
// again with a large enough buffer" protocol.
func (t EncoderTable) Encode(entity int, buf []byte) int {
	b, ok := t[entity]
	if !ok {
		return 0
	}
	if len(b) > len(buf) {
		return len(b)
	}
	copy(buf, b)
	return len(b)
}

func encodeViaTable(e int, enc EncoderFunc, out *buffer.Buffer) error {
	if enc == nil {
		return nil
	}
	bp := getScratch(8)
	defer putScratch(bp)
	for {
		need := enc(e, *bp)
		if need == 0 {
			return nil
		}
		if need <= len(*bp) {
			return appendRaw(out, (*bp)[:need])
		}
		if need > out.Cap() {
			return scode.New(scode.HugeBlock, 0)
		}
		*bp = growScratch(*bp, need)
	}
}

func appendRaw(out *buffer.Buffer, p []byte) error {
	if err := out.AppendBytes(p); err != nil {
		return scode.New(scode.HugeBlock, 0)
	}
	return nil
}
