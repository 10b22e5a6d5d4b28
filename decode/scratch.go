package decode

import "sync"

// scratchPool pools the small retry buffers used by encodeViaTable's
// "query required length, then call again with a bigger buffer" loop,
// following the pooled-scratch-slice idiom used elsewhere in the pack for
// buffers that grow on retry and are released on every exit path.
var scratchPool = sync.Pool{
	New: func() any {
		b := make([]byte, 8)
		return &b
	},
}

func getScratch(n int) *[]byte {
	bp := scratchPool.Get().(*[]byte)
	if cap(*bp) < n {
		*bp = make([]byte, n)
	} else {
		*bp = (*bp)[:n]
	}
	return bp
}

func putScratch(bp *[]byte) {
	*bp = (*bp)[:0]
	scratchPool.Put(bp)
}

func growScratch(b []byte, n int) []byte {
	c := cap(b)
	if c == 0 {
		c = 8
	}
	for c < n {
		c *= 2
	}
	return make([]byte, n, c)
}
