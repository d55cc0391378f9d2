package builder

import "sync"

const (
	// Pool limits to prevent memory bloat
	poolMaxFrames = 64
)

// Dry-run builders used by Build for the measuring pass. Only the frame
// stack is worth keeping warm.
var dryPool = sync.Pool{
	New: func() any {
		return New(nil)
	},
}

func getDry() *Builder {
	b := dryPool.Get().(*Builder)
	b.Reset(nil)
	return b
}

func putDry(b *Builder) {
	if cap(b.frames) > poolMaxFrames {
		return // reject oversized
	}
	dryPool.Put(b)
}
