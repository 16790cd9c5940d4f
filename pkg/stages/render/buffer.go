package render

import (
	"fmt"

	"github.com/user/timelapse/pkg/pipeline"
)

// orderingBuffer holds completed frames until every lower index has been emitted.
// It is owned by the collector goroutine and is not safe for concurrent use.
type orderingBuffer struct {
	next    int
	pending map[int]pipeline.FrameResult
	peak    int
}

func newOrderingBuffer(first int) *orderingBuffer {
	return &orderingBuffer{
		next:    first,
		pending: make(map[int]pipeline.FrameResult),
	}
}

// push stores a result. Results for already emitted or already pending indices are rejected.
func (b *orderingBuffer) push(r pipeline.FrameResult) error {
	if r.Index < b.next {
		return fmt.Errorf("frame %d arrived after it was emitted", r.Index)
	}
	if _, dup := b.pending[r.Index]; dup {
		return fmt.Errorf("frame %d arrived twice", r.Index)
	}
	b.pending[r.Index] = r
	if len(b.pending) > b.peak {
		b.peak = len(b.pending)
	}
	return nil
}

// pop returns the next frame in order if it is available.
func (b *orderingBuffer) pop() (pipeline.FrameResult, bool) {
	r, ok := b.pending[b.next]
	if !ok {
		return pipeline.FrameResult{}, false
	}
	delete(b.pending, b.next)
	b.next++
	return r, true
}

func (b *orderingBuffer) len() int {
	return len(b.pending)
}
