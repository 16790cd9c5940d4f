package mocks

import (
	"image"
	"sync"

	"github.com/user/timelapse/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	Plan   []byte
	Frames map[int]image.Image
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled: enabled,
		Frames:  make(map[int]image.Image),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SavePlan(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Plan = data
	return nil
}

func (m *DebugSink) SaveFrame(index int, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Frames[index] = img
	return nil
}

// FrameCount returns the number of saved frames.
func (m *DebugSink) FrameCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.Frames)
}

var _ ports.DebugSink = (*DebugSink)(nil)

// NullSink is a no-op implementation of ports.DebugSink.
type NullSink struct{}

func (m *NullSink) Enabled() bool                              { return false }
func (m *NullSink) SavePlan(data []byte) error                 { return nil }
func (m *NullSink) SaveFrame(index int, img image.Image) error { return nil }

var _ ports.DebugSink = (*NullSink)(nil)

// OutputSink is a mock implementation of ports.OutputSink that records
// the order in which frames arrive.
type OutputSink struct {
	mu sync.Mutex

	WriteFrameFunc func(index int, sourcePath string, img image.Image) error
	CloseFunc      func() error
	AbortFunc      func() error

	// Recorded calls for verification
	Indices     []int
	Paths       []string
	CloseCalled bool
	AbortCalled bool
}

func (m *OutputSink) WriteFrame(index int, sourcePath string, img image.Image) error {
	m.mu.Lock()
	m.Indices = append(m.Indices, index)
	m.Paths = append(m.Paths, sourcePath)
	m.mu.Unlock()
	if m.WriteFrameFunc != nil {
		return m.WriteFrameFunc(index, sourcePath, img)
	}
	return nil
}

func (m *OutputSink) Close() error {
	m.mu.Lock()
	m.CloseCalled = true
	m.mu.Unlock()
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

func (m *OutputSink) Abort() error {
	m.mu.Lock()
	m.AbortCalled = true
	m.mu.Unlock()
	if m.AbortFunc != nil {
		return m.AbortFunc()
	}
	return nil
}

// Written returns a copy of the recorded frame indices.
func (m *OutputSink) Written() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]int, len(m.Indices))
	copy(out, m.Indices)
	return out
}

var _ ports.OutputSink = (*OutputSink)(nil)
