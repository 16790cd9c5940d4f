package mocks

import (
	"sync"

	"github.com/user/timelapse/pkg/ports"
)

// SystemInfo is a mock implementation of ports.SystemInfo.
type SystemInfo struct {
	CPUs      int
	Available uint64
	MemoryErr error
}

func (m *SystemInfo) LogicalCPUs() int {
	if m.CPUs <= 0 {
		return 1
	}
	return m.CPUs
}

func (m *SystemInfo) AvailableMemory() (uint64, error) {
	return m.Available, m.MemoryErr
}

var _ ports.SystemInfo = (*SystemInfo)(nil)

// ProgressObserver is a mock implementation of ports.ProgressObserver.
type ProgressObserver struct {
	mu sync.Mutex

	Total    int
	Done     []int
	Finished bool
}

func (m *ProgressObserver) OnStart(total int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Total = total
}

func (m *ProgressObserver) OnFrameDone(done, total int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Done = append(m.Done, done)
}

func (m *ProgressObserver) OnFinish() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Finished = true
}

// Calls returns the number of OnFrameDone notifications.
func (m *ProgressObserver) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Done)
}

var _ ports.ProgressObserver = (*ProgressObserver)(nil)

// SourceLister is a mock implementation of ports.SourceLister.
type SourceLister struct {
	Paths   []string
	ListErr error

	ListCalls []string
}

func (m *SourceLister) List(dir string) ([]string, error) {
	m.ListCalls = append(m.ListCalls, dir)
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Paths, nil
}

var _ ports.SourceLister = (*SourceLister)(nil)
