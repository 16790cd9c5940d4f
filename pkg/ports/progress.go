package ports

// ProgressObserver receives progress notifications from the render stage.
// OnFrameDone is called from worker goroutines, so implementations must be safe
// for concurrent use.
type ProgressObserver interface {
	OnStart(total int)
	OnFrameDone(done, total int)
	OnFinish()
}

// SystemInfo reports host resources.
type SystemInfo interface {
	// LogicalCPUs returns the available parallelism, at least 1.
	LogicalCPUs() int

	// AvailableMemory returns the memory available to new allocations, in bytes.
	AvailableMemory() (uint64, error)
}
