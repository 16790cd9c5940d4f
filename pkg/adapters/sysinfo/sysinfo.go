// Package sysinfo reports host CPU and memory using gopsutil.
package sysinfo

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/user/timelapse/pkg/ports"
)

// Host implements ports.SystemInfo for the local machine.
type Host struct{}

// New creates a new Host.
func New() *Host {
	return &Host{}
}

// LogicalCPUs returns the number of logical CPUs, falling back to the Go runtime.
func (h *Host) LogicalCPUs() int {
	n, err := cpu.Counts(true)
	if err != nil || n < 1 {
		n = runtime.NumCPU()
	}
	if procs := runtime.GOMAXPROCS(0); procs < n {
		n = procs
	}
	return max(n, 1)
}

// AvailableMemory returns the memory available without swapping.
func (h *Host) AvailableMemory() (uint64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, err
	}
	return vm.Available, nil
}

// DefaultWorkers is the worker count used when none is configured.
func DefaultWorkers() int {
	return New().LogicalCPUs()
}

var _ ports.SystemInfo = (*Host)(nil)
