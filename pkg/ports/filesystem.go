package ports

import "io"

// FileSystem abstracts file system operations.
type FileSystem interface {
	// ReadFile reads the entire contents of a file.
	ReadFile(path string) ([]byte, error)

	// Open opens a file for streaming reads.
	Open(path string) (io.ReadCloser, error)

	// WriteFile writes data to a file, creating parent directories if necessary.
	WriteFile(path string, data []byte) error

	// MkdirAll creates a directory and all parent directories.
	MkdirAll(path string) error

	// Exists checks if a file or directory exists.
	Exists(path string) (bool, error)

	// Remove deletes a file or empty directory.
	Remove(path string) error

	// Size returns the size of a file in bytes.
	Size(path string) (int64, error)

	// ListFiles returns the names of the regular files directly inside dir.
	ListFiles(dir string) ([]string, error)
}

// SourceLister finds the source images of a run, in frame order.
type SourceLister interface {
	List(dir string) ([]string, error)
}
