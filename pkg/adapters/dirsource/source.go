// Package dirsource lists the source images of a directory in frame order.
package dirsource

import (
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/user/timelapse/pkg/pipeline"
	"github.com/user/timelapse/pkg/ports"
)

// Extensions are the accepted source image extensions, lower case.
var Extensions = []string{".jpg", ".jpeg", ".png", ".tif", ".tiff", ".bmp", ".webp"}

// Lister implements ports.SourceLister over a FileSystem.
type Lister struct {
	fs ports.FileSystem
}

// New creates a new Lister.
func New(fs ports.FileSystem) *Lister {
	return &Lister{fs: fs}
}

// List returns the image files directly inside dir, naturally sorted so that
// "img2" comes before "img10".
func (l *Lister) List(dir string) ([]string, error) {
	names, err := l.fs.ListFiles(dir)
	if err != nil {
		return nil, pipeline.Configf("input", "cannot read %s: %v", dir, err)
	}

	var paths []string
	for _, name := range names {
		if IsImage(name) {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	if len(paths) == 0 {
		return nil, pipeline.Configf("input", "no images found in %s (supported: %s)", dir, strings.Join(Extensions, " "))
	}

	sort.SliceStable(paths, func(i, j int) bool {
		return NaturalLess(filepath.Base(paths[i]), filepath.Base(paths[j]))
	})
	return paths, nil
}

// IsImage reports whether name has a supported extension, ignoring case.
func IsImage(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

var chunkPattern = regexp.MustCompile(`\d+|\D+`)

// NaturalLess compares strings chunk by chunk, treating digit runs as numbers.
func NaturalLess(a, b string) bool {
	ca := chunkPattern.FindAllString(a, -1)
	cb := chunkPattern.FindAllString(b, -1)
	for i := 0; i < len(ca) && i < len(cb); i++ {
		x, y := ca[i], cb[i]
		if x == y {
			continue
		}
		nx, errX := strconv.ParseUint(x, 10, 64)
		ny, errY := strconv.ParseUint(y, 10, 64)
		if errX == nil && errY == nil {
			if nx != ny {
				return nx < ny
			}
			// Equal values with different padding: shorter first.
			return len(x) < len(y)
		}
		return x < y
	}
	return len(ca) < len(cb)
}

var _ ports.SourceLister = (*Lister)(nil)
