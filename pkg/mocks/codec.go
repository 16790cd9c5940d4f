// Package mocks provides mock implementations for testing.
package mocks

import (
	"fmt"
	"image"
	"sync"

	"github.com/user/timelapse/pkg/ports"
)

// ImageCodec is a mock implementation of ports.ImageCodec.
// Without func overrides it serves images registered with AddImage.
type ImageCodec struct {
	mu     sync.RWMutex
	images map[string]image.Image

	DecodeFunc       func(path string) (image.Image, error)
	DecodeConfigFunc func(path string) (int, int, error)
	EncodeFunc       func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error)

	// Recorded calls for verification
	DecodeCalls       []string
	DecodeConfigCalls []string
	EncodeCalls       int
}

// NewImageCodec creates a new mock ImageCodec.
func NewImageCodec() *ImageCodec {
	return &ImageCodec{images: make(map[string]image.Image)}
}

// AddImage registers an image to be returned for path.
func (m *ImageCodec) AddImage(path string, img image.Image) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.images[path] = img
}

func (m *ImageCodec) Decode(path string) (image.Image, error) {
	m.mu.Lock()
	m.DecodeCalls = append(m.DecodeCalls, path)
	m.mu.Unlock()
	if m.DecodeFunc != nil {
		return m.DecodeFunc(path)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if img, ok := m.images[path]; ok {
		return img, nil
	}
	return nil, fmt.Errorf("image not found: %s", path)
}

func (m *ImageCodec) DecodeConfig(path string) (int, int, error) {
	m.mu.Lock()
	m.DecodeConfigCalls = append(m.DecodeConfigCalls, path)
	m.mu.Unlock()
	if m.DecodeConfigFunc != nil {
		return m.DecodeConfigFunc(path)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if img, ok := m.images[path]; ok {
		b := img.Bounds()
		return b.Dx(), b.Dy(), nil
	}
	return 0, 0, fmt.Errorf("image not found: %s", path)
}

func (m *ImageCodec) Encode(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	m.mu.Lock()
	m.EncodeCalls++
	m.mu.Unlock()
	if m.EncodeFunc != nil {
		return m.EncodeFunc(img, format, quality)
	}
	return []byte(format.Extension()), nil
}

var _ ports.ImageCodec = (*ImageCodec)(nil)
