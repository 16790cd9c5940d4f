package mocks

import (
	"image"

	"github.com/user/timelapse/pkg/ports"
)

// VideoEncoder is a mock implementation of ports.VideoEncoder.
type VideoEncoder struct {
	BeginFunc       func(width, height int, opts ports.EncoderOptions) error
	EncodeFrameFunc func(img image.Image) error
	EndFunc         func() error
	AbortFunc       func() error

	// Recorded calls for verification
	BeginCalled      bool
	BeginWidth       int
	BeginHeight      int
	BeginOptions     ports.EncoderOptions
	EncodeFrameCalls []EncodeFrameCall
	EndCalled        bool
	AbortCalled      bool
}

// EncodeFrameCall records a call to EncodeFrame.
type EncodeFrameCall struct {
	Width  int
	Height int
}

func (m *VideoEncoder) Begin(width, height int, opts ports.EncoderOptions) error {
	m.BeginCalled = true
	m.BeginWidth, m.BeginHeight, m.BeginOptions = width, height, opts
	if m.BeginFunc != nil {
		return m.BeginFunc(width, height, opts)
	}
	return nil
}

func (m *VideoEncoder) EncodeFrame(img image.Image) error {
	b := img.Bounds()
	m.EncodeFrameCalls = append(m.EncodeFrameCalls, EncodeFrameCall{Width: b.Dx(), Height: b.Dy()})
	if m.EncodeFrameFunc != nil {
		return m.EncodeFrameFunc(img)
	}
	return nil
}

func (m *VideoEncoder) End() error {
	m.EndCalled = true
	if m.EndFunc != nil {
		return m.EndFunc()
	}
	return nil
}

func (m *VideoEncoder) Abort() error {
	m.AbortCalled = true
	if m.AbortFunc != nil {
		return m.AbortFunc()
	}
	return nil
}

var _ ports.VideoEncoder = (*VideoEncoder)(nil)

// VideoInspector is a mock implementation of ports.VideoInspector.
type VideoInspector struct {
	InspectFunc func(path string) (ports.VideoInfo, error)

	InspectCalls []string
}

func (m *VideoInspector) Inspect(path string) (ports.VideoInfo, error) {
	m.InspectCalls = append(m.InspectCalls, path)
	if m.InspectFunc != nil {
		return m.InspectFunc(path)
	}
	return ports.VideoInfo{Codec: "h264"}, nil
}

var _ ports.VideoInspector = (*VideoInspector)(nil)
