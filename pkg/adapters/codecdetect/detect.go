// Package codecdetect reads back encoded MP4/MOV files to verify what was written.
package codecdetect

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/timelapse/pkg/ports"
)

// Codec represents a video codec type.
type Codec string

const (
	CodecH264    Codec = "h264"
	CodecH265    Codec = "h265"
	CodecAV1     Codec = "av1"
	CodecUnknown Codec = "unknown"
)

// ErrNoVideoTrack is returned when a file has no video track.
var ErrNoVideoTrack = errors.New("codecdetect: no video track found")

// Inspector implements ports.VideoInspector for ISO-BMFF files.
type Inspector struct{}

// NewInspector creates a new Inspector.
func NewInspector() *Inspector {
	return &Inspector{}
}

// Inspect implements ports.VideoInspector.
func (i *Inspector) Inspect(path string) (ports.VideoInfo, error) {
	return Probe(path)
}

// Probe opens an MP4 or MOV file and describes its first video track.
func Probe(path string) (ports.VideoInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return ports.VideoInfo{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	return ProbeReader(f)
}

// ProbeReader describes the first video track of an MP4 stream.
func ProbeReader(r io.Reader) (ports.VideoInfo, error) {
	mp4File, err := mp4.DecodeFile(r)
	if err != nil {
		return ports.VideoInfo{}, fmt.Errorf("decode mp4: %w", err)
	}
	trak := videoTrack(mp4File)
	if trak == nil {
		return ports.VideoInfo{}, ErrNoVideoTrack
	}
	return describe(trak), nil
}

// DetectFromFile detects the video codec used in an MP4 file.
func DetectFromFile(path string) (Codec, error) {
	info, err := Probe(path)
	if err != nil {
		return CodecUnknown, err
	}
	return Codec(info.Codec), nil
}

// DetectFromBytes detects the video codec from MP4 data bytes.
func DetectFromBytes(data []byte) (Codec, error) {
	info, err := ProbeReader(bytes.NewReader(data))
	if err != nil {
		return CodecUnknown, err
	}
	return Codec(info.Codec), nil
}

func videoTrack(f *mp4.File) *mp4.TrakBox {
	var moov *mp4.MoovBox
	switch {
	case f.Moov != nil:
		moov = f.Moov
	case f.IsFragmented() && f.Init != nil:
		moov = f.Init.Moov
	}
	if moov == nil {
		return nil
	}
	for _, trak := range moov.Traks {
		if trak.Mdia != nil && trak.Mdia.Hdlr != nil && trak.Mdia.Hdlr.HandlerType == "vide" {
			return trak
		}
	}
	return nil
}

func describe(trak *mp4.TrakBox) ports.VideoInfo {
	info := ports.VideoInfo{Codec: string(CodecUnknown)}

	if mdhd := trak.Mdia.Mdhd; mdhd != nil && mdhd.Timescale > 0 {
		info.DurationMs = int(mdhd.Duration * 1000 / uint64(mdhd.Timescale))
	}
	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil {
		return info
	}
	stbl := trak.Mdia.Minf.Stbl
	if stbl.Stsz != nil {
		info.SampleCount = int(stbl.Stsz.SampleNumber)
	}
	if stbl.Stsd == nil {
		return info
	}

	for _, child := range stbl.Stsd.Children {
		info.Codec = string(codecOf(child.Type()))
		if vse, ok := child.(*mp4.VisualSampleEntryBox); ok {
			info.Width = int(vse.Width)
			info.Height = int(vse.Height)
		}
		if info.Codec != string(CodecUnknown) {
			break
		}
	}
	return info
}

func codecOf(boxType string) Codec {
	switch boxType {
	case "avc1", "avc3":
		return CodecH264
	case "hvc1", "hev1":
		return CodecH265
	case "av01":
		return CodecAV1
	default:
		return CodecUnknown
	}
}

var _ ports.VideoInspector = (*Inspector)(nil)
