// Package plan implements the validation and planning stage.
//
// Everything that can be rejected without decoding pixels is rejected here:
// malformed crops, out-of-domain keyframes, offsets without a crop and crop
// windows that leave any frame. Only image headers are read.
package plan

import (
	"context"
	"errors"

	"github.com/user/timelapse/pkg/geometry"
	"github.com/user/timelapse/pkg/keyframe"
	"github.com/user/timelapse/pkg/pipeline"
	"github.com/user/timelapse/pkg/ports"
)

// Stage builds the frame jobs of a run.
type Stage struct {
	codec  ports.ImageCodec
	system ports.SystemInfo
	logger ports.Logger
}

// NewStage creates a new plan stage. system may be nil to skip the memory check.
func NewStage(codec ports.ImageCodec, system ports.SystemInfo, logger ports.Logger) *Stage {
	return &Stage{
		codec:  codec,
		system: system,
		logger: logger.WithComponent("plan"),
	}
}

// Execute validates the input and resolves one job per source image.
func (s *Stage) Execute(ctx context.Context, input pipeline.PlanInput) (pipeline.PlanResult, error) {
	n := len(input.Sources)
	if n == 0 {
		return pipeline.PlanResult{}, pipeline.Configf("input", "no source images")
	}
	if input.FirstIndex < 0 {
		return pipeline.PlanResult{}, pipeline.Configf("start-frame", "must not be negative, got %d", input.FirstIndex)
	}
	total := input.TotalFrames
	if total <= 0 {
		total = input.FirstIndex + n
	}
	if input.FirstIndex+n > total {
		return pipeline.PlanResult{}, pipeline.Configf("end-frame", "range ends at frame %d but the sequence has %d frames", input.FirstIndex+n-1, total)
	}

	mode, err := keyframe.ParseMode(input.Interpolation)
	if err != nil {
		return pipeline.PlanResult{}, err
	}

	var crop *geometry.CropSpec
	if input.Crop != "" {
		c, err := geometry.ParseCrop(input.Crop)
		if err != nil {
			return pipeline.PlanResult{}, err
		}
		crop = &c
	}

	kf := withDefaults(input.Keyframes)
	if crop == nil && (kf.OffsetX != nil || kf.OffsetY != nil) {
		return pipeline.PlanResult{}, pipeline.Configf("offset", "offset keyframes require --crop")
	}

	full, err := buildSchedules(kf, total, mode)
	if err != nil {
		return pipeline.PlanResult{}, err
	}
	sched := full.slice(input.FirstIndex, n)

	s.logger.Debug("Reading %d image headers", n)
	dims := make([]pipeline.Dimension, n)
	for i, path := range input.Sources {
		if err := ctx.Err(); err != nil {
			return pipeline.PlanResult{}, err
		}
		w, h, err := s.codec.DecodeConfig(path)
		if err != nil {
			var de *pipeline.DecodeError
			if !errors.As(err, &de) {
				err = &pipeline.DecodeError{Path: path, Cause: err}
			}
			return pipeline.PlanResult{}, &pipeline.PipelineError{FrameIndex: input.FirstIndex + i, Cause: err}
		}
		dims[i] = pipeline.Dimension{Width: w, Height: h}
	}

	rects, err := geometry.Resolve(crop, sched.offsetX, sched.offsetY, dims)
	if err != nil {
		var be *pipeline.BoundaryError
		if errors.As(err, &be) {
			be.FrameIndex += input.FirstIndex
		}
		return pipeline.PlanResult{}, err
	}

	jobs := make([]pipeline.FrameJob, n)
	for i := range jobs {
		jobs[i] = pipeline.FrameJob{
			Index:      input.FirstIndex + i,
			SourcePath: input.Sources[i],
			Source:     dims[i],
			Rect:       rects[i],
			Adjustments: pipeline.Adjustments{
				Exposure:   sched.exposure[i],
				Brightness: sched.brightness[i],
				Contrast:   sched.contrast[i],
				Saturation: sched.saturation[i],
			},
		}
	}

	result := pipeline.PlanResult{
		Jobs:      jobs,
		Schedules: sched.export(),
		Output:    rects[0].Size(),
	}
	s.checkMemory(n, result.Output)
	s.logger.Debug("Planned %d frames, output %s", n, result.Output)
	return result, nil
}

// checkMemory warns when the worst-case ordering buffer, every frame held at
// once, would not fit in available memory.
func (s *Stage) checkMemory(frames int, output pipeline.Dimension) {
	if s.system == nil {
		return
	}
	available, err := s.system.AvailableMemory()
	if err != nil {
		s.logger.Debug("Memory check skipped: %v", err)
		return
	}
	need := uint64(frames) * uint64(output.Area()) * 4
	if need > available {
		s.logger.Warn("Worst-case frame buffer %d MiB exceeds available memory %d MiB; consider fewer threads or a smaller crop",
			need>>20, available>>20)
	}
}

func withDefaults(kf pipeline.KeyframeSet) pipeline.KeyframeSet {
	def := pipeline.DefaultKeyframeSet()
	if kf.Exposure == nil {
		kf.Exposure = def.Exposure
	}
	if kf.Brightness == nil {
		kf.Brightness = def.Brightness
	}
	if kf.Contrast == nil {
		kf.Contrast = def.Contrast
	}
	if kf.Saturation == nil {
		kf.Saturation = def.Saturation
	}
	return kf
}

type schedules struct {
	exposure   keyframe.Schedule
	brightness keyframe.Schedule
	contrast   keyframe.Schedule
	saturation keyframe.Schedule
	offsetX    keyframe.Schedule // nil when not configured
	offsetY    keyframe.Schedule
}

func buildSchedules(kf pipeline.KeyframeSet, n int, mode keyframe.Mode) (schedules, error) {
	var out schedules
	var err error
	if out.exposure, err = keyframe.BuildMode(kf.Exposure, n, keyframe.Exposure, mode); err != nil {
		return out, err
	}
	if out.brightness, err = keyframe.BuildMode(kf.Brightness, n, keyframe.Brightness, mode); err != nil {
		return out, err
	}
	if out.contrast, err = keyframe.BuildMode(kf.Contrast, n, keyframe.Contrast, mode); err != nil {
		return out, err
	}
	if out.saturation, err = keyframe.BuildMode(kf.Saturation, n, keyframe.Saturation, mode); err != nil {
		return out, err
	}
	if kf.OffsetX != nil {
		if out.offsetX, err = keyframe.BuildMode(kf.OffsetX, n, keyframe.OffsetX, mode); err != nil {
			return out, err
		}
	}
	if kf.OffsetY != nil {
		if out.offsetY, err = keyframe.BuildMode(kf.OffsetY, n, keyframe.OffsetY, mode); err != nil {
			return out, err
		}
	}
	return out, nil
}

func (s schedules) slice(from, n int) schedules {
	out := schedules{
		exposure:   s.exposure.Slice(from, n),
		brightness: s.brightness.Slice(from, n),
		contrast:   s.contrast.Slice(from, n),
		saturation: s.saturation.Slice(from, n),
	}
	if s.offsetX != nil {
		out.offsetX = s.offsetX.Slice(from, n)
	}
	if s.offsetY != nil {
		out.offsetY = s.offsetY.Slice(from, n)
	}
	return out
}

func (s schedules) export() pipeline.ScheduleSet {
	return pipeline.ScheduleSet{
		Exposure:   s.exposure,
		Brightness: s.brightness,
		Contrast:   s.contrast,
		Saturation: s.saturation,
		OffsetX:    s.offsetX,
		OffsetY:    s.offsetY,
	}
}

var _ pipeline.Stage[pipeline.PlanInput, pipeline.PlanResult] = (*Stage)(nil)
