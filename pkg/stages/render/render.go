// Package render implements the parallel frame rendering stage.
//
// Jobs are transformed by a fixed pool of workers and complete in any order.
// The collector restores frame order through an index-keyed buffer so the
// output sink always sees ascending, gap-free indices.
package render

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/user/timelapse/pkg/pipeline"
	"github.com/user/timelapse/pkg/ports"
)

// Stage renders frame jobs in parallel and emits them in order.
type Stage struct {
	frames     pipeline.Stage[pipeline.FrameJob, pipeline.FrameResult]
	observer   ports.ProgressObserver
	debug      ports.DebugSink
	logger     ports.Logger
	numWorkers int
}

// NewStage creates a new render stage. frames processes a single job and must be
// safe for concurrent use. numWorkers is the default pool size; zero or less
// selects runtime.NumCPU().
func NewStage(
	frames pipeline.Stage[pipeline.FrameJob, pipeline.FrameResult],
	observer ports.ProgressObserver,
	debug ports.DebugSink,
	logger ports.Logger,
	numWorkers int,
) *Stage {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &Stage{
		frames:     frames,
		observer:   observer,
		debug:      debug,
		logger:     logger.WithComponent("render"),
		numWorkers: numWorkers,
	}
}

// Execute runs every job and writes the results to input.Sink in index order.
// The first failing job stops dispatch; jobs already running are drained and
// the failure is returned as a PipelineError. The sink is neither closed nor
// aborted here.
func (s *Stage) Execute(ctx context.Context, input pipeline.RenderInput) (pipeline.RenderResult, error) {
	start := time.Now()
	n := len(input.Jobs)
	if input.Sink == nil {
		return pipeline.RenderResult{}, errors.New("render stage: no output sink")
	}
	if n == 0 {
		return pipeline.RenderResult{Elapsed: time.Since(start)}, nil
	}
	first := input.Jobs[0].Index
	for i, job := range input.Jobs {
		if job.Index != first+i {
			return pipeline.RenderResult{}, fmt.Errorf("render stage: job %d has index %d, want %d", i, job.Index, first+i)
		}
	}

	workers := input.Workers
	if workers <= 0 {
		workers = s.numWorkers
	}
	if workers > n {
		workers = n
	}

	s.logger.Debug("Rendering %d frames with %d workers", n, workers)
	s.observer.OnStart(n)
	defer s.observer.OnFinish()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(runCtx)

	jobs := make(chan pipeline.FrameJob)
	results := make(chan pipeline.FrameResult, workers)

	// Dispatcher
	g.Go(func() error {
		defer close(jobs)
		for _, job := range input.Jobs {
			select {
			case <-gctx.Done():
				return nil
			case jobs <- job:
			}
		}
		return nil
	})

	var done atomic.Int64
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return s.worker(gctx, jobs, results, &done, n)
		})
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	// Collector: the only goroutine touching the buffer and the sink.
	buf := newOrderingBuffer(first)
	emitted := 0
	var sinkErr error
	for res := range results {
		if sinkErr != nil || gctx.Err() != nil {
			continue
		}
		if err := buf.push(res); err != nil {
			sinkErr = &pipeline.PipelineError{FrameIndex: res.Index, Cause: err}
			cancel()
			continue
		}
		for {
			next, ok := buf.pop()
			if !ok {
				break
			}
			if err := input.Sink.WriteFrame(next.Index, next.SourcePath, next.Image); err != nil {
				sinkErr = &pipeline.PipelineError{FrameIndex: next.Index, Cause: err}
				cancel()
				break
			}
			if emitted == 0 && s.debug.Enabled() {
				if err := s.debug.SaveFrame(next.Index, next.Image); err != nil {
					s.logger.Warn("Failed to save debug frame: %v", err)
				}
			}
			emitted++
		}
	}
	workErr := g.Wait()

	result := pipeline.RenderResult{
		Frames:       emitted,
		Workers:      workers,
		PeakBuffered: buf.peak,
		Elapsed:      time.Since(start),
	}

	switch {
	case workErr != nil:
		return result, workErr
	case sinkErr != nil:
		return result, sinkErr
	case ctx.Err() != nil:
		return result, ctx.Err()
	case emitted != n:
		return result, fmt.Errorf("render stage: emitted %d of %d frames, %d still buffered", emitted, n, buf.len())
	}

	s.logger.Debug("Rendered %d frames in %s (peak reorder buffer %d)", emitted, result.Elapsed, buf.peak)
	return result, nil
}

// worker transforms jobs until the channel closes or the context is cancelled.
// Failures caused by cancellation are not reported; the caller reads ctx instead.
func (s *Stage) worker(
	ctx context.Context,
	jobs <-chan pipeline.FrameJob,
	results chan<- pipeline.FrameResult,
	done *atomic.Int64,
	total int,
) error {
	for job := range jobs {
		if ctx.Err() != nil {
			return nil
		}

		res, err := s.frames.Execute(ctx, job)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return &pipeline.PipelineError{FrameIndex: job.Index, Cause: err}
		}
		res.Index = job.Index

		select {
		case results <- res:
		case <-ctx.Done():
			return nil
		}
		s.observer.OnFrameDone(int(done.Add(1)), total)
	}
	return nil
}

var _ pipeline.Stage[pipeline.RenderInput, pipeline.RenderResult] = (*Stage)(nil)
