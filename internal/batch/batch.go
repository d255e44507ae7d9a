// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch applies the margin transform to a list of files in order and
// publishes progress while doing so.
//
// Per file the runner emits a status line before the transform and a
// percentage after it. After the last file it emits the types.PercentDone
// sentinel followed by a final status line. Files are processed strictly
// sequentially; Start runs the same loop on one worker goroutine and
// delivers the events over a channel.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/addnotespace/pkg/types"
)

// ErrNoJobs is returned when a run request contains no files.
var ErrNoJobs = errors.New("no PDF files to process")

// eventBuffer is the capacity of the channel returned by Handle.Events.
const eventBuffer = 16

// Transformer adds margins to one PDF. margin.Transformer is the production
// implementation.
type Transformer interface {
	// AddMargin writes a padded copy of inPath to outPath and returns the
	// number of pages written.
	AddMargin(inPath, outPath string, m types.Margins) (int, error)
}

// Recorder receives one entry per processed file. journal.Store implements it.
type Recorder interface {
	Record(ctx context.Context, e types.JournalEntry) error
}

// FileResult is the outcome of one job.
type FileResult struct {
	Input  string           `json:"input" yaml:"input"`
	Output string           `json:"output" yaml:"output"`
	Status types.FileStatus `json:"status" yaml:"status"`
	Pages  int              `json:"pages" yaml:"pages"`
	Error  string           `json:"error,omitempty" yaml:"error,omitempty"`
}

// Result holds the outcome of a batch run.
type Result struct {
	RunID   string        `json:"run_id" yaml:"run_id"`
	Margins types.Margins `json:"margins" yaml:"margins"`
	Total   int           `json:"total" yaml:"total"`
	Done    int           `json:"done" yaml:"done"`
	Failed  int           `json:"failed" yaml:"failed"`
	Files   []FileResult  `json:"files" yaml:"files"`
}

// Processed returns the number of files attempted so far.
func (r Result) Processed() int {
	return r.Done + r.Failed
}

// HasFailures reports whether any file failed.
func (r Result) HasFailures() bool {
	return r.Failed > 0
}

// Runner drives a Transformer over the jobs of a RunRequest.
type Runner struct {
	transformer Transformer
	recorder    Recorder
	logger      logrus.FieldLogger
	now         func() time.Time
}

// Option configures a Runner.
type Option func(*Runner)

// WithRecorder attaches a Recorder that is called once per file.
func WithRecorder(rec Recorder) Option {
	return func(r *Runner) { r.recorder = rec }
}

// WithLogger sets the logger used for run diagnostics.
func WithLogger(l logrus.FieldLogger) Option {
	return func(r *Runner) { r.logger = l }
}

// NewRunner returns a Runner that uses t for every file.
func NewRunner(t Transformer, opts ...Option) *Runner {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	r := &Runner{
		transformer: t,
		logger:      quiet,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Percent returns round(100 * done / total), rounding halves to even.
func Percent(done, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.RoundToEven(100 * float64(done) / float64(total)))
}

// Run processes the jobs of req in order on the calling goroutine, passing
// each progress event to emit (which may be nil).
//
// Unless req.ContinueOnError is set, the first failing file aborts the run:
// the error is returned wrapped with the file path and no completion
// sentinel is emitted. The context is checked between files; a cancelled
// run returns ctx.Err().
func (r *Runner) Run(ctx context.Context, req types.RunRequest, emit func(types.ProgressEvent)) (Result, error) {
	if emit == nil {
		emit = func(types.ProgressEvent) {}
	}

	total := len(req.Jobs)
	if total == 0 {
		return Result{}, ErrNoJobs
	}
	if err := req.Margins.Validate(); err != nil {
		return Result{}, err
	}

	result := Result{
		RunID:   uuid.NewString(),
		Margins: req.Margins,
		Total:   total,
		Files:   make([]FileResult, 0, total),
	}
	log := r.logger.WithField("run_id", result.RunID)
	log.WithField("files", total).Info("batch started")

	for i, job := range req.Jobs {
		if err := ctx.Err(); err != nil {
			emit(types.StatusEvent(fmt.Sprintf("Cancelled after %d of %d PDFs", i, total)))
			log.WithError(err).Warn("batch cancelled")
			return result, err
		}

		emit(types.StatusEvent(fmt.Sprintf("Working on: %s (%d/%d)", filepath.Base(job.Input), i+1, total)))

		pages, err := r.transformer.AddMargin(job.Input, job.Output, req.Margins)
		fr := FileResult{Input: job.Input, Output: job.Output, Pages: pages, Status: types.FileDone}
		if err != nil {
			fr.Status = types.FileFailed
			fr.Error = err.Error()
			result.Failed++
		} else {
			result.Done++
		}
		result.Files = append(result.Files, fr)
		r.record(ctx, log, result.RunID, req.Margins, fr)

		if err != nil {
			log.WithError(err).WithField("input", job.Input).Error("adding margins failed")
			if !req.ContinueOnError {
				return result, fmt.Errorf("processing %s: %w", job.Input, err)
			}
		} else {
			log.WithFields(logrus.Fields{"input": job.Input, "output": job.Output, "pages": pages}).Debug("file done")
		}

		emit(types.PercentEvent(Percent(i+1, total)))
	}

	emit(types.PercentEvent(types.PercentDone))
	final := fmt.Sprintf("Finished all %d PDFs", total)
	if result.Failed > 0 {
		final += fmt.Sprintf(" (%d failed)", result.Failed)
	}
	emit(types.StatusEvent(final))

	log.WithFields(logrus.Fields{"done": result.Done, "failed": result.Failed}).Info("batch finished")
	return result, nil
}

// record forwards a file outcome to the recorder. Recorder errors are
// logged and otherwise ignored.
func (r *Runner) record(ctx context.Context, log logrus.FieldLogger, runID string, m types.Margins, fr FileResult) {
	if r.recorder == nil {
		return
	}
	entry := types.JournalEntry{
		RunID:      runID,
		Input:      fr.Input,
		Output:     fr.Output,
		Margins:    m,
		Status:     fr.Status,
		Error:      fr.Error,
		Pages:      fr.Pages,
		FinishedAt: r.now().UTC(),
	}
	if err := r.recorder.Record(context.WithoutCancel(ctx), entry); err != nil {
		log.WithError(err).Warn("recording journal entry failed")
	}
}

// Handle tracks a run started with Start.
type Handle struct {
	events chan types.ProgressEvent
	done   chan struct{}
	result Result
	err    error
}

// Start runs req on a new goroutine. Progress events arrive on
// Handle.Events in processing order; the channel is closed when the run ends.
// Once ctx is done, events the consumer does not pick up are dropped so the
// worker can reach its cancellation check without anyone reading.
func (r *Runner) Start(ctx context.Context, req types.RunRequest) *Handle {
	h := &Handle{
		events: make(chan types.ProgressEvent, eventBuffer),
		done:   make(chan struct{}),
	}
	go func() {
		defer close(h.done)
		defer close(h.events)
		h.result, h.err = r.Run(ctx, req, func(e types.ProgressEvent) {
			select {
			case h.events <- e:
			case <-ctx.Done():
			}
		})
	}()
	return h
}

// Events returns the progress channel. It is closed when the run ends.
func (h *Handle) Events() <-chan types.ProgressEvent {
	return h.events
}

// Done is closed once the run has ended and Wait will not block.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait discards any undelivered events, blocks until the run ends, and
// returns its result.
func (h *Handle) Wait() (Result, error) {
	for range h.events {
	}
	<-h.done
	return h.result, h.err
}
