package dispatch

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/exascience/pargo/parallel"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/chunkbench/internal/errors"
	"github.com/agbru/chunkbench/internal/logging"
	"github.com/agbru/chunkbench/internal/shm"
	"github.com/agbru/chunkbench/internal/worker"
)

const tracerName = "github.com/agbru/chunkbench/internal/dispatch"

// Dispatcher owns the per-run state of every strategy. It holds no state
// between calls and is safe to reuse sequentially.
type Dispatcher struct {
	launcher Launcher
	logger   logging.Logger
	recorder Recorder
	tracer   trace.Tracer
	tempDir  string
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLauncher sets how worker processes are started.
func WithLauncher(l Launcher) Option { return func(d *Dispatcher) { d.launcher = l } }

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option { return func(d *Dispatcher) { d.logger = l } }

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option { return func(d *Dispatcher) { d.recorder = r } }

// WithTracer overrides the OpenTelemetry tracer.
func WithTracer(t trace.Tracer) Option { return func(d *Dispatcher) { d.tracer = t } }

// WithTempDir sets where shared-memory regions are created.
func WithTempDir(dir string) Option { return func(d *Dispatcher) { d.tempDir = dir } }

// New creates a Dispatcher. Without WithLauncher, multi-process runs
// re-execute the current binary.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		logger:   logging.NopLogger{},
		recorder: nopRecorder{},
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Dispatcher) processLauncher() (Launcher, error) {
	if d.launcher != nil {
		return d.launcher, nil
	}
	l, err := NewSelfLauncher()
	if err != nil {
		return nil, err
	}
	d.launcher = l
	return l, nil
}

// begin opens the span for one dispatch and returns the function that
// closes it and reports the outcome.
func (d *Dispatcher) begin(ctx context.Context, workload string, mode Mode, chunks int) (context.Context, func(error)) {
	ctx, span := d.tracer.Start(ctx, "dispatch."+workload, trace.WithAttributes(
		attribute.String("workload", workload),
		attribute.String("mode", string(mode)),
		attribute.Int("chunks", chunks),
	))
	start := time.Now()
	return ctx, func(err error) {
		elapsed := time.Since(start)
		d.recorder.ObserveRun(workload, mode, chunks, elapsed, err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			// The caller reports the error itself.
			d.logger.Debug("run failed", logging.String("workload", workload), logging.String("mode", string(mode)),
				logging.Int("chunks", chunks), logging.Err(err))
		} else {
			d.logger.Debug("run finished",
				logging.String("workload", workload), logging.String("mode", string(mode)),
				logging.Int("chunks", chunks), logging.Duration("elapsed", elapsed))
		}
		span.End()
	}
}

// runThreads runs work(i) for every chunk in its own goroutine and waits for
// all of them. The left-most failure is returned; panics are reported as
// failures of the chunk that raised them.
func (d *Dispatcher) runThreads(n int, work func(chunk int) error) error {
	errs := make([]error, n)
	thunks := make([]func(), n)
	for i := range thunks {
		thunks[i] = func() {
			defer func() {
				if p := recover(); p != nil {
					errs[i] = &apperrors.WorkerError{Chunk: i, Mode: string(MultiThreaded), Cause: fmt.Errorf("panic: %v", p)}
				}
				if errs[i] != nil {
					d.recorder.WorkerFailed(MultiThreaded)
				}
			}()
			d.recorder.WorkerStarted(MultiThreaded)
			if err := work(i); err != nil {
				errs[i] = &apperrors.WorkerError{Chunk: i, Mode: string(MultiThreaded), Cause: err}
			}
		}
	}
	parallel.Do(thunks...)
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// runProcesses starts one worker process per task, waits for every started
// process and returns their replies in task order. region, when not nil, is
// inherited by every child as shm.ChildFD.
func (d *Dispatcher) runProcesses(ctx context.Context, tasks []worker.Task, region *shm.Region) ([]worker.Reply, error) {
	launcher, err := d.processLauncher()
	if err != nil {
		return nil, err
	}

	replies := make([]worker.Reply, len(tasks))
	errs := make([]error, len(tasks))
	var g errgroup.Group

	for i, task := range tasks {
		var stdin bytes.Buffer
		if err := gob.NewEncoder(&stdin).Encode(task); err != nil {
			errs[i] = fmt.Errorf("encode task: %w", err)
			continue
		}
		var stdout, stderr bytes.Buffer
		cmd := launcher.Command(ctx)
		cmd.Stdin = &stdin
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
		if region != nil {
			cmd.ExtraFiles = []*os.File{region.File()}
		}
		if err := cmd.Start(); err != nil {
			errs[i] = fmt.Errorf("start worker: %w", err)
			continue
		}
		d.recorder.WorkerStarted(MultiProcess)

		g.Go(func() error {
			waitErr := cmd.Wait()
			var reply worker.Reply
			decodeErr := gob.NewDecoder(&stdout).Decode(&reply)
			switch {
			case reply.Failure != nil:
				errs[i] = reply.Failure.Err()
			case waitErr != nil:
				errs[i] = describeExit(waitErr, stderr.String())
			case decodeErr != nil:
				errs[i] = fmt.Errorf("decode reply: %w", decodeErr)
			default:
				replies[i] = reply
				return nil
			}
			return errs[i]
		})
	}

	g.Wait()

	var first error
	for i, err := range errs {
		if err == nil {
			continue
		}
		d.recorder.WorkerFailed(MultiProcess)
		if first == nil {
			first = &apperrors.WorkerError{Chunk: i, Mode: string(MultiProcess), Cause: err}
		}
	}
	if first != nil {
		return nil, first
	}
	d.logger.Debug("workers joined", logging.Int("workers", len(tasks)))
	return replies, nil
}

func describeExit(err error, stderr string) error {
	stderr = strings.TrimSpace(stderr)
	if stderr == "" {
		return err
	}
	return fmt.Errorf("%w: %s", err, stderr)
}
