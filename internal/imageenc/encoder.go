package imageenc

import (
	"context"
	"errors"
	"sync"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
)

var (
	ErrNotRunning = errors.New("image encoder is not running")
	ErrQueueFull  = errors.New("image encoder queue is full")
)

// Job asks for one file to be encoded on behalf of a draft.
type Job struct {
	Path  string
	Token domain.DraftToken
}

// Result is delivered once per job, in completion order.
type Result struct {
	Job     Job
	DataURL string
	Err     error
}

// Handler receives results on the encoder goroutine.
type Handler func(Result)

// Option configures the encoder.
type Option func(*Encoder)

// WithMaxBytes sets the largest file the encoder accepts.
func WithMaxBytes(n int64) Option {
	return func(e *Encoder) {
		e.maxBytes = n
	}
}

// WithQueueSize sets how many jobs may wait behind the one in progress.
func WithQueueSize(n int) Option {
	return func(e *Encoder) {
		e.queueSize = n
	}
}

// Encoder runs encode jobs one at a time in the background.
type Encoder struct {
	handler   Handler
	log       *logger.Logger
	maxBytes  int64
	queueSize int

	mu      sync.Mutex
	jobs    chan Job
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// New creates an encoder that reports results to handler.
func New(handler Handler, log *logger.Logger, opts ...Option) *Encoder {
	e := &Encoder{
		handler:   handler,
		log:       log,
		maxBytes:  DefaultMaxBytes,
		queueSize: 4,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start launches the worker. Non-blocking.
func (e *Encoder) Start(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running {
		e.log.Warn("image encoder already running")
		return
	}

	childCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.jobs = make(chan Job, e.queueSize)
	e.done = make(chan struct{})
	e.running = true

	go e.loop(childCtx, e.jobs, e.done)

	e.log.Info("image encoder started (max=%d bytes, queue=%d)", e.maxBytes, e.queueSize)
}

// Stop shuts the worker down and waits for it to exit. Queued jobs are
// dropped without a result.
func (e *Encoder) Stop() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	e.cancel()
	e.running = false
	done := e.done
	e.mu.Unlock()

	<-done
	e.log.Info("image encoder stopped")
}

// Submit queues a job without blocking.
func (e *Encoder) Submit(job Job) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return ErrNotRunning
	}
	select {
	case e.jobs <- job:
		e.log.Debug("queued image %s for draft %d", job.Path, job.Token)
		return nil
	default:
		return ErrQueueFull
	}
}

func (e *Encoder) loop(ctx context.Context, jobs <-chan Job, done chan<- struct{}) {
	defer close(done)

	for {
		select {
		case <-ctx.Done():
			return
		case job := <-jobs:
			url, err := EncodeFile(job.Path, e.maxBytes)
			if ctx.Err() != nil {
				return
			}
			if err != nil {
				e.log.Debug("encoding %s failed: %v", job.Path, err)
			} else {
				e.log.Debug("encoded %s (%d chars) for draft %d", job.Path, len(url), job.Token)
			}
			e.handler(Result{Job: job, DataURL: url, Err: err})
		}
	}
}
