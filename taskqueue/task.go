package taskqueue

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// Job is a deferred unit of work. It receives a background context and
// returns the job's outcome.
type Job func(ctx context.Context) (any, error)

// ErrPending is returned by Handle.Result while the job has not settled.
var ErrPending = errors.New("taskqueue: task has not settled")

// ErrNilJob settles the handle of a submission without a job function.
var ErrNilJob = errors.New("taskqueue: job is required")

// Handle is the settleable promise paired with a submitted job. It settles
// exactly once: with the job's result on success or the job's error on
// failure. A handle whose task is discarded by ClearQueue never settles.
type Handle struct {
	id    uuid.UUID
	tag   string
	done  chan struct{}
	value any
	err   error
}

// ID returns the unique task identifier.
func (h *Handle) ID() uuid.UUID { return h.id }

// Tag returns the human-readable task tag.
func (h *Handle) Tag() string { return h.tag }

// Done is closed when the job settles.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Result returns the job outcome once settled, or ErrPending before that.
func (h *Handle) Result() (any, error) {
	select {
	case <-h.done:
		return h.value, h.err
	default:
		return nil, ErrPending
	}
}

// Wait blocks until the job settles or ctx is cancelled.
func (h *Handle) Wait(ctx context.Context) (any, error) {
	select {
	case <-h.done:
		return h.value, h.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// settle records the outcome and releases waiters. The writes happen before
// the close, so readers observing Done see a consistent result.
func (h *Handle) settle(value any, err error) {
	h.value = value
	h.err = err
	close(h.done)
}

type task struct {
	job    Job
	handle *Handle
}

// TagSequence issues monotonically increasing default task tags. The package
// owns one process-wide sequence; queues can be given their own for tests.
type TagSequence struct {
	mu   sync.Mutex
	next uint64
}

// NewTagSequence returns a sequence starting at zero.
func NewTagSequence() *TagSequence {
	return &TagSequence{}
}

// Next returns the next tag in the sequence.
func (s *TagSequence) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	tag := strconv.FormatUint(s.next, 10)
	s.next++
	return tag
}

var defaultTags = NewTagSequence()

// TaskOption adjusts a single submission.
type TaskOption func(*taskConfig)

type taskConfig struct {
	tag string
}

// WithTag overrides the auto-generated task tag.
func WithTag(tag string) TaskOption {
	return func(c *taskConfig) {
		if tag != "" {
			c.tag = tag
		}
	}
}

// recoverJob runs job and converts a panic into a job failure so a
// misbehaving job cannot take down the queue's worker goroutine.
func recoverJob(ctx context.Context, job Job) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("taskqueue: job panic: %v", r)
		}
	}()
	return job(ctx)
}
