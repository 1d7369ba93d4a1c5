package taskqueue

import (
	"context"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/goliatone/go-datakit/internal/logging"
	"github.com/goliatone/go-datakit/pkg/interfaces"
)

// Config captures the throttling knobs for a queue. Zero values disable the
// corresponding gate.
type Config struct {
	// Limit caps the number of jobs running simultaneously. Zero means
	// unlimited.
	Limit int
	// Interval is the minimum wall-clock time between successive job
	// starts. Zero disables spacing.
	Interval time.Duration
}

// Validate enforces non-negative throttling values.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Limit, validation.Min(0)),
		validation.Field(&c.Interval, validation.Min(time.Duration(0))),
	)
}

// Queue is a FIFO task queue. All bookkeeping is confined behind one mutex;
// only the jobs themselves run concurrently.
type Queue struct {
	mu        sync.Mutex
	cfg       Config
	policy    StartPolicy
	pending   []*task
	running   int
	started   bool
	lastStart time.Time
	timer     *time.Timer
	clock     func() time.Time
	newTimer  func(time.Duration, func()) *time.Timer
	logger    interfaces.Logger
	tags      *TagSequence
}

// Option configures a queue.
type Option func(*Queue)

// WithConcurrencyLimit caps simultaneous running jobs. Non-positive values
// are ignored.
func WithConcurrencyLimit(limit int) Option {
	return func(q *Queue) {
		if limit > 0 {
			q.cfg.Limit = limit
		}
	}
}

// WithInterval enforces a minimum time between job starts. Non-positive
// values are ignored.
func WithInterval(interval time.Duration) Option {
	return func(q *Queue) {
		if interval > 0 {
			q.cfg.Interval = interval
		}
	}
}

// WithClock overrides the internal clock, used mainly for tests. Interval
// retry timers are still armed through the timer factory, so pair this with
// WithTimerFactory when a test needs to control when retries fire.
func WithClock(clock func() time.Time) Option {
	return func(q *Queue) {
		if clock != nil {
			q.clock = clock
		}
	}
}

// WithTimerFactory overrides how interval retry timers are armed. The
// default is time.AfterFunc.
func WithTimerFactory(newTimer func(time.Duration, func()) *time.Timer) Option {
	return func(q *Queue) {
		if newTimer != nil {
			q.newTimer = newTimer
		}
	}
}

// WithLogger attaches a logger for queue lifecycle events.
func WithLogger(logger interfaces.Logger) Option {
	return func(q *Queue) {
		if logger != nil {
			q.logger = logger
		}
	}
}

// WithTagSequence replaces the process-wide default tag sequence.
func WithTagSequence(tags *TagSequence) Option {
	return func(q *Queue) {
		if tags != nil {
			q.tags = tags
		}
	}
}

// New builds a queue. Without options every submission starts immediately.
func New(opts ...Option) *Queue {
	q := &Queue{
		clock:    time.Now,
		newTimer: time.AfterFunc,
		logger:   logging.NoOp(),
		tags:     defaultTags,
	}
	for _, opt := range opts {
		opt(q)
	}
	q.policy = buildPolicy(q.cfg)
	return q
}

// NewWithConfig validates cfg and builds a queue from it.
func NewWithConfig(cfg Config, opts ...Option) (*Queue, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	queueOpts := make([]Option, 0, len(opts)+2)
	queueOpts = append(queueOpts, WithConcurrencyLimit(cfg.Limit), WithInterval(cfg.Interval))
	queueOpts = append(queueOpts, opts...)
	return New(queueOpts...), nil
}

// buildPolicy composes the gate pipeline: interval first, then concurrency.
func buildPolicy(cfg Config) StartPolicy {
	policies := []StartPolicy{}
	if cfg.Interval > 0 {
		policies = append(policies, startSpaced(cfg.Interval))
	}
	if cfg.Limit > 0 {
		policies = append(policies, startLimited(cfg.Limit))
	}
	if len(policies) == 0 {
		return startAlways()
	}
	return composePolicies(policies...)
}

// Stats is a point-in-time snapshot of queue activity.
type Stats struct {
	Pending int
	Running int
}

// Stats returns the current pending and running counts.
func (q *Queue) Stats() Stats {
	q.mu.Lock()
	defer q.mu.Unlock()
	return Stats{Pending: len(q.pending), Running: q.running}
}

// Submit appends a job to the queue tail and immediately attempts to start
// the queue head. The returned handle settles with the job's own outcome;
// sibling jobs are unaffected by its failure.
func (q *Queue) Submit(job Job, opts ...TaskOption) *Handle {
	cfg := taskConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	handle := &Handle{id: uuid.New(), done: make(chan struct{})}

	if job == nil {
		handle.tag = cfg.tag
		handle.settle(nil, ErrNilJob)
		return handle
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if cfg.tag == "" {
		cfg.tag = q.tags.Next()
	}
	handle.tag = cfg.tag

	q.pending = append(q.pending, &task{job: job, handle: handle})
	q.logger.Debug("task queued", "task", handle.tag, "pending", len(q.pending))
	q.attemptStart()
	return handle
}

// ClearQueue discards every queued, not-yet-started task and cancels any
// pending retry timer. Discarded handles never settle. Running jobs are
// unaffected and still settle normally.
func (q *Queue) ClearQueue() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.timer != nil {
		q.timer.Stop()
		q.timer = nil
	}
	if dropped := len(q.pending); dropped > 0 {
		q.logger.Debug("queue cleared", "dropped", dropped)
	}
	q.pending = nil
}

// attemptStart consults the policy pipeline for the queue head. The caller
// must hold q.mu. Dequeue happens only when a start actually occurs, so a
// gated head stays first in line for the next attempt.
func (q *Queue) attemptStart() {
	if len(q.pending) == 0 {
		return
	}

	now := q.clock()
	verdict := q.policy(now, gateState{
		running:    q.running,
		lastStart:  q.lastStart,
		started:    q.started,
		timerArmed: q.timer != nil,
	})

	if verdict.retryAfter > 0 {
		q.timer = q.newTimer(verdict.retryAfter, q.onTimer)
		return
	}
	if !verdict.start {
		return
	}

	next := q.pending[0]
	q.pending = q.pending[1:]
	q.running++
	q.started = true
	q.lastStart = now
	if q.timer != nil {
		q.timer.Stop()
		q.timer = nil
	}
	q.logger.Debug("task started", "task", next.handle.tag, "running", q.running)
	go q.execute(next)
}

func (q *Queue) onTimer() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.timer = nil
	q.attemptStart()
}

// execute runs a dequeued task outside the lock, settles its handle, and
// re-attempts the queue head.
func (q *Queue) execute(t *task) {
	value, err := recoverJob(context.Background(), t.job)
	t.handle.settle(value, err)

	q.mu.Lock()
	defer q.mu.Unlock()
	q.running--
	if err != nil {
		q.logger.Debug("task failed", "task", t.handle.tag, "error", err)
	} else {
		q.logger.Debug("task settled", "task", t.handle.tag)
	}
	q.attemptStart()
}
