package sound

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oshokin/alarm-clock/internal/logger"
)

// Options describes one alarm sound sequence.
type Options struct {
	// FrequencyHz is the tone frequency passed to the player.
	FrequencyHz float64
	// Duration is the length of one beep.
	Duration time.Duration
	// Pause is the silence between beeps.
	Pause time.Duration
	// Repetitions is the number of beeps unless stopped early.
	Repetitions int
}

// EndFunc is called once per sequence when it ends. stopped reports
// whether Stop (or shutdown) cut it short.
type EndFunc func(label string, stopped bool)

// Controller owns the Idle -> Sounding -> Idle state.
//
// At most one sequence sounds at a time. Alarms that fire while another is
// sounding wait in a queue and play afterwards; Stop silences the current
// sequence and discards the queue.
type Controller struct {
	// player makes the individual beeps.
	player Player
	// opts is the shape of every sequence.
	opts Options
	// onEnded is notified when a sequence ends.
	onEnded EndFunc

	// mu protects current and queue.
	mu sync.Mutex
	// current is the sequence being played, nil when idle.
	current *sequence
	// queue holds labels of alarms waiting for their turn.
	queue []string

	// wg tracks worker goroutines.
	wg sync.WaitGroup
}

// sequence is one playing alarm and its "keep sounding" flag.
type sequence struct {
	label  string
	active atomic.Bool
	// cancel interrupts the beep or pause in progress.
	cancel context.CancelFunc
}

// NewController creates an idle controller.
func NewController(player Player, opts Options, onEnded EndFunc) *Controller {
	if player == nil {
		player = NopPlayer{}
	}

	if onEnded == nil {
		onEnded = func(string, bool) {}
	}

	return &Controller{
		player:  player,
		opts:    opts,
		onEnded: onEnded,
	}
}

// Start begins sounding for label, or queues it if another alarm is sounding.
// It never blocks. It reports whether the alarm was queued.
func (c *Controller) Start(ctx context.Context, label string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != nil {
		c.queue = append(c.queue, label)
		logger.Infof(ctx, "Alarm %s queued behind the sounding one (%d waiting)", label, len(c.queue))

		return true
	}

	c.launchLocked(ctx, label)

	return false
}

// Stop halts the sounding sequence and drops queued alarms.
// It is idempotent and reports whether anything was sounding.
func (c *Controller) Stop() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.queue = nil

	if c.current == nil || !c.current.active.Load() {
		return false
	}

	c.current.active.Store(false)
	c.current.cancel()

	return true
}

// IsSounding reports whether a sequence is playing and has not been stopped.
func (c *Controller) IsSounding() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.current != nil && c.current.active.Load()
}

// Pending returns the number of queued alarms.
func (c *Controller) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.queue)
}

// Wait blocks until every worker has finished.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// launchLocked starts a worker for label. c.mu must be held.
func (c *Controller) launchLocked(ctx context.Context, label string) {
	seqCtx, cancel := context.WithCancel(ctx)

	seq := &sequence{label: label, cancel: cancel}
	seq.active.Store(true)
	c.current = seq

	c.wg.Add(1)

	go c.play(ctx, seqCtx, seq)
}

// play runs one sequence on its own goroutine. seqCtx ends with the
// sequence; ctx outlives it and carries the queue.
func (c *Controller) play(ctx, seqCtx context.Context, seq *sequence) {
	defer c.wg.Done()
	defer seq.cancel()

	logCtx := logger.WithKV(ctx, "label", seq.label)

	logger.Debug(logCtx, "Sounding started")

	for i := range c.opts.Repetitions {
		if !seq.active.Load() {
			break
		}

		err := c.player.Beep(seqCtx, c.opts.FrequencyHz, c.opts.Duration)
		if err != nil && seqCtx.Err() == nil {
			logger.WarnKV(logCtx, "Beep failed", "repetition", i+1, "error", err)
		}

		if !sleep(seqCtx, c.opts.Pause) {
			seq.active.Store(false)
			break
		}
	}

	// Back to Idle before anyone hears about it; the queue is handled after.
	stopped := !seq.active.Swap(false)

	logger.DebugKV(logCtx, "Sounding ended", "stopped", stopped)
	c.onEnded(seq.label, stopped)

	c.finish(ctx, seq)
}

// finish returns to Idle or starts the next queued alarm.
func (c *Controller) finish(ctx context.Context, seq *sequence) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != seq {
		return
	}

	c.current = nil

	if len(c.queue) == 0 || ctx.Err() != nil {
		c.queue = nil
		return
	}

	next := c.queue[0]
	c.queue = c.queue[1:]

	c.launchLocked(ctx, next)
}
