package engine

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oshokin/alarm-clock/internal/clock"
	"github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/service/notify"
	"github.com/oshokin/alarm-clock/internal/service/sound"
)

// maxCatchUp bounds how many skipped seconds a late tick still checks.
const maxCatchUp = 10 * time.Second

var (
	// ErrStopped is returned by commands submitted after Run returned.
	ErrStopped = errors.New("engine stopped")
	// errAlreadyRunning is returned by a second call to Run.
	errAlreadyRunning = errors.New("engine is already running")
)

// Options wires the engine's collaborators.
type Options struct {
	// Clock is the time source; clock.Real when nil.
	Clock clock.Clock
	// TickInterval is the ticker cadence; one second when zero.
	TickInterval time.Duration
	// Player makes the beeps; silent when nil.
	Player sound.Player
	// Sound shapes the alarm sequence.
	Sound sound.Options
	// Notifier shows the visible notification; log-only when nil.
	Notifier notify.Notifier
}

// Engine is the alarm clock core. Create it with New and start it with Run.
type Engine struct {
	// clock is the time source.
	clock clock.Clock
	// interval is the ticker cadence.
	interval time.Duration
	// registry holds pending alarms; touched only by the loop goroutine.
	registry *alarm.Registry
	// sound plays and stops the audible alert.
	sound *sound.Controller
	// notifier shows the visible alert.
	notifier notify.Notifier
	// events fans state changes out to subscribers.
	events *hub

	// commands carries work into the loop goroutine.
	commands chan func(ctx context.Context)
	// done is closed when Run returns.
	done chan struct{}
	// running guards against a second Run.
	running atomic.Bool
	// notifications tracks in-flight notifier calls.
	notifications sync.WaitGroup

	// lastTick is the last whole second checked; loop-only.
	lastTick time.Time
}

// New creates an engine. Nothing runs until Run is called.
func New(opts Options) *Engine {
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}

	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second
	}

	if opts.Notifier == nil {
		opts.Notifier = notify.Log{}
	}

	e := &Engine{
		clock:    opts.Clock,
		interval: opts.TickInterval,
		registry: alarm.NewRegistry(opts.Clock.Now),
		notifier: opts.Notifier,
		events:   newHub(),
		commands: make(chan func(ctx context.Context)),
		done:     make(chan struct{}),
	}

	e.sound = sound.NewController(opts.Player, opts.Sound, e.onSoundingEnded)

	return e
}

// Run ticks the clock and serves commands until ctx is canceled.
func (e *Engine) Run(ctx context.Context) error {
	if !e.running.CompareAndSwap(false, true) {
		return errAlreadyRunning
	}

	ctx = logger.WithName(ctx, "engine")

	ticker := e.clock.NewTicker(e.interval)

	defer func() {
		ticker.Stop()
		close(e.done)
		e.sound.Stop()
		e.sound.Wait()
		e.notifications.Wait()
		e.events.close()
	}()

	logger.InfoKV(ctx, "Clock started", "tick_interval", e.interval.String())

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Clock stopped")
			return nil
		case now := <-ticker.C():
			e.onTick(ctx, now)
		case cmd := <-e.commands:
			cmd(ctx)
		}
	}
}

// Done is closed after Run returns.
func (e *Engine) Done() <-chan struct{} {
	return e.done
}

// OnTick runs a due check for now on the loop goroutine, exactly as a
// ticker tick would. Presentations that drive their own clock use it.
func (e *Engine) OnTick(ctx context.Context, now time.Time) error {
	return e.do(ctx, func(loopCtx context.Context) {
		e.onTick(loopCtx, now)
	})
}

// Add schedules the next occurrence of t.
func (e *Engine) Add(ctx context.Context, t alarm.TimeOfDay) (alarm.Entry, error) {
	var (
		entry  alarm.Entry
		addErr error
	)

	err := e.do(ctx, func(loopCtx context.Context) {
		entry, addErr = e.registry.Add(t)
		if addErr != nil {
			return
		}

		logger.InfoKV(loopCtx, "Alarm set", "label", entry.Label, "scheduled_at", entry.ScheduledAt)
		e.publish(EventAdded, entry)

		// The loop never revisits a second it has already checked.
		if !e.lastTick.IsZero() && !entry.ScheduledAt.After(e.lastTick) {
			e.registry.CheckAndFire(e.lastTick, func(due alarm.Entry) { e.fire(loopCtx, due, e.clock.Now()) })
		}
	})
	if err != nil {
		return alarm.Entry{}, err
	}

	return entry, addErr
}

// Remove deletes the first alarm with label. Unknown labels are a no-op.
func (e *Engine) Remove(ctx context.Context, label string) (bool, error) {
	return e.remove(ctx, label, func(r *alarm.Registry) (bool, error) {
		return r.Remove(label), nil
	})
}

// RemoveSelected deletes the selected alarm; an empty label means nothing
// is selected and yields alarm.ErrSelectionRequired.
func (e *Engine) RemoveSelected(ctx context.Context, label string) (bool, error) {
	return e.remove(ctx, label, func(r *alarm.Registry) (bool, error) {
		return r.RemoveSelected(label)
	})
}

// List returns the pending alarms in registry order.
func (e *Engine) List(ctx context.Context) ([]alarm.Entry, error) {
	var entries []alarm.Entry

	err := e.do(ctx, func(context.Context) {
		entries = e.registry.Entries()
	})

	return entries, err
}

// Labels returns the pending alarm labels in registry order.
func (e *Engine) Labels(ctx context.Context) ([]string, error) {
	var labels []string

	err := e.do(ctx, func(context.Context) {
		labels = e.registry.List()
	})

	return labels, err
}

// Stop silences the sounding alarm. It reports whether anything was sounding.
func (e *Engine) Stop() bool {
	return e.sound.Stop()
}

// Sounding reports whether an alarm is currently sounding.
func (e *Engine) Sounding() bool {
	return e.sound.IsSounding()
}

// Subscribe starts receiving events.
func (e *Engine) Subscribe() *Subscription {
	return e.events.subscribe()
}

// remove runs a removal on the loop and publishes EventRemoved on success.
func (e *Engine) remove(
	ctx context.Context,
	label string,
	fn func(r *alarm.Registry) (bool, error),
) (bool, error) {
	var (
		removed   bool
		removeErr error
	)

	err := e.do(ctx, func(loopCtx context.Context) {
		removed, removeErr = fn(e.registry)
		if !removed {
			return
		}

		logger.InfoKV(loopCtx, "Alarm removed", "label", label)
		e.publish(EventRemoved, alarm.Entry{Label: label})
	})
	if err != nil {
		return false, err
	}

	return removed, removeErr
}

// do executes fn on the loop goroutine and waits for it.
func (e *Engine) do(ctx context.Context, fn func(loopCtx context.Context)) error {
	finished := make(chan struct{})

	select {
	case e.commands <- func(loopCtx context.Context) {
		defer close(finished)
		fn(loopCtx)
	}:
	case <-e.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	// The loop runs accepted commands to completion.
	<-finished

	return nil
}

// onTick checks the current second plus any seconds skipped since the
// previous tick, bounded by maxCatchUp.
func (e *Engine) onTick(ctx context.Context, now time.Time) {
	current := now.Truncate(time.Second)

	if !e.lastTick.IsZero() && current.Sub(e.lastTick) > time.Second {
		from := e.lastTick.Add(time.Second)

		if window := current.Add(-maxCatchUp); from.Before(window) {
			for _, entry := range e.registry.DropBefore(window) {
				logger.WarnKV(ctx, "Alarm missed, clock jumped past it", "label", entry.Label)
				e.publish(EventExpired, entry)
			}

			from = window
		}

		for second := from; second.Before(current); second = second.Add(time.Second) {
			e.registry.CheckAndFire(second, func(entry alarm.Entry) { e.fire(ctx, entry, now) })
		}
	}

	if current.After(e.lastTick) {
		e.lastTick = current
	}

	e.registry.CheckAndFire(current, func(entry alarm.Entry) { e.fire(ctx, entry, now) })
}

// fire notifies, publishes the fired event and starts sounding.
func (e *Engine) fire(ctx context.Context, entry alarm.Entry, now time.Time) {
	logger.InfoKV(ctx, "Alarm fired", "label", entry.Label, "id", entry.ID)

	// Desktop notification services may be slow; never stall the loop on them.
	e.notifications.Add(1)

	go func() {
		defer e.notifications.Done()

		if err := e.notifier.Notify(ctx, entry.Label); err != nil {
			logger.WarnKV(ctx, "Notification failed", "label", entry.Label, "error", err)
		}
	}()

	// Fired goes out before the sequence can possibly end.
	e.events.publish(Event{
		Kind:  EventFired,
		Entry: entry,
		At:    now,
	})

	e.sound.Start(ctx, entry.Label)
}

// onSoundingEnded is called by the sound controller from its worker.
func (e *Engine) onSoundingEnded(label string, stopped bool) {
	e.events.publish(Event{
		Kind:    EventSoundingEnded,
		Entry:   alarm.Entry{Label: label},
		At:      e.clock.Now(),
		Stopped: stopped,
	})
}

// publish emits an event stamped with the current time.
func (e *Engine) publish(kind EventKind, entry alarm.Entry) {
	e.events.publish(Event{
		Kind:  kind,
		Entry: entry,
		At:    e.clock.Now(),
	})
}
