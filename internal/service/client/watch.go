package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/alarm-clock/internal/api/grpc/alarmclock"
	"github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/service/common"
	"github.com/oshokin/alarm-clock/internal/service/engine"
)

// defaultRetryInterval defines the delay before reconnecting a lost watch.
const defaultRetryInterval = 1 * time.Second

// Watch prints daemon events until ctx is canceled, reconnecting after
// failures so it survives daemon restarts.
func Watch(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "alarm-clock-watch")

	// Attempt immediately before starting retry loop.
	if err := watchOnce(ctx, opts); err != nil {
		logWatchError(ctx, err)
	}

	ticker := time.NewTicker(defaultRetryInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := watchOnce(ctx, opts); err != nil {
				logWatchError(ctx, err)
			}
		}
	}
}

// watchOnce runs one stream session until it breaks.
func watchOnce(ctx context.Context, opts *Options) error {
	return withClient(ctx, opts, func(ctx context.Context, client *common.Client) error {
		stream, err := client.WatchEvents(ctx)
		if err != nil {
			return err
		}

		logger.Info(ctx, "Watching alarm events")

		for {
			msg, err := stream.Recv()
			if err != nil {
				return err
			}

			if opts.JSON {
				err = printJSON(opts.out(), msg)
			} else {
				err = printEvent(opts.out(), msg)
			}

			if err != nil {
				return err
			}
		}
	})
}

// logWatchError reports a broken session unless the user is leaving.
func logWatchError(ctx context.Context, err error) {
	if ctx.Err() != nil || status.Code(err) == codes.Canceled {
		return
	}

	if errors.Is(err, ErrDaemonNotRunning) {
		logger.Debug(ctx, "Daemon is not running, retrying")
		return
	}

	logger.Warnf(ctx, "Watch interrupted, retrying: %v", err)
}

// printEvent writes one event as a readable line.
func printEvent(w io.Writer, msg *structpb.Struct) error {
	ev, err := alarmclock.EventFromStruct(msg)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, FormatEvent(ev))

	return err
}

// FormatEvent renders an event as "HH:MM:SS kind label".
func FormatEvent(ev engine.Event) string {
	line := fmt.Sprintf("%s %-14s %s", ev.At.Format(alarm.LabelLayout), ev.Kind, ev.Entry.Label)

	if ev.Kind == engine.EventSoundingEnded && ev.Stopped {
		line += " (stopped)"
	}

	return line
}
