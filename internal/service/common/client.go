//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/oshokin/alarm-clock/internal/api/grpc/alarmclock"
	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// Client wraps the AlarmClock gRPC client with convenience helpers.
type Client struct {
	// conn is the underlying gRPC connection to the daemon.
	conn *grpc.ClientConn
	// api is the AlarmClock client stub.
	api alarmclock.AlarmClockClient

	// callTimeout is the default timeout for individual unary calls.
	callTimeout time.Duration
	// actor is attached to every call when set.
	actor string
}

// Option configures client behaviour.
type Option func(*Client)

// WithCallTimeout sets a default timeout for unary calls.
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.callTimeout = timeout
		}
	}
}

// WithActor identifies the caller to the daemon.
func WithActor(actor Actor) Option {
	return func(c *Client) {
		c.actor = actor.String()
	}
}

// errAddressRequired is returned when a required address value is missing.
var errAddressRequired = errors.New("address must be provided")

// Dial creates a client for the daemon at address.
// Note: this uses insecure transport credentials; the daemon listens on
// loopback by default.
func Dial(_ context.Context, address string, opts ...Option) (*Client, error) {
	if address == "" {
		return nil, errAddressRequired
	}

	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial alarm clock daemon: %w", err)
	}

	client := &Client{
		conn:        conn,
		api:         alarmclock.NewAlarmClockClient(conn),
		callTimeout: config.DefaultTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}

	return c.conn.Close()
}

// AddAlarm schedules an alarm and returns the created entry message.
func (c *Client) AddAlarm(ctx context.Context, t alarm.TimeOfDay) (*structpb.Struct, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	entry, err := c.api.AddAlarm(callCtx, alarmclock.TimeOfDayToStruct(t))
	if err != nil {
		return nil, fmt.Errorf("add alarm: %w", err)
	}

	return entry, nil
}

// RemoveAlarm removes the first alarm with label and reports whether one existed.
func (c *Client) RemoveAlarm(ctx context.Context, label string) (bool, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	removed, err := c.api.RemoveAlarm(callCtx, wrapperspb.String(label))
	if err != nil {
		return false, fmt.Errorf("remove alarm: %w", err)
	}

	return removed.GetValue(), nil
}

// ListAlarms returns the pending alarms.
func (c *Client) ListAlarms(ctx context.Context) (*structpb.ListValue, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	list, err := c.api.ListAlarms(callCtx, new(emptypb.Empty))
	if err != nil {
		return nil, fmt.Errorf("list alarms: %w", err)
	}

	return list, nil
}

// StopSound silences the sounding alarm and reports whether one was sounding.
func (c *Client) StopSound(ctx context.Context) (bool, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	stopped, err := c.api.StopSound(callCtx, new(emptypb.Empty))
	if err != nil {
		return false, fmt.Errorf("stop sound: %w", err)
	}

	return stopped.GetValue(), nil
}

// WatchEvents opens the event stream and returns once the daemon has
// subscribed. The stream lives as long as ctx.
//
//nolint:ireturn // grpc's generic stream interface.
func (c *Client) WatchEvents(ctx context.Context) (grpc.ServerStreamingClient[structpb.Struct], error) {
	stream, err := c.api.WatchEvents(c.withActor(ctx), new(emptypb.Empty))
	if err != nil {
		return nil, fmt.Errorf("watch events: %w", err)
	}

	if _, err = stream.Header(); err != nil {
		return nil, fmt.Errorf("watch events: %w", err)
	}

	return stream, nil
}

// callContext returns a context with the client's call timeout if configured,
// otherwise a cancellable child context without a deadline.
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx = c.withActor(ctx)

	if c.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.callTimeout)
}

// withActor attaches the caller identity as outgoing metadata.
func (c *Client) withActor(ctx context.Context) context.Context {
	if c.actor == "" {
		return ctx
	}

	return metadata.AppendToOutgoingContext(ctx, alarmclock.ActorMetadataKey, c.actor)
}
