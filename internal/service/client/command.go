package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"

	"github.com/oshokin/alarm-clock/internal/api/grpc/alarmclock"
	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/repository/pidfile"
	"github.com/oshokin/alarm-clock/internal/service/common"
)

// Options configures the client commands.
type Options struct {
	// ConfigPath to YAML settings file, defaults to standard filename if empty.
	ConfigPath string
	// Address overrides the daemon address from the PID file and config.
	Address string
	// JSON switches output to protobuf JSON.
	JSON bool
	// Out receives command output; stdout when nil.
	Out io.Writer
}

var (
	// ErrDaemonNotRunning is returned when no live daemon is recorded in the PID file.
	ErrDaemonNotRunning = errors.New("alarm clock daemon is not running")
	// errTimeArgs is returned for a wrong number of time arguments.
	errTimeArgs = errors.New("expected HH:MM:SS or HH MM SS")
)

// Add schedules an alarm from "HH:MM:SS", "HH:MM" or three separate components.
func Add(ctx context.Context, opts *Options, args []string) error {
	t, err := ParseTimeArgs(args)
	if err != nil {
		return err
	}

	return withClient(ctx, opts, func(ctx context.Context, client *common.Client) error {
		entry, err := client.AddAlarm(ctx, t)
		if err != nil {
			return err
		}

		if opts.JSON {
			return printJSON(opts.out(), entry)
		}

		decoded, err := alarmclock.EntryFromStruct(entry)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintf(opts.out(), "Alarm set for %s (%s)\n", decoded.Label, decoded.ScheduledAt.Format("2006-01-02"))

		return err
	})
}

// List prints the pending alarms.
func List(ctx context.Context, opts *Options) error {
	return withClient(ctx, opts, func(ctx context.Context, client *common.Client) error {
		list, err := client.ListAlarms(ctx)
		if err != nil {
			return err
		}

		if opts.JSON {
			return printJSON(opts.out(), list)
		}

		entries, err := alarmclock.EntriesFromList(list)
		if err != nil {
			return err
		}

		return printEntries(opts.out(), entries)
	})
}

// Remove deletes the first alarm with label.
func Remove(ctx context.Context, opts *Options, label string) error {
	return withClient(ctx, opts, func(ctx context.Context, client *common.Client) error {
		removed, err := client.RemoveAlarm(ctx, strings.TrimSpace(label))
		if err != nil {
			return err
		}

		if removed {
			_, err = fmt.Fprintf(opts.out(), "Alarm %s removed\n", label)
		} else {
			_, err = fmt.Fprintf(opts.out(), "No alarm %s\n", label)
		}

		return err
	})
}

// Stop silences the sounding alarm.
func Stop(ctx context.Context, opts *Options) error {
	return withClient(ctx, opts, func(ctx context.Context, client *common.Client) error {
		stopped, err := client.StopSound(ctx)
		if err != nil {
			return err
		}

		if stopped {
			_, err = fmt.Fprintln(opts.out(), "Alarm stopped")
		} else {
			_, err = fmt.Fprintln(opts.out(), "Nothing is sounding")
		}

		return err
	})
}

// ParseTimeArgs accepts "HH:MM:SS", "HH:MM" or "HH MM SS".
func ParseTimeArgs(args []string) (alarm.TimeOfDay, error) {
	switch len(args) {
	case 1:
		return alarm.ParseClock(args[0])
	case 3:
		return alarm.ParseTimeOfDay(args[0], args[1], args[2])
	default:
		return alarm.TimeOfDay{}, errTimeArgs
	}
}

// out returns the output writer.
func (o *Options) out() io.Writer {
	if o.Out == nil {
		return os.Stdout
	}

	return o.Out
}

// withClient connects to the daemon, runs fn and closes the connection.
func withClient(ctx context.Context, opts *Options, fn func(ctx context.Context, client *common.Client) error) error {
	client, err := connect(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		_ = client.Close()
	}()

	return fn(ctx, client)
}

// connect resolves the daemon address and dials it.
func connect(ctx context.Context, opts *Options) (*common.Client, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	address, err := resolveAddress(ctx, cfg, opts.Address)
	if err != nil {
		return nil, err
	}

	clientOpts := []common.Option{common.WithCallTimeout(cfg.Timeout)}

	// Identify current user and hostname for the daemon's log.
	if actor, actorErr := common.DetectActor(); actorErr == nil {
		clientOpts = append(clientOpts, common.WithActor(actor))
	} else {
		logger.DebugKV(ctx, "Unable to detect actor", "error", actorErr)
	}

	logger.Debugf(ctx, "Connecting to daemon at %s", address)

	return common.Dial(ctx, address, clientOpts...)
}

// resolveAddress picks the daemon address: the override, else the address
// the running daemon recorded, else the configured one. Without an override
// a missing daemon is reported as ErrDaemonNotRunning.
func resolveAddress(ctx context.Context, cfg *config.Config, override string) (string, error) {
	if override != "" {
		return override, nil
	}

	rec, err := pidfile.New(cfg.PIDFile).Running(ctx)

	switch {
	case errors.Is(err, pidfile.ErrNotFound):
		return "", fmt.Errorf("%w (no live process in %s)", ErrDaemonNotRunning, cfg.PIDFile)
	case err != nil:
		return "", err
	case rec.ListenAddress != "":
		return rec.ListenAddress, nil
	default:
		return cfg.ListenAddress, nil
	}
}

// printEntries writes a table of entries.
func printEntries(w io.Writer, entries []alarm.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No alarms")
		return err
	}

	table := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintln(table, "TIME\tDATE\tID")

	for _, entry := range entries {
		_, _ = fmt.Fprintf(table, "%s\t%s\t%s\n", entry.Label, entry.ScheduledAt.Format("2006-01-02"), entry.ID)
	}

	return table.Flush()
}

// printJSON writes message as one line of protobuf JSON.
func printJSON(w io.Writer, message proto.Message) error {
	data, err := protojson.Marshal(message)
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}
