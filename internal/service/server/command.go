package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	api "github.com/oshokin/alarm-clock/internal/api/grpc/alarmclock"
	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/repository/pidfile"
	"github.com/oshokin/alarm-clock/internal/service/engine"
)

// Options controls the alarm clock daemon.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// ListenAddress overrides the configured listen address; a bare port
	// keeps the configured host.
	ListenAddress string
	// Bell is where the terminal bell player rings; stdout when nil.
	Bell io.Writer
}

// ErrNoListenAddress indicates missing listen configuration.
var ErrNoListenAddress = errors.New("no listen address configured")

// Run starts the engine and the gRPC server and blocks until ctx is canceled
// or one of them fails.
//
//nolint:funlen // Startup and shutdown read best in one place.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "alarm-clock-daemon")

	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	listenAddress, err := resolveListenAddress(settings.ListenAddress, opts.ListenAddress)
	if err != nil {
		return fmt.Errorf("resolve listen address: %w", err)
	}

	bell := opts.Bell
	if bell == nil {
		bell = os.Stdout
	}

	eng, err := engine.NewFromConfig(settings, bell)
	if err != nil {
		return fmt.Errorf("initialise engine: %w", err)
	}

	lc := net.ListenConfig{}

	lis, err := lc.Listen(ctx, "tcp", listenAddress)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", listenAddress, err)
	}

	pid := pidfile.New(settings.PIDFile)

	record := &pidfile.Record{
		PID:           os.Getpid(),
		ListenAddress: lis.Addr().String(),
		StartedAt:     time.Now(),
	}

	if err = pid.Acquire(ctx, record); err != nil {
		_ = lis.Close()
		return err
	}

	defer func() {
		if removeErr := pid.Remove(context.WithoutCancel(ctx)); removeErr != nil {
			logger.WarnKV(ctx, "Unable to remove PID file", "error", removeErr)
		}
	}()

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(api.UnaryLogging()),
		grpc.ChainStreamInterceptor(api.StreamLogging()),
	)
	api.RegisterAlarmClockServer(grpcServer, api.NewServer(eng))

	logger.InfoKV(
		ctx,
		"Alarm clock listening",
		"listen_address", record.ListenAddress,
		"pid_file", pid.Path(),
		"player", settings.Sound.Player,
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return eng.Run(groupCtx)
	})

	group.Go(func() error {
		if serveErr := grpcServer.Serve(lis); serveErr != nil && !errors.Is(serveErr, grpc.ErrServerStopped) {
			return fmt.Errorf("serve gRPC: %w", serveErr)
		}

		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info(ctx, "Shutting down gRPC server")

		// Watch streams end once the engine closes their subscriptions.
		grpcServer.GracefulStop()

		return nil
	})

	if err = group.Wait(); err != nil {
		return err
	}

	logger.Info(ctx, "Alarm clock stopped")

	return nil
}

// resolveListenAddress determines the listen address for the gRPC server.
// An override wins; a port-only override ("9090" or ":9090") keeps the
// configured host.
func resolveListenAddress(configAddr, override string) (string, error) {
	if override == "" {
		if configAddr == "" {
			return "", ErrNoListenAddress
		}

		return configAddr, nil
	}

	port := override
	if override[0] == ':' {
		port = override[1:]
	}

	if _, err := strconv.ParseUint(port, 10, 16); err != nil {
		// A full host:port override.
		return override, nil
	}

	host, _, err := net.SplitHostPort(configAddr)
	if err != nil {
		return "", fmt.Errorf("invalid listen address format %q: %w", configAddr, err)
	}

	return net.JoinHostPort(host, port), nil
}
