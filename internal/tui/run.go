package tui

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/service/engine"
)

// Options controls the terminal interface.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
}

// Run starts an in-process engine and the interface, and blocks until the
// user quits or ctx is canceled.
func Run(ctx context.Context, opts *Options) error {
	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	// The terminal belongs to the interface; logs go to a rotating file.
	logger.Redirect(logger.FileSyncer(settings.LogFile))

	ctx = logger.WithName(ctx, "alarm-clock-tui")

	eng, err := engine.NewFromConfig(settings, os.Stdout)
	if err != nil {
		return fmt.Errorf("initialise engine: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return eng.Run(groupCtx)
	})

	group.Go(func() error {
		// Quitting the interface stops the engine.
		defer cancel()

		program := tea.NewProgram(
			NewModel(groupCtx, eng, nil),
			tea.WithAltScreen(),
			tea.WithContext(groupCtx),
		)

		if _, runErr := program.Run(); runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
			return fmt.Errorf("run interface: %w", runErr)
		}

		return nil
	})

	if err = group.Wait(); err != nil {
		return err
	}

	logger.Info(ctx, "Interface closed")

	return nil
}
