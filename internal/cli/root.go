package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"thumbline/internal/config"
	"thumbline/internal/eventbus"
	"thumbline/internal/logging"
	"thumbline/internal/source"
	"thumbline/internal/ui"
)

// NewRootCmd creates the root Cobra command. The positional argument is a
// line-oriented file to browse; without one, a synthetic collection of
// --count items is generated.
func NewRootCmd(version string) *cobra.Command {
	var (
		configPath string
		count      int
		debug      bool
		logLevel   string
		logFile    string
	)

	cmd := &cobra.Command{
		Use:     "thumbline [file]",
		Short:   "Browse large collections with an index-tracking scroll indicator",
		Long:    "thumbline is a terminal viewer for large line-oriented collections.\nIts scroll indicator tracks the visible item range rather than pixel offsets,\nso it stays accurate even when item extents are unknown up front.",
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args, configPath, count, debug, logLevel, logFile)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	cmd.Flags().IntVarP(&count, "count", "n", 10000, "number of generated items when no file is given")
	cmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging to stderr")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	cmd.Flags().StringVar(&logFile, "log-file", "", "log file path")

	return cmd
}

// run wires the bus, config, source service and UI together and runs the
// program until quit or signal.
func run(ctx context.Context, args []string, configPath string, count int, debug bool, logLevel, logFile string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	bus := eventbus.New()

	// Load configuration
	configSvc := config.NewConfigServiceWithBus(bus)
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = configSvc.LoadFromPath(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	} else {
		cfg, err = configSvc.Load()
		if err != nil {
			log.Warn().Err(err).Msg("error loading config, using defaults")
			cfg = config.DefaultConfig()
		}
	}

	// Subscribe to config changes to save automatically. The handler works
	// on its own copy; the UI owns the live config.
	base := *cfg
	bus.Subscribe(eventbus.EventConfigChanged, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ConfigChangedEvent); ok {
			saved := base
			saved.Indicator.Enabled = event.IndicatorEnabled
			saved.List.ShowPositionIndicator = event.ShowPositionIndicator
			var err error
			if configPath != "" {
				err = configSvc.SaveToPath(&saved, configPath)
			} else {
				err = configSvc.Save(&saved)
			}
			if err != nil {
				log.Warn().Err(err).Msg("failed to save config")
			}
		}
	})

	// CLI flags override config
	if logLevel == "" {
		logLevel = cfg.Logging.Level
	}
	if logFile == "" {
		logFile = cfg.Logging.File
	}
	cleanup, err := logging.Setup(logLevel, logFile, debug)
	if err != nil {
		return err
	}
	defer cleanup()

	// Create UI model and program
	uiModel := ui.NewModel(bus, cfg)
	p := tea.NewProgram(uiModel, tea.WithAltScreen())
	uiModel.SetProgram(p)

	// Readiness marker for the e2e harness
	if os.Getenv("THUMBLINE_E2E_TEST") != "" {
		fmt.Println("__READY__")
	}

	// Forward domain events to the UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			// Channel full, drop event
			log.Warn().Str("event", string(e.Type())).Msg("event channel full, dropping event")
		}
	}
	bus.Subscribe(eventbus.EventLoadStarted, forward)
	bus.Subscribe(eventbus.EventItemBatchLoaded, forward)
	bus.Subscribe(eventbus.EventLoadCompleted, forward)
	bus.Subscribe(eventbus.EventError, forward)

	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	// Start loading items
	srcSvc := source.NewService(bus)
	if len(args) > 0 {
		err = srcSvc.StartLoad(ctx, args[0])
	} else {
		err = srcSvc.StartGenerate(ctx, count)
	}
	if err != nil {
		return fmt.Errorf("failed to start item load: %w", err)
	}

	// Run the UI
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}

	// Cleanup
	srcSvc.StopLoad()
	close(eventChan)
	cancel()
	return nil
}
