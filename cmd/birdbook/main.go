// Command birdbook browses and edits bird records held by a REST service.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"birdbook/internal/api"
	"birdbook/internal/config"
	"birdbook/internal/logging"
	"birdbook/internal/telemetry"
	"birdbook/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	apiURL     string
	verbose    bool
}

// env is what a subcommand needs once flags and config are resolved.
type env struct {
	cfg      *config.Config
	log      *zap.Logger
	shutdown telemetry.ShutdownFunc
	client   *api.Client
}

func (e *env) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.shutdown(ctx); err != nil {
		e.log.Warn("telemetry shutdown", zap.Error(err))
	}
	_ = e.log.Sync()
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "birdbook",
		Short: "Browse and edit bird records",
		Long: `birdbook is a terminal client for a bird records service.

With no subcommand it opens the interactive table: view, add, edit and
delete birds. Use "birdbook list" for a plain listing and
"birdbook mock-server" to run a local in-memory service.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := setup(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer e.close()
			return runTUI(cmd.Context(), e)
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultPath(), "path to config file")
	root.PersistentFlags().StringVar(&opts.apiURL, "api-url", "", "base URL of the bird service (overrides config)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug-level logging")

	root.AddCommand(newListCmd(opts), newMockServerCmd(opts))
	return root
}

// setup loads config and builds the logger, tracer and API client.
func setup(ctx context.Context, opts *rootOptions) (*env, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.apiURL != "" {
		cfg.API.BaseURL = opts.apiURL
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := logging.New(cfg.Logging, opts.verbose)
	if err != nil {
		return nil, err
	}
	tp, shutdown, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return nil, fmt.Errorf("telemetry: %w", err)
	}
	timeout, _ := cfg.RequestTimeout()

	client, err := api.New(cfg.API.BaseURL,
		api.WithTimeout(timeout),
		api.WithLogger(log),
		api.WithTracerProvider(tp),
	)
	if err != nil {
		return nil, err
	}
	log.Debug("configured", zap.String("base_url", client.BaseURL()), zap.Duration("timeout", timeout))
	return &env{cfg: cfg, log: log, shutdown: shutdown, client: client}, nil
}

func runTUI(ctx context.Context, e *env) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ui.MarkdownStyle = "light"
	if lipgloss.HasDarkBackground() {
		ui.MarkdownStyle = "dark"
	}
	model := ui.NewAppModel(ctx, e.client, e.log).AsTeaModel()
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
