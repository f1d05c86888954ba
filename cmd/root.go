package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/meysamhadeli/zendocs/cache"
	"github.com/meysamhadeli/zendocs/config"
	"github.com/meysamhadeli/zendocs/constants/lipgloss"
	"github.com/meysamhadeli/zendocs/presenter"
	"github.com/meysamhadeli/zendocs/transport"
	"github.com/meysamhadeli/zendocs/transport/contracts"
	"github.com/spf13/cobra"
)

// RootDependencies holds everything the subcommands share.
type RootDependencies struct {
	Config    *config.Config
	Cwd       string
	Logger    *slog.Logger
	Transport contracts.ITransportClient
	// Cache is nil when enable_cache is false.
	Cache     *cache.ReportCache
	Presenter *presenter.Presenter
}

var rootCmd = &cobra.Command{
	Use:   "zendocs",
	Short: "Generate documentation for a zipped JavaScript/TypeScript project.",
	Long: `zendocs uploads a ZIP archive of a project to a documentation service and renders
the returned per-file documentation in the terminal. Generated reports are cached so they
can be shown again or exported as a markdown or HTML artifact without re-uploading.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if version, _ := cmd.Flags().GetBool("version"); version {
			fmt.Println(lipgloss.BlueSky.Render(fmt.Sprintf("zendocs version: %s", config.DefaultConfig.Version)))
			return nil
		}
		return cmd.Help()
	},
}

func init() {
	config.InitFlags(rootCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, lipgloss.Red.Render(presenter.Describe(err)))
		os.Exit(1)
	}
}

func handleRootCommand(cmd *cobra.Command) (*RootDependencies, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current working directory: %w", err)
	}

	cfg, err := config.LoadConfigs(cmd.Root(), cwd)
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	deps := &RootDependencies{
		Config: cfg,
		Cwd:    cwd,
		Logger: logger,
		Transport: transport.NewHTTPClient(&transport.HTTPConfig{
			BaseURL: cfg.BaseURL,
			Timeout: cfg.Timeout,
			Logger:  logger,
		}),
		Presenter: presenter.New(cmd.OutOrStdout(), presenter.Options{
			Theme:        cfg.Theme,
			PreviewLimit: cfg.PreviewLimit,
		}),
	}

	if cfg.EnableCache {
		deps.Cache, err = cache.NewReportCache(cfg.CacheDir)
		if err != nil {
			return nil, err
		}
	}

	logger.Debug("zendocs configured",
		"base_url", cfg.BaseURL,
		"timeout", cfg.Timeout.String(),
		"cache_enabled", cfg.EnableCache,
	)

	return deps, nil
}

func newLogger(logLevel string) *slog.Logger {
	level := slog.LevelWarn
	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func requireCache(deps *RootDependencies) (*cache.ReportCache, error) {
	if deps.Cache == nil {
		return nil, fmt.Errorf("report cache is disabled; enable it with --enable_cache")
	}
	return deps.Cache, nil
}
