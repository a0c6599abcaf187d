package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"i18n-helper/internal/config"
	"i18n-helper/internal/index"
	"i18n-helper/internal/locator"
	"i18n-helper/internal/session"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Load()
	setLogLevel(cfg.LogLevel)

	if err := newRootCmd(cfg).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "i18n-helper",
		Short:        "Translation key lookup for t(\"key\") calls",
		Long:         "Indexes a workspace's JSON translation files and resolves, locates and checks the keys used by t(\"key\") calls.",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&cfg.Workspace, "workspace", "w", cfg.Workspace, "Workspace root containing i18n-helper.json")

	rootCmd.AddCommand(addCmd(cfg))
	rootCmd.AddCommand(lookupCmd(cfg))
	rootCmd.AddCommand(locateCmd(cfg))
	rootCmd.AddCommand(hoverCmd(cfg))
	rootCmd.AddCommand(definitionCmd(cfg))
	rootCmd.AddCommand(listCmd(cfg))
	rootCmd.AddCommand(checkCmd(cfg))
	rootCmd.AddCommand(watchCmd(cfg))
	rootCmd.AddCommand(exportCmd(cfg))

	return rootCmd
}

func setLogLevel(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		log.Warn().Str("level", level).Msg("Unknown log level, using info")
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Warn().Msg("Received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}

// openSession builds a session for the configured workspace and loads it.
func openSession(ctx context.Context, cfg *config.Config) (*session.Session, error) {
	idx := index.New(index.WithWorkers(cfg.WorkerCount))
	s, err := session.New(cfg.Workspace, idx, locator.NewLineLocator())
	if err != nil {
		return nil, err
	}
	if _, err := s.Load(ctx); err != nil {
		return nil, fmt.Errorf("load workspace %s: %w", s.Root(), err)
	}
	return s, nil
}
