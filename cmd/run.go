package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/probgen/internal/config"
	"github.com/abhisek/probgen/internal/llm"
	"github.com/abhisek/probgen/internal/logging"
	"github.com/abhisek/probgen/internal/problemgen"
	"github.com/abhisek/probgen/internal/server"
	"github.com/abhisek/probgen/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve [port]",
	Short: "Run the HTTP server (default command)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
}

// runServe loads configuration, builds the generator and serves until
// SIGINT or SIGTERM.
func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Debug)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	port, warning := parsePort(args, cfg.Port)
	if warning != "" {
		logger.Warn(warning)
	}
	cfg.Port = port

	gen, cleanup, err := buildGenerator(cmd, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(cfg, gen, logger).Run(ctx)
}

// parsePort reads the port from the first positional argument. A value
// that is not a usable port number yields the fallback and a warning.
func parsePort(args []string, fallback int) (int, string) {
	if len(args) == 0 {
		return fallback, ""
	}
	port, err := strconv.Atoi(args[0])
	if err != nil || port < 1 || port > 65535 {
		return fallback, fmt.Sprintf("Invalid port number: %s. Using default port %d.", args[0], fallback)
	}
	return port, ""
}

// buildGenerator opens the optional audit store and wires the configured
// LLM provider into a problem generator. The returned cleanup closes the
// store.
func buildGenerator(cmd *cobra.Command, logger *zap.Logger) (problemgen.Generator, func(), error) {
	cleanup := func() {}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, cleanup, fmt.Errorf("resolve DB path: %w", err)
	}

	var eventRepo store.EventRepo
	if dbPath != "" {
		st, err := store.Open(dbPath)
		if err != nil {
			return nil, cleanup, fmt.Errorf("open store: %w", err)
		}
		cleanup = func() { st.Close() }
		eventRepo = st.EventRepo()
		logger.Info("Recording LLM calls", zap.String("db", dbPath))
	}

	llmCfg := llm.ConfigFromEnv()
	llmCfg.Mock.Fallback = problemgen.SampleProblem
	if err := llmCfg.Validate(); err != nil {
		cleanup()
		return nil, func() {}, fmt.Errorf("LLM provider not configured: %w", err)
	}

	provider, err := llm.NewProvider(cmd.Context(), llmCfg, logger, eventRepo)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}
	logger.Info("LLM provider ready",
		zap.String("provider", llmCfg.Provider),
		zap.String("model", provider.ModelID()),
	)

	return problemgen.New(provider, problemgen.DefaultConfig(), logger), cleanup, nil
}
