package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/abhisek/probgen/internal/config"
	"github.com/abhisek/probgen/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "probgen [port]",
	Short: "Programming problem generation service",
	Long:  "probgen serves an HTTP API that turns problem parameters into an LLM prompt and returns a structured programming problem.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
	SilenceUsage: true,
}

func Execute() error {
	config.LoadDotEnv()
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite audit log of LLM calls (overrides PROBGEN_DB env var)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the audit log path using --db (highest priority),
// then PROBGEN_DB. An empty path means no audit log.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	p, _ := cmd.Flags().GetString("db")
	return store.ResolveDBPath(p)
}
