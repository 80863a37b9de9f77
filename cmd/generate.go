package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/probgen/internal/config"
	"github.com/abhisek/probgen/internal/logging"
	"github.com/abhisek/probgen/internal/problemgen"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one problem and print it as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := requestFromFlags(cmd)
		if err != nil {
			return err
		}

		cfg, err := config.FromEnv()
		if err != nil {
			return err
		}
		logger, err := logging.New(cfg.Debug)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer logger.Sync()

		gen, cleanup, err := buildGenerator(cmd, logger)
		if err != nil {
			return err
		}
		defer cleanup()

		problem, err := gen.Generate(cmd.Context(), req)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(problem, "", "  ")
		if err != nil {
			return fmt.Errorf("encode problem: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func requestFromFlags(cmd *cobra.Command) (problemgen.GenerationRequest, error) {
	req := problemgen.DefaultRequest()
	flags := cmd.Flags()

	var err error
	if req.Difficulty, err = flags.GetString("difficulty"); err != nil {
		return req, err
	}
	if req.Category, err = flags.GetString("category"); err != nil {
		return req, err
	}
	if req.NumTestCases, err = flags.GetInt("num-test-cases"); err != nil {
		return req, err
	}
	if req.Languages, err = flags.GetStringSlice("languages"); err != nil {
		return req, err
	}
	if req.TimeLimit, err = flags.GetFloat64("time-limit"); err != nil {
		return req, err
	}
	if req.MemoryLimit, err = flags.GetFloat64("memory-limit"); err != nil {
		return req, err
	}
	if flags.Changed("instructions") {
		s, err := flags.GetString("instructions")
		if err != nil {
			return req, err
		}
		req.AdditionalInstructions = &s
	}
	return req, nil
}

func init() {
	f := generateCmd.Flags()
	f.String("difficulty", problemgen.DefaultDifficulty, "Problem difficulty")
	f.String("category", problemgen.DefaultCategory, "Problem category or topic")
	f.Int("num-test-cases", problemgen.DefaultNumTestCases, "Number of test cases")
	f.StringSlice("languages", problemgen.DefaultLanguages(), "Languages for solution templates")
	f.Float64("time-limit", problemgen.DefaultTimeLimit, "Time limit in seconds")
	f.Float64("memory-limit", problemgen.DefaultMemoryLimit, "Memory limit in megabytes")
	f.String("instructions", "", "Additional instructions appended to the prompt")
}
