package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/probgen/internal/llm"
	"github.com/abhisek/probgen/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the audit log of LLM calls",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM events",
	RunE: withAuditStore(func(cmd *cobra.Command, _ []string, repo *store.SQLEventRepo) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		events, err := repo.QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit, Purpose: purpose})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No LLM events found.")
			return nil
		}

		t := newTable("ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK").alignRight(0, 4, 5, 6)
		for _, e := range events {
			t.add(
				strconv.Itoa(e.ID),
				e.Timestamp.Local().Format(timeLayout),
				e.Purpose,
				truncate(e.Model, 28),
				strconv.Itoa(e.InputTokens),
				strconv.Itoa(e.OutputTokens),
				strconv.FormatInt(e.LatencyMs, 10),
				status(e.Success),
			)
		}
		t.render(out)
		return nil
	}),
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View the recorded metadata of one LLM call",
	Args:  cobra.ExactArgs(1),
	RunE: withAuditStore(func(cmd *cobra.Command, args []string, repo *store.SQLEventRepo) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}
		e, err := repo.GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}
		printEvent(cmd.OutOrStdout(), e)
		return nil
	}),
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated LLM token usage and estimated cost",
	RunE: withAuditStore(func(cmd *cobra.Command, _ []string, repo *store.SQLEventRepo) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		byPurpose, err := repo.LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if len(byPurpose) == 0 {
			fmt.Fprintln(out, "No LLM usage recorded yet.")
			return nil
		}
		byModel, err := repo.LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}

		title(out, "Usage by Purpose")
		purposeTable(byPurpose).render(out)
		fmt.Fprintln(out)
		title(out, "Estimated Cost (USD)")
		costTable(out, byModel)
		return nil
	}),
}

// withAuditStore opens the store named by --db or PROBGEN_DB around run.
// Unlike the server, the llm commands have nothing to do without one.
func withAuditStore(run func(*cobra.Command, []string, *store.SQLEventRepo) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		if dbPath == "" {
			return fmt.Errorf("no audit log configured: pass --db or set PROBGEN_DB")
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()
		return run(cmd, args, s.EventRepo())
	}
}

func printEvent(w io.Writer, e *store.LLMRequestEvent) {
	field := func(label string, value any) {
		fmt.Fprintf(w, "%-11s %v\n", label+":", value)
	}
	field("ID", e.ID)
	field("Time", e.Timestamp.Local().Format(timeLayout))
	if e.RequestID != "" {
		field("Request ID", e.RequestID)
	}
	field("Provider", e.Provider)
	field("Model", e.Model)
	field("Purpose", e.Purpose)
	field("Tokens", fmt.Sprintf("%d in / %d out", e.InputTokens, e.OutputTokens))
	if cost := llm.LookupCost(e.Model); cost != nil {
		field("Cost", formatCost(cost.Cost(e.InputTokens, e.OutputTokens)))
	}
	field("Latency", time.Duration(e.LatencyMs)*time.Millisecond)
	field("Success", e.Success)
	if e.ErrorMessage != "" {
		field("Error", e.ErrorMessage)
	}
}

func purposeTable(usage []store.PurposeUsage) *table {
	t := newTable("Purpose", "Calls", "Input", "Output", "Total", "Avg Ms").alignRight(1, 2, 3, 4, 5)
	var calls, in, outTok int
	for _, u := range usage {
		t.add(u.Purpose, strconv.Itoa(u.Calls), strconv.Itoa(u.InputTokens), strconv.Itoa(u.OutputTokens),
			strconv.Itoa(u.InputTokens+u.OutputTokens), strconv.FormatInt(u.AvgLatencyMs, 10))
		calls += u.Calls
		in += u.InputTokens
		outTok += u.OutputTokens
	}
	t.rule()
	t.add("TOTAL", strconv.Itoa(calls), strconv.Itoa(in), strconv.Itoa(outTok), strconv.Itoa(in+outTok))
	return t
}

func costTable(w io.Writer, usage []store.ModelUsage) {
	t := newTable("Model", "Calls", "Input", "Output", "Cost").alignRight(1, 2, 3, 4)
	var total float64
	var unpriced []string
	for _, u := range usage {
		cost := "?"
		if price := llm.LookupCost(u.Model); price != nil {
			c := price.Cost(u.InputTokens, u.OutputTokens)
			total += c
			cost = formatCost(c)
		} else {
			unpriced = append(unpriced, u.Model)
		}
		t.add(truncate(u.Model, 32), strconv.Itoa(u.Calls), strconv.Itoa(u.InputTokens), strconv.Itoa(u.OutputTokens), cost)
	}

	label := "TOTAL"
	if len(unpriced) > 0 {
		label = "TOTAL (partial)"
	}
	t.rule()
	t.add(label, "", "", "", formatCost(total))
	t.render(w)

	if len(unpriced) > 0 {
		fmt.Fprintf(w, "\nPricing unavailable for: %s\n", strings.Join(unpriced, ", "))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. problem-gen)")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
