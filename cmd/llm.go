package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/socratai/socratai/internal/llm"
	"github.com/socratai/socratai/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded question-generation calls",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		return withEventRepo(cmd, func(events store.EventRepo) error {
			list, err := events.QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit, Purpose: purpose})
			if err != nil {
				return fmt.Errorf("query events: %w", err)
			}
			if len(list) == 0 {
				fmt.Println("No LLM calls recorded.")
				return nil
			}

			rows := make([][]string, 0, len(list))
			for _, e := range list {
				status := "✓"
				if !e.Success {
					status = "✗"
				}
				rows = append(rows, []string{
					strconv.Itoa(e.ID),
					e.Timestamp.Local().Format("2006-01-02 15:04:05"),
					e.Purpose,
					truncate(e.Model, 28),
					strconv.Itoa(e.InputTokens),
					strconv.Itoa(e.OutputTokens),
					strconv.FormatInt(e.LatencyMs, 10),
					status,
				})
			}
			printTable([]string{"ID", "Time", "Purpose", "Model", "In", "Out", "Ms", "OK"}, rows, 0, 4, 5, 6)
			return nil
		})
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the full request and response of one call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q", args[0])
		}

		return withEventRepo(cmd, func(events store.EventRepo) error {
			e, err := events.GetLLMEvent(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("get event: %w", err)
			}
			if e == nil {
				return fmt.Errorf("event %d not found", id)
			}

			fields := [][2]string{
				{"ID", strconv.Itoa(e.ID)},
				{"Time", e.Timestamp.Local().Format("2006-01-02 15:04:05")},
				{"Provider", e.Provider},
				{"Model", e.Model},
				{"Purpose", e.Purpose},
				{"Tokens", fmt.Sprintf("%d in / %d out", e.InputTokens, e.OutputTokens)},
				{"Latency", fmt.Sprintf("%dms", e.LatencyMs)},
				{"Success", strconv.FormatBool(e.Success)},
			}
			if e.ErrorMessage != "" {
				fields = append(fields, [2]string{"Error", e.ErrorMessage})
			}
			for _, f := range fields {
				fmt.Printf("%-10s %s\n", f[0]+":", f[1])
			}

			printBody("REQUEST", e.RequestBody)
			printBody("RESPONSE", e.ResponseBody)
			return nil
		})
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEventRepo(cmd, func(events store.EventRepo) error {
			byPurpose, err := events.LLMUsageByPurpose(cmd.Context())
			if err != nil {
				return fmt.Errorf("query usage: %w", err)
			}
			if len(byPurpose) == 0 {
				fmt.Println("No LLM usage recorded yet.")
				return nil
			}

			var calls, in, out int
			rows := make([][]string, 0, len(byPurpose)+1)
			for _, u := range byPurpose {
				rows = append(rows, []string{
					u.Purpose,
					strconv.Itoa(u.Calls),
					strconv.Itoa(u.InputTokens),
					strconv.Itoa(u.OutputTokens),
					strconv.FormatInt(u.AvgLatencyMs, 10),
				})
				calls += u.Calls
				in += u.InputTokens
				out += u.OutputTokens
			}
			rows = append(rows, []string{"TOTAL", strconv.Itoa(calls), strconv.Itoa(in), strconv.Itoa(out), ""})
			fmt.Println("Usage by purpose")
			printTable([]string{"Purpose", "Calls", "Input", "Output", "Avg ms"}, rows, 1, 2, 3, 4)

			byModel, err := events.LLMUsageByModel(cmd.Context())
			if err != nil {
				return fmt.Errorf("query model usage: %w", err)
			}
			if len(byModel) == 0 {
				return nil
			}

			var total float64
			var unpriced []string
			rows = rows[:0]
			for _, u := range byModel {
				cost := "?"
				if price := llm.LookupCost(u.Model); price != nil {
					c := price.Cost(u.InputTokens, u.OutputTokens)
					total += c
					cost = formatCost(c)
				} else {
					unpriced = append(unpriced, u.Model)
				}
				rows = append(rows, []string{
					truncate(u.Model, 32),
					strconv.Itoa(u.Calls),
					strconv.Itoa(u.InputTokens),
					strconv.Itoa(u.OutputTokens),
					cost,
				})
			}
			label := "TOTAL"
			if len(unpriced) > 0 {
				label = "TOTAL (partial)"
			}
			rows = append(rows, []string{label, "", "", "", formatCost(total)})

			fmt.Println("\nEstimated cost (USD)")
			printTable([]string{"Model", "Calls", "Input", "Output", "Cost"}, rows, 1, 2, 3, 4)
			if len(unpriced) > 0 {
				fmt.Printf("Pricing unavailable for: %s\n", strings.Join(unpriced, ", "))
			}
			return nil
		})
	},
}

// withEventRepo opens the configured store for the duration of fn.
func withEventRepo(cmd *cobra.Command, fn func(store.EventRepo) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(st.EventRepo())
}

func printBody(title, body string) {
	sep := strings.Repeat("─", 60)
	fmt.Printf("\n%s\n%s\n%s\n", sep, title, sep)
	if body == "" {
		body = "(not captured)"
	}
	fmt.Println(body)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of calls to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. quiz-gen, quiz-fill)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
