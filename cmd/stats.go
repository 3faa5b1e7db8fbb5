package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/socratai/socratai/internal/analytics"
	"github.com/socratai/socratai/internal/quiz"
	"github.com/socratai/socratai/internal/service"
	"github.com/socratai/socratai/internal/ui/components"
	"github.com/socratai/socratai/internal/ui/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats <session-id>",
	Short: "Show performance statistics for a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		db, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		user, err := currentUser(cmd, db)
		if err != nil {
			return err
		}

		svc := service.New(service.FromStore(db, service.Deps{}), service.DefaultOptions())
		st, err := svc.Stats(cmd.Context(), user.ID, args[0])
		if errors.Is(err, quiz.ErrNotFound) {
			fmt.Println("No quizzes submitted for this session yet.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("stats: %w", err)
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(st)
		}
		fmt.Println(renderStats(st))
		return nil
	},
}

func init() {
	statsCmd.Flags().Bool("json", false, "Print the raw statistics as JSON")
}

func renderStats(st *analytics.PerformanceStats) string {
	heading := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	b.WriteString(heading.Render(fmt.Sprintf("Average score %.1f%% across %d quizzes", st.AverageScore, st.TotalQuizzes)))
	b.WriteString("\n\n")

	b.WriteString(dim.Render("Cognitive levels"))
	b.WriteString("\n")
	for _, level := range quiz.AllLevels() {
		acc, ok := st.BloomPerformance[level]
		if !ok {
			continue
		}
		bar := components.NewProgressBar(string(level), acc/100, true, 60)
		bar.LabelWidth = 12
		line := bar.View()
		if secs := st.BloomTimePerformance[level]; secs > 0 {
			line += dim.Render(fmt.Sprintf("  %.1fs avg", secs))
		}
		b.WriteString(line + "\n")
	}

	if len(st.TopicPerformance) > 0 {
		b.WriteString("\n" + dim.Render("Topics") + "\n")
		names := make([]string, 0, len(st.TopicPerformance))
		for name := range st.TopicPerformance {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			b.WriteString(fmt.Sprintf("  %-40s %5.1f%%\n", truncate(name, 40), st.TopicPerformance[name]))
		}
	}

	if len(st.QuizHistory) > 0 {
		b.WriteString("\n" + dim.Render("History") + "\n")
		for _, p := range st.QuizHistory {
			b.WriteString(fmt.Sprintf("  #%-3d %s  %5.1f%%\n", p.QuizNumber, p.Date.Local().Format("2006-01-02 15:04"), p.Score))
		}
	}

	if st.SkippedRecords > 0 {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Accent).Render(
			fmt.Sprintf("%d unreadable attempts were left out", st.SkippedRecords)))
	}
	return b.String()
}
