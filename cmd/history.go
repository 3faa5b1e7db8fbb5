package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List uploaded syllabi, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		user, err := currentUser(cmd, st)
		if err != nil {
			return err
		}

		entries, err := st.SessionRepo().ListSessionsByOwner(cmd.Context(), user.ID)
		if err != nil {
			return fmt.Errorf("list sessions: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("No sessions yet.")
			return nil
		}

		rows := make([][]string, 0, len(entries))
		for _, e := range entries {
			last := "-"
			if e.LastScore != nil {
				last = fmt.Sprintf("%.0f%%", *e.LastScore)
			}
			rows = append(rows, []string{
				e.SessionID,
				e.CreatedAt.Local().Format("2006-01-02 15:04"),
				last,
				truncate(strings.Join(e.Topics, "; "), 40),
			})
		}
		printTable([]string{"Session", "Created", "Last", "Topics"}, rows, 2)
		return nil
	},
}
