package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "socratai",
	Short: "Adaptive quizzes from syllabus images",
	Long:  "SocratAI turns a photographed syllabus into multiple-choice quizzes that adapt their difficulty to the learner.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, "", false)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SOCRATAI_DB)")
	rootCmd.PersistentFlags().String("email", "", "Account to act as (overrides SOCRATAI_EMAIL)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(takeCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}
