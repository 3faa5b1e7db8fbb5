package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/socratai/socratai/internal/app"
	"github.com/socratai/socratai/internal/screens/take"
)

var takeCmd = &cobra.Command{
	Use:   "take",
	Short: "Take a quiz in the terminal",
	Long:  "Opens the quiz app. With --session it starts a quiz for that syllabus right away.",
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, _ := cmd.Flags().GetString("session")
		adaptive, _ := cmd.Flags().GetBool("adaptive")
		return runTUI(cmd, sessionID, adaptive)
	},
}

func init() {
	takeCmd.Flags().StringP("session", "s", "", "Session to quiz on")
	takeCmd.Flags().BoolP("adaptive", "a", false, "Generate an adaptive quiz instead of the initial one")
}

// runTUI builds the service and launches the terminal app.
func runTUI(cmd *cobra.Command, sessionID string, adaptive bool) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	rt, err := buildRuntime(ctx, cfg, nil)
	if err != nil {
		return err
	}
	defer rt.Close()

	user, err := currentUser(cmd, rt.Store)
	if err != nil {
		return err
	}

	opts := app.Options{
		Service:          rt.Service,
		UserID:           user.ID,
		Username:         user.Username,
		QuestionsPerQuiz: cfg.QuestionsPerQuiz,
	}
	if sessionID != "" {
		mode := take.Initial
		if adaptive {
			mode = take.Adaptive
		}
		opts.Start = take.New(rt.Service, user.ID, sessionID, mode, cfg.QuestionsPerQuiz)
	}

	if err := app.Run(ctx, opts); err != nil {
		return fmt.Errorf("run app: %w", err)
	}
	return nil
}
