package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <image>",
	Short: "Upload a syllabus and extract its topics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		rt, err := buildRuntime(cmd.Context(), cfg, nil)
		if err != nil {
			return err
		}
		defer rt.Close()

		user, err := currentUser(cmd, rt.Store)
		if err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		sess, err := rt.Service.Upload(cmd.Context(), user.ID, filepath.Base(args[0]), f)
		if err != nil {
			return fmt.Errorf("upload: %w", err)
		}

		fmt.Printf("Session:  %s\n", sess.ID)
		fmt.Printf("Topics:   %d\n", len(sess.Topics))
		for i, t := range sess.Topics {
			fmt.Printf("  %2d. %s\n", i+1, t)
		}
		fmt.Printf("\nStart a quiz with: socratai take --session %s\n", sess.ID)
		return nil
	},
}
