package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/socratai/socratai/internal/auth"
	"github.com/socratai/socratai/internal/logger"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage accounts",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeStore, err := accountService(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		email, _ := cmd.Flags().GetString("email")
		username, _ := cmd.Flags().GetString("username")
		tok, err := svc.Signup(cmd.Context(), email, username, password(cmd))
		if err != nil {
			return err
		}
		fmt.Printf("Created account %s (%s)\n", tok.Username, email)
		return nil
	},
}

var userTokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Log in and print a bearer token for the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeStore, err := accountService(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		email, _ := cmd.Flags().GetString("email")
		tok, err := svc.Login(cmd.Context(), email, password(cmd))
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return errors.New("incorrect email or password")
		}
		if err != nil {
			return err
		}
		fmt.Println(tok.AccessToken)
		return nil
	},
}

func accountService(cmd *cobra.Command) (*auth.Service, func() error, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	st, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	return auth.NewService(st.UserRepo(), cfg.JWTSecret, cfg.JWTTTL, logger.Nop()), st.Close, nil
}

// password reads --password, falling back to SOCRATAI_PASSWORD so it can
// stay out of shell history.
func password(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("password"); p != "" {
		return p
	}
	return os.Getenv("SOCRATAI_PASSWORD")
}

func init() {
	userCreateCmd.Flags().String("username", "", "Display name")
	for _, c := range []*cobra.Command{userCreateCmd, userTokenCmd} {
		c.Flags().String("password", "", "Password (or set SOCRATAI_PASSWORD)")
	}

	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userTokenCmd)
}
