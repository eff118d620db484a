package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func TokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token <user-id|email>",
		Short: "Print a signed bearer token for an owner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			lookup := a.UserService.ByID
			if strings.Contains(args[0], "@") {
				lookup = a.UserService.ByEmail
			}

			user, err := lookup(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			token, err := a.AuthService.GenerateJWT(user)
			if err != nil {
				return fmt.Errorf("failed to sign token: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
}
