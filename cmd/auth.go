package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfell/workspace-agent/internal/google"
)

func newAuthCmd() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage Google OAuth tokens",
		Long: `Auth handles the OAuth flow for Google Workspace access.

Run "auth url" to print the authorization URL, open it in a browser, approve
access, then run "auth save <code>" with the authorization code to store the
token. Tokens are kept per account in the user cache directory.`,
	}

	urlCmd := &cobra.Command{
		Use:   "url",
		Short: "Print the OAuth authorization URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			if google.HasTokenForAccount(account) {
				fmt.Printf("A token for account %q already exists; authorizing again will replace it.\n\n", account)
			}
			fmt.Println(google.GetAuthURLForAccount(account))
			return nil
		},
	}

	saveCmd := &cobra.Command{
		Use:   "save <code>",
		Short: "Exchange an authorization code and store the token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if err := google.SaveTokenForAccount(ctx, account, args[0]); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}
			fmt.Printf("Token saved for account %q.\n", account)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&account, "account", "default", "Account name the token is stored under (default, work, personal, ...)")
	cmd.AddCommand(urlCmd)
	cmd.AddCommand(saveCmd)

	return cmd
}
