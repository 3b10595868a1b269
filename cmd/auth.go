package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/teemow/gworkspace-mcp/internal/google"
)

var errNoRefreshToken = errors.New("google did not return a refresh token; remove the app from your account's third-party access and run auth again")

func newAuthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Obtain a Google refresh token",
		Long: `Run the OAuth consent flow in the browser and print a refresh token.

GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET (or the config file) must name a
Desktop OAuth client. The printed value belongs in GOOGLE_REFRESH_TOKEN.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}
			if cfg.Google.ClientID == "" || cfg.Google.ClientSecret == "" {
				return fmt.Errorf("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET are required to authorize")
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			creds := google.Credentials{
				ClientID:     cfg.Google.ClientID,
				ClientSecret: cfg.Google.ClientSecret,
			}
			token, err := google.AuthorizeLoopback(ctx, creds.OAuthConfig(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if token.RefreshToken == "" {
				return errNoRefreshToken
			}

			fmt.Fprintln(cmd.ErrOrStderr(), "Authorization complete. Export the refresh token:")
			fmt.Fprintf(cmd.OutOrStdout(), "GOOGLE_REFRESH_TOKEN=%s\n", token.RefreshToken)
			return nil
		},
	}
}
