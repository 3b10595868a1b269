package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gworkspace-mcp",
	Short: "MCP server for Google Drive, Docs and Sheets",
	Long: `gworkspace-mcp exposes Google Drive, Docs and Sheets operations as
Model Context Protocol tools for AI assistants.

Credentials come from GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET and
GOOGLE_REFRESH_TOKEN or from the config file. Run "gworkspace-mcp auth" once
to obtain a refresh token.`,
	SilenceUsage: true,
}

var (
	// version is set by main.
	version = "dev"

	configFile string
)

// SetVersion sets the version reported by the version command and flag.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute runs the root command. Without a subcommand the server is started.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "gworkspace-mcp version %s\n" .Version}}`)

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a YAML config file (env: GWORKSPACE_MCP_CONFIG)")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newCallCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
	rootCmd.AddCommand(newVersionCmd())
}
