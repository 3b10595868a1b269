package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/teemow/gworkspace-mcp/internal/tools"
	"github.com/teemow/gworkspace-mcp/internal/tools/common"
)

var errToolFailed = errors.New("tool call failed")

func newCallCmd() *cobra.Command {
	var rawArgs string

	cmd := &cobra.Command{
		Use:   "call <tool>",
		Short: "Invoke a single tool and print its result",
		Long: `Invoke one tool without an MCP client, for scripting and debugging.

Arguments are passed as a JSON object:

  gworkspace-mcp call drive_search --args '{"query":"name contains '\''Budget'\''"}'

The result is printed to stdout. A failed call exits with a non-zero status.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			a, err := newApp(ctx, cfg, newLogger(cfg), nil)
			if err != nil {
				return err
			}
			return runCall(ctx, a.registry, args[0], rawArgs, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&rawArgs, "args", "{}", "Tool arguments as a JSON object")
	return cmd
}

// runCall dispatches name with the JSON object in rawArgs and writes the
// result text to out.
func runCall(ctx context.Context, registry *tools.Registry, name, rawArgs string, out io.Writer) error {
	var arguments map[string]any
	if err := json.Unmarshal([]byte(rawArgs), &arguments); err != nil {
		return fmt.Errorf("invalid --args: expected a JSON object: %w", err)
	}

	result := registry.Dispatch(ctx, name, arguments)
	fmt.Fprintln(out, common.ResultText(result))
	if result.IsError {
		return fmt.Errorf("%s: %w", name, errToolFailed)
	}
	return nil
}
