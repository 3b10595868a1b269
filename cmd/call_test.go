package cmd

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/gworkspace-mcp/internal/tools"
	"github.com/teemow/gworkspace-mcp/internal/tools/args"
)

func newCallRegistry(t *testing.T) *tools.Registry {
	t.Helper()
	registry := tools.NewRegistry(slog.New(slog.DiscardHandler))
	require.NoError(t, registry.Register(tools.Tool{
		Definition: mcp.NewTool("greet", mcp.WithString("name", mcp.Required())),
		ReadOnly:   true,
		Action:     "greeting",
		Handler: tools.Bind(
			func(a args.Args) (string, error) { return a.String("name") },
			func(_ context.Context, name string) (any, error) {
				return map[string]string{"hello": name}, nil
			},
		),
	}))
	return registry
}

func TestRunCall(t *testing.T) {
	tests := []struct {
		name       string
		tool       string
		rawArgs    string
		wantOutput string
		wantErr    bool
	}{
		{
			name:       "success prints result",
			tool:       "greet",
			rawArgs:    `{"name":"ada"}`,
			wantOutput: "{\n  \"hello\": \"ada\"\n}\n",
		},
		{
			name:       "unknown tool",
			tool:       "nope",
			rawArgs:    `{}`,
			wantOutput: "Unknown tool: nope\n",
			wantErr:    true,
		},
		{
			name:       "validation failure",
			tool:       "greet",
			rawArgs:    `{}`,
			wantOutput: "Invalid name: expected non-empty string\n",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := runCall(context.Background(), newCallRegistry(t), tt.tool, tt.rawArgs, &out)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, errToolFailed))
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantOutput, out.String())
		})
	}
}

func TestRunCallRejectsInvalidJSON(t *testing.T) {
	var out bytes.Buffer
	err := runCall(context.Background(), newCallRegistry(t), "greet", `[1,2]`, &out)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --args")
	assert.Empty(t, out.String())
}
