package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teemow/gworkspace-mcp/internal/tools"
)

func newGenerateDocsCmd() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "generate-docs",
		Short: "Generate MCP tool documentation",
		Long: `Generate markdown documentation for all MCP tools.
The output is built from the registered tool definitions, so it always
matches what the server advertises.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerateDocs(outputFile)
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func runGenerateDocs(outputFile string) error {
	// Definitions only; no client is called.
	registry, err := newRegistry(slog.New(slog.DiscardHandler), services{})
	if err != nil {
		return err
	}

	markdown := generateToolsMarkdown(registry.Tools(false))

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(markdown), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Documentation written to: %s\n", outputFile)
		return nil
	}
	fmt.Print(markdown)
	return nil
}

var categoryOrder = []string{"Google Drive Tools", "Google Sheets Tools", "Google Docs Tools", "Other"}

func generateToolsMarkdown(catalogue []tools.Tool) string {
	var sb strings.Builder

	sb.WriteString("# MCP Tools Reference\n\n")
	sb.WriteString("This document lists every tool available when running gworkspace-mcp as an MCP server.\n\n")
	sb.WriteString("**Note:** This documentation is automatically generated from the tool definitions.\n\n")
	sb.WriteString("Tools marked read-only are also registered with `--read-only`.\n\n")

	byCategory := groupToolsByCategory(catalogue)

	sb.WriteString("## Table of Contents\n\n")
	for _, category := range categoryOrder {
		if len(byCategory[category]) == 0 {
			continue
		}
		anchor := strings.ToLower(strings.ReplaceAll(category, " ", "-"))
		fmt.Fprintf(&sb, "- [%s](#%s)\n", category, anchor)
	}
	sb.WriteString("\n")

	// Tools keep catalogue order within a category.
	for _, category := range categoryOrder {
		categoryTools := byCategory[category]
		if len(categoryTools) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "## %s\n\n", category)
		for _, tool := range categoryTools {
			sb.WriteString(generateToolMarkdown(tool))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func groupToolsByCategory(catalogue []tools.Tool) map[string][]tools.Tool {
	categories := make(map[string][]tools.Tool)
	for _, tool := range catalogue {
		category := getCategoryFromToolName(tool.Name())
		categories[category] = append(categories[category], tool)
	}
	return categories
}

func getCategoryFromToolName(name string) string {
	prefix, _, _ := strings.Cut(name, "_")
	switch prefix {
	case "drive":
		return "Google Drive Tools"
	case "sheets":
		return "Google Sheets Tools"
	case "docs":
		return "Google Docs Tools"
	default:
		return "Other"
	}
}

func generateToolMarkdown(tool tools.Tool) string {
	var sb strings.Builder
	def := tool.Definition

	fmt.Fprintf(&sb, "### %s\n\n", def.Name)
	if def.Description != "" {
		fmt.Fprintf(&sb, "%s\n\n", def.Description)
	}
	if tool.ReadOnly {
		sb.WriteString("**Read-only:** yes\n\n")
	}

	if len(def.InputSchema.Properties) == 0 {
		return sb.String()
	}

	sb.WriteString("**Arguments:**\n")

	propNames := make([]string, 0, len(def.InputSchema.Properties))
	for name := range def.InputSchema.Properties {
		propNames = append(propNames, name)
	}
	slices.Sort(propNames)

	for _, name := range propNames {
		propMap, ok := def.InputSchema.Properties[name].(map[string]any)
		if !ok {
			continue
		}

		requiredStr := "optional"
		if slices.Contains(def.InputSchema.Required, name) {
			requiredStr = "required"
		}

		fmt.Fprintf(&sb, "- `%s` (%s, %s): ", name, requiredStr, getPropertyType(propMap))
		if desc, ok := propMap["description"].(string); ok {
			sb.WriteString(desc)
		} else {
			fmt.Fprintf(&sb, "%s parameter", getPropertyType(propMap))
		}
		if enum := propertyEnum(propMap); len(enum) > 0 {
			fmt.Fprintf(&sb, " One of: `%s`.", strings.Join(enum, "`, `"))
		}
		if dflt, ok := propMap["default"]; ok {
			fmt.Fprintf(&sb, " Default: `%v`.", dflt)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	return sb.String()
}

func getPropertyType(prop map[string]any) string {
	if t, ok := prop["type"].(string); ok {
		return t
	}
	return "any"
}

func propertyEnum(prop map[string]any) []string {
	switch values := prop["enum"].(type) {
	case []string:
		return values
	case []any:
		out := make([]string, 0, len(values))
		for _, v := range values {
			out = append(out, fmt.Sprint(v))
		}
		return out
	default:
		return nil
	}
}
