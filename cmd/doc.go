// Package cmd implements the gworkspace-mcp command line.
//
// Commands:
//   - serve: run the MCP server over stdio or streamable HTTP (default)
//   - auth: obtain a Google refresh token through the browser
//   - call: invoke a single tool and print its result
//   - generate-docs: render the tool catalogue as markdown
//   - version: print version information
package cmd
