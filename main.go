package main

import (
	"github.com/teemow/gworkspace-mcp/cmd"
)

// version is set by goreleaser during build
var version = "dev"

func main() {
	cmd.SetVersion(version)
	cmd.Execute()
}
