// Package main is the entry point for the refactorengine MCP server.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
)

// Version information, set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var cli struct {
	Serve   ServeCommand   `cmd:"" help:"Run the MCP server over stdio or WebSocket" default:"withargs"`
	Analyze AnalyzeCommand `cmd:"" help:"Run complexity and code-smell analysis against a single file"`
	Version VersionCommand `cmd:"" help:"Print version information"`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("refactorengine"),
		kong.Description("Multi-language refactor planning MCP server."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: false,
			Summary: true,
		}),
	)

	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "refactorengine: %v\n", err)
		os.Exit(1)
	}
}

// VersionCommand prints the build's version metadata.
type VersionCommand struct{}

// Run prints version, commit, and build date.
func (cmd *VersionCommand) Run() error {
	fmt.Printf("refactorengine %s\n", version)
	fmt.Printf("commit: %s\n", commit)
	fmt.Printf("built:  %s\n", date)
	return nil
}
