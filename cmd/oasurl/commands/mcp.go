package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/oasurl/internal/mcpserver"
)

// HandleMCP starts the MCP server over stdio.
func HandleMCP(args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: oasurl mcp\n\n")
		Writef(output, "Start an MCP (Model Context Protocol) server over stdio.\n\n")
		Writef(output, "Tools:\n")
		Writef(output, "  build_url          build a request URL from a path template and parameters\n")
		Writef(output, "  serialize_param    serialize one parameter with a given style\n")
		Writef(output, "\nConfiguration is read from OASURL_* environment variables.\n")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return fmt.Errorf("mcp command takes no arguments")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}
