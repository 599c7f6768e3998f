package main

import (
	"fmt"
	"os"

	"github.com/erraggy/oasurl"
	"github.com/erraggy/oasurl/cmd/oasurl/commands"
)

// commandNames lists the subcommands considered for typo suggestions.
var commandNames = []string{"build", "serialize", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	var err error
	switch command {
	case "version", "-v", "--version":
		fmt.Printf("oasurl %s\n", oasurl.Version())
		fmt.Println(oasurl.BuildInfo())
		return
	case "help", "-h", "--help":
		printUsage()
		return
	case "build":
		err = commands.HandleBuild(os.Args[2:])
	case "serialize":
		err = commands.HandleSerialize(os.Args[2:])
	case "mcp":
		err = commands.HandleMCP(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if s := suggestCommand(command); s != "" {
			fmt.Fprintf(os.Stderr, "Did you mean: %s?\n", s)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `oasurl - build request URLs from OpenAPI path templates

Usage:
  oasurl <command> [flags] [args]

Commands:
  build       Build a request URL from a path template and parameters
  serialize   Serialize one parameter with an OpenAPI style
  mcp         Start an MCP server over stdio
  version     Show version information
  help        Show this help message

Run 'oasurl <command> --help' for more information on a command.
`)
}

// suggestCommand returns the closest known command within edit distance 2,
// or "" when nothing is close enough.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := levenshtein(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
