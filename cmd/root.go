// Package cmd implements the CLI command structure for pocketdo.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nibzard/pocketdo/internal/config"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the pocketdo CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, out, errOut io.Writer) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("pocketdo", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.Usage = func() {
		printUsage(fs, errOut)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, out)
		return nil
	}
	if *showVersion {
		return versionCommand(out)
	}

	// Determine the subcommand; the TUI is the default
	subcommand := "tui"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	cfg := cws.Config
	switch subcommand {
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "add":
		return addCommand(ctx, cfg, remainingArgs, out, errOut)
	case "ls", "list":
		return lsCommand(ctx, cfg, remainingArgs, out, errOut)
	case "toggle", "done":
		return toggleCommand(ctx, cfg, remainingArgs, out, errOut)
	case "rm", "delete":
		return rmCommand(ctx, cfg, remainingArgs, out, errOut)
	case "clear":
		return clearCommand(ctx, cfg, remainingArgs, out, errOut)
	case "doctor":
		return doctorCommand(ctx, cws, remainingArgs, out)
	case "config":
		return configCommand(cws, remainingArgs, out)
	case "tail":
		return tailCommand(ctx, cfg, remainingArgs, out)
	case "version":
		return versionCommand(out)
	case "help":
		printUsage(fs, out)
		return nil
	default:
		fmt.Fprintf(errOut, "Unknown command: %s\n", subcommand)
		printUsage(fs, errOut)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// versionCommand prints version information.
func versionCommand(out io.Writer) error {
	fmt.Fprintf(out, "pocketdo version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "pocketdo - a single-screen task list")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  pocketdo [options] [command] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui              Launch terminal UI (default command)")
	fmt.Fprintln(w, "  add <text...>    Add a task and print its id")
	fmt.Fprintln(w, "  ls [-done|-open] List tasks, newest first")
	fmt.Fprintln(w, "  toggle <id>      Mark a task done or open again")
	fmt.Fprintln(w, "  rm <id>          Delete a task")
	fmt.Fprintln(w, "  clear            Delete all completed tasks")
	fmt.Fprintln(w, "  doctor           Check config, storage, and stored tasks")
	fmt.Fprintln(w, "  config           Show the effective config (-example for a template)")
	fmt.Fprintln(w, "  tail             Tail the latest log file")
	fmt.Fprintln(w, "  version          Show version information")
	fmt.Fprintln(w, "  help             Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tail Options (use with 'tail' command):")
	fmt.Fprintln(w, "  -f, --follow")
	fmt.Fprintln(w, "        Follow the log (like tail -f)")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of lines to show (0 = all)")
}
