package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nibzard/pocketdo/internal/config"
	"github.com/nibzard/pocketdo/internal/kv"
	"github.com/nibzard/pocketdo/internal/logging"
	"github.com/nibzard/pocketdo/internal/todo"
)

// doctorCommand checks config, the data directory, the backend, and the stored list.
func doctorCommand(ctx context.Context, cws *config.ConfigWithSources, args []string, out io.Writer) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	cfg := cws.Config

	fmt.Fprintln(out, "pocketdo doctor")
	fmt.Fprintln(out, "===============")
	fmt.Fprintln(out)

	allOK := true

	fmt.Fprintln(out, "Config:")
	if len(cfg.Files) == 0 {
		fmt.Fprintln(out, "  ✅ Files: (none, using defaults)")
	}
	for _, f := range cfg.Files {
		fmt.Fprintf(out, "  ✅ File: %s\n", f)
	}
	fmt.Fprintf(out, "  ✅ Backend: %s (%s)\n", cfg.Backend, cws.Sources["backend"])
	fmt.Fprintf(out, "  ✅ ID format: %s (%s)\n", cfg.IDFormat, cws.Sources["id_format"])
	fmt.Fprintln(out)

	// Data directory
	fmt.Fprintf(out, "Data dir: %s\n", cfg.DataDir)
	if err := checkWritableDir(cfg.DataDir); err != nil {
		fmt.Fprintf(out, "  ❌ Error: %v\n", err)
		allOK = false
	} else {
		fmt.Fprintln(out, "  ✅ OK")
	}
	fmt.Fprintln(out)

	// Backend and stored value
	fmt.Fprintf(out, "Storage (%s):\n", cfg.Backend)
	store, err := kv.Open(cfg.Backend, cfg.DataDir)
	if err != nil {
		fmt.Fprintf(out, "  ❌ Open: %v\n", err)
		allOK = false
	} else {
		fmt.Fprintln(out, "  ✅ Open")
		if cfg.Backend == kv.BackendMemory {
			fmt.Fprintln(out, "  ⚠️  memory backend: tasks are lost on exit")
		}
		storage := todo.NewStorage(store)
		tasks, err := storage.Load(ctx)
		if err != nil {
			fmt.Fprintf(out, "  ❌ %s: %v\n", storage.Key(), err)
			allOK = false
		} else {
			fmt.Fprintf(out, "  ✅ %s: %d task(s), %d completed\n", storage.Key(), len(tasks), tasks.CompletedCount())
		}
		if err := store.Close(); err != nil {
			fmt.Fprintf(out, "  ❌ Close: %v\n", err)
			allOK = false
		}
	}
	fmt.Fprintln(out)

	// Logs
	fmt.Fprintf(out, "Log dir: %s\n", cfg.LogDir())
	latest, err := logging.FindLatestLog(cfg.LogDir())
	switch {
	case err != nil:
		fmt.Fprintf(out, "  ❌ Error: %v\n", err)
		allOK = false
	case latest == "":
		fmt.Fprintln(out, "  ✅ No logs yet")
	default:
		fmt.Fprintf(out, "  ✅ Latest: %s\n", filepath.Base(latest))
	}
	fmt.Fprintln(out)

	if allOK {
		fmt.Fprintln(out, "✅ All checks passed.")
		return nil
	}
	fmt.Fprintln(out, "⚠️  Some checks failed. pocketdo may not function correctly.")
	return fmt.Errorf("doctor checks failed")
}

// checkWritableDir creates dir if needed and writes a temp file into it.
func checkWritableDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".doctor-*")
	if err != nil {
		return fmt.Errorf("not writable: %w", err)
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}

// configCommand prints the effective config with the source of each value,
// or a commented template with -example.
func configCommand(cws *config.ConfigWithSources, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("pocketdo config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	example := fs.Bool("example", false, "Print an example config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if *example {
		fmt.Fprint(out, config.ExampleConfig())
		return nil
	}

	cfg := cws.Config
	rows := []struct {
		key   string
		value any
	}{
		{"data_dir", cfg.DataDir},
		{"backend", cfg.Backend},
		{"id_format", cfg.IDFormat},
		{"log_level", cfg.LogLevel},
		{"log_format", cfg.LogFormat},
		{"log_timestamps", cfg.LogTimestamps},
		{"log_caller", cfg.LogCaller},
	}
	for _, r := range rows {
		fmt.Fprintf(out, "%-15s %-40v # %s\n", r.key, r.value, cws.Sources[r.key])
	}
	return nil
}

// tailCommand tails the latest log file.
func tailCommand(ctx context.Context, cfg *config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("pocketdo tail", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	follow := fs.Bool("f", false, "Follow the log (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the log (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	logPath, err := logging.FindLatestLog(cfg.LogDir())
	if err != nil {
		return fmt.Errorf("finding latest log: %w", err)
	}
	if logPath == "" {
		fmt.Fprintln(out, "No log files found.")
		return nil
	}

	fmt.Fprintf(out, "Tailing: %s\n", logPath)
	if *follow {
		fmt.Fprintln(out, "(Ctrl+C to stop)")
	}
	fmt.Fprintln(out)

	return logging.TailLog(ctx, out, logPath, *n, *follow)
}
