package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/nibzard/pocketdo/internal/config"
	"github.com/nibzard/pocketdo/internal/todo"
	"github.com/nibzard/pocketdo/internal/ui"
)

// errEmptyTask is what the CLI reports for blank add input.
var errEmptyTask = errors.New("empty task: please enter a task")

// withApp opens the app, runs fn, and closes the app. Pending writes land
// before it returns. Only commands that change tasks (or run the TUI) pass
// logRun, so read-only commands leave no run log behind.
func withApp(ctx context.Context, cfg *config.Config, console io.Writer, logRun bool, fn func(*app) error) (err error) {
	a, err := openApp(ctx, cfg, console, logRun)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(a)
}

// tuiCommand launches the full-screen UI. Logs go to the run log only.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	return withApp(ctx, cfg, nil, true, func(a *app) error {
		a.logger.Info("tui started", "tasks", len(a.store.Tasks()))
		return ui.Run(ctx, a.store)
	})
}

// addCommand adds one task from the joined arguments and prints its id.
func addCommand(ctx context.Context, cfg *config.Config, args []string, out, errOut io.Writer) error {
	text := strings.Join(args, " ")
	return withApp(ctx, cfg, errOut, true, func(a *app) error {
		tasks, err := a.store.Add(text)
		if err != nil {
			if todo.IsValidation(err) {
				return errEmptyTask
			}
			return err
		}
		fmt.Fprintln(out, tasks[0].ID)
		return nil
	})
}

// lsCommand lists tasks newest first.
func lsCommand(ctx context.Context, cfg *config.Config, args []string, out, errOut io.Writer) error {
	fs := flag.NewFlagSet("pocketdo ls", flag.ContinueOnError)
	fs.SetOutput(errOut)
	onlyDone := fs.Bool("done", false, "Show only completed tasks")
	onlyOpen := fs.Bool("open", false, "Show only open tasks")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if *onlyDone && *onlyOpen {
		return fmt.Errorf("-done and -open are mutually exclusive")
	}

	return withApp(ctx, cfg, errOut, false, func(a *app) error {
		tasks := a.store.Tasks()
		switch {
		case *onlyDone:
			tasks = tasks.Filter(func(t todo.Task) bool { return t.Completed })
		case *onlyOpen:
			tasks = tasks.Filter(func(t todo.Task) bool { return !t.Completed })
		}
		if len(tasks) == 0 {
			fmt.Fprintln(out, "No tasks.")
			return nil
		}
		for _, t := range tasks {
			printTask(out, t)
		}
		return nil
	})
}

// toggleCommand flips a task between open and done.
func toggleCommand(ctx context.Context, cfg *config.Config, args []string, out, errOut io.Writer) error {
	id, err := singleID("toggle", args)
	if err != nil {
		return err
	}
	return withApp(ctx, cfg, errOut, true, func(a *app) error {
		if _, ok := a.store.Tasks().Get(id); !ok {
			return fmt.Errorf("no task with id %q", id)
		}
		t, _ := a.store.Toggle(id).Get(id)
		printTask(out, t)
		return nil
	})
}

// rmCommand deletes a task.
func rmCommand(ctx context.Context, cfg *config.Config, args []string, out, errOut io.Writer) error {
	id, err := singleID("rm", args)
	if err != nil {
		return err
	}
	return withApp(ctx, cfg, errOut, true, func(a *app) error {
		t, ok := a.store.Tasks().Get(id)
		if !ok {
			return fmt.Errorf("no task with id %q", id)
		}
		a.store.Delete(id)
		fmt.Fprintf(out, "Deleted %s  %s\n", t.ID, t.Text)
		return nil
	})
}

// clearCommand removes every completed task.
func clearCommand(ctx context.Context, cfg *config.Config, args []string, out, errOut io.Writer) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	return withApp(ctx, cfg, errOut, true, func(a *app) error {
		before := len(a.store.Tasks())
		after := len(a.store.ClearCompleted())
		fmt.Fprintf(out, "Cleared %d completed task(s).\n", before-after)
		return nil
	})
}

func singleID(command string, args []string) (string, error) {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		return "", fmt.Errorf("usage: pocketdo %s <id>", command)
	}
	return strings.TrimSpace(args[0]), nil
}

func printTask(w io.Writer, t todo.Task) {
	box := "[ ]"
	if t.Completed {
		box = "[x]"
	}
	fmt.Fprintf(w, "%s %s  %s\n", box, t.ID, t.Text)
}
