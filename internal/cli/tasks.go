package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"todos-cli/internal/controller"
	"todos-cli/internal/model"

	"github.com/spf13/cobra"
)

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the remembered user's tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := app.newRunner(cmd)
			if err != nil {
				return err
			}
			defer r.Close()

			s, err := r.resume(commandContext(cmd))
			if err != nil {
				return err
			}
			return writeOut(cmd, app, newTaskListView(s))
		},
	}
}

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <label>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			label := strings.Join(args, " ")
			if strings.TrimSpace(label) == "" || utf8.RuneCountInString(label) > controller.MaxLabelLen {
				return fmt.Errorf("label must be 1 to %d characters", controller.MaxLabelLen)
			}

			r, err := app.newRunner(cmd)
			if err != nil {
				return err
			}
			defer r.Close()

			ctx := commandContext(cmd)
			s, err := r.resume(ctx)
			if err != nil {
				return err
			}
			s = r.driver.Dispatch(ctx, s, controller.EditTask{Text: label})
			s = r.driver.Dispatch(ctx, s, controller.SubmitTask{})
			if err := errAction(s); err != nil {
				return err
			}
			n := len(s.Tasks)
			return writeOutWithHints(cmd, app, taskView{Position: n, Task: s.Tasks[n-1]},
				fmt.Sprintf("todos done %d", n))
		},
	}
}

// newDoneCmd builds `done` (done=true) or `undo` (done=false).
func newDoneCmd(app *App, done bool) *cobra.Command {
	use, short := "done <n>", "Mark the task at position n as done"
	if !done {
		use, short = "undo <n>", "Mark the task at position n as not done"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := app.newRunner(cmd)
			if err != nil {
				return err
			}
			defer r.Close()

			ctx := commandContext(cmd)
			s, err := r.resume(ctx)
			if err != nil {
				return err
			}
			i, err := parsePosition(args[0], len(s.Tasks))
			if err != nil {
				return err
			}
			id := s.Tasks[i].ID
			if s.Tasks[i].IsDone != done {
				s = r.driver.Dispatch(ctx, s, controller.ToggleTask{Index: i})
				if err := errAction(s); err != nil {
					return err
				}
			}
			j := model.IndexOf(s.Tasks, id)
			return writeOut(cmd, app, taskView{Position: j + 1, Task: s.Tasks[j]})
		},
	}
}

func newRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <n>",
		Aliases: []string{"delete"},
		Short:   "Delete the task at position n",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := app.newRunner(cmd)
			if err != nil {
				return err
			}
			defer r.Close()

			ctx := commandContext(cmd)
			s, err := r.resume(ctx)
			if err != nil {
				return err
			}
			i, err := parsePosition(args[0], len(s.Tasks))
			if err != nil {
				return err
			}
			removed := s.Tasks[i]
			s = r.driver.Dispatch(ctx, s, controller.DeleteTask{Index: i})
			if err := errAction(s); err != nil {
				return err
			}
			return writeOut(cmd, app, taskView{Position: i + 1, Task: removed})
		},
	}
}

func newClearCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every task, one request at a time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return confirmRequiredError{what: "delete all tasks"}
			}
			r, err := app.newRunner(cmd)
			if err != nil {
				return err
			}
			defer r.Close()

			ctx := commandContext(cmd)
			s, err := r.resume(ctx)
			if err != nil {
				return err
			}
			before := len(s.Tasks)
			s = r.driver.Dispatch(ctx, s, controller.RequestClear{})
			s = r.driver.Dispatch(ctx, s, controller.ConfirmClear{})
			if err := errAction(s); err != nil {
				return err
			}
			return writeOut(cmd, app, clearView{Deleted: before - len(s.Tasks)})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deleting every task")
	return cmd
}

func newRefreshCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Reload the task list from the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := app.newRunner(cmd)
			if err != nil {
				return err
			}
			defer r.Close()

			ctx := commandContext(cmd)
			s, err := r.resume(ctx)
			if err != nil {
				return err
			}
			s = r.driver.Dispatch(ctx, s, controller.Refresh{})
			if err := errAction(s); err != nil {
				return err
			}
			return writeOut(cmd, app, newTaskListView(s))
		},
	}
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json|->",
		Short: "Replace the whole task list with a JSON array of tasks",
		Long: strings.TrimSpace(`
Replace the remembered user's tasks with the JSON array read from a file
(or stdin when the argument is "-"). Each element is an object with
"label" and optional "is_done"; ids are ignored and reassigned by the server.
`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := readTasks(cmd, args[0])
			if err != nil {
				return err
			}

			r, err := app.newRunner(cmd)
			if err != nil {
				return err
			}
			defer r.Close()

			ctx := commandContext(cmd)
			s, err := r.resume(ctx)
			if err != nil {
				return err
			}
			s = r.driver.Dispatch(ctx, s, controller.ReplaceTasks{Tasks: tasks})
			if err := errAction(s); err != nil {
				return err
			}
			return writeOut(cmd, app, newTaskListView(s))
		},
	}
}

func readTasks(cmd *cobra.Command, path string) ([]model.Task, error) {
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(cmd.InOrStdin())
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read tasks: %w", err)
	}

	var tasks []model.Task
	if err := json.Unmarshal(b, &tasks); err != nil {
		return nil, fmt.Errorf("parse tasks: %w", err)
	}
	for i, t := range tasks {
		if strings.TrimSpace(t.Label) == "" {
			return nil, fmt.Errorf("parse tasks: element %d has an empty label", i)
		}
		if utf8.RuneCountInString(t.Label) > controller.MaxLabelLen {
			return nil, fmt.Errorf("parse tasks: element %d label is longer than %d characters", i, controller.MaxLabelLen)
		}
		tasks[i].ID = 0
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

// parsePosition turns the 1-based position shown by `todos list` into an index.
func parsePosition(ref string, count int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(ref))
	if err != nil || n < 1 || n > count {
		return 0, taskRefError{ref: ref, count: count}
	}
	return n - 1, nil
}
