package cli

import (
	"context"
	"strings"

	"todos-cli/internal/controller"
	"todos-cli/internal/store"

	"github.com/spf13/cobra"
)

// runner drives the controller synchronously for one command invocation.
type runner struct {
	driver controller.Driver
	sess   store.Session
}

func (app *App) newRunner(cmd *cobra.Command) (*runner, error) {
	sess, err := app.openSession(commandContext(cmd))
	if err != nil {
		return nil, err
	}
	logger := app.stderrLogger(cmd)
	return &runner{
		driver: controller.Driver{Deps: controller.Deps{API: app.apiClient(logger), Session: sess, Logger: logger}},
		sess:   sess,
	}, nil
}

func (r *runner) Close() error { return r.sess.Close() }

// resume signs in as the remembered user, the same way the TUI does on start.
func (r *runner) resume(ctx context.Context) (controller.State, error) {
	s := r.driver.Dispatch(ctx, controller.State{}, controller.Init{})
	if s.LoggedIn() {
		return s, nil
	}
	if err := errAction(s); err != nil {
		return s, err
	}
	return s, notLoggedInError{}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func newLoginCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "login <name>",
		Short: "Sign in (creating the user on first use) and remember the name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if name == "" {
				return notLoggedInError{}
			}
			r, err := app.newRunner(cmd)
			if err != nil {
				return err
			}
			defer r.Close()

			ctx := commandContext(cmd)
			s := r.driver.Dispatch(ctx, controller.State{}, controller.SubmitLogin{Name: name})
			if err := errAction(s); err != nil {
				return err
			}
			return writeOut(cmd, app, newTaskListView(s))
		},
	}
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the remembered user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			sess, err := app.openSession(ctx)
			if err != nil {
				return err
			}
			defer sess.Close()

			if err := sess.Clear(ctx); err != nil {
				return err
			}
			return writeOut(cmd, app, userView{})
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the remembered user without contacting the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			sess, err := app.openSession(ctx)
			if err != nil {
				return err
			}
			defer sess.Close()

			name, err := sess.Read(ctx)
			if err != nil {
				return err
			}
			return writeOut(cmd, app, userView{User: name, LoggedIn: name != ""})
		},
	}
}
