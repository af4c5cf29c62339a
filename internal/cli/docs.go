package cli

import (
	"fmt"
	"strings"

	"todos-cli/internal/docs"

	"github.com/spf13/cobra"
)

const docsWrapWidth = 80

type topicsView struct {
	Topics []string `json:"topics"`
}

func (v topicsView) Text() string {
	return strings.Join(v.Topics, "\n")
}

// docView carries a topic's markdown; text output renders it with glamour.
type docView struct {
	Topic    string `json:"topic"`
	Markdown string `json:"markdown"`

	width int
}

func (v docView) Text() string {
	out, err := docs.Render(v.Markdown, v.width, docs.Style())
	if err != nil {
		return v.Markdown
	}
	return out
}

func newDocsCmd(app *App) *cobra.Command {
	var raw bool
	var width int

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show built-in help topics (rendered with --format text)",
		Example: strings.TrimSpace(`
  todos docs
  todos docs scripting --format text
  todos docs config --raw > config.md
`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return writeOut(cmd, app, topicsView{Topics: docs.Topics()})
			}

			topic := strings.ToLower(strings.TrimSpace(args[0]))
			body, ok := docs.Get(topic)
			if !ok {
				return fmt.Errorf("unknown docs topic: %q (one of: %s)", args[0], strings.Join(docs.Topics(), ", "))
			}

			if raw {
				_, err := fmt.Fprint(cmd.OutOrStdout(), body)
				return err
			}
			return writeOut(cmd, app, docView{Topic: topic, Markdown: body, width: width})
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown (no JSON envelope, no rendering)")
	cmd.Flags().IntVar(&width, "width", docsWrapWidth, "Wrap width for rendered text output")
	return cmd
}
