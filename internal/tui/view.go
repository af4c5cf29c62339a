package tui

import (
	"fmt"
	"strings"

	"todos-cli/internal/controller"

	xansi "github.com/charmbracelet/x/ansi"
)

const appTitle = "todos"

func (m appModel) View() string {
	var b strings.Builder
	b.WriteString(styleTitle().Render(appTitle))
	if m.state.Loading {
		b.WriteString(" " + m.spinner.View())
	}
	b.WriteString("\n\n")

	switch m.state.Phase {
	case controller.LoggedIn:
		b.WriteString(m.viewTasks())
	default:
		b.WriteString(m.viewLogin())
	}

	if m.state.Err != "" {
		b.WriteString("\n" + styleError().Render(m.state.Err) + "\n")
	}
	b.WriteString("\n" + styleMuted().Render(m.helpLine()))

	out := b.String()
	if m.state.ConfirmingClear() {
		modal := renderConfirmModal(
			m.width,
			"Delete all tasks?",
			fmt.Sprintf("This removes %s from the server.", pluralTasks(len(m.state.Tasks))),
			"Delete all",
			"Cancel",
			m.confirmFocus,
		)
		out += "\n\n" + modal
	}
	return out
}

func (m appModel) viewLogin() string {
	if m.state.Phase == controller.LoggingIn {
		return styleMuted().Render("Signing in as "+m.state.PendingName+"...") + "\n"
	}
	return "Who are you?\n\n" + m.nameInput.View() + "\n"
}

func (m appModel) viewTasks() string {
	var b strings.Builder
	b.WriteString(styleMuted().Render("Signed in as ") + m.state.Username + "\n\n")
	b.WriteString(m.taskInput.View() + "\n\n")

	if len(m.state.Tasks) == 0 {
		b.WriteString(styleMuted().Render("No tasks, add a task") + "\n")
	} else {
		for i, t := range m.state.Tasks {
			box := "[ ]"
			label := t.Label
			if t.IsDone {
				box = "[x]"
				label = styleDone().Render(label)
			}
			line := box + " " + label
			if m.focus == focusList && i == m.cursor {
				line = styleSelected().Render("> " + box + " " + t.Label)
			} else {
				line = "  " + line
			}
			b.WriteString(m.fitRow(line) + "\n")
		}
	}

	b.WriteString("\n" + styleMuted().Render(itemsLeft(m.state.PendingCount())) + "\n")
	return b.String()
}

// fitRow keeps a task row on one terminal line. Labels written by other
// clients of the same account can exceed the input limit.
func (m appModel) fitRow(line string) string {
	if m.width <= 0 || xansi.StringWidth(line) <= m.width {
		return line
	}
	return xansi.Truncate(line, m.width, "…")
}

func (m appModel) helpLine() string {
	var parts []string
	switch {
	case m.state.Phase != controller.LoggedIn:
		parts = []string{"enter: sign in", "esc: quit"}
	case m.state.ConfirmingClear():
		parts = []string{"y/enter: confirm", "n/esc: cancel", "tab: switch"}
	case m.focus == focusInput:
		parts = []string{"enter: add", "tab: list", "ctrl+c: quit"}
	default:
		parts = []string{
			m.keys.Toggle.Help().Key + ": " + m.keys.Toggle.Help().Desc,
			m.keys.Delete.Help().Key + ": " + m.keys.Delete.Help().Desc,
			m.keys.ClearAll.Help().Key + ": " + m.keys.ClearAll.Help().Desc,
			m.keys.Refresh.Help().Key + ": " + m.keys.Refresh.Help().Desc,
			m.keys.Logout.Help().Key + ": " + m.keys.Logout.Help().Desc,
			m.keys.Quit.Help().Key + ": " + m.keys.Quit.Help().Desc,
		}
	}
	return strings.Join(parts, "  ")
}

func itemsLeft(n int) string {
	if n == 1 {
		return "1 item left"
	}
	return fmt.Sprintf("%d items left", n)
}

func pluralTasks(n int) string {
	if n == 1 {
		return "1 task"
	}
	return fmt.Sprintf("%d tasks", n)
}
