package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type confirmModalFocus int

const (
	confirmFocusCancel confirmModalFocus = iota
	confirmFocusConfirm
)

func (f confirmModalFocus) toggle() confirmModalFocus {
	if f == confirmFocusConfirm {
		return confirmFocusCancel
	}
	return confirmFocusConfirm
}

func modalBodyWidth(width int) int {
	w := width - 10
	if w > 56 {
		w = 56
	}
	if w < 24 {
		w = 24
	}
	return w
}

func renderModalBox(width int, title string, content string) string {
	bodyW := modalBodyWidth(width)
	header := lipgloss.NewStyle().Bold(true).Width(bodyW).Render(title)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Background(colorModalBg).
		Padding(1, 2)
	return box.Render(header + "\n\n" + content)
}

func renderConfirmModal(width int, title string, body string, confirmLabel string, cancelLabel string, focus confirmModalFocus) string {
	// No borders on the buttons: nested bordered components inside a modal
	// with a background color leave artifacts in some terminals.
	btnBase := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	btnActive := btnBase.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	confirm := btnBase.Render(confirmLabel)
	cancel := btnBase.Render(cancelLabel)
	if focus == confirmFocusConfirm {
		confirm = btnActive.Render(confirmLabel)
	}
	if focus == confirmFocusCancel {
		cancel = btnActive.Render(cancelLabel)
	}

	controls := lipgloss.JoinHorizontal(lipgloss.Top, cancel, " ", confirm)

	bodyW := modalBodyWidth(width)
	help := styleMuted().Width(bodyW).Render("tab: focus   enter: select   esc: cancel")

	content := strings.Join([]string{
		lipgloss.NewStyle().Width(bodyW).Render(body),
		"",
		controls,
		"",
		help,
	}, "\n")
	return renderModalBox(width, title, content)
}
