package tui

import (
	"context"

	"todos-cli/internal/controller"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type focusArea int

const (
	focusInput focusArea = iota
	focusList
)

// effectDoneMsg carries the action produced by an executed effect.
type effectDoneMsg struct {
	action controller.Action
}

type appModel struct {
	ctx  context.Context
	deps controller.Deps

	state controller.State

	width  int
	height int

	nameInput textinput.Model
	taskInput textinput.Model
	spinner   spinner.Model

	focus        focusArea
	cursor       int
	confirmFocus confirmModalFocus

	keys keyMap

	initCmds []tea.Cmd
}

func newAppModel(ctx context.Context, deps controller.Deps) appModel {
	m := appModel{
		ctx:  ctx,
		deps: deps,
		keys: defaultKeyMap(),
	}

	m.nameInput = textinput.New()
	m.nameInput.Placeholder = "Username"
	m.nameInput.CharLimit = 64
	m.nameInput.Width = 32
	m.nameInput.Cursor.SetMode(cursor.CursorStatic)

	m.taskInput = textinput.New()
	m.taskInput.Placeholder = "What needs to be done?"
	m.taskInput.CharLimit = controller.MaxLabelLen
	m.taskInput.Width = controller.MaxLabelLen + 2
	m.taskInput.Cursor.SetMode(cursor.CursorStatic)

	m.spinner = spinner.New()
	m.spinner.Spinner = spinner.Dot
	m.spinner.Style = styleTitle()

	m.nameInput.Focus()

	// Init is reduced up front; Init() only has a value receiver.
	m.initCmds = m.dispatch(controller.Init{})
	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.initCmds...)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.state.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case effectDoneMsg:
		if msg.action == nil {
			return m, nil
		}
		return m, tea.Batch(m.dispatch(msg.action)...)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		// Input is ignored while a login or bulk delete is in flight.
		if m.state.Loading {
			return m, nil
		}
		switch m.state.Phase {
		case controller.LoggedOut:
			return m.updateLogin(msg)
		case controller.LoggedIn:
			if m.state.ConfirmingClear() {
				return m.updateConfirmClear(msg)
			}
			if m.focus == focusInput {
				return m.updateTaskInput(msg)
			}
			return m.updateTaskList(msg)
		}
	}
	return m, nil
}

func (m appModel) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m, tea.Batch(m.dispatch(controller.SubmitLogin{Name: m.nameInput.Value()})...)
	case key.Matches(msg, m.keys.Back):
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	cmds := append([]tea.Cmd{cmd}, m.dispatch(controller.EditName{Text: m.nameInput.Value()})...)
	return m, tea.Batch(cmds...)
}

func (m appModel) updateTaskInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m, tea.Batch(m.dispatch(controller.SubmitTask{})...)
	case key.Matches(msg, m.keys.Focus), key.Matches(msg, m.keys.Back):
		m.setFocus(focusList)
		return m, nil
	case msg.Type == tea.KeyDown && len(m.state.Tasks) > 0:
		m.setFocus(focusList)
		return m, nil
	}
	var cmd tea.Cmd
	m.taskInput, cmd = m.taskInput.Update(msg)
	cmds := append([]tea.Cmd{cmd}, m.dispatch(controller.EditTask{Text: m.taskInput.Value()})...)
	return m, tea.Batch(cmds...)
}

func (m appModel) updateTaskList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Focus), key.Matches(msg, m.keys.Edit):
		m.setFocus(focusInput)
		return m, nil
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		} else {
			m.setFocus(focusInput)
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.state.Tasks)-1 {
			m.cursor++
		}
		return m, nil
	case key.Matches(msg, m.keys.Toggle):
		return m, tea.Batch(m.dispatch(controller.ToggleTask{Index: m.cursor})...)
	case key.Matches(msg, m.keys.Delete):
		return m, tea.Batch(m.dispatch(controller.DeleteTask{Index: m.cursor})...)
	case key.Matches(msg, m.keys.ClearAll):
		m.confirmFocus = confirmFocusCancel
		return m, tea.Batch(m.dispatch(controller.RequestClear{})...)
	case key.Matches(msg, m.keys.Refresh):
		return m, tea.Batch(m.dispatch(controller.Refresh{})...)
	case key.Matches(msg, m.keys.Logout):
		return m, tea.Batch(m.dispatch(controller.Logout{})...)
	}
	return m, nil
}

func (m appModel) updateConfirmClear(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m, tea.Batch(m.dispatch(controller.CancelClear{})...)
	case key.Matches(msg, m.keys.Focus), msg.Type == tea.KeyLeft, msg.Type == tea.KeyRight:
		m.confirmFocus = m.confirmFocus.toggle()
		return m, nil
	case msg.String() == "y":
		return m, tea.Batch(m.dispatch(controller.ConfirmClear{})...)
	case msg.String() == "n":
		return m, tea.Batch(m.dispatch(controller.CancelClear{})...)
	case key.Matches(msg, m.keys.Submit):
		if m.confirmFocus == confirmFocusConfirm {
			return m, tea.Batch(m.dispatch(controller.ConfirmClear{})...)
		}
		return m, tea.Batch(m.dispatch(controller.CancelClear{})...)
	}
	return m, nil
}

// dispatch reduces a and returns commands for the resulting effects.
func (m *appModel) dispatch(a controller.Action) []tea.Cmd {
	wasLoading := m.state.Loading
	prevPhase := m.state.Phase

	var effects []controller.Effect
	m.state, effects = controller.Reduce(m.state, a)

	var cmds []tea.Cmd
	for _, e := range effects {
		cmds = append(cmds, m.effectCmd(e))
	}
	if m.state.Loading && !wasLoading {
		cmds = append(cmds, m.spinner.Tick)
	}

	if m.state.Phase != prevPhase {
		switch m.state.Phase {
		case controller.LoggedIn:
			m.cursor = 0
			m.setFocus(focusInput)
		case controller.LoggedOut:
			m.nameInput.Focus()
			m.taskInput.Blur()
		}
	}
	m.syncInputs()
	m.clampCursor()
	return cmds
}

func (m appModel) effectCmd(e controller.Effect) tea.Cmd {
	ctx, deps := m.ctx, m.deps
	return func() tea.Msg {
		return effectDoneMsg{action: controller.Execute(ctx, deps, e)}
	}
}

func (m *appModel) setFocus(f focusArea) {
	m.focus = f
	if f == focusInput {
		m.taskInput.Focus()
		m.nameInput.Blur()
		return
	}
	m.taskInput.Blur()
}

func (m *appModel) syncInputs() {
	if m.nameInput.Value() != m.state.NameDraft {
		m.nameInput.SetValue(m.state.NameDraft)
	}
	if m.taskInput.Value() != m.state.TaskDraft {
		m.taskInput.SetValue(m.state.TaskDraft)
	}
}

func (m *appModel) clampCursor() {
	if m.cursor >= len(m.state.Tasks) {
		m.cursor = len(m.state.Tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if len(m.state.Tasks) == 0 && m.focus == focusList && m.state.LoggedIn() {
		m.setFocus(focusInput)
	}
}
