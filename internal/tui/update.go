package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/alexander-akhmetov/helpdesk/internal/debug"
	"github.com/alexander-akhmetov/helpdesk/internal/draft"
	"github.com/alexander-akhmetov/helpdesk/internal/event"
)

func createRendererCmd(width int) tea.Cmd {
	return func() tea.Msg {
		wrap := max(width-6, 40)
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(wrap),
		)
		if err != nil {
			debug.Logf("tui: failed to create glamour renderer: %v", err)
		}
		return rendererReadyMsg{renderer: renderer}
	}
}

// submitCmd runs the submission off the update loop.
func submitCmd(ctx context.Context, ctrl *draft.Controller) tea.Cmd {
	return func() tea.Msg {
		created, err := ctrl.Submit(ctx)
		return submitDoneMsg{created: created, err: err}
	}
}

func (m createModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.WindowSize())
}

func (m createModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		first := m.width == 0
		m.width = msg.Width
		m.height = msg.Height
		m.detail.SetWidth(max(min(m.width/2, 80), 30))
		if first {
			return m, createRendererCmd(m.width)
		}

	case rendererReadyMsg:
		m.renderer = msg.renderer

	case spinner.TickMsg:
		if !m.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case submitDoneMsg:
		return m.handleSubmitDone(msg)
	}

	return m, nil
}

func (m createModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.ctrl.Completed() {
		switch msg.String() {
		case "n":
			m.ctrl.Restart()
			m.syncFromDraft()
			m.notice = nil
			m.visited = m.ctrl.Step()
			m.onStepChanged()
		case "q", "esc", "ctrl+c", "enter":
			return m, tea.Quit
		}
		return m, nil
	}

	if m.submitting {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	}

	switch key := msg.String(); key {
	case "ctrl+c", "esc":
		m.ctrl.Discard()
		return m, tea.Quit

	case "ctrl+n":
		return m.next()

	case "ctrl+b":
		m.ctrl.Back()
		m.notice = nil
		m.onStepChanged()

	case "ctrl+s":
		return m.submit()

	case "tab":
		m.cycleFocus(1)

	case "shift+tab":
		m.cycleFocus(-1)

	case "alt+1", "alt+2", "alt+3", "alt+4":
		step := int(key[len(key)-1] - '0')
		if step <= m.visited && m.ctrl.JumpTo(step) == nil {
			m.notice = nil
			m.onStepChanged()
		}

	default:
		return m.updateField(msg)
	}

	return m, nil
}

// updateField routes a key to the input under focus.
func (m createModel) updateField(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if c := m.focusedChooser(); c != nil {
		switch msg.String() {
		case "up", "left", "k", "h":
			c.move(-1)
			m.storeChooser(c)
		case "down", "right", "j", "l", " ":
			c.move(1)
			m.storeChooser(c)
		case "enter":
			return m.next()
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.ctrl.Step() {
	case draft.StepBasicInfo:
		if msg.String() == "enter" {
			return m.next()
		}
		m.title, cmd = m.title.Update(msg)
		m.ctrl.SetTitle(m.title.Value())

	case draft.StepProblemDetail:
		m.detail, cmd = m.detail.Update(msg)
		m.ctrl.SetProblemDetail(m.detail.Value())

	case draft.StepAttachments:
		switch msg.String() {
		case "enter":
			if strings.TrimSpace(m.path.Value()) == "" {
				return m.submit()
			}
			m.addAttachment()
			return m, nil
		case "ctrl+x":
			n := len(m.ctrl.Draft().Attachments)
			m.ctrl.RemoveAttachment(n - 1)
			return m, nil
		}
		m.path, cmd = m.path.Update(msg)
	}
	return m, cmd
}

func (m *createModel) addAttachment() {
	att, err := draft.FileAttachment(expandPath(m.path.Value()))
	if err != nil {
		e := event.Error(fmt.Sprintf("Berkas tidak dapat dibaca: %v", err))
		m.notice = &e
		return
	}
	m.ctrl.AddFiles(att)
	m.path.SetValue("")
	e := event.Info("Lampiran ditambahkan: " + att.Name)
	m.notice = &e
}

func (m createModel) next() (tea.Model, tea.Cmd) {
	err := m.ctrl.Next()
	switch {
	case err == nil:
		m.notice = nil
		m.onStepChanged()
	case errors.Is(err, draft.ErrLastStep):
		return m.submit()
	}
	// Validation errors are rendered inline from the controller.
	return m, nil
}

func (m createModel) submit() (tea.Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	m.submitting = true
	e := event.Info("Mengirim tiket...")
	m.notice = &e
	m.applyFocus()
	return m, tea.Batch(m.spinner.Tick, submitCmd(m.ctx, m.ctrl))
}

func (m createModel) handleSubmitDone(msg submitDoneMsg) (tea.Model, tea.Cmd) {
	m.submitting = false

	var verr *draft.ValidationError
	var serr *draft.SubmitError
	var e event.Event
	switch {
	case msg.err == nil:
		e = event.Success(fmt.Sprintf("Tiket #%s berhasil dibuat", msg.created.TicketID))
		m.syncFromDraft()
	case errors.As(msg.err, &verr):
		e = event.Error(fmt.Sprintf("Lengkapi langkah %d (%s) sebelum mengirim", verr.Step, draft.StepTitle(verr.Step)))
		m.onStepChanged()
	case errors.As(msg.err, &serr):
		e = event.Error(serr.Message)
		m.applyFocus()
	case errors.Is(msg.err, draft.ErrSubmitInFlight):
		return m, nil
	default:
		e = event.Error(msg.err.Error())
		m.applyFocus()
	}
	m.notice = &e
	return m, nil
}
