package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexander-akhmetov/helpdesk/internal/api"
	"github.com/alexander-akhmetov/helpdesk/internal/draft"
	"github.com/alexander-akhmetov/helpdesk/internal/event"
)

// chooser is a single-choice list bound to one draft id field.
type chooser struct {
	label   string
	field   draft.Field
	choices []api.Choice
	index   int // -1 when nothing is picked
}

func newChooser(label string, field draft.Field, choices []api.Choice) chooser {
	return chooser{label: label, field: field, choices: choices, index: -1}
}

func (c *chooser) move(delta int) {
	n := len(c.choices)
	if n == 0 {
		return
	}
	if c.index < 0 {
		if delta > 0 {
			c.index = 0
		} else {
			c.index = n - 1
		}
		return
	}
	c.index = ((c.index+delta)%n + n) % n
}

// pick selects the choice with id; unknown ids clear the selection.
func (c *chooser) pick(id draft.ID) {
	c.index = -1
	for i, choice := range c.choices {
		if choice.ID == id {
			c.index = i
			return
		}
	}
}

func (c chooser) selected() draft.ID {
	if c.index < 0 || c.index >= len(c.choices) {
		return ""
	}
	return c.choices[c.index].ID
}

func (c chooser) view(focused bool) string {
	value := labelStyle.Render("(pilih)")
	switch {
	case len(c.choices) == 0:
		value = labelStyle.Render("(tidak ada pilihan)")
	case c.index >= 0:
		value = valueStyle.Render(c.choices[c.index].Name)
	}
	if focused {
		return focusStyle.Render("‹ ") + value + focusStyle.Render(" ›")
	}
	return "  " + value
}

// submitDoneMsg carries the result of a submission run as a command.
type submitDoneMsg struct {
	created draft.Created
	err     error
}

type rendererReadyMsg struct {
	renderer *glamour.TermRenderer
}

// createModel is the bubbletea model of the ticket creation form.
type createModel struct {
	ctx  context.Context
	ctrl *draft.Controller

	title    textinput.Model
	detail   textarea.Model
	path     textinput.Model
	pimpinan chooser
	category chooser
	priority chooser

	focus      int
	visited    int
	submitting bool
	notice     *event.Event
	spinner    spinner.Model
	renderer   *glamour.TermRenderer
	width      int
	height     int
}

func newCreateModel(ctx context.Context, ctrl *draft.Controller, lookups *api.Lookups) createModel {
	if lookups == nil {
		lookups = &api.Lookups{}
	}

	title := textinput.New()
	title.Placeholder = "Contoh: Proyektor ruang 301 tidak menyala"
	title.CharLimit = 200
	title.Width = 50

	detail := textarea.New()
	detail.Placeholder = "Jelaskan masalahnya: kapan terjadi, apa yang sudah dicoba..."
	detail.ShowLineNumbers = false
	detail.SetWidth(60)
	detail.SetHeight(8)

	path := textinput.New()
	path.Placeholder = "~/Downloads/foto.jpg"
	path.Width = 50

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := createModel{
		ctx:      ctx,
		ctrl:     ctrl,
		title:    title,
		detail:   detail,
		path:     path,
		pimpinan: newChooser("Pimpinan", draft.FieldPimpinan, lookups.Pimpinan),
		category: newChooser("Kategori", draft.FieldCategory, lookups.Categories),
		priority: newChooser("Prioritas", draft.FieldPriority, lookups.Priorities),
		visited:  ctrl.Step(),
		spinner:  s,
	}
	m.syncFromDraft()
	m.applyFocus()
	return m
}

// syncFromDraft loads the controller's draft into the inputs, e.g. when the
// command line seeded it.
func (m *createModel) syncFromDraft() {
	d := m.ctrl.Draft()
	m.title.SetValue(d.Title)
	m.detail.SetValue(d.ProblemDetail)
	m.path.SetValue("")
	m.pimpinan.pick(d.PimpinanID)
	m.category.pick(d.CategoryID)
	m.priority.pick(d.PriorityID)
}

// fieldCount is the number of focusable inputs on step.
func fieldCount(step int) int {
	switch step {
	case draft.StepBasicInfo, draft.StepClassification:
		return 2
	default:
		return 1
	}
}

// applyFocus focuses the input under m.focus on the current step and blurs
// the rest.
func (m *createModel) applyFocus() {
	m.title.Blur()
	m.detail.Blur()
	m.path.Blur()
	if m.submitting {
		return
	}
	switch m.ctrl.Step() {
	case draft.StepBasicInfo:
		if m.focus == 0 {
			m.title.Focus()
		}
	case draft.StepProblemDetail:
		m.detail.Focus()
	case draft.StepAttachments:
		m.path.Focus()
	}
}

func (m *createModel) cycleFocus(delta int) {
	n := fieldCount(m.ctrl.Step())
	m.focus = ((m.focus+delta)%n + n) % n
	m.applyFocus()
}

// focusedChooser returns the chooser under focus, or nil when a text input
// has focus.
func (m *createModel) focusedChooser() *chooser {
	switch m.ctrl.Step() {
	case draft.StepBasicInfo:
		if m.focus == 1 {
			return &m.pimpinan
		}
	case draft.StepClassification:
		if m.focus == 0 {
			return &m.category
		}
		return &m.priority
	}
	return nil
}

// storeChooser writes a chooser's selection into the draft.
func (m *createModel) storeChooser(c *chooser) {
	id := c.selected()
	switch c.field {
	case draft.FieldPimpinan:
		m.ctrl.SetPimpinan(id)
	case draft.FieldCategory:
		m.ctrl.SetCategory(id)
	case draft.FieldPriority:
		m.ctrl.SetPriority(id)
	}
}

// onStepChanged resets focus after the wizard moved.
func (m *createModel) onStepChanged() {
	m.visited = max(m.visited, m.ctrl.Step())
	m.focus = 0
	m.applyFocus()
}

func attachmentNames(atts []draft.Attachment) string {
	names := make([]string, len(atts))
	for i, a := range atts {
		names[i] = a.Name
	}
	return strings.Join(names, ", ")
}
