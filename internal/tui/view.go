package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexander-akhmetov/helpdesk/internal/draft"
	"github.com/alexander-akhmetov/helpdesk/internal/event"
)

func (m createModel) View() string {
	if m.ctrl.Completed() {
		return m.renderCompleted()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("🎫 HELPDESK · Buat Tiket"))
	b.WriteString("\n")
	b.WriteString(m.renderSteps())
	b.WriteString("\n\n")

	form := formBoxStyle.Render(m.renderForm())
	if preview, ok := m.renderPreview(); ok {
		form = lipgloss.JoinHorizontal(lipgloss.Top, form, " ", previewBoxStyle.Render(preview))
	}
	b.WriteString(form)
	b.WriteString("\n")

	if m.submitting {
		b.WriteString(m.spinner.View() + " ")
	}
	if notice := renderNotice(m.notice); notice != "" {
		b.WriteString(notice)
	}
	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

// renderSteps draws the step indicator. Steps never reached stay faint and
// cannot be jumped to.
func (m createModel) renderSteps() string {
	current := m.ctrl.Step()
	parts := make([]string, 0, draft.TotalSteps)
	for step := 1; step <= draft.TotalSteps; step++ {
		label := fmt.Sprintf("%d %s", step, draft.StepTitle(step))
		switch {
		case step == current:
			parts = append(parts, stepStyle.Render("● "+label))
		case step <= m.visited:
			parts = append(parts, visitedStepStyle.Render("○ "+label))
		default:
			parts = append(parts, pendingStepStyle.Render("○ "+label))
		}
	}
	return strings.Join(parts, labelStyle.Render("  ›  "))
}

func (m createModel) renderForm() string {
	step := m.ctrl.Step()
	errs := m.ctrl.Errors()

	var b strings.Builder
	b.WriteString(stepStyle.Render(fmt.Sprintf("Langkah %d dari %d: %s", step, draft.TotalSteps, draft.StepTitle(step))))
	b.WriteString("\n\n")

	switch step {
	case draft.StepBasicInfo:
		b.WriteString(fieldBlock("Judul", m.title.View(), errs, draft.FieldTitle))
		b.WriteString(fieldBlock(m.pimpinan.label, m.pimpinan.view(m.focus == 1), errs, m.pimpinan.field))
	case draft.StepProblemDetail:
		b.WriteString(fieldBlock("Detail masalah", m.detail.View(), errs, draft.FieldProblemDetail))
	case draft.StepClassification:
		b.WriteString(fieldBlock(m.category.label, m.category.view(m.focus == 0), errs, m.category.field))
		b.WriteString(fieldBlock(m.priority.label, m.priority.view(m.focus == 1), errs, m.priority.field))
	case draft.StepAttachments:
		b.WriteString(fieldBlock("Tambah berkas", m.path.View(), nil, ""))
		b.WriteString(m.renderAttachments())
	}
	return strings.TrimRight(b.String(), "\n")
}

func fieldBlock(label, input string, errs *draft.ValidationError, field draft.Field) string {
	var b strings.Builder
	b.WriteString(labelStyle.Render(label))
	b.WriteString("\n")
	b.WriteString(input)
	b.WriteString("\n")
	if errs != nil && field != "" && errs.Has(field) {
		b.WriteString(fieldErrorStyle.Render(errs.Message(field)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}

func (m createModel) renderAttachments() string {
	atts := m.ctrl.Draft().Attachments
	if len(atts) == 0 {
		return labelStyle.Render("Belum ada lampiran (opsional)") + "\n"
	}
	var b strings.Builder
	b.WriteString(labelStyle.Render(fmt.Sprintf("Lampiran (%d)", len(atts))))
	b.WriteString("\n")
	for _, a := range atts {
		fmt.Fprintf(&b, "  • %s %s\n", valueStyle.Render(a.Name), labelStyle.Render(formatSize(a.Size)))
	}
	return b.String()
}

func (m createModel) renderPreview() (string, bool) {
	p, ok := m.ctrl.Preview()
	if !ok {
		return "", false
	}
	title := p.Title
	if title == "" {
		title = "-"
	}
	category := p.Category
	if category == "" {
		category = "-"
	}

	var b strings.Builder
	b.WriteString(stepStyle.Render("Pratinjau"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s\n%s\n\n", labelStyle.Render("Judul"), valueStyle.Render(truncateText(title, 32)))
	fmt.Fprintf(&b, "%s\n%s\n\n", labelStyle.Render("Kategori"), valueStyle.Render(category))
	fmt.Fprintf(&b, "%s\n%s", labelStyle.Render("Lampiran"), valueStyle.Render(fmt.Sprintf("%d berkas", p.Attachments)))
	return b.String(), true
}

func (m createModel) renderHelp() string {
	var keys []string
	switch m.ctrl.Step() {
	case draft.StepAttachments:
		keys = []string{"enter: tambah/kirim", "ctrl+x: hapus terakhir", "ctrl+s: kirim"}
	case draft.StepProblemDetail:
		keys = []string{"ctrl+n: lanjut"}
	default:
		keys = []string{"enter/ctrl+n: lanjut", "tab: pindah kolom"}
	}
	if m.ctrl.Step() > 1 {
		keys = append(keys, "ctrl+b: kembali")
	}
	keys = append(keys, "alt+1..4: langkah", "esc: batal")
	return helpStyle.Render(strings.Join(keys, " • "))
}

func (m createModel) renderCompleted() string {
	created, _ := m.ctrl.Created()
	md := fmt.Sprintf("# Tiket berhasil dibuat\n\nNomor tiket: **#%s**\n\nTekan `n` untuk membuat tiket baru atau `q` untuk keluar.\n", created.TicketID)

	out := md
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(md); err == nil {
			out = rendered
		}
	}
	if m.notice != nil && m.notice.Kind != event.KindSuccess {
		out += "\n" + renderNotice(m.notice)
	}
	return out
}
