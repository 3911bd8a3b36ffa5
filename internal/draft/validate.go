package draft

import (
	"fmt"
	"strings"
)

// Creation steps, in order.
const (
	StepBasicInfo = iota + 1
	StepProblemDetail
	StepClassification
	StepAttachments

	TotalSteps = StepAttachments
)

// StepTitle returns the heading shown for a step.
func StepTitle(step int) string {
	switch step {
	case StepBasicInfo:
		return "Informasi Dasar"
	case StepProblemDetail:
		return "Detail Masalah"
	case StepClassification:
		return "Klasifikasi"
	case StepAttachments:
		return "Lampiran"
	default:
		return ""
	}
}

// Field names a required draft field by its form key.
type Field string

const (
	FieldTitle         Field = "title"
	FieldPimpinan      Field = "assigned_to_pimpinan_id"
	FieldProblemDetail Field = "problem_detail"
	FieldCategory      Field = "category_id"
	FieldPriority      Field = "priority_id"
)

var requiredMessages = map[Field]string{
	FieldTitle:         "Judul harus diisi",
	FieldPimpinan:      "Pimpinan harus dipilih",
	FieldProblemDetail: "Detail masalah harus diisi",
	FieldCategory:      "Kategori harus dipilih",
	FieldPriority:      "Prioritas harus dipilih",
}

// FieldError is an inline error for one field.
type FieldError struct {
	Field   Field
	Message string
}

// ValidationError lists the missing fields of one step.
type ValidationError struct {
	Step   int
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return fmt.Sprintf("step %d: %s", e.Step, strings.Join(msgs, "; "))
}

// Has reports whether field is among the missing ones.
func (e *ValidationError) Has(field Field) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// Message returns the inline message for field, or "".
func (e *ValidationError) Message(field Field) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

// Validate checks the fields required to leave step. The attachments step
// and unknown steps always pass.
func Validate(d Draft, step int) *ValidationError {
	var missing []Field
	switch step {
	case StepBasicInfo:
		if blank(d.Title) {
			missing = append(missing, FieldTitle)
		}
		if d.PimpinanID.Empty() {
			missing = append(missing, FieldPimpinan)
		}
	case StepProblemDetail:
		if blank(d.ProblemDetail) {
			missing = append(missing, FieldProblemDetail)
		}
	case StepClassification:
		if d.CategoryID.Empty() {
			missing = append(missing, FieldCategory)
		}
		if d.PriorityID.Empty() {
			missing = append(missing, FieldPriority)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	verr := &ValidationError{Step: step}
	for _, f := range missing {
		verr.Fields = append(verr.Fields, FieldError{Field: f, Message: requiredMessages[f]})
	}
	return verr
}

// ValidateAll checks steps in order and returns the first failure.
func ValidateAll(d Draft) *ValidationError {
	for step := StepBasicInfo; step < StepAttachments; step++ {
		if verr := Validate(d, step); verr != nil {
			return verr
		}
	}
	return nil
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }
