package draft

import (
	"context"
	"fmt"
)

// FormValue is one scalar multipart field.
type FormValue struct {
	Key   string
	Value string
}

// FormFile is one multipart file part.
type FormFile struct {
	Key        string
	Attachment Attachment
}

// Payload is the multipart submission, taken as a snapshot of a Draft.
type Payload struct {
	Values []FormValue
	Files  []FormFile
}

// NewPayload builds the submission for d. description mirrors
// problem_detail.
func NewPayload(d Draft) Payload {
	p := Payload{
		Values: []FormValue{
			{Key: "title", Value: d.Title},
			{Key: "description", Value: d.ProblemDetail},
			{Key: "problem_detail", Value: d.ProblemDetail},
			{Key: "assigned_to_pimpinan_id", Value: d.PimpinanID.String()},
			{Key: "category_id", Value: d.CategoryID.String()},
			{Key: "priority_id", Value: d.PriorityID.String()},
		},
	}
	for i, a := range d.Attachments {
		p.Files = append(p.Files, FormFile{Key: fmt.Sprintf("attachments[%d]", i), Attachment: a})
	}
	return p
}

// Value returns the scalar value stored under key.
func (p Payload) Value(key string) (string, bool) {
	for _, v := range p.Values {
		if v.Key == key {
			return v.Value, true
		}
	}
	return "", false
}

// Created is the backend's answer to a successful submission.
type Created struct {
	TicketID ID
}

// Submitter creates tickets on the backend.
type Submitter interface {
	CreateTicket(ctx context.Context, p Payload) (Created, error)
}

// Catalog resolves ids shown in the preview to display names.
type Catalog interface {
	CategoryName(id ID) (string, bool)
}
