// Package draft holds the in-progress ticket form and the controller that
// drives it through the gated creation steps.
package draft

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ID identifies a backend record (pimpinan, category, priority, ticket).
// The backend mixes numeric and uuid keys, so the client keeps it opaque.
type ID string

// Empty reports whether the id is unset or blank.
func (id ID) Empty() bool { return strings.TrimSpace(string(id)) == "" }

func (id ID) String() string { return string(id) }

// Attachment is a file picked by the user. Content, when set, is used
// instead of reading Path.
type Attachment struct {
	Name    string
	Path    string
	Size    int64
	Content []byte
}

// FileAttachment builds an Attachment for a file on disk.
func FileAttachment(path string) (Attachment, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Attachment{}, err
	}
	return Attachment{Name: filepath.Base(path), Path: path, Size: info.Size()}, nil
}

// Open returns the attachment's content.
func (a Attachment) Open() (io.ReadCloser, error) {
	if a.Content != nil {
		return io.NopCloser(bytes.NewReader(a.Content)), nil
	}
	return os.Open(a.Path)
}

// Draft is the ticket form state. It is a value: every With* method returns
// a modified copy and leaves the receiver untouched.
type Draft struct {
	Title         string
	PimpinanID    ID
	ProblemDetail string
	CategoryID    ID
	PriorityID    ID
	Attachments   []Attachment
}

func (d Draft) WithTitle(title string) Draft {
	d = d.clone()
	d.Title = title
	return d
}

func (d Draft) WithPimpinan(id ID) Draft {
	d = d.clone()
	d.PimpinanID = id
	return d
}

func (d Draft) WithProblemDetail(detail string) Draft {
	d = d.clone()
	d.ProblemDetail = detail
	return d
}

func (d Draft) WithCategory(id ID) Draft {
	d = d.clone()
	d.CategoryID = id
	return d
}

func (d Draft) WithPriority(id ID) Draft {
	d = d.clone()
	d.PriorityID = id
	return d
}

// WithAttachments appends files in order. Names are not de-duplicated.
func (d Draft) WithAttachments(files ...Attachment) Draft {
	out := make([]Attachment, 0, len(d.Attachments)+len(files))
	out = append(out, d.Attachments...)
	d.Attachments = append(out, files...)
	return d
}

// WithoutAttachment removes the attachment at index. An out-of-range index
// returns an unchanged copy.
func (d Draft) WithoutAttachment(index int) Draft {
	if index < 0 || index >= len(d.Attachments) {
		return d.clone()
	}
	d.Attachments = slices.Delete(slices.Clone(d.Attachments), index, index+1)
	return d
}

func (d Draft) clone() Draft {
	d.Attachments = slices.Clone(d.Attachments)
	return d
}

// IsZero reports whether nothing has been entered.
func (d Draft) IsZero() bool {
	return d.Title == "" && d.PimpinanID == "" && d.ProblemDetail == "" &&
		d.CategoryID == "" && d.PriorityID == "" && len(d.Attachments) == 0
}
