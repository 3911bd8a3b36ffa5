package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/alexander-akhmetov/helpdesk/internal/draft"
)

var _ draft.Submitter = (*Client)(nil)

// CreateTicket posts the payload as multipart/form-data to /tickets.
func (c *Client) CreateTicket(ctx context.Context, p draft.Payload) (draft.Created, error) {
	body, contentType, err := encodeMultipart(p)
	if err != nil {
		return draft.Created{}, err
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/tickets", nil, body)
	if err != nil {
		return draft.Created{}, err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.do(req)
	if err != nil {
		return draft.Created{}, err
	}

	id := firstString(gjson.ParseBytes(resp), "data.id", "data.ticket.id", "id", "ticket_id")
	if id == "" {
		return draft.Created{}, errors.New("create ticket: response has no ticket id")
	}
	c.logger.Info("ticket created", zap.String("ticket_id", id), zap.Int("attachments", len(p.Files)))
	return draft.Created{TicketID: draft.ID(id)}, nil
}

func encodeMultipart(p draft.Payload) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, v := range p.Values {
		if err := w.WriteField(v.Key, v.Value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", v.Key, err)
		}
	}
	for _, f := range p.Files {
		if err := writeFile(w, f); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

func writeFile(w *multipart.Writer, f draft.FormFile) error {
	src, err := f.Attachment.Open()
	if err != nil {
		return fmt.Errorf("open attachment %s: %w", f.Attachment.Name, err)
	}
	defer src.Close()

	part, err := w.CreateFormFile(f.Key, f.Attachment.Name)
	if err != nil {
		return fmt.Errorf("create part %s: %w", f.Key, err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return fmt.Errorf("copy attachment %s: %w", f.Attachment.Name, err)
	}
	return nil
}

func firstString(root gjson.Result, paths ...string) string {
	for _, p := range paths {
		if r := root.Get(p); r.Exists() && r.String() != "" {
			return r.String()
		}
	}
	return ""
}
