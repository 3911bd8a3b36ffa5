package tui

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
	"go.uber.org/zap"

	"github.com/alexander-akhmetov/helpdesk/internal/draft"
)

// submitOptions are the fields of a non-interactive submission.
type submitOptions struct {
	title    string
	pimpinan string
	detail   string
	category string
	priority string
	attach   []string
	json     bool
}

var submitOpts submitOptions

var submitCLICmd = &cobra.Command{
	Use:   "submit",
	Short: "Create a ticket from flags without the interactive form",
	Long: `Create a ticket in one call. The same checks as the interactive form apply:
title, pimpinan, problem detail, category and priority are required.

Example:
  helpdesk submit --title "Printer macet" --pimpinan 3 \
    --detail "Kertas tersangkut di lantai 2" --category 1 --priority 2 \
    --attach ~/foto.jpg --json`,
	RunE: runSubmit,
}

func init() {
	submitCLICmd.Flags().StringVar(&submitOpts.title, "title", "", "Ticket title")
	submitCLICmd.Flags().StringVar(&submitOpts.pimpinan, "pimpinan", "", "ID of the pimpinan the ticket is assigned to")
	submitCLICmd.Flags().StringVar(&submitOpts.detail, "detail", "", "Problem detail")
	submitCLICmd.Flags().StringVar(&submitOpts.category, "category", "", "Category ID")
	submitCLICmd.Flags().StringVar(&submitOpts.priority, "priority", "", "Priority ID")
	submitCLICmd.Flags().StringSliceVarP(&submitOpts.attach, "attach", "a", nil, "File to attach (repeatable)")
	submitCLICmd.Flags().BoolVar(&submitOpts.json, "json", false, "Print the result as JSON")
}

func runSubmit(cmd *cobra.Command, _ []string) error {
	s, err := openSession(0)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return submitTicket(ctx, os.Stdout, s.client, s.logger.Named("draft"), submitOpts)
}

// submitTicket drives a controller through the same gates as the form and
// prints the created ticket.
func submitTicket(ctx context.Context, out io.Writer, submitter draft.Submitter, logger *zap.Logger, opts submitOptions) error {
	ctrl := draft.NewController(submitter,
		draft.WithLogger(logger),
		draft.WithInitial(draft.Draft{
			Title:         opts.title,
			PimpinanID:    draft.ID(opts.pimpinan),
			ProblemDetail: opts.detail,
			CategoryID:    draft.ID(opts.category),
			PriorityID:    draft.ID(opts.priority),
		}),
	)
	for _, path := range opts.attach {
		att, err := draft.FileAttachment(expandPath(path))
		if err != nil {
			return fmt.Errorf("attachment %s: %w", path, err)
		}
		ctrl.AddFiles(att)
	}
	submitted := ctrl.Draft()

	created, err := ctrl.Submit(ctx)
	if err != nil {
		return fmt.Errorf("submit ticket: %w", err)
	}

	if !opts.json {
		fmt.Fprintf(out, "Tiket #%s berhasil dibuat\n", created.TicketID)
		if len(submitted.Attachments) > 0 {
			fmt.Fprintf(out, "Lampiran: %s\n", attachmentNames(submitted.Attachments))
		}
		return nil
	}

	doc, err := submitResultJSON(created, submitted)
	if err != nil {
		return err
	}
	_, err = out.Write(pretty.Pretty(doc))
	return err
}

func submitResultJSON(created draft.Created, d draft.Draft) ([]byte, error) {
	doc := []byte(`{}`)
	var err error
	set := func(path string, value any) {
		if err != nil {
			return
		}
		doc, err = sjson.SetBytes(doc, path, value)
	}

	set("ticket_id", created.TicketID.String())
	set("title", d.Title)
	set("assigned_to_pimpinan_id", d.PimpinanID.String())
	set("category_id", d.CategoryID.String())
	set("priority_id", d.PriorityID.String())
	set("attachments", []string{})
	for i, a := range d.Attachments {
		set(fmt.Sprintf("attachments.%d", i), a.Name)
	}
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return doc, nil
}
