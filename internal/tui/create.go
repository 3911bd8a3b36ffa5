package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexander-akhmetov/helpdesk/internal/api"
	"github.com/alexander-akhmetov/helpdesk/internal/draft"
	"github.com/alexander-akhmetov/helpdesk/internal/timing"
)

var createTitle string

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a ticket with the interactive form",
	Long: `Open the four-step ticket form:

  1. Informasi Dasar   title and the pimpinan the ticket is assigned to
  2. Detail Masalah    description of the problem
  3. Klasifikasi       category and priority
  4. Lampiran          optional files

A step can only be left once its required fields are filled. Every step is
checked again on submit.

Controls:
  enter / ctrl+n - Next step
  ctrl+b         - Previous step
  alt+1..4       - Jump to a visited step
  ctrl+s         - Submit
  esc            - Discard and quit`,
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVar(&createTitle, "title", "", "Prefill the ticket title")
}

func runCreate(cmd *cobra.Command, _ []string) error {
	s, err := openSession(0)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	timing.Log("runCreate: loading form options")
	lookupCtx, cancel := context.WithTimeout(ctx, s.cfg.APITimeout())
	lookups, err := api.LoadLookups(lookupCtx, s.client)
	cancel()
	if err != nil {
		return err
	}

	logger := s.logger.Named("draft")
	ctrl := draft.NewController(s.client,
		draft.WithLogger(logger),
		draft.WithCatalog(lookups),
		draft.WithInitial(draft.Draft{Title: createTitle}),
		draft.WithOnCreated(func(c draft.Created) {
			logger.Info("opening created ticket", zap.String("ticket_id", c.TicketID.String()))
		}),
	)

	timing.Log("runCreate: starting program")
	program := tea.NewProgram(newCreateModel(ctx, ctrl, lookups), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}

	if created, ok := ctrl.Created(); ok {
		fmt.Printf("Tiket #%s berhasil dibuat\n", created.TicketID)
	}
	return nil
}
