package draft

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/alexander-akhmetov/helpdesk/internal/wizard"
)

var (
	// ErrSubmitInFlight is returned when Submit is called while a previous
	// submission has not returned yet.
	ErrSubmitInFlight = errors.New("submission already in progress")
	// ErrLastStep is returned by Next on the attachments step; that step is
	// left through Submit.
	ErrLastStep = errors.New("last step: submit the ticket instead")
)

// genericSubmitMessage is shown when the backend gave no usable message.
const genericSubmitMessage = "Gagal membuat tiket, silakan coba lagi"

// SubmitError is a failed submission. The draft is kept for retry.
type SubmitError struct {
	Message string
	Err     error
}

func (e *SubmitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *SubmitError) Unwrap() error { return e.Err }

// serverMessager is implemented by backend errors that carry a message
// meant for the user.
type serverMessager interface {
	ServerMessage() string
}

// Preview is the read-only summary shown beside steps 2..4.
type Preview struct {
	Title       string
	Category    string
	Attachments int
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithCatalog sets the catalog used to name categories in the preview.
func WithCatalog(cat Catalog) Option {
	return func(c *Controller) { c.catalog = cat }
}

// WithOnCreated sets the hook fired after a successful submission, used to
// navigate to the created ticket.
func WithOnCreated(fn func(Created)) Option {
	return func(c *Controller) { c.onCreated = fn }
}

// WithInitial seeds the draft, e.g. from command line flags.
func WithInitial(d Draft) Option {
	return func(c *Controller) { c.draft = d }
}

// Controller drives one ticket draft through the creation steps. It is safe
// for concurrent use: the TUI submits from a command goroutine while key
// handling keeps running.
type Controller struct {
	mu        sync.Mutex
	draft     Draft
	wiz       *wizard.Wizard
	errs      *ValidationError
	submitter Submitter
	catalog   Catalog
	logger    *zap.Logger
	onCreated func(Created)
	inFlight  bool
	created   *Created
}

// NewController creates a controller positioned on the first step.
func NewController(submitter Submitter, opts ...Option) *Controller {
	c := &Controller{
		submitter: submitter,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	wiz, err := wizard.New(TotalSteps, wizard.WithCallbacks(wizard.Callbacks{
		OnStepChange: func(step int) {
			c.logger.Debug("draft step changed", zap.Int("step", step))
		},
		OnFinalStepCompleted: func() {
			c.logger.Debug("draft wizard completed")
		},
	}))
	if err != nil {
		panic(err) // TotalSteps is a positive constant
	}
	c.wiz = wiz
	return c
}

// Draft returns the current draft value.
func (c *Controller) Draft() Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft.clone()
}

// Step returns the current wizard step; TotalSteps+1 once submitted.
func (c *Controller) Step() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.wiz.Current()
}

// Direction returns the last navigation direction.
func (c *Controller) Direction() wizard.Direction {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.wiz.Direction()
}

// Completed reports whether the ticket was created.
func (c *Controller) Completed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.wiz.Completed()
}

// Created returns the last successful submission result.
func (c *Controller) Created() (Created, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.created == nil {
		return Created{}, false
	}
	return *c.created, true
}

// Submitting reports whether a submission is outstanding.
func (c *Controller) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// Errors returns the inline errors from the last failed gate, or nil.
func (c *Controller) Errors() *ValidationError {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errs
}

// Update replaces the draft with fn(current).
func (c *Controller) Update(fn func(Draft) Draft) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = fn(c.draft)
}

func (c *Controller) SetTitle(v string) {
	c.Update(func(d Draft) Draft { return d.WithTitle(v) })
}

func (c *Controller) SetPimpinan(id ID) {
	c.Update(func(d Draft) Draft { return d.WithPimpinan(id) })
}

func (c *Controller) SetProblemDetail(v string) {
	c.Update(func(d Draft) Draft { return d.WithProblemDetail(v) })
}

func (c *Controller) SetCategory(id ID) {
	c.Update(func(d Draft) Draft { return d.WithCategory(id) })
}

func (c *Controller) SetPriority(id ID) {
	c.Update(func(d Draft) Draft { return d.WithPriority(id) })
}

// AddFiles appends attachments in order.
func (c *Controller) AddFiles(files ...Attachment) {
	c.Update(func(d Draft) Draft { return d.WithAttachments(files...) })
}

// RemoveAttachment deletes the attachment at index; out-of-range is a no-op.
func (c *Controller) RemoveAttachment(index int) {
	c.Update(func(d Draft) Draft { return d.WithoutAttachment(index) })
}

// Next gates the current step and advances on success. On failure the
// inline errors are recorded and returned as a *ValidationError.
func (c *Controller) Next() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	step := c.wiz.Current()
	if c.wiz.Completed() || c.wiz.IsLast() {
		return ErrLastStep
	}
	if verr := Validate(c.draft, step); verr != nil {
		c.errs = verr
		c.logger.Info("draft step blocked", zap.Int("step", step), zap.String("error", verr.Error()))
		return verr
	}
	c.errs = nil
	c.wiz.Advance()
	return nil
}

// Back moves to the previous step.
func (c *Controller) Back() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errs = nil
	c.wiz.Retreat()
}

// JumpTo moves directly to step without gating it. Submit re-validates.
func (c *Controller) JumpTo(step int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.wiz.JumpTo(step); err != nil {
		return err
	}
	c.errs = nil
	return nil
}

// Preview summarizes the draft. It is only available past the first step.
func (c *Controller) Preview() (Preview, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.wiz.Current() <= StepBasicInfo || c.wiz.Completed() {
		return Preview{}, false
	}
	p := Preview{Title: c.draft.Title, Attachments: len(c.draft.Attachments)}
	if !c.draft.CategoryID.Empty() {
		p.Category = c.draft.CategoryID.String()
		if c.catalog != nil {
			if name, ok := c.catalog.CategoryName(c.draft.CategoryID); ok {
				p.Category = name
			}
		}
	}
	return p, true
}

// Submit re-validates every step, then sends a snapshot of the draft. A
// validation failure moves the wizard to the first failing step without a
// network call. A backend failure keeps the draft for retry.
func (c *Controller) Submit(ctx context.Context) (Created, error) {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return Created{}, ErrSubmitInFlight
	}
	if verr := ValidateAll(c.draft); verr != nil {
		c.errs = verr
		_ = c.wiz.JumpTo(verr.Step)
		c.mu.Unlock()
		c.logger.Info("draft submit blocked", zap.Int("step", verr.Step), zap.String("error", verr.Error()))
		return Created{}, verr
	}
	c.errs = nil
	c.inFlight = true
	payload := NewPayload(c.draft)
	c.mu.Unlock()

	created, err := c.submitter.CreateTicket(ctx, payload)

	c.mu.Lock()
	c.inFlight = false
	if err != nil {
		c.mu.Unlock()
		serr := &SubmitError{Message: genericSubmitMessage, Err: err}
		var sm serverMessager
		if errors.As(err, &sm) && sm.ServerMessage() != "" {
			serr.Message = sm.ServerMessage()
		}
		c.logger.Warn("ticket submission failed", zap.Error(err))
		return Created{}, serr
	}
	c.draft = Draft{}
	c.created = &created
	c.wiz.Complete()
	onCreated := c.onCreated
	c.mu.Unlock()

	c.logger.Info("ticket created", zap.String("ticket_id", created.TicketID.String()))
	if onCreated != nil {
		onCreated(created)
	}
	return created, nil
}

// Discard drops the draft, e.g. when the user navigates away.
func (c *Controller) Discard() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = Draft{}
	c.errs = nil
}

// Restart returns to the first step for another ticket. The draft is kept
// when the previous one was not submitted.
func (c *Controller) Restart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errs = nil
	c.created = nil
	c.wiz.Reset()
}
