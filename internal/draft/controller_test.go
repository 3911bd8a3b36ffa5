package draft

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexander-akhmetov/helpdesk/internal/wizard"
)

type backendError struct{ msg string }

func (e *backendError) Error() string         { return "backend: " + e.msg }
func (e *backendError) ServerMessage() string { return e.msg }

func fillAll(c *Controller) {
	c.SetTitle("VPN tidak bisa konek")
	c.SetPimpinan("7")
	c.SetProblemDetail("Sudah 2 hari")
	c.SetCategory("3")
	c.SetPriority("2")
}

func TestNextBlockedByMissingFields(t *testing.T) {
	c := NewController(NewMockSubmitter())

	err := c.Next()

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, StepBasicInfo, c.Step())
	assert.True(t, verr.Has(FieldTitle))
	assert.True(t, verr.Has(FieldPimpinan))
	assert.Equal(t, verr, c.Errors())

	c.SetTitle("VPN tidak bisa konek")
	err = c.Next()
	require.ErrorAs(t, err, &verr)
	assert.False(t, verr.Has(FieldTitle))
	assert.True(t, verr.Has(FieldPimpinan))
	assert.Equal(t, StepBasicInfo, c.Step())
}

func TestNextClearsErrorsOnSuccess(t *testing.T) {
	c := NewController(NewMockSubmitter())
	require.Error(t, c.Next())

	c.SetTitle("x")
	c.SetPimpinan("1")
	require.NoError(t, c.Next())

	assert.Nil(t, c.Errors())
	assert.Equal(t, StepProblemDetail, c.Step())
	assert.Equal(t, wizard.Forward, c.Direction())
}

func TestNextOnLastStep(t *testing.T) {
	c := NewController(NewMockSubmitter())
	require.NoError(t, c.JumpTo(StepAttachments))

	assert.ErrorIs(t, c.Next(), ErrLastStep)
	assert.Equal(t, StepAttachments, c.Step())
}

func TestBackAndJump(t *testing.T) {
	c := NewController(NewMockSubmitter())

	c.Back()
	assert.Equal(t, StepBasicInfo, c.Step())

	require.NoError(t, c.JumpTo(StepClassification))
	assert.Equal(t, StepClassification, c.Step())
	c.Back()
	assert.Equal(t, StepProblemDetail, c.Step())
	assert.Equal(t, wizard.Backward, c.Direction())

	assert.ErrorIs(t, c.JumpTo(0), wizard.ErrStepOutOfRange)
	assert.Equal(t, StepProblemDetail, c.Step())
}

func TestSubmitRevalidatesAndJumpsToFailingStep(t *testing.T) {
	mock := NewMockSubmitter()
	c := NewController(mock)
	fillAll(c)
	c.SetPriority("")
	require.NoError(t, c.JumpTo(StepAttachments))

	_, err := c.Submit(context.Background())

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, StepClassification, verr.Step)
	assert.True(t, verr.Has(FieldPriority))
	assert.Equal(t, StepClassification, c.Step())
	assert.Empty(t, mock.Calls())
}

func TestSubmitJumpsToEarliestFailingStep(t *testing.T) {
	mock := NewMockSubmitter()
	c := NewController(mock)
	require.NoError(t, c.JumpTo(StepAttachments))

	_, err := c.Submit(context.Background())

	require.Error(t, err)
	assert.Equal(t, StepBasicInfo, c.Step())
	assert.Empty(t, mock.Calls())
}

func TestSubmitFailureKeepsDraft(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantMessage string
	}{
		{
			name:        "server message surfaced",
			err:         &backendError{msg: "Kategori tidak ditemukan"},
			wantMessage: "Kategori tidak ditemukan",
		},
		{
			name:        "generic message without server message",
			err:         errors.New("connection refused"),
			wantMessage: genericSubmitMessage,
		},
		{
			name:        "empty server message falls back",
			err:         &backendError{},
			wantMessage: genericSubmitMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockSubmitter()
			mock.CreateTicketFunc = func(context.Context, Payload) (Created, error) {
				return Created{}, tt.err
			}
			c := NewController(mock)
			fillAll(c)
			c.AddFiles(Attachment{Name: "a.png", Content: []byte("a")})
			require.NoError(t, c.JumpTo(StepAttachments))
			before := c.Draft()

			_, err := c.Submit(context.Background())

			var serr *SubmitError
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, tt.wantMessage, serr.Message)
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, before, c.Draft())
			assert.Equal(t, StepAttachments, c.Step())
			assert.False(t, c.Completed())
			assert.False(t, c.Submitting())

			// retry is an explicit new call and sends the same data
			mock.CreateTicketFunc = nil
			created, err := c.Submit(context.Background())
			require.NoError(t, err)
			assert.Equal(t, ID("1"), created.TicketID)
			calls := mock.Calls()
			require.Len(t, calls, 2)
			assert.Equal(t, calls[0], calls[1])
		})
	}
}

func TestSubmitSuccessDiscardsDraftAndNavigates(t *testing.T) {
	mock := NewMockSubmitter()
	mock.CreateTicketFunc = func(context.Context, Payload) (Created, error) {
		return Created{TicketID: "42"}, nil
	}
	var navigated []ID
	c := NewController(mock, WithOnCreated(func(cr Created) { navigated = append(navigated, cr.TicketID) }))
	fillAll(c)
	require.NoError(t, c.JumpTo(StepAttachments))

	created, err := c.Submit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, ID("42"), created.TicketID)
	assert.Equal(t, []ID{"42"}, navigated)
	assert.True(t, c.Draft().IsZero())
	assert.True(t, c.Completed())
	got, ok := c.Created()
	assert.True(t, ok)
	assert.Equal(t, ID("42"), got.TicketID)

	c.Restart()
	assert.Equal(t, StepBasicInfo, c.Step())
	_, ok = c.Created()
	assert.False(t, ok)
}

func TestSubmitSingleFlight(t *testing.T) {
	release := make(chan struct{})
	mock := NewMockSubmitter()
	mock.CreateTicketFunc = func(context.Context, Payload) (Created, error) {
		<-release
		return Created{TicketID: "9"}, nil
	}
	c := NewController(mock)
	fillAll(c)

	done := make(chan error, 1)
	go func() {
		_, err := c.Submit(context.Background())
		done <- err
	}()
	require.Eventually(t, c.Submitting, time.Second, time.Millisecond)

	_, err := c.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.Len(t, mock.Calls(), 1)
}

func TestSubmitSnapshotsDraftAtClickTime(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	mock := NewMockSubmitter()
	mock.CreateTicketFunc = func(context.Context, Payload) (Created, error) {
		close(started)
		<-release
		return Created{}, errors.New("boom")
	}
	c := NewController(mock)
	fillAll(c)

	done := make(chan struct{})
	go func() {
		_, _ = c.Submit(context.Background())
		close(done)
	}()
	<-started
	c.SetTitle("edited while sending")
	close(release)
	<-done

	calls := mock.Calls()
	require.Len(t, calls, 1)
	title, _ := calls[0].Value("title")
	assert.Equal(t, "VPN tidak bisa konek", title)
	assert.Equal(t, "edited while sending", c.Draft().Title)
}

func TestPreview(t *testing.T) {
	c := NewController(NewMockSubmitter(), WithCatalog(StaticCatalog{"3": "Jaringan"}))
	c.SetTitle("VPN tidak bisa konek")
	c.SetPimpinan("7")

	_, ok := c.Preview()
	assert.False(t, ok, "no preview on the first step")

	require.NoError(t, c.Next())
	p, ok := c.Preview()
	require.True(t, ok)
	assert.Equal(t, "VPN tidak bisa konek", p.Title)
	assert.Equal(t, "", p.Category)

	c.SetTitle("VPN putus")
	c.SetCategory("3")
	p, _ = c.Preview()
	assert.Equal(t, "VPN putus", p.Title)
	assert.Equal(t, "Jaringan", p.Category)

	c.SetCategory("99")
	p, _ = c.Preview()
	assert.Equal(t, "99", p.Category, "unknown ids fall back to the raw id")
}

func TestDiscard(t *testing.T) {
	c := NewController(NewMockSubmitter(), WithInitial(completeDraft()))
	assert.False(t, c.Draft().IsZero())

	c.Discard()

	assert.True(t, c.Draft().IsZero())
}

func TestEndToEndScenario(t *testing.T) {
	mock := NewMockSubmitter()
	c := NewController(mock)

	c.SetTitle("VPN tidak bisa konek")
	c.SetPimpinan("7")
	require.NoError(t, c.Next())
	assert.Equal(t, StepProblemDetail, c.Step())

	c.SetProblemDetail("")
	err := c.Next()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Detail masalah harus diisi", verr.Message(FieldProblemDetail))
	assert.Equal(t, StepProblemDetail, c.Step())

	c.SetProblemDetail("Sudah 2 hari")
	require.NoError(t, c.Next())
	assert.Equal(t, StepClassification, c.Step())

	c.SetCategory("3")
	c.SetPriority("2")
	require.NoError(t, c.Next())
	assert.Equal(t, StepAttachments, c.Step())

	c.AddFiles(Attachment{Name: "error.png", Content: []byte("png")})
	_, err = c.Submit(context.Background())
	require.NoError(t, err)

	calls := mock.Calls()
	require.Len(t, calls, 1)
	p := calls[0]
	assert.Len(t, p.Values, 6)
	for key, want := range map[string]string{
		"title":                   "VPN tidak bisa konek",
		"description":             "Sudah 2 hari",
		"problem_detail":          "Sudah 2 hari",
		"assigned_to_pimpinan_id": "7",
		"category_id":             "3",
		"priority_id":             "2",
	} {
		got, ok := p.Value(key)
		assert.True(t, ok, key)
		assert.Equal(t, want, got, key)
	}
	require.Len(t, p.Files, 1)
	assert.Equal(t, "attachments[0]", p.Files[0].Key)
	assert.Equal(t, "error.png", p.Files[0].Attachment.Name)
}
