package tui

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/alexander-akhmetov/helpdesk/internal/api"
	"github.com/alexander-akhmetov/helpdesk/internal/config"
	"github.com/alexander-akhmetov/helpdesk/internal/draft"
	"github.com/alexander-akhmetov/helpdesk/internal/metrics"
)

func completeSubmitOptions() submitOptions {
	return submitOptions{
		title:    "Printer macet",
		pimpinan: "3",
		detail:   "Kertas tersangkut",
		category: "1",
		priority: "2",
	}
}

func TestSubmitTicket_Text(t *testing.T) {
	sub := draft.NewMockSubmitter()
	sub.CreateTicketFunc = func(context.Context, draft.Payload) (draft.Created, error) {
		return draft.Created{TicketID: "42"}, nil
	}
	var out bytes.Buffer

	err := submitTicket(context.Background(), &out, sub, zap.NewNop(), completeSubmitOptions())
	require.NoError(t, err)

	assert.Equal(t, "Tiket #42 berhasil dibuat\n", out.String())
	calls := sub.Calls()
	require.Len(t, calls, 1)
	detail, _ := calls[0].Value("description")
	assert.Equal(t, "Kertas tersangkut", detail)
}

func TestSubmitTicket_JSONWithAttachments(t *testing.T) {
	sub := draft.NewMockSubmitter()
	dir := t.TempDir()
	a := filepath.Join(dir, "log.txt")
	b := filepath.Join(dir, "foto.png")
	require.NoError(t, os.WriteFile(a, []byte("log"), 0o600))
	require.NoError(t, os.WriteFile(b, []byte("png"), 0o600))

	opts := completeSubmitOptions()
	opts.attach = []string{a, b}
	opts.json = true
	var out bytes.Buffer

	require.NoError(t, submitTicket(context.Background(), &out, sub, zap.NewNop(), opts))

	doc := gjson.Parse(out.String())
	assert.Equal(t, "1", doc.Get("ticket_id").String())
	assert.Equal(t, "Printer macet", doc.Get("title").String())
	assert.Equal(t, "3", doc.Get("assigned_to_pimpinan_id").String())
	assert.Equal(t, []any{"log.txt", "foto.png"}, doc.Get("attachments").Value())

	calls := sub.Calls()
	require.Len(t, calls, 1)
	require.Len(t, calls[0].Files, 2)
	assert.Equal(t, "attachments[1]", calls[0].Files[1].Key)
}

func TestSubmitTicket_Incomplete(t *testing.T) {
	sub := draft.NewMockSubmitter()
	opts := completeSubmitOptions()
	opts.category = ""

	err := submitTicket(context.Background(), &bytes.Buffer{}, sub, zap.NewNop(), opts)

	var verr *draft.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, draft.StepClassification, verr.Step)
	assert.True(t, verr.Has(draft.FieldCategory))
	assert.Empty(t, sub.Calls())
}

func TestSubmitTicket_MissingAttachment(t *testing.T) {
	sub := draft.NewMockSubmitter()
	opts := completeSubmitOptions()
	opts.attach = []string{filepath.Join(t.TempDir(), "nope.pdf")}

	err := submitTicket(context.Background(), &bytes.Buffer{}, sub, zap.NewNop(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.pdf")
	assert.Empty(t, sub.Calls())
}

func TestSubmitTicket_BackendError(t *testing.T) {
	sub := draft.NewMockSubmitter()
	sub.CreateTicketFunc = func(context.Context, draft.Payload) (draft.Created, error) {
		return draft.Created{}, &api.APIError{Status: 500}
	}

	err := submitTicket(context.Background(), &bytes.Buffer{}, sub, zap.NewNop(), completeSubmitOptions())

	var serr *draft.SubmitError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "Gagal membuat tiket, silakan coba lagi", serr.Message)
}

type fakeChartSource struct {
	raw   []byte
	err   error
	kind  metrics.ChartKind
	hours int
}

func (f *fakeChartSource) FetchRaw(_ context.Context, kind metrics.ChartKind, hours int) ([]byte, error) {
	f.kind = kind
	f.hours = hours
	return f.raw, f.err
}

func TestPrintChart(t *testing.T) {
	now := func() time.Time { return time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC) }
	raw := []byte(`{"data":{"labels":["Open","Closed"],"data":[1,3]}}`)

	t.Run("rendered", func(t *testing.T) {
		src := &fakeChartSource{raw: raw}
		var out bytes.Buffer
		require.NoError(t, printChart(context.Background(), &out, src, metrics.KindDoughnut, 12, false, now))

		assert.Equal(t, metrics.KindDoughnut, src.kind)
		assert.Equal(t, 12, src.hours)
		assert.Contains(t, out.String(), "doughnut chart, 12 jam terakhir (2026-03-02 10:00)")
		assert.Contains(t, out.String(), "Closed")
		assert.Contains(t, out.String(), "75.0%")
	})

	t.Run("json", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, printChart(context.Background(), &out, &fakeChartSource{raw: raw}, metrics.KindDoughnut, 24, true, now))
		assert.Contains(t, out.String(), "\n  \"data\": {")
		assert.Equal(t, "Closed", gjson.Get(out.String(), "data.labels.1").String())
	})

	t.Run("fetch error", func(t *testing.T) {
		err := printChart(context.Background(), &bytes.Buffer{}, &fakeChartSource{err: errors.New("boom")}, metrics.KindLine, 24, false, now)
		assert.EqualError(t, err, "fetch line chart: boom")
	})

	t.Run("wrong shape", func(t *testing.T) {
		err := printChart(context.Background(), &bytes.Buffer{}, &fakeChartSource{raw: raw}, metrics.KindLine, 24, false, now)
		assert.ErrorIs(t, err, metrics.ErrUnexpectedShape)
	})
}

func TestPrintSession(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		session api.Session
		want    []string
	}{
		{
			name:    "valid",
			session: api.Session{Subject: "12", Name: "Budi", Email: "budi@kampus.ac.id", Role: api.RolePimpinan, ExpiresAt: now.Add(time.Hour)},
			want:    []string{"Nama:    Budi", "Email:   budi@kampus.ac.id", "ID:      12", "Peran:   pimpinan", "sampai 2026-03-02T11:00:00Z"},
		},
		{
			name:    "expired",
			session: api.Session{Role: api.RoleUser, ExpiresAt: now.Add(-time.Hour)},
			want:    []string{"(tanpa nama)", "kedaluwarsa sejak"},
		},
		{
			name:    "no expiry",
			session: api.Session{Name: "Admin", Role: api.RoleAdmin},
			want:    []string{"tanpa batas"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			printSession(&out, tt.session, now)
			for _, w := range tt.want {
				assert.Contains(t, out.String(), w)
			}
		})
	}
}

func TestPrintConfig(t *testing.T) {
	for _, k := range []string{"HELPDESK_API_URL", "HELPDESK_API_TOKEN", "HELPDESK_API_TIMEOUT",
		"HELPDESK_REFRESH_INTERVAL", "HELPDESK_RANGE_HOURS", "HELPDESK_LOG_LEVEL", "HELPDESK_LOG_FILE"} {
		t.Setenv(k, "")
	}
	t.Setenv("HELPDESK_STATE_DIR", "/state")
	cfg, err := config.LoadWithDirs(t.TempDir(), "")
	require.NoError(t, err)
	cfg.ApplyCLIFlags("", "secret", 0)

	var out bytes.Buffer
	printConfig(&out, cfg)

	s := out.String()
	assert.Contains(t, s, "base_url: http://localhost:8000/api")
	assert.Contains(t, s, "token:    (set)")
	assert.NotContains(t, s, "secret")
	assert.Contains(t, s, "refresh_interval: 3600s")
	assert.Contains(t, s, "file:  /state/helpdesk.log")
	assert.Contains(t, s, "cli:token")
	assert.NotContains(t, s, "warning")
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/budi")
	assert.Equal(t, "/home/budi/foto.jpg", expandPath("~/foto.jpg"))
	assert.Equal(t, "/home/budi", expandPath(" ~ "))
	assert.Equal(t, "/tmp/x", expandPath("/tmp/x"))
	assert.Equal(t, "~budi/x", expandPath("~budi/x"))
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "512 B", formatSize(512))
	assert.Equal(t, "2.0 KB", formatSize(2048))
	assert.Equal(t, "1.5 MB", formatSize(3<<19))
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "pendek", truncateText("pendek", 10))
	assert.Equal(t, "panj…", truncateText("panjang sekali", 5))
}
