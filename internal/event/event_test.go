package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventConstructors(t *testing.T) {
	tests := []struct {
		name  string
		fn    func(string) Event
		kind  Kind
		label string
	}{
		{"Info", Info, KindInfo, "info"},
		{"Success", Success, KindSuccess, "ok"},
		{"Warning", Warning, KindWarning, "warn"},
		{"Error", Error, KindError, "error"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := tc.fn("hello")
			assert.Equal(t, tc.kind, e.Kind)
			assert.Equal(t, "hello", e.Text)
			assert.Equal(t, tc.label, e.Kind.String())
		})
	}
}

func TestKindValues(t *testing.T) {
	kinds := []Kind{KindInfo, KindSuccess, KindWarning, KindError}
	seen := make(map[Kind]bool)
	for _, k := range kinds {
		assert.False(t, seen[k], "duplicate kind value: %d", k)
		seen[k] = true
	}
}

func TestHandler(t *testing.T) {
	var got []Event
	var h Handler = func(e Event) { got = append(got, e) }

	h(Success("Tiket #7 berhasil dibuat"))
	h(Error("Gagal membuat tiket"))

	assert.Equal(t, []Event{
		{Kind: KindSuccess, Text: "Tiket #7 berhasil dibuat"},
		{Kind: KindError, Text: "Gagal membuat tiket"},
	}, got)
}
