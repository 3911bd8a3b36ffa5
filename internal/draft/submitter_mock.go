package draft

import (
	"context"
	"sync"
)

// MockSubmitter records CreateTicket calls. CreateTicketFunc, when set,
// decides the outcome.
type MockSubmitter struct {
	mu sync.Mutex

	CreateTicketFunc func(ctx context.Context, p Payload) (Created, error)

	CreateTicketCalls []Payload
}

var _ Submitter = (*MockSubmitter)(nil)

func NewMockSubmitter() *MockSubmitter {
	return &MockSubmitter{CreateTicketCalls: make([]Payload, 0)}
}

func (m *MockSubmitter) CreateTicket(ctx context.Context, p Payload) (Created, error) {
	m.mu.Lock()
	m.CreateTicketCalls = append(m.CreateTicketCalls, p)
	m.mu.Unlock()

	if m.CreateTicketFunc != nil {
		return m.CreateTicketFunc(ctx, p)
	}
	return Created{TicketID: "1"}, nil
}

// Calls returns a copy of the recorded payloads.
func (m *MockSubmitter) Calls() []Payload {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Payload(nil), m.CreateTicketCalls...)
}

// StaticCatalog is a Catalog backed by a map.
type StaticCatalog map[ID]string

func (c StaticCatalog) CategoryName(id ID) (string, bool) {
	name, ok := c[id]
	return name, ok
}
