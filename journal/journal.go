// Package journal records issued tickets for reporting. Card state itself
// is never persisted; only the immutable Ticket records a run emits.
package journal

import (
	"context"
	"sync"

	"github.com/warp/fare-engine/fare"
)

// Journal is an append-only record of issued tickets.
type Journal interface {
	// Append stores a ticket. Append-only; tickets are never updated.
	Append(ctx context.Context, t fare.Ticket) error

	// ListByCard returns all tickets for a card in issue order.
	ListByCard(ctx context.Context, cardID int) ([]fare.Ticket, error)

	// All returns every recorded ticket in issue order.
	All(ctx context.Context) ([]fare.Ticket, error)
}

// =============================================================================
// MEMORY JOURNAL - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu      sync.RWMutex
	tickets []fare.Ticket
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Append(_ context.Context, t fare.Ticket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tickets = append(m.tickets, t)
	return nil
}

func (m *Memory) ListByCard(_ context.Context, cardID int) ([]fare.Ticket, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []fare.Ticket
	for _, t := range m.tickets {
		if t.CardID == cardID {
			result = append(result, t)
		}
	}
	return result, nil
}

func (m *Memory) All(_ context.Context) ([]fare.Ticket, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]fare.Ticket, len(m.tickets))
	copy(result, m.tickets)
	return result, nil
}
