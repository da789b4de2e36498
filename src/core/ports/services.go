package ports

import (
	"context"
	"time"

	"isiledger/src/core/domain"
)

// ExternalService is the base interface for external service adapters.
type ExternalService interface {
	// Health checks if the external service is reachable.
	Health(ctx context.Context) error
}

// Submission outcomes recorded in the journal.
const (
	StatusApplied  = "applied"
	StatusRejected = "rejected"
)

// JournalEntry is one submitted instruction and its outcome.
type JournalEntry struct {
	Hash        string    `json:"hash"`
	Kind        string    `json:"kind"`
	Destination string    `json:"destination"`
	Status      string    `json:"status"`
	Error       string    `json:"error,omitempty"`
	At          time.Time `json:"at"`
}

// Journal is an append-only record of submissions.
type Journal interface {
	Append(entry JournalEntry) error
	Close() error
}

// Event announces an applied instruction to subscribers.
type Event struct {
	Hash        string    `json:"hash"`
	Kind        string    `json:"kind"`
	Destination string    `json:"destination"`
	At          time.Time `json:"at"`
}

// EventPublisher fans events out. Publish must not block on slow
// subscribers.
type EventPublisher interface {
	Publish(event Event)
}

// Hasher derives the content hash of an instruction.
type Hasher interface {
	Hash(ins domain.Instruction) (string, error)
}

// Genesis seeds an empty world state.
type Genesis struct {
	Domains      []domain.Name
	Instructions []domain.Instruction
}
