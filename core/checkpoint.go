package core

import "time"

// Checkpoint records the resumable progress of a long-running processor,
// such as a re-indexing run over the embedding store.
type Checkpoint struct {
	ProcessorType string
	LastSourceID  string
	Processed     int
	UpdatedAt     time.Time
}
