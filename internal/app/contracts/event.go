package contracts

import (
	"context"
	"time"
)

// DispositionEvent is the payload published after a disposition commits.
type DispositionEvent struct {
	ID              string    `json:"id"`
	Topic           string    `json:"topic"`
	EncounterID     string    `json:"encounter_id"`
	PatientID       string    `json:"patient_id,omitempty"`
	Outcome         string    `json:"outcome"`
	AdmissionID     string    `json:"admission_id,omitempty"`
	BedID           string    `json:"bed_id,omitempty"`
	WaitlistEntryID string    `json:"waitlist_entry_id,omitempty"`
	SurgeryID       string    `json:"surgery_id,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}

type EventPublisher interface {
	// PublishDispositionEvent delivers at-least-once after commit. Callers
	// treat failures as log-and-continue; a committed disposition is never
	// rolled back because its notification failed.
	PublishDispositionEvent(ctx context.Context, event *DispositionEvent) error
}
