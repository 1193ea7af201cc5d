package models

import "medicore-service/internal/pkg/constvars"

// Encounter is an emergency visit. It reaches this service in
// awaiting_disposition status and becomes terminal exactly once.
type Encounter struct {
	ID                 string `bson:"_id,omitempty"`
	PatientID          string `bson:"patientId"`
	PhysicianID        string `bson:"physicianId"`
	Status             string `bson:"status"`
	DispositionOutcome string `bson:"dispositionOutcome,omitempty"`
	DispositionNotes   string `bson:"dispositionNotes,omitempty"`
	TriageLevel        int    `bson:"triageLevel,omitempty"`
	TimeModel          `bson:",inline"`
}

func (e *Encounter) IsTerminal() bool {
	switch e.Status {
	case constvars.EncounterStatusAdmitted,
		constvars.EncounterStatusTransferred,
		constvars.EncounterStatusDischarged:
		return true
	}
	return false
}
