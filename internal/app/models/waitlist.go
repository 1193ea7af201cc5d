package models

// WaitlistEntry is created only when a reservation attempt found zero
// matching available beds.
type WaitlistEntry struct {
	ID            string `bson:"_id,omitempty"`
	EncounterID   string `bson:"encounterId"`
	PatientID     string `bson:"patientId"`
	RequestedKind string `bson:"requestedKind"`
	WardID        string `bson:"wardId,omitempty"`
	Priority      int    `bson:"priority"`
	Status        string `bson:"status"`
	SequenceCode  string `bson:"sequenceCode"`
	AdmissionID   string `bson:"admissionId,omitempty"`
	TimeModel     `bson:",inline"`
}
