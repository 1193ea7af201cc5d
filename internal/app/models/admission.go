package models

// Admission is append-only once created; only Status may change, and only to
// orphaned during saga compensation.
type Admission struct {
	ID           string `bson:"_id,omitempty"`
	EncounterID  string `bson:"encounterId"`
	PatientID    string `bson:"patientId"`
	PhysicianID  string `bson:"physicianId"`
	BedID        string `bson:"bedId,omitempty"`
	DepartmentID string `bson:"departmentId,omitempty"`
	SequenceCode string `bson:"sequenceCode"`
	Status       string `bson:"status"`
	Notes        string `bson:"notes,omitempty"`
	TimeModel    `bson:",inline"`
}
