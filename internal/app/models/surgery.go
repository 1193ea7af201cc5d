package models

// SurgeryRecord always references an existing Admission.
type SurgeryRecord struct {
	ID                   string `bson:"_id,omitempty"`
	AdmissionID          string `bson:"admissionId"`
	EncounterID          string `bson:"encounterId"`
	DepartmentID         string `bson:"departmentId"`
	ProcedureDescription string `bson:"procedureDescription,omitempty"`
	SequenceCode         string `bson:"sequenceCode"`
	TimeModel            `bson:",inline"`
}
