package requests

type CreateDisposition struct {
	DispositionKind string `json:"disposition_kind" validate:"required,disposition_kind"`
	// WardID narrows ward_admit reservations to a single ward. Optional.
	WardID string `json:"ward_id,omitempty"`
	// DepartmentID selects the owning department for ot_transfer. Optional,
	// falls back to the first active surgical department.
	DepartmentID string `json:"department_id,omitempty"`
	TriageLevel  int    `json:"triage_level,omitempty" validate:"omitempty,triage_level"`
	Notes        string `json:"notes,omitempty" validate:"max=2000"`
}
