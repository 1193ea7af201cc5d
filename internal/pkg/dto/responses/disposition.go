package responses

type DispositionResult struct {
	Outcome         string `json:"outcome"`
	EncounterID     string `json:"encounter_id"`
	AdmissionID     string `json:"admission_id,omitempty"`
	AdmissionCode   string `json:"admission_code,omitempty"`
	BedID           string `json:"bed_id,omitempty"`
	WaitlistEntryID string `json:"waitlist_entry_id,omitempty"`
	SurgeryID       string `json:"surgery_id,omitempty"`
	SurgeryCode     string `json:"surgery_code,omitempty"`
}

type BedAvailability struct {
	Kind      string `json:"kind"`
	WardID    string `json:"ward_id,omitempty"`
	Available int64  `json:"available"`
}

type ReleaseBed struct {
	BedID  string `json:"bed_id"`
	Status string `json:"status"`
}
