package constvars

const (
	URLParamEncounterID = "encounter_id"
	URLParamBedID       = "bed_id"
)

const (
	URLQueryParamWardID = "ward_id"
	URLQueryParamKind   = "kind"
)
