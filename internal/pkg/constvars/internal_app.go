package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_CLINICIAN_ID_KEY         ContextKey = "clinician_id"
	CONTEXT_API_KEY_AUTH_KEY         ContextKey = "api_key_auth"
)

// Disposition kinds accepted by the disposition endpoint.
const (
	DispositionKindWardAdmit  = "ward_admit"
	DispositionKindICUAdmit   = "icu_admit"
	DispositionKindOTTransfer = "ot_transfer"
	DispositionKindDischarge  = "discharge"
)

// Terminal outcomes of one orchestration run.
const (
	DispositionOutcomeAdmitted         = "ADMITTED"
	DispositionOutcomeWaitlisted       = "WAITLISTED"
	DispositionOutcomeSurgeryScheduled = "SURGERY_SCHEDULED"
	DispositionOutcomeDischarged       = "DISCHARGED"
	DispositionOutcomeFailed           = "FAILED"
)

// Encounter statuses. Terminal statuses never transition back to pending.
const (
	EncounterStatusAwaitingDisposition = "awaiting_disposition"
	EncounterStatusAdmitted            = "admitted"
	EncounterStatusTransferred         = "transferred"
	EncounterStatusDischarged          = "discharged"
)

const (
	BedStatusAvailable   = "available"
	BedStatusReserved    = "reserved"
	BedStatusOccupied    = "occupied"
	BedStatusMaintenance = "maintenance"
)

const (
	BedKindWard = "ward"
	BedKindICU  = "icu"
)

const (
	WaitlistStatusPending   = "pending"
	WaitlistStatusFulfilled = "fulfilled"
	WaitlistStatusCancelled = "cancelled"
)

const (
	AdmissionStatusActive   = "active"
	AdmissionStatusOrphaned = "orphaned"
)

// Sequence code kinds. The kind doubles as the code prefix.
const (
	SequenceKindAdmission = "ADM"
	SequenceKindSurgery   = "OT"
	SequenceKindWaitlist  = "WL"

	SequenceDateKeyLayout = "20060102"
)

const (
	MongoCollectionEncounters       = "encounters"
	MongoCollectionBeds             = "beds"
	MongoCollectionAdmissions       = "admissions"
	MongoCollectionWaitlistEntries  = "waitlist_entries"
	MongoCollectionSurgeries        = "surgeries"
	MongoCollectionDepartments      = "departments"
	MongoCollectionSequenceCounters = "sequence_counters"
)

// Event topics published to the disposition event queue.
const (
	EventTopicEncounterAdmitted   = "encounter.admitted"
	EventTopicEncounterWaitlisted = "encounter.waitlisted"
	EventTopicEncounterDischarged = "encounter.discharged"
	EventTopicSurgeryScheduled    = "encounter.surgery_scheduled"
	EventTopicBedReleased         = "bed.released"
	EventTopicWaitlistFulfilled   = "waitlist.fulfilled"
)

const (
	RedisKeyBedAvailabilityPrefix = "beds:availability:"
	RedisKeyWaitlistMonitorLock   = "waitlist:monitor:lock"
)
