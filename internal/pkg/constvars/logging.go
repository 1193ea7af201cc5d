package constvars

const (
	LoggingRequestIDKey   = "request_id"
	LoggingEncounterIDKey = "encounter_id"
	LoggingBedIDKey       = "bed_id"
	LoggingAdmissionIDKey = "admission_id"
	LoggingWaitlistIDKey  = "waitlist_entry_id"
	LoggingSurgeryIDKey   = "surgery_id"
	LoggingOutcomeKey     = "outcome"
	LoggingKindKey        = "kind"
	LoggingSequenceKey    = "sequence_code"
	LoggingTopicKey       = "topic"
	LoggingEventIDKey     = "event_id"
	LoggingMethodKey      = "method"
	LoggingEndpointKey    = "endpoint"
	LoggingRemoteAddrKey  = "remote_addr"
	LoggingStatusCodeKey  = "status_code"
	LoggingDurationKey    = "duration"
	LoggingRedisKey       = "redis_key"
	LoggingLockValueKey   = "lock_value"
)
