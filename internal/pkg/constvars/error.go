package constvars

// Validation messages for request payloads, mapped by validator tag
var CustomValidationErrorMessages = map[string]string{
	"required":         "is required",
	"min":              "must be at least %s",
	"max":              "maximum at %s",
	"disposition_kind": "must be one of ward_admit, icu_admit, ot_transfer, discharge",
	"bed_kind":         "must be one of ward, icu",
	"triage_level":     "must be between 1 and 5",
}

// Tags whose message contains a parameter placeholder
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"oneof": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientEncounterNotFound             = "encounter not found"
	ErrClientEncounterAlreadyTerminal      = "encounter has already been dispositioned"
	ErrClientDepartmentNotFound            = "no surgical department available"
	ErrClientBedNotFound                   = "bed not found"
	ErrClientBedContention                 = "bed allocation is busy, please retry"
	ErrClientSequenceUnavailable           = "record numbering is temporarily unavailable"
	ErrClientDispositionIncomplete         = "disposition could not be completed, staff has been notified"
)

// Error messages for developers
const (
	ErrDevInvalidInput      = "invalid input"
	ErrDevCannotParseJSON   = "cannot parse JSON"
	ErrDevValidationFailed  = "validation failed"
	ErrDevDocumentNotFound  = "document not found"
	ErrDevUnauthorized      = "unauthorized access"
	ErrDevInvalidAPIKey     = "invalid api key"
	ErrDevAuthTokenMissing  = "token missing"
	ErrDevAuthTokenInvalid  = "invalid token"
	ErrDevAuthSigningMethod = "unexpected signing method"

	// Disposition messages
	ErrDevEncounterNotFound          = "encounter not found"
	ErrDevEncounterAlreadyTerminal   = "encounter already in terminal status"
	ErrDevUnknownDispositionKind     = "unknown disposition kind"
	ErrDevDepartmentNotFound         = "no department matched and no active fallback found"
	ErrDevBedNotFound                = "bed not found"
	ErrDevBedReservationConflict     = "bed reservation precondition failed at commit"
	ErrDevSequenceUnavailable        = "sequence counter store unreachable"
	ErrDevPartialCommitAdmission     = "surgery record creation failed after admission was created"
	ErrDevCompensationReleaseFailed  = "failed to release reserved bed during compensation"
	ErrDevEncounterTransitionFailed  = "encounter status transition lost the race"
	ErrDevWaitlistEntryCreateFailed  = "failed to create waitlist entry"
	ErrDevEventPublishFailed         = "failed to publish disposition event"
	ErrDevAvailabilityCacheUnhealthy = "bed availability cache operation failed"

	// MongoDB messages
	ErrDevDBFailedToFindDocument     = "failed to find document"
	ErrDevDBFailedToInsertDocument   = "failed to insert document"
	ErrDevDBFailedToUpdateDocument   = "failed to update document"
	ErrDevDBFailedToDeleteDocument   = "failed to delete document"
	ErrDevDBFailedToIterateDocuments = "failed to iterate documents"
	ErrDevDBStringNotObjectID        = "string is not a valid object id"

	// Redis messages
	ErrDevRedisFailedToGet   = "failed to get value from redis"
	ErrDevRedisFailedToSet   = "failed to set value to redis"
	ErrDevRedisFailedToDel   = "failed to delete value from redis"
	ErrDevRedisFailedToSetNX = "failed to setnx value to redis"

	// Messaging messages
	ErrDevAMQPFailedToPublish = "failed to publish message to queue"
	ErrDevAMQPNotConfirmed    = "broker did not confirm publication"

	// Minio messages
	ErrDevMinioFailedToCreateObject = "failed to create object in bucket %s"
)
