package constvars

const (
	// Generic messages
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	// Disposition messages
	DispositionCompletedSuccess = "disposition completed successfully"
	BedReleasedSuccess          = "bed released successfully"
	BedAvailabilityGetSuccess   = "get bed availability successfully"
)
