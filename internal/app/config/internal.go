package config

type InternalConfig struct {
	App         App
	JWT         JWT
	Disposition Disposition
	Audit       Audit
}

type App struct {
	Env                      string
	Port                     string
	Version                  string
	Address                  string
	Timezone                 string
	EndpointPrefix           string
	AdminAPIKeyHash          string
	MaxRequests              int
	ShutdownTimeoutInSeconds int
	RequestTimeoutInSeconds  int
}

type JWT struct {
	Secret string
}

type Disposition struct {
	// WaitlistMonitorIntervalInSeconds is the tick interval of the waitlist
	// fulfillment worker.
	WaitlistMonitorIntervalInSeconds int
	// WaitlistMonitorBatchSize caps the pending entries scanned per tick.
	WaitlistMonitorBatchSize int
	EventQueueName           string
}

type Audit struct {
	BucketName         string
	ObjectsPerSecond   int
	ConsumerName       string
	ArchiveObjectRoot  string
	ArchiveContentType string
}
