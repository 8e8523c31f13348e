package outlook

const (
	// legacyHostPath is the basic-auth REST host-and-path prefix.
	legacyHostPath = "outlook.office365.com/api"
	// graphHostPath replaces legacyHostPath when the token family is active.
	graphHostPath = "graph.microsoft.com"

	legacyBase = "https://" + legacyHostPath + "/v1.0/me"

	// TimeFormat is the canonical wire format for dateTime values.
	TimeFormat = "2006-01-02T15:04:05"
	// UTCTimeFormat is TimeFormat with the trailing UTC marker accepted on ingestion.
	UTCTimeFormat = TimeFormat + "Z"

	ContentTypeJSON = "application/json"
	ContentTypeText = "text/plain"

	headerClientRequestID = "client-request-id"
)

// Default event window sizing used when a caller does not pass one.
const (
	DefaultEventCount  = 10
	DefaultEventWindow = 365 * 24 // hours
)
