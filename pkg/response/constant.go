package response

import "time"

const (
	MessageSuccess      = "Success"
	DefaultErrorMessage = "Something went wrong"

	ErrorCodeBadRequest      = 1
	InternalServerErrorCode  = 500
	ErrorCodeNotFound        = 404
	ErrorCodeConflict        = 409
	ErrorCodeUpstreamFailure = 502

	DateTimeFormat = time.RFC3339
)
