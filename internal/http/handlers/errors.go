// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// Codes are stable, lowercase snake_case strings carried in every error
// envelope next to the HTTP status. Clients branch on the code, not on the
// message text.
//
// Example response:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "range_invalid",
//	  "message": "Range invalid: start=1 end=1 (available=3)"
//	}
package handlers

const (
	ErrCodeNotFound = "not_found"
	ErrCodeInternal = "internal_error"

	// Transport guards (idempotency keys, rate limiting):
	ErrCodeBadIdempotencyKey = "bad_idempotency_key"
	ErrCodeRateLimited       = "too_many_requests"

	// Request failures produced by the Q&A pipeline:
	ErrCodeInvalidParameter   = "invalid_parameter"
	ErrCodeMissingParameters  = "missing_parameters"
	ErrCodeRangeInvalid       = "range_invalid"
	ErrCodeQuestionNotFound   = "question_not_found"
	ErrCodeCORSForbidden      = "cors_forbidden"
	ErrCodeUnprocessableInput = "unprocessable_entity"
)
