// Package apperror defines the closed set of request failures produced by the
// Q&A service. Failures are constructed where they are detected (query parsing,
// store lookups, body binding, CORS checks) and travel up the call chain
// unchanged; the HTTP layer translates them exactly once.
//
// Kinds:
//
//	KindParseInt          a numeric query parameter could not be parsed
//	KindMissingParameters one of start/end was supplied without the other
//	KindRangeInvalid      a start/end window does not fit the listing
//	KindQuestionNotFound  update/delete/get target does not exist
//	KindCORSForbidden     cross-origin request rejected by policy
//	KindBodyDeserialize   request body could not be decoded or validated
//
// Two more kinds come from transport guards that operators switch on:
//
//	KindBadIdempotencyKey the Idempotency-Key header is malformed
//	KindRateLimited       the client's token bucket is empty
package apperror

import (
	"errors"
	"fmt"
)

// Kind identifies which member of the taxonomy an Error belongs to.
type Kind uint8

const (
	KindParseInt Kind = iota + 1
	KindMissingParameters
	KindRangeInvalid
	KindQuestionNotFound
	KindCORSForbidden
	KindBodyDeserialize
	KindBadIdempotencyKey
	KindRateLimited
)

// String returns a stable, lowercase name for the kind.
func (k Kind) String() string {
	switch k {
	case KindParseInt:
		return "parse_int"
	case KindMissingParameters:
		return "missing_parameters"
	case KindRangeInvalid:
		return "range_invalid"
	case KindQuestionNotFound:
		return "question_not_found"
	case KindCORSForbidden:
		return "cors_forbidden"
	case KindBodyDeserialize:
		return "body_deserialize"
	case KindBadIdempotencyKey:
		return "bad_idempotency_key"
	case KindRateLimited:
		return "rate_limited"
	default:
		return "unknown"
	}
}

// Error is a typed request failure. Only the fields relevant to Kind are set.
type Error struct {
	Kind Kind

	// Field names the offending query parameter or form field.
	Field string
	// Value is the original text that failed to parse.
	Value string
	// ID is the identifier that could not be resolved.
	ID string
	// Start, End and Size describe a rejected pagination window.
	Start, End, Size int
	// Reason is a free-form detail (CORS or idempotency key rejection cause).
	Reason string

	// Err is the underlying cause, if any.
	Err error
}

// Error renders a human-readable message with enough context to diagnose the
// failure from the response alone.
func (e *Error) Error() string {
	switch e.Kind {
	case KindParseInt:
		if e.Err != nil {
			return fmt.Sprintf("Cannot parse parameter %s=%q: %v", e.Field, e.Value, causeText(e.Err))
		}
		return fmt.Sprintf("Cannot parse parameter %s=%q", e.Field, e.Value)
	case KindMissingParameters:
		return fmt.Sprintf("Missing parameter: %s", e.Field)
	case KindRangeInvalid:
		return fmt.Sprintf("Range invalid: start=%d end=%d (available=%d)", e.Start, e.End, e.Size)
	case KindQuestionNotFound:
		return fmt.Sprintf("Question not found: %s", e.ID)
	case KindCORSForbidden:
		return "CORS request forbidden: " + e.Reason
	case KindBodyDeserialize:
		if e.Err != nil {
			return "Request body deserialize error: " + e.Err.Error()
		}
		return "Request body deserialize error"
	case KindBadIdempotencyKey:
		return "Invalid Idempotency-Key: " + e.Reason
	case KindRateLimited:
		return "Rate limit exceeded"
	default:
		if e.Err != nil {
			return e.Err.Error()
		}
		return "unknown error"
	}
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error of the same Kind, so callers can write
// errors.Is(err, &apperror.Error{Kind: apperror.KindRangeInvalid}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// ParseInt reports that field carried value which is not a non-negative integer.
func ParseInt(field, value string, err error) *Error {
	return &Error{Kind: KindParseInt, Field: field, Value: value, Err: err}
}

// MissingParameters reports that the named pagination parameter is absent
// while its counterpart was supplied.
func MissingParameters(field string) *Error {
	return &Error{Kind: KindMissingParameters, Field: field}
}

// RangeInvalid reports a [start, end) window that is empty, inverted or past
// the end of a listing of size elements.
func RangeInvalid(start, end, size int) *Error {
	return &Error{Kind: KindRangeInvalid, Start: start, End: end, Size: size}
}

// QuestionNotFound reports that no question is stored under id.
func QuestionNotFound(id string, cause error) *Error {
	return &Error{Kind: KindQuestionNotFound, ID: id, Err: cause}
}

// CORSForbidden reports a cross-origin request rejected by policy.
func CORSForbidden(reason string) *Error {
	return &Error{Kind: KindCORSForbidden, Reason: reason}
}

// BodyDeserialize reports a request body that failed to decode or validate.
func BodyDeserialize(err error) *Error {
	return &Error{Kind: KindBodyDeserialize, Err: err}
}

// BadIdempotencyKey reports a malformed Idempotency-Key header.
func BadIdempotencyKey(reason string) *Error {
	return &Error{Kind: KindBadIdempotencyKey, Reason: reason}
}

// RateLimited reports a request refused by the per-client rate limiter.
func RateLimited() *Error {
	return &Error{Kind: KindRateLimited}
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// causeText strips strconv's "strconv.ParseUint: parsing \"x\": " prefix so the
// message does not repeat the offending value.
func causeText(err error) string {
	type unwrapper interface{ Unwrap() error }
	if u, ok := err.(unwrapper); ok && u.Unwrap() != nil {
		return u.Unwrap().Error()
	}
	return err.Error()
}
