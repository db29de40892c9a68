// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the standard response utilities used across all endpoints:
// the error envelope, the single translation point from typed request failures
// to HTTP responses (Reject), and small success helpers.
//
// Example error response:
//
//	HTTP/1.1 416 Requested Range Not Satisfiable
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "question_not_found",
//	  "message": "Question not found: 42"
//	}
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tbourn/go-qa-backend/internal/apperror"
	"github.com/tbourn/go-qa-backend/internal/http/middleware"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"question_not_found"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"Question not found: 42"`
}

var rejections = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "qa_http_rejections_total",
		Help: "Requests answered with an error envelope, by code.",
	},
	[]string{"code", "status"},
)

func init() {
	prometheus.MustRegister(rejections)
}

// fail aborts the request with a structured error. Server errors (>=500) are
// logged with the request-scoped logger.
func fail(c *gin.Context, status int, code, msg string) {
	failWith(c, status, code, msg, nil)
}

func failWith(c *gin.Context, status int, code, msg string, cause error) {
	resp := ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
	}

	if status >= http.StatusInternalServerError {
		ev := middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg)
		if cause != nil {
			ev = ev.Err(cause)
		}
		ev.Msg("api error")
	}

	rejections.WithLabelValues(code, strconv.Itoa(status)).Inc()
	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail() for router-level fallbacks.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// Reject translates err into an error response. Every failure produced by
// handlers, services and middleware ends here.
//
//	ParseInt, MissingParameters,
//	RangeInvalid, QuestionNotFound  416
//	CORSForbidden                   403
//	BodyDeserialize                 422
//	BadIdempotencyKey               400
//	RateLimited                     429
//	anything else                   500
func Reject(c *gin.Context, err error) {
	var ae *apperror.Error
	if !errors.As(err, &ae) {
		failWith(c, http.StatusInternalServerError, ErrCodeInternal, "internal server error", err)
		return
	}

	switch ae.Kind {
	case apperror.KindParseInt:
		fail(c, http.StatusRequestedRangeNotSatisfiable, ErrCodeInvalidParameter, ae.Error())
	case apperror.KindMissingParameters:
		fail(c, http.StatusRequestedRangeNotSatisfiable, ErrCodeMissingParameters, ae.Error())
	case apperror.KindRangeInvalid:
		fail(c, http.StatusRequestedRangeNotSatisfiable, ErrCodeRangeInvalid, ae.Error())
	case apperror.KindQuestionNotFound:
		fail(c, http.StatusRequestedRangeNotSatisfiable, ErrCodeQuestionNotFound, ae.Error())
	case apperror.KindCORSForbidden:
		fail(c, http.StatusForbidden, ErrCodeCORSForbidden, ae.Error())
	case apperror.KindBodyDeserialize:
		fail(c, http.StatusUnprocessableEntity, ErrCodeUnprocessableInput, ae.Error())
	case apperror.KindBadIdempotencyKey:
		fail(c, http.StatusBadRequest, ErrCodeBadIdempotencyKey, ae.Error())
	case apperror.KindRateLimited:
		fail(c, http.StatusTooManyRequests, ErrCodeRateLimited, ae.Error())
	default:
		failWith(c, http.StatusInternalServerError, ErrCodeInternal, "internal server error", err)
	}
}

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// confirm writes a plain-text confirmation such as "Question added".
func confirm(c *gin.Context, msg string) {
	c.String(http.StatusOK, msg)
}
