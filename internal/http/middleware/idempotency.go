// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file validates the Idempotency-Key header on unsafe requests, stashes
// the key for handlers and, when a lookup is supplied, attaches the record of
// an earlier identical create so the handler can replay it and the rate
// limiter lets it through. Records are scoped to (client IP, route template,
// key).
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-qa-backend/internal/apperror"
	"github.com/tbourn/go-qa-backend/internal/domain"
)

// HeaderIdempotencyKey is the request header carrying the client's key.
const HeaderIdempotencyKey = "Idempotency-Key"

// HeaderIdempotencyReplayed is set to "true" on responses served from a
// stored record.
const HeaderIdempotencyReplayed = "Idempotency-Replayed"

const (
	ctxKeyIdemKey    = "idem.key"
	ctxKeyIdemReplay = "idem.replay"
	ctxKeyRateBypass = "rate.bypass"
)

// GetIdempotencyKey returns the validated key stored by IdempotencyValidator.
func GetIdempotencyKey(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxKeyIdemKey)
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}

// ReplayRecord returns the live record found for this request's key, if any.
func ReplayRecord(c *gin.Context) (*domain.Idempotency, bool) {
	v, ok := c.Get(ctxKeyIdemReplay)
	if !ok {
		return nil, false
	}
	rec, _ := v.(*domain.Idempotency)
	return rec, rec != nil
}

// IdempotencyOptions configures header validation.
type IdempotencyOptions struct {
	// MaxLen caps the accepted key length. Values <= 0 default to 200.
	MaxLen int
	// Pattern restricts allowed characters. Defaults to ^[A-Za-z0-9._~\-:]+$
	Pattern *regexp.Regexp
}

// IdempotencyLookup returns the still-valid record for (client, route, key).
// A nil record or an error is treated as a miss.
type IdempotencyLookup func(ctx context.Context, client, route, key string, now time.Time) (*domain.Idempotency, error)

// IdempotencyValidator validates the Idempotency-Key header of POST requests.
//
//   - Absent header, or a non-POST request: no-op.
//   - Malformed key: reject receives an apperror of KindBadIdempotencyKey.
//   - Lookup hit: attaches the record and exempts the request from rate limiting.
//
// Serving the stored result is left to the handler.
func IdempotencyValidator(opts IdempotencyOptions, lookup IdempotencyLookup, reject func(*gin.Context, error)) gin.HandlerFunc {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = 200
	}
	pat := opts.Pattern
	if pat == nil {
		pat = regexp.MustCompile(`^[A-Za-z0-9._~\-:]+$`)
	}
	if reject == nil {
		reject = func(c *gin.Context, _ error) { c.AbortWithStatus(http.StatusBadRequest) }
	}

	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}
		if len(key) > maxLen {
			reject(c, apperror.BadIdempotencyKey(fmt.Sprintf("longer than %d characters", maxLen)))
			return
		}
		if !pat.MatchString(key) {
			reject(c, apperror.BadIdempotencyKey("unsupported characters"))
			return
		}

		c.Set(ctxKeyIdemKey, key)

		if lookup != nil && c.FullPath() != "" {
			if rec, err := lookup(c.Request.Context(), c.ClientIP(), c.FullPath(), key, time.Now().UTC()); err == nil && rec != nil {
				c.Set(ctxKeyIdemReplay, rec)
				c.Set(ctxKeyRateBypass, true)
			}
		}

		c.Next()
	}
}
