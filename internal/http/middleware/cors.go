// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file enforces the cross-origin policy. gin-contrib/cors writes the
// Access-Control-* response headers; a guard in front of it rejects requests
// the policy does not admit and hands the failure to the caller's reject
// function, so CORS refusals travel through the same error envelope as every
// other failure:
//   - an Origin outside the allow-list (an empty list admits any origin)
//   - a preflight asking for a method or header outside the allowed sets
//
// Requests without an Origin header are not cross-origin and pass untouched.
package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-qa-backend/internal/apperror"
)

// CORSPolicy lists what cross-origin callers may use.
type CORSPolicy struct {
	// AllowedOrigins is the exact-match allow-list; empty admits any origin.
	AllowedOrigins []string
	// AllowedMethods defaults to GET, POST, PUT, DELETE.
	AllowedMethods []string
	// AllowedHeaders defaults to Content-Type, Idempotency-Key, X-Request-ID.
	AllowedHeaders []string
	// MaxAge is the preflight cache lifetime. Defaults to 12h.
	MaxAge time.Duration
}

func (p CORSPolicy) withDefaults() CORSPolicy {
	if len(p.AllowedMethods) == 0 {
		p.AllowedMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}
	}
	if len(p.AllowedHeaders) == 0 {
		p.AllowedHeaders = []string{"Content-Type", HeaderIdempotencyKey, requestIDHeader}
	}
	if p.MaxAge <= 0 {
		p.MaxAge = 12 * time.Hour
	}
	return p
}

// CORS returns the guard plus gin-contrib/cors as a single middleware.
// reject receives an *apperror.Error of KindCORSForbidden and must write the
// response.
func CORS(p CORSPolicy, reject func(*gin.Context, error)) gin.HandlerFunc {
	p = p.withDefaults()

	origins := toSet(p.AllowedOrigins, false)
	methods := toSet(p.AllowedMethods, true)
	headers := toSet(p.AllowedHeaders, true)

	cfg := cors.Config{
		AllowMethods:     p.AllowedMethods,
		AllowHeaders:     p.AllowedHeaders,
		ExposeHeaders:    []string{requestIDHeader, HeaderIdempotencyReplayed, "ETag", "Location"},
		AllowCredentials: false,
		MaxAge:           p.MaxAge,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = p.AllowedOrigins
	}
	apply := cors.New(cfg)

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			c.Next()
			return
		}
		if len(origins) > 0 {
			if _, ok := origins[origin]; !ok {
				reject(c, apperror.CORSForbidden("origin not allowed: "+origin))
				return
			}
		}
		if c.Request.Method == http.MethodOptions {
			if m := c.GetHeader("Access-Control-Request-Method"); m != "" {
				if _, ok := methods[strings.ToUpper(m)]; !ok {
					reject(c, apperror.CORSForbidden("method not allowed: "+m))
					return
				}
			}
			for _, h := range strings.Split(c.GetHeader("Access-Control-Request-Headers"), ",") {
				h = strings.TrimSpace(h)
				if h == "" {
					continue
				}
				if _, ok := headers[strings.ToUpper(h)]; !ok {
					reject(c, apperror.CORSForbidden("header not allowed: "+h))
					return
				}
			}
		}

		apply(c)
		if !c.IsAborted() {
			c.Next()
		}
	}
}

func toSet(vals []string, upper bool) map[string]struct{} {
	m := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		v = strings.TrimSpace(v)
		if upper {
			v = strings.ToUpper(v)
		}
		if v != "" {
			m[v] = struct{}{}
		}
	}
	return m
}
