// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file sets baseline security response headers for the JSON API and
// exposes the headers browser clients of the Q&A API read: X-Request-ID, the
// idempotency replay marker, the list ETag and the Location of a new answer.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// SecurityOptions configures SecurityHeaders.
type SecurityOptions struct {
	EnableHSTS   bool          // set only when traffic is HTTPS end-to-end
	HSTSMaxAge   time.Duration // <= 0 means 180 days
	NoStore      bool          // Cache-Control: no-store
	EnablePolicy bool          // Permissions-Policy and friends
}

// exposedHeaders are appended to Access-Control-Expose-Headers when set on
// the response.
var exposedHeaders = []string{requestIDHeader, HeaderIdempotencyReplayed, "ETag", "Location"}

// SecurityHeaders writes hardening headers before the handler runs.
func SecurityHeaders(opt SecurityOptions) gin.HandlerFunc {
	maxAge := int(opt.HSTSMaxAge.Seconds())
	if maxAge <= 0 {
		maxAge = int((180 * 24 * time.Hour).Seconds())
	}
	hsts := "max-age=" + strconv.Itoa(maxAge) + "; includeSubDomains; preload"

	return func(c *gin.Context) {
		h := c.Writer.Header()

		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")

		if opt.EnablePolicy {
			h.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=(), payment=()")
			h.Set("X-Permitted-Cross-Domain-Policies", "none")
		}

		if opt.NoStore {
			h.Set("Cache-Control", "no-store")
			h.Set("Pragma", "no-cache")
			h.Set("Expires", "0")
		}

		// Never on plain HTTP.
		if opt.EnableHSTS && isHTTPS(c.Request) {
			h.Set("Strict-Transport-Security", hsts)
		}

		const expose = "Access-Control-Expose-Headers"
		for _, name := range exposedHeaders {
			if name == requestIDHeader && h.Get(requestIDHeader) == "" {
				continue
			}
			cur := h.Get(expose)
			switch {
			case cur == "":
				h.Set(expose, name)
			case !listHas(cur, name):
				h.Set(expose, cur+", "+name)
			}
		}

		c.Next()
	}
}

func isHTTPS(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

// listHas reports whether the comma-separated header list contains name.
// gin-contrib/cors canonicalizes names (X-Request-Id, Etag), so case is ignored.
func listHas(list, name string) bool {
	for _, v := range strings.Split(list, ",") {
		if strings.EqualFold(strings.TrimSpace(v), name) {
			return true
		}
	}
	return false
}
