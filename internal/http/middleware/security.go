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
	// HSTS sends Strict-Transport-Security on HTTPS requests. Enable only
	// when the hop between proxy and server is HTTPS too.
	HSTS       bool
	HSTSMaxAge time.Duration // 180 days when <= 0

	// HTMLPrefixes are path prefixes serving HTML (the Swagger UI); they do
	// not get the API Content-Security-Policy.
	HTMLPrefixes []string
}

const defaultHSTSMaxAge = 180 * 24 * time.Hour

// apiCSP forbids every subresource; JSON responses need none.
const apiCSP = "default-src 'none'; frame-ancestors 'none'"

// baseSecurityHeaders go on every response.
var baseSecurityHeaders = [][2]string{
	{"X-Content-Type-Options", "nosniff"},
	{"X-Frame-Options", "DENY"},
	{"Referrer-Policy", "no-referrer"},
	{"Permissions-Policy", "geolocation=(), microphone=(), camera=(), payment=()"},
	{"X-Permitted-Cross-Domain-Policies", "none"},
}

// SecurityHeaders hardens responses for browser clients. Reads of topics,
// articles and users may be cached by intermediaries; responses to writes
// (a posted comment, a vote change) are marked no-store.
func SecurityHeaders(opt SecurityOptions) gin.HandlerFunc {
	maxAge := opt.HSTSMaxAge
	if maxAge <= 0 {
		maxAge = defaultHSTSMaxAge
	}
	hsts := "max-age=" + strconv.Itoa(int(maxAge/time.Second)) + "; includeSubDomains"

	return func(c *gin.Context) {
		h := c.Writer.Header()
		for _, kv := range baseSecurityHeaders {
			h.Set(kv[0], kv[1])
		}

		if !servesHTML(c.Request.URL.Path, opt.HTMLPrefixes) {
			h.Set("Content-Security-Policy", apiCSP)
		}
		if isWrite(c.Request.Method) {
			h.Set("Cache-Control", "no-store")
		}
		if opt.HSTS && isHTTPS(c.Request) {
			h.Set("Strict-Transport-Security", hsts)
		}

		c.Next()
	}
}

func isWrite(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}

// isHTTPS trusts X-Forwarded-Proto from the fronting proxy.
func isHTTPS(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

func servesHTML(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
