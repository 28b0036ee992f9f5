package server

import "time"

// HTTP error messages for middleware responses
const (
	ErrMsgUnauthorized    = "Unauthorized"
	ErrMsgTooManyRequests = "Too Many Requests"
	ErrMsgBodyTooLarge    = "Request body too large"
)

// Security alerts
const (
	SecurityAlertFailedAuth = "Security alert: repeated admin authentication failures"
	SecurityAlertHighRate   = "Security alert: client exceeded request rate limit"
)

// Abuse limits per client IP
const (
	RateLimitRequests        = 1000
	RateLimitWindow          = 5 * time.Minute
	FailedAuthAlertThreshold = 5
	MaxRequestBytes          = 64 << 10

	retryAfterSeconds = "60"
)

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting   = "Server starting"
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
	LogMsgRequestHeaders   = "Request headers"
	LogMsgAuthFailed       = "Admin authentication failed"
	LogMsgBadTrustedProxy  = "Ignoring unparseable trusted proxy entry"
)

// HTTP header names
const (
	HeaderAPIKey                = "X-API-Key"
	HeaderAuthorization         = "Authorization"
	HeaderForwardedFor          = "X-Forwarded-For"
	HeaderRetryAfter            = "Retry-After"
	HeaderContentTypeOptions    = "X-Content-Type-Options"
	HeaderFrameOptions          = "X-Frame-Options"
	HeaderReferrerPolicy        = "Referrer-Policy"
	HeaderContentSecurityPolicy = "Content-Security-Policy"
)

// Security header values
const (
	HeaderValueNoSniff               = "nosniff"
	HeaderValueDeny                  = "DENY"
	HeaderValueReferrerStrictOrigin  = "strict-origin-when-cross-origin"
	HeaderValueContentSecurityPolicy = "default-src 'self'; connect-src 'self'; frame-ancestors 'none'"
)

// swaggerPrefix serves inline scripts and is exempt from the content policy
const swaggerPrefix = "/swagger/"

// RedactedValue replaces secret header values in logs
const RedactedValue = "[REDACTED]"
