package utils

import (
	"time"
)

// ContextKey is the type used for request-scoped context values
type ContextKey string

const (
	RequestIDKey  ContextKey = "request_id"
	UserAgentKey  ContextKey = "user_agent"
	IPAddressKey  ContextKey = "ip_address"
	EndpointKey   ContextKey = "endpoint"
	TimeoutKey    ContextKey = "timeout"
	CancelFuncKey ContextKey = "cancel_func"
)

// Token and session time constants
const (
	// AccessTokenTTL is the time-to-live for access tokens (24 hours)
	AccessTokenTTL = 24 * time.Hour

	// RefreshTokenTTL is the time-to-live for refresh tokens (7 days)
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// Tracking constants
const (
	// AttributionCookieName carries the click identifier back to the landing page
	AttributionCookieName = "aff_click"

	// DefaultCookieDurationDays is used when a program does not configure a window
	DefaultCookieDurationDays = 30

	// AffiliateCodePrefix and ProgramCodePrefix are the literal code prefixes
	AffiliateCodePrefix = "AFF"
	ProgramCodePrefix   = "PRG"

	// ClickIDPrefix is the literal prefix of generated click identifiers
	ClickIDPrefix = "clk"

	// UnknownIPPlaceholder is recorded when no client address can be determined
	UnknownIPPlaceholder = "0.0.0.0"
)

// Conversion type defaults
const (
	ConversionTypeSale = "sale"
)
