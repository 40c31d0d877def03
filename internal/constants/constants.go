package constants

import "time"

// Session and context keys
const (
	SessionCookieName = "workhub_session"
	ContextKeyUserID  = "user_id"
	ContextKeyRole    = "user_role"
	ContextKeyOrgID   = "organization_id"
)

// Authentication
const (
	MinPasswordLength = 8
	SessionMaxAge     = 30 * 24 * time.Hour
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Chat
const (
	DefaultMessagePageSize = 50
	MaxMessagePageSize     = 100
)
