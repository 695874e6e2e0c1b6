package common

const (
	// AuthorizationHeader carries the bearer credential on every API request.
	AuthorizationHeader = "Authorization"

	// BearerPrefix precedes the token inside AuthorizationHeader.
	BearerPrefix = "Bearer "

	// HealthPath is probed by the client to decide between online and offline mode.
	HealthPath = "/healthz"
)
