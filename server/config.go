package server

import "time"

// Config holds the HTTP boundary configuration.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// APIKey is the shared secret clients must present in X-API-Key.
	APIKey string

	// AllowedOrigins configures CORS.
	AllowedOrigins []string

	// RequestTimeout bounds request handling. Deep research generation is
	// slow, so the default is generous.
	RequestTimeout time.Duration
}

// DefaultConfig returns a Config with production defaults. The API key has
// no default and must always be supplied.
func DefaultConfig() Config {
	return Config{
		Addr:           ":8080",
		AllowedOrigins: []string{"http://localhost:*", "https://*"},
		RequestTimeout: 120 * time.Second,
	}
}
