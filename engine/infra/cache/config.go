package cache

import "time"

// Config holds Redis connection settings plus cache behavior knobs.
// Prefer providing a URL. When empty, Host/Port/Password/DB are used.
type Config struct {
	URL         string
	Host        string
	Port        string
	Password    string
	DB          int
	Enabled     bool
	TTL         time.Duration
	PingTimeout time.Duration
}

// DefaultTTL is used when no TTL is configured.
const DefaultTTL = 30 * time.Second
