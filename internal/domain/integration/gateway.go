package integration

import (
	"errors"
	"time"
)

// Gateway call bounds shared by every adapter
const (
	DefaultGatewayTimeout = 15 * time.Second
	MinGatewayTimeout     = time.Second
	MaxGatewayTimeout     = 120 * time.Second
)

// ErrInvalidGatewayTimeout is returned for timeouts outside [1s, 120s]
var ErrInvalidGatewayTimeout = errors.New("integration: gateway timeout must be between 1s and 120s")

// NormalizeGatewayTimeout applies the default to zero and rejects values out
// of range
func NormalizeGatewayTimeout(d time.Duration) (time.Duration, error) {
	if d == 0 {
		return DefaultGatewayTimeout, nil
	}
	if d < MinGatewayTimeout || d > MaxGatewayTimeout {
		return 0, ErrInvalidGatewayTimeout
	}
	return d, nil
}
