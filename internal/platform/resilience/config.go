package resilience

import (
	"time"

	"github.com/itbasis/go-clock"
)

// CircuitBreakerConfig describes a breaker around one remote dependency.
// Zero values fall back to DefaultCircuitBreakerConfig.
type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
	Clock            clock.Clock
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 5,
		OpenTimeout:      15 * time.Second,
		HalfOpenMaxReq:   2,
	}
}

func NormalizeCircuitBreakerConfig(cfg CircuitBreakerConfig) CircuitBreakerConfig {
	defaults := DefaultCircuitBreakerConfig()
	if cfg.FailureThreshold < 1 {
		cfg.FailureThreshold = defaults.FailureThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = defaults.OpenTimeout
	}
	if cfg.HalfOpenMaxReq < 1 {
		cfg.HalfOpenMaxReq = defaults.HalfOpenMaxReq
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	return cfg
}

// Build returns the configured breaker, or nil when the breaker is disabled.
func (cfg CircuitBreakerConfig) Build() *CircuitBreaker {
	if !cfg.Enabled {
		return nil
	}
	cfg = NormalizeCircuitBreakerConfig(cfg)
	return NewCircuitBreakerWithClock(cfg.FailureThreshold, cfg.OpenTimeout, cfg.HalfOpenMaxReq, cfg.Clock)
}
