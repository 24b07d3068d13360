package infra

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Circuit breaker guarding the incident webhook (Closed → Open → Half-Open).
// When the webhook is down the breaker fast-fails deliveries instead of tying
// up worker goroutines on timeouts; the retry cron picks them up later.

// CBState is the breaker state.
type CBState int

const (
	CBClosed   CBState = iota // requests flow
	CBOpen                    // fast-fail everything
	CBHalfOpen                // one probe allowed
)

func (s CBState) String() string {
	switch s {
	case CBClosed:
		return "closed"
	case CBOpen:
		return "open"
	case CBHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrCircuitOpen is returned by Execute while the breaker is open.
var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitBreakerConfig struct {
	FailureThreshold int           // consecutive failures to trip open
	SuccessThreshold int           // consecutive half-open successes to close
	OpenTimeout      time.Duration // time open before probing
}

func DefaultCBConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		OpenTimeout:      60 * time.Second,
	}
}

type CircuitBreaker struct {
	mu          sync.Mutex
	cfg         CircuitBreakerConfig
	state       CBState
	fallos      int
	aciertos    int
	ultimoFallo time.Time
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	def := DefaultCBConfig()
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = def.FailureThreshold
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = def.SuccessThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = def.OpenTimeout
	}
	return &CircuitBreaker{cfg: cfg, state: CBClosed}
}

// State returns the current state, promoting open → half-open once the open
// timeout has elapsed.
func (cb *CircuitBreaker) State() CBState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if cb.state == CBOpen && time.Since(cb.ultimoFallo) >= cb.cfg.OpenTimeout {
		cb.cambiar(CBHalfOpen)
		cb.aciertos = 0
	}
	return cb.state
}

// Execute runs fn through the breaker, returning ErrCircuitOpen immediately
// while tripped.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	if cb.State() == CBOpen {
		return ErrCircuitOpen
	}

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()
	if err != nil {
		cb.onFailure()
		return err
	}
	cb.onSuccess()
	return nil
}

// caller holds mu
func (cb *CircuitBreaker) onFailure() {
	cb.fallos++
	cb.ultimoFallo = time.Now()

	switch cb.state {
	case CBClosed:
		if cb.fallos >= cb.cfg.FailureThreshold {
			cb.cambiar(CBOpen)
			cb.aciertos = 0
		}
	case CBHalfOpen:
		// Probe failed; back to fast-fail for another full timeout.
		cb.cambiar(CBOpen)
		cb.fallos = 0
	}
}

// caller holds mu
func (cb *CircuitBreaker) onSuccess() {
	switch cb.state {
	case CBClosed:
		cb.fallos = 0
	case CBHalfOpen:
		cb.aciertos++
		if cb.aciertos >= cb.cfg.SuccessThreshold {
			cb.cambiar(CBClosed)
			cb.fallos = 0
			cb.aciertos = 0
		}
	}
}

// caller holds mu
func (cb *CircuitBreaker) cambiar(nuevo CBState) {
	if cb.state == nuevo {
		return
	}
	log.Warn().
		Str("de", cb.state.String()).
		Str("a", nuevo.String()).
		Msg("incidencias circuit breaker state change")
	cb.state = nuevo
}
