package connection

import (
	"math/rand"
	"sync"
	"time"
)

// Default backoff parameters for reopening the adapter.
const (
	// InitialBackoff is the first retry delay.
	InitialBackoff = 500 * time.Millisecond

	// MaxBackoff caps the retry delay.
	MaxBackoff = 30 * time.Second

	// BackoffMultiplier is the growth factor between attempts.
	BackoffMultiplier = 2.0

	// JitterFactor is the maximum jitter as a fraction of the base delay.
	JitterFactor = 0.25
)

// BackoffConfig customizes a Backoff. Zero fields take the defaults above,
// except Jitter where zero disables jitter.
type BackoffConfig struct {
	Initial    time.Duration `yaml:"initial"`
	Max        time.Duration `yaml:"max"`
	Multiplier float64       `yaml:"multiplier"`
	Jitter     float64       `yaml:"jitter"`
}

// DefaultBackoffConfig returns the default parameters.
func DefaultBackoffConfig() BackoffConfig {
	return BackoffConfig{
		Initial:    InitialBackoff,
		Max:        MaxBackoff,
		Multiplier: BackoffMultiplier,
		Jitter:     JitterFactor,
	}
}

// Backoff produces exponentially growing delays with jitter.
type Backoff struct {
	mu sync.Mutex

	cfg      BackoffConfig
	current  time.Duration
	attempts int
	rng      *rand.Rand
}

// NewBackoff creates a backoff with the default parameters.
func NewBackoff() *Backoff {
	return NewBackoffWithConfig(DefaultBackoffConfig())
}

// NewBackoffWithConfig creates a backoff with custom parameters.
func NewBackoffWithConfig(cfg BackoffConfig) *Backoff {
	if cfg.Initial <= 0 {
		cfg.Initial = InitialBackoff
	}
	if cfg.Max <= 0 {
		cfg.Max = MaxBackoff
	}
	if cfg.Max < cfg.Initial {
		cfg.Max = cfg.Initial
	}
	if cfg.Multiplier <= 1 {
		cfg.Multiplier = BackoffMultiplier
	}
	if cfg.Jitter < 0 {
		cfg.Jitter = 0
	}

	return &Backoff{
		cfg:     cfg,
		current: cfg.Initial,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Next returns the current delay with jitter and advances to the next one.
func (b *Backoff) Next() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()

	delay := b.jittered(b.current)
	b.attempts++
	b.current = b.grow(b.current)
	return delay
}

// Reset returns to the initial delay. Call after a successful open.
func (b *Backoff) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current = b.cfg.Initial
	b.attempts = 0
}

// Attempts returns the number of delays handed out since the last Reset.
func (b *Backoff) Attempts() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.attempts
}

// Current returns the next base delay without jitter.
func (b *Backoff) Current() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// Sequence returns the base delays a fresh Backoff produces, ending at the
// first delay equal to the maximum.
func (b *Backoff) Sequence() []time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()

	var seq []time.Duration
	for d := b.cfg.Initial; ; d = b.grow(d) {
		seq = append(seq, d)
		if d >= b.cfg.Max {
			return seq
		}
	}
}

func (b *Backoff) grow(d time.Duration) time.Duration {
	next := time.Duration(float64(d) * b.cfg.Multiplier)
	if next > b.cfg.Max {
		next = b.cfg.Max
	}
	return next
}

func (b *Backoff) jittered(d time.Duration) time.Duration {
	if b.cfg.Jitter <= 0 {
		return d
	}
	return d + time.Duration(float64(d)*b.cfg.Jitter*b.rng.Float64())
}
