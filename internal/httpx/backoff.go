package httpx

import (
	"math/rand"
	"time"
)

// Backoff produces exponentially growing delays with optional jitter.
// Each call to Next advances the schedule.
type Backoff struct {
	base    time.Duration
	max     time.Duration
	jitter  float64
	attempt int
	rand    *rand.Rand
}

// NewBackoff returns a Backoff starting at base and capped at max. A
// jitter of j spreads each delay uniformly across [1-j, 1+j] times its
// nominal value.
func NewBackoff(base, max time.Duration, jitter float64) *Backoff {
	if base <= 0 {
		base = 50 * time.Millisecond
	}
	if max <= 0 {
		max = time.Second
	}
	if jitter < 0 {
		jitter = 0
	}
	if jitter > 1 {
		jitter = 1
	}
	return &Backoff{
		base:   base,
		max:    max,
		jitter: jitter,
		rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Next returns the delay to apply before the upcoming retry.
func (b *Backoff) Next() time.Duration {
	delay := b.base << uint(b.attempt)
	if delay <= 0 || delay > b.max {
		delay = b.max
	}
	b.attempt++

	if b.jitter == 0 {
		return delay
	}
	factor := 1 + (b.rand.Float64()*2-1)*b.jitter
	if factor < 0 {
		factor = 0
	}
	return time.Duration(float64(delay) * factor)
}
