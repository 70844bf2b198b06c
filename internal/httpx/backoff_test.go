package httpx

import (
	"testing"
	"time"
)

func TestBackoffGrowsAndCaps(t *testing.T) {
	b := NewBackoff(100*time.Millisecond, time.Second, 0)
	expected := []time.Duration{
		100 * time.Millisecond,
		200 * time.Millisecond,
		400 * time.Millisecond,
		800 * time.Millisecond,
		time.Second,
		time.Second,
	}
	for i, want := range expected {
		if got := b.Next(); got != want {
			t.Fatalf("delay %d: expected %v, got %v", i, want, got)
		}
	}
}

func TestBackoffJitterBounds(t *testing.T) {
	for i := 0; i < 100; i++ {
		d := NewBackoff(100*time.Millisecond, time.Second, 0.5).Next()
		if d < 50*time.Millisecond || d > 150*time.Millisecond {
			t.Fatalf("iteration %d: jittered delay %v outside [50ms,150ms]", i, d)
		}
	}
}

func TestBackoffDefaults(t *testing.T) {
	b := NewBackoff(0, 0, -1)
	if d := b.Next(); d != 50*time.Millisecond {
		t.Fatalf("default base: got %v", d)
	}
	for i := 0; i < 10; i++ {
		if d := b.Next(); d > time.Second {
			t.Fatalf("default max exceeded: %v", d)
		}
	}
}
