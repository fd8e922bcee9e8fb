package resilience

import (
	"errors"
	"testing"
	"time"
)

func TestCircuitBreaker_StartsClosed(t *testing.T) {
	cb := NewCircuitBreaker("tts", 3, time.Second)
	if cb.GetState() != StateClosed {
		t.Errorf("Expected initial state closed, got %v", cb.GetState())
	}
}

func TestCircuitBreaker_OpensAfterMaxFailures(t *testing.T) {
	cb := NewCircuitBreaker("tts", 3, time.Second)
	fail := func() error { return errors.New("backend down") }

	for i := 0; i < 3; i++ {
		cb.Call(fail)
	}

	if cb.GetState() != StateOpen {
		t.Errorf("Expected open after 3 failures, got %v", cb.GetState())
	}

	// Subsequent calls fail fast without invoking fn
	calls := 0
	err := cb.Call(func() error {
		calls++
		return nil
	})
	if !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("Expected ErrCircuitOpen, got %v", err)
	}
	if calls != 0 {
		t.Errorf("Expected fn not invoked while open, got %d calls", calls)
	}
}

func TestCircuitBreaker_SuccessResetsFailureCount(t *testing.T) {
	cb := NewCircuitBreaker("tts", 3, time.Second)

	cb.Call(func() error { return errors.New("fail") })
	cb.Call(func() error { return errors.New("fail") })
	cb.Call(func() error { return nil })
	cb.Call(func() error { return errors.New("fail") })
	cb.Call(func() error { return errors.New("fail") })

	if cb.GetState() != StateClosed {
		t.Errorf("Expected closed (failures interleaved with success), got %v", cb.GetState())
	}
}

func TestCircuitBreaker_HalfOpenAfterTimeout(t *testing.T) {
	cb := NewCircuitBreaker("tts", 1, 10*time.Millisecond)

	cb.Call(func() error { return errors.New("fail") })
	if cb.GetState() != StateOpen {
		t.Fatalf("Expected open, got %v", cb.GetState())
	}

	time.Sleep(20 * time.Millisecond)

	// First call after the reset timeout is allowed as a probe
	err := cb.Call(func() error { return nil })
	if err != nil {
		t.Errorf("Expected probe call to pass through, got %v", err)
	}
	if cb.GetState() != StateHalfOpen {
		t.Errorf("Expected half-open after probe, got %v", cb.GetState())
	}
}

func TestCircuitBreaker_FailureInHalfOpenReopens(t *testing.T) {
	cb := NewCircuitBreaker("tts", 1, 10*time.Millisecond)

	cb.Call(func() error { return errors.New("fail") })
	time.Sleep(20 * time.Millisecond)

	cb.Call(func() error { return errors.New("still down") })
	if cb.GetState() != StateOpen {
		t.Errorf("Expected reopen after half-open failure, got %v", cb.GetState())
	}
}

func TestCircuitBreaker_ClosesAfterRecovery(t *testing.T) {
	cb := NewCircuitBreaker("tts", 1, 10*time.Millisecond)

	cb.Call(func() error { return errors.New("fail") })
	time.Sleep(20 * time.Millisecond)

	// halfOpenMax consecutive successes close the circuit
	for i := 0; i < 3; i++ {
		if err := cb.Call(func() error { return nil }); err != nil {
			t.Fatalf("Probe call %d failed: %v", i, err)
		}
	}

	if cb.GetState() != StateClosed {
		t.Errorf("Expected closed after recovery, got %v", cb.GetState())
	}
}

func TestCircuitBreaker_Reset(t *testing.T) {
	cb := NewCircuitBreaker("tts", 1, time.Hour)

	cb.Call(func() error { return errors.New("fail") })
	if cb.GetState() != StateOpen {
		t.Fatalf("Expected open, got %v", cb.GetState())
	}

	cb.Reset()
	if cb.GetState() != StateClosed {
		t.Errorf("Expected closed after Reset, got %v", cb.GetState())
	}
}
