package resilience

import (
	"errors"
	"testing"
	"time"

	"github.com/itbasis/go-clock"
)

func newTestBreaker(failureThreshold, halfOpenMaxReq int) (*CircuitBreaker, *clock.Mock) {
	mockClock := clock.NewMock()
	mockClock.Set(time.Date(2025, time.January, 10, 12, 0, 0, 0, time.UTC))
	return NewCircuitBreakerWithClock(failureThreshold, 5*time.Second, halfOpenMaxReq, mockClock), mockClock
}

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	b, mockClock := newTestBreaker(2, 1)

	if err := b.Allow(); err != nil {
		t.Fatalf("expected allow in closed state: %v", err)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	mockClock.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected half-open state, got %s", state)
	}

	b.RecordSuccess()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful half-open probe, got %s", state)
	}
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	b, mockClock := newTestBreaker(1, 1)

	b.RecordFailure()
	mockClock.Add(6 * time.Second)

	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected second probe to be rejected, got %v", err)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after failed probe, got %s", state)
	}
}

func TestNormalizeCircuitBreakerConfig(t *testing.T) {
	got := NormalizeCircuitBreakerConfig(CircuitBreakerConfig{Enabled: true})
	want := DefaultCircuitBreakerConfig()
	if got.FailureThreshold != want.FailureThreshold || got.OpenTimeout != want.OpenTimeout || got.HalfOpenMaxReq != want.HalfOpenMaxReq {
		t.Fatalf("NormalizeCircuitBreakerConfig()=%+v want=%+v", got, want)
	}
	if got.Clock == nil {
		t.Fatalf("expected a default clock")
	}
}

func TestCircuitBreakerConfig_Build(t *testing.T) {
	if b := (CircuitBreakerConfig{Enabled: false, FailureThreshold: 1}).Build(); b != nil {
		t.Fatalf("expected no breaker when disabled")
	}

	mock := clock.NewMock()
	b := CircuitBreakerConfig{Enabled: true, FailureThreshold: 1, OpenTimeout: time.Minute, Clock: mock}.Build()
	if b == nil {
		t.Fatalf("expected breaker when enabled")
	}
	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after one failure, got %s", state)
	}
	mock.Add(time.Minute)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected probe after open timeout on the configured clock, got %v", err)
	}
}
