package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_WaitWithinBurst(t *testing.T) {
	l := NewLimiter(0.001, 2)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := l.Wait(ctx, "openai"); err != nil {
		t.Errorf("Expected first request to pass, got %v", err)
	}
	if err := l.Wait(ctx, "openai"); err != nil {
		t.Errorf("Expected second request within burst to pass, got %v", err)
	}
	if err := l.Wait(ctx, "openai"); err == nil {
		t.Error("Expected third immediate request to block past the deadline")
	}
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	l := NewLimiter(0.001, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := l.Wait(ctx, "openai"); err != nil {
		t.Errorf("Expected openai request to pass, got %v", err)
	}
	if err := l.Wait(ctx, "ollama"); err != nil {
		t.Errorf("Expected a fresh bucket for a different key, got %v", err)
	}
}

func TestLimiter_WaitRespectsContext(t *testing.T) {
	l := NewLimiter(0.001, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	l.Wait(ctx, "openai") // Drain the bucket

	if err := l.Wait(ctx, "openai"); err == nil {
		t.Error("Expected wait to fail when the context expires first")
	}
}

func TestLimiter_SetRate(t *testing.T) {
	l := NewLimiter(0.001, 1)
	l.SetRate("openai", 100, 10)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	for i := 0; i < 10; i++ {
		if err := l.Wait(ctx, "openai"); err != nil {
			t.Fatalf("Expected request %d to pass after raising the burst, got %v", i+1, err)
		}
	}
}

func TestLimiter_SetRateZeroBurstKeepsDefault(t *testing.T) {
	l := NewLimiter(5, 3)
	l.SetRate("openai", 0.001, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	for i := 0; i < 3; i++ {
		if err := l.Wait(ctx, "openai"); err != nil {
			t.Fatalf("Expected request %d within the default burst to pass, got %v", i+1, err)
		}
	}
	if err := l.Wait(ctx, "openai"); err == nil {
		t.Error("Expected the fourth request to block past the deadline")
	}
}

func TestLimiter_DefaultBurst(t *testing.T) {
	l := NewLimiter(1, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := l.Wait(ctx, "openai"); err != nil {
		t.Errorf("Expected a zero burst to default to one, got %v", err)
	}
}
