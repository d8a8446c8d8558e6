package progress

import (
	"context"
	"testing"
)

func TestZeroHooksAreNoops(t *testing.T) {
	var h Hooks
	h.Reset(0, 10)
	h.Increment()
	if h.Stop() {
		t.Error("zero Hooks reported cancellation")
	}
}

func TestCounter(t *testing.T) {
	c := &Counter{}
	h := Hooks{Progress: c}
	h.Reset(0, 3)
	h.Increment()
	h.Increment()
	h.Reset(5, 8)
	h.Increment()

	if c.Resets != 2 || c.Maximum != 8 || c.Current != 6 || c.Total != 3 {
		t.Errorf("Counter = resets %d max %d current %d total %d", c.Resets, c.Maximum, c.Current, c.Total)
	}
}

func TestFromContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := Hooks{Cancelled: FromContext(ctx)}
	if h.Stop() {
		t.Fatal("Stop before cancel")
	}
	cancel()
	if !h.Stop() {
		t.Error("Stop after cancel = false")
	}
}

func TestLoggerHandlesEmptyStage(t *testing.T) {
	l := &Logger{Prefix: "test"}
	l.Reset(0, 0)
	l.Increment()
	l.Reset(0, 4)
	for i := 0; i < 4; i++ {
		l.Increment()
	}
	if l.next != 110 {
		t.Errorf("next threshold = %d, want 110", l.next)
	}
}
