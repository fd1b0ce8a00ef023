package observability

import (
	"context"
	"testing"
	"time"
)

type countingRenderHooks struct {
	NoopRenderHooks
	starts, completes int
}

func (h *countingRenderHooks) OnRenderStart(context.Context, int, int, int) { h.starts++ }
func (h *countingRenderHooks) OnRenderComplete(context.Context, int, int, time.Duration, error) {
	h.completes++
}

type countingDiffHooks struct {
	NoopDiffHooks
	diffs, resets int
}

func (h *countingDiffHooks) OnDiff(context.Context, int, int, time.Duration) { h.diffs++ }
func (h *countingDiffHooks) OnReset(context.Context)                         { h.resets++ }

func TestRenderHookRegistration(t *testing.T) {
	defer Reset()

	h := &countingRenderHooks{}
	SetRenderHooks(h)

	ctx := context.Background()
	Render().OnRenderStart(ctx, 80, 24, 2)
	Render().OnRenderComplete(ctx, 80, 24, time.Millisecond, nil)

	if h.starts != 1 || h.completes != 1 {
		t.Errorf("starts = %d, completes = %d, want 1 and 1", h.starts, h.completes)
	}
}

func TestDiffHookRegistration(t *testing.T) {
	defer Reset()

	h := &countingDiffHooks{}
	SetDiffHooks(h)

	ctx := context.Background()
	Diff().OnDiff(ctx, 5, 100, time.Microsecond)
	Diff().OnReset(ctx)

	if h.diffs != 1 || h.resets != 1 {
		t.Errorf("diffs = %d, resets = %d, want 1 and 1", h.diffs, h.resets)
	}
}

func TestSetNilKeepsExisting(t *testing.T) {
	defer Reset()

	SetRenderHooks(nil)
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("nil registration replaced the no-op default")
	}
}

func TestResetRestoresNoops(t *testing.T) {
	SetRenderHooks(&countingRenderHooks{})
	SetDiffHooks(&countingDiffHooks{})
	Reset()

	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Reset did not restore render no-op")
	}
	if _, ok := Diff().(NoopDiffHooks); !ok {
		t.Error("Reset did not restore diff no-op")
	}
}
