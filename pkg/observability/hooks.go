// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about scale resolution, layout, rendering, and frame diffs.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetRenderHooks(&myRenderHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Render().OnRenderStart(ctx, width, height, layerCount)
//	// ... render ...
//	observability.Render().OnRenderComplete(ctx, width, height, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// RenderHooks receives events from the plot rendering pipeline.
type RenderHooks interface {
	// Scale resolution events
	OnResolveStart(ctx context.Context, rowCount, layerCount int)
	OnResolveComplete(ctx context.Context, scaleCount int, duration time.Duration, err error)

	// Layout events
	OnLayoutStart(ctx context.Context, width, height, panelCount int)
	OnLayoutComplete(ctx context.Context, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, width, height, layerCount int)
	OnRenderComplete(ctx context.Context, width, height int, duration time.Duration, err error)
}

// DiffHooks receives events from the canvas diff engine.
type DiffHooks interface {
	// OnDiff records one diff computation: how many cells changed out of how many.
	OnDiff(ctx context.Context, changed, total int, duration time.Duration)

	// OnReset records a diff engine reset back to the empty state.
	OnReset(ctx context.Context)
}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnResolveStart(context.Context, int, int) {}
func (NoopRenderHooks) OnResolveComplete(context.Context, int, time.Duration, error) {}
func (NoopRenderHooks) OnLayoutStart(context.Context, int, int, int) {}
func (NoopRenderHooks) OnLayoutComplete(context.Context, time.Duration, error) {}
func (NoopRenderHooks) OnRenderStart(context.Context, int, int, int) {}
func (NoopRenderHooks) OnRenderComplete(context.Context, int, int, time.Duration, error) {}

// NoopDiffHooks is a no-op implementation of DiffHooks.
type NoopDiffHooks struct{}

func (NoopDiffHooks) OnDiff(context.Context, int, int, time.Duration) {}
func (NoopDiffHooks) OnReset(context.Context) {}

var (
	renderHooks RenderHooks = NoopRenderHooks{}
	diffHooks   DiffHooks   = NoopDiffHooks{}
	hooksMu     sync.RWMutex
)

// SetRenderHooks registers custom render hooks.
// This should be called once at application startup before any render operations.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// SetDiffHooks registers custom diff hooks.
// This should be called once at application startup before any diff operations.
func SetDiffHooks(h DiffHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		diffHooks = h
	}
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Diff returns the registered diff hooks.
func Diff() DiffHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return diffHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	renderHooks = NoopRenderHooks{}
	diffHooks = NoopDiffHooks{}
}
