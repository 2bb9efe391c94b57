package mask

import "time"

// Option configures an Engine during creation.
// Use functional options to customize Engine behavior.
//
// Example:
//
//	// Default configuration
//	eng, err := mask.NewEngine()
//
//	// Small chunks and a virtual clock (tests)
//	eng, err := mask.NewEngine(
//		mask.WithChunkSize(64),
//		mask.WithClock(fakeClock),
//	)
type Option func(*engineOptions)

// engineOptions holds optional configuration for Engine creation.
type engineOptions struct {
	chunkSize  int
	interval   time.Duration
	clock      Clock
	commitHook func()
}

// defaultOptions returns the default engine options.
func defaultOptions() engineOptions {
	return engineOptions{
		chunkSize: DefaultChunkSize,
		interval:  DefaultThrottleInterval,
		clock:     SystemClock(),
	}
}

// WithChunkSize sets the chunk side length in pixels.
// Non-positive sizes make NewEngine fail.
func WithChunkSize(size int) Option {
	return func(o *engineOptions) {
		o.chunkSize = size
	}
}

// WithThrottleInterval sets the minimum time between throttled partial
// rebuilds.
func WithThrottleInterval(d time.Duration) Option {
	return func(o *engineOptions) {
		o.interval = d
	}
}

// WithClock injects the clock driving the rebuild scheduler.
// Tests inject a virtual clock so throttling is verifiable without
// wall-clock waits.
func WithClock(c Clock) Option {
	return func(o *engineOptions) {
		o.clock = c
	}
}

// WithCommitHook registers a callback invoked after every completed stroke
// (pointer-up) and every shape apply/remove. History managers use it to
// capture undo snapshots at commit boundaries.
func WithCommitHook(hook func()) Option {
	return func(o *engineOptions) {
		o.commitHook = hook
	}
}
