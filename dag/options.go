package dag

import "github.com/dspanner/idag/jumpindex"

// Options holds the builder-time configuration for Compile: the trimming
// strategy and the jump distance.
type Options struct {
	// Trim selects how aggressively Compile prunes non-productive states.
	Trim jumpindex.TrimStrategy

	// JumpDistance thins the reach matrices each recorded level stores
	// toward its more distant landing levels. It does not change which
	// levels are recorded: every jumpable level is recorded for any value.
	// Must be >= 1; values < 1 are treated as 1.
	JumpDistance int
}

// Option configures optional behavior of Compile.
type Option func(*Options)

// DefaultOptions returns the Options used when Compile is given none:
// full trimming and a jump distance of 1 (no reach matrix is thinned out).
func DefaultOptions() Options {
	return Options{
		Trim:         jumpindex.TrimFull,
		JumpDistance: 1,
	}
}

// WithTrimStrategy returns an Option that sets the trimming strategy.
func WithTrimStrategy(strategy jumpindex.TrimStrategy) Option {
	return func(o *Options) {
		o.Trim = strategy
	}
}

// WithJumpDistance returns an Option that sets the jump distance. Values
// less than 1 are clamped to 1.
func WithJumpDistance(d int) Option {
	return func(o *Options) {
		if d < 1 {
			d = 1
		}
		o.JumpDistance = d
	}
}
