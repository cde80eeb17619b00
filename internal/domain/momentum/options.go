package momentum

// Option applies a configuration option to the Tracker.
type Option func(*Tracker)

// WithWindow sets how many recent moves are averaged. Non-positive sizes are ignored.
func WithWindow(size int) Option {
	return func(t *Tracker) {
		if size > 0 {
			t.window = size
		}
	}
}

// WithThresholds sets the mean-ratio cutoffs: below gaining is GAINING,
// above losing is LOSING.
func WithThresholds(gaining, losing float64) Option {
	return func(t *Tracker) {
		if gaining <= losing {
			t.gaining = gaining
			t.losing = losing
		}
	}
}
