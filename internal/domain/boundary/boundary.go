// Package boundary decides when a new game has started.
package boundary

// defaultContraction is the fraction of the last observed move-list size
// below which the list is considered to have been cleared.
const defaultContraction = 0.3

// Detector reports a new game from a per-tick observation of the move list.
// Implementations may keep state between calls.
type Detector interface {
	Observe(moveListSize int) bool
}

// Option applies a configuration option to the ContractionDetector.
type Option func(*ContractionDetector)

// WithContraction sets the shrink ratio that signals a restart. Values
// outside (0, 1) are ignored.
func WithContraction(ratio float64) Option {
	return func(d *ContractionDetector) {
		if ratio > 0 && ratio < 1 {
			d.ratio = ratio
		}
	}
}

// ContractionDetector flags a new game when the move list shrinks sharply.
// A genuine new game starts empty while normal play only grows the list.
type ContractionDetector struct {
	ratio float64
	last  int
}

// NewContractionDetector creates a detector with the default 30% trigger.
func NewContractionDetector(opts ...Option) *ContractionDetector {
	d := &ContractionDetector{ratio: defaultContraction}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Observe records size and reports whether it signals a restart. Every
// observation becomes the new reference, so one restart is reported once.
func (d *ContractionDetector) Observe(size int) bool {
	restart := d.last > 0 && float64(size) < float64(d.last)*d.ratio
	d.last = size
	return restart
}

// Last returns the reference size.
func (d *ContractionDetector) Last() int {
	return d.last
}

// Never is a Detector for sources that carry no move list.
type Never struct{}

// Observe always reports false.
func (Never) Observe(int) bool { return false }
