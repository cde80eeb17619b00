package feed

// Option applies a configuration option to the InMemoryFeed.
type Option func(*InMemoryFeed)

// WithCapacity sets how many frames may wait for the consumer.
func WithCapacity(capacity int) Option {
	return func(f *InMemoryFeed) {
		if capacity > 0 {
			f.capacity = capacity
		}
	}
}
