package dedupe

// Option applies a configuration option to the InMemoryDeduper.
type Option func(*InMemoryDeduper)

// WithMaxSize bounds the number of keys kept in memory.
func WithMaxSize(size int) Option {
	return func(d *InMemoryDeduper) {
		if size > 0 {
			d.maxSize = size
		}
	}
}
