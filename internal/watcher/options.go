package watcher

import "time"

// DefaultSettleDelay is how long a file must stay unchanged before an
// event is emitted. Spreadsheet exports tend to arrive in several writes.
const DefaultSettleDelay = 250 * time.Millisecond

// Options configures the file watcher behavior.
type Options struct {
	SettleDelay time.Duration
	BufferSize  int // capacity of the Events channel
}

func (o *Options) setDefaults() {
	if o.SettleDelay <= 0 {
		o.SettleDelay = DefaultSettleDelay
	}
	if o.BufferSize <= 0 {
		o.BufferSize = 16
	}
}
