// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pubsub

import "log/slog"

const (
	// DefaultCapacity is the buffer size of every channel in bytes.
	DefaultCapacity = 1000
	// DefaultChannels is the number of distinct channel ids.
	DefaultChannels = 256
)

type config struct {
	capacity        int
	channels        int
	bufferLimit     int
	exclusiveWriter bool
	logger          *slog.Logger
}

func defaultConfig() config {
	return config{
		capacity:        DefaultCapacity,
		channels:        DefaultChannels,
		exclusiveWriter: true,
		logger:          slog.New(slog.DiscardHandler),
	}
}

// Option configures a Registry. Options are applied once by New and are
// fixed for the Registry's lifetime.
type Option func(*config)

// WithCapacity sets the per-channel buffer size. Non-positive values are
// ignored.
func WithCapacity(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// WithChannels sets the number of channel ids, [0, n). Non-positive values
// are ignored.
func WithChannels(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.channels = n
		}
	}
}

// WithBufferLimit caps the number of channel buffers allocated at the same
// time. Opening a session on an unallocated channel beyond the cap fails
// with ErrOutOfMemory. Zero means no cap.
func WithBufferLimit(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.bufferLimit = n
		}
	}
}

// WithExclusiveWriter controls single-writer enforcement. When enabled,
// the first publisher to write in a generation owns it; writes from other
// publishers fail with ErrWouldBlock until the channel drains or the owner
// closes. Enabled by default.
func WithExclusiveWriter(on bool) Option {
	return func(c *config) {
		c.exclusiveWriter = on
	}
}

// WithLogger sets the structured logger for channel lifecycle records.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
