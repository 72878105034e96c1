// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pubsub

import (
	"log/slog"
	"sync"

	"code.hybscloud.com/atomix"
)

// slot owns one channel id. Its mutex serializes every operation on the
// channel; distinct slots never contend.
type slot struct {
	mu sync.Mutex
	ch channel
}

// Registry is a fixed-size table of channels indexed by id.
// Channels are created lazily by the first Open and reset when their last
// session closes. A Registry is safe for concurrent use.
type Registry struct {
	cfg   config
	slots []slot
	live  atomix.Uint32
	stats counters
	log   *slog.Logger
}

// New creates a Registry with the given options.
func New(opts ...Option) *Registry {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return &Registry{
		cfg:   cfg,
		slots: make([]slot, cfg.channels),
		log:   cfg.logger,
	}
}

// Capacity returns the per-channel buffer size.
func (r *Registry) Capacity() int { return r.cfg.capacity }

// Channels returns the number of channel ids.
func (r *Registry) Channels() int { return len(r.slots) }

// Open opens a session on channel id, allocating the channel's buffer on
// first use. The session starts with RoleNone, offset zero, and the
// channel's current generation.
//
// Open fails with ErrInvalidArgument if id is out of range and with
// ErrOutOfMemory if the buffer cannot be allocated; the channel then
// remains uncreated.
func (r *Registry) Open(id int) (*Session, error) {
	if id < 0 || id >= len(r.slots) {
		return nil, ErrInvalidArgument
	}
	sl := &r.slots[id]
	sl.mu.Lock()
	defer sl.mu.Unlock()

	ch := &sl.ch
	if !ch.allocated() {
		buf, err := r.allocate()
		if err != nil {
			r.log.Warn("channel allocation refused", slog.Int("channel", id), slog.Any("error", err))
			return nil, err
		}
		ch.buf = buf
		r.log.Debug("channel allocated", slog.Int("channel", id), slog.Int("capacity", len(buf)))
	}
	ch.refs++
	r.stats.opens.Add(1)
	return &Session{
		serial: nextSerial(),
		id:     id,
		slot:   sl,
		reg:    r,
		cur:    cursor{seen: ch.generation},
	}, nil
}

// allocate reserves a buffer against the buffer limit.
func (r *Registry) allocate() ([]byte, error) {
	n := r.live.Add(1)
	if limit := r.cfg.bufferLimit; limit > 0 && int(n) > limit {
		r.live.Add(^uint32(0))
		return nil, ErrOutOfMemory
	}
	return make([]byte, r.cfg.capacity), nil
}

// release frees the channel once no session references it.
// Generation and all counters return to zero.
func (r *Registry) release(id int, ch *channel) {
	*ch = channel{}
	r.live.Add(^uint32(0))
	r.log.Debug("channel released", slog.Int("channel", id))
}

func (r *Registry) drainedReset(id int, ch *channel) {
	r.stats.resets.Add(1)
	r.log.Debug("channel drained", slog.Int("channel", id), slog.Uint64("generation", ch.generation))
}

// ChannelStats is a consistent snapshot of one channel.
type ChannelStats struct {
	ID          int
	Allocated   bool
	Capacity    int
	FillLen     int
	Generation  uint64
	Subscribers int
	Finished    int
	Refs        int
	Writer      Serial // exclusive writer of this generation, zero if none
}

// Stat returns a snapshot of channel id taken under its lock.
func (r *Registry) Stat(id int) (ChannelStats, error) {
	if id < 0 || id >= len(r.slots) {
		return ChannelStats{}, ErrInvalidArgument
	}
	sl := &r.slots[id]
	sl.mu.Lock()
	defer sl.mu.Unlock()
	ch := &sl.ch
	return ChannelStats{
		ID:          id,
		Allocated:   ch.allocated(),
		Capacity:    len(ch.buf),
		FillLen:     ch.fill,
		Generation:  ch.generation,
		Subscribers: ch.subscribers,
		Finished:    ch.finishedCount(),
		Refs:        ch.refs,
		Writer:      ch.writer,
	}, nil
}
