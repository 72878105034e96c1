// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pubsub

// channel is the broadcast state machine of one channel id.
// It performs no locking and no I/O; every method runs under the
// owning slot's mutex.
//
// Invariants:
//   - 0 <= fill <= len(buf)
//   - finished <= subscribers
//   - finished counts subscribers drained at fill level drainMark;
//     counts taken at an older fill level are stale and ignored
type channel struct {
	buf         []byte
	fill        int
	generation  uint64
	subscribers int
	finished    int
	drainMark   int
	refs        int
	writer      Serial
}

// cursor is a subscriber's position within one generation.
type cursor struct {
	offset int
	seen   uint64
}

func (c *channel) allocated() bool { return c.buf != nil }

// finishedCount returns the number of subscribers that have drained the
// current fill level.
func (c *channel) finishedCount() int {
	if c.fill == 0 || c.drainMark != c.fill {
		return 0
	}
	return c.finished
}

// write admits p all-or-nothing.
func (c *channel) write(p []byte, w Serial, exclusive bool) error {
	if len(p) > len(c.buf) {
		return ErrInvalidArgument
	}
	if len(p) > len(c.buf)-c.fill {
		return ErrWouldBlock
	}
	if len(p) == 0 {
		return nil
	}
	if exclusive && c.writer != 0 && c.writer != w {
		return ErrWouldBlock
	}
	copy(c.buf[c.fill:], p)
	c.fill += len(p)
	if exclusive {
		c.writer = w
	}
	return nil
}

// read copies unread bytes of the current generation into p and advances
// cur. It reports whether the read completed the drain of every subscriber
// and therefore reset the channel.
func (c *channel) read(cur *cursor, p []byte) (n int, reset bool, err error) {
	if cur.seen != c.generation {
		cur.offset = 0
		cur.seen = c.generation
	}
	if c.fill-cur.offset == 0 {
		return 0, false, ErrWouldBlock
	}
	n = copy(p, c.buf[cur.offset:c.fill])
	cur.offset += n
	if cur.offset == c.fill {
		c.markDrained()
		if c.allDrained() {
			c.reset()
			return n, true, nil
		}
	}
	return n, false, nil
}

func (c *channel) drained(cur *cursor) bool {
	return cur.seen == c.generation && c.fill > 0 && cur.offset == c.fill
}

func (c *channel) markDrained() {
	if c.drainMark != c.fill {
		c.finished = 0
		c.drainMark = c.fill
	}
	c.finished++
}

func (c *channel) allDrained() bool {
	return c.subscribers > 0 && c.finishedCount() == c.subscribers
}

// reset starts the next generation. Subscriber cursors resynchronize
// lazily on their next read.
func (c *channel) reset() {
	c.generation++
	c.fill = 0
	c.finished = 0
	c.drainMark = 0
	c.writer = 0
}

// unsubscribe removes a subscriber and reports whether its departure
// left every remaining subscriber drained, resetting the channel.
func (c *channel) unsubscribe(cur *cursor) bool {
	if c.drained(cur) && c.drainMark == c.fill && c.finished > 0 {
		c.finished--
	}
	c.subscribers--
	if c.allDrained() {
		c.reset()
		return true
	}
	return false
}

// unpublish drops the writer claim held by w, if any.
func (c *channel) unpublish(w Serial) {
	if c.writer == w {
		c.writer = 0
	}
}
