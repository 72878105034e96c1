// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pubsub

// Session is one open handle on a channel.
//
// A Session is owned by its caller. The channel refers to it only through
// counters, never by pointer. All methods take the channel lock, so a
// Session may be shared between goroutines, though its read position is
// then shared too.
type Session struct {
	serial Serial
	id     int
	slot   *slot
	reg    *Registry

	// guarded by slot.mu
	role   Role
	cur    cursor
	closed bool
}

// Serial returns the serial number assigned to this session.
func (s *Session) Serial() Serial {
	return s.serial
}

// ChannelID returns the id of the channel this session is open on.
func (s *Session) ChannelID() int {
	return s.id
}

// lock acquires the channel lock and returns the channel, or fails with
// ErrInvalidSession after Close. On error the lock is not held.
func (s *Session) lock() (*channel, error) {
	s.slot.mu.Lock()
	if s.closed {
		s.slot.mu.Unlock()
		return nil, ErrInvalidSession
	}
	return &s.slot.ch, nil
}

func (s *Session) unlock() {
	s.slot.mu.Unlock()
}

// SetRole assigns the session role exactly once.
//
// A session whose role is already set fails with ErrPermissionDenied,
// whatever r is. Otherwise r must be RolePublisher or RoleSubscriber or
// SetRole fails with ErrInvalidArgument. A subscriber counts toward drain
// completion from this call on, not from Open.
func (s *Session) SetRole(r Role) error {
	ch, err := s.lock()
	if err != nil {
		return err
	}
	defer s.unlock()

	if s.role != RoleNone {
		return ErrPermissionDenied
	}
	if !r.Valid() {
		return ErrInvalidArgument
	}
	s.role = r
	if r == RoleSubscriber {
		ch.subscribers++
	}
	return nil
}

// Role returns the session role, RoleNone if unassigned.
func (s *Session) Role() (Role, error) {
	if _, err := s.lock(); err != nil {
		return RoleNone, err
	}
	defer s.unlock()
	return s.role, nil
}

// Write appends p to the channel buffer as a whole or not at all.
//
// Write fails with ErrPermissionDenied unless the session is a publisher,
// with ErrInvalidArgument if len(p) exceeds the channel capacity, and with
// ErrWouldBlock if len(p) exceeds the remaining space. Write never blocks
// and never writes short. An empty p always succeeds with 0.
//
// With WithExclusiveWriter(true), the default, the first publisher whose
// write is admitted owns the generation. A non-empty write from any other
// publisher then fails with ErrWouldBlock even when it would fit, until the
// drain reset or until the owner closes. With WithExclusiveWriter(false),
// ErrWouldBlock means exactly that len(p) exceeds the remaining space.
func (s *Session) Write(p []byte) (int, error) {
	ch, err := s.lock()
	if err != nil {
		return 0, err
	}
	defer s.unlock()

	if s.role != RolePublisher {
		return 0, ErrPermissionDenied
	}
	err = ch.write(p, s.serial, s.reg.cfg.exclusiveWriter)
	n := 0
	if err == nil {
		n = len(p)
	}
	s.reg.stats.observe(&s.reg.stats.writes, &s.reg.stats.bytesWritten, n, err)
	return n, err
}

// Read copies up to len(p) unread bytes of the current generation.
//
// Read fails with ErrPermissionDenied unless the session is a subscriber
// and with ErrWouldBlock if nothing new is readable. A session left behind
// by a reset rewinds to the start of the new generation first. The read
// that completes the drain of the last subscriber resets the channel.
func (s *Session) Read(p []byte) (int, error) {
	ch, err := s.lock()
	if err != nil {
		return 0, err
	}
	defer s.unlock()

	if s.role != RoleSubscriber {
		return 0, ErrPermissionDenied
	}
	n, reset, err := ch.read(&s.cur, p)
	s.reg.stats.observe(&s.reg.stats.reads, &s.reg.stats.bytesRead, n, err)
	if reset {
		s.reg.drainedReset(s.id, ch)
	}
	return n, err
}

// Close releases the session. A subscriber stops counting toward drain
// completion; a publisher gives up its writer claim. Closing the last
// session of a channel releases its buffer and zeroes its state.
// Closing twice fails with ErrInvalidSession.
func (s *Session) Close() error {
	ch, err := s.lock()
	if err != nil {
		return err
	}
	defer s.unlock()

	s.closed = true
	switch s.role {
	case RoleSubscriber:
		if ch.unsubscribe(&s.cur) {
			s.reg.drainedReset(s.id, ch)
		}
	case RolePublisher:
		ch.unpublish(s.serial)
	}
	ch.refs--
	s.reg.stats.closes.Add(1)
	if ch.refs == 0 {
		s.reg.release(s.id, ch)
	}
	return nil
}
