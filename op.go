// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pubsub

import (
	"code.hybscloud.com/kont"
)

// sessionDispatcher is the structural interface for channel operations.
// DispatchSession is non-blocking: it returns ErrWouldBlock when the
// channel cannot admit or supply data yet.
type sessionDispatcher interface {
	DispatchSession(s *Session) (kont.Resumed, error)
}

// Publish is the effect operation for writing Data to the channel.
// Perform(Publish{Data: p}) resumes with the number of bytes written.
type Publish struct {
	kont.Phantom[int]
	Data []byte
}

// DispatchSession handles Publish with a single Session.Write.
func (p Publish) DispatchSession(s *Session) (kont.Resumed, error) {
	n, err := s.Write(p.Data)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// Consume is the effect operation for reading up to Max bytes.
// Perform(Consume{Max: n}) resumes with the bytes read.
type Consume struct {
	kont.Phantom[[]byte]
	Max int
}

// DispatchSession handles Consume with a single Session.Read.
func (c Consume) DispatchSession(s *Session) (kont.Resumed, error) {
	buf := make([]byte, c.Max)
	n, err := s.Read(buf)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}
