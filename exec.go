// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pubsub

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// sessionHandler implements kont.Handler for channel effects.
// ErrWouldBlock is waited out with iox.Backoff; any other error
// short-circuits the protocol with Left.
// Value type: passed to evalFrames on the stack, avoiding heap allocation.
type sessionHandler[R any] struct {
	s *Session
}

// Dispatch implements kont.Handler via structural interface assertion.
func (h sessionHandler[R]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	sop, ok := op.(sessionDispatcher)
	if !ok {
		panic("pubsub: unhandled effect in sessionHandler")
	}
	var bo iox.Backoff
	for {
		v, err := sop.DispatchSession(h.s)
		if err == nil {
			return v, true
		}
		if !iox.IsWouldBlock(err) {
			return kont.Left[error, R](err), false
		}
		bo.Wait()
	}
}

// Exec runs a channel protocol on s to completion.
//
// The core never waits; Exec is the caller-side polling loop. It retries
// operations that fail with ErrWouldBlock using adaptive backoff and stops
// at the first other error, without spawning goroutines.
func Exec[R any](s *Session, protocol kont.Eff[R]) (R, error) {
	wrapped := kont.Map[kont.Resumed, R, kont.Either[error, R]](protocol, func(r R) kont.Either[error, R] {
		return kont.Right[error, R](r)
	})
	h := sessionHandler[R]{s: s}
	result := kont.Handle(wrapped, h)
	if err, ok := result.GetLeft(); ok {
		var zero R
		return zero, err
	}
	v, _ := result.GetRight()
	return v, nil
}
