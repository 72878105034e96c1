// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pubsub

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// Run drives protocol a on session sa and protocol b on session sb to
// completion, typically a publisher and a subscriber of the same channel.
// Both sides are interleaved on the calling goroutine using adaptive
// backoff (iox.Backoff) when neither can make progress. Does not spawn
// goroutines or create channels. The first error other than ErrWouldBlock
// stops both sides.
func Run[A, B any](sa *Session, a kont.Eff[A], sb *Session, b kont.Eff[B]) (A, B, error) {
	resultA, suspA := Step[A](Reify(a))
	resultB, suspB := Step[B](Reify(b))
	var bo iox.Backoff

	for suspA != nil || suspB != nil {
		progress := false
		if suspA != nil {
			var err error
			resultA, suspA, err = Advance(sa, suspA)
			switch {
			case err == nil:
				progress = true
			case !iox.IsWouldBlock(err):
				discard(suspB)
				return resultA, resultB, err
			}
		}
		if suspB != nil {
			var err error
			resultB, suspB, err = Advance(sb, suspB)
			switch {
			case err == nil:
				progress = true
			case !iox.IsWouldBlock(err):
				discard(suspA)
				return resultA, resultB, err
			}
		}
		if !progress {
			bo.Wait()
		} else {
			bo.Reset()
		}
	}
	return resultA, resultB, nil
}

func discard[R any](susp *kont.Suspension[R]) {
	if susp != nil {
		susp.Discard()
	}
}
