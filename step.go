// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pubsub

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// Reify converts a Cont-world protocol into its Expr-world form for
// stepping.
func Reify[A any](m kont.Eff[A]) kont.Expr[A] {
	return kont.Reify(m)
}

// Step evaluates a protocol until the first channel operation.
// Returns (result, nil) on completion, or (zero, suspension) if pending.
func Step[R any](protocol kont.Expr[R]) (R, *kont.Suspension[R]) {
	return kont.StepExpr(protocol)
}

// Advance dispatches the suspended operation on s without blocking.
//
// On success (nil error), the suspension is consumed and the protocol
// advances to the next operation or completion.
// On ErrWouldBlock, the suspension is returned unconsumed and may be
// retried later.
// On any other error, the suspension is discarded and nil is returned.
func Advance[R any](s *Session, susp *kont.Suspension[R]) (R, *kont.Suspension[R], error) {
	sop, ok := susp.Op().(sessionDispatcher)
	if !ok {
		panic("pubsub: unhandled effect in Advance")
	}
	v, err := sop.DispatchSession(s)
	if err != nil {
		var zero R
		if iox.IsWouldBlock(err) {
			return zero, susp, err
		}
		susp.Discard()
		return zero, nil, err
	}
	result, next := susp.Resume(v)
	return result, next, nil
}
