// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pubsub

import (
	"code.hybscloud.com/kont"
)

// PublishThen writes p and then continues with next.
// Fuses Perform(Publish{Data: p}) + Then.
func PublishThen[B any](p []byte, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Publish{Data: p}), next)
}

// ConsumeBind reads up to max bytes and passes them to f.
// Fuses Perform(Consume{Max: max}) + Bind.
func ConsumeBind[B any](max int, f func([]byte) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Consume{Max: max}), f)
}

// ConsumeN reads until exactly n bytes have been collected, chunking
// each read at max bytes.
func ConsumeN(n, max int) kont.Eff[[]byte] {
	if max <= 0 {
		max = n
	}
	return Loop(make([]byte, 0, n), func(acc []byte) kont.Eff[kont.Either[[]byte, []byte]] {
		if len(acc) >= n {
			return kont.Pure(kont.Right[[]byte, []byte](acc))
		}
		want := min(max, n-len(acc))
		return ConsumeBind(want, func(p []byte) kont.Eff[kont.Either[[]byte, []byte]] {
			return kont.Pure(kont.Left[[]byte, []byte](append(acc, p...)))
		})
	})
}

// Loop runs step until it returns Right. Left carries the next state.
func Loop[S, A any](state S, step func(S) kont.Eff[kont.Either[S, A]]) kont.Eff[A] {
	return kont.Bind(step(state), func(e kont.Either[S, A]) kont.Eff[A] {
		if a, done := e.GetRight(); done {
			return kont.Pure(a)
		}
		next, _ := e.GetLeft()
		return Loop(next, step)
	})
}

// PublishAll writes blocks in order, one Publish each, and returns the
// number of blocks written.
func PublishAll(blocks [][]byte) kont.Eff[int] {
	return Loop(0, func(i int) kont.Eff[kont.Either[int, int]] {
		if i == len(blocks) {
			return kont.Pure(kont.Right[int, int](i))
		}
		return PublishThen(blocks[i], kont.Pure(kont.Left[int, int](i+1)))
	})
}
