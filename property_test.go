// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pubsub_test

import (
	"bytes"
	"errors"
	"testing"
	"testing/quick"

	"code.hybscloud.com/pubsub"
)

// TestPropertyWriteAdmission proves that for any fill level and write
// length, a write is rejected as invalid iff it exceeds capacity, rejected
// as would-block iff it exceeds the remaining space, and otherwise grows
// the fill level by exactly its length.
func TestPropertyWriteAdmission(t *testing.T) {
	const capacity = pubsub.DefaultCapacity

	property := func(fillSeed, lenSeed uint16) bool {
		fill := int(fillSeed) % (capacity + 1)
		l := int(lenSeed) % (capacity + 300)

		reg := pubsub.New()
		pub, _ := reg.Open(0)
		_ = pub.SetRole(pubsub.RolePublisher)
		if fill > 0 {
			if _, err := pub.Write(make([]byte, fill)); err != nil {
				return false
			}
		}
		before, _ := reg.Stat(0)

		n, err := pub.Write(make([]byte, l))
		after, _ := reg.Stat(0)
		switch {
		case l > capacity:
			return errors.Is(err, pubsub.ErrInvalidArgument) && n == 0 && after == before
		case l > capacity-fill:
			return pubsub.IsWouldBlock(err) && n == 0 && after == before
		default:
			return err == nil && n == l && after.FillLen == fill+l &&
				after.Generation == before.Generation
		}
	}

	if err := quick.Check(property, nil); err != nil {
		t.Error(err)
	}
}

// TestPropertySharedWriterAdmission proves that without the exclusive
// writer, a second publisher is refused as would-block iff its write
// exceeds the space left by the first.
func TestPropertySharedWriterAdmission(t *testing.T) {
	const capacity = pubsub.DefaultCapacity

	property := func(fillSeed, lenSeed uint16) bool {
		fill := int(fillSeed) % (capacity + 1)
		l := 1 + int(lenSeed)%capacity

		reg := pubsub.New(pubsub.WithExclusiveWriter(false))
		first, _ := reg.Open(0)
		second, _ := reg.Open(0)
		_ = first.SetRole(pubsub.RolePublisher)
		_ = second.SetRole(pubsub.RolePublisher)
		if _, err := first.Write(make([]byte, fill)); err != nil {
			return false
		}

		n, err := second.Write(make([]byte, l))
		st, _ := reg.Stat(0)
		if l > capacity-fill {
			return pubsub.IsWouldBlock(err) && n == 0 && st.FillLen == fill
		}
		return err == nil && n == l && st.FillLen == fill+l
	}

	if err := quick.Check(property, nil); err != nil {
		t.Error(err)
	}
}

// TestPropertyBroadcast proves that every subscriber retrieves the whole
// written block in order at its own read cadence, and that the channel
// resets only when the last subscriber finishes.
func TestPropertyBroadcast(t *testing.T) {
	property := func(sizeSeed uint16, subsSeed uint8, cadence []uint8, seed byte) bool {
		size := 1 + int(sizeSeed)%pubsub.DefaultCapacity
		k := 1 + int(subsSeed)%5

		reg := pubsub.New()
		pub, _ := reg.Open(0)
		_ = pub.SetRole(pubsub.RolePublisher)
		subs := make([]*pubsub.Session, k)
		for i := range subs {
			subs[i], _ = reg.Open(0)
			_ = subs[i].SetRole(pubsub.RoleSubscriber)
		}
		block := pattern(size, seed)
		if _, err := pub.Write(block); err != nil {
			return false
		}

		step := 0
		for i, s := range subs {
			var got []byte
			for len(got) < size {
				max := 1
				if len(cadence) > 0 {
					max += int(cadence[step%len(cadence)]) * (i + 1)
				}
				step++
				buf := make([]byte, max)
				n, err := s.Read(buf)
				if err != nil {
					return false
				}
				got = append(got, buf[:n]...)
			}
			if !bytes.Equal(got, block) {
				return false
			}
			st, _ := reg.Stat(0)
			if i < k-1 && (st.Generation != 0 || st.FillLen != size || st.Finished != i+1) {
				return false
			}
			if i == k-1 && (st.Generation != 1 || st.FillLen != 0) {
				return false
			}
		}
		for _, s := range subs {
			if _, err := s.Read(make([]byte, 1)); !pubsub.IsWouldBlock(err) {
				return false
			}
		}
		return true
	}

	if err := quick.Check(property, nil); err != nil {
		t.Error(err)
	}
}

// TestPropertyRoleImmutable proves that once a role is set, any further
// assignment is denied and the role is unchanged.
func TestPropertyRoleImmutable(t *testing.T) {
	property := func(subscriber bool, second uint32) bool {
		first := pubsub.RolePublisher
		if subscriber {
			first = pubsub.RoleSubscriber
		}
		reg := pubsub.New()
		s, _ := reg.Open(0)
		if err := s.SetRole(first); err != nil {
			return false
		}
		if err := s.SetRole(pubsub.Role(second)); !errors.Is(err, pubsub.ErrPermissionDenied) {
			return false
		}
		r, err := s.Role()
		return err == nil && r == first
	}

	if err := quick.Check(property, nil); err != nil {
		t.Error(err)
	}
}
