// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package pubsub provides single-writer, multi-reader broadcast channels
// behind a file-like session API.
//
// One publisher writes a bounded block of bytes into a channel; every
// subscriber reads the whole block at its own pace; the channel recycles
// itself once every subscriber has drained it.
//
// # Architecture
//
//   - Registry: fixed table of channel ids created by [New]. [Registry.Open]
//     lazily allocates a channel buffer and returns a [Session].
//   - Session: per-handle role, read offset, and generation. The role is
//     set once with [Session.SetRole] or [Session.Control].
//   - Channel: one fixed-capacity buffer with fill length, generation,
//     subscriber and drain counters. Each channel has its own mutex held
//     for the full duration of every operation; channels never contend.
//   - Non-blocking: [Session.Write] without room and [Session.Read] without
//     new data return [ErrWouldBlock] ([code.hybscloud.com/iox.ErrWouldBlock])
//     immediately. Retrying is the caller's business.
//
// # Generations
//
// Writes are all-or-nothing appends. When the read that drains the last
// subscriber completes, the channel bumps its generation and empties the
// buffer. Sessions that were behind rewind to the new generation on their
// next read. Closing the last session of a channel releases its buffer and
// zeroes its state.
//
// # Protocols
//
//   - Operations: [Publish] and [Consume] are effects on [code.hybscloud.com/kont].
//   - Composition: [PublishThen], [ConsumeBind], [ConsumeN], [PublishAll], [Loop].
//   - Blocking: [Exec] waits past ErrWouldBlock with adaptive backoff.
//   - Stepping: [Step] and [Advance] evaluate one operation at a time for
//     callers that run their own readiness loop.
//
// # Example
//
//	reg := pubsub.New()
//	pub, _ := reg.Open(7)
//	sub, _ := reg.Open(7)
//	_ = pub.SetRole(pubsub.RolePublisher)
//	_ = sub.SetRole(pubsub.RoleSubscriber)
//	_, _ = pub.Write([]byte("hello"))
//	buf := make([]byte, 16)
//	n, err := sub.Read(buf) // 5, nil; the drain resets the channel
//	_, err = sub.Read(buf)  // ErrWouldBlock until the next write
package pubsub
