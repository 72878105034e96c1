// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pubsub

import "code.hybscloud.com/atomix"

// Metrics is a point-in-time copy of registry-wide counters.
type Metrics struct {
	Opens        uint64
	Closes       uint64
	Writes       uint64
	Reads        uint64
	BytesWritten uint64
	BytesRead    uint64
	WouldBlocks  uint64
	Resets       uint64
	Buffers      uint32 // channel buffers currently allocated
}

type counters struct {
	opens        atomix.Uint64
	closes       atomix.Uint64
	writes       atomix.Uint64
	reads        atomix.Uint64
	bytesWritten atomix.Uint64
	bytesRead    atomix.Uint64
	wouldBlocks  atomix.Uint64
	resets       atomix.Uint64
}

// Metrics returns the current counters. Counters are updated without the
// channel locks, so a snapshot taken during traffic is not atomic across
// fields.
func (r *Registry) Metrics() Metrics {
	return Metrics{
		Opens:        r.stats.opens.Load(),
		Closes:       r.stats.closes.Load(),
		Writes:       r.stats.writes.Load(),
		Reads:        r.stats.reads.Load(),
		BytesWritten: r.stats.bytesWritten.Load(),
		BytesRead:    r.stats.bytesRead.Load(),
		WouldBlocks:  r.stats.wouldBlocks.Load(),
		Resets:       r.stats.resets.Load(),
		Buffers:      r.live.Load(),
	}
}

// observe counts the outcome of a write or read of n bytes.
func (c *counters) observe(total, bytes *atomix.Uint64, n int, err error) {
	switch {
	case err == nil:
		total.Add(1)
		bytes.Add(uint64(n))
	case IsWouldBlock(err):
		c.wouldBlocks.Add(1)
	}
}
