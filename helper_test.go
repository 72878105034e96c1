// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pubsub_test

import (
	"bytes"
	"testing"

	"code.hybscloud.com/pubsub"
)

// openRole opens a session on id and assigns r.
func openRole(tb testing.TB, reg *pubsub.Registry, id int, r pubsub.Role) *pubsub.Session {
	tb.Helper()
	s, err := reg.Open(id)
	if err != nil {
		tb.Fatalf("open %d: %v", id, err)
	}
	if err := s.SetRole(r); err != nil {
		tb.Fatalf("set role %v: %v", r, err)
	}
	return s
}

// stat returns the snapshot of channel id.
func stat(tb testing.TB, reg *pubsub.Registry, id int) pubsub.ChannelStats {
	tb.Helper()
	st, err := reg.Stat(id)
	if err != nil {
		tb.Fatalf("stat %d: %v", id, err)
	}
	return st
}

// pattern returns n bytes whose values depend on position and seed.
func pattern(n int, seed byte) []byte {
	p := make([]byte, n)
	for i := range p {
		p[i] = byte(i) ^ seed
	}
	return p
}

func mustWrite(tb testing.TB, s *pubsub.Session, p []byte) {
	tb.Helper()
	n, err := s.Write(p)
	if err != nil {
		tb.Fatalf("write %d: %v", len(p), err)
	}
	if n != len(p) {
		tb.Fatalf("write got %d, want %d", n, len(p))
	}
}

// mustRead reads with a buffer of max bytes and checks the count.
func mustRead(tb testing.TB, s *pubsub.Session, max, want int) []byte {
	tb.Helper()
	buf := make([]byte, max)
	n, err := s.Read(buf)
	if err != nil {
		tb.Fatalf("read %d: %v", max, err)
	}
	if n != want {
		tb.Fatalf("read got %d, want %d", n, want)
	}
	return buf[:n]
}

func expectWouldBlock(tb testing.TB, err error) {
	tb.Helper()
	if !pubsub.IsWouldBlock(err) {
		tb.Fatalf("expected ErrWouldBlock, got %v", err)
	}
}

func expectBytes(tb testing.TB, got, want []byte) {
	tb.Helper()
	if !bytes.Equal(got, want) {
		tb.Fatalf("data mismatch: got %d bytes, want %d bytes", len(got), len(want))
	}
}
