// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pubsub_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"code.hybscloud.com/pubsub"
)

func TestOpenOutOfRange(t *testing.T) {
	reg := pubsub.New()
	for _, id := range []int{-1, pubsub.DefaultChannels, 1 << 20} {
		if _, err := reg.Open(id); !errors.Is(err, pubsub.ErrInvalidArgument) {
			t.Fatalf("open %d: got %v, want ErrInvalidArgument", id, err)
		}
		if _, err := reg.Stat(id); !errors.Is(err, pubsub.ErrInvalidArgument) {
			t.Fatalf("stat %d: got %v, want ErrInvalidArgument", id, err)
		}
	}
	if _, err := reg.Open(pubsub.DefaultChannels - 1); err != nil {
		t.Fatalf("open last id: %v", err)
	}
}

func TestLazyAllocation(t *testing.T) {
	reg := pubsub.New()
	if st := stat(t, reg, 9); st.Allocated || st.Capacity != 0 {
		t.Fatalf("allocated before open: %+v", st)
	}
	s, _ := reg.Open(9)
	st := stat(t, reg, 9)
	if !st.Allocated || st.Capacity != pubsub.DefaultCapacity || st.Refs != 1 {
		t.Fatalf("after open: %+v", st)
	}
	_ = s.Close()
	if st := stat(t, reg, 9); st.Allocated || st.Refs != 0 {
		t.Fatalf("after close: %+v", st)
	}
}

func TestLastCloseReleasesChannel(t *testing.T) {
	reg := pubsub.New()
	pub := openRole(t, reg, 4, pubsub.RolePublisher)
	sub := openRole(t, reg, 4, pubsub.RoleSubscriber)

	mustWrite(t, pub, pattern(10, 0))
	mustRead(t, sub, 10, 10)
	mustWrite(t, pub, pattern(20, 0))
	if st := stat(t, reg, 4); st.Generation != 1 || st.FillLen != 20 {
		t.Fatalf("before close: %+v", st)
	}

	_ = pub.Close()
	if st := stat(t, reg, 4); !st.Allocated || st.FillLen != 20 || st.Refs != 1 {
		t.Fatalf("after publisher close: %+v", st)
	}
	_ = sub.Close()
	if st := stat(t, reg, 4); st != (pubsub.ChannelStats{ID: 4}) {
		t.Fatalf("after last close: %+v", st)
	}

	// A fresh session starts at generation zero with an empty buffer.
	s := openRole(t, reg, 4, pubsub.RoleSubscriber)
	if st := stat(t, reg, 4); st.Generation != 0 || st.FillLen != 0 || st.Subscribers != 1 {
		t.Fatalf("reopened: %+v", st)
	}
	_, err := s.Read(make([]byte, 10))
	expectWouldBlock(t, err)
}

func TestChannelsIndependent(t *testing.T) {
	reg := pubsub.New()
	p0 := openRole(t, reg, 0, pubsub.RolePublisher)
	p1 := openRole(t, reg, 1, pubsub.RolePublisher)
	s1 := openRole(t, reg, 1, pubsub.RoleSubscriber)

	mustWrite(t, p0, make([]byte, 1000))
	mustWrite(t, p1, []byte("hello"))
	expectBytes(t, mustRead(t, s1, 10, 5), []byte("hello"))
	if st := stat(t, reg, 0); st.FillLen != 1000 || st.Generation != 0 {
		t.Fatalf("channel 0 touched: %+v", st)
	}
}

func TestBufferLimit(t *testing.T) {
	reg := pubsub.New(pubsub.WithBufferLimit(1))
	a, err := reg.Open(0)
	if err != nil {
		t.Fatalf("open 0: %v", err)
	}
	if _, err := reg.Open(1); !errors.Is(err, pubsub.ErrOutOfMemory) {
		t.Fatalf("open 1: got %v, want ErrOutOfMemory", err)
	}
	if st := stat(t, reg, 1); st.Allocated || st.Refs != 0 {
		t.Fatalf("failed open left state: %+v", st)
	}
	// Already-allocated channels accept more sessions.
	b, err := reg.Open(0)
	if err != nil {
		t.Fatalf("second open 0: %v", err)
	}
	if m := reg.Metrics(); m.Buffers != 1 {
		t.Fatalf("buffers got %d, want 1", m.Buffers)
	}
	_ = a.Close()
	_ = b.Close()
	if m := reg.Metrics(); m.Buffers != 0 {
		t.Fatalf("buffers got %d, want 0", m.Buffers)
	}
	if _, err := reg.Open(1); err != nil {
		t.Fatalf("open 1 after release: %v", err)
	}
}

func TestMetrics(t *testing.T) {
	reg := pubsub.New()
	pub := openRole(t, reg, 0, pubsub.RolePublisher)
	sub := openRole(t, reg, 0, pubsub.RoleSubscriber)

	mustWrite(t, pub, make([]byte, 600))
	_, _ = pub.Write(make([]byte, 600)) // would block
	mustRead(t, sub, 200, 200)
	mustRead(t, sub, 1000, 400)
	_, _ = sub.Read(make([]byte, 1)) // would block
	_, _ = sub.Write([]byte{1})      // denied, not counted
	_ = pub.Close()
	_ = sub.Close()

	want := pubsub.Metrics{
		Opens:        2,
		Closes:       2,
		Writes:       1,
		Reads:        2,
		BytesWritten: 600,
		BytesRead:    600,
		WouldBlocks:  2,
		Resets:       1,
	}
	if got := reg.Metrics(); got != want {
		t.Fatalf("metrics got %+v, want %+v", got, want)
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	reg := pubsub.New(pubsub.WithLogger(logger), pubsub.WithBufferLimit(1))

	pub := openRole(t, reg, 2, pubsub.RolePublisher)
	sub := openRole(t, reg, 2, pubsub.RoleSubscriber)
	mustWrite(t, pub, []byte("x"))
	mustRead(t, sub, 1, 1)
	_, _ = reg.Open(3)
	_ = pub.Close()
	_ = sub.Close()

	out := buf.String()
	for _, msg := range []string{
		"channel allocated",
		"channel drained",
		"channel allocation refused",
		"channel released",
	} {
		if !strings.Contains(out, msg) {
			t.Fatalf("log missing %q:\n%s", msg, out)
		}
	}
}
