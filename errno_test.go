// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build unix

package pubsub_test

import (
	"errors"
	"fmt"
	"testing"

	"code.hybscloud.com/pubsub"
	"golang.org/x/sys/unix"
)

func TestErrno(t *testing.T) {
	cases := []struct {
		err  error
		want unix.Errno
		name string
	}{
		{nil, 0, "OK"},
		{pubsub.ErrWouldBlock, unix.EAGAIN, "EAGAIN"},
		{pubsub.ErrPermissionDenied, unix.EPERM, "EPERM"},
		{pubsub.ErrInvalidArgument, unix.EINVAL, "EINVAL"},
		{pubsub.ErrUnsupportedOperation, unix.ENOTTY, "ENOTTY"},
		{pubsub.ErrOutOfMemory, unix.ENOMEM, "ENOMEM"},
		{pubsub.ErrInvalidSession, unix.EBADF, "EBADF"},
		{fmt.Errorf("wrapped: %w", pubsub.ErrPermissionDenied), unix.EPERM, "EPERM"},
		{errors.New("other"), unix.EFAULT, "EFAULT"},
	}
	for _, c := range cases {
		if got := pubsub.Errno(c.err); got != c.want {
			t.Fatalf("Errno(%v) = %v, want %v", c.err, got, c.want)
		}
		if got := pubsub.ErrnoName(c.err); got != c.name {
			t.Fatalf("ErrnoName(%v) = %q, want %q", c.err, got, c.name)
		}
	}
}
