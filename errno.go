// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build unix

package pubsub

import (
	"errors"

	"golang.org/x/sys/unix"
)

// Errno maps an error returned by this package to the errno a character
// device front end reports for it. nil maps to zero; errors outside the
// package taxonomy map to EFAULT.
func Errno(err error) unix.Errno {
	switch {
	case err == nil:
		return 0
	case IsWouldBlock(err):
		return unix.EAGAIN
	case errors.Is(err, ErrPermissionDenied):
		return unix.EPERM
	case errors.Is(err, ErrUnsupportedOperation):
		return unix.ENOTTY
	case errors.Is(err, ErrInvalidArgument):
		return unix.EINVAL
	case errors.Is(err, ErrOutOfMemory):
		return unix.ENOMEM
	case errors.Is(err, ErrInvalidSession):
		return unix.EBADF
	default:
		return unix.EFAULT
	}
}

// ErrnoName returns the symbolic name of the errno for err, such as
// "EAGAIN", or "OK" for nil.
func ErrnoName(err error) string {
	e := Errno(err)
	if e == 0 {
		return "OK"
	}
	return unix.ErrnoName(e)
}
