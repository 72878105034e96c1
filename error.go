// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pubsub

import (
	"errors"
	"fmt"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock reports that a write lacks remaining space or a read has
// nothing new to consume. It is iox.ErrWouldBlock, so [iox.IsWouldBlock]
// classifies it. State is never changed; the caller may retry.
var ErrWouldBlock = iox.ErrWouldBlock

var (
	// ErrPermissionDenied reports a role mismatch for the requested
	// operation, or an attempt to reassign an already-set role.
	ErrPermissionDenied = errors.New("pubsub: permission denied")

	// ErrInvalidArgument reports a write longer than the channel capacity,
	// an unrecognized role value, or a channel id out of range.
	ErrInvalidArgument = errors.New("pubsub: invalid argument")

	// ErrUnsupportedOperation reports an unrecognized control command.
	// It wraps ErrInvalidArgument.
	ErrUnsupportedOperation = fmt.Errorf("%w: unsupported operation", ErrInvalidArgument)

	// ErrOutOfMemory reports that a channel buffer could not be allocated.
	ErrOutOfMemory = errors.New("pubsub: out of memory")

	// ErrInvalidSession reports an operation on a closed session.
	ErrInvalidSession = errors.New("pubsub: invalid session")
)

// IsWouldBlock reports whether err is the non-fatal "not ready yet" signal.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}
