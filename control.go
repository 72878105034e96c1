// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pubsub

// Command is a control request identifier.
// Values follow the Linux ioctl number layout so that a device front end
// can pass request numbers through unchanged.
type Command uint32

// ioctl number layout: dir(2) | size(14) | type(8) | nr(8).
const (
	iocNRBits   = 8
	iocTypeBits = 8
	iocSizeBits = 14

	iocNRShift   = 0
	iocTypeShift = iocNRShift + iocNRBits
	iocSizeShift = iocTypeShift + iocTypeBits
	iocDirShift  = iocSizeShift + iocSizeBits

	iocNone = 0

	controlMagic = 'r'
)

// ioc builds a request number from its fields.
func ioc(dir, typ, nr, size uint32) Command {
	return Command(dir<<iocDirShift | typ<<iocTypeShift | nr<<iocNRShift | size<<iocSizeShift)
}

var (
	// CmdSetRole assigns the session role; the argument is a Role value.
	CmdSetRole = ioc(iocNone, controlMagic, 0, 0)
	// CmdGetRole returns the session role as an integer.
	CmdGetRole = ioc(iocNone, controlMagic, 1, 0)
)

func (c Command) String() string {
	switch c {
	case CmdSetRole:
		return "SET_ROLE"
	case CmdGetRole:
		return "GET_ROLE"
	default:
		return "UNKNOWN"
	}
}

// Control dispatches a control request on the session.
//
// CmdSetRole treats arg as a Role and returns 0 on success; values wider
// than a Role are invalid rather than truncated.
// CmdGetRole ignores arg and returns the current role; an unassigned
// session reports RoleNone (0).
// Any other command fails with ErrUnsupportedOperation and leaves all
// state unchanged.
func (s *Session) Control(cmd Command, arg uintptr) (int, error) {
	switch cmd {
	case CmdSetRole:
		r := Role(arg)
		if uintptr(r) != arg {
			r = roleInvalid
		}
		if err := s.SetRole(r); err != nil {
			return 0, err
		}
		return 0, nil
	case CmdGetRole:
		r, err := s.Role()
		if err != nil {
			return 0, err
		}
		return int(r), nil
	default:
		return 0, ErrUnsupportedOperation
	}
}
