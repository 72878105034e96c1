// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pubsub

// Role is the part a session plays on its channel.
// It is assigned at most once per session.
type Role uint32

const (
	// RoleNone is the neutral value of a session that has not been
	// assigned a role yet.
	RoleNone Role = iota
	// RolePublisher may write to the channel.
	RolePublisher
	// RoleSubscriber may read from the channel and counts toward drain
	// completion.
	RoleSubscriber

	// roleInvalid stands in for control arguments that do not fit a Role.
	roleInvalid = ^Role(0)
)

// Valid reports whether r is an assignable role.
func (r Role) Valid() bool {
	return r == RolePublisher || r == RoleSubscriber
}

func (r Role) String() string {
	switch r {
	case RoleNone:
		return "none"
	case RolePublisher:
		return "publisher"
	case RoleSubscriber:
		return "subscriber"
	default:
		return "invalid"
	}
}

// ParseRole returns the role named s ("none", "publisher", "subscriber").
func ParseRole(s string) (Role, error) {
	switch s {
	case "none":
		return RoleNone, nil
	case "publisher", "pub":
		return RolePublisher, nil
	case "subscriber", "sub":
		return RoleSubscriber, nil
	}
	return 0, ErrInvalidArgument
}
