package dbusx

import (
	"errors"
	"fmt"
)

// Well-known D-Bus failure classes. Error values carry the original bus
// error name and match these sentinels through errors.Is.
var (
	ErrServiceUnknown = errors.New("dbus service unknown")
	ErrNoReply        = errors.New("dbus call got no reply")
	ErrAccessDenied   = errors.New("dbus access denied")
	ErrInvalidArgs    = errors.New("dbus invalid arguments")
	ErrDisconnected   = errors.New("dbus connection closed")
	ErrNoSessionBus   = errors.New("session bus address not set in environment")
)

var errorNames = map[string]error{
	"org.freedesktop.DBus.Error.ServiceUnknown": ErrServiceUnknown,
	"org.freedesktop.DBus.Error.NoReply":        ErrNoReply,
	"org.freedesktop.DBus.Error.AccessDenied":   ErrAccessDenied,
	"org.freedesktop.DBus.Error.InvalidArgs":    ErrInvalidArgs,
	"org.freedesktop.DBus.Error.Disconnected":   ErrDisconnected,
}

// Error is a D-Bus error reply.
type Error struct {
	Name    string
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Name
	}
	return fmt.Sprintf("[%s] %s", e.Name, e.Message)
}

// Is matches the sentinel corresponding to the bus error name.
func (e *Error) Is(target error) bool {
	sentinel, ok := errorNames[e.Name]
	return ok && target == sentinel
}
