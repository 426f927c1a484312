package dbusx

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
)

// defaultCallTimeout bounds every call placed through the session adapter.
const defaultCallTimeout = 5 * time.Second

// SessionBusAvailable reports whether the desktop session has published a
// session-bus address.
func SessionBusAvailable() bool {
	return os.Getenv("DBUS_SESSION_BUS_ADDRESS") != ""
}

// SessionAdapter is the default Adapter. It connects lazily to the session
// bus named by DBUS_SESSION_BUS_ADDRESS; the absence of that address is
// reported as ErrNoSessionBus on first use.
type SessionAdapter struct {
	mu      sync.Mutex
	conn    *dbus.Conn
	timeout time.Duration
}

// NewSessionAdapter returns an unconnected session-bus adapter.
func NewSessionAdapter() *SessionAdapter {
	return &SessionAdapter{timeout: defaultCallTimeout}
}

func (a *SessionAdapter) connect() (*dbus.Conn, error) {
	if a.conn != nil {
		return a.conn, nil
	}

	if os.Getenv("DBUS_SESSION_BUS_ADDRESS") == "" {
		return nil, ErrNoSessionBus
	}

	conn, err := dbus.SessionBusPrivate()
	if err != nil {
		return nil, fmt.Errorf("connecting to session bus: %w", err)
	}
	if err := conn.Auth(nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("session bus auth: %w", err)
	}
	if err := conn.Hello(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("session bus hello: %w", err)
	}
	a.conn = conn
	return conn, nil
}

// Call places the call on the session bus. System-bus calls are rejected;
// no shipped method needs them.
func (a *SessionAdapter) Call(call Call) ([]any, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if call.Bus != Session {
		return nil, fmt.Errorf("unsupported bus for %s", call)
	}

	conn, err := a.connect()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	obj := conn.Object(call.Service, dbus.ObjectPath(call.Path))
	reply := obj.CallWithContext(ctx, call.Interface+"."+call.Member, 0, call.Args...)
	if reply.Err != nil {
		if dbusErr, ok := reply.Err.(dbus.Error); ok {
			return nil, &Error{Name: dbusErr.Name, Message: fmt.Sprint(dbusErr.Body...)}
		}
		if ctx.Err() != nil {
			return nil, &Error{Name: "org.freedesktop.DBus.Error.NoReply", Message: reply.Err.Error()}
		}
		return nil, reply.Err
	}
	return reply.Body, nil
}

// Close shuts down the bus connection, if one was established.
func (a *SessionAdapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.conn == nil {
		return nil
	}
	err := a.conn.Close()
	a.conn = nil
	return err
}
