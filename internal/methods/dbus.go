package methods

import (
	"fmt"

	"github.com/wakego/wakego/internal/dbusx"
	"github.com/wakego/wakego/internal/method"
	"github.com/wakego/wakego/internal/platform"
)

// appName is passed as the application identifier in Inhibit calls.
const appName = "wakego"

// GNOME SessionManager inhibit flag bits.
const (
	gnomeFlagSuspend = 4
	gnomeFlagIdle    = 8
)

// inhibitTarget names one Inhibit/UnInhibit D-Bus surface.
type inhibitTarget struct {
	service   string
	path      string
	iface     string
	inhibit   string
	uninhibit string
}

func powerManagementCall() inhibitTarget {
	return inhibitTarget{
		service:   "org.freedesktop.PowerManagement",
		path:      "/org/freedesktop/PowerManagement/Inhibit",
		iface:     "org.freedesktop.PowerManagement.Inhibit",
		inhibit:   "Inhibit",
		uninhibit: "UnInhibit",
	}
}

func screenSaverCall() inhibitTarget {
	return inhibitTarget{
		service:   "org.freedesktop.ScreenSaver",
		path:      "/org/freedesktop/ScreenSaver",
		iface:     "org.freedesktop.ScreenSaver",
		inhibit:   "Inhibit",
		uninhibit: "UnInhibit",
	}
}

// dbusInhibitState holds the cookie for one activation of a D-Bus inhibit
// method. The cookie is owned by this instance until exit.
type dbusInhibitState struct {
	adapter dbusx.Adapter
	target  inhibitTarget
	args    func() []any
	cookie  uint32
	held    bool
}

func (s *dbusInhibitState) caniuse() error {
	if s.adapter == nil {
		return fmt.Errorf("%w: no dbus adapter", method.ErrRequirementsFailed)
	}
	if _, ok := s.adapter.(*dbusx.SessionAdapter); ok && !dbusx.SessionBusAvailable() {
		return fmt.Errorf("%w: %v", method.ErrRequirementsFailed, dbusx.ErrNoSessionBus)
	}
	return nil
}

func (s *dbusInhibitState) enter() error {
	body, err := s.adapter.Call(dbusx.Call{
		Bus:       dbusx.Session,
		Service:   s.target.service,
		Path:      s.target.path,
		Interface: s.target.iface,
		Member:    s.target.inhibit,
		Args:      s.args(),
	})
	if err != nil {
		return fmt.Errorf("%w: %s.%s: %v", method.ErrEnterFailed, s.target.iface, s.target.inhibit, err)
	}

	cookie, err := cookieFromBody(body)
	if err != nil {
		return fmt.Errorf("%w: %s.%s: %v", method.ErrEnterFailed, s.target.iface, s.target.inhibit, err)
	}
	s.cookie = cookie
	s.held = true
	return nil
}

func (s *dbusInhibitState) exit() error {
	if !s.held {
		return nil
	}
	_, err := s.adapter.Call(dbusx.Call{
		Bus:       dbusx.Session,
		Service:   s.target.service,
		Path:      s.target.path,
		Interface: s.target.iface,
		Member:    s.target.uninhibit,
		Args:      []any{s.cookie},
	})
	if err != nil {
		return fmt.Errorf("%w: %s.%s: %v", method.ErrExitFailed, s.target.iface, s.target.uninhibit, err)
	}
	s.held = false
	s.cookie = 0
	return nil
}

// cookieFromBody extracts the uint32 inhibit cookie from a reply body.
func cookieFromBody(body []any) (uint32, error) {
	if len(body) == 0 {
		return 0, fmt.Errorf("reply carries no cookie")
	}
	switch v := body[0].(type) {
	case uint32:
		return v, nil
	case int32:
		return uint32(v), nil
	case uint64:
		return uint32(v), nil
	}
	return 0, fmt.Errorf("reply cookie has unexpected type %T", body[0])
}

// newFreedesktopInhibit builds a freedesktop-style inhibit method:
// Inhibit(app, reason) -> cookie on entry, UnInhibit(cookie) on exit.
func newFreedesktopInhibit(name, modeName string, target inhibitTarget) *method.Method {
	return &method.Method{
		Name:      name,
		Mode:      modeName,
		Platforms: []platform.Type{platform.UnixLikeFOSS},
		New: func(opts method.Options) method.Callbacks {
			s := &dbusInhibitState{
				adapter: opts.DBus,
				target:  target,
				args:    func() []any { return []any{appName, "wakelock active"} },
			}
			return method.Callbacks{CanIUse: s.caniuse, Enter: s.enter, Exit: s.exit}
		},
	}
}

// newGnomeInhibit builds a GNOME SessionManager inhibit method:
// Inhibit(app, toplevel_xid, reason, flags) -> cookie, Uninhibit(cookie).
func newGnomeInhibit(name, modeName string, flags uint32) *method.Method {
	target := inhibitTarget{
		service:   "org.gnome.SessionManager",
		path:      "/org/gnome/SessionManager",
		iface:     "org.gnome.SessionManager",
		inhibit:   "Inhibit",
		uninhibit: "Uninhibit",
	}
	return &method.Method{
		Name:      name,
		Mode:      modeName,
		Platforms: []platform.Type{platform.UnixLikeFOSS},
		New: func(opts method.Options) method.Callbacks {
			s := &dbusInhibitState{
				adapter: opts.DBus,
				target:  target,
				args:    func() []any { return []any{appName, uint32(0), "wakelock active", flags} },
			}
			return method.Callbacks{CanIUse: s.caniuse, Enter: s.enter, Exit: s.exit}
		},
	}
}
