package methods

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wakego/wakego/internal/dbusx"
	"github.com/wakego/wakego/internal/method"
	"github.com/wakego/wakego/internal/platform"
	"github.com/wakego/wakego/internal/util"
)

// fakeAdapter records calls and plays back canned replies.
type fakeAdapter struct {
	calls   []dbusx.Call
	replies [][]any
	err     error
	closed  bool
}

func (f *fakeAdapter) Call(c dbusx.Call) ([]any, error) {
	f.calls = append(f.calls, c)
	if f.err != nil {
		return nil, f.err
	}
	if len(f.replies) == 0 {
		return nil, nil
	}
	reply := f.replies[0]
	f.replies = f.replies[1:]
	return reply, nil
}

func (f *fakeAdapter) Close() error {
	f.closed = true
	return nil
}

func TestRegisterDefaults(t *testing.T) {
	reg := method.NewRegistry()
	require.NoError(t, RegisterDefaults(reg))

	running := reg.MethodsFor(method.ModeKeepRunning)
	require.Len(t, running, 4)
	assert.Equal(t, ExecutionStateName, running[0].Name)
	assert.Equal(t, CaffeinateName, running[1].Name)
	assert.Equal(t, GnomeSuspendName, running[2].Name)
	assert.Equal(t, FreedesktopPowerName, running[3].Name)

	presenting := reg.MethodsFor(method.ModeKeepPresenting)
	require.Len(t, presenting, 4)
	assert.Equal(t, ExecutionStateDisplayName, presenting[0].Name)
	assert.Equal(t, FreedesktopScreenSaverName, presenting[3].Name)

	// Registering twice into the same registry trips the duplicate check.
	assert.ErrorIs(t, RegisterDefaults(reg), method.ErrDuplicateName)
}

func TestFreedesktopInhibitRoundTrip(t *testing.T) {
	adapter := &fakeAdapter{replies: [][]any{{uint32(1234)}, {}}}

	m := newFreedesktopInhibit(FreedesktopScreenSaverName, method.ModeKeepPresenting, screenSaverCall())
	cb := m.New(method.Options{DBus: adapter})

	require.NoError(t, cb.Enter())
	require.NoError(t, cb.Exit())

	require.Len(t, adapter.calls, 2)

	inhibit := adapter.calls[0]
	assert.Equal(t, "org.freedesktop.ScreenSaver", inhibit.Service)
	assert.Equal(t, "/org/freedesktop/ScreenSaver", inhibit.Path)
	assert.Equal(t, "Inhibit", inhibit.Member)
	require.Len(t, inhibit.Args, 2)
	assert.Equal(t, "wakego", inhibit.Args[0])

	uninhibit := adapter.calls[1]
	assert.Equal(t, "UnInhibit", uninhibit.Member)
	require.Len(t, uninhibit.Args, 1)
	assert.Equal(t, uint32(1234), uninhibit.Args[0], "exit revokes the cookie enter received")
}

func TestFreedesktopInhibitServiceUnknown(t *testing.T) {
	adapter := &fakeAdapter{err: &dbusx.Error{
		Name:    "org.freedesktop.DBus.Error.ServiceUnknown",
		Message: "no .service file",
	}}

	m := newFreedesktopInhibit(FreedesktopPowerName, method.ModeKeepRunning, powerManagementCall())
	cb := m.New(method.Options{DBus: adapter})

	err := cb.Enter()
	require.Error(t, err)
	assert.ErrorIs(t, err, method.ErrEnterFailed)
	assert.Contains(t, err.Error(), "ServiceUnknown")

	// Nothing was inhibited, so exit has nothing to revoke.
	require.NoError(t, cb.Exit())
	assert.Len(t, adapter.calls, 1)
}

func TestFreedesktopCanIUseWithoutAdapter(t *testing.T) {
	m := newFreedesktopInhibit(FreedesktopPowerName, method.ModeKeepRunning, powerManagementCall())
	cb := m.New(method.Options{})

	err := cb.CanIUse()
	assert.ErrorIs(t, err, method.ErrRequirementsFailed)
}

func TestFreedesktopCanIUseWithoutBusAddress(t *testing.T) {
	t.Setenv("DBUS_SESSION_BUS_ADDRESS", "")

	m := newFreedesktopInhibit(FreedesktopPowerName, method.ModeKeepRunning, powerManagementCall())
	cb := m.New(method.Options{DBus: dbusx.NewSessionAdapter()})

	err := cb.CanIUse()
	assert.ErrorIs(t, err, method.ErrRequirementsFailed)
}

func TestGnomeInhibitFlags(t *testing.T) {
	tests := []struct {
		name      string
		factory   *method.Method
		wantFlags uint32
	}{
		{"suspend", newGnomeInhibit(GnomeSuspendName, method.ModeKeepRunning, gnomeFlagSuspend), 4},
		{"suspend and idle", newGnomeInhibit(GnomeIdleName, method.ModeKeepPresenting, gnomeFlagSuspend|gnomeFlagIdle), 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter := &fakeAdapter{replies: [][]any{{uint32(7)}, {}}}
			cb := tt.factory.New(method.Options{DBus: adapter})

			require.NoError(t, cb.Enter())
			require.NoError(t, cb.Exit())

			require.Len(t, adapter.calls, 2)
			inhibit := adapter.calls[0]
			assert.Equal(t, "org.gnome.SessionManager", inhibit.Service)
			require.Len(t, inhibit.Args, 4)
			assert.Equal(t, uint32(0), inhibit.Args[1], "toplevel xid")
			assert.Equal(t, tt.wantFlags, inhibit.Args[3])

			assert.Equal(t, "Uninhibit", adapter.calls[1].Member)
		})
	}
}

func TestCookieFromBody(t *testing.T) {
	got, err := cookieFromBody([]any{uint32(99)})
	require.NoError(t, err)
	assert.Equal(t, uint32(99), got)

	_, err = cookieFromBody(nil)
	assert.Error(t, err)

	_, err = cookieFromBody([]any{"not a cookie"})
	assert.Error(t, err)
}

func TestGnomeBadCookieReply(t *testing.T) {
	adapter := &fakeAdapter{replies: [][]any{{"bogus"}}}
	m := newGnomeInhibit(GnomeSuspendName, method.ModeKeepRunning, gnomeFlagSuspend)
	cb := m.New(method.Options{DBus: adapter})

	err := cb.Enter()
	assert.ErrorIs(t, err, method.ErrEnterFailed)
}

func TestCaffeinateRequirements(t *testing.T) {
	m := newCaffeinate(CaffeinateName, method.ModeKeepRunning, false)
	cb := m.New(method.Options{})

	err := cb.CanIUse()
	if util.HasCommand("caffeinate") {
		assert.NoError(t, err)
	} else {
		assert.ErrorIs(t, err, method.ErrRequirementsFailed)
	}
}

func TestCaffeinateExitWithoutEnter(t *testing.T) {
	m := newCaffeinate(CaffeinateDisplayName, method.ModeKeepPresenting, true)
	cb := m.New(method.Options{})
	assert.NoError(t, cb.Exit())
}

func TestMethodPlatforms(t *testing.T) {
	reg := method.NewRegistry()
	require.NoError(t, RegisterDefaults(reg))

	assert.True(t, platform.Supports(platform.Windows,
		reg.Lookup(ExecutionStateName).Platforms))
	assert.False(t, platform.Supports(platform.Linux,
		reg.Lookup(ExecutionStateName).Platforms))

	assert.True(t, platform.Supports(platform.MacOS,
		reg.Lookup(CaffeinateName).Platforms))

	for _, name := range []string{GnomeSuspendName, FreedesktopPowerName} {
		assert.True(t, platform.Supports(platform.Linux, reg.Lookup(name).Platforms), name)
		assert.True(t, platform.Supports(platform.FreeBSD, reg.Lookup(name).Platforms), name)
		assert.False(t, platform.Supports(platform.MacOS, reg.Lookup(name).Platforms), name)
	}
}

func TestErrorsUnwrap(t *testing.T) {
	adapter := &fakeAdapter{err: errors.New("plain transport failure")}
	m := newFreedesktopInhibit(FreedesktopPowerName, method.ModeKeepRunning, powerManagementCall())
	cb := m.New(method.Options{DBus: adapter})

	err := cb.Enter()
	assert.ErrorIs(t, err, method.ErrEnterFailed)
	assert.Contains(t, err.Error(), "plain transport failure")
}
