// Package methods ships the concrete inhibit methods: Windows execution
// state flags, the macOS caffeinate helper, and the freedesktop/GNOME D-Bus
// inhibit families. RegisterDefaults wires them into a registry; nothing is
// registered implicitly at import time.
package methods

import "github.com/wakego/wakego/internal/method"

// RegisterDefaults registers the shipped methods into reg (the default
// registry when nil). The registration order below is the fallback priority
// order within each mode.
func RegisterDefaults(reg *method.Registry) error {
	if reg == nil {
		reg = method.Default
	}

	all := []*method.Method{
		// keep.running
		newExecutionState(ExecutionStateName, method.ModeKeepRunning, false),
		newCaffeinate(CaffeinateName, method.ModeKeepRunning, false),
		newGnomeInhibit(GnomeSuspendName, method.ModeKeepRunning, gnomeFlagSuspend),
		newFreedesktopInhibit(FreedesktopPowerName, method.ModeKeepRunning, powerManagementCall()),

		// keep.presenting
		newExecutionState(ExecutionStateDisplayName, method.ModeKeepPresenting, true),
		newCaffeinate(CaffeinateDisplayName, method.ModeKeepPresenting, true),
		newGnomeInhibit(GnomeIdleName, method.ModeKeepPresenting, gnomeFlagSuspend|gnomeFlagIdle),
		newFreedesktopInhibit(FreedesktopScreenSaverName, method.ModeKeepPresenting, screenSaverCall()),
	}

	for _, m := range all {
		if err := reg.Register(m); err != nil {
			return err
		}
	}
	return nil
}

// Shipped method names.
const (
	ExecutionStateName        = "SetThreadExecutionState"
	ExecutionStateDisplayName = "SetThreadExecutionState:display"

	CaffeinateName        = "caffeinate"
	CaffeinateDisplayName = "caffeinate:display"

	GnomeSuspendName = "org.gnome.SessionManager:suspend"
	GnomeIdleName    = "org.gnome.SessionManager:idle"

	FreedesktopPowerName       = "org.freedesktop.PowerManagement"
	FreedesktopScreenSaverName = "org.freedesktop.ScreenSaver"
)
