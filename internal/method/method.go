// Package method defines the inhibit-method contract: a capability record
// describing one concrete way to keep the system awake, the process-wide
// registry of such records, and the staged activation of a single method.
package method

import (
	"time"

	"github.com/wakego/wakego/internal/dbusx"
	"github.com/wakego/wakego/internal/platform"
)

// Mode names served by the shipped methods.
const (
	ModeKeepRunning    = "keep.running"
	ModeKeepPresenting = "keep.presenting"
)

// DefaultHeartbeatPeriod is used when a method does not declare its own.
const DefaultHeartbeatPeriod = 55 * time.Second

// Options carries the per-activation dependencies handed to a method
// constructor.
type Options struct {
	// DBus is the session-bus transport used by D-Bus based methods.
	// May be nil; such methods then fail their requirements check.
	DBus dbusx.Adapter
}

// Callbacks is the per-activation instance of a method. Each field is
// optional, but at least one of Enter and Heartbeat must be set.
//
// Enter performs the inhibit action and must be symmetric with Exit.
// Heartbeat is invoked once synchronously during activation and then
// periodically while the mode is held. Exit revokes the inhibit action and
// must tolerate being called after a failed Enter.
type Callbacks struct {
	CanIUse   func() error
	Enter     func() error
	Heartbeat func() error
	Exit      func() error
}

// Method describes one activation technique. Methods are plain values held
// in a Registry; per-activation state lives in the Callbacks closures
// returned by New.
//
// New must be free of side effects: it only builds closures over a fresh
// state value. It is also invoked once at registration time to validate the
// record.
type Method struct {
	// Name uniquely identifies the method across all modes.
	Name string

	// Mode is the mode name this method serves.
	Mode string

	// Platforms lists the platforms the method works on. Composite tags
	// are allowed.
	Platforms []platform.Type

	// HeartbeatPeriod overrides DefaultHeartbeatPeriod when non-zero.
	HeartbeatPeriod time.Duration

	New func(Options) Callbacks
}

// Period returns the effective heartbeat period.
func (m *Method) Period() time.Duration {
	if m.HeartbeatPeriod > 0 {
		return m.HeartbeatPeriod
	}
	return DefaultHeartbeatPeriod
}

// Info returns the displayable identity of the method.
func (m *Method) Info() Info {
	return Info{Name: m.Name, Mode: m.Mode, Platforms: m.Platforms}
}

// Info identifies a method in activation results and listings.
type Info struct {
	Name      string
	Mode      string
	Platforms []platform.Type
}

func (i Info) String() string { return i.Name }
