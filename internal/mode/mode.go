// Package mode holds the activation engine: a Mode selects among the
// registered methods of its mode name, activates the first one that works,
// supervises it while the caller holds the mode, and deactivates it on exit.
package mode

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/wakego/wakego/internal/dbusx"
	"github.com/wakego/wakego/internal/method"
	"github.com/wakego/wakego/internal/platform"
)

// Re-exported mode names, for callers that only import this package.
const (
	KeepRunning    = method.ModeKeepRunning
	KeepPresenting = method.ModeKeepPresenting
)

// heartbeatStopTimeout bounds the wait for heartbeat quiescence on exit.
const heartbeatStopTimeout = 5 * time.Second

// OnFail selects what Enter does when every candidate fails.
type OnFail string

const (
	// OnFailError makes Enter return an *ActivationError.
	OnFailError OnFail = "error"

	// OnFailWarn logs the failure; Enter returns nil. The default.
	OnFailWarn OnFail = "warn"

	// OnFailPass ignores the failure silently.
	OnFailPass OnFail = "pass"
)

// Config parameterizes a Mode.
type Config struct {
	// Name of the mode, e.g. KeepRunning or KeepPresenting.
	Name string

	// Methods is an allow-list of method names. Mutually exclusive with
	// Omit.
	Methods []string

	// Omit is a deny-list of method names.
	Omit []string

	// Priority orders the candidates: explicit method names plus at most
	// one Wildcard. Unlisted methods keep their registration order at the
	// wildcard position (implicitly at the end when absent).
	Priority []string

	// OnFail selects the failure action. Empty means OnFailWarn. Ignored
	// when OnFailFunc is set.
	OnFail OnFail

	// OnFailFunc, when set, is called with the aggregate result instead
	// of the OnFail action.
	OnFailFunc func(ActivationResult)

	// DBus overrides the session-bus transport handed to D-Bus based
	// methods. When nil, a lazily connecting default adapter is created
	// and closed together with the mode.
	DBus dbusx.Adapter

	// Registry overrides the process-wide method registry. Tests use
	// this; callers normally leave it nil.
	Registry *method.Registry

	// Platform overrides the detected platform. Zero means detect.
	Platform platform.Type
}

// Mode is a caller-held scope during which the system is kept awake. A Mode
// instance must not be entered from two goroutines at once; after Exit it
// may be entered again, re-running activation.
type Mode struct {
	name       string
	cfg        Config
	registry   *method.Registry
	platform   platform.Type
	dbus       dbusx.Adapter
	ownsDBus   bool

	mu      sync.Mutex
	entered bool
	active  bool
	result  ActivationResult
	winner  *method.Info
	cb      method.Callbacks
	hb      *heartbeat
}

// New validates the configuration and returns an inactive Mode.
func New(cfg Config) (*Mode, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("mode name must not be empty")
	}
	if cfg.Methods != nil && cfg.Omit != nil {
		return nil, ErrConflictingFilters
	}
	if cfg.OnFailFunc == nil {
		switch cfg.OnFail {
		case "", OnFailError, OnFailWarn, OnFailPass:
		default:
			return nil, fmt.Errorf("%w: %q", ErrInvalidOnFail, cfg.OnFail)
		}
	}

	m := &Mode{
		name:     cfg.Name,
		cfg:      cfg,
		registry: cfg.Registry,
		platform: cfg.Platform,
		dbus:     cfg.DBus,
	}
	if m.registry == nil {
		m.registry = method.Default
	}
	if m.platform == platform.Unknown {
		m.platform = platform.Current()
	}
	if m.dbus == nil {
		m.dbus = dbusx.NewSessionAdapter()
		m.ownsDBus = true
	}
	return m, nil
}

// Name returns the mode name.
func (m *Mode) Name() string { return m.name }

// Active reports whether the mode is currently held by an activated method.
func (m *Mode) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// Result returns the aggregate result of the most recent activation.
func (m *Mode) Result() ActivationResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.result
}

// Method returns the winning method of the current activation, or nil.
func (m *Mode) Method() *method.Info {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.winner
}

// candidates builds the ordered candidate list and the records for methods
// dropped by the platform filter.
func (m *Mode) candidates() ([]*method.Method, []method.Result, error) {
	selected, err := selectMethods(m.registry.MethodsFor(m.name), m.cfg.Methods, m.cfg.Omit)
	if err != nil {
		return nil, nil, err
	}

	// The fake-success override joins the selected set before priority is
	// applied: it leads the unlisted methods, but an explicit priority
	// head still outranks it.
	if method.EnvTruthy(method.EnvFakeSuccess) {
		selected = append([]*method.Method{method.FakeSuccess(m.name)}, selected...)
		if method.EnvTruthy(method.EnvForceFailure) {
			log.Printf("mode: both %s and %s are set; forced failure wins",
				method.EnvFakeSuccess, method.EnvForceFailure)
		}
	}

	ordered, err := orderByPriority(selected, m.cfg.Priority)
	if err != nil {
		return nil, nil, err
	}
	supported, unsupported := partitionByPlatform(ordered, m.platform)
	return supported, unsupported, nil
}

// Enter activates the mode. Candidates are tried strictly in order until one
// succeeds; the winner stays engaged until Exit. Configuration problems are
// returned as errors before anything is tried. When all candidates fail, the
// configured on-fail action decides between returning an *ActivationError,
// logging, calling back, or staying silent.
func (m *Mode) Enter() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.entered {
		return ErrAlreadyEntered
	}

	candidates, results, err := m.candidates()
	if err != nil {
		return err
	}

	opts := method.Options{DBus: m.dbus}
	tried := 0
	for _, c := range candidates {
		res, cb := method.Activate(c, opts)
		results = append(results, res)
		tried++
		if !res.Success {
			continue
		}
		info := c.Info()
		m.winner = &info
		m.cb = cb
		if cb.Heartbeat != nil {
			m.hb = startHeartbeat(c.Name, cb.Heartbeat, c.Period())
		}
		break
	}
	for _, c := range candidates[tried:] {
		results = append(results, method.Result{Method: c.Info(), Stage: method.StageNone})
	}

	m.entered = true
	m.result = newActivationResult(m.name, results)
	m.active = m.result.Success

	if m.active {
		log.Printf("mode: %s active via %s", m.name, m.winner.Name)
		return nil
	}

	if m.cfg.OnFailFunc != nil || m.cfg.OnFail != OnFailPass {
		log.Printf("mode: %s", m.result.FailureText(StyleInline))
	}
	switch {
	case m.cfg.OnFailFunc != nil:
		m.cfg.OnFailFunc(m.result)
	case m.cfg.OnFail == OnFailError:
		return &ActivationError{Result: m.result}
	case m.cfg.OnFail == OnFailPass:
	default: // warn; already logged above
	}
	return nil
}

// Exit deactivates the mode. It always runs the full cleanup: the heartbeat
// task is stopped with a bounded wait, the winner's exit callback is invoked
// exactly once, and the runtime state is cleared even when the exit callback
// fails. Calling Exit on a mode that is not entered is a no-op.
func (m *Mode) Exit() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.entered {
		return nil
	}
	m.entered = false

	winner, cb, hb := m.winner, m.cb, m.hb
	m.winner, m.cb, m.hb = nil, method.Callbacks{}, nil
	m.active = false

	if m.ownsDBus {
		defer func() {
			if err := m.dbus.Close(); err != nil {
				log.Printf("mode: closing dbus adapter: %v", err)
			}
		}()
	}

	if winner == nil {
		return nil
	}

	if hb != nil {
		if err := hb.Stop(heartbeatStopTimeout); err != nil {
			log.Printf("mode: %v", err)
		}
	}

	if cb.Exit != nil {
		if err := cb.Exit(); err != nil {
			err = fmt.Errorf("%w: %s: %v", method.ErrExitFailed, winner.Name, err)
			log.Printf("mode: %v", err)
			return err
		}
	}

	log.Printf("mode: %s exited", m.name)
	return nil
}

// Close releases the owned session-bus adapter, if any. Only needed after
// Probe; Exit already closes it.
func (m *Mode) Close() error {
	if m.ownsDBus {
		return m.dbus.Close()
	}
	return nil
}

// Probe tries every candidate instead of stopping at the first success,
// deactivating each successful one right away. It reports which methods
// would work on the current system. The mode itself stays inactive.
func (m *Mode) Probe() (ActivationResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.entered {
		return ActivationResult{}, ErrAlreadyEntered
	}

	candidates, results, err := m.candidates()
	if err != nil {
		return ActivationResult{}, err
	}

	opts := method.Options{DBus: m.dbus}
	for _, c := range candidates {
		res, cb := method.Activate(c, opts)
		if res.Success && cb.Exit != nil {
			if exitErr := cb.Exit(); exitErr != nil {
				log.Printf("mode: probe: %s: %v", c.Name, exitErr)
			}
		}
		results = append(results, res)
	}
	return newActivationResult(m.name, results), nil
}
