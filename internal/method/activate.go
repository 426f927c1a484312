package method

import "log"

// Stage names the activation stage a method reached.
type Stage string

const (
	// StageNone marks a method that was not tried at all.
	StageNone Stage = "NONE"

	// StagePlatformSupport marks a method dropped by the platform filter.
	StagePlatformSupport Stage = "PLATFORM_SUPPORT"

	// StageRequirements marks a method whose requirements check rejected.
	StageRequirements Stage = "REQUIREMENTS"

	// StageActivation marks a tried method; combined with Success it tells
	// whether entering the mode worked.
	StageActivation Stage = "ACTIVATION"
)

// Result records one method's activation attempt.
type Result struct {
	Method        Info
	Stage         Stage
	Success       bool
	FailureReason string
}

// Unused reports whether the method was never tried.
func (r Result) Unused() bool {
	return !r.Success && r.Stage == StageNone
}

// Status returns SUCCESS, FAIL, UNUSED or UNSUPPORTED for this result.
func (r Result) Status() string {
	switch {
	case r.Success:
		return "SUCCESS"
	case r.Stage == StageNone:
		return "UNUSED"
	case r.Stage == StagePlatformSupport:
		return "UNSUPPORTED"
	default:
		return "FAIL"
	}
}

// Activate runs the staged activation of a single method: the forced-failure
// override, the requirements check, Enter, and the synchronous first
// heartbeat tick. On success the returned callbacks are live and must
// eventually be deactivated; on failure the zero Callbacks value is returned
// and nothing is left to undo.
func Activate(m *Method, opts Options) (Result, Callbacks) {
	res := Result{Method: m.Info()}

	if EnvTruthy(EnvForceFailure) {
		res.Stage = StageActivation
		res.FailureReason = "forced failure"
		return res, Callbacks{}
	}

	cb := m.New(opts)

	if cb.CanIUse != nil {
		if err := cb.CanIUse(); err != nil {
			res.Stage = StageRequirements
			res.FailureReason = err.Error()
			return res, Callbacks{}
		}
	}

	entered := false
	if cb.Enter != nil {
		if err := cb.Enter(); err != nil {
			res.Stage = StageActivation
			res.FailureReason = err.Error()
			return res, Callbacks{}
		}
		entered = true
	}

	if cb.Heartbeat != nil {
		// The first tick runs synchronously: it is the activation probe
		// for heartbeat-only methods. Later ticks are scheduled by the
		// mode, one heartbeat period apart.
		if err := cb.Heartbeat(); err != nil {
			res.Stage = StageActivation
			res.FailureReason = err.Error()
			if entered && cb.Exit != nil {
				if exitErr := cb.Exit(); exitErr != nil {
					log.Printf("method: %s: exit after failed initial heartbeat: %v", m.Name, exitErr)
				}
			}
			return res, Callbacks{}
		}
	}

	res.Stage = StageActivation
	res.Success = true
	return res, cb
}
