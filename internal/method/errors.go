package method

import "errors"

// Configuration errors, surfaced before any side effect.
var (
	ErrDuplicateName = errors.New("method name already registered")
	ErrInvalidMethod = errors.New("method defines neither enter nor heartbeat")
)

// Lifecycle errors. Methods wrap their failures with these sentinels so the
// engine can tell the stages apart with errors.Is.
var (
	ErrRequirementsFailed = errors.New("requirements not met")
	ErrEnterFailed        = errors.New("entering mode failed")
	ErrHeartbeatFailed    = errors.New("heartbeat failed")
	ErrExitFailed         = errors.New("exiting mode failed")
)
