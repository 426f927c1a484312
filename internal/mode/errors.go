package mode

import "errors"

// Configuration errors. All of them surface before any activation side
// effect.
var (
	ErrUnknownMethodName      = errors.New("unknown method name")
	ErrDuplicatePriority      = errors.New("method listed twice in methods priority")
	ErrInvalidMethodsPriority = errors.New("invalid methods priority")
	ErrConflictingFilters     = errors.New("methods and omit are mutually exclusive")
	ErrInvalidOnFail          = errors.New("on-fail must be error, warn, pass or a callback")
	ErrAlreadyEntered         = errors.New("mode is already entered")
)

// ActivationError is returned from Enter when every candidate failed and the
// mode's on-fail action is OnFailError. It carries the aggregate result.
type ActivationError struct {
	Result ActivationResult
}

func (e *ActivationError) Error() string {
	return e.Result.FailureText(StyleBlock)
}
