package methods

import (
	"github.com/wakego/wakego/internal/method"
	"github.com/wakego/wakego/internal/platform"
)

// newExecutionState builds the Windows method: a thread execution state
// requesting the system (and for the display variant, the display) to stay
// up, combined with ES_CONTINUOUS. The flag is per-thread, so the state pins
// a dedicated OS thread that lives until exit; see executionstate_windows.go.
func newExecutionState(name, modeName string, display bool) *method.Method {
	return &method.Method{
		Name:      name,
		Mode:      modeName,
		Platforms: []platform.Type{platform.Windows},
		New: func(method.Options) method.Callbacks {
			s := newExecutionStateState(display)
			return method.Callbacks{Enter: s.enter, Exit: s.exit}
		},
	}
}
