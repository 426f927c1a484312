//go:build !windows

package methods

import (
	"fmt"

	"github.com/wakego/wakego/internal/method"
)

// On non-Windows builds the descriptor is still registered (so listings and
// the platform filter see it), but entering is a stub. The platform filter
// drops the method before this can run.
type executionStateState struct{}

func newExecutionStateState(bool) *executionStateState {
	return &executionStateState{}
}

func (s *executionStateState) enter() error {
	return fmt.Errorf("%w: SetThreadExecutionState is only available on windows", method.ErrEnterFailed)
}

func (s *executionStateState) exit() error { return nil }
