//go:build windows

package methods

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/windows"

	"github.com/wakego/wakego/internal/method"
)

const (
	esSystemRequired  = 0x00000001
	esDisplayRequired = 0x00000002
	esContinuous      = 0x80000000
)

var (
	modkernel32                 = windows.NewLazySystemDLL("kernel32.dll")
	procSetThreadExecutionState = modkernel32.NewProc("SetThreadExecutionState")
)

// executionStateState owns a locked OS thread for the lifetime of one
// activation. SetThreadExecutionState is per-thread, so both the set and the
// clear must run on the same thread, and that thread must outlive the mode.
type executionStateState struct {
	flags uintptr
	calls chan uintptr
	errs  chan error
}

func newExecutionStateState(display bool) *executionStateState {
	flags := uintptr(esContinuous | esSystemRequired)
	if display {
		flags |= esDisplayRequired
	}
	return &executionStateState{flags: flags}
}

func (s *executionStateState) enter() error {
	s.calls = make(chan uintptr)
	s.errs = make(chan error)

	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		for flags := range s.calls {
			s.errs <- setExecutionState(flags)
		}
	}()

	s.calls <- s.flags
	if err := <-s.errs; err != nil {
		close(s.calls)
		return fmt.Errorf("%w: %v", method.ErrEnterFailed, err)
	}
	return nil
}

func (s *executionStateState) exit() error {
	if s.calls == nil {
		return nil
	}
	s.calls <- esContinuous
	err := <-s.errs
	close(s.calls)
	s.calls = nil
	if err != nil {
		return fmt.Errorf("%w: %v", method.ErrExitFailed, err)
	}
	return nil
}

func setExecutionState(flags uintptr) error {
	r, _, err := procSetThreadExecutionState.Call(flags)
	if r == 0 {
		return err
	}
	return nil
}
