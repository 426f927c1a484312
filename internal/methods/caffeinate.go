package methods

import (
	"fmt"
	"io"
	"os/exec"

	"github.com/wakego/wakego/internal/method"
	"github.com/wakego/wakego/internal/platform"
	"github.com/wakego/wakego/internal/util"
)

// caffeinateState owns the helper process for one activation.
//
// The helper runs "caffeinate ... cat" with a stdin pipe: cat blocks on the
// pipe, and if this process dies abruptly the OS closes the pipe, cat exits,
// and caffeinate exits with it. The assertion never outlives its owner.
type caffeinateState struct {
	args  []string
	cmd   *exec.Cmd
	stdin io.WriteCloser
}

func (s *caffeinateState) caniuse() error {
	if !util.HasCommand("caffeinate") {
		return fmt.Errorf("%w: caffeinate not found in PATH", method.ErrRequirementsFailed)
	}
	return nil
}

func (s *caffeinateState) enter() error {
	cmd := exec.Command("caffeinate", s.args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("%w: %v", method.ErrEnterFailed, err)
	}
	if err := cmd.Start(); err != nil {
		stdin.Close()
		return fmt.Errorf("%w: starting caffeinate: %v", method.ErrEnterFailed, err)
	}
	s.cmd = cmd
	s.stdin = stdin
	return nil
}

func (s *caffeinateState) exit() error {
	if s.cmd == nil {
		return nil
	}
	cmd := s.cmd
	s.cmd = nil

	// Closing stdin makes cat (and with it caffeinate) exit; the kill is
	// the backstop for a helper that ignores the pipe.
	s.stdin.Close()
	_ = cmd.Process.Kill()

	err := cmd.Wait()
	if err == nil {
		return nil
	}
	// Our own kill shows up as a signal, not an exit status.
	if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == -1 {
		return nil
	}
	return fmt.Errorf("%w: caffeinate exited: %v", method.ErrExitFailed, err)
}

// newCaffeinate builds the macOS helper-process method. The display variant
// also asserts against display and system sleep.
func newCaffeinate(name, modeName string, display bool) *method.Method {
	args := []string{"-i", "cat"}
	if display {
		args = []string{"-d", "-i", "-s", "cat"}
	}
	return &method.Method{
		Name:      name,
		Mode:      modeName,
		Platforms: []platform.Type{platform.MacOS},
		New: func(method.Options) method.Callbacks {
			s := &caffeinateState{args: args}
			return method.Callbacks{CanIUse: s.caniuse, Enter: s.enter, Exit: s.exit}
		},
	}
}
