package method

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wakego/wakego/internal/platform"
)

func callbacksMethod(name string, cb Callbacks) *Method {
	return &Method{
		Name:      name,
		Mode:      ModeKeepRunning,
		Platforms: []platform.Type{platform.Any},
		New:       func(Options) Callbacks { return cb },
	}
}

func TestActivateSuccess(t *testing.T) {
	entered := false
	m := callbacksMethod("m", Callbacks{
		Enter: func() error { entered = true; return nil },
		Exit:  func() error { return nil },
	})

	res, cb := Activate(m, Options{})
	assert.True(t, res.Success)
	assert.Equal(t, StageActivation, res.Stage)
	assert.Empty(t, res.FailureReason)
	assert.True(t, entered)
	assert.NotNil(t, cb.Exit)
}

func TestActivateForcedFailure(t *testing.T) {
	t.Setenv(EnvForceFailure, "1")

	entered := false
	m := callbacksMethod("m", Callbacks{
		Enter: func() error { entered = true; return nil },
	})

	res, cb := Activate(m, Options{})
	assert.False(t, res.Success)
	assert.Equal(t, StageActivation, res.Stage)
	assert.Equal(t, "forced failure", res.FailureReason)
	assert.False(t, entered, "enter must not run under forced failure")
	assert.Nil(t, cb.Enter)
}

func TestActivateRequirementsFail(t *testing.T) {
	m := callbacksMethod("m", Callbacks{
		CanIUse: func() error { return errors.New("service missing") },
		Enter:   func() error { t.Fatal("enter must not run"); return nil },
	})

	res, _ := Activate(m, Options{})
	assert.False(t, res.Success)
	assert.Equal(t, StageRequirements, res.Stage)
	assert.Equal(t, "service missing", res.FailureReason)
}

func TestActivateEnterFail(t *testing.T) {
	m := callbacksMethod("m", Callbacks{
		Enter: func() error { return errors.New("nope") },
	})

	res, _ := Activate(m, Options{})
	assert.False(t, res.Success)
	assert.Equal(t, StageActivation, res.Stage)
	assert.Equal(t, "nope", res.FailureReason)
}

func TestActivateHeartbeatOnly(t *testing.T) {
	ticks := 0
	m := callbacksMethod("m", Callbacks{
		Heartbeat: func() error { ticks++; return nil },
	})

	res, cb := Activate(m, Options{})
	assert.True(t, res.Success)
	assert.Equal(t, 1, ticks, "initial heartbeat tick runs synchronously")
	assert.NotNil(t, cb.Heartbeat)
}

func TestActivateHeartbeatOnlyFailure(t *testing.T) {
	m := callbacksMethod("m", Callbacks{
		Heartbeat: func() error { return errors.New("dead on arrival") },
	})

	res, _ := Activate(m, Options{})
	assert.False(t, res.Success)
	assert.Equal(t, StageActivation, res.Stage)
}

func TestActivateInitialHeartbeatFailureRunsExit(t *testing.T) {
	exited := false
	m := callbacksMethod("m", Callbacks{
		Enter:     func() error { return nil },
		Heartbeat: func() error { return errors.New("tick failed") },
		Exit:      func() error { exited = true; return nil },
	})

	res, cb := Activate(m, Options{})
	assert.False(t, res.Success)
	assert.Equal(t, StageActivation, res.Stage)
	assert.True(t, exited, "exit must undo a successful enter")
	assert.Nil(t, cb.Exit)
}

func TestResultStatus(t *testing.T) {
	info := Info{Name: "m"}
	tests := []struct {
		name string
		res  Result
		want string
	}{
		{"success", Result{Method: info, Stage: StageActivation, Success: true}, "SUCCESS"},
		{"fail", Result{Method: info, Stage: StageActivation}, "FAIL"},
		{"requirements", Result{Method: info, Stage: StageRequirements}, "FAIL"},
		{"unsupported", Result{Method: info, Stage: StagePlatformSupport}, "UNSUPPORTED"},
		{"unused", Result{Method: info, Stage: StageNone}, "UNUSED"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.res.Status())
		})
	}
}

func TestFakeSuccess(t *testing.T) {
	fake := FakeSuccess(ModeKeepPresenting)
	require.Equal(t, FakeSuccessName, fake.Name)
	assert.Equal(t, ModeKeepPresenting, fake.Mode)

	res, cb := Activate(fake, Options{})
	assert.True(t, res.Success)
	require.NotNil(t, cb.Exit)
	assert.NoError(t, cb.Exit())
}
