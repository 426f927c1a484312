package method

import "github.com/wakego/wakego/internal/platform"

// FakeSuccessName is the name of the built-in no-op method. Activation
// through it reports Success but not RealSuccess.
const FakeSuccessName = "WakepyFakeSuccess"

// FakeSuccess returns the built-in fake-success method for a mode. It does
// not inhibit anything. It is never registered or auto-selected; the engine
// injects it only when WAKEPY_FAKE_SUCCESS is truthy.
func FakeSuccess(modeName string) *Method {
	return &Method{
		Name:      FakeSuccessName,
		Mode:      modeName,
		Platforms: []platform.Type{platform.Any},
		New: func(Options) Callbacks {
			return Callbacks{
				Enter:     func() error { return nil },
				Heartbeat: func() error { return nil },
				Exit:      func() error { return nil },
			}
		},
	}
}
