package method

import (
	"os"
	"strings"
)

// Environment variables honored by the activation engine.
const (
	// EnvFakeSuccess prepends the built-in fake-success method to the
	// candidate list when truthy.
	EnvFakeSuccess = "WAKEPY_FAKE_SUCCESS"

	// EnvForceFailure makes every candidate fail at the activation stage
	// when truthy. Takes precedence over EnvFakeSuccess.
	EnvForceFailure = "WAKEPY_FORCE_FAILURE"
)

// Values considered falsy, case-insensitively. Anything else is truthy.
var falsyEnvValues = []string{"", "0", "no", "n", "false", "f"}

// EnvTruthy reports whether the named environment variable is set to a
// truthy value. Unset counts as falsy.
func EnvTruthy(name string) bool {
	value, ok := os.LookupEnv(name)
	if !ok {
		return false
	}
	value = strings.ToLower(value)
	for _, falsy := range falsyEnvValues {
		if value == falsy {
			return false
		}
	}
	return true
}
