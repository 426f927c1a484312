// Package platform identifies the host platform and matches it against the
// platform sets declared by inhibit methods.
package platform

import (
	"runtime"
	"strings"
)

// Type is a platform tag. Concrete tags name a single operating system;
// composite tags (BSD, UnixLikeFOSS, Any) expand to sets of concrete tags.
type Type int

const (
	Unknown Type = iota
	Windows
	MacOS
	Linux
	FreeBSD

	// Composite tags, only valid in a method's supported-platforms set.
	BSD
	UnixLikeFOSS
	Any
)

// String returns the tag name as used in failure reasons and listings.
func (t Type) String() string {
	switch t {
	case Windows:
		return "WINDOWS"
	case MacOS:
		return "MACOS"
	case Linux:
		return "LINUX"
	case FreeBSD:
		return "FREEBSD"
	case BSD:
		return "BSD"
	case UnixLikeFOSS:
		return "UNIX_LIKE_FOSS"
	case Any:
		return "ANY"
	}
	return "UNKNOWN"
}

// Current returns the tag for the running operating system.
func Current() Type {
	return fromGOOS(runtime.GOOS)
}

func fromGOOS(goos string) Type {
	switch goos {
	case "windows":
		return Windows
	case "darwin":
		return MacOS
	case "linux":
		return Linux
	case "freebsd":
		return FreeBSD
	}
	return Unknown
}

// expand returns the concrete tags a declared tag covers.
func expand(t Type) []Type {
	switch t {
	case BSD:
		return []Type{FreeBSD}
	case UnixLikeFOSS:
		return []Type{Linux, FreeBSD}
	case Any:
		return []Type{Windows, MacOS, Linux, FreeBSD}
	}
	return []Type{t}
}

// Supports reports whether the concrete platform tag actual is covered by the
// declared set, expanding composite tags.
func Supports(actual Type, declared []Type) bool {
	for _, d := range declared {
		for _, c := range expand(d) {
			if c == actual {
				return true
			}
		}
	}
	return false
}

// Join formats a declared platform set for failure reasons.
func Join(declared []Type) string {
	names := make([]string, 0, len(declared))
	for _, d := range declared {
		names = append(names, d.String())
	}
	return strings.Join(names, ", ")
}
