package mode

import (
	"fmt"

	"github.com/wakego/wakego/internal/method"
	"github.com/wakego/wakego/internal/platform"
)

// Wildcard stands for "all remaining selected methods, in registration
// order" inside a methods-priority list. At most one is allowed.
const Wildcard = "*"

// selectMethods applies the allow-list (use) or deny-list (omit) to the
// registered methods of a mode, preserving registration order. At most one
// of the filters may be set. Unknown names in either filter are
// configuration errors.
func selectMethods(all []*method.Method, use, omit []string) ([]*method.Method, error) {
	if use != nil && omit != nil {
		return nil, ErrConflictingFilters
	}

	known := make(map[string]bool, len(all))
	for _, m := range all {
		known[m.Name] = true
	}
	for _, name := range append(append([]string{}, use...), omit...) {
		if !known[name] {
			return nil, fmt.Errorf("%w: %q", ErrUnknownMethodName, name)
		}
	}

	switch {
	case use != nil:
		wanted := make(map[string]bool, len(use))
		for _, name := range use {
			wanted[name] = true
		}
		selected := make([]*method.Method, 0, len(use))
		for _, m := range all {
			if wanted[m.Name] {
				selected = append(selected, m)
			}
		}
		return selected, nil

	case omit != nil:
		dropped := make(map[string]bool, len(omit))
		for _, name := range omit {
			dropped[name] = true
		}
		selected := make([]*method.Method, 0, len(all))
		for _, m := range all {
			if !dropped[m.Name] {
				selected = append(selected, m)
			}
		}
		return selected, nil
	}

	return append([]*method.Method{}, all...), nil
}

// orderByPriority reorders the selected methods according to the priority
// list: names before the wildcard form the head, names after it the tail,
// and the wildcard expands to all remaining methods in registration order.
// A missing wildcard is implicit at the end.
func orderByPriority(selected []*method.Method, priority []string) ([]*method.Method, error) {
	if len(priority) == 0 {
		return selected, nil
	}

	byName := make(map[string]*method.Method, len(selected))
	for _, m := range selected {
		byName[m.Name] = m
	}

	seen := make(map[string]bool, len(priority))
	wildcards := 0
	for _, name := range priority {
		if seen[name] {
			if name == Wildcard {
				return nil, fmt.Errorf("%w: more than one %q", ErrInvalidMethodsPriority, Wildcard)
			}
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePriority, name)
		}
		seen[name] = true
		if name == Wildcard {
			wildcards++
			continue
		}
		if byName[name] == nil {
			return nil, fmt.Errorf("%w: %q in methods priority", ErrUnknownMethodName, name)
		}
	}

	withWildcard := priority
	if wildcards == 0 {
		withWildcard = append(append([]string{}, priority...), Wildcard)
	}

	listed := make(map[string]bool, len(priority))
	for _, name := range priority {
		listed[name] = true
	}

	ordered := make([]*method.Method, 0, len(selected))
	for _, name := range withWildcard {
		if name != Wildcard {
			ordered = append(ordered, byName[name])
			continue
		}
		for _, m := range selected {
			if !listed[m.Name] {
				ordered = append(ordered, m)
			}
		}
	}
	return ordered, nil
}

// partitionByPlatform drops methods not supporting the current platform,
// producing a failure record for each dropped method.
func partitionByPlatform(candidates []*method.Method, current platform.Type) ([]*method.Method, []method.Result) {
	supported := make([]*method.Method, 0, len(candidates))
	var unsupported []method.Result
	for _, m := range candidates {
		if platform.Supports(current, m.Platforms) {
			supported = append(supported, m)
			continue
		}
		unsupported = append(unsupported, method.Result{
			Method:        m.Info(),
			Stage:         method.StagePlatformSupport,
			FailureReason: fmt.Sprintf("unsupported on %s", current),
		})
	}
	return supported, unsupported
}
