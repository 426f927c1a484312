package mode

import (
	"fmt"
	"strings"

	"github.com/wakego/wakego/internal/method"
)

// FailureTextStyle selects the layout of FailureText.
type FailureTextStyle string

const (
	// StyleBlock is a multi-line report, one method per paragraph.
	StyleBlock FailureTextStyle = "block"

	// StyleInline is a single-line summary, useful for logging.
	StyleInline FailureTextStyle = "inline"
)

// ActivationResult aggregates the per-method attempt records of one
// activation, in order: platform-unsupported methods first, then attempts in
// the order they were made, then untried methods.
type ActivationResult struct {
	// ModeName of the mode this result belongs to.
	ModeName string

	// Results holds one record per method involved.
	Results []method.Result

	// Method identifies the winner. Nil if activation failed.
	Method *method.Info

	// Success is true when one method activated. May be faked through
	// WAKEPY_FAKE_SUCCESS; see RealSuccess.
	Success bool

	// RealSuccess is Success, except false when the winner is the built-in
	// fake-success method.
	RealSuccess bool
}

// newActivationResult derives the bookkeeping fields from the records.
func newActivationResult(modeName string, results []method.Result) ActivationResult {
	r := ActivationResult{ModeName: modeName, Results: results}
	for i := range results {
		if !results[i].Success {
			continue
		}
		r.Success = true
		r.Method = &results[i].Method
		r.RealSuccess = results[i].Method.Name != method.FakeSuccessName
		break
	}
	return r
}

// FailureText formats the failed activation for humans. Returns "" when the
// activation succeeded. The exact wording is not part of the API.
func (r ActivationResult) FailureText(style FailureTextStyle) string {
	if r.Success {
		return ""
	}

	msg := fmt.Sprintf("Could not activate Mode %q!", r.ModeName)
	if len(r.Results) == 0 {
		return msg + " Did not try any methods!"
	}

	if style == StyleInline {
		items := make([]string, 0, len(r.Results))
		for i, res := range r.Results {
			items = append(items, fmt.Sprintf("(#%d, %s, %s, %s)",
				i+1, res.Method.Name, res.Stage, res.FailureReason))
		}
		return fmt.Sprintf("%s Tried Methods (in the order of attempt): %s. "+
			"The format of each item is (index, method_name, stage, failure_reason).",
			msg, strings.Join(items, ", "))
	}

	var b strings.Builder
	b.WriteString(msg)
	b.WriteString("\n\nTried Methods (in the order of attempt):\n")
	for i, res := range r.Results {
		fmt.Fprintf(&b, "\n%3d. %s\n     %s", i+1, res.Method.Name, res.Status())
		if !res.Success && !res.Unused() && res.FailureReason != "" {
			fmt.Fprintf(&b, ": %s", res.FailureReason)
		}
	}
	return b.String()
}

// MethodsText formats the records as an aligned listing: index, method name
// and status (SUCCESS, FAIL, UNSUPPORTED, or "*" for untried). With verbose,
// failure reasons are appended.
func (r ActivationResult) MethodsText(verbose bool) string {
	const nameWidth = 36

	lines := make([]string, 0, len(r.Results))
	for i, res := range r.Results {
		status := res.Status()
		if res.Unused() {
			status = "*"
		}

		name := res.Method.Name
		if len(name) > nameWidth {
			name = name[:nameWidth-3] + "..."
		}

		line := fmt.Sprintf("%3d. %-*s %s", i+1, nameWidth, name, status)
		if verbose && !res.Success && !res.Unused() && res.FailureReason != "" {
			line += "\n     " + res.FailureReason
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
