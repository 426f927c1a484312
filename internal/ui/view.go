package ui

import (
	"fmt"
	"strings"
	"time"
)

func view(m Model) string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(Current.Title.Render("wakego"))
	b.WriteString("\n\n")

	status := fmt.Sprintf("%s System is being kept awake", m.spinner.View())
	if !m.RealHold {
		status = fmt.Sprintf("%s Fake hold active (WAKEPY_FAKE_SUCCESS)", m.spinner.View())
	}
	b.WriteString(Current.Active.Render(status))
	b.WriteString("\n\n")

	b.WriteString(Current.Label.Render("Mode:"))
	b.WriteString(Current.Value.Render(m.ModeName))
	b.WriteString("\n")
	b.WriteString(Current.Label.Render("Method:"))
	b.WriteString(Current.Value.Render(m.MethodName))
	b.WriteString("\n")

	if m.Duration > 0 {
		b.WriteString(Current.Label.Render("Remaining:"))
		b.WriteString(Current.Value.Render(formatDuration(m.Remaining())))
	} else {
		b.WriteString(Current.Label.Render("Elapsed:"))
		b.WriteString(Current.Value.Render(formatDuration(m.Elapsed())))
	}
	b.WriteString("\n")

	boxed := Current.Box.Render(b.String())
	return boxed + "\n" + Current.Help.Render("q or esc to stop and quit")
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
