package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/cadence/pkg/domain"
	"github.com/charmbracelet/lipgloss"
)

var (
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#60a5fa"))
	currentStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2dd4bf"))
	pendingStyle = lipgloss.NewStyle().Faint(true)
	hintStyle    = lipgloss.NewStyle().Faint(true).Italic(true)
)

// StepIndicator renders a progress line such as
// "✓ New Schedule › ● Review Sessions › ○ Add Participants".
func StepIndicator(steps []domain.Step, current int) string {
	parts := make([]string, 0, len(steps))
	for i, s := range steps {
		switch {
		case i < current:
			parts = append(parts, doneStyle.Render("✓ "+s.Label))
		case i == current:
			parts = append(parts, currentStyle.Render("● "+s.Label))
		default:
			parts = append(parts, pendingStyle.Render("○ "+s.Label))
		}
	}
	return strings.Join(parts, " › ")
}

// ControlsHint lists the keys a step accepts, derived from its navigation.
func ControlsHint(step domain.Step) string {
	var keys []string
	if step.Nav.HasNext {
		keys = append(keys, fmt.Sprintf("[n] %s", step.Nav.NextLabel))
	}
	if step.Nav.HasBack {
		keys = append(keys, "[b] Back")
	}
	if step.Nav.HasFinish {
		keys = append(keys, fmt.Sprintf("[f] %s", step.Nav.FinishLabel))
	}
	keys = append(keys, "[r] Restart", "[q] Quit")
	return hintStyle.Render(strings.Join(keys, "  "))
}
