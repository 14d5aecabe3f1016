package ui

import (
	"fmt"
	"strings"

	"github.com/nodelift/nodelift/internal/provisioning"
	"github.com/nodelift/nodelift/internal/util/prerequisites"
)

// RenderDoctor formats a prerequisite check report. With color disabled the
// lipgloss styles are skipped and the plain markers remain.
func RenderDoctor(results *prerequisites.CheckResults, color bool) string {
	var sb strings.Builder

	sb.WriteString(styled(titleStyle, "Provisioning prerequisites", color))
	sb.WriteString("\n\n")

	for _, r := range results.Results {
		switch {
		case r.Found:
			sb.WriteString(styled(okStyle, checkMark, color))
			sb.WriteString(fmt.Sprintf(" %-12s %s", r.Tool.Name, styled(dimStyle, r.Path, color)))
		case r.Tool.Required:
			sb.WriteString(styled(failStyle, crossMark, color))
			sb.WriteString(fmt.Sprintf(" %-12s missing: %s", r.Tool.Name, r.Tool.Description))
		default:
			sb.WriteString(styled(warnStyle, warnMark, color))
			sb.WriteString(fmt.Sprintf(" %-12s not found (optional): %s", r.Tool.Name, r.Tool.Description))
		}
		sb.WriteString("\n")
	}

	if results.HasErrors() {
		sb.WriteString("\n")
		sb.WriteString(styled(failStyle, "Required tools are missing; provisioning steps will fail.", color))
		sb.WriteString("\n")
	}

	return sb.String()
}

// RenderSteps formats the expanded step sequence without executing it.
func RenderSteps(steps []provisioning.Step, color bool) string {
	var sb strings.Builder

	sb.WriteString(styled(titleStyle, fmt.Sprintf("Provisioning plan (%d steps)", len(steps)), color))
	sb.WriteString("\n\n")

	for i, step := range steps {
		cmd, args := step.Command()
		argv := cmd
		if len(args) > 0 {
			argv += " " + strings.Join(args, " ")
		}
		sb.WriteString(fmt.Sprintf("%2d. %s\n", i+1, step.Name()))
		sb.WriteString(fmt.Sprintf("    %s\n", styled(dimStyle, argv, color)))
	}

	return sb.String()
}

func styled(style interface{ Render(...string) string }, s string, color bool) string {
	if !color {
		return s
	}
	return style.Render(s)
}
