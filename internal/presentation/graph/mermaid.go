package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/cadence/pkg/domain"
)

// finishNode is the synthetic terminal every Finish control points at.
const finishNode = "finish"

// GenerateMermaid produces a Mermaid flowchart of a wizard sequence.
// It applies semantic styling:
// - First step: ((Circle))
// - Steps with a Finish control: [/Parallelogram/]
// - Default: [Rectangle]
// Next moves are solid edges, Back moves are dotted. When current is a
// valid index that step is highlighted.
func GenerateMermaid(steps []domain.Step, current int) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	hasFinish := false
	for i, step := range steps {
		id := nodeID(step.Index)

		opener, closer := "[", "]"
		switch {
		case i == 0:
			opener, closer = "((", "))"
		case step.Nav.HasFinish:
			opener, closer = "[/", "/]"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", id, opener, escapeLabel(step.Label), closer))

		if step.Nav.HasNext && i < len(steps)-1 {
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", id, edgeLabel("-->", step.Nav.NextLabel), nodeID(steps[i+1].Index)))
		}
		if step.Nav.HasBack && i > 0 {
			sb.WriteString(fmt.Sprintf("    %s -.-> %s\n", id, nodeID(steps[i-1].Index)))
		}
		if step.Nav.HasFinish {
			hasFinish = true
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", id, edgeLabel("==>", step.Nav.FinishLabel), finishNode))
		}
	}
	if hasFinish {
		sb.WriteString(fmt.Sprintf("    %s(((\"done\")))\n", finishNode))
	}

	if current >= 0 && current < len(steps) {
		sb.WriteString("\n    %% Cursor\n")
		// Force black text for contrast on both light and dark themes.
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString(fmt.Sprintf("    class %s current;\n", nodeID(steps[current].Index)))
	}

	return sb.String()
}

func nodeID(index int) string {
	return fmt.Sprintf("step%d", index)
}

func edgeLabel(arrow, label string) string {
	if label == "" {
		return arrow
	}
	return fmt.Sprintf("%s|\"%s\"|", arrow, escapeLabel(label))
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
