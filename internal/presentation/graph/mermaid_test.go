package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/cadence/internal/presentation/graph"
	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/schedule"
	"github.com/aretw0/cadence/pkg/wizard"
)

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name        string
		steps       []domain.Step
		current     int
		contains    []string
		notContains []string
	}{
		{
			name: "First Step Shape",
			steps: []domain.Step{
				{Index: 0, Label: "Start", Nav: wizard.Nav().Next().Build()},
				{Index: 1, Label: "Middle", Nav: wizard.Nav().Back().Build()},
			},
			current: -1,
			contains: []string{
				`step0(("Start"))`,
				`step1["Middle"]`,
				`step0 -->|"Next"| step1`,
				`step1 -.-> step0`,
			},
			notContains: []string{"classDef current"},
		},
		{
			name: "Finish Edge",
			steps: []domain.Step{
				{Index: 0, Label: "One", Nav: wizard.Nav().Next("Go").Build()},
				{Index: 1, Label: "Two", Nav: wizard.Nav().Back().Finish("Save").Build()},
			},
			current: 1,
			contains: []string{
				`step0 -->|"Go"| step1`,
				`step1[/"Two"/]`,
				`step1 ==>|"Save"| finish`,
				`finish((("done")))`,
				`class step1 current;`,
			},
		},
		{
			name: "Label Escaping",
			steps: []domain.Step{
				{Index: 0, Label: `Say "hi"`},
			},
			current:     5,
			contains:    []string{`step0(("Say 'hi'"))`},
			notContains: []string{"class step0 current"},
		},
		{
			name: "No Next Edge From Last Step",
			steps: []domain.Step{
				{Index: 0, Label: "Only", Nav: wizard.Nav().Next().Build()},
			},
			current:     0,
			notContains: []string{"-->"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.steps, tt.current)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("GenerateMermaid() = \n%v\nWant substring: %v", got, want)
				}
			}
			for _, unwanted := range tt.notContains {
				if strings.Contains(got, unwanted) {
					t.Errorf("GenerateMermaid() = \n%v\nUnwanted substring: %v", got, unwanted)
				}
			}
		})
	}
}

func TestGenerateMermaid_ScheduleCreator(t *testing.T) {
	seq, err := wizard.New().AddDefinitions(schedule.Definitions(schedule.DefaultLabels())...).Build()
	if err != nil {
		t.Fatal(err)
	}

	got := graph.GenerateMermaid(seq.All(), seq.Index())

	for _, want := range []string{
		`step0(("New Schedule"))`,
		`step3 ==>|"Save"| finish`,
		`step3 -.-> step2`,
		`class step0 current;`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("GenerateMermaid() = \n%v\nWant substring: %v", got, want)
		}
	}
}
