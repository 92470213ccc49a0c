package planner

import (
	"errors"
	"strings"
	"testing"

	"github.com/choisw0823/callplanner/internal/llmout"
)

func TestCallPlanValidate(t *testing.T) {
	valid := CallPlan{Scenarios: []Scenario{
		{Name: "greeting", PossibleActions: []Action{{Action: "say hi", Next: "close"}}},
		{Name: "close", PossibleActions: []Action{{Action: "say bye", Next: NextEnd}}},
	}}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid plan failed validation: %v", err)
	}
}

func TestCallPlanValidateDanglingNext(t *testing.T) {
	plan := CallPlan{Scenarios: []Scenario{
		{Name: "greeting", PossibleActions: []Action{{Action: "say hi", Next: "missing"}}},
	}}

	err := plan.Validate()
	if err == nil {
		t.Fatal("expected validation failure for dangling next reference")
	}
	var se *llmout.SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("Validate error = %T, want *SchemaError", err)
	}
	if !strings.Contains(err.Error(), "missing") {
		t.Errorf("Validate error %q should name the undefined scenario", err)
	}
}

func TestCallPlanValidateDuplicateNames(t *testing.T) {
	plan := CallPlan{Scenarios: []Scenario{
		{Name: "greeting"},
		{Name: "greeting"},
	}}
	if err := plan.Validate(); err == nil {
		t.Error("expected validation failure for duplicate scenario names")
	}
}
