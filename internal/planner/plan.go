package planner

import (
	"fmt"

	"github.com/choisw0823/callplanner/internal/llmout"
)

// NextEnd is the sentinel an Action uses to terminate the conversation.
const NextEnd = "END"

// Intent is the structured description of who is calling whom and why.
// Produced once per run by intent extraction and immutable afterward.
type Intent struct {
	CallerRole    string `json:"caller_role"`
	RecipientRole string `json:"recipient_role"`
	Purpose       string `json:"purpose"`
	Context       string `json:"context"`
}

// Action is one thing the caller can say or do inside a scenario. Next names
// the scenario the conversation moves to, or NextEnd.
type Action struct {
	Action string `json:"action"`
	Next   string `json:"next"`
}

// Scenario is one branch of the conversational script.
type Scenario struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	ChainOfThought  string   `json:"chain_of_thought"`
	PossibleActions []Action `json:"possible_actions"`
}

// CallPlan is the branching call script. Each refinement pass replaces the
// plan wholesale; only the latest revision is retained.
type CallPlan struct {
	Scenarios []Scenario `json:"scenarios"`
}

// SystemPromptBundle is the terminal artifact of the planning pipeline: an
// operating brief for a downstream conversational agent plus its opening
// line.
type SystemPromptBundle struct {
	SystemPrompt string `json:"system_prompt"`
	FirstMessage string `json:"first_message"`
}

// Validate checks the cross-referential invariants the model is asked to
// honor but the pipeline does not enforce: scenario names must be unique and
// every action's "next" must resolve to a scenario or NextEnd. Callers that
// want strictness run it themselves; a failing plan still flows through the
// pipeline untouched.
func (p CallPlan) Validate() error {
	names := make(map[string]bool, len(p.Scenarios))
	var problems []string

	for i, s := range p.Scenarios {
		if s.Name == "" {
			problems = append(problems, fmt.Sprintf("scenario %d has no name", i))
			continue
		}
		if names[s.Name] {
			problems = append(problems, fmt.Sprintf("duplicate scenario name %q", s.Name))
		}
		names[s.Name] = true
	}

	for _, s := range p.Scenarios {
		for _, a := range s.PossibleActions {
			if a.Next != NextEnd && !names[a.Next] {
				problems = append(problems,
					fmt.Sprintf("scenario %q: action %q points to undefined scenario %q", s.Name, a.Action, a.Next))
			}
		}
	}

	if len(problems) > 0 {
		return &llmout.SchemaError{Subject: "call_plan", Problems: problems}
	}
	return nil
}
