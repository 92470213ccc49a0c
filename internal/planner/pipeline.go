// Package planner implements the call-planning pipeline: intent extraction,
// chain-of-thought plan generation, bounded iterative refinement and
// system-prompt synthesis. Every stage renders a prompt from the previous
// stage's output, issues one completion call and decodes the response; the
// first failure aborts the run with no partial result.
package planner

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/prompts"

	"github.com/choisw0823/callplanner/internal/llm"
	"github.com/choisw0823/callplanner/internal/llmout"
	"github.com/choisw0823/callplanner/internal/observability"
	"github.com/choisw0823/callplanner/internal/templates"
)

// Pipeline runs the four planning stages against a single completion
// service. It holds no state between runs.
type Pipeline struct {
	Completer llm.Completer
	Library   *templates.Library
	Logger    *observability.Logger
}

func New(completer llm.Completer, library *templates.Library, logger *observability.Logger) *Pipeline {
	if library == nil {
		library = templates.NewLibrary("")
	}
	if logger == nil {
		logger = observability.NewLogger()
	}
	return &Pipeline{
		Completer: completer,
		Library:   library,
		Logger:    logger,
	}
}

// Result is what a full planning run produces. SystemPrompt is the
// normalized synthesis output; it usually carries a JSON envelope but is
// returned as-is, and Bundle decodes it on demand.
type Result struct {
	RunID        string
	Intent       Intent
	Plan         CallPlan
	SystemPrompt string
}

// Bundle decodes the synthesis output into its JSON envelope.
func (r Result) Bundle() (SystemPromptBundle, error) {
	var b SystemPromptBundle
	err := llmout.DecodeInto(r.SystemPrompt, templates.StageSystemPromptSynthesis, &b)
	return b, err
}

// Run executes the whole pipeline: extract an intent from the user request,
// generate a plan, refine it the configured number of times and synthesize
// the final system prompt. Any stage error aborts immediately.
func (p *Pipeline) Run(ctx context.Context, userInput string, refinementIterations int) (Result, error) {
	res := Result{RunID: uuid.NewString()}

	intent, err := p.ExtractIntent(ctx, res.RunID, userInput)
	if err != nil {
		return Result{}, err
	}
	res.Intent = intent

	plan, err := p.GeneratePlan(ctx, res.RunID, intent)
	if err != nil {
		return Result{}, err
	}

	plan, err = p.Refine(ctx, res.RunID, plan, intent, refinementIterations)
	if err != nil {
		return Result{}, err
	}
	res.Plan = plan
	p.Logger.LogPlan(res.RunID, len(plan.Scenarios))

	brief, err := p.Synthesize(ctx, res.RunID, plan, intent)
	if err != nil {
		return Result{}, err
	}
	res.SystemPrompt = brief

	return res, nil
}

// ExtractIntent turns a free-text user request into a structured Intent.
func (p *Pipeline) ExtractIntent(ctx context.Context, runID, userInput string) (Intent, error) {
	raw, err := p.invoke(ctx, runID, templates.StageIntentExtraction,
		[]string{"user_input"},
		map[string]any{"user_input": userInput})
	if err != nil {
		return Intent{}, err
	}

	var intent Intent
	if err := p.decode(runID, raw, templates.StageIntentExtraction, &intent); err != nil {
		return Intent{}, err
	}
	return intent, nil
}

// GeneratePlan asks the model for a reactive chain-of-thought call plan for
// the given intent.
func (p *Pipeline) GeneratePlan(ctx context.Context, runID string, intent Intent) (CallPlan, error) {
	intentJSON, err := json.Marshal(intent)
	if err != nil {
		return CallPlan{}, fmt.Errorf("encoding intent: %w", err)
	}

	raw, err := p.invoke(ctx, runID, templates.StagePlanGeneration,
		[]string{"intent"},
		map[string]any{"intent": string(intentJSON)})
	if err != nil {
		return CallPlan{}, err
	}

	var plan CallPlan
	if err := p.decode(runID, raw, templates.StagePlanGeneration, &plan); err != nil {
		return CallPlan{}, err
	}
	return plan, nil
}

// Refine re-generates the plan the given number of times, each pass
// conditioned on the previous revision. The decoded output of every pass
// replaces the working plan outright; there is no convergence check and only
// the final pass's plan survives. With iterations <= 0 the input plan is
// returned unchanged and no completion call is made.
func (p *Pipeline) Refine(ctx context.Context, runID string, plan CallPlan, intent Intent, iterations int) (CallPlan, error) {
	intentJSON, err := json.Marshal(intent)
	if err != nil {
		return CallPlan{}, fmt.Errorf("encoding intent: %w", err)
	}

	refined := plan
	for i := 0; i < iterations; i++ {
		planJSON, err := json.MarshalIndent(refined, "", "  ")
		if err != nil {
			return CallPlan{}, fmt.Errorf("encoding plan: %w", err)
		}

		stage := fmt.Sprintf("%s (iteration %d)", templates.StageIterativeRefinement, i+1)
		raw, err := p.invokeStage(ctx, runID, stage, templates.StageIterativeRefinement,
			[]string{"plan_json", "intent"},
			map[string]any{
				"plan_json": string(planJSON),
				"intent":    string(intentJSON),
			})
		if err != nil {
			return CallPlan{}, err
		}

		var next CallPlan
		if err := p.decode(runID, raw, stage, &next); err != nil {
			return CallPlan{}, err
		}
		refined = next
	}
	return refined, nil
}

// Synthesize compresses the final plan into a natural-language operating
// brief plus a first utterance. The normalized model text is returned
// directly — the prompt requests a JSON envelope, but decoding it is the
// caller's choice (see Result.Bundle).
func (p *Pipeline) Synthesize(ctx context.Context, runID string, plan CallPlan, intent Intent) (string, error) {
	planJSON, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding plan: %w", err)
	}
	intentJSON, err := json.Marshal(intent)
	if err != nil {
		return "", fmt.Errorf("encoding intent: %w", err)
	}

	raw, err := p.invoke(ctx, runID, templates.StageSystemPromptSynthesis,
		[]string{"plan_json", "intent"},
		map[string]any{
			"plan_json": string(planJSON),
			"intent":    string(intentJSON),
		})
	if err != nil {
		return "", err
	}

	return llmout.Normalize(raw), nil
}

func (p *Pipeline) invoke(ctx context.Context, runID, stage string, vars []string, values map[string]any) (string, error) {
	return p.invokeStage(ctx, runID, stage, stage, vars, values)
}

// invokeStage renders the template registered under templateStage and issues
// one completion call attributed to stage (which may carry an iteration
// suffix).
func (p *Pipeline) invokeStage(ctx context.Context, runID, stage, templateStage string, vars []string, values map[string]any) (string, error) {
	tmpl, err := p.Library.Template(templateStage)
	if err != nil {
		return "", err
	}

	prompt := prompts.NewPromptTemplate(tmpl, vars)
	rendered, err := prompt.Format(values)
	if err != nil {
		return "", fmt.Errorf("%s: rendering prompt: %w", stage, err)
	}

	p.Logger.LogStage(runID, stage)
	raw, err := p.Completer.Complete(ctx, rendered)
	if err != nil {
		return "", err
	}
	p.Logger.LogLLM(runID, stage, rendered, raw)

	return raw, nil
}

func (p *Pipeline) decode(runID, raw, stage string, v any) error {
	if err := llmout.DecodeInto(raw, stage, v); err != nil {
		p.Logger.LogDecodeError(runID, stage, raw)
		return err
	}
	return nil
}
