// Package summary implements the call-summary pipeline: one completion call
// that turns a transcript into a structured post-call report.
package summary

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/prompts"

	"github.com/choisw0823/callplanner/internal/llm"
	"github.com/choisw0823/callplanner/internal/llmout"
	"github.com/choisw0823/callplanner/internal/observability"
	"github.com/choisw0823/callplanner/internal/templates"
)

// Result values for CallSummary.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// CallSummary is the structured post-call report. The JSON keys are the
// contract the summarization prompt dictates to the model.
type CallSummary struct {
	Recipient         string `json:"recipient"`
	Purpose           string `json:"purpose"`
	Result            string `json:"result"`
	FailureReason     string `json:"failureReason"`
	NextSteps         string `json:"nextSteps"`
	AdditionalDetails string `json:"additionalDetails"`
}

// Summarizer runs the summary pipeline against a completion service. It
// holds no state between calls.
type Summarizer struct {
	Completer llm.Completer
	Library   *templates.Library
	Logger    *observability.Logger
}

func New(completer llm.Completer, library *templates.Library, logger *observability.Logger) *Summarizer {
	if library == nil {
		library = templates.NewLibrary("")
	}
	if logger == nil {
		logger = observability.NewLogger()
	}
	return &Summarizer{
		Completer: completer,
		Library:   library,
		Logger:    logger,
	}
}

// Summarize renders the summarization prompt over the (sanitized)
// transcript, issues one completion call and decodes the report. A decode
// failure aborts with the stage name attached; nothing is retried.
func (s *Summarizer) Summarize(ctx context.Context, transcript string) (CallSummary, error) {
	runID := uuid.NewString()
	cleaned := CleanTranscript(transcript)

	tmpl, err := s.Library.Template(templates.StageCallSummary)
	if err != nil {
		return CallSummary{}, err
	}
	prompt := prompts.NewPromptTemplate(tmpl, []string{"call_log"})
	rendered, err := prompt.Format(map[string]any{"call_log": cleaned})
	if err != nil {
		return CallSummary{}, fmt.Errorf("%s: rendering prompt: %w", templates.StageCallSummary, err)
	}

	s.Logger.LogStage(runID, templates.StageCallSummary)
	raw, err := s.Completer.Complete(ctx, rendered)
	if err != nil {
		return CallSummary{}, err
	}
	s.Logger.LogLLM(runID, templates.StageCallSummary, rendered, raw)

	var cs CallSummary
	if err := llmout.DecodeInto(raw, templates.StageCallSummary, &cs); err != nil {
		s.Logger.LogDecodeError(runID, templates.StageCallSummary, raw)
		return CallSummary{}, err
	}

	s.Logger.LogSummary(runID, cs.Result)
	return cs, nil
}
