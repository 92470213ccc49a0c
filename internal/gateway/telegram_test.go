package gateway

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/choisw0823/callplanner/internal/observability"
	"github.com/choisw0823/callplanner/internal/planner"
	"github.com/choisw0823/callplanner/internal/summary"
)

type fakePlanner struct {
	res planner.Result
	err error
}

func (f *fakePlanner) Run(ctx context.Context, userInput string, iterations int) (planner.Result, error) {
	return f.res, f.err
}

type fakeSummarizer struct {
	cs  summary.CallSummary
	err error
}

func (f *fakeSummarizer) Summarize(ctx context.Context, transcript string) (summary.CallSummary, error) {
	return f.cs, f.err
}

func newTestGateway(p Planner, s Summarizer) *TelegramGateway {
	return &TelegramGateway{
		Planner:    p,
		Summarizer: s,
		Logger:     observability.NewLogger(),
	}
}

func TestHandlePlanRequest(t *testing.T) {
	tg := newTestGateway(&fakePlanner{
		res: planner.Result{
			RunID:        "run-1",
			SystemPrompt: `{"system_prompt": "You call the dentist.", "first_message": "Hello!"}`,
		},
	}, &fakeSummarizer{})

	got := tg.handle(context.Background(), "call my dentist to confirm tomorrow's appointment")
	if !strings.Contains(got, "Hello!") {
		t.Errorf("handle() = %q, want the opening line included", got)
	}
	if !strings.Contains(got, "You call the dentist.") {
		t.Errorf("handle() = %q, want the agent brief included", got)
	}
}

func TestHandlePlanRequestWithoutEnvelope(t *testing.T) {
	tg := newTestGateway(&fakePlanner{
		res: planner.Result{SystemPrompt: "Just call and ask politely."},
	}, &fakeSummarizer{})

	got := tg.handle(context.Background(), "call the garage")
	if got != "Just call and ask politely." {
		t.Errorf("handle() = %q, want the raw brief passed through", got)
	}
}

func TestHandleSummaryCommand(t *testing.T) {
	tg := newTestGateway(&fakePlanner{}, &fakeSummarizer{
		cs: summary.CallSummary{
			Recipient:     "Tony",
			Purpose:       "confirm meeting",
			Result:        summary.ResultFailure,
			FailureReason: "car broken",
		},
	})

	got := tg.handle(context.Background(), "/summary Hello Tony, my car is broken.")
	if !strings.Contains(got, "Tony") || !strings.Contains(got, "car broken") {
		t.Errorf("handle() = %q, want the summary fields included", got)
	}
}

func TestHandleSummaryWithoutTranscript(t *testing.T) {
	tg := newTestGateway(&fakePlanner{}, &fakeSummarizer{})
	got := tg.handle(context.Background(), "/summary")
	if !strings.Contains(got, "transcript") {
		t.Errorf("handle() = %q, want usage hint", got)
	}
}

func TestHandlePlanningFailure(t *testing.T) {
	tg := newTestGateway(&fakePlanner{err: errors.New("decode failed")}, &fakeSummarizer{})
	got := tg.handle(context.Background(), "call someone")
	if !strings.Contains(got, "couldn't plan") {
		t.Errorf("handle() = %q, want failure notice", got)
	}
}
