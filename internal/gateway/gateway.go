package gateway

import (
	"context"

	"github.com/choisw0823/callplanner/internal/planner"
	"github.com/choisw0823/callplanner/internal/summary"
)

// Messenger defines the interface for communication gateways (Telegram, Discord, etc.)
type Messenger interface {
	// Start begins the message listening loop
	Start() error
	// Send sends a message to a specific chat
	Send(chatID string, text string) error
	// Stop gracefully shuts down the gateway
	Stop() error
}

// Planner runs the call-planning pipeline for a user request.
type Planner interface {
	Run(ctx context.Context, userInput string, refinementIterations int) (planner.Result, error)
}

// Summarizer runs the call-summary pipeline for a transcript.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (summary.CallSummary, error)
}
