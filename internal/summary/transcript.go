package summary

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Transcripts arrive from the call provider's dashboard or webhook and may
// carry HTML markup. The strict policy strips every tag; entities are
// unescaped afterward so the model sees plain text.
var transcriptPolicy = bluemonday.StrictPolicy()

// CleanTranscript strips HTML markup and surrounding whitespace from a raw
// transcript.
func CleanTranscript(transcript string) string {
	cleaned := transcriptPolicy.Sanitize(transcript)
	cleaned = html.UnescapeString(cleaned)
	return strings.TrimSpace(cleaned)
}
