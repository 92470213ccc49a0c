package llmout

import (
	"errors"
	"testing"
)

func TestNormalizeUnwrapsFencedJSON(t *testing.T) {
	raw := "```json\n{\"purpose\": \"renew insurance\"}\n```"
	got := Normalize(raw)
	want := `{"purpose": "renew insurance"}`
	if got != want {
		t.Errorf("Normalize() = %q, want %q", got, want)
	}

	// Unwrapping is idempotent once the fences are gone.
	if again := Normalize(got); again != got {
		t.Errorf("Normalize(Normalize(raw)) = %q, want %q", again, got)
	}
}

func TestNormalizeStripsLeadingJSONToken(t *testing.T) {
	cases := map[string]string{
		"json {\"a\": 1}":       `{"a": 1}`,
		"JSON\n{\"a\": 1}":      `{"a": 1}`,
		"  json  {\"a\": 1}  ":  `{"a": 1}`,
		"```JSON\n{\"a\":1}```": `{"a":1}`,
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeIsIdentityWithoutArtifacts(t *testing.T) {
	if got := Normalize("  hello world  "); got != "hello world" {
		t.Errorf("Normalize() = %q, want %q", got, "hello world")
	}
	if got := Normalize("{\"a\": 1}"); got != `{"a": 1}` {
		t.Errorf("Normalize() = %q, want %q", got, `{"a": 1}`)
	}
}

func TestExtractJSONObjectSpan(t *testing.T) {
	in := `Here is the plan: {"a": {"b": "}"}} hope it helps!`
	want := `{"a": {"b": "}"}}`
	if got := ExtractJSON(in); got != want {
		t.Errorf("ExtractJSON() = %q, want %q", got, want)
	}
}

func TestExtractJSONArraySpan(t *testing.T) {
	in := `Scenarios: [{"name": "greet"}, {"name": "close"}] done.`
	want := `[{"name": "greet"}, {"name": "close"}]`
	if got := ExtractJSON(in); got != want {
		t.Errorf("ExtractJSON() = %q, want %q", got, want)
	}
}

func TestExtractJSONWithoutPayloadReturnsInput(t *testing.T) {
	if got := ExtractJSON("  no payload here  "); got != "no payload here" {
		t.Errorf("ExtractJSON() = %q, want %q", got, "no payload here")
	}
}

func TestDecodeFencedEqualsDecodeUnwrapped(t *testing.T) {
	fenced := "```json\n{\"result\": \"success\"}\n```"
	a, err := Decode(fenced, "call_summary")
	if err != nil {
		t.Fatalf("Decode(fenced) failed: %v", err)
	}
	b, err := Decode(`{"result": "success"}`, "call_summary")
	if err != nil {
		t.Fatalf("Decode(plain) failed: %v", err)
	}
	am, ok := a.(map[string]any)
	if !ok {
		t.Fatalf("Decode(fenced) returned %T, want map", a)
	}
	bm := b.(map[string]any)
	if am["result"] != bm["result"] {
		t.Errorf("fenced decode %v != plain decode %v", am, bm)
	}
}

func TestDecodeFailureCarriesStageAndRawText(t *testing.T) {
	raw := "I'm sorry, I can't produce JSON for that."
	_, err := Decode(raw, "plan_generation")
	if err == nil {
		t.Fatal("Decode() succeeded on invalid JSON")
	}
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("Decode() error = %T, want *DecodeError", err)
	}
	if de.Stage != "plan_generation" {
		t.Errorf("DecodeError.Stage = %q, want %q", de.Stage, "plan_generation")
	}
	if de.Raw != raw {
		t.Errorf("DecodeError.Raw = %q, want original text", de.Raw)
	}
}

func TestDecodeIntoStruct(t *testing.T) {
	var out struct {
		Name string `json:"name"`
	}
	if err := DecodeInto("```json\n{\"name\": \"greeting\"}\n```", "plan_generation", &out); err != nil {
		t.Fatalf("DecodeInto() failed: %v", err)
	}
	if out.Name != "greeting" {
		t.Errorf("out.Name = %q, want %q", out.Name, "greeting")
	}
}
