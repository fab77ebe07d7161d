package stream

import (
	"strings"
	"testing"
)

// feedAll drives an aggregator with the given chunk sizes and returns the
// resolved answer, mimicking a full read loop.
func feedAll(t *testing.T, input string, chunkSize int) string {
	t.Helper()
	a := NewAggregator(nil)
	data := []byte(input)
	for start := 0; start < len(data); start += chunkSize {
		end := start + chunkSize
		if end > len(data) {
			end = len(data)
		}
		if a.Feed(data[start:end]) {
			return a.Result()
		}
	}
	return a.Finish()
}

func TestTypedEventDialect(t *testing.T) {
	input := "event: FINAL_RESPONSE\ndata: {\"content\":\"Hi\"}\n\nevent: done\ndata: {}\n\n"
	if got := feedAll(t, input, len(input)); got != "Hi" {
		t.Fatalf("answer = %q, want %q", got, "Hi")
	}
}

func TestJSONEnvelopeDialect(t *testing.T) {
	input := "data: {\"type\":\"message\",\"content\":\"Hi \"}\n\n" +
		"data: {\"type\":\"message\",\"content\":\"there\"}\n\n" +
		"data: {\"type\":\"done\"}\n\n"
	if got := feedAll(t, input, len(input)); got != "Hi there" {
		t.Fatalf("answer = %q, want %q", got, "Hi there")
	}
}

func TestEnvelopeWithoutDataPrefix(t *testing.T) {
	input := "{\"type\":\"message\",\"content\":\"plain\"}\n\n{\"type\":\"done\"}\n\n"
	if got := feedAll(t, input, len(input)); got != "plain" {
		t.Fatalf("answer = %q, want %q", got, "plain")
	}
}

func TestChunkBoundaryInvariance(t *testing.T) {
	// Multi-byte content (é, 🌍) so that small chunk sizes split code points,
	// and a payload long enough that every delimiter gets split too.
	input := "event: FINAL_RESPONSE\ndata: {\"content\":\"Héllo 🌍 \"}\n\n" +
		"data: {\"type\":\"message\",\"content\":\"wörld\"}\n\n" +
		"event: done\ndata: {}\n\n"

	want := feedAll(t, input, len(input))
	if !strings.Contains(want, "Héllo 🌍") || !strings.Contains(want, "wörld") {
		t.Fatalf("unexpected reference answer %q", want)
	}
	for size := 1; size <= 7; size++ {
		if got := feedAll(t, input, size); got != want {
			t.Fatalf("chunk size %d: answer = %q, want %q", size, got, want)
		}
	}
}

func TestErrorFrameShortCircuits(t *testing.T) {
	input := "data: {\"type\":\"message\",\"content\":\"partial\"}\n\n" +
		"data: {\"type\":\"error\",\"content\":\"agent exploded\"}\n\n" +
		"data: {\"type\":\"message\",\"content\":\"never seen\"}\n\n"

	a := NewAggregator(nil)
	if !a.Feed([]byte(input)) {
		t.Fatal("error frame should terminate the exchange")
	}
	got := a.Result()
	if got != "Error: agent exploded" {
		t.Fatalf("answer = %q, want error surrogate", got)
	}
	if strings.Contains(got, "never seen") {
		t.Fatal("frames after the terminal frame leaked into the result")
	}

	// Feeding after a terminal frame is a no-op.
	if !a.Feed([]byte("data: {\"type\":\"message\",\"content\":\"late\"}\n\n")) {
		t.Fatal("terminal aggregator should stay terminal")
	}
	if a.Result() != got {
		t.Fatal("result changed after terminal frame")
	}
}

func TestTypedEventErrorIsTerminal(t *testing.T) {
	input := "event: error\ndata: {\"content\":\"boom\"}\n\n" +
		"event: FINAL_RESPONSE\ndata: {\"content\":\"late\"}\n\n"
	if got := feedAll(t, input, len(input)); got != "Error: boom" {
		t.Fatalf("answer = %q, want %q", got, "Error: boom")
	}
}

func TestDoneIgnoresTrailingData(t *testing.T) {
	input := "event: FINAL_RESPONSE\ndata: {\"content\":\"first\"}\n\n" +
		"event: done\ndata: {}\n\n" +
		"event: FINAL_RESPONSE\ndata: {\"content\":\"late\"}\n\n"
	if got := feedAll(t, input, len(input)); got != "first" {
		t.Fatalf("answer = %q, want %q", got, "first")
	}
}

func TestEmptyAnswerYieldsFallback(t *testing.T) {
	input := "event: done\ndata: {}\n\n"
	if got := feedAll(t, input, len(input)); got != NoResponseMessage {
		t.Fatalf("answer = %q, want fallback %q", got, NoResponseMessage)
	}
}

func TestTruncatedStream(t *testing.T) {
	input := "data: {\"type\":\"message\",\"content\":\"  cut off \"}\n\n"
	if got := feedAll(t, input, len(input)); got != "cut off" {
		t.Fatalf("answer = %q, want trimmed accumulation", got)
	}
}

func TestTruncatedEmptyStream(t *testing.T) {
	a := NewAggregator(nil)
	if got := a.Finish(); got != NoResponseMessage {
		t.Fatalf("answer = %q, want fallback %q", got, NoResponseMessage)
	}
}

func TestIncompleteTrailingFrameIsDiscarded(t *testing.T) {
	input := "data: {\"type\":\"message\",\"content\":\"kept\"}\n\n" +
		"data: {\"type\":\"message\",\"content\":\"no trailing delimiter\"}"
	if got := feedAll(t, input, len(input)); got != "kept" {
		t.Fatalf("answer = %q, want %q", got, "kept")
	}
}

func TestMalformedFramesAreSkipped(t *testing.T) {
	input := "event: FINAL_RESPONSE\n\n" + // single line: malformed typed-event
		"not json at all\n\n" + // unparseable envelope
		"data: {\"type\":\"telemetry\",\"content\":\"x\"}\n\n" + // unknown type
		"\n\n" + // blank frame
		"data: {\"type\":\"message\",\"content\":\"ok\"}\n\n" +
		"data: {\"type\":\"done\"}\n\n"
	if got := feedAll(t, input, len(input)); got != "ok" {
		t.Fatalf("answer = %q, want %q", got, "ok")
	}
}

func TestLegacyQuotedContentFallback(t *testing.T) {
	input := "event: FINAL_RESPONSE\ndata: AgentResponse(content='from repr', id=3)\n\n" +
		"event: FINAL_RESPONSE\ndata: AgentResponse(content=\" and quoted\")\n\n" +
		"event: done\ndata: {}\n\n"
	if got := feedAll(t, input, len(input)); got != "from repr and quoted" {
		t.Fatalf("answer = %q, want %q", got, "from repr and quoted")
	}
}

func TestMixedDialects(t *testing.T) {
	input := "event: FINAL_RESPONSE\ndata: {\"content\":\"a\"}\n\n" +
		"data: {\"type\":\"message\",\"content\":\"b\"}\n\n" +
		"data: {\"type\":\"done\"}\n\n"
	if got := feedAll(t, input, len(input)); got != "ab" {
		t.Fatalf("answer = %q, want %q", got, "ab")
	}
}

func TestFinalResponseWithoutUsableContent(t *testing.T) {
	input := "event: FINAL_RESPONSE\ndata: {\"status\":\"thinking\"}\n\n" +
		"event: FINAL_RESPONSE\ndata: {\"content\":\"real\"}\n\n" +
		"event: done\ndata: {}\n\n"
	if got := feedAll(t, input, len(input)); got != "real" {
		t.Fatalf("answer = %q, want %q", got, "real")
	}
}
