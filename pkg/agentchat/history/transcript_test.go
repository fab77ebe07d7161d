package history

import (
	"testing"
	"time"
)

func TestTranscriptOrderAndCopy(t *testing.T) {
	tr := NewTranscript(0, 0)
	tr.Add(RoleUser, "q1")
	tr.Add(RoleAssistant, "a1")

	turns := tr.Turns()
	if len(turns) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(turns))
	}
	if turns[0].Role != RoleUser || turns[0].Text != "q1" {
		t.Fatalf("unexpected first turn: %+v", turns[0])
	}
	if turns[1].Role != RoleAssistant || turns[1].Text != "a1" {
		t.Fatalf("unexpected second turn: %+v", turns[1])
	}

	// Mutating the returned slice must not affect the transcript.
	turns[0].Text = "mutated"
	if tr.Turns()[0].Text != "q1" {
		t.Fatal("Turns() returned the internal slice")
	}
}

func TestTranscriptLimitEvictsOldestFirst(t *testing.T) {
	tr := NewTranscript(2, 0)
	tr.Add(RoleUser, "one")
	tr.Add(RoleUser, "two")
	tr.Add(RoleUser, "three")

	turns := tr.Turns()
	if len(turns) != 2 {
		t.Fatalf("expected 2 turns after eviction, got %d", len(turns))
	}
	if turns[0].Text != "two" || turns[1].Text != "three" {
		t.Fatalf("wrong turns survived: %+v", turns)
	}
}

func TestTranscriptTimeoutExpiry(t *testing.T) {
	tr := NewTranscript(0, 20*time.Millisecond)
	tr.Add(RoleUser, "old")
	time.Sleep(30 * time.Millisecond)
	tr.Add(RoleUser, "new")

	turns := tr.Turns()
	if len(turns) != 1 || turns[0].Text != "new" {
		t.Fatalf("expected only the fresh turn, got %+v", turns)
	}
}

func TestTranscriptClear(t *testing.T) {
	tr := NewTranscript(0, 0)
	tr.Add(RoleUser, "x")
	tr.Clear()
	if tr.Size() != 0 {
		t.Fatalf("expected empty transcript, got %d turns", tr.Size())
	}
}
