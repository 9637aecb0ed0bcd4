package entity

import (
	"testing"
)

func sampleHistory() *History {
	return &History{
		OwnerId: "user-1",
		Sessions: []Session{
			{SessionId: "a", Title: "first"},
			{SessionId: "b", Title: "second"},
			{SessionId: "c", Title: "third"},
		},
	}
}

func TestFindSession(t *testing.T) {
	h := sampleHistory()

	tests := []struct {
		sessionId string
		want      int
	}{
		{"a", 0},
		{"b", 1},
		{"c", 2},
		{"missing", -1},
		{"", -1},
	}
	for _, tt := range tests {
		if got := h.FindSession(tt.sessionId); got != tt.want {
			t.Errorf("FindSession(%q) = %d, want %d", tt.sessionId, got, tt.want)
		}
	}
}

func TestReplaceSessionIsWholesale(t *testing.T) {
	h := sampleHistory()
	h.Sessions[1].Messages = []Message{{Role: "user", Content: "old"}}

	h.ReplaceSession(Session{SessionId: "b", Title: "renamed"})

	got := h.Sessions[1]
	if got.Title != "renamed" {
		t.Errorf("Title = %q, want %q", got.Title, "renamed")
	}
	if len(got.Messages) != 0 {
		t.Errorf("Messages survived a wholesale replace: %v", got.Messages)
	}
}

func TestReplaceSessionUnknownIdIsNoop(t *testing.T) {
	h := sampleHistory()
	h.ReplaceSession(Session{SessionId: "zzz", Title: "ghost"})
	if len(h.Sessions) != 3 {
		t.Fatalf("session count = %d, want 3", len(h.Sessions))
	}
	for _, s := range h.Sessions {
		if s.Title == "ghost" {
			t.Error("unknown id must not be inserted")
		}
	}
}

func TestRemoveSession(t *testing.T) {
	h := sampleHistory()

	h.RemoveSession("b")
	if len(h.Sessions) != 2 {
		t.Fatalf("session count = %d, want 2", len(h.Sessions))
	}
	if h.Sessions[0].SessionId != "a" || h.Sessions[1].SessionId != "c" {
		t.Errorf("remaining order changed: %v", h.Sessions)
	}

	// Removing an unknown id is tolerated.
	h.RemoveSession("never-existed")
	if len(h.Sessions) != 2 {
		t.Errorf("tolerant remove changed count to %d", len(h.Sessions))
	}
}

func TestLastAssistantContent(t *testing.T) {
	s := Session{Messages: []Message{
		{Role: "user", Content: "q1"},
		{Role: "assistant", Content: "a1"},
		{Role: "user", Content: "q2"},
		{Role: "assistant", Content: "a2"},
		{Role: "user", Content: "q3"},
	}}
	if got := s.LastAssistantContent(); got != "a2" {
		t.Errorf("LastAssistantContent = %q, want %q", got, "a2")
	}

	empty := Session{}
	if got := empty.LastAssistantContent(); got != "" {
		t.Errorf("LastAssistantContent on empty session = %q, want empty", got)
	}
}
