package entity

import (
	"time"

	"github.com/google/uuid"
)

// DatasetDescriptor is one ranked dataset suggestion from the enricher. It is
// never mutated after creation, only replaced wholesale on the next turn.
type DatasetDescriptor struct {
	Title         string `json:"title"`
	Url           string `json:"url"`
	Subtitle      string `json:"subtitle"`
	CreatorName   string `json:"creatorName"`
	DownloadCount int    `json:"downloadCount"`
}

// Message is one immutable entry in a session transcript.
type Message struct {
	Role         string              `json:"role"`
	Content      string              `json:"content"`
	Datasets     []DatasetDescriptor `json:"datasets,omitempty"`
	TrainingData string              `json:"trainingData,omitempty"`
	Timestamp    time.Time           `json:"timestamp"`
}

// Session is a titled conversation thread. Messages are append-only and
// chronological; Datasets holds the latest enrichment result only.
type Session struct {
	SessionId  string              `json:"sessionId"`
	Title      string              `json:"title"`
	Messages   []Message           `json:"messages"`
	Datasets   []DatasetDescriptor `json:"datasets"`
	LastActive time.Time           `json:"lastActive"`
}

// History is the per-user document holding all sessions in creation order.
type History struct {
	Id        uuid.UUID
	OwnerId   string
	Sessions  []Session
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// FindSession returns the index of the session with the given id, or -1.
func (h *History) FindSession(sessionId string) int {
	for i := range h.Sessions {
		if h.Sessions[i].SessionId == sessionId {
			return i
		}
	}
	return -1
}

// ReplaceSession swaps the stored session with the given one, addressed by
// id. The replacement is wholesale, never a field-by-field merge.
func (h *History) ReplaceSession(session Session) {
	if i := h.FindSession(session.SessionId); i >= 0 {
		h.Sessions[i] = session
	}
}

// RemoveSession filters the session with the given id out of the history.
// Removing an unknown id is a no-op.
func (h *History) RemoveSession(sessionId string) {
	filtered := h.Sessions[:0]
	for _, s := range h.Sessions {
		if s.SessionId != sessionId {
			filtered = append(filtered, s)
		}
	}
	h.Sessions = filtered
}

// LastAssistantContent returns the content of the most recent assistant
// message in the session, or "" when none exists.
func (s *Session) LastAssistantContent() string {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].Role == "assistant" {
			return s.Messages[i].Content
		}
	}
	return ""
}
