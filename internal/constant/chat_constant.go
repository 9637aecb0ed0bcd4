package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
)

// Inbound websocket event names.
const (
	EventGenerateResponse = "generate-response"
	EventGetSessions      = "get-sessions"
	EventGetHistory       = "get-history"
	EventCreateSession    = "create-session"
	EventDeleteSession    = "delete-session"
)

// Outbound websocket event names.
const (
	EventGenerateResponseChunk  = "generate-response-chunk"
	EventGenerateResponseResult = "generate-response-result"
	EventSessionsResult         = "sessions-result"
	EventHistoryResult          = "history-result"
	EventSessionCreated         = "session-created"
	EventSessionDeleted         = "session-deleted"
	EventSessionUpdated         = "session-updated"
	EventError                  = "error"
)

// Error type discriminators carried on the "error" event.
const (
	ErrTypeMissingPrompt      = "missing-prompt"
	ErrTypeInvalidInput       = "invalid-input"
	ErrTypeUpstreamFailure    = "upstream-failure"
	ErrTypeResponseGeneration = "response-generation"
	ErrTypeSessionsRetrieval  = "sessions-retrieval"
	ErrTypeHistoryRetrieval   = "history-retrieval"
	ErrTypeSessionCreation    = "session-creation"
	ErrTypeSessionDeletion    = "session-deletion"
)

const (
	// SessionTitleMaxLen is how much of the first prompt becomes the title.
	SessionTitleMaxLen = 30

	DefaultSessionTitle = "New Chat"

	// MaxDatasetSuggestions caps the enrichment list per turn.
	MaxDatasetSuggestions = 5
)

// NotRelevantNotice is emitted (and persisted as the assistant message) when
// the relevance gate rejects a prompt. Keyword extraction, enrichment and
// generation are all skipped in that case.
const NotRelevantNotice = `<code>// ⚠️ This prompt doesn't seem related to ML model generation. Try something like "build a CNN classifier for images".</code>`
