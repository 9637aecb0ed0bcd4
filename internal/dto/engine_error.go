package dto

// EngineError is a typed engine failure. Type carries the protocol error
// discriminator so the transport layer can emit a correctly tagged "error"
// event without inspecting the message text.
type EngineError struct {
	Type    string
	Message string
}

func (e *EngineError) Error() string {
	return e.Message
}

func NewEngineError(errType, message string) *EngineError {
	return &EngineError{Type: errType, Message: message}
}
