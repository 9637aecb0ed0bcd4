package dto

// TurnCompletedMessage is the in-process bus payload published after every
// durably persisted turn.
type TurnCompletedMessage struct {
	UserId        string `json:"userId"`
	SessionId     string `json:"sessionId"`
	PromptChars   int    `json:"promptChars"`
	ResponseChars int    `json:"responseChars"`
	DatasetCount  int    `json:"datasetCount"`
}
