package entity

import (
	"time"

	"github.com/google/uuid"
)

// TurnUsage is one accounting row per completed turn, written asynchronously
// by the consumer service.
type TurnUsage struct {
	Id            uuid.UUID
	UserId        string
	SessionId     string
	PromptChars   int
	ResponseChars int
	DatasetCount  int
	CreatedAt     time.Time
}
