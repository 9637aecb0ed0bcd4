package model

import (
	"time"

	"github.com/google/uuid"
)

type TurnUsage struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId        string    `gorm:"type:text;not null;index"`
	SessionId     string    `gorm:"type:text;not null"`
	PromptChars   int       `gorm:"not null"`
	ResponseChars int       `gorm:"not null"`
	DatasetCount  int       `gorm:"not null"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (TurnUsage) TableName() string {
	return "turn_usages"
}
