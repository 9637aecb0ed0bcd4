package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// History is stored document-style: one row per user, with the nested
// sessions array serialized into a JSONB column. Saves replace the whole
// document, matching the find/create/save contract of the store.
type History struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OwnerId   string         `gorm:"type:text;not null;uniqueIndex"`
	Sessions  datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

func (History) TableName() string {
	return "histories"
}
