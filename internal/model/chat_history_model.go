package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatHistory struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionId string    `gorm:"type:varchar(100);not null;index"`
	Role      string    `gorm:"type:varchar(20);not null"`
	Content   string    `gorm:"type:text;not null"`
	Timestamp time.Time `gorm:"not null;index"`
	// Sequence keeps the user message ahead of its reply when timestamps tie
	Sequence int `gorm:"not null;default:0"`
}

func (ChatHistory) TableName() string {
	return "chat_history"
}
