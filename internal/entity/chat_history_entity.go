package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatHistory struct {
	Id        uuid.UUID
	SessionId string
	Role      string
	Content   string
	Timestamp time.Time
}
