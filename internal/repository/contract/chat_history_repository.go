package contract

import (
	"context"

	"github.com/Adsharma18/AiCareerCoachClean/internal/entity"
)

type ChatHistoryRepository interface {
	// CreateBulk stores records in slice order
	CreateBulk(ctx context.Context, records []*entity.ChatHistory) error
	// FindRecentBySessionId returns at most limit records, oldest first.
	// A limit <= 0 returns the whole session.
	FindRecentBySessionId(ctx context.Context, sessionId string, limit int) ([]*entity.ChatHistory, error)
	DeleteBySessionId(ctx context.Context, sessionId string) error
}
