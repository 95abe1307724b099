package implementation

import (
	"context"

	"github.com/Adsharma18/AiCareerCoachClean/internal/entity"
	"github.com/Adsharma18/AiCareerCoachClean/internal/mapper"
	"github.com/Adsharma18/AiCareerCoachClean/internal/model"
	"github.com/Adsharma18/AiCareerCoachClean/internal/repository/contract"
	"github.com/Adsharma18/AiCareerCoachClean/internal/repository/specification"

	"gorm.io/gorm"
)

type ChatHistoryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatHistoryMapper
}

func NewChatHistoryRepository(db *gorm.DB) contract.ChatHistoryRepository {
	return &ChatHistoryRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatHistoryMapper(),
	}
}

func (r *ChatHistoryRepositoryImpl) CreateBulk(ctx context.Context, records []*entity.ChatHistory) error {
	if len(records) == 0 {
		return nil
	}

	models := make([]*model.ChatHistory, 0, len(records))
	for i, rec := range records {
		models = append(models, r.mapper.ToModel(rec, i))
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&models).Error
	})
}

func (r *ChatHistoryRepositoryImpl) FindRecentBySessionId(ctx context.Context, sessionId string, limit int) ([]*entity.ChatHistory, error) {
	var models []*model.ChatHistory

	// Newest first so the limit keeps the tail, then flipped back
	query := specification.Apply(r.db.WithContext(ctx),
		specification.BySessionId{SessionId: sessionId},
		specification.OrderBy{Field: "timestamp", Desc: true},
		specification.OrderBy{Field: "sequence", Desc: true},
		specification.Limit{N: limit},
	)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	records := make([]*entity.ChatHistory, len(models))
	for i, m := range models {
		records[len(models)-1-i] = r.mapper.ToEntity(m)
	}
	return records, nil
}

func (r *ChatHistoryRepositoryImpl) DeleteBySessionId(ctx context.Context, sessionId string) error {
	return r.db.WithContext(ctx).Where("session_id = ?", sessionId).Delete(&model.ChatHistory{}).Error
}
