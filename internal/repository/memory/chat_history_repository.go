package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Adsharma18/AiCareerCoachClean/internal/entity"
	"github.com/Adsharma18/AiCareerCoachClean/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

// ChatHistoryRepository keeps each session's history in go-cache. A session
// expires an hour after its last write.
type ChatHistoryRepository struct {
	mu    sync.Mutex
	cache *cache.Cache
}

var _ contract.ChatHistoryRepository = &ChatHistoryRepository{}

func NewChatHistoryRepository() *ChatHistoryRepository {
	// 1 hour TTL, purge expired sessions every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &ChatHistoryRepository{
		cache: c,
	}
}

func (r *ChatHistoryRepository) CreateBulk(ctx context.Context, records []*entity.ChatHistory) error {
	if len(records) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	bySession := make(map[string][]*entity.ChatHistory)
	for _, rec := range records {
		copied := *rec
		bySession[rec.SessionId] = append(bySession[rec.SessionId], &copied)
	}

	for sessionId, added := range bySession {
		existing := r.load(sessionId)
		merged := make([]*entity.ChatHistory, 0, len(existing)+len(added))
		merged = append(merged, existing...)
		merged = append(merged, added...)
		r.cache.Set(sessionId, merged, cache.DefaultExpiration)
	}
	return nil
}

func (r *ChatHistoryRepository) FindRecentBySessionId(ctx context.Context, sessionId string, limit int) ([]*entity.ChatHistory, error) {
	r.mu.Lock()
	records := r.load(sessionId)
	r.mu.Unlock()

	if limit > 0 && len(records) > limit {
		records = records[len(records)-limit:]
	}

	out := make([]*entity.ChatHistory, len(records))
	for i, rec := range records {
		copied := *rec
		out[i] = &copied
	}
	return out, nil
}

func (r *ChatHistoryRepository) DeleteBySessionId(ctx context.Context, sessionId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache.Delete(sessionId)
	return nil
}

func (r *ChatHistoryRepository) load(sessionId string) []*entity.ChatHistory {
	if x, found := r.cache.Get(sessionId); found {
		return x.([]*entity.ChatHistory)
	}
	return nil
}
