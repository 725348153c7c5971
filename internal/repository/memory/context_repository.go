package memory

import (
	"context"
	"time"

	"cardassist-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

type ContextRepository struct {
	cache *cache.Cache
}

var _ store.ContextStore = &ContextRepository{}

func NewContextRepository() *ContextRepository {
	// Sessions idle for an hour are dropped; expired items purged every
	// 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &ContextRepository{
		cache: c,
	}
}

func (r *ContextRepository) Save(ctx context.Context, conversation *store.ConversationContext) error {
	r.cache.Set(conversation.SessionID, conversation, cache.DefaultExpiration)
	return nil
}

func (r *ContextRepository) Get(ctx context.Context, sessionID string) (*store.ConversationContext, bool, error) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.ConversationContext), true, nil
	}
	return nil, false, nil
}

func (r *ContextRepository) Delete(ctx context.Context, sessionID string) error {
	r.cache.Delete(sessionID)
	return nil
}
