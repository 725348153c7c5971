package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cardassist-be/pkg/store"

	goredis "github.com/redis/go-redis/v9"
)

const contextTTL = 1 * time.Hour

type ContextRepository struct {
	client *goredis.Client
}

var _ store.ContextStore = &ContextRepository{}

func NewContextRepository(redisURL string) (*ContextRepository, error) {
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &ContextRepository{
		client: goredis.NewClient(opts),
	}, nil
}

func key(sessionID string) string {
	return "chat:context:" + sessionID
}

func (r *ContextRepository) Save(ctx context.Context, conversation *store.ConversationContext) error {
	payload, err := json.Marshal(conversation)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key(conversation.SessionID), payload, contextTTL).Err()
}

func (r *ContextRepository) Get(ctx context.Context, sessionID string) (*store.ConversationContext, bool, error) {
	payload, err := r.client.Get(ctx, key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var conversation store.ConversationContext
	if err := json.Unmarshal(payload, &conversation); err != nil {
		return nil, false, err
	}
	return &conversation, true, nil
}

func (r *ContextRepository) Delete(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, key(sessionID)).Err()
}
