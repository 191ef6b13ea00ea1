package ai

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"trailmate/models"
	"trailmate/utils"

	"github.com/go-redis/redis/v8"
)

// RedisContextStore keeps each transcript as a Redis list of JSON messages.
type RedisContextStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisContextStore(client *redis.Client, ttl time.Duration) *RedisContextStore {
	return &RedisContextStore{client: client, ttl: ttl}
}

func (s *RedisContextStore) Open(ctx context.Context, sessionID, userID string) error {
	return s.client.Set(ctx, utils.SessionOwnerPrefix+sessionID, userID, s.ttl).Err()
}

func (s *RedisContextStore) Owner(ctx context.Context, sessionID string) (string, error) {
	owner, err := s.client.Get(ctx, utils.SessionOwnerPrefix+sessionID).Result()
	if err == redis.Nil {
		return "", ErrSessionNotFound
	}
	return owner, err
}

func (s *RedisContextStore) Append(ctx context.Context, sessionID string, msg models.ConversationMessage) error {
	b, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	key := utils.TranscriptPrefix + sessionID
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, b)
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
		pipe.Expire(ctx, utils.SessionOwnerPrefix+sessionID, s.ttl)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *RedisContextStore) List(ctx context.Context, sessionID string) ([]models.ConversationMessage, error) {
	raw, err := s.client.LRange(ctx, utils.TranscriptPrefix+sessionID, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]models.ConversationMessage, 0, len(raw))
	for _, r := range raw {
		var m models.ConversationMessage
		if err := json.Unmarshal([]byte(r), &m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (s *RedisContextStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, utils.TranscriptPrefix+sessionID, utils.SessionOwnerPrefix+sessionID).Err()
}

// NewTranscriptStore picks the transcript mirror matching the storage backend:
// the "memory" backend keeps transcripts in process, anything else uses Redis.
func NewTranscriptStore(backend string, client *redis.Client, ttl time.Duration) TranscriptStore {
	if backend == "memory" || client == nil {
		return NewMemoryContextStore()
	}
	return NewRedisContextStore(client, ttl)
}

// MemoryContextStore is the in-process TranscriptStore.
type MemoryContextStore struct {
	mu       sync.RWMutex
	owners   map[string]string
	messages map[string][]models.ConversationMessage
}

func NewMemoryContextStore() *MemoryContextStore {
	return &MemoryContextStore{
		owners:   make(map[string]string),
		messages: make(map[string][]models.ConversationMessage),
	}
}

func (s *MemoryContextStore) Open(_ context.Context, sessionID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.owners[sessionID] = userID
	return nil
}

func (s *MemoryContextStore) Owner(_ context.Context, sessionID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	owner, ok := s.owners[sessionID]
	if !ok {
		return "", ErrSessionNotFound
	}
	return owner, nil
}

func (s *MemoryContextStore) Append(_ context.Context, sessionID string, msg models.ConversationMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[sessionID] = append(s.messages[sessionID], msg)
	return nil
}

func (s *MemoryContextStore) List(_ context.Context, sessionID string) ([]models.ConversationMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.ConversationMessage(nil), s.messages[sessionID]...), nil
}

func (s *MemoryContextStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.owners, sessionID)
	delete(s.messages, sessionID)
	return nil
}
