package favorites

import (
	"context"
	"encoding/json"
	"errors"

	"trailmate/models"
	"trailmate/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

var ErrUnknownCategory = errors.New("unknown favorites category")

// Service keeps one JSON blob per user and category. Storage failures are
// logged and swallowed: reads come back empty and writes are dropped.
type Service struct {
	client *redis.Client
	logger *zap.Logger
}

func NewService(client *redis.Client, logger *zap.Logger) *Service {
	return &Service{client: client, logger: logger}
}

func key(userID string, category models.FavoriteCategory) string {
	return utils.FavoritesPrefix + userID + ":" + string(category)
}

func (s *Service) Get(ctx context.Context, userID string, category models.FavoriteCategory) (models.Favorites, error) {
	out := models.Favorites{Category: category, Items: []json.RawMessage{}}
	if !category.Valid() {
		return out, ErrUnknownCategory
	}

	raw, err := s.client.Get(ctx, key(userID, category)).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("favorites read failed", zap.String("userID", userID), zap.Error(err))
		}
		return out, nil
	}
	if err := json.Unmarshal(raw, &out.Items); err != nil {
		s.logger.Warn("favorites blob unreadable", zap.String("userID", userID), zap.Error(err))
		out.Items = []json.RawMessage{}
	}
	return out, nil
}

func (s *Service) Set(ctx context.Context, userID string, category models.FavoriteCategory, items []json.RawMessage) error {
	if !category.Valid() {
		return ErrUnknownCategory
	}
	if items == nil {
		items = []json.RawMessage{}
	}
	blob, err := json.Marshal(items)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, key(userID, category), blob, 0).Err(); err != nil {
		s.logger.Warn("favorites write failed", zap.String("userID", userID), zap.Error(err))
	}
	return nil
}
