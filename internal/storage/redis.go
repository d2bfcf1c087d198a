package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Totarae/shortlinks/internal/model"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisStore keeps one hash per partition: key <table>:<apiKey>,
// field shortLinkId, value the link as JSON.
type RedisStore struct {
	client redis.UniversalClient
	table  string
	logger *zap.Logger
}

func NewRedisStore(client redis.UniversalClient, table string, logger *zap.Logger) *RedisStore {
	return &RedisStore{client: client, table: table, logger: logger}
}

func (s *RedisStore) partitionKey(apiKey string) string {
	return s.table + ":" + apiKey
}

func (s *RedisStore) Get(ctx context.Context, apiKey, shortLinkID string) (*model.Link, error) {
	val, err := s.client.HGet(ctx, s.partitionKey(apiKey), shortLinkID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis hget: %w", err)
	}

	var link model.Link
	if err := json.Unmarshal(val, &link); err != nil {
		return nil, fmt.Errorf("decode link %s: %w", shortLinkID, err)
	}
	return &link, nil
}

func (s *RedisStore) QueryAll(ctx context.Context, apiKey string) ([]*model.Link, error) {
	vals, err := s.client.HVals(ctx, s.partitionKey(apiKey)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hvals: %w", err)
	}

	links := make([]*model.Link, 0, len(vals))
	for _, val := range vals {
		var link model.Link
		if err := json.Unmarshal([]byte(val), &link); err != nil {
			return nil, fmt.Errorf("decode link: %w", err)
		}
		links = append(links, &link)
	}
	return links, nil
}

func (s *RedisStore) Put(ctx context.Context, link *model.Link) error {
	data, err := json.Marshal(link)
	if err != nil {
		return fmt.Errorf("marshal link: %w", err)
	}
	if err := s.client.HSet(ctx, s.partitionKey(link.APIKey), link.ShortLinkID, data).Err(); err != nil {
		return fmt.Errorf("redis hset: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, apiKey, shortLinkID string) error {
	if err := s.client.HDel(ctx, s.partitionKey(apiKey), shortLinkID).Err(); err != nil {
		return fmt.Errorf("redis hdel: %w", err)
	}
	return nil
}

// Ping проверяет соединение с Redis.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
