package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"faq-bot/internal/domain"
)

const defaultRedisPrefix = "faqbot:"

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	TTL      time.Duration
}

// RedisStore keeps conversation state as JSON values with an expiry.
type RedisStore struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
	now    func() time.Time
}

type redisConversation struct {
	AwaitingCloseConfirm bool      `json:"awaitingCloseConfirm"`
	LastActivity         time.Time `json:"lastActivity"`
}

// DialRedis connects to Redis and verifies the connection with a ping.
func DialRedis(ctx context.Context, cfg RedisConfig) (*RedisStore, *redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("repository: redis ping: %w", err)
	}

	store, err := NewRedisStore(client, cfg.Prefix, cfg.TTL)
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	return store, client, nil
}

// NewRedisStore wraps an existing client. Empty prefix and non-positive ttl use defaults.
func NewRedisStore(client redis.Cmdable, prefix string, ttl time.Duration) (*RedisStore, error) {
	if client == nil {
		return nil, errors.New("repository: redis client must not be nil")
	}
	if strings.TrimSpace(prefix) == "" {
		prefix = defaultRedisPrefix
	}
	if ttl <= 0 {
		ttl = defaultStateTTL
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl, now: time.Now}, nil
}

func (s *RedisStore) key(id string) string {
	return s.prefix + "conv:" + id
}

func (s *RedisStore) Get(ctx context.Context, id string) (domain.Conversation, bool, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Conversation{}, false, nil
	}
	if err != nil {
		return domain.Conversation{}, false, fmt.Errorf("repository: redis get: %w", err)
	}
	var rc redisConversation
	if err := json.Unmarshal(raw, &rc); err != nil {
		return domain.Conversation{}, false, fmt.Errorf("repository: redis decode: %w", err)
	}
	return domain.Conversation{
		ID:                   id,
		AwaitingCloseConfirm: rc.AwaitingCloseConfirm,
		LastActivity:         rc.LastActivity,
	}, true, nil
}

func (s *RedisStore) Save(ctx context.Context, conv domain.Conversation) error {
	if strings.TrimSpace(conv.ID) == "" {
		return errors.New("repository: Save: conversation id is required")
	}
	if conv.LastActivity.IsZero() {
		conv.LastActivity = s.now().UTC()
	}
	raw, err := json.Marshal(redisConversation{
		AwaitingCloseConfirm: conv.AwaitingCloseConfirm,
		LastActivity:         conv.LastActivity.UTC(),
	})
	if err != nil {
		return fmt.Errorf("repository: redis encode: %w", err)
	}
	if err := s.client.Set(ctx, s.key(conv.ID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("repository: redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("repository: redis delete: %w", err)
	}
	return nil
}
