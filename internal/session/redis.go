package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"finance-assistant/internal/apperr"
	"finance-assistant/internal/interfaces"
	"finance-assistant/internal/types"

	"github.com/redis/go-redis/v9"
)

const (
	redisOp   = "session.redis"
	keyPrefix = "finance-assistant:session:"
)

// RedisStore keeps sessions as JSON values with a TTL so they survive restarts
type RedisStore struct {
	client *redis.Client
}

var _ interfaces.SessionStore = (*RedisStore)(nil)

// NewRedisStore connects to redisURL, which may be a redis:// URL or a bare host:port.
func NewRedisStore(ctx context.Context, redisURL string) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, apperr.New(apperr.Network, redisOp, err)
	}
	return &RedisStore{client: client}, nil
}

func (r *RedisStore) Load(ctx context.Context, id string) (types.Session, bool, error) {
	raw, err := r.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return types.Session{}, false, nil
	}
	if err != nil {
		return types.Session{}, false, apperr.New(apperr.Network, redisOp, err)
	}

	var sess types.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return types.Session{}, false, apperr.New(apperr.Malformed, redisOp, err)
	}
	return sess, true, nil
}

func (r *RedisStore) Save(ctx context.Context, sess types.Session, ttl time.Duration) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return apperr.New(apperr.Malformed, redisOp, err)
	}
	if err := r.client.Set(ctx, keyPrefix+sess.ID, raw, ttl).Err(); err != nil {
		return apperr.New(apperr.Network, redisOp, err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		return apperr.New(apperr.Network, redisOp, err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
