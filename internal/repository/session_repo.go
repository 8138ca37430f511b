package repository

import (
	"context"
	"encoding/json"
	"time"

	"iDrone/internal/session"

	"github.com/go-redis/redis/v8"
)

// 会话存储：token -> session JSON，固定过期时间
type SessionRepository interface {
	Set(ctx context.Context, token string, value *session.Session) error
	// key不存在或已过期时返回 nil, nil
	Get(ctx context.Context, token string) (*session.Session, error)
	Delete(ctx context.Context, token string) error
}

type sessionRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSessionRepository(rdb *redis.Client, ttl time.Duration) SessionRepository {
	return &sessionRepository{rdb: rdb, ttl: ttl}
}

// 写入会话：1、序列化session 2、SET token json EX ttl
func (r *sessionRepository) Set(ctx context.Context, token string, value *session.Session) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, token, data, r.ttl).Err()
}

func (r *sessionRepository) Get(ctx context.Context, token string) (*session.Session, error) {
	data, err := r.rdb.Get(ctx, token).Bytes()
	if err == redis.Nil {
		return nil, nil // 不存在或已过期，Redis本身正常
	} else if err != nil {
		return nil, err
	}
	var value session.Session
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, err
	}
	return &value, nil
}

func (r *sessionRepository) Delete(ctx context.Context, token string) error {
	return r.rdb.Del(ctx, token).Err()
}
