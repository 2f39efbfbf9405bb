// README: Session profile store backed by Redis.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ErrNoSession is returned when no profile is stored under a session key,
// i.e. the caller is signed out.
var ErrNoSession = errors.New("no active session")

// ProfileStore keeps the signed-in profile per session key.
type ProfileStore interface {
	Get(ctx context.Context, key string) (UserProfile, error)
	Set(ctx context.Context, key string, p UserProfile) error
	Clear(ctx context.Context, key string) error
}

// RedisStore is the production ProfileStore. Profiles are stored as JSON and
// survive restarts; a session ends only on explicit sign-out.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

type storedProfile struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Picture     string `json:"picture"`
	AccessToken string `json:"accessToken"`
}

func sessionKey(key string) string {
	return "session:" + key
}

func (s *RedisStore) Get(ctx context.Context, key string) (UserProfile, error) {
	raw, err := s.rdb.Get(ctx, sessionKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return UserProfile{}, ErrNoSession
	}
	if err != nil {
		return UserProfile{}, fmt.Errorf("reading session %s: %w", key, err)
	}
	var sp storedProfile
	if err := json.Unmarshal([]byte(raw), &sp); err != nil {
		return UserProfile{}, fmt.Errorf("decoding session %s: %w", key, err)
	}
	return UserProfile{
		Name:        sp.Name,
		Email:       sp.Email,
		Picture:     sp.Picture,
		AccessToken: sp.AccessToken,
	}, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, p UserProfile) error {
	raw, err := json.Marshal(storedProfile{
		Name:        p.Name,
		Email:       p.Email,
		Picture:     p.Picture,
		AccessToken: p.AccessToken,
	})
	if err != nil {
		return fmt.Errorf("encoding session %s: %w", key, err)
	}
	// No TTL: the session lasts until an explicit sign-out.
	if err := s.rdb.Set(ctx, sessionKey(key), raw, 0).Err(); err != nil {
		return fmt.Errorf("writing session %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, sessionKey(key)).Err(); err != nil {
		return fmt.Errorf("clearing session %s: %w", key, err)
	}
	return nil
}
