package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/jemalhussen/template-market-bot/types"
)

// RedisSessionStore keeps the transient conversation state: the buyer's
// in-progress purchase and the admin-registration password prompt. Entries
// expire so an abandoned conversation never pins state forever.
type RedisSessionStore struct {
	client *RedisClient
	ttl    time.Duration
}

func NewRedisSessionStore(redisClient *RedisClient, ttlHours int) *RedisSessionStore {
	ttl := time.Duration(ttlHours) * time.Hour
	if ttlHours <= 0 {
		ttl = 24 * time.Hour
	}

	return &RedisSessionStore{
		client: redisClient,
		ttl:    ttl,
	}
}

func (s *RedisSessionStore) GetPurchase(userID int64) (*types.PurchaseSession, error) {
	key := s.client.generateKey("purchase", fmt.Sprintf("%d", userID))
	var session types.PurchaseSession
	if err := s.client.Get(key, &session); err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (s *RedisSessionStore) SetPurchase(userID int64, session *types.PurchaseSession) error {
	key := s.client.generateKey("purchase", fmt.Sprintf("%d", userID))
	return s.client.Set(key, session, s.ttl)
}

func (s *RedisSessionStore) ClearPurchase(userID int64) error {
	key := s.client.generateKey("purchase", fmt.Sprintf("%d", userID))
	return s.client.Del(key)
}

func (s *RedisSessionStore) AwaitingAdminPassword(userID int64) (bool, error) {
	key := s.client.generateKey("admin_reg", fmt.Sprintf("%d", userID))
	return s.client.Exists(key)
}

func (s *RedisSessionStore) SetAwaitingAdminPassword(userID int64, awaiting bool) error {
	key := s.client.generateKey("admin_reg", fmt.Sprintf("%d", userID))
	if !awaiting {
		return s.client.Del(key)
	}
	return s.client.Set(key, true, s.ttl)
}
