package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	domainauth "github.com/timemanager/tm-ui-api/internal/domain/auth"
)

// ChallengeStore tracks the pending login challenge per email. Keys are
// overwritten on Put, so a resend atomically replaces the prior challenge
// token and at most one challenge exists per email at a time.
type ChallengeStore struct {
	client redis.UniversalClient
	prefix string
}

// NewChallengeStore creates a new Redis-based pending challenge store.
func NewChallengeStore(client redis.UniversalClient) *ChallengeStore {
	return &ChallengeStore{
		client: client,
		prefix: "challenge:",
	}
}

func (s *ChallengeStore) Put(ctx context.Context, ch domainauth.PendingChallenge) error {
	if ch.Email == "" {
		return errors.New("challenge email cannot be empty")
	}
	if ch.ChallengeToken == "" {
		return errors.New("challenge token cannot be empty")
	}

	data, err := json.Marshal(ch)
	if err != nil {
		return fmt.Errorf("marshal challenge: %w", err)
	}

	ttl := time.Until(ch.ExpiresAt)
	if ttl <= 0 {
		return errors.New("challenge is expired")
	}

	return s.client.Set(ctx, s.key(ch.Email), data, ttl).Err()
}

func (s *ChallengeStore) Get(ctx context.Context, email string) (domainauth.PendingChallenge, error) {
	if email == "" {
		return domainauth.PendingChallenge{}, ErrNotFound
	}

	data, err := s.client.Get(ctx, s.key(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.PendingChallenge{}, ErrNotFound
		}
		return domainauth.PendingChallenge{}, fmt.Errorf("redis get: %w", err)
	}

	var ch domainauth.PendingChallenge
	if unmarshalErr := json.Unmarshal([]byte(data), &ch); unmarshalErr != nil {
		return domainauth.PendingChallenge{}, fmt.Errorf("unmarshal challenge: %w", unmarshalErr)
	}

	if time.Now().After(ch.ExpiresAt) {
		if deleteErr := s.Delete(ctx, email); deleteErr != nil {
			return domainauth.PendingChallenge{}, fmt.Errorf("cleanup expired challenge: %w", deleteErr)
		}
		return domainauth.PendingChallenge{}, ErrNotFound
	}

	return ch, nil
}

func (s *ChallengeStore) Delete(ctx context.Context, email string) error {
	if email == "" {
		return nil
	}
	return s.client.Del(ctx, s.key(email)).Err()
}

func (s *ChallengeStore) key(email string) string {
	return s.prefix + strings.ToLower(email)
}
