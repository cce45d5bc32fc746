package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/thinqor/ats-assistant/internal/core/domain"
	"github.com/thinqor/ats-assistant/internal/core/ports"
)

const screeningTTL = time.Hour

// ScreeningCache memoises LLM screening verdicts in Redis.
// Key format: screening:<requirement_id>:<sha256(candidate json)>
type ScreeningCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ ports.ScreeningCache = (*ScreeningCache)(nil)

// NewScreeningCache creates a ScreeningCache wrapping the given Redis client.
func NewScreeningCache(client *redis.Client) *ScreeningCache {
	return &ScreeningCache{client: client, ttl: screeningTTL}
}

// Get returns the stored verdict, or nil when there is none.
func (c *ScreeningCache) Get(ctx context.Context, requirementID string, candidate domain.Candidate) (*domain.ScreeningResult, error) {
	key, err := screeningKey(requirementID, candidate)
	if err != nil {
		return nil, err
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("screening cache get: %w", err)
	}

	var res domain.ScreeningResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("screening cache decode: %w", err)
	}
	return &res, nil
}

// Set stores a verdict (expires after the cache TTL).
func (c *ScreeningCache) Set(ctx context.Context, requirementID string, candidate domain.Candidate, res *domain.ScreeningResult) error {
	key, err := screeningKey(requirementID, candidate)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("screening cache encode: %w", err)
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("screening cache set: %w", err)
	}
	return nil
}

// Ping reports whether Redis is reachable.
func (c *ScreeningCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func screeningKey(requirementID string, candidate domain.Candidate) (string, error) {
	raw, err := json.Marshal(candidate)
	if err != nil {
		return "", fmt.Errorf("screening cache key: %w", err)
	}
	sum := sha256.Sum256(raw)
	return fmt.Sprintf("screening:%s:%s", requirementID, hex.EncodeToString(sum[:])), nil
}
