// Package cache holds the Redis-backed adapters: the per-venue occupancy
// cache and the distributed lock used to serialize booking creation.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/venuehub/service-bookings/internal/application"
)

const slotKeyPrefix = "slots:"

// RedisSlotCache caches per-venue occupied slots as a JSON array.
type RedisSlotCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSlotCache creates a slot cache with the given entry TTL.
func NewRedisSlotCache(client *redis.Client, ttl time.Duration) *RedisSlotCache {
	return &RedisSlotCache{client: client, ttl: ttl}
}

func slotKey(venueID uuid.UUID) string {
	return slotKeyPrefix + venueID.String()
}

// GetSlots returns the cached slots for a venue. found is false on a miss.
func (c *RedisSlotCache) GetSlots(ctx context.Context, venueID uuid.UUID) ([]application.Slot, bool, error) {
	data, err := c.client.Get(ctx, slotKey(venueID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read slot cache: %w", err)
	}

	var slots []application.Slot
	if err := json.Unmarshal(data, &slots); err != nil {
		// A corrupt entry behaves like a miss; the next Set overwrites it.
		return nil, false, fmt.Errorf("failed to decode slot cache entry: %w", err)
	}
	return slots, true, nil
}

// SetSlots stores the venue's slots with the configured TTL.
func (c *RedisSlotCache) SetSlots(ctx context.Context, venueID uuid.UUID, slots []application.Slot) error {
	data, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("failed to encode slots: %w", err)
	}
	if err := c.client.Set(ctx, slotKey(venueID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write slot cache: %w", err)
	}
	return nil
}

// Invalidate drops the venue's cached slots. Deleting a missing key is not
// an error.
func (c *RedisSlotCache) Invalidate(ctx context.Context, venueID uuid.UUID) error {
	if err := c.client.Del(ctx, slotKey(venueID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate slot cache: %w", err)
	}
	return nil
}
