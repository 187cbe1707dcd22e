package db

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto"

	"ledgerlens-server/src/models"
)

type cacheKind string

const (
	forecastKind cacheKind = "forecasts"
	snapshotKind cacheKind = "snapshot"
)

// InsightsCache holds derived analytics per user. Every key written is also
// tracked by kind so a batch pass can drop everything it may have made stale.
// Entries also expire after ttl.
type InsightsCache struct {
	cache *ristretto.Cache
	ttl   time.Duration

	mu   sync.RWMutex
	keys map[cacheKind]map[string]struct{}
}

func NewInsightsCache(maxCost int64, ttl time.Duration) (*InsightsCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxCost * 10, // number of keys to track frequency of
		MaxCost:     maxCost,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}
	return &InsightsCache{
		cache: c,
		ttl:   ttl,
		keys: map[cacheKind]map[string]struct{}{
			forecastKind: {},
			snapshotKind: {},
		},
	}, nil
}

func forecastKey(userID string, months int, accountID string) string {
	return fmt.Sprintf("%s:%s:%d:%s", forecastKind, userID, months, accountID)
}

func snapshotKey(userID string) string {
	return fmt.Sprintf("%s:%s", snapshotKind, userID)
}

func (c *InsightsCache) set(kind cacheKind, key string, value interface{}) {
	c.mu.Lock()
	c.keys[kind][key] = struct{}{}
	c.mu.Unlock()
	c.cache.SetWithTTL(key, value, 1, c.ttl)
	c.cache.Wait()
}

func (c *InsightsCache) GetForecasts(userID string, months int, accountID string) ([]models.ForecastResult, bool) {
	v, ok := c.cache.Get(forecastKey(userID, months, accountID))
	if !ok {
		return nil, false
	}
	forecasts, ok := v.([]models.ForecastResult)
	return forecasts, ok
}

func (c *InsightsCache) SetForecasts(userID string, months int, accountID string, forecasts []models.ForecastResult) {
	c.set(forecastKind, forecastKey(userID, months, accountID), forecasts)
}

func (c *InsightsCache) GetSnapshot(userID string) (models.AssistantSnapshot, bool) {
	v, ok := c.cache.Get(snapshotKey(userID))
	if !ok {
		return models.AssistantSnapshot{}, false
	}
	snapshot, ok := v.(models.AssistantSnapshot)
	return snapshot, ok
}

func (c *InsightsCache) SetSnapshot(userID string, snapshot models.AssistantSnapshot) {
	c.set(snapshotKind, snapshotKey(userID), snapshot)
}

// ClearAll drops every tracked entry and returns how many keys were tracked.
func (c *InsightsCache) ClearAll() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	cleared := 0
	for kind, keys := range c.keys {
		for key := range keys {
			c.cache.Del(key)
			cleared++
		}
		c.keys[kind] = make(map[string]struct{})
	}
	return cleared
}

// ClearUser drops only the entries computed for userID.
func (c *InsightsCache) ClearUser(userID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	cleared := 0
	for _, keys := range c.keys {
		for key := range keys {
			if keyOwner(key) != userID {
				continue
			}
			c.cache.Del(key)
			delete(keys, key)
			cleared++
		}
	}
	return cleared
}

// keyOwner extracts the user id, the second segment of every key.
func keyOwner(key string) string {
	parts := strings.SplitN(key, ":", 3)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

func (c *InsightsCache) Close() {
	c.cache.Close()
}
