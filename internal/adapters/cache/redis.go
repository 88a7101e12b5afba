package cache

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/sparkkart/storefront/internal/domain"
)

// NewClient connects and pings; callers treat a nil client as cache-off.
func NewClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		DialTimeout:  5 * time.Second,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return client, nil
}

const listKeyPrefix = "products:list:"

type cachedList struct {
	Items []domain.Product `json:"items"`
	Total int64            `json:"total"`
}

// ProductCache is a cache-aside layer for catalog filter results. Errors
// degrade to the database and are only logged.
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewProductCache(client *redis.Client, ttl time.Duration) *ProductCache {
	return &ProductCache{client: client, ttl: ttl}
}

// Key hashes the filter so every parameter combination gets its own entry.
func (c *ProductCache) Key(f domain.ProductFilter) string {
	raw, _ := json.Marshal(f)
	return fmt.Sprintf("%s%x", listKeyPrefix, md5.Sum(raw))
}

func (c *ProductCache) GetList(ctx context.Context, key string) ([]domain.Product, int64, bool) {
	if c == nil || c.client == nil {
		return nil, 0, false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Msg("product cache get")
		}
		return nil, 0, false
	}
	var entry cachedList
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, 0, false
	}
	return entry.Items, entry.Total, true
}

func (c *ProductCache) SetList(ctx context.Context, key string, items []domain.Product, total int64) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(cachedList{Items: items, Total: total})
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("product cache set")
	}
}

// Invalidate drops every cached list; called after any catalog write.
func (c *ProductCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	iter := c.client.Scan(ctx, 0, listKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			log.Warn().Err(err).Msg("product cache del")
		}
	}
	if err := iter.Err(); err != nil {
		log.Warn().Err(err).Msg("product cache scan")
	}
}
