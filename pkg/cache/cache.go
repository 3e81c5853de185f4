package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	// defaultOperationTimeout is the timeout for individual Redis operations
	defaultOperationTimeout = 2 * time.Second

	// defaultConfigTTL keeps published documents fresh enough that a stale
	// read after publish self-heals within seconds.
	defaultConfigTTL = 30 * time.Second
)

type Cache struct {
	client    *redis.Client
	enabled   bool
	configTTL time.Duration
}

func NewCache(addr string, enable bool, configTTL time.Duration) (*Cache, error) {
	if !enable {
		return &Cache{enabled: false}, nil
	}
	if configTTL <= 0 {
		configTTL = defaultConfigTTL
	}

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     "",
		DB:           0,
		PoolSize:     10,
		MinIdleConns: 5,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Cache{
		client:    client,
		enabled:   true,
		configTTL: configTTL,
	}, nil
}

// operationContext creates a context with timeout for Redis operations
func (c *Cache) operationContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), defaultOperationTimeout)
}

func (c *Cache) Set(key string, value interface{}, expiration time.Duration) error {
	if !c.enabled {
		return nil
	}

	ctx, cancel := c.operationContext()
	defer cancel()

	jsonData, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, jsonData, expiration).Err()
}

func (c *Cache) Get(key string, dest interface{}) error {
	if !c.enabled {
		return fmt.Errorf("cache disabled")
	}

	ctx, cancel := c.operationContext()
	defer cancel()

	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return fmt.Errorf("key not found")
	} else if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

func (c *Cache) Delete(key string) error {
	if !c.enabled {
		return nil
	}

	ctx, cancel := c.operationContext()
	defer cancel()

	return c.client.Del(ctx, key).Err()
}

func (c *Cache) DeletePattern(pattern string) error {
	if !c.enabled {
		return nil
	}

	ctx, cancel := c.operationContext()
	defer cancel()

	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (c *Cache) Exists(key string) (bool, error) {
	if !c.enabled {
		return false, nil
	}

	ctx, cancel := c.operationContext()
	defer cancel()

	val, err := c.client.Exists(ctx, key).Result()
	return val > 0, err
}

func (c *Cache) FlushAll() error {
	if !c.enabled {
		return nil
	}

	ctx, cancel := c.operationContext()
	defer cancel()

	return c.client.FlushAll(ctx).Err()
}

func (c *Cache) Close() error {
	if !c.enabled {
		return nil
	}
	return c.client.Close()
}

// pageConfigKey builds the document key for one page target. The handle is
// part of the key only when present, so the default layout and a
// handle-specific one never collide.
func pageConfigKey(storeID, pageType, pageHandle string) string {
	if pageHandle == "" {
		return fmt.Sprintf("pageconfig:%s:%s", storeID, pageType)
	}
	return fmt.Sprintf("pageconfig:%s:%s-%s", storeID, pageType, pageHandle)
}

func (c *Cache) CachePageConfig(storeID, pageType, pageHandle string, config interface{}) error {
	return c.Set(pageConfigKey(storeID, pageType, pageHandle), config, c.configTTL)
}

func (c *Cache) GetPageConfig(storeID, pageType, pageHandle string, dest interface{}) error {
	return c.Get(pageConfigKey(storeID, pageType, pageHandle), dest)
}

func (c *Cache) InvalidatePage(storeID, pageType, pageHandle string) error {
	return c.Delete(pageConfigKey(storeID, pageType, pageHandle))
}

// InvalidateStore drops every cached document for one store.
func (c *Cache) InvalidateStore(storeID string) error {
	return c.DeletePattern(fmt.Sprintf("pageconfig:%s:*", storeID))
}
