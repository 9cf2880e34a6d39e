package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
	"trivia-duel/internal/domain"
)

// QuestionSource fetches raw question records from a backing store (API, file, database).
type QuestionSource interface {
	Fetch(ctx context.Context, req domain.FetchRequest) ([]domain.RawQuestion, error)
}

// QuestionCache caches question batches in Redis and falls back to the source on a miss.
// A batch is stored as a list of JSON records: RPUSH trivia:questions:{amount}:{category}:{difficulty} {record}...
type QuestionCache struct {
	client *redis.Client
	source QuestionSource
	ttl    time.Duration
	sf     singleflight.Group
	logger *log.Logger

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewQuestionCache(client *redis.Client, source QuestionSource, ttl time.Duration) *QuestionCache {
	return &QuestionCache{
		client: client,
		source: source,
		ttl:    ttl,
		logger: log.Default(),
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *QuestionCache) Fetch(ctx context.Context, req domain.FetchRequest) ([]domain.RawQuestion, error) {
	key := c.key(req)
	if questions, ok := c.cached(ctx, key); ok {
		return questions, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if questions, ok := c.cached(ctx, key); ok {
			return questions, nil
		}

		questions, err := c.source.Fetch(ctx, req)
		if err != nil {
			return nil, err
		}

		pipe := c.client.TxPipeline()
		pipe.Del(ctx, key)
		for _, q := range questions {
			data, err := json.Marshal(q)
			if err != nil {
				return nil, fmt.Errorf("marshal question: %w", err)
			}
			pipe.RPush(ctx, key, data)
		}
		if ttl := c.ttlWithJitter(); ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		if _, err := pipe.Exec(ctx); err != nil {
			// The batch is still usable; only the cache write failed.
			c.logger.Printf("cache question batch %s: %v", key, err)
		}
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.RawQuestion), nil
}

func (c *QuestionCache) cached(ctx context.Context, key string) ([]domain.RawQuestion, bool) {
	records, err := c.client.LRange(ctx, key, 0, -1).Result()
	if err != nil || len(records) == 0 {
		return nil, false
	}
	questions := make([]domain.RawQuestion, 0, len(records))
	for _, record := range records {
		var q domain.RawQuestion
		if err := json.Unmarshal([]byte(record), &q); err != nil {
			c.logger.Printf("discarding corrupt cache entry %s: %v", key, err)
			return nil, false
		}
		questions = append(questions, q)
	}
	return questions, true
}

func (c *QuestionCache) key(req domain.FetchRequest) string {
	category := strings.ReplaceAll(req.Category, ":", "_")
	return fmt.Sprintf("trivia:questions:%d:%s:%s", req.Amount, category, req.Difficulty)
}

func (c *QuestionCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
