package memory

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"trivia-duel/internal/domain"
)

// QuestionSource fetches raw question records from a backing store (API, file, database).
type QuestionSource interface {
	Fetch(ctx context.Context, req domain.FetchRequest) ([]domain.RawQuestion, error)
}

// QuestionCache caches question batches per request with TTL to avoid
// repeated calls to a slow or rate-limited source.
type QuestionCache struct {
	source QuestionSource
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedBatch
}

type cachedBatch struct {
	questions []domain.RawQuestion
	expiresAt time.Time
}

func NewQuestionCache(source QuestionSource, ttl time.Duration) *QuestionCache {
	return &QuestionCache{
		source: source,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedBatch),
	}
}

func (c *QuestionCache) Fetch(ctx context.Context, req domain.FetchRequest) ([]domain.RawQuestion, error) {
	key := requestKey(req)
	now := c.clock()

	c.mu.RLock()
	if entry, ok := c.cache[key]; ok && entry.expiresAt.After(now) {
		c.mu.RUnlock()
		return copyBatch(entry.questions), nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if entry, ok := c.cache[key]; ok && entry.expiresAt.After(now) {
			c.mu.RUnlock()
			return entry.questions, nil
		}
		c.mu.RUnlock()

		questions, err := c.source.Fetch(ctx, req)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.cache[key] = cachedBatch{
			questions: questions,
			expiresAt: now.Add(c.ttlWithJitter()),
		}
		c.mu.Unlock()
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return copyBatch(result.([]domain.RawQuestion)), nil
}

func (c *QuestionCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}

func requestKey(req domain.FetchRequest) string {
	return fmt.Sprintf("%d|%s|%s", req.Amount, req.Category, req.Difficulty)
}

func copyBatch(questions []domain.RawQuestion) []domain.RawQuestion {
	out := make([]domain.RawQuestion, len(questions))
	for i, q := range questions {
		q.IncorrectAnswers = append([]string(nil), q.IncorrectAnswers...)
		out[i] = q
	}
	return out
}

// StaticSource serves questions from memory (useful for tests and the offline deck).
type StaticSource struct {
	questions []domain.RawQuestion
}

func NewStaticSource(questions []domain.RawQuestion) *StaticSource {
	return &StaticSource{questions: questions}
}

// Fetch returns up to req.Amount questions matching the category and difficulty
// filters, in stored order.
func (s *StaticSource) Fetch(_ context.Context, req domain.FetchRequest) ([]domain.RawQuestion, error) {
	var out []domain.RawQuestion
	for _, q := range s.questions {
		if req.Category != "" && q.Category != req.Category {
			continue
		}
		if req.Difficulty != "" {
			if d, _ := domain.ParseDifficulty(q.Difficulty); d != req.Difficulty {
				continue
			}
		}
		out = append(out, q)
		if req.Amount > 0 && len(out) == req.Amount {
			break
		}
	}
	if len(out) == 0 {
		return nil, ErrNoQuestions
	}
	return copyBatch(out), nil
}
