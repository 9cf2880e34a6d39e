// Package file loads raw questions from a local JSON file.
package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"sync"
	"time"

	"trivia-duel/internal/domain"
)

// ErrNoQuestions is returned when the file holds nothing matching a request.
var ErrNoQuestions = errors.New("no questions in file match the request")

// Source reads a JSON file holding either an array of question records or an
// Open Trivia DB style {"results": [...]} envelope. The file is read on every
// Fetch so edits are picked up between matches.
type Source struct {
	path   string
	logger *log.Logger

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewSource(path string) *Source {
	return &Source{
		path:   path,
		logger: log.Default(),
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// WithRand replaces the shuffle source, for deterministic tests.
func (s *Source) WithRand(rnd *rand.Rand) *Source {
	s.rnd = rnd
	return s
}

// Fetch returns a shuffled selection of up to req.Amount matching questions.
func (s *Source) Fetch(_ context.Context, req domain.FetchRequest) ([]domain.RawQuestion, error) {
	all, err := Read(s.path)
	if err != nil {
		return nil, err
	}

	var matching []domain.RawQuestion
	for _, q := range all {
		if req.Category != "" && q.Category != req.Category {
			continue
		}
		if req.Difficulty != "" {
			if d, _ := domain.ParseDifficulty(q.Difficulty); d != req.Difficulty {
				continue
			}
		}
		matching = append(matching, q)
	}
	if len(matching) == 0 {
		return nil, ErrNoQuestions
	}

	s.shuffle(matching)
	if req.Amount > 0 && req.Amount < len(matching) {
		matching = matching[:req.Amount]
	} else if req.Amount > len(matching) {
		s.logger.Printf("%s holds %d matching questions, %d requested", s.path, len(matching), req.Amount)
	}
	return matching, nil
}

func (s *Source) shuffle(questions []domain.RawQuestion) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(questions) - 1; i > 0; i-- {
		j := s.rnd.Intn(i + 1)
		questions[i], questions[j] = questions[j], questions[i]
	}
}

// Read parses every question record in the file.
func Read(path string) ([]domain.RawQuestion, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read questions file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a JSON array of records or a {"results": [...]} envelope.
func Parse(data []byte) ([]domain.RawQuestion, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var questions []domain.RawQuestion
		if err := json.Unmarshal(trimmed, &questions); err != nil {
			return nil, fmt.Errorf("decode questions: %w", err)
		}
		return questions, nil
	}
	var envelope struct {
		Results []domain.RawQuestion `json:"results"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	return envelope.Results, nil
}
