package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
	"trivia-duel/internal/domain"
)

const selectQuestions = `
SELECT type, difficulty, category, question, correct_answer, incorrect_answers
FROM questions
WHERE ($1 = '' OR category = $1)
  AND ($2 = '' OR difficulty = $2)
ORDER BY random()
LIMIT $3`

// QuestionSource draws random questions from the questions table.
type QuestionSource struct {
	pool *pgxpool.Pool
}

func NewQuestionSource(pool *pgxpool.Pool) *QuestionSource {
	return &QuestionSource{pool: pool}
}

func (s *QuestionSource) Fetch(ctx context.Context, req domain.FetchRequest) ([]domain.RawQuestion, error) {
	rows, err := s.pool.Query(ctx, selectQuestions, req.Category, string(req.Difficulty), req.Amount)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var questions []domain.RawQuestion
	for rows.Next() {
		var (
			q         domain.RawQuestion
			incorrect []byte
		)
		if err := rows.Scan(&q.Type, &q.Difficulty, &q.Category, &q.Text, &q.CorrectAnswer, &incorrect); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		if err := json.Unmarshal(incorrect, &q.IncorrectAnswers); err != nil {
			return nil, fmt.Errorf("unmarshal incorrect answers: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read questions: %w", err)
	}
	return questions, nil
}
