package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"trivia-duel/internal/domain"
)

// OpenDB opens a bun handle over the pgdriver connector.
func OpenDB(dsn string) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(sqldb, pgdialect.New())
}

type questionRow struct {
	bun.BaseModel `bun:"table:questions"`

	ID               int64    `bun:"id,pk,autoincrement"`
	Type             string   `bun:"type,notnull"`
	Difficulty       string   `bun:"difficulty,notnull"`
	Category         string   `bun:"category,notnull"`
	Question         string   `bun:"question,notnull"`
	CorrectAnswer    string   `bun:"correct_answer,notnull"`
	IncorrectAnswers []string `bun:"incorrect_answers,type:jsonb,notnull"`
}

// Importer writes raw question records into the questions table.
type Importer struct {
	db *bun.DB
}

func NewImporter(db *bun.DB) *Importer {
	return &Importer{db: db}
}

// Import inserts the records, ignoring ones already stored for the same
// question text and category. Records of an unsupported type are dropped.
// It returns the number of new rows.
func (i *Importer) Import(ctx context.Context, questions []domain.RawQuestion) (int64, error) {
	rows := make([]questionRow, 0, len(questions))
	for _, q := range questions {
		typ := domain.QuestionType(strings.ToLower(strings.TrimSpace(q.Type)))
		if typ != domain.TypeMultiple && typ != domain.TypeBoolean {
			continue
		}
		difficulty, _ := domain.ParseDifficulty(q.Difficulty)
		incorrect := q.IncorrectAnswers
		if incorrect == nil {
			incorrect = []string{}
		}
		rows = append(rows, questionRow{
			Type:             string(typ),
			Difficulty:       string(difficulty),
			Category:         q.Category,
			Question:         q.Text,
			CorrectAnswer:    q.CorrectAnswer,
			IncorrectAnswers: incorrect,
		})
	}
	if len(rows) == 0 {
		return 0, nil
	}

	res, err := i.db.NewInsert().
		Model(&rows).
		On("CONFLICT (question, category) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("insert questions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}
