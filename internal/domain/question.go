package domain

import (
	"sort"
	"strings"
)

// QuestionType discriminates the two question variants.
type QuestionType string

const (
	TypeMultiple QuestionType = "multiple"
	TypeBoolean  QuestionType = "boolean"
)

// Difficulty is optional; the zero value means unspecified.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty accepts easy, medium or hard in any case. Anything else is
// reported as unspecified.
func ParseDifficulty(raw string) (Difficulty, bool) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(raw))); d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, true
	}
	return "", false
}

// Points is the score a correct answer to a question of this difficulty is worth.
func (d Difficulty) Points() int {
	switch d {
	case DifficultyMedium:
		return 2
	case DifficultyHard:
		return 3
	default:
		return 1
	}
}

// Default display labels for boolean questions.
const (
	TrueLabel  = "True"
	FalseLabel = "False"
)

// Choice is one labelled option of a multiple-choice question.
type Choice struct {
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

// Question is a single trivia question. Type selects which variant fields are
// meaningful: Choices for TypeMultiple, Correct/TrueLabel/FalseLabel for TypeBoolean.
type Question struct {
	ID         string       `json:"id"`
	Text       string       `json:"text"`
	Category   *Category    `json:"category"`
	Points     int          `json:"points"`
	Difficulty Difficulty   `json:"difficulty,omitempty"`
	Type       QuestionType `json:"type"`

	Choices map[int]Choice `json:"choices,omitempty"`

	Correct    bool   `json:"correct,omitempty"`
	TrueLabel  string `json:"trueLabel,omitempty"`
	FalseLabel string `json:"falseLabel,omitempty"`

	AssignedTo string `json:"assignedTo,omitempty"`
	AnsweredBy string `json:"answeredBy,omitempty"`
}

// Answer is a player's response. Label is read for multiple-choice questions,
// Value for boolean ones.
type Answer struct {
	Type  QuestionType `json:"type"`
	Label int          `json:"label,omitempty"`
	Value bool         `json:"value,omitempty"`
}

func ChoiceAnswer(label int) Answer {
	return Answer{Type: TypeMultiple, Label: label}
}

func BoolAnswer(value bool) Answer {
	return Answer{Type: TypeBoolean, Value: value}
}

// CheckAnswer reports whether the answer is correct. Unknown labels and answers
// of the wrong variant are incorrect.
func (q *Question) CheckAnswer(a Answer) bool {
	if a.Type != q.Type {
		return false
	}
	switch q.Type {
	case TypeMultiple:
		choice, ok := q.Choices[a.Label]
		return ok && choice.Correct
	case TypeBoolean:
		return a.Value == q.Correct
	}
	return false
}

// Labels returns the multiple-choice labels in ascending order.
func (q *Question) Labels() []int {
	labels := make([]int, 0, len(q.Choices))
	for label := range q.Choices {
		labels = append(labels, label)
	}
	sort.Ints(labels)
	return labels
}

// CorrectText returns the text of the correct answer for display.
func (q *Question) CorrectText() string {
	if q.Type == TypeBoolean {
		if q.Correct {
			return q.trueLabel()
		}
		return q.falseLabel()
	}
	for _, choice := range q.Choices {
		if choice.Correct {
			return choice.Text
		}
	}
	return ""
}

func (q *Question) trueLabel() string {
	if q.TrueLabel == "" {
		return TrueLabel
	}
	return q.TrueLabel
}

func (q *Question) falseLabel() string {
	if q.FalseLabel == "" {
		return FalseLabel
	}
	return q.FalseLabel
}

// BoolLabels returns the display labels for the true and false choices.
func (q *Question) BoolLabels() (string, string) {
	return q.trueLabel(), q.falseLabel()
}

// AssignTo gives the question to a player. A question is held by at most one
// player at a time.
func (q *Question) AssignTo(playerID string) error {
	if q.AssignedTo != "" {
		return ErrAlreadyAssigned
	}
	if q.AnsweredBy != "" {
		return ErrAlreadyAnswered
	}
	q.AssignedTo = playerID
	return nil
}

// Release clears the assignment of an unanswered question.
func (q *Question) Release() error {
	if q.AssignedTo == "" {
		return ErrNotAssigned
	}
	if q.AnsweredBy != "" {
		return ErrAlreadyAnswered
	}
	q.AssignedTo = ""
	return nil
}

// MarkAnswered records the player who answered. It may only be set once, and
// only by the player the question is assigned to.
func (q *Question) MarkAnswered(playerID string) error {
	if q.AssignedTo == "" {
		return ErrNotAssigned
	}
	if q.AnsweredBy != "" {
		return ErrAlreadyAnswered
	}
	if q.AssignedTo != playerID {
		return ErrWrongPlayer
	}
	q.AnsweredBy = playerID
	return nil
}

// Clone returns a deep copy. The category is shared because categories are immutable.
func (q *Question) Clone() *Question {
	c := *q
	if q.Choices != nil {
		c.Choices = make(map[int]Choice, len(q.Choices))
		for label, choice := range q.Choices {
			c.Choices[label] = choice
		}
	}
	return &c
}
