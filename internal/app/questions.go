package app

import (
	"errors"
	"fmt"
	"html"
	"math/rand"
	"strings"

	"trivia-duel/internal/domain"
)

var (
	errMissingText     = errors.New("missing question text")
	errMissingCategory = errors.New("missing category")
	errMissingCorrect  = errors.New("missing correct answer")
	errMissingOptions  = errors.New("missing incorrect answers")
	errDuplicateOption = errors.New("correct answer also listed as incorrect")
	errUnknownType     = errors.New("unknown question type")
	errBadBoolean      = errors.New("boolean answer is neither true nor false")
)

// buildQuestion converts a raw record into a question, decoding HTML entities.
// The returned error explains why a record was rejected.
func buildQuestion(raw domain.RawQuestion, categories *domain.CategoryRegistry, rnd *rand.Rand) (*domain.Question, error) {
	text := decode(raw.Text)
	if text == "" {
		return nil, errMissingText
	}
	categoryName := decode(raw.Category)
	if categoryName == "" {
		return nil, errMissingCategory
	}
	correct := decode(raw.CorrectAnswer)
	if correct == "" {
		return nil, errMissingCorrect
	}
	difficulty, _ := domain.ParseDifficulty(raw.Difficulty)

	q := &domain.Question{
		Text:       text,
		Points:     difficulty.Points(),
		Difficulty: difficulty,
	}

	switch domain.QuestionType(strings.ToLower(strings.TrimSpace(raw.Type))) {
	case domain.TypeMultiple:
		choices, err := buildChoices(correct, raw.IncorrectAnswers, rnd)
		if err != nil {
			return nil, err
		}
		q.Type = domain.TypeMultiple
		q.Choices = choices
	case domain.TypeBoolean:
		value, err := parseBool(correct)
		if err != nil {
			return nil, err
		}
		q.Type = domain.TypeBoolean
		q.Correct = value
		q.TrueLabel = domain.TrueLabel
		q.FalseLabel = domain.FalseLabel
	default:
		return nil, fmt.Errorf("%w %q", errUnknownType, raw.Type)
	}

	// Only accepted records register their category.
	q.ID = domain.NewIdentity().ID
	q.Category = categories.Ensure(categoryName)
	return q, nil
}

// buildChoices places the correct answer among the incorrect ones and labels
// them with a uniform random permutation of 1..N.
func buildChoices(correct string, incorrect []string, rnd *rand.Rand) (map[int]domain.Choice, error) {
	options := make([]domain.Choice, 0, len(incorrect)+1)
	for _, raw := range incorrect {
		text := decode(raw)
		if text == "" {
			continue
		}
		if text == correct {
			return nil, errDuplicateOption
		}
		options = append(options, domain.Choice{Text: text})
	}
	if len(options) == 0 {
		return nil, errMissingOptions
	}
	options = append(options, domain.Choice{Text: correct, Correct: true})

	labels := permutation(len(options), rnd)
	choices := make(map[int]domain.Choice, len(options))
	for i, option := range options {
		choices[labels[i]] = option
	}
	return choices, nil
}

// permutation returns 1..n shuffled with Fisher-Yates.
func permutation(n int, rnd *rand.Rand) []int {
	labels := make([]int, n)
	for i := range labels {
		labels[i] = i + 1
	}
	for i := n - 1; i > 0; i-- {
		j := rnd.Intn(i + 1)
		labels[i], labels[j] = labels[j], labels[i]
	}
	return labels
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(raw) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("%w: %q", errBadBoolean, raw)
}

func decode(raw string) string {
	return strings.TrimSpace(html.UnescapeString(raw))
}
