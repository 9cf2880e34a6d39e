package domain

import (
	"errors"
	"testing"
)

func multipleQuestion() *Question {
	return &Question{
		ID:     "q1",
		Text:   "Largest planet?",
		Points: 1,
		Type:   TypeMultiple,
		Choices: map[int]Choice{
			1: {Text: "Mars"},
			2: {Text: "Jupiter", Correct: true},
			3: {Text: "Venus"},
		},
	}
}

func TestCheckAnswerMultipleChoice(t *testing.T) {
	q := multipleQuestion()

	if !q.CheckAnswer(ChoiceAnswer(2)) {
		t.Fatalf("expected label 2 to be correct")
	}
	if q.CheckAnswer(ChoiceAnswer(1)) {
		t.Fatalf("expected label 1 to be incorrect")
	}
	if q.CheckAnswer(ChoiceAnswer(42)) {
		t.Fatalf("expected unknown label to be incorrect")
	}
	if q.CheckAnswer(BoolAnswer(true)) {
		t.Fatalf("expected boolean answer to a multiple-choice question to be incorrect")
	}
	if got := q.CorrectText(); got != "Jupiter" {
		t.Fatalf("expected correct text Jupiter, got %q", got)
	}
	labels := q.Labels()
	if len(labels) != 3 || labels[0] != 1 || labels[2] != 3 {
		t.Fatalf("expected sorted labels 1..3, got %v", labels)
	}
}

func TestCheckAnswerBoolean(t *testing.T) {
	q := &Question{ID: "q2", Type: TypeBoolean, Correct: true, Points: 1}

	if !q.CheckAnswer(BoolAnswer(true)) {
		t.Fatalf("expected true to be correct")
	}
	if q.CheckAnswer(BoolAnswer(false)) {
		t.Fatalf("expected false to be incorrect")
	}
	if got := q.CorrectText(); got != TrueLabel {
		t.Fatalf("expected %q, got %q", TrueLabel, got)
	}
}

func TestAssignTwiceFails(t *testing.T) {
	q := multipleQuestion()
	if err := q.AssignTo("a"); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := q.AssignTo("b"); !errors.Is(err, ErrAlreadyAssigned) {
		t.Fatalf("expected ErrAlreadyAssigned, got %v", err)
	}
	if q.AssignedTo != "a" {
		t.Fatalf("expected assignment to stay with a, got %q", q.AssignedTo)
	}
}

func TestMarkAnsweredRules(t *testing.T) {
	q := multipleQuestion()
	if err := q.MarkAnswered("a"); !errors.Is(err, ErrNotAssigned) {
		t.Fatalf("expected ErrNotAssigned, got %v", err)
	}

	_ = q.AssignTo("a")
	if err := q.MarkAnswered("b"); !errors.Is(err, ErrWrongPlayer) {
		t.Fatalf("expected ErrWrongPlayer, got %v", err)
	}
	if err := q.MarkAnswered("a"); err != nil {
		t.Fatalf("mark answered: %v", err)
	}

	before := *q
	err := q.MarkAnswered("a")
	if !errors.Is(err, ErrAlreadyAnswered) {
		t.Fatalf("expected ErrAlreadyAnswered, got %v", err)
	}
	if !errors.Is(err, ErrInvalidOperation) {
		t.Fatalf("expected invalid operation kind, got %v", err)
	}
	if q.AnsweredBy != before.AnsweredBy || q.AssignedTo != before.AssignedTo {
		t.Fatalf("failed second mark changed state: %+v", q)
	}
}

func TestCloneDoesNotShareChoices(t *testing.T) {
	q := multipleQuestion()
	c := q.Clone()
	c.Choices[1] = Choice{Text: "Pluto", Correct: true}
	if q.Choices[1].Text != "Mars" {
		t.Fatalf("clone mutated original choices")
	}
}

func TestDifficultyPoints(t *testing.T) {
	cases := []struct {
		raw    string
		points int
	}{
		{"easy", 1},
		{"Medium", 2},
		{"HARD", 3},
		{"", 1},
		{"legendary", 1},
	}
	for _, tc := range cases {
		d, _ := ParseDifficulty(tc.raw)
		if got := d.Points(); got != tc.points {
			t.Fatalf("difficulty %q: expected %d points, got %d", tc.raw, tc.points, got)
		}
	}
}
