package app_test

import (
	"errors"
	"testing"

	"trivia-duel/internal/app"
	"trivia-duel/internal/domain"
)

// newTiedMatch plays two correct answers so the match ends 1-1.
func newTiedMatch(t *testing.T, deck int) (*app.MatchService, string, string) {
	t.Helper()
	service, alice, bob := newStartedMatch(t, boolDeck(deck), 2)
	for _, player := range []string{alice, bob} {
		q := assign(t, service, player)
		if _, err := service.HandlePlayerAnswer(player, q.ID, correctAnswer(q)); err != nil {
			t.Fatalf("answer: %v", err)
		}
	}
	if got := service.DetermineWinner(); got.Outcome != domain.OutcomeTie {
		t.Fatalf("expected a tie, got %+v", got)
	}
	return service, alice, bob
}

func TestTieBreakerFirstCorrectAnswerWins(t *testing.T) {
	service, alice, _ := newTiedMatch(t, 4)

	q, err := service.StartTieBreaker()
	if err != nil {
		t.Fatalf("start tie-breaker: %v", err)
	}
	if q == nil || !service.Match().TieBreakerActive() || service.Match().Assigned(alice) != q.ID {
		t.Fatalf("expected Alice to hold the tie-breaker question")
	}
	if _, err := service.StartTieBreaker(); !errors.Is(err, domain.ErrTieBreakerActive) {
		t.Fatalf("expected ErrTieBreakerActive, got %v", err)
	}

	outcome, err := service.AnswerTieBreaker(alice, correctAnswer(q))
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if !outcome.Correct || service.Match().TieBreakerActive() {
		t.Fatalf("expected the tie-breaker to end, got %+v", outcome)
	}
	result := service.DetermineWinner()
	if result.Outcome != domain.OutcomeWinner || result.Winner.ID != alice {
		t.Fatalf("expected Alice to win, got %+v", result)
	}
	if service.Match().CurrentRound() != 2 {
		t.Fatalf("the tie-breaker must not count as a round")
	}
}

func TestTieBreakerSecondPlayerCanWin(t *testing.T) {
	service, alice, bob := newTiedMatch(t, 4)
	q, err := service.StartTieBreaker()
	if err != nil {
		t.Fatalf("start tie-breaker: %v", err)
	}

	outcome, err := service.AnswerTieBreaker(alice, wrongAnswer(q))
	if err != nil {
		t.Fatalf("first answer: %v", err)
	}
	if !outcome.QuestionPassed || outcome.NextPlayerID != bob {
		t.Fatalf("expected the question to pass to Bob, got %+v", outcome)
	}
	if _, err := service.AnswerTieBreaker(bob, correctAnswer(q)); err != nil {
		t.Fatalf("second answer: %v", err)
	}
	if result := service.DetermineWinner(); result.Outcome != domain.OutcomeWinner || result.Winner.ID != bob {
		t.Fatalf("expected Bob to win, got %+v", result)
	}
}

func TestTieBreakerBothWrongIsDraw(t *testing.T) {
	service, alice, bob := newTiedMatch(t, 4)
	q, err := service.StartTieBreaker()
	if err != nil {
		t.Fatalf("start tie-breaker: %v", err)
	}
	if _, err := service.AnswerTieBreaker(alice, wrongAnswer(q)); err != nil {
		t.Fatalf("first answer: %v", err)
	}
	if _, err := service.AnswerTieBreaker(bob, wrongAnswer(q)); err != nil {
		t.Fatalf("second answer: %v", err)
	}
	if result := service.DetermineWinner(); result.Outcome != domain.OutcomeDraw || result.Winner != nil {
		t.Fatalf("expected a draw, got %+v", result)
	}
	if _, err := service.AnswerTieBreaker(alice, wrongAnswer(q)); !errors.Is(err, domain.ErrTieBreakerNotActive) {
		t.Fatalf("expected ErrTieBreakerNotActive, got %v", err)
	}
}

func TestTieBreakerWithEmptyPoolIsDraw(t *testing.T) {
	service, _, _ := newTiedMatch(t, 2)

	q, err := service.StartTieBreaker()
	if err != nil || q != nil {
		t.Fatalf("expected no question and no error, got %v, %v", q, err)
	}
	if result := service.DetermineWinner(); result.Outcome != domain.OutcomeDraw {
		t.Fatalf("expected a draw, got %+v", result)
	}
}

func TestTieBreakerPreconditions(t *testing.T) {
	service, alice, _ := newStartedMatch(t, boolDeck(3), 1)
	if _, err := service.StartTieBreaker(); !errors.Is(err, domain.ErrMatchNotFinished) {
		t.Fatalf("expected ErrMatchNotFinished, got %v", err)
	}
	if _, err := service.AnswerTieBreaker(alice, domain.BoolAnswer(true)); !errors.Is(err, domain.ErrTieBreakerNotActive) {
		t.Fatalf("expected ErrTieBreakerNotActive, got %v", err)
	}

	q := assign(t, service, alice)
	if _, err := service.HandlePlayerAnswer(alice, q.ID, correctAnswer(q)); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if _, err := service.StartTieBreaker(); !errors.Is(err, domain.ErrNoTie) {
		t.Fatalf("expected ErrNoTie, got %v", err)
	}
}
