package app

import (
	"trivia-duel/internal/domain"
)

// StartTieBreaker draws one decisive question after a match finished level.
// The question goes to the player whose turn it would be. A nil question means
// the pool is empty and the match is recorded as a draw.
func (s *MatchService) StartTieBreaker() (*domain.Question, error) {
	m := s.match
	if m.status != domain.StatusFinished {
		return nil, domain.ErrMatchNotFinished
	}
	if m.tieBreaker {
		return nil, domain.ErrTieBreakerActive
	}
	if s.DetermineWinner().Outcome != domain.OutcomeTie {
		return nil, domain.ErrNoTie
	}

	m.tieBreaker = true
	q, ok, err := s.assign(m.currentPlayer)
	if err != nil || !ok {
		m.tieBreaker = false
		m.tieBreakerDone = true
		s.logger.Printf("no question left for a tie-breaker, match is a draw")
		return nil, err
	}
	s.logger.Printf("tie-breaker question assigned")
	return q, nil
}

// AnswerTieBreaker answers the tie-breaker question held by the player. A wrong
// first answer passes it to the opponent; any other answer ends the tie-breaker.
func (s *MatchService) AnswerTieBreaker(playerID string, answer domain.Answer) (domain.TurnOutcome, error) {
	m := s.match
	if !m.tieBreaker {
		return domain.TurnOutcome{}, domain.ErrTieBreakerNotActive
	}
	if _, err := m.player(playerID); err != nil {
		return domain.TurnOutcome{}, err
	}
	questionID := m.assigned[playerID]
	if questionID == "" {
		return domain.TurnOutcome{}, domain.ErrNoQuestionHeld
	}
	return s.HandlePlayerAnswer(playerID, questionID, answer)
}
