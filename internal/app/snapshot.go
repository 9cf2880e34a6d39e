package app

import (
	"fmt"

	"trivia-duel/internal/domain"
)

// Snapshot captures the match state. The snapshot shares no memory with the live match.
func (s *MatchService) Snapshot() domain.Snapshot {
	m := s.match

	players := make([]domain.Player, 0, len(m.players))
	for _, p := range m.players {
		players = append(players, *p)
	}

	pool := make([]domain.Question, 0, m.pool.Len())
	for _, q := range m.pool.Questions() {
		c := q.Clone()
		if q.Category != nil {
			cat := *q.Category
			c.Category = &cat
		}
		pool = append(pool, *c)
	}

	assigned := make(map[string]string, len(m.assigned))
	for playerID, questionID := range m.assigned {
		assigned[playerID] = questionID
	}

	return domain.Snapshot{
		TakenAt:           s.now(),
		Status:            m.status,
		Players:           players,
		Categories:        m.categories.All(),
		Pool:              pool,
		Undrawn:           m.pool.Undrawn(),
		Assigned:          assigned,
		CurrentPlayer:     m.currentPlayer,
		CurrentRound:      m.currentRound,
		QuestionsResolved: m.questionsResolved,
		PassedQuestion:    m.passedQuestion,
		RoundBudget:       m.roundBudget,
		TieBreaker:        m.tieBreaker,
		TieBreakerDone:    m.tieBreakerDone,
	}
}

// Restore replaces the whole match state with a copy of the snapshot. The
// snapshot is validated first; on error the live match is left untouched.
func (s *MatchService) Restore(snap domain.Snapshot) error {
	if len(snap.Players) > RequiredPlayers {
		return fmt.Errorf("restore: %d players: %w", len(snap.Players), domain.ErrMatchFull)
	}

	m := newMatch()
	m.status = snap.Status
	m.currentRound = snap.CurrentRound
	m.questionsResolved = snap.QuestionsResolved
	m.passedQuestion = snap.PassedQuestion
	m.roundBudget = snap.RoundBudget
	m.tieBreaker = snap.TieBreaker
	m.tieBreakerDone = snap.TieBreakerDone

	for i := range snap.Players {
		p := snap.Players[i]
		if _, err := m.player(p.ID); err == nil {
			return fmt.Errorf("restore player %s: %w", p.ID, domain.ErrPlayerExists)
		}
		m.players = append(m.players, &domain.Player{
			Identity: p.Identity,
			Name:     p.Name,
			Points:   p.Points,
			Skips:    p.Skips,
		})
		m.assigned[p.ID] = ""
	}
	if snap.CurrentPlayer != "" {
		if _, err := m.player(snap.CurrentPlayer); err != nil {
			return fmt.Errorf("restore current player: %w", err)
		}
	}
	m.currentPlayer = snap.CurrentPlayer

	for _, c := range snap.Categories {
		if _, err := m.categories.Register(c.ID, c.Name); err != nil {
			return fmt.Errorf("restore: %w", err)
		}
	}

	undrawn := make(map[string]bool, len(snap.Undrawn))
	for _, id := range snap.Undrawn {
		undrawn[id] = true
	}
	var drawn []string
	for i := range snap.Pool {
		q := snap.Pool[i].Clone()
		if q.Category != nil {
			cat, err := m.categories.Register(q.Category.ID, q.Category.Name)
			if err != nil {
				return fmt.Errorf("restore question %s: %w", q.ID, err)
			}
			q.Category = cat
		}
		m.pool.Add(q)
		if !undrawn[q.ID] {
			drawn = append(drawn, q.ID)
		}
	}
	// Questions already drawn must leave the queue again, keeping the order of the rest.
	for _, id := range drawn {
		m.pool.undrawn = without(m.pool.undrawn, id)
	}

	for playerID, questionID := range snap.Assigned {
		if _, err := m.player(playerID); err != nil {
			return fmt.Errorf("restore assignment: %w", err)
		}
		if questionID != "" && !m.pool.Contains(questionID) {
			return fmt.Errorf("restore assignment of %s: %w", questionID, domain.ErrQuestionNotFound)
		}
		m.assigned[playerID] = questionID
	}
	if m.passedQuestion != "" && !m.pool.Contains(m.passedQuestion) {
		return fmt.Errorf("restore passed question: %w", domain.ErrQuestionNotFound)
	}

	s.match = m
	return nil
}

// Checkpoint pushes the current state onto the undo history.
func (s *MatchService) Checkpoint() {
	s.history.Push(s.Snapshot())
}

// Undo restores the most recent checkpoint.
func (s *MatchService) Undo() error {
	snap, ok := s.history.Pop()
	if !ok {
		return domain.ErrSnapshotNotFound
	}
	if err := s.Restore(snap); err != nil {
		return err
	}
	s.logger.Printf("restored checkpoint from %s (round %d)", snap.TakenAt.Format("15:04:05"), snap.CurrentRound)
	return nil
}

// History returns the stored checkpoints, oldest first.
func (s *MatchService) History() []domain.Snapshot {
	return s.history.List()
}
