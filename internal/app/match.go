package app

import (
	"trivia-duel/internal/domain"
)

// RequiredPlayers is the number of players a match is played with.
const RequiredPlayers = 2

// Match is the state of a single two-player game. It is owned and mutated by
// MatchService; the exported methods are read-only views.
type Match struct {
	status     domain.Status
	players    []*domain.Player
	pool       *QuestionPool
	categories *domain.CategoryRegistry

	// assigned maps player id to the id of the question they hold, or "".
	assigned map[string]string

	currentPlayer     string
	currentRound      int
	questionsResolved int
	passedQuestion    string
	roundBudget       int

	tieBreaker     bool
	tieBreakerDone bool
}

func newMatch() *Match {
	return &Match{
		status:     domain.StatusWaiting,
		pool:       NewQuestionPool(),
		categories: domain.NewCategoryRegistry(),
		assigned:   make(map[string]string),
	}
}

func (m *Match) Status() domain.Status { return m.status }

func (m *Match) CurrentPlayer() string { return m.currentPlayer }

func (m *Match) CurrentRound() int { return m.currentRound }

func (m *Match) QuestionsResolved() int { return m.questionsResolved }

func (m *Match) PassedQuestion() string { return m.passedQuestion }

func (m *Match) RoundBudget() int { return m.roundBudget }

func (m *Match) TieBreakerActive() bool { return m.tieBreaker }

// Categories exposes the registry for lookups.
func (m *Match) Categories() *domain.CategoryRegistry { return m.categories }

// PoolSize is the number of unresolved questions.
func (m *Match) PoolSize() int { return m.pool.Len() }

// PoolRemaining is the number of questions that can still be drawn.
func (m *Match) PoolRemaining() int { return m.pool.Remaining() }

func (m *Match) PoolContains(questionID string) bool { return m.pool.Contains(questionID) }

// Assigned returns the id of the question the player holds, or "".
func (m *Match) Assigned(playerID string) string { return m.assigned[playerID] }

// Players returns copies of the players in registration order.
func (m *Match) Players() []domain.Player {
	out := make([]domain.Player, 0, len(m.players))
	for _, p := range m.players {
		out = append(out, *p)
	}
	return out
}

// Player returns a copy of one player.
func (m *Match) Player(id string) (domain.Player, error) {
	p, err := m.player(id)
	if err != nil {
		return domain.Player{}, err
	}
	return *p, nil
}

func (m *Match) player(id string) (*domain.Player, error) {
	for _, p := range m.players {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, domain.ErrPlayerNotFound
}

// opponent returns the id of the other player. Callers must ensure there are two players.
func (m *Match) opponent(id string) string {
	for _, p := range m.players {
		if p.ID != id {
			return p.ID
		}
	}
	return ""
}

// playable reports whether answers and passes are accepted right now.
func (m *Match) playable() bool {
	return m.status == domain.StatusInProgress || m.tieBreaker
}

func (m *Match) roundsComplete() bool {
	return m.roundBudget > 0 && m.currentRound >= m.roundBudget
}

// outstanding reports whether any player holds a question.
func (m *Match) outstanding() bool {
	for _, id := range m.assigned {
		if id != "" {
			return true
		}
	}
	return false
}

func (m *Match) finish() {
	m.status = domain.StatusFinished
}
