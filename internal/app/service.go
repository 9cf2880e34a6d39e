package app

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sort"
	"time"

	"trivia-duel/internal/domain"
)

// QuestionSource fetches raw question records (remote API, file, database).
type QuestionSource interface {
	Fetch(ctx context.Context, req domain.FetchRequest) ([]domain.RawQuestion, error)
}

// HistoryStore keeps match snapshots for undo, newest last.
type HistoryStore interface {
	Push(snapshot domain.Snapshot)
	Pop() (domain.Snapshot, bool)
	List() []domain.Snapshot
	Len() int
}

// MatchService drives one match: registration, question assignment, answer
// resolution, skips, passes and the final verdict. It is not safe for
// concurrent use; a match has a single driver.
type MatchService struct {
	match   *Match
	history HistoryStore
	rnd     *rand.Rand
	logger  *log.Logger
	now     func() time.Time
}

// Option customises a MatchService.
type Option func(*MatchService)

// WithRand sets the random source used to label multiple-choice options.
func WithRand(rnd *rand.Rand) Option {
	return func(s *MatchService) { s.rnd = rnd }
}

func WithLogger(logger *log.Logger) Option {
	return func(s *MatchService) { s.logger = logger }
}

// WithClock is used by tests for deterministic snapshot timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *MatchService) { s.now = now }
}

func NewMatchService(history HistoryStore, opts ...Option) *MatchService {
	s := &MatchService{
		match:   newMatch(),
		history: history,
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:  log.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Match returns a read-only view of the match state.
func (s *MatchService) Match() *Match {
	return s.match
}

// AddPlayer registers a player while the match is waiting.
func (s *MatchService) AddPlayer(p *domain.Player) error {
	m := s.match
	if m.status != domain.StatusWaiting {
		return domain.ErrMatchNotWaiting
	}
	if _, err := m.player(p.ID); err == nil {
		return fmt.Errorf("player %s: %w", p.ID, domain.ErrPlayerExists)
	}
	if len(m.players) >= RequiredPlayers {
		return domain.ErrMatchFull
	}
	m.players = append(m.players, p)
	m.assigned[p.ID] = ""
	if m.currentPlayer == "" {
		m.currentPlayer = p.ID
	}
	return nil
}

// CreatePool converts raw records into questions and sets the round budget.
// Records missing a required field are logged and skipped. It returns the
// number of questions added.
func (s *MatchService) CreatePool(raw []domain.RawQuestion, roundBudget int) (int, error) {
	m := s.match
	if m.status != domain.StatusWaiting {
		return 0, domain.ErrMatchNotWaiting
	}
	if roundBudget <= 0 {
		return 0, domain.ErrInvalidRoundBudget
	}

	added := 0
	for i, record := range raw {
		q, err := buildQuestion(record, m.categories, s.rnd)
		if err != nil {
			s.logger.Printf("skipping question record %d: %v", i, err)
			continue
		}
		m.pool.Add(q)
		added++
	}
	m.roundBudget = roundBudget
	if added < roundBudget {
		s.logger.Printf("pool holds %d questions for a budget of %d rounds", added, roundBudget)
	}
	return added, nil
}

// LoadQuestions fetches enough questions for the round budget plus a buffer
// of replacements for every skip the players can use, then builds the pool.
func (s *MatchService) LoadQuestions(ctx context.Context, source QuestionSource, req domain.FetchRequest) (int, error) {
	rounds := req.Amount
	if rounds <= 0 {
		return 0, domain.ErrInvalidRoundBudget
	}
	req.Amount = rounds + s.skipBuffer()

	raw, err := source.Fetch(ctx, req)
	if err != nil {
		return 0, fmt.Errorf("fetch questions: %w", err)
	}
	return s.CreatePool(raw, rounds)
}

func (s *MatchService) skipBuffer() int {
	if len(s.match.players) == 0 {
		return RequiredPlayers * domain.DefaultSkips
	}
	buffer := 0
	for _, p := range s.match.players {
		buffer += p.Skips
	}
	return buffer
}

// Start moves a waiting match with exactly two players into play.
func (s *MatchService) Start() error {
	m := s.match
	if m.status != domain.StatusWaiting {
		return domain.ErrMatchNotWaiting
	}
	if len(m.players) != RequiredPlayers {
		return domain.ErrNotEnoughPlayers
	}
	m.status = domain.StatusInProgress
	m.currentPlayer = m.players[0].ID
	s.logger.Printf("match started: %s vs %s, %d rounds, %d questions in pool",
		m.players[0].Name, m.players[1].Name, m.roundBudget, m.pool.Len())
	return nil
}

// AssignQuestionToPlayer draws the next question for the player whose turn it
// is. It returns false, with no error, when the pool has nothing left to draw;
// the match is then finished.
func (s *MatchService) AssignQuestionToPlayer(playerID string) (*domain.Question, bool, error) {
	m := s.match
	if _, err := m.player(playerID); err != nil {
		return nil, false, err
	}
	if m.status != domain.StatusInProgress {
		return nil, false, domain.ErrMatchNotInProgress
	}
	if m.assigned[playerID] != "" {
		return nil, false, domain.ErrPlayerBusy
	}
	if m.currentPlayer != playerID {
		return nil, false, domain.ErrNotPlayersTurn
	}
	return s.assign(playerID)
}

func (s *MatchService) assign(playerID string) (*domain.Question, bool, error) {
	m := s.match
	q, ok := m.pool.DrawNext()
	if !ok {
		if !m.outstanding() {
			s.logger.Printf("question pool exhausted after %d rounds", m.currentRound)
			if !m.tieBreaker {
				m.finish()
			}
		}
		return nil, false, nil
	}
	if err := q.AssignTo(playerID); err != nil {
		return nil, false, err
	}
	m.assigned[playerID] = q.ID
	return q.Clone(), true, nil
}

// HeldQuestion returns a copy of the question the player currently holds.
func (s *MatchService) HeldQuestion(playerID string) (*domain.Question, error) {
	m := s.match
	if _, err := m.player(playerID); err != nil {
		return nil, err
	}
	id := m.assigned[playerID]
	if id == "" {
		return nil, domain.ErrNoQuestionHeld
	}
	q, ok := m.pool.Get(id)
	if !ok {
		return nil, domain.ErrQuestionNotFound
	}
	return q.Clone(), nil
}

// HandlePlayerAnswer resolves an answer to the question the player holds.
//
// A first attempt that is correct scores and ends the turn. A first attempt
// that is wrong passes the question to the opponent. A second attempt always
// resolves the question, scoring only if correct. Each call either resolves
// exactly one question or performs exactly one pass.
//
// After a resolution the next question goes to the player who did not own the
// resolved one; that player is reported as NextPlayerID.
func (s *MatchService) HandlePlayerAnswer(playerID, questionID string, answer domain.Answer) (domain.TurnOutcome, error) {
	m := s.match
	player, err := m.player(playerID)
	if err != nil {
		return domain.TurnOutcome{}, err
	}
	if !m.playable() {
		return domain.TurnOutcome{}, domain.ErrMatchNotInProgress
	}
	q, ok := m.pool.Get(questionID)
	if !ok {
		return domain.TurnOutcome{}, domain.ErrQuestionNotFound
	}
	switch held := m.assigned[playerID]; {
	case held == "":
		return domain.TurnOutcome{}, domain.ErrNoQuestionHeld
	case held != questionID:
		return domain.TurnOutcome{}, domain.ErrWrongPlayer
	}

	correct := q.CheckAnswer(answer)
	secondAttempt := m.passedQuestion == q.ID

	if !secondAttempt && !correct {
		to := m.opponent(playerID)
		if err := s.passQuestion(playerID, to); err != nil {
			return domain.TurnOutcome{}, err
		}
		return domain.TurnOutcome{
			QuestionID:     q.ID,
			QuestionPassed: true,
			NextPlayerID:   to,
			SkipsRemaining: player.Skips,
		}, nil
	}

	if err := q.MarkAnswered(playerID); err != nil {
		return domain.TurnOutcome{}, err
	}
	awarded := 0
	if correct {
		awarded = q.Points
		player.Points += awarded
	}

	next := m.opponent(playerID)
	if secondAttempt {
		// The owner already had their turn on this question.
		next = playerID
		m.passedQuestion = ""
	}
	s.resolve(q.ID, playerID, true)
	m.currentPlayer = next

	return domain.TurnOutcome{
		QuestionID:     q.ID,
		Correct:        correct,
		PointsAwarded:  awarded,
		Resolved:       true,
		NextPlayerID:   next,
		SkipsRemaining: player.Skips,
		TurnOver:       correct && !secondAttempt,
	}, nil
}

// resolve removes a question from play. Answered resolutions advance the round.
func (s *MatchService) resolve(questionID, playerID string, answered bool) {
	m := s.match
	_ = m.pool.Remove(questionID)
	m.assigned[playerID] = ""
	m.questionsResolved++

	if m.tieBreaker {
		m.tieBreaker = false
		m.tieBreakerDone = true
		return
	}
	if answered {
		m.currentRound++
	}
	if m.roundsComplete() {
		s.logger.Printf("round budget of %d reached", m.roundBudget)
		m.finish()
	}
}

// SkipQuestion spends one of the player's skips: the held question is
// discarded without points and a replacement is drawn for the same player.
// The returned question is nil when the pool had no replacement.
func (s *MatchService) SkipQuestion(playerID string) (domain.TurnOutcome, *domain.Question, error) {
	m := s.match
	player, err := m.player(playerID)
	if err != nil {
		return domain.TurnOutcome{}, nil, err
	}
	if m.status != domain.StatusInProgress {
		return domain.TurnOutcome{}, nil, domain.ErrMatchNotInProgress
	}
	if player.Skips <= 0 {
		return domain.TurnOutcome{}, nil, domain.ErrNoSkipsLeft
	}
	held := m.assigned[playerID]
	if held == "" {
		return domain.TurnOutcome{}, nil, domain.ErrNoQuestionHeld
	}
	if held == m.passedQuestion {
		return domain.TurnOutcome{}, nil, domain.ErrSkipPassedQuestion
	}

	player.Skips--
	s.resolve(held, playerID, false)
	s.logger.Printf("%s skipped a question, %d skips left", player.Name, player.Skips)

	outcome := domain.TurnOutcome{
		QuestionID:     held,
		Resolved:       true,
		NextPlayerID:   playerID,
		SkipsRemaining: player.Skips,
	}
	next, _, err := s.assign(playerID)
	if err != nil {
		return outcome, nil, err
	}
	return outcome, next, nil
}

// PassQuestion hands the question held by fromID to toID and marks it as passed.
func (s *MatchService) PassQuestion(fromID, toID string) error {
	m := s.match
	if _, err := m.player(fromID); err != nil {
		return err
	}
	if _, err := m.player(toID); err != nil {
		return err
	}
	if !m.playable() {
		return domain.ErrMatchNotInProgress
	}
	return s.passQuestion(fromID, toID)
}

func (s *MatchService) passQuestion(fromID, toID string) error {
	m := s.match
	questionID := m.assigned[fromID]
	if questionID == "" {
		return domain.ErrNoQuestionHeld
	}
	if fromID == toID || m.assigned[toID] != "" {
		return domain.ErrPlayerBusy
	}
	if m.passedQuestion != "" {
		return domain.ErrPassBusy
	}
	q, ok := m.pool.Get(questionID)
	if !ok {
		return domain.ErrQuestionNotFound
	}
	if err := q.Release(); err != nil {
		return err
	}
	// Cannot fail: the question was just released and is unanswered.
	_ = q.AssignTo(toID)
	m.assigned[fromID] = ""
	m.assigned[toID] = questionID
	m.passedQuestion = questionID
	m.currentPlayer = toID
	return nil
}

// DetermineWinner reports the player with strictly the most points, a tie when
// the top score is shared, or a draw when a tie-breaker did not separate them.
func (s *MatchService) DetermineWinner() domain.Result {
	m := s.match
	if len(m.players) == 0 {
		return domain.Result{Outcome: domain.OutcomeNone}
	}
	var leader *domain.Player
	shared := false
	for _, p := range m.players {
		switch {
		case leader == nil || p.Points > leader.Points:
			leader = p
			shared = false
		case p.Points == leader.Points:
			shared = true
		}
	}
	if shared {
		if m.tieBreakerDone {
			return domain.Result{Outcome: domain.OutcomeDraw}
		}
		return domain.Result{Outcome: domain.OutcomeTie}
	}
	return domain.Result{Outcome: domain.OutcomeWinner, Winner: leader.Clone()}
}

// Scoreboard lists players by points, highest first, then by name.
func (s *MatchService) Scoreboard() []domain.Player {
	board := s.match.Players()
	sort.SliceStable(board, func(i, j int) bool {
		if board[i].Points != board[j].Points {
			return board[i].Points > board[j].Points
		}
		return board[i].Name < board[j].Name
	})
	return board
}
