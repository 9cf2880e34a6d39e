package domain

import "time"

// RawQuestion is a question record as delivered by a question source, in the
// Open Trivia DB field layout.
type RawQuestion struct {
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty,omitempty"`
	Category         string   `json:"category"`
	Text             string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

// FetchRequest describes a batch of questions to pull from a source.
type FetchRequest struct {
	Amount     int
	Category   string
	Difficulty Difficulty
}

// Status is the linear lifecycle of a match: waiting, in progress, finished.
type Status string

const (
	StatusWaiting    Status = "waiting"
	StatusInProgress Status = "in_progress"
	StatusFinished   Status = "finished"
)

// TurnOutcome tells the driver what an answer or skip did.
type TurnOutcome struct {
	QuestionID     string `json:"questionId"`
	Correct        bool   `json:"correct"`
	PointsAwarded  int    `json:"pointsAwarded"`
	QuestionPassed bool   `json:"questionPassed"`
	Resolved       bool   `json:"resolved"`
	NextPlayerID   string `json:"nextPlayerId,omitempty"`
	SkipsRemaining int    `json:"skipsRemaining"`
	TurnOver       bool   `json:"turnOver"`
}

// Outcome classifies a match result.
type Outcome string

const (
	// OutcomeNone is only reported for a match without players.
	OutcomeNone   Outcome = "none"
	OutcomeWinner Outcome = "winner"
	OutcomeTie    Outcome = "tie"
	// OutcomeDraw is a tie that survived the tie-breaker.
	OutcomeDraw Outcome = "draw"
)

// Result is the end-of-match verdict. Winner is a copy and is set only for OutcomeWinner.
type Result struct {
	Outcome Outcome `json:"outcome"`
	Winner  *Player `json:"winner,omitempty"`
}

// Snapshot is a point-in-time copy of a match. It owns all of its data.
type Snapshot struct {
	TakenAt           time.Time         `json:"takenAt"`
	Status            Status            `json:"status"`
	Players           []Player          `json:"players"`
	Categories        []Category        `json:"categories"`
	Pool              []Question        `json:"pool"`
	Undrawn           []string          `json:"undrawn"`
	Assigned          map[string]string `json:"assigned"`
	CurrentPlayer     string            `json:"currentPlayer"`
	CurrentRound      int               `json:"currentRound"`
	QuestionsResolved int               `json:"questionsResolved"`
	PassedQuestion    string            `json:"passedQuestion,omitempty"`
	RoundBudget       int               `json:"roundBudget"`
	TieBreaker        bool              `json:"tieBreaker,omitempty"`
	TieBreakerDone    bool              `json:"tieBreakerDone,omitempty"`
}
