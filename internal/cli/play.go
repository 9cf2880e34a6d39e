package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"trivia-duel/internal/app"
	"trivia-duel/internal/config"
	"trivia-duel/internal/domain"
	"trivia-duel/internal/infra/file"
	"trivia-duel/internal/infra/memory"
	"trivia-duel/internal/infra/opentdb"
	"trivia-duel/internal/infra/postgres"
	rediscache "trivia-duel/internal/infra/redis"
)

// historyLimit bounds how many turns can be undone.
const historyLimit = 32

var errQuit = errors.New("match abandoned")

type playFlags struct {
	rounds int
	source string
	file   string
	seed   int64
}

// NewPlayCmd builds the hot-seat match command.
func NewPlayCmd(configPath *string) *cobra.Command {
	var flags playFlags
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a two-player match on this terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("rounds") {
				cfg.Match.Rounds = flags.rounds
			}
			if cmd.Flags().Changed("source") {
				cfg.Questions.Source = flags.source
			}
			if cmd.Flags().Changed("file") {
				cfg.Questions.File = flags.file
				if !cmd.Flags().Changed("source") {
					cfg.Questions.Source = config.SourceFile
				}
			}
			if cmd.Flags().Changed("seed") {
				cfg.Match.Seed = flags.seed
			}
			return runPlay(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVar(&flags.rounds, "rounds", 10, "number of answered questions before the match ends")
	cmd.Flags().StringVar(&flags.source, "source", config.SourceOpenTDB, "question source: opentdb, file, postgres or demo")
	cmd.Flags().StringVar(&flags.file, "file", "", "JSON question file (implies --source file)")
	cmd.Flags().Int64Var(&flags.seed, "seed", 0, "random seed, 0 picks one from the clock")
	return cmd
}

func runPlay(ctx context.Context, cfg config.Config, in io.Reader, out io.Writer) error {
	if cfg.Log.Level == config.LevelQuiet {
		log.SetOutput(io.Discard)
	}

	seed := cfg.Match.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rnd := rand.New(rand.NewSource(seed))

	difficulty, ok := domain.ParseDifficulty(cfg.Questions.Difficulty)
	if !ok && cfg.Questions.Difficulty != "" {
		return fmt.Errorf("unknown difficulty %q", cfg.Questions.Difficulty)
	}

	source, cleanup, err := buildSource(ctx, cfg, rnd)
	if err != nil {
		return err
	}
	defer cleanup()

	history := memory.NewHistoryStore(historyLimit)
	c := &console{
		service: app.NewMatchService(history, app.WithRand(rnd), app.WithLogger(log.Default())),
		history: history,
		in:      bufio.NewScanner(in),
		out:     out,
		printer: message.NewPrinter(language.English),
	}

	if err := c.register(cfg.Match.Skips); err != nil {
		return err
	}
	added, err := c.service.LoadQuestions(ctx, source, domain.FetchRequest{
		Amount:     cfg.Match.Rounds,
		Category:   cfg.Questions.Category,
		Difficulty: difficulty,
	})
	if err != nil {
		return err
	}
	if added == 0 {
		return fmt.Errorf("no usable questions from %s source", cfg.Questions.Source)
	}
	if err := c.service.Start(); err != nil {
		return err
	}

	err = c.play()
	if errors.Is(err, errQuit) {
		c.printf("\n%v.\n", errQuit)
		c.scoreboard()
		return nil
	}
	if err != nil {
		return err
	}
	if err := c.tieBreaker(); err != nil {
		if errors.Is(err, errQuit) {
			c.printf("\n%v.\n", errQuit)
			return nil
		}
		return err
	}
	c.scoreboard()
	c.verdict()
	return nil
}

// buildSource picks the configured question source and puts a cache in front of it.
func buildSource(ctx context.Context, cfg config.Config, rnd *rand.Rand) (app.QuestionSource, func(), error) {
	cleanup := func() {}
	var source memory.QuestionSource

	switch cfg.Questions.Source {
	case config.SourceOpenTDB, "":
		source = opentdb.NewClient(cfg.Questions.APIURL, config.TTLDuration(cfg.Questions.Timeout, 10*time.Second))
	case config.SourceFile:
		if cfg.Questions.File == "" {
			return nil, cleanup, fmt.Errorf("questions.file not configured")
		}
		source = file.NewSource(cfg.Questions.File).WithRand(rnd)
	case config.SourcePostgres:
		if cfg.Postgres.URL == "" {
			return nil, cleanup, fmt.Errorf("postgres url not configured")
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, cleanup, err
		}
		cleanup = pool.Close
		source = postgres.NewQuestionSource(pool)
	case config.SourceDemo:
		source = memory.NewStaticSource(demoDeck())
	default:
		return nil, cleanup, fmt.Errorf("unknown question source %q", cfg.Questions.Source)
	}
	log.Printf("loading questions from %s", cfg.Questions.Source)

	ttl := config.TTLDuration(cfg.Questions.CacheTTL, 10*time.Minute)
	if cfg.Redis.Addr == "" {
		return memory.NewQuestionCache(source, ttl), cleanup, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	closeAll := func() {
		_ = client.Close()
		cleanup()
	}
	return rediscache.NewQuestionCache(client, source, ttl), closeAll, nil
}

// console drives a match from line-based input, both players sharing one terminal.
type console struct {
	service *app.MatchService
	history app.HistoryStore
	in      *bufio.Scanner
	out     io.Writer
	printer *message.Printer
}

type action int

const (
	actionAnswer action = iota
	actionSkip
	actionUndo
)

func (c *console) printf(format string, args ...interface{}) {
	c.printer.Fprintf(c.out, format, args...)
}

func (c *console) readLine(prompt string) (string, error) {
	c.printf("%s", prompt)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", errQuit
	}
	return strings.TrimSpace(c.in.Text()), nil
}

func (c *console) register(skips int) error {
	for i := 1; i <= app.RequiredPlayers; i++ {
		name, err := c.readLine(fmt.Sprintf("Player %d name: ", i))
		if err != nil {
			return err
		}
		if name == "" {
			name = fmt.Sprintf("Player %d", i)
		}
		p := domain.NewPlayer(name)
		p.Skips = skips
		if err := c.service.AddPlayer(p); err != nil {
			return err
		}
	}
	return nil
}

func (c *console) play() error {
	for c.service.Match().Status() == domain.StatusInProgress {
		if err := c.turn(); err != nil {
			return err
		}
	}
	return nil
}

func (c *console) turn() error {
	m := c.service.Match()
	playerID := m.CurrentPlayer()

	q, err := c.service.HeldQuestion(playerID)
	if errors.Is(err, domain.ErrNoQuestionHeld) {
		var ok bool
		q, ok, err = c.service.AssignQuestionToPlayer(playerID)
		if err != nil {
			return err
		}
		if !ok {
			if c.service.Match().Status() == domain.StatusInProgress {
				return fmt.Errorf("no question available for the current player")
			}
			c.printf("\nNo questions left.\n")
			return nil
		}
	} else if err != nil {
		return err
	}

	c.show(playerID, q)
	for {
		act, answer, err := c.ask(q, true)
		if err != nil {
			return err
		}
		snap := c.service.Snapshot()

		switch act {
		case actionUndo:
			if err := c.service.Undo(); err != nil {
				c.printf("Nothing to undo.\n")
				continue
			}
			c.printf("Last move undone.\n")
			return nil
		case actionSkip:
			outcome, _, err := c.service.SkipQuestion(playerID)
			if err != nil {
				c.printf("Cannot skip: %v.\n", err)
				continue
			}
			c.history.Push(snap)
			c.printf("Skipped. %d skips left.\n", outcome.SkipsRemaining)
			return nil
		default:
			outcome, err := c.service.HandlePlayerAnswer(playerID, q.ID, answer)
			if err != nil {
				return err
			}
			c.history.Push(snap)
			c.report(q, outcome)
			return nil
		}
	}
}

func (c *console) tieBreaker() error {
	if c.service.DetermineWinner().Outcome != domain.OutcomeTie {
		return nil
	}
	c.printf("\nScores are level. Tie-breaker!\n")
	q, err := c.service.StartTieBreaker()
	if err != nil {
		return err
	}
	if q == nil {
		c.printf("No questions left for a tie-breaker.\n")
	}

	for c.service.Match().TieBreakerActive() {
		playerID := c.service.Match().CurrentPlayer()
		q, err := c.service.HeldQuestion(playerID)
		if err != nil {
			return err
		}
		c.show(playerID, q)

		_, answer, err := c.ask(q, false)
		if err != nil {
			return err
		}
		outcome, err := c.service.AnswerTieBreaker(playerID, answer)
		if err != nil {
			return err
		}
		c.report(q, outcome)
	}
	return nil
}

func (c *console) show(playerID string, q *domain.Question) {
	m := c.service.Match()
	player, _ := m.Player(playerID)

	c.printf("\n")
	if m.TieBreakerActive() {
		c.printf("Tie-breaker for %s", player.Name)
	} else {
		c.printf("Round %d/%d: %s (%d skips left)", m.CurrentRound()+1, m.RoundBudget(), player.Name, player.Skips)
	}
	if m.PassedQuestion() == q.ID {
		c.printf(", passed question")
	}
	c.printf("\n")

	category := ""
	if q.Category != nil {
		category = q.Category.Name
	}
	c.printf("[%s, %d points] %s\n", category, q.Points, q.Text)

	if q.Type == domain.TypeBoolean {
		trueLabel, falseLabel := q.BoolLabels()
		c.printf("  t) %s\n  f) %s\n", trueLabel, falseLabel)
		return
	}
	for _, label := range q.Labels() {
		c.printf("  %d) %s\n", label, q.Choices[label].Text)
	}
}

// ask reads until it gets a usable command or answer.
func (c *console) ask(q *domain.Question, allowMoves bool) (action, domain.Answer, error) {
	for {
		line, err := c.readLine("> ")
		if err != nil {
			return actionAnswer, domain.Answer{}, err
		}
		switch strings.ToLower(line) {
		case "q", "quit":
			return actionAnswer, domain.Answer{}, errQuit
		case "s", "skip":
			if allowMoves {
				return actionSkip, domain.Answer{}, nil
			}
			c.printf("No skipping in the tie-breaker.\n")
			continue
		case "u", "undo":
			if allowMoves {
				return actionUndo, domain.Answer{}, nil
			}
			c.printf("No undo in the tie-breaker.\n")
			continue
		}
		answer, err := parseAnswer(q, line)
		if err != nil {
			c.printf("%v\n", err)
			continue
		}
		return actionAnswer, answer, nil
	}
}

func (c *console) report(q *domain.Question, outcome domain.TurnOutcome) {
	switch {
	case outcome.QuestionPassed:
		next, _ := c.service.Match().Player(outcome.NextPlayerID)
		c.printf("Wrong. The question passes to %s.\n", next.Name)
	case outcome.Correct:
		c.printf("Correct! +%d points.\n", outcome.PointsAwarded)
	default:
		c.printf("Wrong. The answer was %q.\n", q.CorrectText())
	}
}

func (c *console) scoreboard() {
	m := c.service.Match()
	c.printf("\nScoreboard after %d rounds\n", m.CurrentRound())
	for i, p := range c.service.Scoreboard() {
		c.printf("%d. %-16s %d points\n", i+1, p.Name, p.Points)
	}
}

func (c *console) verdict() {
	result := c.service.DetermineWinner()
	switch result.Outcome {
	case domain.OutcomeWinner:
		c.printf("%s wins!\n", result.Winner.Name)
	case domain.OutcomeDraw:
		c.printf("The match is a draw.\n")
	default:
		c.printf("The match ended level.\n")
	}
}

// parseAnswer reads a choice label for multiple-choice questions, or t/f (or
// the displayed labels) for boolean ones.
func parseAnswer(q *domain.Question, line string) (domain.Answer, error) {
	if q.Type == domain.TypeBoolean {
		trueLabel, falseLabel := q.BoolLabels()
		switch strings.ToLower(line) {
		case "t", "true", "y", "yes", strings.ToLower(trueLabel):
			return domain.BoolAnswer(true), nil
		case "f", "false", "n", "no", strings.ToLower(falseLabel):
			return domain.BoolAnswer(false), nil
		}
		return domain.Answer{}, fmt.Errorf("answer t or f (s to skip, u to undo, q to quit)")
	}

	label, err := strconv.Atoi(line)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("answer with a choice number (s to skip, u to undo, q to quit)")
	}
	if _, ok := q.Choices[label]; !ok {
		return domain.Answer{}, fmt.Errorf("choose one of %v", q.Labels())
	}
	return domain.ChoiceAnswer(label), nil
}

// demoDeck provides an offline question set for the demo source.
func demoDeck() []domain.RawQuestion {
	return []domain.RawQuestion{
		{Type: "multiple", Difficulty: "easy", Category: "Science: Computers", Text: "What does &quot;CPU&quot; stand for?",
			CorrectAnswer: "Central Processing Unit", IncorrectAnswers: []string{"Central Process Unit", "Computer Personal Unit", "Central Processor Unit"}},
		{Type: "boolean", Difficulty: "easy", Category: "Geography", Text: "The Nile is the longest river in Europe.",
			CorrectAnswer: "False", IncorrectAnswers: []string{"True"}},
		{Type: "multiple", Difficulty: "medium", Category: "History", Text: "In which year did the Berlin Wall fall?",
			CorrectAnswer: "1989", IncorrectAnswers: []string{"1987", "1991", "1985"}},
		{Type: "boolean", Difficulty: "medium", Category: "Science & Nature", Text: "Sound travels faster in water than in air.",
			CorrectAnswer: "True", IncorrectAnswers: []string{"False"}},
		{Type: "multiple", Difficulty: "hard", Category: "Mathematics", Text: "What is the smallest perfect number?",
			CorrectAnswer: "6", IncorrectAnswers: []string{"28", "12", "1"}},
		{Type: "multiple", Difficulty: "easy", Category: "Geography", Text: "What is the capital of Australia?",
			CorrectAnswer: "Canberra", IncorrectAnswers: []string{"Sydney", "Melbourne", "Perth"}},
		{Type: "boolean", Difficulty: "hard", Category: "History", Text: "The Great Fire of London happened in 1666.",
			CorrectAnswer: "True", IncorrectAnswers: []string{"False"}},
		{Type: "multiple", Difficulty: "medium", Category: "Science: Computers", Text: "Which company created the Go programming language?",
			CorrectAnswer: "Google", IncorrectAnswers: []string{"Microsoft", "Apple", "Mozilla"}},
		{Type: "boolean", Difficulty: "easy", Category: "Animals", Text: "A group of crows is called a murder.",
			CorrectAnswer: "True", IncorrectAnswers: []string{"False"}},
		{Type: "multiple", Difficulty: "hard", Category: "Art", Text: "Who painted &quot;The Garden of Earthly Delights&quot;?",
			CorrectAnswer: "Hieronymus Bosch", IncorrectAnswers: []string{"Pieter Bruegel", "Jan van Eyck", "Albrecht D&uuml;rer"}},
		{Type: "multiple", Difficulty: "easy", Category: "Mathematics", Text: "What is 7 multiplied by 8?",
			CorrectAnswer: "56", IncorrectAnswers: []string{"54", "48", "64"}},
		{Type: "boolean", Difficulty: "medium", Category: "Geography", Text: "Mount Kilimanjaro is in Kenya.",
			CorrectAnswer: "False", IncorrectAnswers: []string{"True"}},
		{Type: "multiple", Difficulty: "medium", Category: "Animals", Text: "What is the largest species of penguin?",
			CorrectAnswer: "Emperor penguin", IncorrectAnswers: []string{"King penguin", "Gentoo penguin", "Adelie penguin"}},
		{Type: "boolean", Difficulty: "hard", Category: "Science & Nature", Text: "Glass is a liquid at room temperature.",
			CorrectAnswer: "False", IncorrectAnswers: []string{"True"}},
	}
}
