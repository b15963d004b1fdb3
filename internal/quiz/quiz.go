// Package quiz implements the rules of the timed trivia game. The Module is
// stateless: every operation reads and writes the room's QuizState and must be
// called with the room lock held, except Load which never touches a room.
package quiz

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/scythe504/partyroom-backend/internal"
	"github.com/scythe504/partyroom-backend/internal/random"
)

const (
	BasePoints   = 100
	TimeBonusMax = 150
	FastestBonus = 100

	DefaultCategory      = 9
	DefaultRoundDuration = 15 * time.Second
	DefaultQuestionCount = 10

	// MaxQuestionCount is also the most Open Trivia DB serves per request.
	MaxQuestionCount = 50
	MaxRoundDuration = 10 * time.Minute
)

// Config is what the host picks when starting a quiz.
type Config struct {
	Categories    []int
	RoundDuration time.Duration
	QuestionCount int
}

// WithDefaults fills in zero or invalid fields and caps oversized ones.
func (c Config) WithDefaults() Config {
	if len(c.Categories) == 0 {
		c.Categories = []int{DefaultCategory}
	}
	if c.RoundDuration <= 0 {
		c.RoundDuration = DefaultRoundDuration
	}
	c.RoundDuration = min(c.RoundDuration, MaxRoundDuration)
	if c.QuestionCount <= 0 {
		c.QuestionCount = DefaultQuestionCount
	}
	c.QuestionCount = min(c.QuestionCount, MaxQuestionCount)
	return c
}

type Module struct {
	provider Provider
	rnd      random.Source
	logger   *zap.Logger
}

func New(provider Provider, rnd random.Source, logger *zap.Logger) *Module {
	return &Module{provider: provider, rnd: rnd, logger: logger.Named("quiz")}
}

func (m *Module) Info() internal.GameInfo {
	return internal.GameInfo{
		Id:         internal.KindTrivia,
		Name:       "Trivia",
		MinPlayers: 1,
		MaxPlayers: 20,
		Categories: Categories,
	}
}

// Load fetches count questions for every category and shuffles them together.
// A category whose fetch fails contributes nothing.
func (m *Module) Load(ctx context.Context, categories []int, count int) []internal.Question {
	var questions []internal.Question
	for _, cat := range categories {
		qs, err := m.provider.Fetch(ctx, cat, count)
		if err != nil {
			m.logger.Warn("skipping category", zap.Int("category", cat), zap.Error(err))
			continue
		}
		questions = append(questions, qs...)
	}
	random.Shuffle(m.rnd, questions)

	m.logger.Debug("questions loaded",
		zap.Ints("categories", categories),
		zap.Int("count", len(questions)),
	)
	return questions
}

// Begin resets the room's quiz to the first question.
func (m *Module) Begin(room *internal.Room, cfg Config, questions []internal.Question) {
	cfg = cfg.WithDefaults()

	state := &internal.QuizState{
		Questions:     questions,
		CurrentIndex:  0,
		QuestionCount: cfg.QuestionCount,
		RoundDuration: cfg.RoundDuration,
		Scores:        make(map[string]int, len(room.Players)),
		Stats:         make(map[string]*internal.PlayerStats, len(room.Players)),
		Answers:       make(map[string]*internal.AnswerRecord),
	}
	for id := range room.Players {
		state.Scores[id] = 0
		state.Stats[id] = &internal.PlayerStats{}
	}
	room.Quiz = state
}

// CurrentQuestion returns the active question, or false once the configured
// count is reached or the loaded questions ran out.
func (m *Module) CurrentQuestion(room *internal.Room) (internal.Question, bool) {
	s := room.Quiz
	if s == nil || s.CurrentIndex >= s.QuestionCount || s.CurrentIndex >= len(s.Questions) {
		return internal.Question{}, false
	}
	return s.Questions[s.CurrentIndex], true
}

// Submit records a player's answer and awards its points immediately.
// It reports whether the answer was recorded; repeats are ignored.
func (m *Module) Submit(room *internal.Room, playerId string, optionIndex int, elapsed time.Duration) bool {
	s := room.Quiz
	if s == nil || s.Finalized || !room.HasPlayer(playerId) {
		return false
	}
	if _, answered := s.Answers[playerId]; answered {
		return false
	}
	q, ok := m.CurrentQuestion(room)
	if !ok {
		return false
	}

	correct := optionIndex == q.CorrectIndex
	points := 0
	if correct {
		points = Points(s.RoundDuration, elapsed)
	}

	s.Answers[playerId] = &internal.AnswerRecord{
		OptionIndex:       optionIndex,
		Elapsed:           elapsed,
		Correct:           correct,
		ProvisionalPoints: points,
	}
	s.AnswerOrder = append(s.AnswerOrder, playerId)
	s.Scores[playerId] += points

	stats := s.Stats[playerId]
	if stats == nil {
		stats = &internal.PlayerStats{}
		s.Stats[playerId] = stats
	}
	stats.Answered++
	stats.ResponseTimes = append(stats.ResponseTimes, elapsed.Milliseconds())
	var sum int64
	for _, rt := range stats.ResponseTimes {
		sum += rt
	}
	stats.AvgResponseMs = int64(math.Round(float64(sum) / float64(len(stats.ResponseTimes))))

	if correct {
		stats.Correct++
		stats.Streak++
		stats.MaxStreak = max(stats.MaxStreak, stats.Streak)
	} else {
		stats.Streak = 0
	}
	return true
}

// Points is the score for a correct answer given after elapsed.
func Points(roundDuration, elapsed time.Duration) int {
	total := roundDuration.Milliseconds()
	if total <= 0 {
		return BasePoints
	}
	remaining := max(0, total-elapsed.Milliseconds())
	ratio := math.Max(0, math.Min(1, float64(remaining)/float64(total)))
	return BasePoints + int(math.Floor(ratio*TimeBonusMax))
}

// AllAnswered is true when every current player answered the active question.
func (m *Module) AllAnswered(room *internal.Room) bool {
	s := room.Quiz
	if s == nil || len(room.Players) == 0 {
		return false
	}
	for id := range room.Players {
		if _, ok := s.Answers[id]; !ok {
			return false
		}
	}
	return true
}

// Selection is one player's answer as shown in the reveal.
type Selection struct {
	Name              string  `json:"name"`
	OptionIndex       int     `json:"optionIndex"`
	Correct           bool    `json:"correct"`
	TimeSeconds       float64 `json:"timeSeconds"`
	ProvisionalPoints int     `json:"provisionalPoints"`
}

// Reveal is the view broadcast when a question closes.
type Reveal struct {
	CorrectIndex int                  `json:"correctIndex"`
	Selections   map[string]Selection `json:"selections"`
	FastestId    string               `json:"fastestId,omitempty"`
	Scores       map[string]int       `json:"scores"`
}

// Finalize closes the active question. The fastest submitter, right or wrong,
// earns FastestBonus. It returns false if there is no active question or it
// was already finalized.
func (m *Module) Finalize(room *internal.Room) (Reveal, bool) {
	s := room.Quiz
	q, ok := m.CurrentQuestion(room)
	if !ok || s.Finalized {
		return Reveal{}, false
	}
	s.Finalized = true

	reveal := Reveal{
		CorrectIndex: q.CorrectIndex,
		Selections:   make(map[string]Selection, len(s.Answers)),
	}
	if len(s.Answers) == 0 {
		reveal.Scores = copyScores(s.Scores)
		return reveal, true
	}

	fastest := ""
	var best time.Duration
	for _, id := range s.AnswerOrder {
		ans := s.Answers[id]
		if fastest == "" || ans.Elapsed < best {
			fastest, best = id, ans.Elapsed
		}
	}
	s.Scores[fastest] += FastestBonus
	reveal.FastestId = fastest

	for _, id := range s.AnswerOrder {
		ans := s.Answers[id]
		name := id
		if p := room.Players[id]; p != nil {
			name = p.Name
		}
		reveal.Selections[id] = Selection{
			Name:              name,
			OptionIndex:       ans.OptionIndex,
			Correct:           ans.OptionIndex == q.CorrectIndex,
			TimeSeconds:       math.Round(float64(ans.Elapsed.Milliseconds())/100) / 10,
			ProvisionalPoints: ans.ProvisionalPoints,
		}
	}
	reveal.Scores = copyScores(s.Scores)
	return reveal, true
}

// Advance clears the answers and moves to the next question.
func (m *Module) Advance(room *internal.Room) (internal.Question, bool) {
	s := room.Quiz
	if s == nil {
		return internal.Question{}, false
	}
	s.Answers = make(map[string]*internal.AnswerRecord)
	s.AnswerOrder = nil
	s.Finalized = false
	s.CurrentIndex++
	return m.CurrentQuestion(room)
}

func (m *Module) IsOver(room *internal.Room) bool {
	s := room.Quiz
	return s == nil || s.CurrentIndex >= s.QuestionCount
}

// Selected returns the option a player picked for the active question.
func (m *Module) Selected(room *internal.Room, playerId string) *int {
	if room.Quiz == nil {
		return nil
	}
	if ans, ok := room.Quiz.Answers[playerId]; ok {
		idx := ans.OptionIndex
		return &idx
	}
	return nil
}

// Score returns a player's cumulative score.
func (m *Module) Score(room *internal.Room, playerId string) int {
	if room.Quiz == nil {
		return 0
	}
	return room.Quiz.Scores[playerId]
}

func copyScores(scores map[string]int) map[string]int {
	out := make(map[string]int, len(scores))
	for id, s := range scores {
		out[id] = s
	}
	return out
}
