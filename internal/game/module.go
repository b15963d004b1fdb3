package game

import (
	"context"
	"time"

	"github.com/scythe504/partyroom-backend/internal"
	"github.com/scythe504/partyroom-backend/internal/pictionary"
	"github.com/scythe504/partyroom-backend/internal/quiz"
)

// Module is what every game kind registers with the catalog.
type Module interface {
	Info() internal.GameInfo
}

// QuizRules is the timed quiz game. Every method except Load and Info is
// called with the room lock held.
type QuizRules interface {
	Module
	Load(ctx context.Context, categories []int, count int) []internal.Question
	Begin(room *internal.Room, cfg quiz.Config, questions []internal.Question)
	CurrentQuestion(room *internal.Room) (internal.Question, bool)
	Submit(room *internal.Room, playerId string, optionIndex int, elapsed time.Duration) bool
	AllAnswered(room *internal.Room) bool
	Finalize(room *internal.Room) (quiz.Reveal, bool)
	Advance(room *internal.Room) (internal.Question, bool)
	IsOver(room *internal.Room) bool
	EndSummary(room *internal.Room) quiz.Summary
	Selected(room *internal.Room, playerId string) *int
	Score(room *internal.Room, playerId string) int
}

// DrawRules is the drawing and guessing game, called with the room lock held.
type DrawRules interface {
	Module
	Begin(room *internal.Room, cfg pictionary.Config) error
	StartRound(room *internal.Room, now time.Time) bool
	CurrentWord(room *internal.Room) string
	MaskedWord(room *internal.Room) string
	DrawerID(room *internal.Room) string
	SubmitGuess(room *internal.Room, playerId, text string, now time.Time) (bool, error)
	AllGuessed(room *internal.Room) bool
	Guesses(room *internal.Room) map[string]internal.GuessView
	RecordStroke(room *internal.Room, stroke internal.Stroke)
	Strokes(room *internal.Room) []internal.Stroke
	NextRound(room *internal.Room)
	IsOver(room *internal.Room) bool
	Scores(room *internal.Room) map[string]int
	Score(room *internal.Room, playerId string) int
}

var (
	_ QuizRules = (*quiz.Module)(nil)
	_ DrawRules = (*pictionary.Module)(nil)
)

// Catalog lists the registered game kinds in registration order.
type Catalog struct {
	modules map[internal.GameKind]Module
	order   []internal.GameKind
}

func NewCatalog(modules ...Module) *Catalog {
	c := &Catalog{modules: make(map[internal.GameKind]Module, len(modules))}
	for _, m := range modules {
		kind := m.Info().Id
		if _, dup := c.modules[kind]; !dup {
			c.order = append(c.order, kind)
		}
		c.modules[kind] = m
	}
	return c
}

func (c *Catalog) Info(kind internal.GameKind) (internal.GameInfo, bool) {
	m, ok := c.modules[kind]
	if !ok {
		return internal.GameInfo{}, false
	}
	return m.Info(), true
}

// Games returns the discovery listing.
func (c *Catalog) Games() []internal.GameInfo {
	games := make([]internal.GameInfo, 0, len(c.order))
	for _, kind := range c.order {
		games = append(games, c.modules[kind].Info())
	}
	return games
}
