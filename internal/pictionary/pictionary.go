// Package pictionary implements the turn-based drawing and guessing game.
// Like the quiz module it keeps no state of its own; every method works on
// room.Draw and must be called with the room lock held.
package pictionary

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/scythe504/partyroom-backend/internal"
	"github.com/scythe504/partyroom-backend/internal/random"
	"github.com/scythe504/partyroom-backend/internal/words"
)

const (
	GuessReward = 100
	DrawReward  = 50

	DefaultRoundDuration = 60 * time.Second
	DefaultRoundCount    = 3

	MaxRoundDuration = 10 * time.Minute
	MaxRoundCount    = 50
)

var (
	ErrDrawerCannotGuess = errors.New("drawer cannot guess")
	ErrAlreadyGuessed    = errors.New("already guessed")
	ErrNotPlayer         = errors.New("not a player in this room")
	ErrNoWords           = errors.New("no words for the requested categories")
	ErrNoRound           = errors.New("no round in progress")
)

type Config struct {
	Categories    []string // empty means every category
	RoundDuration time.Duration
	RoundCount    int
}

// WithDefaults fills in zero or negative fields and caps oversized ones.
func (c Config) WithDefaults() Config {
	if c.RoundDuration <= 0 {
		c.RoundDuration = DefaultRoundDuration
	}
	c.RoundDuration = min(c.RoundDuration, MaxRoundDuration)
	if c.RoundCount <= 0 {
		c.RoundCount = DefaultRoundCount
	}
	c.RoundCount = min(c.RoundCount, MaxRoundCount)
	return c
}

type Module struct {
	bank *words.Bank
	rnd  random.Source
}

func New(bank *words.Bank, rnd random.Source) *Module {
	return &Module{bank: bank, rnd: rnd}
}

func (m *Module) Info() internal.GameInfo {
	cats := m.bank.Categories()
	categories := make([]internal.Category, 0, len(cats))
	for _, c := range cats {
		categories = append(categories, internal.Category{Id: c, Name: strings.ToUpper(c[:1]) + c[1:]})
	}
	return internal.GameInfo{
		Id:         internal.KindPictionary,
		Name:       "Pictionary",
		MinPlayers: 2,
		MaxPlayers: 12,
		Categories: categories,
	}
}

// Begin picks one word per round, uniformly and with replacement, from the
// union of the requested categories, and zeroes every score.
func (m *Module) Begin(room *internal.Room, cfg Config) error {
	cfg = cfg.WithDefaults()

	pool := m.bank.Pool(cfg.Categories)
	if len(pool) == 0 {
		return ErrNoWords
	}
	picked := make([]string, cfg.RoundCount)
	for i := range picked {
		picked[i] = random.Pick(m.rnd, pool)
	}

	state := &internal.DrawState{
		Phase:         internal.DrawWaiting,
		Words:         picked,
		TotalRounds:   cfg.RoundCount,
		RoundDuration: cfg.RoundDuration,
		Scores:        make(map[string]int, len(room.Players)),
		Guesses:       make(map[string]*internal.GuessRecord),
	}
	for id := range room.Players {
		state.Scores[id] = 0
	}
	room.Draw = state
	return nil
}

// StartRound sets up round CurrentRound. The drawer is the player at
// position CurrentRound mod len(players) in join order. It returns false,
// and marks the game over, when no rounds remain or nobody is left to draw.
func (m *Module) StartRound(room *internal.Room, now time.Time) bool {
	s := room.Draw
	if s == nil {
		return false
	}
	if s.CurrentRound >= s.TotalRounds || len(room.Order) == 0 {
		s.Phase = internal.DrawGameOver
		return false
	}

	s.Phase = internal.DrawDrawing
	s.CurrentWord = s.Words[s.CurrentRound]
	s.DrawerId = room.Order[s.CurrentRound%len(room.Order)]
	s.Guesses = make(map[string]*internal.GuessRecord)
	s.GuessOrder = nil
	s.Strokes = nil
	s.RoundStart = now
	return true
}

func (m *Module) CurrentWord(room *internal.Room) string {
	if room.Draw == nil {
		return ""
	}
	return room.Draw.CurrentWord
}

// MaskedWord is the current word as guessers see it, for example
// "_ _ _   _ _ _ _ _" for "ice cream".
func (m *Module) MaskedWord(room *internal.Room) string {
	return Mask(m.CurrentWord(room))
}

// Mask hides every letter of word behind an underscore. Spaces and
// punctuation stay visible; cells are separated by single spaces.
func Mask(word string) string {
	if word == "" {
		return ""
	}
	masked := make([]string, 0, len(word))
	for _, r := range word {
		switch {
		case r == ' ':
			masked = append(masked, " ")
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			masked = append(masked, "_")
		default:
			masked = append(masked, string(r))
		}
	}
	return strings.Join(masked, " ")
}

func (m *Module) DrawerID(room *internal.Room) string {
	if room.Draw == nil {
		return ""
	}
	return room.Draw.DrawerId
}

// SubmitGuess checks a player's guess against the current word. The drawer
// and players who already guessed this round are rejected without a record.
// Every correct guess pays the guesser GuessReward and the drawer DrawReward.
func (m *Module) SubmitGuess(room *internal.Room, playerId, text string, now time.Time) (bool, error) {
	s := room.Draw
	if s == nil || s.Phase != internal.DrawDrawing {
		return false, ErrNoRound
	}
	if !room.HasPlayer(playerId) {
		return false, ErrNotPlayer
	}
	if playerId == s.DrawerId {
		return false, ErrDrawerCannotGuess
	}
	if _, ok := s.Guesses[playerId]; ok {
		return false, ErrAlreadyGuessed
	}

	correct := normalize(text) == normalize(s.CurrentWord)
	s.Guesses[playerId] = &internal.GuessRecord{Word: text, Correct: correct, At: now}
	s.GuessOrder = append(s.GuessOrder, playerId)

	if correct {
		s.Scores[playerId] += GuessReward
		s.Scores[s.DrawerId] += DrawReward
	}
	return correct, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// AllGuessed is true once every player but the drawer has used their guess.
func (m *Module) AllGuessed(room *internal.Room) bool {
	s := room.Draw
	if s == nil {
		return false
	}
	guessers := 0
	for id := range room.Players {
		if id == s.DrawerId {
			continue
		}
		guessers++
		if _, ok := s.Guesses[id]; !ok {
			return false
		}
	}
	return guessers > 0
}

// Guesses is the round's guess list keyed by player id.
func (m *Module) Guesses(room *internal.Room) map[string]internal.GuessView {
	out := make(map[string]internal.GuessView)
	if room.Draw == nil {
		return out
	}
	for _, id := range room.Draw.GuessOrder {
		g := room.Draw.Guesses[id]
		name := id
		if p := room.Players[id]; p != nil {
			name = p.Name
		}
		out[id] = internal.GuessView{PlayerName: name, Word: g.Word, Correct: g.Correct}
	}
	return out
}

func (m *Module) RecordStroke(room *internal.Room, stroke internal.Stroke) {
	if room.Draw == nil || room.Draw.Phase != internal.DrawDrawing {
		return
	}
	room.Draw.Strokes = append(room.Draw.Strokes, stroke)
}

// Strokes returns a copy of the running round's stroke log.
func (m *Module) Strokes(room *internal.Room) []internal.Stroke {
	if room.Draw == nil {
		return nil
	}
	return append([]internal.Stroke(nil), room.Draw.Strokes...)
}

func (m *Module) NextRound(room *internal.Room) {
	if room.Draw == nil {
		return
	}
	room.Draw.CurrentRound++
	room.Draw.Phase = internal.DrawWaiting
}

func (m *Module) IsOver(room *internal.Room) bool {
	return room.Draw == nil || room.Draw.CurrentRound >= room.Draw.TotalRounds
}

// Scores returns a snapshot of the cumulative scores.
func (m *Module) Scores(room *internal.Room) map[string]int {
	out := make(map[string]int)
	if room.Draw == nil {
		return out
	}
	for id, s := range room.Draw.Scores {
		out[id] = s
	}
	return out
}

// Score returns a player's cumulative score.
func (m *Module) Score(room *internal.Room, playerId string) int {
	if room.Draw == nil {
		return 0
	}
	return room.Draw.Scores[playerId]
}
