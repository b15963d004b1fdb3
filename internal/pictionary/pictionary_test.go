package pictionary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/scythe504/partyroom-backend/internal"
	"github.com/scythe504/partyroom-backend/internal/random"
	"github.com/scythe504/partyroom-backend/internal/testutil"
	"github.com/scythe504/partyroom-backend/internal/words"
)

var now = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func newModule(lists map[string][]string) *Module {
	return New(words.NewBank(lists), random.NewSeeded(3))
}

func newRoom(players ...string) *internal.Room {
	room := internal.NewRoom("ROOM01", internal.KindPictionary, "host", testutil.NewFakeClock())
	for _, p := range players {
		room.AddPlayer(p, "name-"+p)
	}
	return room
}

func TestPictionary_GuessScenario(t *testing.T) {
	m := newModule(map[string][]string{"animals": {"cat"}})
	room := newRoom("D", "G1", "G2")
	require.NoError(t, m.Begin(room, Config{RoundCount: 1}))
	require.True(t, m.StartRound(room, now))

	assert.Equal(t, "cat", m.CurrentWord(room))
	assert.Equal(t, "D", m.DrawerID(room))

	correct, err := m.SubmitGuess(room, "G1", "Cat ", now)
	require.NoError(t, err)
	assert.True(t, correct)
	assert.Equal(t, map[string]int{"D": 50, "G1": 100, "G2": 0}, m.Scores(room))

	_, err = m.SubmitGuess(room, "G1", "cat", now)
	assert.ErrorIs(t, err, ErrAlreadyGuessed)
	assert.Equal(t, 100, m.Score(room, "G1"))
	assert.Equal(t, 50, m.Score(room, "D"))
}

func TestPictionary_DrawerRewardedPerCorrectGuesser(t *testing.T) {
	m := newModule(map[string][]string{"animals": {"dog"}})
	room := newRoom("D", "G1", "G2", "G3")
	require.NoError(t, m.Begin(room, Config{RoundCount: 1}))
	m.StartRound(room, now)

	for _, g := range []string{"G1", "G2", "G3"} {
		ok, err := m.SubmitGuess(room, g, "DOG", now)
		require.NoError(t, err)
		require.True(t, ok)
	}
	assert.Equal(t, 3*DrawReward, m.Score(room, "D"))
	assert.True(t, m.AllGuessed(room))
}

func TestPictionary_RejectedGuesses(t *testing.T) {
	m := newModule(map[string][]string{"animals": {"cat"}})
	room := newRoom("D", "G1")

	_, err := m.SubmitGuess(room, "G1", "cat", now)
	assert.ErrorIs(t, err, ErrNoRound)

	require.NoError(t, m.Begin(room, Config{RoundCount: 1}))
	m.StartRound(room, now)

	_, err = m.SubmitGuess(room, "D", "cat", now)
	assert.ErrorIs(t, err, ErrDrawerCannotGuess)
	assert.Equal(t, 0, m.Score(room, "D"))
	assert.Empty(t, m.Guesses(room))

	_, err = m.SubmitGuess(room, "host", "cat", now)
	assert.ErrorIs(t, err, ErrNotPlayer)
}

func TestPictionary_WrongGuessUsesTheTurn(t *testing.T) {
	m := newModule(map[string][]string{"animals": {"cat"}})
	room := newRoom("D", "G1")
	require.NoError(t, m.Begin(room, Config{RoundCount: 1}))
	m.StartRound(room, now)

	ok, err := m.SubmitGuess(room, "G1", "dog", now)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = m.SubmitGuess(room, "G1", "cat", now)
	assert.ErrorIs(t, err, ErrAlreadyGuessed)
	assert.Equal(t, map[string]internal.GuessView{
		"G1": {PlayerName: "name-G1", Word: "dog", Correct: false},
	}, m.Guesses(room))
	assert.True(t, m.AllGuessed(room))
}

func TestPictionary_StrokesClearedPerRound(t *testing.T) {
	m := newModule(map[string][]string{"animals": {"cat"}})
	room := newRoom("D", "G1")
	require.NoError(t, m.Begin(room, Config{RoundCount: 2}))

	m.RecordStroke(room, internal.Stroke{ToX: 1})
	assert.Empty(t, m.Strokes(room), "strokes outside a round are dropped")

	m.StartRound(room, now)
	m.RecordStroke(room, internal.Stroke{ToX: 1, Color: "#000"})
	m.RecordStroke(room, internal.Stroke{ToX: 2, Color: "#000"})
	assert.Len(t, m.Strokes(room), 2)

	m.NextRound(room)
	m.StartRound(room, now)
	assert.Empty(t, m.Strokes(room))
	assert.Equal(t, "G1", m.DrawerID(room))
}

func TestPictionary_IsOverAfterConfiguredRounds(t *testing.T) {
	m := newModule(map[string][]string{"animals": {"cat", "dog"}})
	room := newRoom("a", "b")
	require.NoError(t, m.Begin(room, Config{RoundCount: 3}))

	for r := range 3 {
		assert.False(t, m.IsOver(room), "round %d", r)
		require.True(t, m.StartRound(room, now))
		m.NextRound(room)
	}
	assert.True(t, m.IsOver(room))
	assert.False(t, m.StartRound(room, now))
	assert.Equal(t, internal.DrawGameOver, room.Draw.Phase)
}

func TestPictionary_StartRoundWithoutPlayers(t *testing.T) {
	m := newModule(map[string][]string{"animals": {"cat"}})
	room := newRoom()
	require.NoError(t, m.Begin(room, Config{}))

	assert.False(t, m.StartRound(room, now))
	assert.Equal(t, internal.DrawGameOver, room.Draw.Phase)
}

func TestPictionary_BeginWithoutWords(t *testing.T) {
	m := newModule(nil)
	assert.ErrorIs(t, m.Begin(newRoom("a"), Config{}), ErrNoWords)
}

func TestPictionary_BeginDrawsFromRequestedCategories(t *testing.T) {
	m := newModule(map[string][]string{"animals": {"cat", "dog"}, "food": {"pizza"}})
	room := newRoom("a", "b")
	require.NoError(t, m.Begin(room, Config{Categories: []string{"food"}, RoundCount: 4}))

	assert.Equal(t, []string{"pizza", "pizza", "pizza", "pizza"}, room.Draw.Words)
	assert.Equal(t, DefaultRoundDuration, room.Draw.RoundDuration)
}

func TestPictionary_DrawerRotation(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 8).Draw(rt, "players")
		rounds := rapid.IntRange(1, 12).Draw(rt, "rounds")
		ids := make([]string, n)
		for i := range ids {
			ids[i] = string(rune('a' + i))
		}

		m := newModule(map[string][]string{"animals": {"cat", "dog", "owl"}})
		room := newRoom(ids...)
		require.NoError(rt, m.Begin(room, Config{RoundCount: rounds}))

		for r := 0; r < rounds; r++ {
			require.True(rt, m.StartRound(room, now))
			assert.Equal(rt, ids[r%n], m.DrawerID(room))
			m.NextRound(room)
		}
		assert.True(rt, m.IsOver(room))
	})
}

func TestPictionary_ScoresNeverDecrease(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ids := []string{"a", "b", "c"}
		m := newModule(map[string][]string{"x": {"sun", "moon"}})
		room := newRoom(ids...)
		require.NoError(rt, m.Begin(room, Config{RoundCount: 4}))

		prev := map[string]int{}
		for m.StartRound(room, now) {
			for range rapid.IntRange(0, 6).Draw(rt, "guesses") {
				guesser := rapid.SampledFrom(ids).Draw(rt, "guesser")
				word := rapid.SampledFrom([]string{"sun", "moon", " SUN", "star"}).Draw(rt, "word")
				_, _ = m.SubmitGuess(room, guesser, word, now)
			}
			for _, id := range ids {
				require.GreaterOrEqual(rt, m.Score(room, id), prev[id])
				prev[id] = m.Score(room, id)
			}
			m.NextRound(room)
		}
	})
}

func TestModule_Info(t *testing.T) {
	info := newModule(map[string][]string{"animals": {"cat"}}).Info()
	assert.Equal(t, internal.KindPictionary, info.Id)
	assert.Equal(t, []internal.Category{{Id: "animals", Name: "Animals"}}, info.Categories)
}

func TestMask(t *testing.T) {
	assert.Equal(t, "", Mask(""))
	assert.Equal(t, "_ _ _", Mask("cat"))
	assert.Equal(t, "_ _ _   _ _ _ _ _", Mask("ice cream"))
	assert.Equal(t, "_ _ _ - _ _ _", Mask("tic-tac"))
}

func TestConfig_WithDefaults(t *testing.T) {
	cfg := Config{}.WithDefaults()
	assert.Equal(t, DefaultRoundDuration, cfg.RoundDuration)
	assert.Equal(t, DefaultRoundCount, cfg.RoundCount)

	cfg = Config{RoundDuration: 100 * time.Hour, RoundCount: 1 << 62}.WithDefaults()
	assert.Equal(t, MaxRoundDuration, cfg.RoundDuration)
	assert.Equal(t, MaxRoundCount, cfg.RoundCount)
}

func TestPictionary_BeginCapsHugeRoundCount(t *testing.T) {
	m := newModule(map[string][]string{"animals": {"cat"}})
	room := newRoom("D", "G")

	require.NotPanics(t, func() {
		require.NoError(t, m.Begin(room, Config{RoundCount: 1 << 62}))
	})
	assert.Equal(t, MaxRoundCount, room.Draw.TotalRounds)
	assert.Len(t, room.Draw.Words, MaxRoundCount)
}
