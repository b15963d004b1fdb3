package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scythe504/partyroom-backend/internal"
)

func TestFlexInt(t *testing.T) {
	cases := []struct {
		raw  string
		want flexInt
	}{
		{`12`, flexInt{Value: 12, Set: true}},
		{`"30"`, flexInt{Value: 30, Set: true}},
		{`" 7 "`, flexInt{Value: 7, Set: true}},
		{`2.9`, flexInt{Value: 2, Set: true}},
		{`"soon"`, flexInt{}},
		{`null`, flexInt{}},
		{`true`, flexInt{}},
		{`{}`, flexInt{}},
		{`1e300`, flexInt{}},
		{`"-1e10"`, flexInt{}},
		{`"Inf"`, flexInt{}},
		{`18446744074`, flexInt{}},
	}
	for _, c := range cases {
		t.Run(c.raw, func(t *testing.T) {
			var got flexInt
			require.NoError(t, json.Unmarshal([]byte(c.raw), &got))
			assert.Equal(t, c.want, got)
		})
	}
}

func TestFlexInt_Or(t *testing.T) {
	set := flexInt{Value: 5, Set: true}
	assert.Equal(t, 5, flexInt{}.or(set))
	assert.Equal(t, 0, flexInt{Value: 0, Set: true}.or(set))
	assert.Equal(t, 0, flexInt{}.or())
}

func TestFlexList(t *testing.T) {
	cases := []struct {
		raw  string
		want flexList
	}{
		{`[9, 10]`, flexList{"9", "10"}},
		{`["animals", "movies"]`, flexList{"animals", "movies"}},
		{`"9, 10,,11"`, flexList{"9", "10", "11"}},
		{`21`, flexList{"21"}},
		{`[" ", 12]`, flexList{"12"}},
		{`null`, nil},
		{`""`, nil},
	}
	for _, c := range cases {
		t.Run(c.raw, func(t *testing.T) {
			var got flexList
			require.NoError(t, json.Unmarshal([]byte(c.raw), &got))
			assert.Equal(t, c.want, got)
		})
	}
}

func TestStartGamePayload_Aliases(t *testing.T) {
	var p startGamePayload
	require.NoError(t, json.Unmarshal([]byte(`{"roomId":"abc","categories":"animals","maxTime":"45","questionCount":4}`), &p))

	assert.Equal(t, flexList{"animals"}, p.Categories)
	assert.Equal(t, 45, p.RoundDurationSec.or(p.MaxTime))
	assert.Equal(t, 4, p.RoundCount.or(p.QuestionCount))
}

func TestDrawPayload_FlatStroke(t *testing.T) {
	var p drawPayload
	require.NoError(t, json.Unmarshal([]byte(`{"roomId":"R","fromX":1,"fromY":2,"toX":3,"toY":4,"color":"#000","width":5}`), &p))
	assert.Equal(t, "R", p.RoomId)
	assert.Equal(t, internal.Stroke{FromX: 1, FromY: 2, ToX: 3, ToY: 4, Color: "#000", Width: 5}, p.Stroke)
}

func TestGameKind(t *testing.T) {
	assert.Equal(t, internal.KindTrivia, gameKind("", "example-trivia"))
	assert.Equal(t, internal.KindPictionary, gameKind(" Pictionary ", ""))
	assert.Equal(t, internal.KindTrivia, gameKind("trivia", "pictionary"))
	assert.Equal(t, internal.GameKind(""), gameKind("", ""))
}

func TestNormalizeRoomId(t *testing.T) {
	assert.Equal(t, "AB12CD", normalizeRoomId(" ab12cd\n"))
}

func TestRoundDuration(t *testing.T) {
	assert.Equal(t, 45*time.Second, roundDuration(45))
	assert.Equal(t, time.Hour, roundDuration(maxRoundSeconds))
	assert.Zero(t, roundDuration(maxRoundSeconds+1))
	assert.Zero(t, roundDuration(0))
	assert.Zero(t, roundDuration(-5))
}

func TestStartGamePayload_OversizedDurationFallsBack(t *testing.T) {
	for _, raw := range []string{
		`{"roundDurationSec":18446744074}`,
		`{"roundDurationSec":"9223372037"}`,
		`{"maxTime":7200}`,
	} {
		var p startGamePayload
		require.NoError(t, json.Unmarshal([]byte(raw), &p), raw)
		assert.Zero(t, roundDuration(p.RoundDurationSec.or(p.MaxTime)), raw)
	}
}
