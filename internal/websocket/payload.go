package websocket

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/scythe504/partyroom-backend/internal"
)

// flexInt accepts a JSON number or a numeric string. Anything else, and any
// number outside the int32 range, decodes to an unset value rather than an
// error.
type flexInt struct {
	Value int
	Set   bool
}

func (f *flexInt) UnmarshalJSON(b []byte) error {
	*f = flexInt{}
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}

	var num float64
	if err := json.Unmarshal(b, &num); err == nil {
		*f = toFlexInt(num)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if n, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*f = toFlexInt(n)
		}
	}
	return nil
}

func toFlexInt(num float64) flexInt {
	if math.IsNaN(num) || num < math.MinInt32 || num > math.MaxInt32 {
		return flexInt{}
	}
	return flexInt{Value: int(num), Set: true}
}

// or returns the first set value among f and alts, or 0.
func (f flexInt) or(alts ...flexInt) int {
	if f.Set {
		return f.Value
	}
	for _, a := range alts {
		if a.Set {
			return a.Value
		}
	}
	return 0
}

// flexList accepts an array of strings or numbers, a comma separated string,
// or a single number. Blank entries are dropped.
type flexList []string

func (l *flexList) UnmarshalJSON(b []byte) error {
	*l = nil

	var items []json.RawMessage
	if err := json.Unmarshal(b, &items); err == nil {
		for _, item := range items {
			*l = append(*l, scalar(item)...)
		}
		return nil
	}
	*l = scalar(b)
	return nil
}

func scalar(b json.RawMessage) []string {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		var out []string
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err == nil {
		return []string{num.String()}
	}
	return nil
}

type createRoomPayload struct {
	GameKind string `json:"gameKind"`
	GameId   string `json:"gameId"`
	HostName string `json:"hostName"`
}

type joinRoomPayload struct {
	RoomId     string `json:"roomId"`
	PlayerName string `json:"playerName"`
}

type startGamePayload struct {
	RoomId           string   `json:"roomId"`
	Categories       flexList `json:"categories"`
	RoundDurationSec flexInt  `json:"roundDurationSec"`
	MaxTime          flexInt  `json:"maxTime"`
	RoundCount       flexInt  `json:"roundCount"`
	QuestionCount    flexInt  `json:"questionCount"`
}

type answerPayload struct {
	RoomId      string  `json:"roomId"`
	PlayerId    string  `json:"playerId"`
	OptionIndex flexInt `json:"optionIndex"`
	AnswerIndex flexInt `json:"answerIndex"`
}

type guessPayload struct {
	RoomId      string `json:"roomId"`
	PlayerId    string `json:"playerId"`
	Text        string `json:"text"`
	GuessedWord string `json:"guessedWord"`
}

type drawPayload struct {
	RoomId string `json:"roomId"`
	internal.Stroke
}

// maxRoundSeconds bounds client supplied round durations.
const maxRoundSeconds = 3600

// roundDuration converts seconds to a duration. Values outside
// (0, maxRoundSeconds] give 0 so the game default applies.
func roundDuration(secs int) time.Duration {
	if secs <= 0 || secs > maxRoundSeconds {
		return 0
	}
	return time.Duration(secs) * time.Second
}

func normalizeRoomId(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}
