package internal

import (
	"sync"
	"time"
)

type GameKind string

const (
	KindTrivia     GameKind = "trivia"
	KindPictionary GameKind = "pictionary"
)

type RoomPhase string

const (
	PhaseLobby        RoomPhase = "lobby"
	PhaseLoading      RoomPhase = "loading"
	PhaseQuestion     RoomPhase = "question"
	PhaseReveal       RoomPhase = "reveal"
	PhaseDrawing      RoomPhase = "drawing"
	PhaseIntermission RoomPhase = "intermission"
	PhaseEnded        RoomPhase = "ended"
)

// Category is one selectable topic of a game kind.
type Category struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

// GameInfo is the registration metadata served by the discovery endpoint.
type GameInfo struct {
	Id         GameKind   `json:"id"`
	Name       string     `json:"name"`
	MinPlayers int        `json:"minPlayers"`
	MaxPlayers int        `json:"maxPlayers"`
	Categories []Category `json:"categories"`
}

// =============================================================================
// QUIZ STATE
// =============================================================================

type Question struct {
	Text         string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
}

type AnswerRecord struct {
	OptionIndex       int
	Elapsed           time.Duration
	Correct           bool
	ProvisionalPoints int
}

type PlayerStats struct {
	Answered      int
	Correct       int
	Streak        int
	MaxStreak     int
	ResponseTimes []int64 // milliseconds
	AvgResponseMs int64
}

type QuizState struct {
	Questions     []Question
	CurrentIndex  int
	QuestionCount int
	RoundDuration time.Duration
	QuestionStart time.Time

	Scores      map[string]int
	Stats       map[string]*PlayerStats
	Answers     map[string]*AnswerRecord
	AnswerOrder []string // submission order, breaks fastest-answer ties

	// Finalized is set once the current question has been revealed.
	Finalized bool
}

// =============================================================================
// DRAWING STATE
// =============================================================================

type DrawPhase string

const (
	DrawWaiting  DrawPhase = "waiting"
	DrawDrawing  DrawPhase = "drawing"
	DrawGameOver DrawPhase = "gameover"
)

// Stroke is one line segment drawn on the shared canvas.
type Stroke struct {
	FromX float64 `json:"fromX"`
	FromY float64 `json:"fromY"`
	ToX   float64 `json:"toX"`
	ToY   float64 `json:"toY"`
	Color string  `json:"color"`
	Width float64 `json:"width"`
}

type GuessRecord struct {
	Word    string
	Correct bool
	At      time.Time
}

type DrawState struct {
	Phase         DrawPhase
	Words         []string
	CurrentRound  int
	TotalRounds   int
	CurrentWord   string
	DrawerId      string
	RoundStart    time.Time
	RoundDuration time.Duration

	Scores     map[string]int
	Guesses    map[string]*GuessRecord
	GuessOrder []string

	// Strokes of the running round, replayed to late joiners.
	Strokes []Stroke
}

// =============================================================================
// ROOM
// =============================================================================

type Room struct {
	Id       string
	Kind     GameKind
	HostId   string
	HostName string

	// Players in stable join order; the host is a member but never a player.
	Players map[string]*Player
	Order   []string
	Members map[string]bool

	// Game State
	Phase RoomPhase
	Quiz  *QuizState
	Draw  *DrawState

	// Timer guards its slot with Mu.
	Timer *PhaseTimer

	// Closed is set when the room has been removed from the registry.
	Closed bool

	// Concurrency control
	Mu sync.Mutex `json:"-"`
}

// NewRoom builds an empty room in the lobby phase whose phase timer runs on clock.
func NewRoom(id string, kind GameKind, hostId string, clock Clock) *Room {
	room := &Room{
		Id:      id,
		Kind:    kind,
		HostId:  hostId,
		Players: make(map[string]*Player),
		Order:   make([]string, 0),
		Members: map[string]bool{hostId: true},
		Phase:   PhaseLobby,
	}
	room.Timer = NewPhaseTimer(clock, &room.Mu)
	return room
}
