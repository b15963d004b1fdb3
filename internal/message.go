package internal

import "encoding/json"

type Message[T any] struct {
	Type string `json:"type"`
	Data T      `json:"data"`
}

// Envelope is an inbound message whose payload is decoded per type.
type Envelope = Message[json.RawMessage]

// Client -> server message types.
const (
	MsgCreateRoom   = "createRoom"
	MsgJoinRoom     = "joinRoom"
	MsgStartGame    = "startGame"
	MsgPlayerAnswer = "playerAnswer"
	MsgSubmitGuess  = "submitGuess"
	MsgDraw         = "draw"
)

// Server -> client message types.
const (
	MsgConnected      = "connected"
	MsgRoomCreated    = "roomCreated"
	MsgJoinResult     = "joinResult"
	MsgError          = "error"
	MsgPlayerList     = "playerList"
	MsgNewQuestion    = "newQuestion"
	MsgReveal         = "reveal"
	MsgGameEnd        = "gameEnd"
	MsgRoundStart     = "roundStart"
	MsgYourWord       = "yourWord"
	MsgDrawingUpdate  = "drawingUpdate"
	MsgDrawingReplay  = "drawingReplay"
	MsgGuessResult    = "guessResult"
	MsgGuessSubmitted = "guessSubmitted"
	MsgRoundEnd       = "roundEnd"
	MsgGameOver       = "gameOver"
)

type ConnectedData struct {
	Id string `json:"id"`
}

type RoomCreatedData struct {
	RoomId string `json:"roomId"`
}

type JoinResultData struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type ErrorData struct {
	Error string `json:"error"`
}

type NewQuestionData struct {
	Question        string   `json:"question"`
	Options         []string `json:"options"`
	RoundDurationMs int64    `json:"roundDurationMs"`
	Index           int      `json:"index"`
	Total           int      `json:"total"`
}

type RoundStartData struct {
	DrawerId        string `json:"drawerId"`
	DrawerName      string `json:"drawerName"`
	Hint            string `json:"hint"`
	RoundDurationMs int64  `json:"roundDurationMs"`
	Round           int    `json:"round"`
	TotalRounds     int    `json:"totalRounds"`
}

type YourWordData struct {
	Word string `json:"word"`
}

type DrawingUpdateData struct {
	Stroke Stroke `json:"stroke"`
}

type DrawingReplayData struct {
	Strokes []Stroke `json:"strokes"`
}

type GuessResultData struct {
	Correct bool   `json:"correct"`
	Message string `json:"message,omitempty"`
}

type GuessView struct {
	PlayerName string `json:"playerName"`
	Word       string `json:"word"`
	Correct    bool   `json:"correct"`
}

type GuessSubmittedData struct {
	Guesses map[string]GuessView `json:"guesses"`
}

type RoundEndData struct {
	Word     string         `json:"word"`
	DrawerId string         `json:"drawerId"`
	Scores   map[string]int `json:"scores"`
}

type GameOverData struct {
	Scores map[string]int `json:"scores"`
}
