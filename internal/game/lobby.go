// Package game is the session orchestrator: it resolves rooms, hands client
// events to the room's game rules, drives phase transitions with the room's
// phase timer and broadcasts the resulting views.
//
// Every handler holds the room lock for its whole run and timer callbacks
// take the same lock, so events for one room never overlap.
package game

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/scythe504/partyroom-backend/internal"
	"github.com/scythe504/partyroom-backend/internal/pictionary"
	"github.com/scythe504/partyroom-backend/internal/quiz"
)

// Sender delivers one outbound message to one connection. It must not block.
type Sender interface {
	Send(connId string, v any)
}

type Deps struct {
	Registry   *Registry
	Catalog    *Catalog
	Clock      internal.Clock
	Sender     Sender
	Quiz       QuizRules
	Pictionary DrawRules
	Logger     *zap.Logger

	// RevealDelay is how long a quiz reveal stays up.
	RevealDelay time.Duration
	// Intermission separates pictionary rounds; 0 starts the next one at once.
	Intermission time.Duration
	// FetchTimeout bounds question loading; 0 means no bound.
	FetchTimeout time.Duration
	// MaxPlayers caps rooms below the game's own limit when positive.
	MaxPlayers int
}

type Orchestrator struct {
	registry *Registry
	catalog  *Catalog
	clock    internal.Clock
	sender   Sender
	quiz     QuizRules
	draw     DrawRules
	logger   *zap.Logger

	revealDelay  time.Duration
	intermission time.Duration
	fetchTimeout time.Duration
	maxPlayers   int
}

func NewOrchestrator(d Deps) *Orchestrator {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		registry:     d.Registry,
		catalog:      d.Catalog,
		clock:        d.Clock,
		sender:       d.Sender,
		quiz:         d.Quiz,
		draw:         d.Pictionary,
		logger:       logger.Named("game"),
		revealDelay:  d.RevealDelay,
		intermission: d.Intermission,
		fetchTimeout: d.FetchTimeout,
		maxPlayers:   d.MaxPlayers,
	}
}

// Games is the discovery listing of every registered game kind.
func (o *Orchestrator) Games() []internal.GameInfo {
	return o.catalog.Games()
}

// =============================================================================
// LOBBY
// =============================================================================

// CreateRoom allocates a room; conn becomes its non-playing host.
func (o *Orchestrator) CreateRoom(conn string, kind internal.GameKind, hostName string) (string, error) {
	if _, ok := o.catalog.Info(kind); !ok {
		return "", ErrUnknownGameKind
	}

	room := o.registry.Create(kind, conn)
	room.Mu.Lock()
	room.HostName = hostName
	room.Mu.Unlock()

	o.logger.Info("room created",
		zap.String("room", room.Id),
		zap.String("kind", string(kind)),
		zap.String("host", conn),
	)
	return room.Id, nil
}

// JoinRoom adds conn as a player, or renames it if it already plays, and
// broadcasts the player list.
func (o *Orchestrator) JoinRoom(conn, roomId, name string) error {
	room, err := o.registry.Get(roomId)
	if err != nil {
		return err
	}

	room.Mu.Lock()
	defer room.Mu.Unlock()

	if room.Closed {
		return ErrRoomNotFound
	}
	if !room.HasPlayer(conn) && room.GetPlayerCount() >= o.roomCapacity(room) {
		return ErrRoomFull
	}
	if name = strings.TrimSpace(name); name == "" {
		name = "Player"
	}
	room.AddPlayer(conn, name)

	o.logger.Info("player joined",
		zap.String("room", room.Id),
		zap.String("player", conn),
		zap.Int("players", room.GetPlayerCount()),
	)

	o.broadcastPlayerList(room)

	if room.Kind == internal.KindPictionary && room.Phase == internal.PhaseDrawing {
		o.sender.Send(conn, internal.Message[internal.DrawingReplayData]{
			Type: internal.MsgDrawingReplay,
			Data: internal.DrawingReplayData{Strokes: o.draw.Strokes(room)},
		})
	}
	return nil
}

func (o *Orchestrator) roomCapacity(room *internal.Room) int {
	info, _ := o.catalog.Info(room.Kind)
	capacity := info.MaxPlayers
	if o.maxPlayers > 0 && (capacity <= 0 || o.maxPlayers < capacity) {
		capacity = o.maxPlayers
	}
	return capacity
}

// JoinableRoom returns a lobby room of the given kind with a free seat, or
// "" when there is none. An empty kind matches every game.
func (o *Orchestrator) JoinableRoom(kind internal.GameKind) string {
	rooms := o.registry.Rooms()
	slices.SortFunc(rooms, func(a, b *internal.Room) int { return strings.Compare(a.Id, b.Id) })

	for _, room := range rooms {
		if kind != "" && room.Kind != kind {
			continue
		}
		room.Mu.Lock()
		open := !room.Closed && room.Phase == internal.PhaseLobby &&
			room.GetPlayerCount() < o.roomCapacity(room)
		room.Mu.Unlock()

		if open {
			o.logger.Debug("found joinable room", zap.String("room", room.Id), zap.String("kind", string(room.Kind)))
			return room.Id
		}
	}
	return ""
}

// tooFewPlayers reports whether the room dropped below its game's minimum.
func (o *Orchestrator) tooFewPlayers(room *internal.Room) bool {
	info, _ := o.catalog.Info(room.Kind)
	return room.GetPlayerCount() < max(info.MinPlayers, 1)
}

// StartOptions are the host's settings for a game. Zero values select the
// game's defaults.
type StartOptions struct {
	Categories    []string
	RoundDuration time.Duration
	RoundCount    int
}

// StartGame begins the room's game. Only the host may start, from the lobby
// or after a finished game. Quiz questions are fetched without the room lock.
func (o *Orchestrator) StartGame(ctx context.Context, conn, roomId string, opts StartOptions) error {
	room, err := o.registry.Get(roomId)
	if err != nil {
		return err
	}

	room.Mu.Lock()
	defer room.Mu.Unlock()

	if room.Closed {
		return ErrRoomNotFound
	}
	if conn != room.HostId {
		return ErrNotHost
	}
	if room.Phase != internal.PhaseLobby && room.Phase != internal.PhaseEnded {
		return ErrGameInProgress
	}
	if o.tooFewPlayers(room) {
		return ErrNotEnoughPlayers
	}

	log := o.logger.With(zap.String("room", room.Id), zap.String("kind", string(room.Kind)))

	switch room.Kind {
	case internal.KindTrivia:
		cfg := quiz.Config{
			Categories:    quizCategories(opts.Categories),
			RoundDuration: opts.RoundDuration,
			QuestionCount: opts.RoundCount,
		}.WithDefaults()

		room.Phase = internal.PhaseLoading
		room.Mu.Unlock()
		questions := o.loadQuestions(ctx, cfg)
		room.Mu.Lock()

		if room.Closed {
			log.Info("room closed while loading questions")
			return nil
		}
		o.quiz.Begin(room, cfg, questions)
		log.Info("quiz started",
			zap.Int("questions", len(questions)),
			zap.Int("count", cfg.QuestionCount),
			zap.Duration("round", cfg.RoundDuration),
		)
		o.askQuestion(room)

	case internal.KindPictionary:
		cfg := pictionary.Config{
			Categories:    opts.Categories,
			RoundDuration: opts.RoundDuration,
			RoundCount:    opts.RoundCount,
		}
		if err := o.draw.Begin(room, cfg); err != nil {
			return err
		}
		log.Info("pictionary started", zap.Int("rounds", room.Draw.TotalRounds))
		o.startRound(room)

	default:
		return ErrUnknownGameKind
	}
	return nil
}

func (o *Orchestrator) loadQuestions(ctx context.Context, cfg quiz.Config) []internal.Question {
	if o.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.fetchTimeout)
		defer cancel()
	}
	return o.quiz.Load(ctx, cfg.Categories, cfg.QuestionCount)
}

// quizCategories keeps the numeric category ids.
func quizCategories(raw []string) []int {
	var cats []int
	for _, c := range raw {
		if n, err := strconv.Atoi(strings.TrimSpace(c)); err == nil && n > 0 {
			cats = append(cats, n)
		}
	}
	return cats
}

// =============================================================================
// DISCONNECT
// =============================================================================

// Disconnect removes conn from every room it belongs to. Rooms left without
// members are closed and dropped from the registry.
func (o *Orchestrator) Disconnect(conn string) {
	for _, room := range o.registry.Rooms() {
		if o.leave(room, conn) {
			o.registry.Remove(room.Id)
			o.logger.Info("room removed", zap.String("room", room.Id))
		}
	}
}

// leave reports whether the room emptied and must be removed.
func (o *Orchestrator) leave(room *internal.Room, conn string) bool {
	room.Mu.Lock()
	defer room.Mu.Unlock()

	if room.Closed || !room.Members[conn] {
		return false
	}
	wasPlayer := room.RemoveMember(conn)

	if len(room.Members) == 0 {
		room.Timer.Disarm()
		room.Closed = true
		return true
	}
	if !wasPlayer {
		return false
	}

	o.logger.Info("player left",
		zap.String("room", room.Id),
		zap.String("player", conn),
		zap.Int("players", room.GetPlayerCount()),
	)
	o.broadcastPlayerList(room)

	switch room.Phase {
	case internal.PhaseQuestion:
		if room.GetPlayerCount() == 0 {
			o.endQuiz(room)
		} else if o.quiz.AllAnswered(room) {
			o.finishQuestion(room)
		}
	case internal.PhaseDrawing:
		if room.GetPlayerCount() == 0 {
			o.endDraw(room)
		} else if conn == o.draw.DrawerID(room) || o.draw.AllGuessed(room) || o.tooFewPlayers(room) {
			o.endRound(room)
		}
	case internal.PhaseIntermission:
		if o.tooFewPlayers(room) {
			o.endDraw(room)
		}
	}
	return false
}

// =============================================================================
// BROADCAST
// =============================================================================

// broadcast sends msg to every room member. Callers hold room.Mu.
func (o *Orchestrator) broadcast(room *internal.Room, msg any) {
	for _, id := range room.MemberIds() {
		o.sender.Send(id, msg)
	}
}

// UserError is the message shown to a client for err, without the wrapping
// context added to sentinel errors.
func UserError(err error) string {
	for _, sentinel := range []error{ErrRoomNotFound, ErrUnknownGameKind} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}
