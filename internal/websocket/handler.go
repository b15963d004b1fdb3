package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/scythe504/partyroom-backend/internal"
	"github.com/scythe504/partyroom-backend/internal/game"
)

// Sessions is the orchestrator as seen by the transport.
type Sessions interface {
	CreateRoom(conn string, kind internal.GameKind, hostName string) (string, error)
	JoinRoom(conn, roomId, name string) error
	StartGame(ctx context.Context, conn, roomId string, opts game.StartOptions) error
	SubmitAnswer(conn, roomId, playerId string, optionIndex int) error
	SubmitGuess(conn, roomId, playerId, text string) error
	Draw(conn, roomId string, stroke internal.Stroke) error
	Disconnect(conn string)
}

var _ Sessions = (*game.Orchestrator)(nil)

// Handler upgrades HTTP requests and serves one connection per request.
type Handler struct {
	hub      *Hub
	sessions Sessions
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

func NewHandler(hub *Hub, sessions Sessions, logger *zap.Logger) *Handler {
	return &Handler{
		hub:      hub,
		sessions: sessions,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: logger.Named("ws"),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", zap.Error(err))
		return
	}

	c := newClient(uuid.NewString(), h.hub, conn, h.logger)
	h.hub.register(c)
	go c.writePump()

	c.logger.Info("client connected", zap.String("remote", r.RemoteAddr))
	h.hub.Send(c.id, internal.Message[internal.ConnectedData]{
		Type: internal.MsgConnected,
		Data: internal.ConnectedData{Id: c.id},
	})

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	c.readPump(ctx, h.route)

	h.sessions.Disconnect(c.id)
	h.hub.unregister(c)
	c.logger.Info("client disconnected")
}

// route dispatches one inbound message. Errors go back to the sender only;
// nothing here ends the connection.
func (h *Handler) route(ctx context.Context, c *Client, env internal.Envelope) {
	switch env.Type {
	case internal.MsgCreateRoom:
		var p createRoomPayload
		if !h.decode(c, env, &p) {
			return
		}
		roomId, err := h.sessions.CreateRoom(c.id, gameKind(p.GameKind, p.GameId), p.HostName)
		if err != nil {
			h.sendError(c, err)
			return
		}
		h.hub.Send(c.id, internal.Message[internal.RoomCreatedData]{
			Type: internal.MsgRoomCreated,
			Data: internal.RoomCreatedData{RoomId: roomId},
		})

	case internal.MsgJoinRoom:
		var p joinRoomPayload
		if !h.decode(c, env, &p) {
			return
		}
		result := internal.JoinResultData{Success: true}
		if err := h.sessions.JoinRoom(c.id, normalizeRoomId(p.RoomId), p.PlayerName); err != nil {
			result = internal.JoinResultData{Success: false, Error: game.UserError(err)}
		}
		h.hub.Send(c.id, internal.Message[internal.JoinResultData]{Type: internal.MsgJoinResult, Data: result})

	case internal.MsgStartGame:
		var p startGamePayload
		if !h.decode(c, env, &p) {
			return
		}
		opts := game.StartOptions{
			Categories:    p.Categories,
			RoundDuration: roundDuration(p.RoundDurationSec.or(p.MaxTime)),
			RoundCount:    p.RoundCount.or(p.QuestionCount),
		}
		if err := h.sessions.StartGame(ctx, c.id, normalizeRoomId(p.RoomId), opts); err != nil {
			h.sendError(c, err)
		}

	case internal.MsgPlayerAnswer:
		var p answerPayload
		if !h.decode(c, env, &p) {
			return
		}
		if !p.OptionIndex.Set && !p.AnswerIndex.Set {
			c.logger.Debug("answer without an option")
			return
		}
		_ = h.sessions.SubmitAnswer(c.id, normalizeRoomId(p.RoomId), playerId(p.PlayerId, c.id), p.OptionIndex.or(p.AnswerIndex))

	case internal.MsgSubmitGuess:
		var p guessPayload
		if !h.decode(c, env, &p) {
			return
		}
		text := p.Text
		if text == "" {
			text = p.GuessedWord
		}
		if err := h.sessions.SubmitGuess(c.id, normalizeRoomId(p.RoomId), playerId(p.PlayerId, c.id), text); err != nil {
			h.sendError(c, err)
		}

	case internal.MsgDraw:
		var p drawPayload
		if !h.decode(c, env, &p) {
			return
		}
		_ = h.sessions.Draw(c.id, normalizeRoomId(p.RoomId), p.Stroke)
	default:
		c.logger.Debug("unknown message type", zap.String("type", env.Type))
	}
}

func (h *Handler) decode(c *Client, env internal.Envelope, v any) bool {
	if len(env.Data) == 0 {
		return true
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		c.logger.Debug("malformed payload", zap.String("type", env.Type), zap.Error(err))
		return false
	}
	return true
}

func (h *Handler) sendError(c *Client, err error) {
	if !errors.Is(err, game.ErrRoomNotFound) {
		c.logger.Debug("request rejected", zap.Error(err))
	}
	h.hub.Send(c.id, internal.Message[internal.ErrorData]{
		Type: internal.MsgError,
		Data: internal.ErrorData{Error: game.UserError(err)},
	})
}

// gameKind resolves the requested kind, accepting the legacy "example-trivia" id.
func gameKind(kind, legacy string) internal.GameKind {
	if kind == "" {
		kind = legacy
	}
	kind = strings.ToLower(strings.TrimSpace(kind))
	if kind == "example-trivia" {
		return internal.KindTrivia
	}
	return internal.GameKind(kind)
}

// playerId is the id the client claims, defaulting to its own connection.
func playerId(claimed, conn string) string {
	if claimed = strings.TrimSpace(claimed); claimed != "" {
		return claimed
	}
	return conn
}
