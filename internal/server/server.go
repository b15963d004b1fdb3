// Package server exposes the HTTP surface: game discovery, health and the
// websocket endpoint.
package server

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/scythe504/partyroom-backend/internal"
)

// Lobby is the read side of the orchestrator used by the HTTP handlers.
type Lobby interface {
	Games() []internal.GameInfo
	JoinableRoom(kind internal.GameKind) string
}

type Server struct {
	lobby  Lobby
	ws     http.Handler
	logger *zap.Logger
}

func NewServer(lobby Lobby, ws http.Handler, logger *zap.Logger) *Server {
	return &Server{lobby: lobby, ws: ws, logger: logger.Named("http")}
}

// Response wraps REST payloads with server timing.
type Response struct {
	StatusCode    int   `json:"status_code"`
	RespStartTime int64 `json:"resp_time_start_ms"`
	RespEndTime   int64 `json:"resp_time_end_ms"`
	NetRespTime   int64 `json:"net_resp_time_ms"`
	Data          any   `json:"data"`
}
