package game

import "errors"

var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrUnknownGameKind  = errors.New("no such game")
	ErrRoomFull         = errors.New("room is full")
	ErrNotHost          = errors.New("only the host can start the game")
	ErrNotEnoughPlayers = errors.New("not enough players")
	ErrGameInProgress   = errors.New("game already in progress")
	ErrNotPlayer        = errors.New("not a player in this room")
)
