package game

import (
	"go.uber.org/zap"

	"github.com/scythe504/partyroom-backend/internal"
)

// =============================================================================
// PICTIONARY FLOW
//
// lobby -> drawing -> intermission -> drawing ... -> ended
// All functions below run with room.Mu held.
// =============================================================================

// Draw relays a stroke to every member of the room. Strokes drawn during a
// pictionary round are kept for late joiners.
func (o *Orchestrator) Draw(conn, roomId string, stroke internal.Stroke) error {
	room, err := o.registry.Get(roomId)
	if err != nil {
		o.logger.Debug("stroke for unknown room", zap.String("room", roomId), zap.String("conn", conn))
		return err
	}

	room.Mu.Lock()
	defer room.Mu.Unlock()

	if room.Closed {
		return nil
	}
	if room.Kind == internal.KindPictionary {
		o.draw.RecordStroke(room, stroke)
	}
	o.broadcast(room, internal.Message[internal.DrawingUpdateData]{
		Type: internal.MsgDrawingUpdate,
		Data: internal.DrawingUpdateData{Stroke: stroke},
	})
	return nil
}

// startRound starts the next round, or ends the game when none is left.
func (o *Orchestrator) startRound(room *internal.Room) {
	if !o.draw.StartRound(room, o.clock.Now()) {
		o.endDraw(room)
		return
	}
	room.Phase = internal.PhaseDrawing

	s := room.Draw
	drawerId := o.draw.DrawerID(room)
	drawerName := "Unknown"
	if p := room.Players[drawerId]; p != nil {
		drawerName = p.Name
	}

	o.logger.Debug("round started",
		zap.String("room", room.Id),
		zap.Int("round", s.CurrentRound),
		zap.String("drawer", drawerId),
	)
	o.broadcast(room, internal.Message[internal.RoundStartData]{
		Type: internal.MsgRoundStart,
		Data: internal.RoundStartData{
			DrawerId:        drawerId,
			DrawerName:      drawerName,
			Hint:            o.draw.MaskedWord(room),
			RoundDurationMs: s.RoundDuration.Milliseconds(),
			Round:           s.CurrentRound + 1,
			TotalRounds:     s.TotalRounds,
		},
	})
	o.sender.Send(drawerId, internal.Message[internal.YourWordData]{
		Type: internal.MsgYourWord,
		Data: internal.YourWordData{Word: o.draw.CurrentWord(room)},
	})

	room.Timer.Arm(s.RoundDuration, func() {
		o.logger.Debug("round deadline", zap.String("room", room.Id))
		o.endRound(room)
	})
}

// endRound closes the running round. The deadline, the last guess and
// players leaving all land here; only the first one does anything. A room
// left below the game's minimum ends instead of starting another round.
func (o *Orchestrator) endRound(room *internal.Room) {
	if room.Phase != internal.PhaseDrawing {
		return
	}
	room.Timer.Disarm()

	o.broadcast(room, internal.Message[internal.RoundEndData]{
		Type: internal.MsgRoundEnd,
		Data: internal.RoundEndData{
			Word:     o.draw.CurrentWord(room),
			DrawerId: o.draw.DrawerID(room),
			Scores:   o.draw.Scores(room),
		},
	})

	o.draw.NextRound(room)
	if o.draw.IsOver(room) || o.tooFewPlayers(room) {
		o.endDraw(room)
		return
	}
	if o.intermission <= 0 {
		o.startRound(room)
		return
	}

	room.Phase = internal.PhaseIntermission
	room.Timer.Arm(o.intermission, func() {
		if room.Phase == internal.PhaseIntermission {
			o.startRound(room)
		}
	})
}

func (o *Orchestrator) endDraw(room *internal.Room) {
	room.Timer.Disarm()
	room.Phase = internal.PhaseEnded
	if room.Draw != nil {
		room.Draw.Phase = internal.DrawGameOver
	}

	scores := o.draw.Scores(room)
	o.logger.Info("pictionary ended", zap.String("room", room.Id))
	o.broadcast(room, internal.Message[internal.GameOverData]{
		Type: internal.MsgGameOver,
		Data: internal.GameOverData{Scores: scores},
	})
}
