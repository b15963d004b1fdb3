package game

import (
	"go.uber.org/zap"

	"github.com/scythe504/partyroom-backend/internal"
)

// =============================================================================
// QUIZ FLOW
//
// lobby -> loading -> question -> reveal -> question ... -> ended
// All functions below run with room.Mu held.
// =============================================================================

// SubmitAnswer records a quiz answer and closes the question early once
// every player has answered. Answers outside a running question are ignored.
func (o *Orchestrator) SubmitAnswer(conn, roomId, playerId string, optionIndex int) error {
	room, err := o.registry.Get(roomId)
	if err != nil {
		o.logger.Debug("answer for unknown room", zap.String("room", roomId), zap.String("conn", conn))
		return err
	}

	room.Mu.Lock()
	defer room.Mu.Unlock()

	if room.Kind != internal.KindTrivia || room.Phase != internal.PhaseQuestion {
		return nil
	}

	elapsed := o.clock.Now().Sub(room.Quiz.QuestionStart)
	if !o.quiz.Submit(room, playerId, optionIndex, elapsed) {
		return nil
	}
	o.logger.Debug("answer recorded",
		zap.String("room", room.Id),
		zap.String("player", playerId),
		zap.Int("option", optionIndex),
		zap.Duration("elapsed", elapsed),
	)

	o.broadcastPlayerList(room)

	if o.quiz.AllAnswered(room) {
		o.finishQuestion(room)
	}
	return nil
}

// askQuestion broadcasts the current question and arms its deadline, or ends
// the game when no question is left.
func (o *Orchestrator) askQuestion(room *internal.Room) {
	q, ok := o.quiz.CurrentQuestion(room)
	if !ok {
		o.endQuiz(room)
		return
	}

	s := room.Quiz
	room.Phase = internal.PhaseQuestion
	s.QuestionStart = o.clock.Now()

	o.broadcast(room, internal.Message[internal.NewQuestionData]{
		Type: internal.MsgNewQuestion,
		Data: internal.NewQuestionData{
			Question:        q.Text,
			Options:         q.Options,
			RoundDurationMs: s.RoundDuration.Milliseconds(),
			Index:           s.CurrentIndex,
			Total:           min(s.QuestionCount, len(s.Questions)),
		},
	})
	o.broadcastPlayerList(room)

	room.Timer.Arm(s.RoundDuration, func() {
		o.logger.Debug("question deadline", zap.String("room", room.Id), zap.Int("index", s.CurrentIndex))
		o.finishQuestion(room)
	})
}

// finishQuestion reveals the current question. The deadline and the
// all-answered path both land here; whichever comes second finds the
// question finalized and does nothing.
func (o *Orchestrator) finishQuestion(room *internal.Room) {
	if room.Phase != internal.PhaseQuestion {
		return
	}
	room.Timer.Disarm()

	reveal, ok := o.quiz.Finalize(room)
	if !ok {
		return
	}
	room.Phase = internal.PhaseReveal

	o.logger.Debug("question revealed",
		zap.String("room", room.Id),
		zap.Int("index", room.Quiz.CurrentIndex),
		zap.String("fastest", reveal.FastestId),
	)
	o.broadcast(room, internal.Message[any]{Type: internal.MsgReveal, Data: reveal})

	room.Timer.Arm(o.revealDelay, func() {
		o.nextQuestion(room)
	})
}

func (o *Orchestrator) nextQuestion(room *internal.Room) {
	if room.Phase != internal.PhaseReveal {
		return
	}
	o.quiz.Advance(room)
	if o.quiz.IsOver(room) {
		o.endQuiz(room)
		return
	}
	o.askQuestion(room)
}

func (o *Orchestrator) endQuiz(room *internal.Room) {
	room.Timer.Disarm()
	room.Phase = internal.PhaseEnded

	summary := o.quiz.EndSummary(room)
	o.logger.Info("quiz ended", zap.String("room", room.Id), zap.Int("players", len(summary.Rankings)))
	o.broadcast(room, internal.Message[any]{Type: internal.MsgGameEnd, Data: summary})
}
