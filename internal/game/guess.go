package game

import (
	"errors"

	"go.uber.org/zap"

	"github.com/scythe504/partyroom-backend/internal"
	"github.com/scythe504/partyroom-backend/internal/pictionary"
)

// =============================================================================
// GUESS HANDLING
// =============================================================================

// SubmitGuess checks a pictionary guess and answers the sender with a
// guessResult. A correct guess is broadcast with the updated guess list and
// scores; the round ends early once every guesser has guessed.
func (o *Orchestrator) SubmitGuess(conn, roomId, playerId, text string) error {
	room, err := o.registry.Get(roomId)
	if err != nil {
		return err
	}

	room.Mu.Lock()
	defer room.Mu.Unlock()

	if room.Closed {
		return ErrRoomNotFound
	}

	var correct bool
	if room.Kind != internal.KindPictionary {
		err = pictionary.ErrNoRound
	} else {
		correct, err = o.draw.SubmitGuess(room, playerId, text, o.clock.Now())
	}

	if err != nil {
		if !errors.Is(err, pictionary.ErrAlreadyGuessed) && !errors.Is(err, pictionary.ErrDrawerCannotGuess) {
			o.logger.Debug("guess rejected", zap.String("room", room.Id), zap.String("player", playerId), zap.Error(err))
		}
		o.sender.Send(conn, internal.Message[internal.GuessResultData]{
			Type: internal.MsgGuessResult,
			Data: internal.GuessResultData{Correct: false, Message: err.Error()},
		})
		return nil
	}

	o.sender.Send(conn, internal.Message[internal.GuessResultData]{
		Type: internal.MsgGuessResult,
		Data: internal.GuessResultData{Correct: correct},
	})

	if correct {
		o.logger.Debug("correct guess", zap.String("room", room.Id), zap.String("player", playerId))
		o.broadcast(room, internal.Message[internal.GuessSubmittedData]{
			Type: internal.MsgGuessSubmitted,
			Data: internal.GuessSubmittedData{Guesses: o.draw.Guesses(room)},
		})
		o.broadcastPlayerList(room)
	}

	if o.draw.AllGuessed(room) {
		o.endRound(room)
	}
	return nil
}
