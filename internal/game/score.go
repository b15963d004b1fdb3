package game

import "github.com/scythe504/partyroom-backend/internal"

// playerList is the playerList view: players in join order with their
// cumulative score and, during a quiz question, the option they picked.
func (o *Orchestrator) playerList(room *internal.Room) []internal.PlayerListEntry {
	players := room.OrderedPlayers()
	list := make([]internal.PlayerListEntry, 0, len(players))
	for _, p := range players {
		entry := internal.PlayerListEntry{Id: p.Id, Name: p.Name}
		switch room.Kind {
		case internal.KindTrivia:
			entry.Score = o.quiz.Score(room, p.Id)
			entry.SelectedIndex = o.quiz.Selected(room, p.Id)
		case internal.KindPictionary:
			entry.Score = o.draw.Score(room, p.Id)
		}
		list = append(list, entry)
	}
	return list
}

func (o *Orchestrator) broadcastPlayerList(room *internal.Room) {
	o.broadcast(room, internal.Message[[]internal.PlayerListEntry]{
		Type: internal.MsgPlayerList,
		Data: o.playerList(room),
	})
}
