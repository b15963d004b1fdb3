package internal

import "slices"

// Methods (Room Struct). Callers hold room.Mu.

func (r *Room) GetPlayerByIndex(index int) *Player {
	if index < 0 || index >= len(r.Order) {
		return nil
	}

	return r.Players[r.Order[index]]
}

func (r *Room) GetPlayerCount() int {
	return len(r.Players)
}

func (r *Room) HasPlayer(id string) bool {
	_, ok := r.Players[id]
	return ok
}

// AddPlayer adds a player at the end of the join order, or renames an existing one.
func (r *Room) AddPlayer(id, name string) *Player {
	if p, ok := r.Players[id]; ok {
		p.Name = name
		return p
	}

	p := &Player{Id: id, Name: name}
	r.Players[id] = p
	r.Order = append(r.Order, id)
	r.Members[id] = true
	return p
}

// RemoveMember drops a connection from the room and reports whether it was a player.
func (r *Room) RemoveMember(id string) bool {
	delete(r.Members, id)

	if _, ok := r.Players[id]; !ok {
		return false
	}
	delete(r.Players, id)
	r.Order = slices.DeleteFunc(r.Order, func(s string) bool {
		return s == id
	})
	return true
}

// OrderedPlayers returns the players in join order.
func (r *Room) OrderedPlayers() []*Player {
	players := make([]*Player, 0, len(r.Order))
	for _, id := range r.Order {
		if p := r.Players[id]; p != nil {
			players = append(players, p)
		}
	}
	return players
}

// MemberIds returns every connection that receives room broadcasts, sorted.
func (r *Room) MemberIds() []string {
	ids := make([]string, 0, len(r.Members))
	for id := range r.Members {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
