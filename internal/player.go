package internal

type Player struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

// PlayerListEntry is one row of the playerList broadcast.
type PlayerListEntry struct {
	Id            string `json:"id"`
	Name          string `json:"name"`
	Score         int    `json:"score"`
	SelectedIndex *int   `json:"selectedIndex"`
}
