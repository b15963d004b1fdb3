package quiz

import (
	"fmt"
	"math"
	"sort"

	"github.com/scythe504/partyroom-backend/internal"
)

type Trait string

const (
	TraitChampion     Trait = "Champion"
	TraitSharpshooter Trait = "Sharpshooter"
	TraitSpeedDemon   Trait = "Speed Demon"
	TraitOnFire       Trait = "On Fire"
	TraitLearning     Trait = "Learning"
	TraitConsistent   Trait = "Consistent"
	TraitThoughtful   Trait = "Thoughtful"
	TraitGamer        Trait = "Gamer"
)

var traitIcons = map[Trait]string{
	TraitChampion:     "🏆",
	TraitSharpshooter: "🎯",
	TraitSpeedDemon:   "⚡",
	TraitOnFire:       "🔥",
	TraitLearning:     "🎓",
	TraitConsistent:   "💪",
	TraitThoughtful:   "⚙️",
	TraitGamer:        "🎮",
}

type StatsView struct {
	Correct         int   `json:"correct"`
	Total           int   `json:"total"`
	Accuracy        int   `json:"accuracy"` // percent
	AvgResponseTime int64 `json:"avgResponseTime"`
	MaxStreak       int   `json:"maxStreak"`
}

type Award struct {
	Trait       Trait     `json:"trait"`
	Icon        string    `json:"icon"`
	Description string    `json:"description"`
	Rank        int       `json:"rank"`  // position in the ascending reveal order
	Place       int       `json:"place"` // 1 is the winner
	Score       int       `json:"score"`
	Stats       StatsView `json:"stats"`
}

type Ranking struct {
	Id          string    `json:"id"`
	Name        string    `json:"name"`
	Score       int       `json:"score"`
	Trait       Trait     `json:"trait"`
	Description string    `json:"description"`
	Stats       StatsView `json:"stats"`
}

// Summary is the gameEnd view.
type Summary struct {
	// Rankings run from last place to the winner.
	Rankings []Ranking        `json:"rankings"`
	Traits   map[string]Award `json:"traits"`
}

type ranked struct {
	id       string
	name     string
	score    int
	stats    internal.PlayerStats
	accuracy float64
}

// EndSummary ranks the players by ascending score and gives each one trait.
func (m *Module) EndSummary(room *internal.Room) Summary {
	s := room.Quiz
	players := room.OrderedPlayers()

	entries := make([]ranked, 0, len(players))
	for _, p := range players {
		e := ranked{id: p.Id, name: p.Name}
		if s != nil {
			e.score = s.Scores[p.Id]
			if st := s.Stats[p.Id]; st != nil {
				e.stats = *st
			}
		}
		if e.stats.Answered > 0 {
			e.accuracy = float64(e.stats.Correct) / float64(e.stats.Answered)
		}
		entries = append(entries, e)
	}

	// Leaders are picked in join order; strict comparisons keep the first on ties.
	bestAccuracy, bestAccuracyId := -1.0, ""
	fastestAvg, fastestId := int64(math.MaxInt64), ""
	longestStreak, streakId := -1, ""
	for _, e := range entries {
		if e.accuracy > bestAccuracy {
			bestAccuracy, bestAccuracyId = e.accuracy, e.id
		}
		if e.stats.Answered > 0 && e.stats.AvgResponseMs < fastestAvg {
			fastestAvg, fastestId = e.stats.AvgResponseMs, e.id
		}
		if e.stats.MaxStreak > longestStreak {
			longestStreak, streakId = e.stats.MaxStreak, e.id
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].score < entries[j].score
	})

	summary := Summary{
		Rankings: make([]Ranking, 0, len(entries)),
		Traits:   make(map[string]Award, len(entries)),
	}
	for i, e := range entries {
		accuracyPct := int(math.Round(e.accuracy * 100))
		var trait Trait
		var desc string

		switch {
		case i == len(entries)-1:
			trait = TraitChampion
			desc = fmt.Sprintf("%d/%d correct", e.stats.Correct, e.stats.Answered)
		case e.id == bestAccuracyId && bestAccuracy > 0.6:
			trait = TraitSharpshooter
			desc = fmt.Sprintf("%d%% accuracy", accuracyPct)
		case e.id == fastestId:
			trait = TraitSpeedDemon
			desc = fmt.Sprintf("%dms avg response", fastestAvg)
		case e.id == streakId && longestStreak >= 3:
			trait = TraitOnFire
			desc = fmt.Sprintf("%d question streak", longestStreak)
		case e.stats.Correct == 0:
			trait = TraitLearning
			desc = "Keep practicing!"
		case e.accuracy >= 0.7:
			trait = TraitConsistent
			desc = fmt.Sprintf("%d%% accuracy", accuracyPct)
		case fastestId != "" && e.stats.Answered > 0 && e.stats.AvgResponseMs < fastestAvg+500:
			trait = TraitThoughtful
			desc = "Quality over speed"
		default:
			trait = TraitGamer
			desc = fmt.Sprintf("%d correct answers", e.stats.Correct)
		}

		stats := StatsView{
			Correct:         e.stats.Correct,
			Total:           e.stats.Answered,
			Accuracy:        accuracyPct,
			AvgResponseTime: e.stats.AvgResponseMs,
			MaxStreak:       e.stats.MaxStreak,
		}
		summary.Traits[e.id] = Award{
			Trait:       trait,
			Icon:        traitIcons[trait],
			Description: desc,
			Rank:        i + 1,
			Place:       len(entries) - i,
			Score:       e.score,
			Stats:       stats,
		}
		summary.Rankings = append(summary.Rankings, Ranking{
			Id:          e.id,
			Name:        e.name,
			Score:       e.score,
			Trait:       trait,
			Description: desc,
			Stats:       stats,
		})
	}
	return summary
}
