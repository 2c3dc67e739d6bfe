// Package suggester implements the automated match-suggestion engine: given a
// snapshot of inscriptions, player availability, match history and the week's
// court slots, it greedily pairs players into match proposals that respect
// category, zone, availability and anti-rematch constraints while balancing
// how many matches each player has played.
//
// The engine is a pure, synchronous computation over in-memory data. It never
// fetches anything and keeps no state between runs; identical inputs produce
// identical output, including ordering.
package suggester

import (
	"sort"

	"github.com/charmbracelet/log"
)

// Generate runs the full pipeline: build the player pool and the slot queue,
// then fill slots in two passes. Pass 1 never proposes a rematch; pass 2
// allows rematches for whatever slots and players are left, so forced
// rematches only appear once every fresh pairing across the pool has been
// exhausted.
func Generate(in Inputs) Result {
	pool := buildPlayerPool(in)
	queue := buildSlotQueue(in.Slots, in.Programmed)

	// Priority order: ascending matches played, ties broken by first
	// inscription order. The sort is stable so the tie-break is auditable.
	players := make([]*PlayerProfile, 0, len(pool))
	seen := make(map[string]bool, len(pool))
	for _, ins := range in.Inscriptions {
		if p, ok := pool[ins.PlayerID]; ok && !seen[ins.PlayerID] {
			players = append(players, p)
			seen[ins.PlayerID] = true
		}
	}
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].MatchesPlayed < players[j].MatchesPlayed
	})

	assigned := make(map[string]bool)
	proposals := fillPass(queue, players, assigned, false)

	if remainingSlots(queue) > 0 && len(players)-len(assigned) >= 2 {
		proposals = append(proposals, fillPass(queue, players, assigned, true)...)
	}

	categories := make(map[string]string, len(in.Categories))
	for _, c := range in.Categories {
		categories[c.ID] = c.Name
	}
	for i := range proposals {
		proposals[i].PlayerAName = in.Players[proposals[i].PlayerAID].Name
		proposals[i].PlayerBName = in.Players[proposals[i].PlayerBID].Name
		proposals[i].CategoryName = categories[proposals[i].CategoryID]
	}

	var odd []OddPlayer
	for _, p := range players {
		if assigned[p.ID] {
			continue
		}
		reason := ReasonNoOpponent
		if !p.AvailableThisWeek {
			reason = ReasonNoAvailability
		}
		odd = append(odd, OddPlayer{
			PlayerID:     p.ID,
			PlayerName:   in.Players[p.ID].Name,
			CategoryName: categories[p.CategoryID],
			Reason:       reason,
		})
	}

	log.Info("Generated match suggestions",
		"players", len(players),
		"slots", len(queue),
		"proposals", len(proposals),
		"odd", len(odd),
	)
	return Result{Proposals: proposals, OddPlayers: odd}
}

func remainingSlots(queue []*CourtSlot) int {
	open := 0
	for _, s := range queue {
		if !s.Filled {
			open++
		}
	}
	return open
}
