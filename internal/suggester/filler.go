package suggester

// fillPass walks the slot queue once and assigns a pair of compatible players
// to every open slot it can. The assigned set is shared state threaded
// through both passes: players marked here stay off-limits for the rest of
// the run. Players must already be stable-sorted ascending by matches played;
// the scan order is the priority order.
//
// With allowRematch false, only pairs that have never faced each other are
// produced. With allowRematch true, a previously-faced opponent is accepted
// as a fallback when no fresh opponent exists.
func fillPass(slots []*CourtSlot, players []*PlayerProfile, assigned map[string]bool, allowRematch bool) []MatchProposal {
	var proposals []MatchProposal

	for _, slot := range slots {
		if slot.Filled {
			continue
		}

		playerA := pickPlayerA(slot, players, assigned)
		if playerA == nil {
			continue
		}

		playerB := pickOpponent(slot, players, assigned, playerA, allowRematch)
		if playerB == nil {
			continue
		}

		_, rematch := playerA.Opponents[playerB.ID]
		proposals = append(proposals, MatchProposal{
			TournamentID: playerA.TournamentID,
			Venue:        slot.Venue,
			Date:         slot.Date,
			Time:         slot.Time,
			Court:        slot.Court,
			PlayerAID:    playerA.ID,
			PlayerBID:    playerB.ID,
			CategoryID:   playerA.CategoryID,
			IsRematch:    rematch,
		})
		assigned[playerA.ID] = true
		assigned[playerB.ID] = true
		slot.Filled = true
	}

	return proposals
}

// pickPlayerA returns the first unassigned player available for the slot, or
// nil. First match wins: the list is already in priority order.
func pickPlayerA(slot *CourtSlot, players []*PlayerProfile, assigned map[string]bool) *PlayerProfile {
	for _, p := range players {
		if assigned[p.ID] {
			continue
		}
		if p.isAvailableFor(slot) {
			return p
		}
	}
	return nil
}

// pickOpponent returns the first unassigned player available for the slot who
// matches playerA's category and zone and has not faced them before. When
// allowRematch is set and no fresh opponent exists, the first compatible
// candidate overall is returned instead.
func pickOpponent(slot *CourtSlot, players []*PlayerProfile, assigned map[string]bool, playerA *PlayerProfile, allowRematch bool) *PlayerProfile {
	var rematchFallback *PlayerProfile

	for _, p := range players {
		if p.ID == playerA.ID || assigned[p.ID] {
			continue
		}
		if !p.isAvailableFor(slot) {
			continue
		}
		if p.CategoryID != playerA.CategoryID || !p.sameZone(playerA) {
			continue
		}
		if _, faced := playerA.Opponents[p.ID]; !faced {
			return p
		}
		if allowRematch && rematchFallback == nil {
			rematchFallback = p
		}
	}

	return rematchFallback
}
