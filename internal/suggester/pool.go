package suggester

import (
	"strings"

	"github.com/charmbracelet/log"
)

// buildPlayerPool turns inscriptions, availability records and match history
// into per-player profiles keyed by player id. Inscriptions referencing
// unknown players or tournaments are skipped; a player inscribed in several
// tournaments keeps the first inscription's category/zone context.
func buildPlayerPool(in Inputs) map[string]*PlayerProfile {
	tournaments := make(map[string]Tournament, len(in.Tournaments))
	for _, t := range in.Tournaments {
		tournaments[t.ID] = t
	}

	pool := make(map[string]*PlayerProfile)
	for _, ins := range in.Inscriptions {
		if _, ok := pool[ins.PlayerID]; ok {
			continue
		}
		ref, ok := in.Players[ins.PlayerID]
		if !ok {
			log.Debug("Skipping inscription for unknown player", "playerID", ins.PlayerID)
			continue
		}
		if _, ok := tournaments[ins.TournamentID]; !ok {
			log.Debug("Skipping inscription for unknown tournament", "playerID", ins.PlayerID, "tournamentID", ins.TournamentID)
			continue
		}
		pool[ins.PlayerID] = &PlayerProfile{
			ID:            ins.PlayerID,
			CategoryID:    ref.CategoryID,
			ZoneName:      ins.ZoneName,
			TournamentID:  ins.TournamentID,
			MatchesPlayed: in.MatchesPlayed[ins.PlayerID],
			Opponents:     make(map[string]struct{}),
			Availability:  make(map[slotTime]map[string]struct{}),
		}
	}

	for _, a := range in.Availability {
		profile, ok := pool[a.PlayerID]
		if !ok {
			continue
		}
		key := slotTime{Date: a.Date, TimeOfDay: a.TimeOfDay}
		venues, ok := profile.Availability[key]
		if !ok {
			venues = make(map[string]struct{})
			profile.Availability[key] = venues
		}
		venues[strings.ToLower(a.Venue)] = struct{}{}
		profile.AvailableThisWeek = true
	}

	played := make(map[pairKey]struct{}, len(in.History))
	for _, h := range in.History {
		played[newPairKey(h.Player1ID, h.Player2ID)] = struct{}{}
	}
	for pair := range played {
		if p, ok := pool[pair.a]; ok {
			p.Opponents[pair.b] = struct{}{}
		}
		if p, ok := pool[pair.b]; ok {
			p.Opponents[pair.a] = struct{}{}
		}
	}

	return pool
}

// isAvailableFor reports whether the profile can play at the given slot: it
// needs an availability entry for the slot's (date, time-of-day) whose venue
// set contains the slot's venue or the wildcard.
func (p *PlayerProfile) isAvailableFor(slot *CourtSlot) bool {
	venues, ok := p.Availability[slotTime{Date: slot.Date, TimeOfDay: slot.TimeOfDay}]
	if !ok {
		return false
	}
	if _, ok := venues[strings.ToLower(slot.Venue)]; ok {
		return true
	}
	_, ok = venues[VenueAny]
	return ok
}
