package league

import (
	"fmt"
	"sort"
)

// Points awarded per match outcome. Losing still scores: playing counts.
const (
	pointsPerWin  = 2
	pointsPerLoss = 1
)

// zoneLabels are consumed in order when bucketing standings into zones.
var zoneLabels = []string{"Zone A", "Zone B", "Zone C", "Zone D", "Zone E", "Zone F"}

// GetStandings computes the ranking board of a category from its played
// matches.
func (s *store) GetStandings(categoryID string) ([]Standing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	players, err := s.playersInCategory(categoryID)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT m.player_a_id, m.player_b_id, m.winner_id, m.sets_a, m.sets_b
		FROM matches m
		JOIN players pa ON pa.id = m.player_a_id
		WHERE m.status = ? AND pa.category_id = ?
	`, string(StatusPlayed), categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query played matches: %w", err)
	}
	defer rows.Close()

	type result struct {
		aID, bID     string
		winnerID     string
		setsA, setsB int
	}
	var results []result
	for rows.Next() {
		var r result
		var winner *string
		if err := rows.Scan(&r.aID, &r.bID, &winner, &r.setsA, &r.setsB); err != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", err)
		}
		if winner == nil {
			continue
		}
		r.winnerID = *winner
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	byID := make(map[string]*Standing, len(players))
	standings := make([]Standing, len(players))
	for i, p := range players {
		standings[i] = Standing{PlayerID: p.ID, PlayerName: p.Name}
		byID[p.ID] = &standings[i]
	}

	for _, r := range results {
		a, okA := byID[r.aID]
		b, okB := byID[r.bID]
		if !okA || !okB {
			continue
		}
		a.Played++
		b.Played++
		a.SetsWon += r.setsA
		a.SetsLost += r.setsB
		b.SetsWon += r.setsB
		b.SetsLost += r.setsA
		if r.winnerID == r.aID {
			a.Won++
			b.Lost++
		} else {
			b.Won++
			a.Lost++
		}
	}
	for i := range standings {
		standings[i].Points = standings[i].Won*pointsPerWin + standings[i].Lost*pointsPerLoss
	}

	SortStandings(standings)
	return standings, nil
}

// playersInCategory expects the caller to hold the read lock.
func (s *store) playersInCategory(categoryID string) ([]PlayerInfo, error) {
	rows, err := s.db.Query("SELECT id, name, category_id FROM players WHERE category_id = ? ORDER BY name ASC", categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query category players: %w", err)
	}
	defer rows.Close()

	return scanPlayers(rows)
}

// SortStandings orders a board by points, then set difference, then name so
// the ordering is fully deterministic.
func SortStandings(standings []Standing) {
	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].Points != standings[j].Points {
			return standings[i].Points > standings[j].Points
		}
		diffI := standings[i].SetsWon - standings[i].SetsLost
		diffJ := standings[j].SetsWon - standings[j].SetsLost
		if diffI != diffJ {
			return diffI > diffJ
		}
		return standings[i].PlayerName < standings[j].PlayerName
	})
}

// BucketZones splits an ordered board into consecutive zones of zoneSize
// players and returns the zone name per player id. The last zone absorbs the
// remainder when it would otherwise hold a single player.
func BucketZones(standings []Standing, zoneSize int) map[string]string {
	zones := make(map[string]string, len(standings))
	if zoneSize <= 0 {
		return zones
	}

	for i := range standings {
		bucket := i / zoneSize
		if bucket >= len(zoneLabels) {
			bucket = len(zoneLabels) - 1
		}
		// A trailing zone of one player cannot host any match; fold it into
		// the previous zone.
		if i == len(standings)-1 && i%zoneSize == 0 && bucket > 0 {
			bucket--
		}
		zones[standings[i].PlayerID] = zoneLabels[bucket]
	}
	return zones
}
