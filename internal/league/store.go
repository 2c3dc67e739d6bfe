package league

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
)

// New creates a new LeagueStore.
func New(db *sql.DB) LeagueStore {
	return &store{
		db: db,
	}
}

// UpsertPlayers inserts or updates players in a single transaction.
func (s *store) UpsertPlayers(players []PlayerInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO players (id, name, category_id)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			category_id = excluded.category_id;
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert statement: %w", err)
	}
	defer stmt.Close()

	for _, p := range players {
		if _, err := stmt.Exec(p.ID, p.Name, p.CategoryID); err != nil {
			return fmt.Errorf("failed to upsert player %s: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

// GetAllPlayers retrieves every player, ordered by name.
func (s *store) GetAllPlayers() ([]PlayerInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, name, category_id FROM players ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	return scanPlayers(rows)
}

// GetPlayers retrieves the players with the given ids.
func (s *store) GetPlayers(playerIDs []string) ([]PlayerInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(playerIDs) == 0 {
		return nil, nil
	}

	query := "SELECT id, name, category_id FROM players WHERE id IN (" + buildQuestionMarks(len(playerIDs)) + ")"
	rows, err := s.db.Query(query, toAnySlice(playerIDs)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	return scanPlayers(rows)
}

// IsKnownPlayer checks whether a player id exists in the store.
func (s *store) IsKnownPlayer(playerID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var id string
	err := s.db.QueryRow("SELECT id FROM players WHERE id = ?", playerID).Scan(&id)
	return err == nil
}

func scanPlayers(rows *sql.Rows) ([]PlayerInfo, error) {
	var players []PlayerInfo
	for rows.Next() {
		var p PlayerInfo
		if err := rows.Scan(&p.ID, &p.Name, &p.CategoryID); err != nil {
			return nil, fmt.Errorf("failed to scan player row: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// UpsertCategory inserts or updates a category.
func (s *store) UpsertCategory(category Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO categories (id, name, position)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			position = excluded.position;
	`, category.ID, category.Name, category.Position)
	if err != nil {
		return fmt.Errorf("failed to upsert category %s: %w", category.ID, err)
	}
	return nil
}

// GetCategories retrieves all categories ordered by position.
func (s *store) GetCategories() ([]Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, name, position FROM categories ORDER BY position ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Position); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// UpsertTournament inserts or updates a tournament.
func (s *store) UpsertTournament(tournament Tournament) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO tournaments (id, name, category_id, zoned, selected)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			category_id = excluded.category_id,
			zoned = excluded.zoned,
			selected = excluded.selected;
	`, tournament.ID, tournament.Name, tournament.CategoryID, tournament.Zoned, tournament.Selected)
	if err != nil {
		return fmt.Errorf("failed to upsert tournament %s: %w", tournament.ID, err)
	}
	return nil
}

// GetTournaments retrieves all tournaments.
func (s *store) GetTournaments() ([]Tournament, error) {
	return s.queryTournaments("SELECT id, name, category_id, zoned, selected FROM tournaments ORDER BY name ASC")
}

// GetSelectedTournaments retrieves the tournaments the suggester runs over.
func (s *store) GetSelectedTournaments() ([]Tournament, error) {
	return s.queryTournaments("SELECT id, name, category_id, zoned, selected FROM tournaments WHERE selected = 1 ORDER BY name ASC")
}

func (s *store) queryTournaments(query string) ([]Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tournaments: %w", err)
	}
	defer rows.Close()

	var tournaments []Tournament
	for rows.Next() {
		var t Tournament
		if err := rows.Scan(&t.ID, &t.Name, &t.CategoryID, &t.Zoned, &t.Selected); err != nil {
			return nil, fmt.Errorf("failed to scan tournament row: %w", err)
		}
		tournaments = append(tournaments, t)
	}
	return tournaments, rows.Err()
}

// AddInscription links a player to a tournament. Re-inscribing the same
// player is a no-op.
func (s *store) AddInscription(playerID, tournamentID string, zoneName *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO inscriptions (player_id, tournament_id, zone_name, created_at)
		VALUES (?, ?, ?, strftime('%s','now'))
		ON CONFLICT(player_id, tournament_id) DO NOTHING;
	`, playerID, tournamentID, zoneName)
	if err != nil {
		return fmt.Errorf("failed to add inscription for player %s: %w", playerID, err)
	}
	return nil
}

// SetInscriptionZone updates the zone of an existing inscription.
func (s *store) SetInscriptionZone(playerID, tournamentID string, zoneName *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"UPDATE inscriptions SET zone_name = ? WHERE player_id = ? AND tournament_id = ?",
		zoneName, playerID, tournamentID,
	)
	if err != nil {
		return fmt.Errorf("failed to set inscription zone for player %s: %w", playerID, err)
	}
	return nil
}

// GetInscriptions retrieves the inscriptions of the given tournaments, in
// insertion order.
func (s *store) GetInscriptions(tournamentIDs []string) ([]Inscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(tournamentIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, player_id, tournament_id, zone_name
		FROM inscriptions
		WHERE tournament_id IN (` + buildQuestionMarks(len(tournamentIDs)) + `)
		ORDER BY id ASC
	`
	rows, err := s.db.Query(query, toAnySlice(tournamentIDs)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query inscriptions: %w", err)
	}
	defer rows.Close()

	var inscriptions []Inscription
	for rows.Next() {
		var ins Inscription
		if err := rows.Scan(&ins.ID, &ins.PlayerID, &ins.TournamentID, &ins.ZoneName); err != nil {
			return nil, fmt.Errorf("failed to scan inscription row: %w", err)
		}
		inscriptions = append(inscriptions, ins)
	}
	return inscriptions, rows.Err()
}

// SaveMatches upserts a batch of matches in one transaction. Results of
// existing matches are never overwritten.
func (s *store) SaveMatches(matches []Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO matches (id, tournament_id, player_a_id, player_b_id, venue, date, time, court, status, is_rematch, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			venue = excluded.venue,
			date = excluded.date,
			time = excluded.time,
			court = excluded.court,
			status = excluded.status;
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare match statement: %w", err)
	}
	defer stmt.Close()

	for _, m := range matches {
		_, err := stmt.Exec(m.ID, m.TournamentID, m.PlayerAID, m.PlayerBID, m.Venue, m.Date, m.Time, m.Court, string(m.Status), m.IsRematch, m.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to save match %s: %w", m.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit matches: %w", err)
	}
	log.Info("Saved matches", "count", len(matches))
	return nil
}

// RecordResult stores the outcome of a played match.
func (s *store) RecordResult(matchID, winnerID string, setsA, setsB int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		UPDATE matches
		SET status = ?, winner_id = ?, sets_a = ?, sets_b = ?
		WHERE id = ?
	`, string(StatusPlayed), winnerID, setsA, setsB, matchID)
	if err != nil {
		return fmt.Errorf("failed to record result for match %s: %w", matchID, err)
	}
	return nil
}

// GetMatch retrieves a single match by id.
func (s *store) GetMatch(matchID string) (*Match, error) {
	matches, err := s.queryMatches(`
		SELECT id, tournament_id, player_a_id, player_b_id, venue, date, time, court, status, winner_id, sets_a, sets_b, is_rematch, created_at
		FROM matches
		WHERE id = ?
	`, matchID)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("match %s not found", matchID)
	}
	return matches[0], nil
}

// GetAllMatches retrieves every match, newest first.
func (s *store) GetAllMatches() ([]*Match, error) {
	return s.queryMatches(`
		SELECT id, tournament_id, player_a_id, player_b_id, venue, date, time, court, status, winner_id, sets_a, sets_b, is_rematch, created_at
		FROM matches
		ORDER BY date DESC, time DESC
	`)
}

// GetMatchesForWeek retrieves matches whose date falls inside [fromDate, toDate].
func (s *store) GetMatchesForWeek(fromDate, toDate string) ([]*Match, error) {
	return s.queryMatches(`
		SELECT id, tournament_id, player_a_id, player_b_id, venue, date, time, court, status, winner_id, sets_a, sets_b, is_rematch, created_at
		FROM matches
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC, time ASC, court ASC
	`, fromDate, toDate)
}

func (s *store) queryMatches(query string, args ...any) ([]*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	var matches []*Match
	for rows.Next() {
		var m Match
		var status string
		err := rows.Scan(&m.ID, &m.TournamentID, &m.PlayerAID, &m.PlayerBID, &m.Venue, &m.Date, &m.Time, &m.Court, &status, &m.WinnerID, &m.SetsA, &m.SetsB, &m.IsRematch, &m.CreatedAt)
		if err != nil {
			log.Error("Failed to scan match row", "error", err)
			continue
		}
		m.Status = MatchStatus(status)
		matches = append(matches, &m)
	}
	return matches, rows.Err()
}

// MatchesPlayedCounts aggregates per-player match counts across the given
// tournaments. A match counts when it was played, or when it was scheduled
// before asOfDate and never got a result.
func (s *store) MatchesPlayedCounts(tournamentIDs []string, asOfDate string) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	if len(tournamentIDs) == 0 {
		return counts, nil
	}

	query := `
		SELECT player_a_id, player_b_id
		FROM matches
		WHERE tournament_id IN (` + buildQuestionMarks(len(tournamentIDs)) + `)
		  AND (status = ? OR (status = ? AND date < ?))
	`
	args := toAnySlice(tournamentIDs)
	args = append(args, string(StatusPlayed), string(StatusScheduled), asOfDate)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query match counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a, b string
		if err := rows.Scan(&a, &b); err != nil {
			return nil, fmt.Errorf("failed to scan match count row: %w", err)
		}
		counts[a]++
		counts[b]++
	}
	return counts, rows.Err()
}

// HistoryPairs retrieves the id pairs of players that have faced each other
// across the given tournaments, regardless of result.
func (s *store) HistoryPairs(tournamentIDs []string) ([]MatchPair, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(tournamentIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT player_a_id, player_b_id
		FROM matches
		WHERE tournament_id IN (` + buildQuestionMarks(len(tournamentIDs)) + `)
		  AND status != ?
	`
	args := toAnySlice(tournamentIDs)
	args = append(args, string(StatusCanceled))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history pairs: %w", err)
	}
	defer rows.Close()

	var pairs []MatchPair
	for rows.Next() {
		var p MatchPair
		if err := rows.Scan(&p.PlayerAID, &p.PlayerBID); err != nil {
			return nil, fmt.Errorf("failed to scan history pair: %w", err)
		}
		pairs = append(pairs, p)
	}
	return pairs, rows.Err()
}

// ProgrammedOutside retrieves scheduled matches in the given week that belong
// to tournaments outside the given set, for court-capacity accounting.
func (s *store) ProgrammedOutside(tournamentIDs []string, fromDate, toDate string) ([]*Match, error) {
	query := `
		SELECT id, tournament_id, player_a_id, player_b_id, venue, date, time, court, status, winner_id, sets_a, sets_b, is_rematch, created_at
		FROM matches
		WHERE status = ? AND date >= ? AND date <= ?
	`
	args := []any{string(StatusScheduled), fromDate, toDate}
	if len(tournamentIDs) > 0 {
		query += " AND tournament_id NOT IN (" + buildQuestionMarks(len(tournamentIDs)) + ")"
		args = append(args, toAnySlice(tournamentIDs)...)
	}

	return s.queryMatches(query, args...)
}

// Clear wipes every table. Used by tests and the /clear endpoint.
func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"matches", "availability", "inscriptions", "court_slots", "tournaments", "players", "categories"} {
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			log.Error("Failed to clear table", "table", table, "error", err)
		}
	}
}

// buildQuestionMarks is a helper to generate placeholders for IN queries.
func buildQuestionMarks(n int) string {
	if n <= 0 {
		return ""
	}
	marks := "?"
	for i := 1; i < n; i++ {
		marks += ",?"
	}
	return marks
}

func toAnySlice[T any](s []T) []any {
	result := make([]any, len(s))
	for i, v := range s {
		result[i] = v
	}
	return result
}
