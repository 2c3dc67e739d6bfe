package schedule

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// NewStore creates a new schedule store.
func NewStore(db *sql.DB) ScheduleStore {
	return &store{
		db: db,
	}
}

// SubmitAvailability replaces a player's availability inside the week with
// the given entries.
func (s *store) SubmitAvailability(playerID, fromDate, toDate string, entries []AvailabilityEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Delete existing availability for this player and week
	_, err = tx.Exec(
		"DELETE FROM availability WHERE player_id = ? AND date >= ? AND date <= ?",
		playerID, fromDate, toDate,
	)
	if err != nil {
		return fmt.Errorf("failed to delete existing availability: %w", err)
	}

	insertQuery := `
		INSERT INTO availability (player_id, date, time_of_day, venue, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	now := time.Now().Unix()
	for _, e := range entries {
		if _, err := tx.Exec(insertQuery, playerID, e.Date, e.TimeOfDay, e.Venue, now); err != nil {
			return fmt.Errorf("failed to insert availability for date %s: %w", e.Date, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit availability transaction: %w", err)
	}

	log.Info("Recorded player availability", "playerID", playerID, "entries", len(entries))
	return nil
}

// AddAvailability adds one availability record for a player.
func (s *store) AddAvailability(playerID, date, timeOfDay, venue string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var existingID int64
	err := s.db.QueryRow(
		"SELECT id FROM availability WHERE player_id = ? AND date = ? AND time_of_day = ? AND venue = ?",
		playerID, date, timeOfDay, venue,
	).Scan(&existingID)
	if err == nil {
		log.Debug("Availability already exists", "playerID", playerID, "date", date, "timeOfDay", timeOfDay, "venue", venue)
		return nil
	} else if err != sql.ErrNoRows {
		return fmt.Errorf("failed to check existing availability: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO availability (player_id, date, time_of_day, venue, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, playerID, date, timeOfDay, venue, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to insert availability: %w", err)
	}

	log.Info("Added availability", "playerID", playerID, "date", date, "timeOfDay", timeOfDay, "venue", venue)
	return nil
}

// RemoveAvailability removes one availability record.
func (s *store) RemoveAvailability(playerID, date, timeOfDay, venue string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.Exec(
		"DELETE FROM availability WHERE player_id = ? AND date = ? AND time_of_day = ? AND venue = ?",
		playerID, date, timeOfDay, venue,
	)
	if err != nil {
		return fmt.Errorf("failed to remove availability: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		log.Debug("No availability found to remove", "playerID", playerID, "date", date)
	} else {
		log.Info("Removed availability", "playerID", playerID, "date", date, "timeOfDay", timeOfDay, "venue", venue)
	}

	return nil
}

// GetAvailability returns all availability records inside the week.
func (s *store) GetAvailability(fromDate, toDate string) ([]AvailabilityEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, player_id, date, time_of_day, venue, created_at
		FROM availability
		WHERE date >= ? AND date <= ?
		ORDER BY id ASC
	`, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query availability: %w", err)
	}
	defer rows.Close()

	var entries []AvailabilityEntry
	for rows.Next() {
		var e AvailabilityEntry
		if err := rows.Scan(&e.ID, &e.PlayerID, &e.Date, &e.TimeOfDay, &e.Venue, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan availability row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// UpsertCourtSlot sets the court count for a (venue, date, time) group.
func (s *store) UpsertCourtSlot(slot CourtSlot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO court_slots (venue, date, time, courts)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(venue, date, time) DO UPDATE SET
			courts = excluded.courts;
	`, slot.Venue, slot.Date, slot.Time, slot.Courts)
	if err != nil {
		return fmt.Errorf("failed to upsert court slot: %w", err)
	}
	return nil
}

// GetCourtSlots returns the slot definitions inside the week.
func (s *store) GetCourtSlots(fromDate, toDate string) ([]CourtSlot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, venue, date, time, courts
		FROM court_slots
		WHERE date >= ? AND date <= ?
		ORDER BY venue ASC, date ASC, time ASC
	`, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query court slots: %w", err)
	}
	defer rows.Close()

	var slots []CourtSlot
	for rows.Next() {
		var cs CourtSlot
		if err := rows.Scan(&cs.ID, &cs.Venue, &cs.Date, &cs.Time, &cs.Courts); err != nil {
			return nil, fmt.Errorf("failed to scan court slot row: %w", err)
		}
		slots = append(slots, cs)
	}
	return slots, rows.Err()
}
