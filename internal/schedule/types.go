package schedule

import (
	"database/sql"
	"sync"
)

// store handles database operations for weekly scheduling data.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// AvailabilityEntry is one availability record a player submitted: a date, a
// coarse time-of-day and a venue. Venue "any" means either venue.
type AvailabilityEntry struct {
	ID        int64  `json:"id"`
	PlayerID  string `json:"player_id"`
	Date      string `json:"date"` // YYYY-MM-DD
	TimeOfDay string `json:"time_of_day"`
	Venue     string `json:"venue"`
	CreatedAt int64  `json:"created_at"`
}

// CourtSlot declares how many courts a venue offers at a date and time.
type CourtSlot struct {
	ID     int64  `json:"id"`
	Venue  string `json:"venue"`
	Date   string `json:"date"` // YYYY-MM-DD
	Time   string `json:"time"` // HH:MM
	Courts int    `json:"courts"`
}
