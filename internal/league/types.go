package league

import (
	"database/sql"
	"sync"
)

// store handles all database operations for the league.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// MatchStatus tracks a match through its lifecycle.
type MatchStatus string

const (
	StatusScheduled MatchStatus = "SCHEDULED"
	StatusPlayed    MatchStatus = "PLAYED"
	StatusCanceled  MatchStatus = "CANCELED"
)

// PlayerInfo represents a player in the store.
type PlayerInfo struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	CategoryID *string `json:"category_id,omitempty"`
}

// Category is a competitive category, ordered by Position (lower is higher).
type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// Tournament groups inscriptions within a category. Selected tournaments are
// the ones the match suggester runs over.
type Tournament struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CategoryID string `json:"category_id"`
	Zoned      bool   `json:"zoned"`
	Selected   bool   `json:"selected"`
}

// Inscription links a player to a tournament, optionally inside a zone.
type Inscription struct {
	ID           int64   `json:"id"`
	PlayerID     string  `json:"player_id"`
	TournamentID string  `json:"tournament_id"`
	ZoneName     *string `json:"zone_name,omitempty"`
}

// Match is a scheduled or played match.
type Match struct {
	ID           string      `json:"id"`
	TournamentID string      `json:"tournament_id"`
	PlayerAID    string      `json:"player_a_id"`
	PlayerBID    string      `json:"player_b_id"`
	Venue        string      `json:"venue"`
	Date         string      `json:"date"` // YYYY-MM-DD
	Time         string      `json:"time"` // HH:MM
	Court        int         `json:"court"`
	Status       MatchStatus `json:"status"`
	WinnerID     *string     `json:"winner_id,omitempty"`
	SetsA        int         `json:"sets_a"`
	SetsB        int         `json:"sets_b"`
	IsRematch    bool        `json:"is_rematch"`
	CreatedAt    int64       `json:"created_at"`
}

// MatchPair is the id pair of two players that have faced each other.
type MatchPair struct {
	PlayerAID string `json:"player_a_id"`
	PlayerBID string `json:"player_b_id"`
}

// Standing is one row of a category ranking board.
type Standing struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Played     int    `json:"played"`
	Won        int    `json:"won"`
	Lost       int    `json:"lost"`
	SetsWon    int    `json:"sets_won"`
	SetsLost   int    `json:"sets_lost"`
	Points     int    `json:"points"`
	ZoneName   string `json:"zone_name,omitempty"`
}
