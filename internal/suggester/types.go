package suggester

// VenueAny is the wildcard venue a player can submit to mean "either venue".
const VenueAny = "any"

// OddReason explains why a pooled player could not be matched.
type OddReason string

const (
	ReasonNoAvailability OddReason = "no availability submitted this week"
	ReasonNoOpponent     OddReason = "no compatible match found"
)

// PlayerRef is the pre-resolved lookup record for a player (name + category),
// supplied by the caller.
type PlayerRef struct {
	Name       string `json:"name"`
	CategoryID string `json:"category_id"`
}

// Inscription links a player to a tournament, optionally inside a zone.
type Inscription struct {
	PlayerID     string  `json:"player_id"`
	TournamentID string  `json:"tournament_id"`
	ZoneName     *string `json:"zone_name,omitempty"`
}

// AvailabilityEntry is one availability record a player submitted for the
// week: a date, a coarse time-of-day slot and a venue (or VenueAny).
type AvailabilityEntry struct {
	PlayerID  string `json:"player_id"`
	Date      string `json:"date"` // YYYY-MM-DD
	TimeOfDay string `json:"time_of_day"`
	Venue     string `json:"venue"`
}

// HistoryEntry is a pair of players that have already faced each other.
// Only the id pair matters; the result does not.
type HistoryEntry struct {
	Player1ID string `json:"player1_id"`
	Player2ID string `json:"player2_id"`
}

// ProgrammedMatch is a match scheduled outside the selected tournaments that
// consumes a court at its venue/date/time.
type ProgrammedMatch struct {
	Date  string `json:"date"`
	Time  string `json:"time"` // HH:MM
	Venue string `json:"venue"`
}

// SlotDefinition declares how many courts are available at a venue for a
// specific date and time during the week.
type SlotDefinition struct {
	Venue  string `json:"venue"`
	Date   string `json:"date"`
	Time   string `json:"time"`
	Courts int    `json:"courts"`
}

// Category is a reference record used to annotate output with display names.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Tournament is a reference record for an inscription's tournament.
type Tournament struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CategoryID string `json:"category_id"`
}

// Inputs is the full snapshot the engine consumes. Everything must be
// materialized by the caller up front; the engine performs no I/O.
type Inputs struct {
	Players       map[string]PlayerRef
	MatchesPlayed map[string]int
	Inscriptions  []Inscription
	Availability  []AvailabilityEntry
	History       []HistoryEntry
	Programmed    []ProgrammedMatch
	Slots         []SlotDefinition
	Categories    []Category
	Tournaments   []Tournament
}

// slotTime keys a player's availability: a date plus a coarse time-of-day.
type slotTime struct {
	Date      string
	TimeOfDay string
}

// slotKey identifies a (venue, date, time) group of courts.
type slotKey struct {
	Venue string
	Date  string
	Time  string
}

// less orders slot keys by venue, then date, then time.
func (k slotKey) less(other slotKey) bool {
	if k.Venue != other.Venue {
		return k.Venue < other.Venue
	}
	if k.Date != other.Date {
		return k.Date < other.Date
	}
	return k.Time < other.Time
}

// pairKey is an unordered pair of player ids.
type pairKey struct {
	a, b string
}

// newPairKey normalizes the pair so (a,b) and (b,a) collide.
func newPairKey(a, b string) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a, b}
}

// PlayerProfile is the in-memory per-player view built fresh for each run.
type PlayerProfile struct {
	ID            string
	CategoryID    string
	ZoneName      *string
	TournamentID  string
	MatchesPlayed int
	// Opponents holds the ids of every player this one has already faced.
	Opponents map[string]struct{}
	// Availability maps (date, time-of-day) to the set of acceptable venues,
	// lower-cased; VenueAny means either venue.
	Availability      map[slotTime]map[string]struct{}
	AvailableThisWeek bool
}

// sameZone reports whether two profiles are in the same zone. Both having no
// zone counts as a match; zone compatibility is strict equality, never
// adjacency.
func (p *PlayerProfile) sameZone(other *PlayerProfile) bool {
	if p.ZoneName == nil || other.ZoneName == nil {
		return p.ZoneName == nil && other.ZoneName == nil
	}
	return *p.ZoneName == *other.ZoneName
}

// CourtSlot is a single open court in the queue.
type CourtSlot struct {
	Key       slotKey
	Venue     string
	Date      string
	Time      string
	TimeOfDay string
	// Court is the physical court index within the (venue, date, time) group,
	// numbered after courts already consumed by programmed matches.
	Court  int
	Filled bool
}

// MatchProposal is one suggested pairing assigned to a court slot.
type MatchProposal struct {
	TournamentID string `json:"tournament_id"`
	Venue        string `json:"venue"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Court        int    `json:"court"`
	PlayerAID    string `json:"player_a_id"`
	PlayerAName  string `json:"player_a_name"`
	PlayerBID    string `json:"player_b_id"`
	PlayerBName  string `json:"player_b_name"`
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	IsRematch    bool   `json:"is_rematch"`
}

// OddPlayer is a pooled player the engine could not place in either pass.
type OddPlayer struct {
	PlayerID     string    `json:"player_id"`
	PlayerName   string    `json:"player_name"`
	CategoryName string    `json:"category_name"`
	Reason       OddReason `json:"reason"`
}

// Result is the engine's sole output artifact.
type Result struct {
	Proposals  []MatchProposal `json:"proposals"`
	OddPlayers []OddPlayer     `json:"odd_players"`
}
