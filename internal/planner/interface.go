package planner

import "github.com/courtside-hq/matchweek/internal/league"

// LeagueStore defines the league operations required by the planner.
type LeagueStore interface {
	GetAllPlayers() ([]league.PlayerInfo, error)
	GetCategories() ([]league.Category, error)
	GetSelectedTournaments() ([]league.Tournament, error)
	GetInscriptions(tournamentIDs []string) ([]league.Inscription, error)
	MatchesPlayedCounts(tournamentIDs []string, asOfDate string) (map[string]int, error)
	HistoryPairs(tournamentIDs []string) ([]league.MatchPair, error)
	ProgrammedOutside(tournamentIDs []string, fromDate, toDate string) ([]*league.Match, error)
	SaveMatches(matches []league.Match) error
	GetStandings(categoryID string) ([]league.Standing, error)
	SetInscriptionZone(playerID, tournamentID string, zoneName *string) error
}
