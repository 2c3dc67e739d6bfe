package league

// LeagueStore defines the interface for interacting with the league's data.
type LeagueStore interface {
	UpsertPlayers(players []PlayerInfo) error
	GetAllPlayers() ([]PlayerInfo, error)
	GetPlayers(playerIDs []string) ([]PlayerInfo, error)
	IsKnownPlayer(playerID string) bool

	UpsertCategory(category Category) error
	GetCategories() ([]Category, error)

	UpsertTournament(tournament Tournament) error
	GetTournaments() ([]Tournament, error)
	GetSelectedTournaments() ([]Tournament, error)

	AddInscription(playerID, tournamentID string, zoneName *string) error
	SetInscriptionZone(playerID, tournamentID string, zoneName *string) error
	GetInscriptions(tournamentIDs []string) ([]Inscription, error)

	SaveMatches(matches []Match) error
	RecordResult(matchID, winnerID string, setsA, setsB int) error
	GetMatch(matchID string) (*Match, error)
	GetAllMatches() ([]*Match, error)
	GetMatchesForWeek(fromDate, toDate string) ([]*Match, error)

	// MatchesPlayedCounts aggregates, per player, matches that were played or
	// whose date is already past without a result. Both count against fill
	// priority.
	MatchesPlayedCounts(tournamentIDs []string, asOfDate string) (map[string]int, error)
	// HistoryPairs returns the unordered id pairs of players that have faced
	// each other across the given tournaments.
	HistoryPairs(tournamentIDs []string) ([]MatchPair, error)
	// ProgrammedOutside returns scheduled matches in the given week that do
	// not belong to any of the given tournaments. They consume court capacity.
	ProgrammedOutside(tournamentIDs []string, fromDate, toDate string) ([]*Match, error)

	GetStandings(categoryID string) ([]Standing, error)

	Clear()
}
