package league

import "sync"

// MockStore is a mock implementation of the LeagueStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	UpsertPlayersFunc          func(players []PlayerInfo) error
	GetAllPlayersFunc          func() ([]PlayerInfo, error)
	GetPlayersFunc             func(playerIDs []string) ([]PlayerInfo, error)
	IsKnownPlayerFunc          func(playerID string) bool
	UpsertCategoryFunc         func(category Category) error
	GetCategoriesFunc          func() ([]Category, error)
	UpsertTournamentFunc       func(tournament Tournament) error
	GetTournamentsFunc         func() ([]Tournament, error)
	GetSelectedTournamentsFunc func() ([]Tournament, error)
	AddInscriptionFunc         func(playerID, tournamentID string, zoneName *string) error
	SetInscriptionZoneFunc     func(playerID, tournamentID string, zoneName *string) error
	GetInscriptionsFunc        func(tournamentIDs []string) ([]Inscription, error)
	SaveMatchesFunc            func(matches []Match) error
	RecordResultFunc           func(matchID, winnerID string, setsA, setsB int) error
	GetMatchFunc               func(matchID string) (*Match, error)
	GetAllMatchesFunc          func() ([]*Match, error)
	GetMatchesForWeekFunc      func(fromDate, toDate string) ([]*Match, error)
	MatchesPlayedCountsFunc    func(tournamentIDs []string, asOfDate string) (map[string]int, error)
	HistoryPairsFunc           func(tournamentIDs []string) ([]MatchPair, error)
	ProgrammedOutsideFunc      func(tournamentIDs []string, fromDate, toDate string) ([]*Match, error)
	GetStandingsFunc           func(categoryID string) ([]Standing, error)
	ClearFunc                  func()

	// Call records
	SaveMatchesCalls    [][]Match
	AddInscriptionCalls []struct {
		PlayerID     string
		TournamentID string
		ZoneName     *string
	}
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) UpsertPlayers(players []PlayerInfo) error {
	if m.UpsertPlayersFunc != nil {
		return m.UpsertPlayersFunc(players)
	}
	return nil
}

func (m *MockStore) GetAllPlayers() ([]PlayerInfo, error) {
	if m.GetAllPlayersFunc != nil {
		return m.GetAllPlayersFunc()
	}
	return nil, nil
}

func (m *MockStore) GetPlayers(playerIDs []string) ([]PlayerInfo, error) {
	if m.GetPlayersFunc != nil {
		return m.GetPlayersFunc(playerIDs)
	}
	return nil, nil
}

func (m *MockStore) IsKnownPlayer(playerID string) bool {
	if m.IsKnownPlayerFunc != nil {
		return m.IsKnownPlayerFunc(playerID)
	}
	return false
}

func (m *MockStore) UpsertCategory(category Category) error {
	if m.UpsertCategoryFunc != nil {
		return m.UpsertCategoryFunc(category)
	}
	return nil
}

func (m *MockStore) GetCategories() ([]Category, error) {
	if m.GetCategoriesFunc != nil {
		return m.GetCategoriesFunc()
	}
	return nil, nil
}

func (m *MockStore) UpsertTournament(tournament Tournament) error {
	if m.UpsertTournamentFunc != nil {
		return m.UpsertTournamentFunc(tournament)
	}
	return nil
}

func (m *MockStore) GetTournaments() ([]Tournament, error) {
	if m.GetTournamentsFunc != nil {
		return m.GetTournamentsFunc()
	}
	return nil, nil
}

func (m *MockStore) GetSelectedTournaments() ([]Tournament, error) {
	if m.GetSelectedTournamentsFunc != nil {
		return m.GetSelectedTournamentsFunc()
	}
	return nil, nil
}

func (m *MockStore) AddInscription(playerID, tournamentID string, zoneName *string) error {
	m.mu.Lock()
	m.AddInscriptionCalls = append(m.AddInscriptionCalls, struct {
		PlayerID     string
		TournamentID string
		ZoneName     *string
	}{playerID, tournamentID, zoneName})
	m.mu.Unlock()
	if m.AddInscriptionFunc != nil {
		return m.AddInscriptionFunc(playerID, tournamentID, zoneName)
	}
	return nil
}

func (m *MockStore) SetInscriptionZone(playerID, tournamentID string, zoneName *string) error {
	if m.SetInscriptionZoneFunc != nil {
		return m.SetInscriptionZoneFunc(playerID, tournamentID, zoneName)
	}
	return nil
}

func (m *MockStore) GetInscriptions(tournamentIDs []string) ([]Inscription, error) {
	if m.GetInscriptionsFunc != nil {
		return m.GetInscriptionsFunc(tournamentIDs)
	}
	return nil, nil
}

func (m *MockStore) SaveMatches(matches []Match) error {
	m.mu.Lock()
	m.SaveMatchesCalls = append(m.SaveMatchesCalls, matches)
	m.mu.Unlock()
	if m.SaveMatchesFunc != nil {
		return m.SaveMatchesFunc(matches)
	}
	return nil
}

func (m *MockStore) RecordResult(matchID, winnerID string, setsA, setsB int) error {
	if m.RecordResultFunc != nil {
		return m.RecordResultFunc(matchID, winnerID, setsA, setsB)
	}
	return nil
}

func (m *MockStore) GetMatch(matchID string) (*Match, error) {
	if m.GetMatchFunc != nil {
		return m.GetMatchFunc(matchID)
	}
	return nil, nil
}

func (m *MockStore) GetAllMatches() ([]*Match, error) {
	if m.GetAllMatchesFunc != nil {
		return m.GetAllMatchesFunc()
	}
	return nil, nil
}

func (m *MockStore) GetMatchesForWeek(fromDate, toDate string) ([]*Match, error) {
	if m.GetMatchesForWeekFunc != nil {
		return m.GetMatchesForWeekFunc(fromDate, toDate)
	}
	return nil, nil
}

func (m *MockStore) MatchesPlayedCounts(tournamentIDs []string, asOfDate string) (map[string]int, error) {
	if m.MatchesPlayedCountsFunc != nil {
		return m.MatchesPlayedCountsFunc(tournamentIDs, asOfDate)
	}
	return map[string]int{}, nil
}

func (m *MockStore) HistoryPairs(tournamentIDs []string) ([]MatchPair, error) {
	if m.HistoryPairsFunc != nil {
		return m.HistoryPairsFunc(tournamentIDs)
	}
	return nil, nil
}

func (m *MockStore) ProgrammedOutside(tournamentIDs []string, fromDate, toDate string) ([]*Match, error) {
	if m.ProgrammedOutsideFunc != nil {
		return m.ProgrammedOutsideFunc(tournamentIDs, fromDate, toDate)
	}
	return nil, nil
}

func (m *MockStore) GetStandings(categoryID string) ([]Standing, error) {
	if m.GetStandingsFunc != nil {
		return m.GetStandingsFunc(categoryID)
	}
	return nil, nil
}

func (m *MockStore) Clear() {
	if m.ClearFunc != nil {
		m.ClearFunc()
	}
}
