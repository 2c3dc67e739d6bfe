package league_test

import (
	"testing"

	"github.com/courtside-hq/matchweek/internal/database"
	"github.com/courtside-hq/matchweek/internal/league"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestStore creates a temporary in-memory SQLite database for testing.
func setupTestStore(t *testing.T) (league.LeagueStore, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := league.New(db)
	return store, dbTeardown
}

func seedLeague(t *testing.T, store league.LeagueStore) {
	t.Helper()

	require.NoError(t, store.UpsertCategory(league.Category{ID: "cat-a", Name: "Primera", Position: 1}))
	require.NoError(t, store.UpsertTournament(league.Tournament{ID: "t1", Name: "Apertura", CategoryID: "cat-a", Selected: true}))

	catA := "cat-a"
	require.NoError(t, store.UpsertPlayers([]league.PlayerInfo{
		{ID: "p1", Name: "Ana", CategoryID: &catA},
		{ID: "p2", Name: "Berta", CategoryID: &catA},
		{ID: "p3", Name: "Clara", CategoryID: &catA},
	}))
}

func TestUpsertPlayers_InsertAndUpdate(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()
	seedLeague(t, store)

	players, err := store.GetAllPlayers()
	require.NoError(t, err)
	require.Len(t, players, 3)
	assert.Equal(t, "Ana", players[0].Name)

	catA := "cat-a"
	require.NoError(t, store.UpsertPlayers([]league.PlayerInfo{
		{ID: "p1", Name: "Ana Maria", CategoryID: &catA},
	}))

	players, err = store.GetPlayers([]string{"p1"})
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "Ana Maria", players[0].Name)
	assert.True(t, store.IsKnownPlayer("p1"))
	assert.False(t, store.IsKnownPlayer("nobody"))
}

func TestInscriptions_InsertionOrderAndDuplicates(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()
	seedLeague(t, store)

	zoneA := "Zone A"
	require.NoError(t, store.AddInscription("p2", "t1", nil))
	require.NoError(t, store.AddInscription("p1", "t1", &zoneA))
	// Duplicate inscription is a no-op.
	require.NoError(t, store.AddInscription("p2", "t1", &zoneA))

	inscriptions, err := store.GetInscriptions([]string{"t1"})
	require.NoError(t, err)
	require.Len(t, inscriptions, 2)
	assert.Equal(t, "p2", inscriptions[0].PlayerID)
	assert.Nil(t, inscriptions[0].ZoneName)
	assert.Equal(t, "p1", inscriptions[1].PlayerID)
	require.NotNil(t, inscriptions[1].ZoneName)
	assert.Equal(t, "Zone A", *inscriptions[1].ZoneName)
}

func TestMatchesPlayedCounts_CountsPlayedAndPastUnplayed(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()
	seedLeague(t, store)

	require.NoError(t, store.SaveMatches([]league.Match{
		{ID: "m1", TournamentID: "t1", PlayerAID: "p1", PlayerBID: "p2", Venue: "central", Date: "2026-08-10", Time: "10:00", Status: league.StatusScheduled},
		{ID: "m2", TournamentID: "t1", PlayerAID: "p1", PlayerBID: "p3", Venue: "central", Date: "2026-08-17", Time: "10:00", Status: league.StatusScheduled},
		{ID: "m3", TournamentID: "t1", PlayerAID: "p2", PlayerBID: "p3", Venue: "central", Date: "2026-09-10", Time: "10:00", Status: league.StatusScheduled},
	}))
	// m1 got played, m2 is past without a result, m3 is upcoming.
	require.NoError(t, store.RecordResult("m1", "p1", 2, 0))

	counts, err := store.MatchesPlayedCounts([]string{"t1"}, "2026-08-28")
	require.NoError(t, err)
	assert.Equal(t, 2, counts["p1"], "played + past-unplayed")
	assert.Equal(t, 1, counts["p2"], "played only; upcoming does not count")
	assert.Equal(t, 1, counts["p3"], "past-unplayed only")
}

func TestHistoryPairs_IgnoresCanceled(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()
	seedLeague(t, store)

	require.NoError(t, store.SaveMatches([]league.Match{
		{ID: "m1", TournamentID: "t1", PlayerAID: "p1", PlayerBID: "p2", Venue: "central", Date: "2026-08-10", Time: "10:00", Status: league.StatusPlayed},
		{ID: "m2", TournamentID: "t1", PlayerAID: "p1", PlayerBID: "p3", Venue: "central", Date: "2026-08-17", Time: "10:00", Status: league.StatusCanceled},
	}))

	pairs, err := store.HistoryPairs([]string{"t1"})
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, "p1", pairs[0].PlayerAID)
	assert.Equal(t, "p2", pairs[0].PlayerBID)
}

func TestProgrammedOutside_ExcludesSelectedTournaments(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()
	seedLeague(t, store)
	require.NoError(t, store.UpsertTournament(league.Tournament{ID: "t2", Name: "Interclub", CategoryID: "cat-a", Selected: false}))

	require.NoError(t, store.SaveMatches([]league.Match{
		{ID: "m1", TournamentID: "t1", PlayerAID: "p1", PlayerBID: "p2", Venue: "central", Date: "2026-09-04", Time: "10:00", Status: league.StatusScheduled},
		{ID: "m2", TournamentID: "t2", PlayerAID: "p1", PlayerBID: "p3", Venue: "central", Date: "2026-09-04", Time: "10:00", Status: league.StatusScheduled},
		{ID: "m3", TournamentID: "t2", PlayerAID: "p2", PlayerBID: "p3", Venue: "central", Date: "2026-09-20", Time: "10:00", Status: league.StatusScheduled},
	}))

	outside, err := store.ProgrammedOutside([]string{"t1"}, "2026-08-31", "2026-09-06")
	require.NoError(t, err)
	require.Len(t, outside, 1)
	assert.Equal(t, "m2", outside[0].ID)
}

func TestSaveMatches_UpsertKeepsResults(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()
	seedLeague(t, store)

	match := league.Match{ID: "m1", TournamentID: "t1", PlayerAID: "p1", PlayerBID: "p2", Venue: "central", Date: "2026-09-04", Time: "10:00", Status: league.StatusScheduled}
	require.NoError(t, store.SaveMatches([]league.Match{match}))
	require.NoError(t, store.RecordResult("m1", "p2", 1, 2))

	// Re-saving the same match reschedules it but must not wipe the result.
	match.Time = "12:00"
	match.Status = league.StatusPlayed
	require.NoError(t, store.SaveMatches([]league.Match{match}))

	matches, err := store.GetAllMatches()
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "12:00", matches[0].Time)
	require.NotNil(t, matches[0].WinnerID)
	assert.Equal(t, "p2", *matches[0].WinnerID)
}

func TestGetMatch(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()
	seedLeague(t, store)

	match := league.Match{ID: "m1", TournamentID: "t1", PlayerAID: "p1", PlayerBID: "p2", Venue: "central", Date: "2026-09-04", Time: "10:00", Status: league.StatusScheduled}
	require.NoError(t, store.SaveMatches([]league.Match{match}))

	got, err := store.GetMatch("m1")
	require.NoError(t, err)
	assert.Equal(t, "p1", got.PlayerAID)
	assert.Equal(t, league.StatusScheduled, got.Status)

	_, err = store.GetMatch("ghost")
	require.Error(t, err)
}

func TestSetInscriptionZone(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()
	seedLeague(t, store)

	require.NoError(t, store.AddInscription("p1", "t1", nil))

	zoneA := "Zone A"
	require.NoError(t, store.SetInscriptionZone("p1", "t1", &zoneA))

	inscriptions, err := store.GetInscriptions([]string{"t1"})
	require.NoError(t, err)
	require.Len(t, inscriptions, 1)
	require.NotNil(t, inscriptions[0].ZoneName)
	assert.Equal(t, "Zone A", *inscriptions[0].ZoneName)

	// Reassignment overwrites, clearing works too.
	zoneB := "Zone B"
	require.NoError(t, store.SetInscriptionZone("p1", "t1", &zoneB))
	require.NoError(t, store.SetInscriptionZone("p1", "t1", nil))

	inscriptions, err = store.GetInscriptions([]string{"t1"})
	require.NoError(t, err)
	require.Len(t, inscriptions, 1)
	assert.Nil(t, inscriptions[0].ZoneName)
}
