package http

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/courtside-hq/matchweek/internal/config"
	"github.com/courtside-hq/matchweek/internal/league"
	"github.com/courtside-hq/matchweek/internal/metrics"
	"github.com/courtside-hq/matchweek/internal/notifier"
	"github.com/courtside-hq/matchweek/internal/planner"
	"github.com/courtside-hq/matchweek/internal/pubsub"
	"github.com/courtside-hq/matchweek/internal/schedule"
	"github.com/courtside-hq/matchweek/internal/suggester"
	"github.com/prometheus/client_golang/prometheus"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

type serverFixtures struct {
	server   *Server
	league   *league.MockStore
	schedule *schedule.MockStore
	notifier *notifier.MockNotifier
	pubsub   *pubsub.MockPubSubClient
}

// setupTestServer wires a server over mock stores and a fresh metrics registry.
func setupTestServer(t *testing.T) *serverFixtures {
	t.Helper()

	f := &serverFixtures{
		league:   league.NewMock(),
		schedule: schedule.NewMock(),
		notifier: notifier.NewMock(),
		pubsub:   pubsub.NewMock("TEST"),
	}

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)
	plan := planner.New(f.league, f.schedule, f.notifier, metricsSvc, f.pubsub)

	f.server = NewServer(f.league, f.schedule, metricsSvc, metricsHandler, config.Config{}, f.notifier, plan, f.pubsub)
	return f
}

func TestHealthCheckHandler(t *testing.T) {
	f := setupTestServer(t)

	req := httptest.NewRequest("GET", "/health", nil)
	rr := httptest.NewRecorder()
	f.server.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK!", rr.Body.String())
}

func TestListPlayersHandler(t *testing.T) {
	f := setupTestServer(t)
	catA := "cat-a"
	f.league.GetAllPlayersFunc = func() ([]league.PlayerInfo, error) {
		return []league.PlayerInfo{
			{ID: "p1", Name: "Ana", CategoryID: &catA},
			{ID: "p2", Name: "Berta", CategoryID: &catA},
		}, nil
	}

	req := httptest.NewRequest("GET", "/players", nil)
	rr := httptest.NewRecorder()
	f.server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var players []league.PlayerInfo
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&players))
	require.Len(t, players, 2)
	assert.Equal(t, "Ana", players[0].Name)
}

func TestListMatchesHandler_WeekFilter(t *testing.T) {
	f := setupTestServer(t)
	var gotFrom, gotTo string
	f.league.GetMatchesForWeekFunc = func(fromDate, toDate string) ([]*league.Match, error) {
		gotFrom, gotTo = fromDate, toDate
		return []*league.Match{{ID: "m1"}}, nil
	}

	req := httptest.NewRequest("GET", "/matches?from=2026-08-31&to=2026-09-06", nil)
	rr := httptest.NewRecorder()
	f.server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "2026-08-31", gotFrom)
	assert.Equal(t, "2026-09-06", gotTo)
}

func TestAvailabilityHandler_Submit(t *testing.T) {
	f := setupTestServer(t)
	f.league.IsKnownPlayerFunc = func(playerID string) bool { return playerID == "p1" }

	body := submitAvailabilityRequest{
		PlayerID: "p1",
		FromDate: "2026-08-31",
		ToDate:   "2026-09-06",
		Entries: []schedule.AvailabilityEntry{
			{Date: "2026-09-04", TimeOfDay: "morning", Venue: "central"},
		},
	}
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/availability", bytes.NewReader(payload))
	rr := httptest.NewRecorder()
	f.server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, f.schedule.SubmitAvailabilityCalls, 1)
	assert.Equal(t, "p1", f.schedule.SubmitAvailabilityCalls[0].PlayerID)
	require.Len(t, f.pubsub.SendMessageCalls, 1)
	assert.Equal(t, string(pubsub.EventAvailabilitySubmitted), f.pubsub.SendMessageCalls[0].Topic)
}

func TestAvailabilityHandler_SubmitUnknownPlayer(t *testing.T) {
	f := setupTestServer(t)
	f.league.IsKnownPlayerFunc = func(playerID string) bool { return false }

	payload := []byte(`{"player_id":"ghost","from_date":"2026-08-31","to_date":"2026-09-06"}`)
	req := httptest.NewRequest("POST", "/availability", bytes.NewReader(payload))
	rr := httptest.NewRecorder()
	f.server.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Empty(t, f.schedule.SubmitAvailabilityCalls)
}

func TestAvailabilityHandler_GetRequiresRange(t *testing.T) {
	f := setupTestServer(t)

	req := httptest.NewRequest("GET", "/availability", nil)
	rr := httptest.NewRecorder()
	f.server.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCourtSlotsHandler_Upsert(t *testing.T) {
	f := setupTestServer(t)

	payload := []byte(`{"venue":"central","date":"2026-09-04","time":"10:00","courts":3}`)
	req := httptest.NewRequest("POST", "/court-slots", bytes.NewReader(payload))
	rr := httptest.NewRecorder()
	f.server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, f.schedule.UpsertCourtSlotCalls, 1)
	assert.Equal(t, 3, f.schedule.UpsertCourtSlotCalls[0].Courts)
}

// seedSuggestion primes the mocks so a suggestion run produces one proposal.
func seedSuggestion(f *serverFixtures) {
	catA := "cat-a"
	f.league.GetSelectedTournamentsFunc = func() ([]league.Tournament, error) {
		return []league.Tournament{{ID: "t1", Name: "Apertura", CategoryID: "cat-a", Selected: true}}, nil
	}
	f.league.GetAllPlayersFunc = func() ([]league.PlayerInfo, error) {
		return []league.PlayerInfo{
			{ID: "p1", Name: "Ana", CategoryID: &catA},
			{ID: "p2", Name: "Berta", CategoryID: &catA},
		}, nil
	}
	f.league.GetCategoriesFunc = func() ([]league.Category, error) {
		return []league.Category{{ID: "cat-a", Name: "Primera", Position: 1}}, nil
	}
	f.league.GetInscriptionsFunc = func(tournamentIDs []string) ([]league.Inscription, error) {
		return []league.Inscription{
			{PlayerID: "p1", TournamentID: "t1"},
			{PlayerID: "p2", TournamentID: "t1"},
		}, nil
	}
	f.schedule.GetAvailabilityFunc = func(fromDate, toDate string) ([]schedule.AvailabilityEntry, error) {
		return []schedule.AvailabilityEntry{
			{PlayerID: "p1", Date: "2026-09-04", TimeOfDay: "morning", Venue: "central"},
			{PlayerID: "p2", Date: "2026-09-04", TimeOfDay: "morning", Venue: "any"},
		}, nil
	}
	f.schedule.GetCourtSlotsFunc = func(fromDate, toDate string) ([]schedule.CourtSlot, error) {
		return []schedule.CourtSlot{{Venue: "central", Date: "2026-09-04", Time: "10:00", Courts: 1}}, nil
	}
}

func TestSuggestWeekHandler(t *testing.T) {
	f := setupTestServer(t)
	seedSuggestion(f)

	req := httptest.NewRequest("GET", "/suggest?from=2026-08-31&to=2026-09-06", nil)
	rr := httptest.NewRecorder()
	f.server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var result suggester.Result
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&result))
	require.Len(t, result.Proposals, 1)
	assert.Equal(t, "Ana", result.Proposals[0].PlayerAName)
	require.Len(t, f.league.SaveMatchesCalls, 1)
}

func TestSuggestWeekHandler_DryRun(t *testing.T) {
	f := setupTestServer(t)
	seedSuggestion(f)

	req := httptest.NewRequest("GET", "/suggest?from=2026-08-31&to=2026-09-06&dry_run=true", nil)
	rr := httptest.NewRecorder()
	f.server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, f.league.SaveMatchesCalls)
}

func TestSuggestWeekHandler_RequiresRange(t *testing.T) {
	f := setupTestServer(t)

	req := httptest.NewRequest("GET", "/suggest", nil)
	rr := httptest.NewRecorder()
	f.server.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func storedMatch() *league.Match {
	return &league.Match{
		ID: "m1", TournamentID: "t1",
		PlayerAID: "p1", PlayerBID: "p2",
		Venue: "central", Date: "2026-09-04", Time: "10:00", Court: 1,
		Status: league.StatusScheduled,
	}
}

func TestRecordResultHandler(t *testing.T) {
	f := setupTestServer(t)
	f.league.GetMatchFunc = func(matchID string) (*league.Match, error) {
		return storedMatch(), nil
	}
	var recorded bool
	f.league.RecordResultFunc = func(matchID, winnerID string, setsA, setsB int) error {
		recorded = true
		assert.Equal(t, "m1", matchID)
		assert.Equal(t, "p2", winnerID)
		return nil
	}

	payload := []byte(`{"match_id":"m1","winner_id":"p2","sets_a":1,"sets_b":2}`)
	req := httptest.NewRequest("POST", "/results", bytes.NewReader(payload))
	rr := httptest.NewRecorder()
	f.server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, recorded)
	require.Len(t, f.pubsub.SendMessageCalls, 1)
	assert.Equal(t, string(pubsub.EventResultRecorded), f.pubsub.SendMessageCalls[0].Topic)
}

func TestRecordResultHandler_WinnerMustHavePlayed(t *testing.T) {
	f := setupTestServer(t)
	f.league.GetMatchFunc = func(matchID string) (*league.Match, error) {
		return storedMatch(), nil
	}

	payload := []byte(`{"match_id":"m1","winner_id":"p9","sets_a":2,"sets_b":0}`)
	req := httptest.NewRequest("POST", "/results", bytes.NewReader(payload))
	rr := httptest.NewRecorder()
	f.server.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, f.pubsub.SendMessageCalls)
}

func TestRecordResultHandler_UnknownMatch(t *testing.T) {
	f := setupTestServer(t)
	f.league.GetMatchFunc = func(matchID string) (*league.Match, error) {
		return nil, fmt.Errorf("match %s not found", matchID)
	}

	payload := []byte(`{"match_id":"ghost","winner_id":"p1"}`)
	req := httptest.NewRequest("POST", "/results", bytes.NewReader(payload))
	rr := httptest.NewRecorder()
	f.server.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestNotifyResultHandler(t *testing.T) {
	f := setupTestServer(t)
	f.pubsub.ProcessMessageFunc = func(data []byte, returnValue any) error {
		return msgpack.Unmarshal(data, returnValue)
	}
	f.league.GetPlayersFunc = func(playerIDs []string) ([]league.PlayerInfo, error) {
		return []league.PlayerInfo{
			{ID: "p1", Name: "Ana"},
			{ID: "p2", Name: "Berta"},
		}, nil
	}

	winner := "p2"
	match := storedMatch()
	match.Status = league.StatusPlayed
	match.WinnerID = &winner
	match.SetsA, match.SetsB = 1, 2

	raw, err := msgpack.Marshal(match)
	require.NoError(t, err)
	wrapper := map[string]any{
		"subscription": "projects/test/subscriptions/notify-result",
		"message":      map[string]any{"data": base64.StdEncoding.EncodeToString(raw)},
	}
	body, err := json.Marshal(wrapper)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/notify-result", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	f.server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, f.notifier.SendResultRecordedCalls, 1)
	assert.Equal(t, "m1", f.notifier.SendResultRecordedCalls[0].ID)
}

func TestStandingsHandler(t *testing.T) {
	f := setupTestServer(t)
	f.league.GetStandingsFunc = func(categoryID string) ([]league.Standing, error) {
		return []league.Standing{
			{PlayerID: "p1", PlayerName: "Ana", Points: 6},
			{PlayerID: "p2", PlayerName: "Berta", Points: 4},
			{PlayerID: "p3", PlayerName: "Clara", Points: 2},
			{PlayerID: "p4", PlayerName: "Diana", Points: 0},
		}, nil
	}

	req := httptest.NewRequest("GET", "/standings?category=cat-a&zone_size=2", nil)
	rr := httptest.NewRecorder()
	f.server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var standings []league.Standing
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&standings))
	require.Len(t, standings, 4)
	assert.Equal(t, "Zone A", standings[0].ZoneName)
	assert.Equal(t, "Zone B", standings[2].ZoneName)
}

func TestStandingsCommandHandler(t *testing.T) {
	f := setupTestServer(t)
	f.league.GetCategoriesFunc = func() ([]league.Category, error) {
		return []league.Category{{ID: "cat-a", Name: "Primera", Position: 1}}, nil
	}
	f.league.GetStandingsFunc = func(categoryID string) ([]league.Standing, error) {
		assert.Equal(t, "cat-a", categoryID)
		return []league.Standing{{PlayerID: "p1", PlayerName: "Ana", Points: 6}}, nil
	}
	f.notifier.FormatStandingsResponseFunc = func(categoryName string, standings []league.Standing) (any, error) {
		header := slackapi.NewHeaderBlock(slackapi.NewTextBlockObject("plain_text", categoryName, false, false))
		return slackapi.NewBlockMessage(header), nil
	}

	form := url.Values{}
	form.Set("text", "primera")
	req := httptest.NewRequest("POST", "/slack/command/standings", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	f.server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "blocks")
}

func TestStandingsCommandHandler_UnknownCategory(t *testing.T) {
	f := setupTestServer(t)
	f.league.GetCategoriesFunc = func() ([]league.Category, error) {
		return []league.Category{{ID: "cat-a", Name: "Primera", Position: 1}}, nil
	}

	form := url.Values{}
	form.Set("text", "tercera")
	req := httptest.NewRequest("POST", "/slack/command/standings", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	f.server.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAssignZonesHandler(t *testing.T) {
	f := setupTestServer(t)
	f.league.GetSelectedTournamentsFunc = func() ([]league.Tournament, error) {
		return []league.Tournament{{ID: "t1", Name: "Clausura", CategoryID: "cat-a", Zoned: true, Selected: true}}, nil
	}
	f.league.GetCategoriesFunc = func() ([]league.Category, error) {
		return []league.Category{{ID: "cat-a", Name: "Primera", Position: 1}}, nil
	}
	f.league.GetStandingsFunc = func(categoryID string) ([]league.Standing, error) {
		return []league.Standing{
			{PlayerID: "p1", PlayerName: "Ana", Points: 6},
			{PlayerID: "p2", PlayerName: "Berta", Points: 4},
		}, nil
	}
	assigned := make(map[string]string)
	f.league.SetInscriptionZoneFunc = func(playerID, tournamentID string, zoneName *string) error {
		require.NotNil(t, zoneName)
		assigned[playerID] = *zoneName
		return nil
	}

	req := httptest.NewRequest("POST", "/assign-zones?zone_size=2", nil)
	rr := httptest.NewRecorder()
	f.server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, map[string]string{"p1": "Zone A", "p2": "Zone A"}, assigned)
	require.Len(t, f.notifier.SendStandingsCalls, 1)
}

func TestAssignZonesHandler_RequiresZoneSize(t *testing.T) {
	f := setupTestServer(t)

	req := httptest.NewRequest("POST", "/assign-zones", nil)
	rr := httptest.NewRecorder()
	f.server.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSuggestCommandHandler(t *testing.T) {
	f := setupTestServer(t)
	seedSuggestion(f)
	f.notifier.FormatWeekSuggestionsResponseFunc = func(fromDate, toDate string, result suggester.Result) (any, error) {
		header := slackapi.NewHeaderBlock(slackapi.NewTextBlockObject("plain_text", "This week's matches", false, false))
		return slackapi.NewBlockMessage(header), nil
	}

	form := url.Values{}
	form.Set("text", "2026-08-31 2026-09-06")
	req := httptest.NewRequest("POST", "/slack/command/suggest", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	f.server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "blocks")
	// The slash command is a preview; nothing may be persisted.
	assert.Empty(t, f.league.SaveMatchesCalls)
}

func TestSuggestCommandHandler_RequiresBothDates(t *testing.T) {
	f := setupTestServer(t)

	form := url.Values{}
	form.Set("text", "2026-08-31")
	req := httptest.NewRequest("POST", "/slack/command/suggest", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	f.server.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
