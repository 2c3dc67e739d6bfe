package http

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"io"

	"github.com/charmbracelet/log"
	"github.com/courtside-hq/matchweek/internal/league"
	"github.com/courtside-hq/matchweek/internal/pubsub"
	"github.com/courtside-hq/matchweek/internal/schedule"
	"github.com/slack-go/slack"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Received request to clear entire store")
		s.League.Clear()
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Store cleared!")
		log.Info("Store cleared successfully")
	}
}

func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := s.League.GetAllPlayers()
		if err != nil {
			http.Error(w, "Failed to get players", http.StatusInternalServerError)
			log.Error("Failed to get players from store", "error", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(players); err != nil {
			log.Error("Failed to write response", "error", err)
		}
	}
}

func (s *Server) ListMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fromDate := r.URL.Query().Get("from")
		toDate := r.URL.Query().Get("to")

		var matches []*league.Match
		var err error
		if fromDate != "" && toDate != "" {
			matches, err = s.League.GetMatchesForWeek(fromDate, toDate)
		} else {
			matches, err = s.League.GetAllMatches()
		}
		if err != nil {
			http.Error(w, "Failed to get matches", http.StatusInternalServerError)
			log.Error("Failed to get matches from store", "error", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(matches); err != nil {
			log.Error("Failed to encode matches to JSON", "error", err)
		}
	}
}

// submitAvailabilityRequest is the payload for a weekly availability submission.
type submitAvailabilityRequest struct {
	PlayerID string                       `json:"player_id"`
	FromDate string                       `json:"from_date"`
	ToDate   string                       `json:"to_date"`
	Entries  []schedule.AvailabilityEntry `json:"entries"`
}

func (s *Server) AvailabilityHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			fromDate := r.URL.Query().Get("from")
			toDate := r.URL.Query().Get("to")
			if fromDate == "" || toDate == "" {
				http.Error(w, "'from' and 'to' query parameters are required", http.StatusBadRequest)
				return
			}
			entries, err := s.Schedule.GetAvailability(fromDate, toDate)
			if err != nil {
				http.Error(w, "Failed to get availability", http.StatusInternalServerError)
				log.Error("Failed to get availability from store", "error", err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			if err := json.NewEncoder(w).Encode(entries); err != nil {
				log.Error("Failed to encode availability to JSON", "error", err)
			}

		case http.MethodPost:
			var req submitAvailabilityRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "Invalid JSON", http.StatusBadRequest)
				return
			}
			if req.PlayerID == "" || req.FromDate == "" || req.ToDate == "" {
				http.Error(w, "player_id, from_date and to_date are required", http.StatusBadRequest)
				return
			}
			if !s.League.IsKnownPlayer(req.PlayerID) {
				http.Error(w, "Unknown player", http.StatusNotFound)
				return
			}

			isDryRun := isDryRunFromContext(r)
			if isDryRun {
				log.Info("[Dry Run] Would submit availability", "playerID", req.PlayerID, "entries", len(req.Entries))
				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, "OK")
				return
			}

			if err := s.Schedule.SubmitAvailability(req.PlayerID, req.FromDate, req.ToDate, req.Entries); err != nil {
				http.Error(w, "Failed to submit availability", http.StatusInternalServerError)
				log.Error("Failed to submit availability", "error", err, "playerID", req.PlayerID)
				return
			}
			if err := s.pubsub.SendMessage(pubsub.EventAvailabilitySubmitted, req); err != nil {
				log.Error("Failed to publish availability event", "error", err)
			}
			w.WriteHeader(http.StatusOK)
			fmt.Fprint(w, "OK")

		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func (s *Server) CourtSlotsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			fromDate := r.URL.Query().Get("from")
			toDate := r.URL.Query().Get("to")
			if fromDate == "" || toDate == "" {
				http.Error(w, "'from' and 'to' query parameters are required", http.StatusBadRequest)
				return
			}
			slots, err := s.Schedule.GetCourtSlots(fromDate, toDate)
			if err != nil {
				http.Error(w, "Failed to get court slots", http.StatusInternalServerError)
				log.Error("Failed to get court slots from store", "error", err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			if err := json.NewEncoder(w).Encode(slots); err != nil {
				log.Error("Failed to encode court slots to JSON", "error", err)
			}

		case http.MethodPost:
			var slot schedule.CourtSlot
			if err := json.NewDecoder(r.Body).Decode(&slot); err != nil {
				http.Error(w, "Invalid JSON", http.StatusBadRequest)
				return
			}
			if slot.Venue == "" || slot.Date == "" || slot.Time == "" {
				http.Error(w, "venue, date and time are required", http.StatusBadRequest)
				return
			}
			if err := s.Schedule.UpsertCourtSlot(slot); err != nil {
				http.Error(w, "Failed to upsert court slot", http.StatusInternalServerError)
				log.Error("Failed to upsert court slot", "error", err)
				return
			}
			w.WriteHeader(http.StatusOK)
			fmt.Fprint(w, "OK")

		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func (s *Server) SuggestWeekHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fromDate := r.URL.Query().Get("from")
		toDate := r.URL.Query().Get("to")
		if fromDate == "" || toDate == "" {
			http.Error(w, "'from' and 'to' query parameters are required", http.StatusBadRequest)
			return
		}
		isDryRun := isDryRunFromContext(r)

		result, err := s.Planner.GenerateWeek(fromDate, toDate, isDryRun)
		if err != nil {
			http.Error(w, "Failed to generate suggestions", http.StatusInternalServerError)
			log.Error("Failed to generate suggestions", "error", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			log.Error("Failed to encode suggestion result to JSON", "error", err)
		}
	}
}

func (s *Server) AssignZonesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		zoneSizeStr := r.URL.Query().Get("zone_size")
		if zoneSizeStr == "" {
			http.Error(w, "'zone_size' query parameter is required", http.StatusBadRequest)
			return
		}
		zoneSize, err := strconv.Atoi(zoneSizeStr)
		if err != nil || zoneSize <= 0 {
			http.Error(w, "Invalid 'zone_size' parameter", http.StatusBadRequest)
			return
		}
		isDryRun := isDryRunFromContext(r)

		if err := s.Planner.AssignZones(zoneSize, isDryRun); err != nil {
			http.Error(w, "Failed to assign zones", http.StatusInternalServerError)
			log.Error("Failed to assign zones", "error", err)
			return
		}

		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Zones assigned.")
	}
}

// recordResultRequest is the payload for reporting a match result.
type recordResultRequest struct {
	MatchID  string `json:"match_id"`
	WinnerID string `json:"winner_id"`
	SetsA    int    `json:"sets_a"`
	SetsB    int    `json:"sets_b"`
}

func (s *Server) RecordResultHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req recordResultRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if req.MatchID == "" || req.WinnerID == "" {
			http.Error(w, "match_id and winner_id are required", http.StatusBadRequest)
			return
		}

		match, err := s.League.GetMatch(req.MatchID)
		if err != nil {
			http.Error(w, "Match not found", http.StatusNotFound)
			log.Warn("Result reported for unknown match", "matchID", req.MatchID)
			return
		}
		if req.WinnerID != match.PlayerAID && req.WinnerID != match.PlayerBID {
			http.Error(w, "Winner did not play this match", http.StatusBadRequest)
			return
		}

		isDryRun := isDryRunFromContext(r)
		if isDryRun {
			log.Info("[Dry Run] Would record result", "matchID", req.MatchID, "winnerID", req.WinnerID)
			w.WriteHeader(http.StatusOK)
			fmt.Fprint(w, "OK")
			return
		}

		if err := s.League.RecordResult(req.MatchID, req.WinnerID, req.SetsA, req.SetsB); err != nil {
			http.Error(w, "Failed to record result", http.StatusInternalServerError)
			log.Error("Failed to record result", "error", err, "matchID", req.MatchID)
			return
		}

		match, err = s.League.GetMatch(req.MatchID)
		if err != nil {
			http.Error(w, "Failed to reload match", http.StatusInternalServerError)
			log.Error("Failed to reload match after recording result", "error", err, "matchID", req.MatchID)
			return
		}
		if err := s.pubsub.SendMessage(pubsub.EventResultRecorded, match); err != nil {
			log.Error("Failed to publish result event", "error", err)
		}

		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	}
}

func (s *Server) NotifyResultHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received notify result message", "body", string(bodyBytes))
		// Define a small struct to decode the incoming JSON's `data` field
		var pubsubMsg struct {
			Subscription string `json:"subscription"`
			Message      struct {
				Data string `json:"data"` // base64-encoded message payload
			} `json:"message"`
		}

		// Parse the outer JSON to get `data`
		if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		// Decode base64 to raw MessagePack bytes
		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}
		isDryRun := isDryRunFromContext(r)
		match := league.Match{}
		if err := s.pubsub.ProcessMessage(rawData, &match); err != nil {
			log.Error("Failed to decode result message", "error", err)
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}

		players, err := s.League.GetPlayers([]string{match.PlayerAID, match.PlayerBID})
		if err != nil {
			log.Error("Failed to look up players for result notification", "error", err)
			http.Error(w, "Failed to look up players", http.StatusInternalServerError)
			return
		}
		names := make(map[string]string, len(players))
		for _, p := range players {
			names[p.ID] = p.Name
		}
		winnerName := ""
		if match.WinnerID != nil {
			winnerName = names[*match.WinnerID]
		}

		if err := s.Notifier.SendResultRecorded(&match, names[match.PlayerAID], names[match.PlayerBID], winnerName, isDryRun); err != nil {
			log.Error("Failed to notify result", "error", err)
			http.Error(w, "Failed to notify result", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

func (s *Server) StandingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID := r.URL.Query().Get("category")
		if categoryID == "" {
			http.Error(w, "'category' query parameter is required", http.StatusBadRequest)
			return
		}

		standings, err := s.League.GetStandings(categoryID)
		if err != nil {
			http.Error(w, "Failed to get standings", http.StatusInternalServerError)
			log.Error("Failed to get standings from store", "error", err)
			return
		}

		if zoneSizeStr := r.URL.Query().Get("zone_size"); zoneSizeStr != "" {
			zoneSize, err := strconv.Atoi(zoneSizeStr)
			if err != nil || zoneSize <= 0 {
				http.Error(w, "Invalid 'zone_size' parameter", http.StatusBadRequest)
				return
			}
			zones := league.BucketZones(standings, zoneSize)
			for i := range standings {
				standings[i].ZoneName = zones[standings[i].PlayerID]
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(standings); err != nil {
			log.Error("Failed to encode standings to JSON", "error", err)
		}
	}
}

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

// SuggestCommandHandler returns a handler for the /suggest Slack command. It
// previews the week as a dry run; nothing is persisted or published.
func (s *Server) SuggestCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		dates := strings.Fields(r.FormValue("text"))
		if len(dates) != 2 {
			http.Error(w, "Usage: /suggest <from> <to> (YYYY-MM-DD)", http.StatusBadRequest)
			return
		}
		fromDate, toDate := dates[0], dates[1]

		log.Info("Received suggest command", "from", fromDate, "to", toDate)

		result, err := s.Planner.GenerateWeek(fromDate, toDate, true)
		if err != nil {
			http.Error(w, "Failed to generate suggestions", http.StatusInternalServerError)
			log.Error("Failed to generate suggestions", "error", err)
			return
		}

		msg, err := s.Notifier.FormatWeekSuggestionsResponse(fromDate, toDate, result)
		if err != nil {
			http.Error(w, "Failed to format suggestions", http.StatusInternalServerError)
			log.Error("Failed to format suggestions", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}

		respondWithSlackMsg(w, slackMsg)
	}
}

// StandingsCommandHandler returns a handler for the /standings Slack command.
func (s *Server) StandingsCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		categoryName := r.FormValue("text")
		if categoryName == "" {
			http.Error(w, "Category name is required.", http.StatusBadRequest)
			return
		}

		log.Info("Received standings command", "category", categoryName)

		categories, err := s.League.GetCategories()
		if err != nil {
			http.Error(w, "Failed to get categories", http.StatusInternalServerError)
			log.Error("Failed to get categories from store", "error", err)
			return
		}
		var category *league.Category
		for i := range categories {
			if strings.EqualFold(categories[i].Name, categoryName) {
				category = &categories[i]
				break
			}
		}
		if category == nil {
			http.Error(w, "Unknown category", http.StatusNotFound)
			return
		}

		standings, err := s.League.GetStandings(category.ID)
		if err != nil {
			http.Error(w, "Failed to get standings", http.StatusInternalServerError)
			log.Error("Failed to get standings from store", "error", err)
			return
		}

		msg, err := s.Notifier.FormatStandingsResponse(category.Name, standings)
		if err != nil {
			http.Error(w, "Failed to format standings", http.StatusInternalServerError)
			log.Error("Failed to format standings", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}

		respondWithSlackMsg(w, slackMsg)
	}
}
