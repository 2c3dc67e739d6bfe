package http

import (
	"net/http"

	"github.com/courtside-hq/matchweek/internal/config"
	"github.com/courtside-hq/matchweek/internal/league"
	"github.com/courtside-hq/matchweek/internal/metrics"
	"github.com/courtside-hq/matchweek/internal/notifier"
	"github.com/courtside-hq/matchweek/internal/planner"
	"github.com/courtside-hq/matchweek/internal/pubsub"
	"github.com/courtside-hq/matchweek/internal/schedule"
)

func NewServer(leagueStore league.LeagueStore, scheduleStore schedule.ScheduleStore, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, planner *planner.Planner, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		League:         leagueStore,
		Schedule:       scheduleStore,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Planner:        planner,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/clear", Chain(s.ClearStoreHandler(), paramsMiddleware))
	s.Router.Handle("/players", Chain(s.ListPlayersHandler(), paramsMiddleware))
	s.Router.Handle("/matches", Chain(s.ListMatchesHandler(), paramsMiddleware))
	s.Router.Handle("/availability", Chain(s.AvailabilityHandler(), paramsMiddleware))
	s.Router.Handle("/court-slots", Chain(s.CourtSlotsHandler(), paramsMiddleware))
	s.Router.Handle("/suggest", Chain(s.SuggestWeekHandler(), paramsMiddleware))
	s.Router.Handle("/assign-zones", Chain(s.AssignZonesHandler(), paramsMiddleware))
	s.Router.Handle("/results", Chain(s.RecordResultHandler(), paramsMiddleware))
	s.Router.Handle("/notify-result", Chain(s.NotifyResultHandler(), paramsMiddleware))
	s.Router.Handle("/standings", Chain(s.StandingsHandler(), paramsMiddleware))
	s.Router.Handle("/slack/command/standings", Chain(s.StandingsCommandHandler(), paramsMiddleware))
	s.Router.Handle("/slack/command/suggest", Chain(s.SuggestCommandHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
