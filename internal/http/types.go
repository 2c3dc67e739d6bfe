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

type Server struct {
	League         league.LeagueStore
	Schedule       schedule.ScheduleStore
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Planner        *planner.Planner
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}
