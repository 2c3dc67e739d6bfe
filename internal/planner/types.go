package planner

import (
	"github.com/courtside-hq/matchweek/internal/metrics"
	"github.com/courtside-hq/matchweek/internal/notifier"
	"github.com/courtside-hq/matchweek/internal/pubsub"
	"github.com/courtside-hq/matchweek/internal/schedule"
)

// Planner orchestrates a weekly suggestion run: it materializes the engine's
// snapshot from the stores, runs the engine and persists plus announces the
// outcome.
type Planner struct {
	league   LeagueStore
	schedule schedule.ScheduleStore
	notifier notifier.Notifier
	metrics  metrics.Metrics
	pubsub   pubsub.PubSubClient
}
