package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		SuggestionRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchweek_suggestion_runs_total",
			Help: "The total number of times the match suggester has run.",
		}),
		ProposalsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchweek_proposals_generated_total",
			Help: "The total number of match proposals generated by the suggester.",
		}),
		OddPlayers: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchweek_odd_players_total",
			Help: "The total number of players left unmatched across suggestion runs.",
		}),
		SuggestionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "matchweek_suggestion_duration_seconds",
			Help:    "The duration of individual suggestion runs.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchweek_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchweek_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "matchweek_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.SuggestionRuns,
		s.ProposalsGenerated,
		s.OddPlayers,
		s.SuggestionDuration,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncSuggestionRuns() {
	s.SuggestionRuns.Inc()
}

func (s *Service) AddProposalsGenerated(count int) {
	s.ProposalsGenerated.Add(float64(count))
}

func (s *Service) AddOddPlayers(count int) {
	s.OddPlayers.Add(float64(count))
}

func (s *Service) ObserveSuggestionDuration(duration float64) {
	s.SuggestionDuration.Observe(duration)
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
