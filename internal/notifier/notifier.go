package notifier

import (
	"github.com/courtside-hq/matchweek/internal/league"
	"github.com/courtside-hq/matchweek/internal/suggester"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For a freshly generated round of match suggestions
	SendWeekSuggestions(fromDate, toDate string, result suggester.Result, dryRun bool) error
	// For a recorded match result
	SendResultRecorded(match *league.Match, playerAName, playerBName, winnerName string, dryRun bool) error
	// For standings announcements
	SendStandings(categoryName string, standings []league.Standing, dryRun bool) error

	// For formatting responses returned directly over HTTP
	FormatWeekSuggestionsResponse(fromDate, toDate string, result suggester.Result) (any, error)
	FormatStandingsResponse(categoryName string, standings []league.Standing) (any, error)
}
