package notifier

import (
	"sync"

	"github.com/courtside-hq/matchweek/internal/league"
	"github.com/courtside-hq/matchweek/internal/suggester"
)

// MockNotifier is a mock implementation of the Notifier interface for testing.
type MockNotifier struct {
	mu sync.Mutex

	SendWeekSuggestionsFunc func(fromDate, toDate string, result suggester.Result, dryRun bool) error
	SendResultRecordedFunc  func(match *league.Match, playerAName, playerBName, winnerName string, dryRun bool) error
	SendStandingsFunc       func(categoryName string, standings []league.Standing, dryRun bool) error

	FormatWeekSuggestionsResponseFunc func(fromDate, toDate string, result suggester.Result) (any, error)
	FormatStandingsResponseFunc       func(categoryName string, standings []league.Standing) (any, error)

	SendWeekSuggestionsCalls []suggester.Result
	SendResultRecordedCalls  []*league.Match
	SendStandingsCalls       []string
}

var _ Notifier = (*MockNotifier)(nil)

// NewMock creates a new MockNotifier.
func NewMock() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) SendWeekSuggestions(fromDate, toDate string, result suggester.Result, dryRun bool) error {
	m.mu.Lock()
	m.SendWeekSuggestionsCalls = append(m.SendWeekSuggestionsCalls, result)
	m.mu.Unlock()
	if m.SendWeekSuggestionsFunc != nil {
		return m.SendWeekSuggestionsFunc(fromDate, toDate, result, dryRun)
	}
	return nil
}

func (m *MockNotifier) SendResultRecorded(match *league.Match, playerAName, playerBName, winnerName string, dryRun bool) error {
	m.mu.Lock()
	m.SendResultRecordedCalls = append(m.SendResultRecordedCalls, match)
	m.mu.Unlock()
	if m.SendResultRecordedFunc != nil {
		return m.SendResultRecordedFunc(match, playerAName, playerBName, winnerName, dryRun)
	}
	return nil
}

func (m *MockNotifier) SendStandings(categoryName string, standings []league.Standing, dryRun bool) error {
	m.mu.Lock()
	m.SendStandingsCalls = append(m.SendStandingsCalls, categoryName)
	m.mu.Unlock()
	if m.SendStandingsFunc != nil {
		return m.SendStandingsFunc(categoryName, standings, dryRun)
	}
	return nil
}

func (m *MockNotifier) FormatWeekSuggestionsResponse(fromDate, toDate string, result suggester.Result) (any, error) {
	if m.FormatWeekSuggestionsResponseFunc != nil {
		return m.FormatWeekSuggestionsResponseFunc(fromDate, toDate, result)
	}
	return nil, nil
}

func (m *MockNotifier) FormatStandingsResponse(categoryName string, standings []league.Standing) (any, error) {
	if m.FormatStandingsResponseFunc != nil {
		return m.FormatStandingsResponseFunc(categoryName, standings)
	}
	return nil, nil
}
