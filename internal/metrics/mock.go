package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                  sync.Mutex
	suggestionRuns      int
	proposalsGenerated  int
	oddPlayers          int
	suggestionDurations []float64
	slackNotifSent      int
	slackNotifFailed    int
	startupTime         float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		suggestionDurations: make([]float64, 0),
	}
}

func (m *Mock) IncSuggestionRuns() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suggestionRuns++
}

func (m *Mock) AddProposalsGenerated(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.proposalsGenerated += count
}

func (m *Mock) AddOddPlayers(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.oddPlayers += count
}

func (m *Mock) ObserveSuggestionDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suggestionDurations = append(m.suggestionDurations, duration)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// SuggestionRuns returns the number of times IncSuggestionRuns was called.
func (m *Mock) SuggestionRuns() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.suggestionRuns
}

// ProposalsGenerated returns the accumulated proposal count.
func (m *Mock) ProposalsGenerated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.proposalsGenerated
}

// OddPlayers returns the accumulated odd-player count.
func (m *Mock) OddPlayers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.oddPlayers
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
