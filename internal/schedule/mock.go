package schedule

import "sync"

// MockStore is a mock implementation of the ScheduleStore interface for
// testing. It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	SubmitAvailabilityFunc func(playerID, fromDate, toDate string, entries []AvailabilityEntry) error
	AddAvailabilityFunc    func(playerID, date, timeOfDay, venue string) error
	RemoveAvailabilityFunc func(playerID, date, timeOfDay, venue string) error
	GetAvailabilityFunc    func(fromDate, toDate string) ([]AvailabilityEntry, error)
	UpsertCourtSlotFunc    func(slot CourtSlot) error
	GetCourtSlotsFunc      func(fromDate, toDate string) ([]CourtSlot, error)

	// Call records
	SubmitAvailabilityCalls []struct {
		PlayerID string
		FromDate string
		ToDate   string
		Entries  []AvailabilityEntry
	}
	UpsertCourtSlotCalls []CourtSlot
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) SubmitAvailability(playerID, fromDate, toDate string, entries []AvailabilityEntry) error {
	m.mu.Lock()
	m.SubmitAvailabilityCalls = append(m.SubmitAvailabilityCalls, struct {
		PlayerID string
		FromDate string
		ToDate   string
		Entries  []AvailabilityEntry
	}{playerID, fromDate, toDate, entries})
	m.mu.Unlock()
	if m.SubmitAvailabilityFunc != nil {
		return m.SubmitAvailabilityFunc(playerID, fromDate, toDate, entries)
	}
	return nil
}

func (m *MockStore) AddAvailability(playerID, date, timeOfDay, venue string) error {
	if m.AddAvailabilityFunc != nil {
		return m.AddAvailabilityFunc(playerID, date, timeOfDay, venue)
	}
	return nil
}

func (m *MockStore) RemoveAvailability(playerID, date, timeOfDay, venue string) error {
	if m.RemoveAvailabilityFunc != nil {
		return m.RemoveAvailabilityFunc(playerID, date, timeOfDay, venue)
	}
	return nil
}

func (m *MockStore) GetAvailability(fromDate, toDate string) ([]AvailabilityEntry, error) {
	if m.GetAvailabilityFunc != nil {
		return m.GetAvailabilityFunc(fromDate, toDate)
	}
	return nil, nil
}

func (m *MockStore) UpsertCourtSlot(slot CourtSlot) error {
	m.mu.Lock()
	m.UpsertCourtSlotCalls = append(m.UpsertCourtSlotCalls, slot)
	m.mu.Unlock()
	if m.UpsertCourtSlotFunc != nil {
		return m.UpsertCourtSlotFunc(slot)
	}
	return nil
}

func (m *MockStore) GetCourtSlots(fromDate, toDate string) ([]CourtSlot, error) {
	if m.GetCourtSlotsFunc != nil {
		return m.GetCourtSlotsFunc(fromDate, toDate)
	}
	return nil, nil
}
