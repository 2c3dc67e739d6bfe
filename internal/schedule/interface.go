package schedule

// ScheduleStore handles weekly availability records and court-slot
// definitions, the scheduling side of a suggestion run.
type ScheduleStore interface {
	// SubmitAvailability replaces a player's availability for the week with
	// the given entries.
	SubmitAvailability(playerID, fromDate, toDate string, entries []AvailabilityEntry) error

	// AddAvailability adds one availability record. Re-adding an existing
	// record is a no-op.
	AddAvailability(playerID, date, timeOfDay, venue string) error

	// RemoveAvailability removes one availability record.
	RemoveAvailability(playerID, date, timeOfDay, venue string) error

	// GetAvailability returns all availability records with a date inside
	// [fromDate, toDate], in insertion order.
	GetAvailability(fromDate, toDate string) ([]AvailabilityEntry, error)

	// UpsertCourtSlot sets the court count for a (venue, date, time).
	UpsertCourtSlot(slot CourtSlot) error

	// GetCourtSlots returns the slot definitions with a date inside
	// [fromDate, toDate], ordered by venue, date, time.
	GetCourtSlots(fromDate, toDate string) ([]CourtSlot, error)
}
