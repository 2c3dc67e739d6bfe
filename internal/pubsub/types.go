package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventWeekSuggested         EventType = "week-suggested"
	EventAvailabilitySubmitted EventType = "availability-submitted"
	EventResultRecorded        EventType = "result-recorded"
)
