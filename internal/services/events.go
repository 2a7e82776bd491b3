package services

// EventPublisher publishes catalog mutation events. *events.Client satisfies
// it; services tolerate a nil publisher so eventing stays optional.
type EventPublisher interface {
	Publish(event string, payload map[string]interface{}) error
}
