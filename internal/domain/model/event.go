package model

// EventType classifies an inbound OpenMeter notification delivery.
type EventType string

const (
	// EventBalanceThreshold fires when cumulative usage crosses a configured
	// percentage of the entitlement quota.
	EventBalanceThreshold EventType = "entitlements.balance.threshold"
	// EventNotificationTest is emitted by the "Send Test" action of a
	// notification channel.
	EventNotificationTest EventType = "notification.test"
)

// Event is the classified inbound envelope. Every field besides Type is
// optional; accessors on the nested types define the defaults.
type Event struct {
	ID        string
	Type      EventType
	Subject   Subject
	Feature   Feature
	MeterSlug string
	Threshold Threshold
	Usage     Usage
}

// Relevant reports whether the event type triggers an outbound notification.
func (e Event) Relevant() bool {
	return e.Type == EventBalanceThreshold || e.Type == EventNotificationTest
}

// Feature identifies the metered feature the threshold applies to.
type Feature struct {
	Key         string
	Name        string
	DisplayName string
}

// Display returns the human-facing feature name with a neutral default.
func (f Feature) Display() string {
	if f.DisplayName != "" {
		return f.DisplayName
	}
	if f.Name != "" {
		return f.Name
	}
	return "Unknown feature"
}
