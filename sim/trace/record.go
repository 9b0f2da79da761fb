// Package trace provides event-trace recording for simulation runs.
// This package has no dependencies on sim/ — it stores pure data types, so the
// same trace can be compared across runs for reproducibility checks.
package trace

// Action describes what the simulator did with an event.
type Action string

const (
	// ActionPolled marks an event dequeued and executed by the main loop.
	ActionPolled Action = "POLLED"
	// ActionScheduled marks an event inserted into the future event list.
	ActionScheduled Action = "SCHEDULED"
	// ActionDropped marks an admission rejection; drop events are recorded
	// here but never scheduled.
	ActionDropped Action = "DROPPED"
)

// EventRecord captures one event as the simulator handled it. Kind and Origin
// are the display strings of the corresponding sim types; Destination is the
// numeric queue identity.
type EventRecord struct {
	Time        float64
	Action      Action
	Kind        string
	Destination int
	Origin      string
}
