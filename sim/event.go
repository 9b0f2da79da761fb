// Defines the Event record that drives the simulation: a scheduled happening
// with a timestamp, kind, destination queue, and tagged origin.

package sim

import "fmt"

// EventKind discriminates the kinds of scheduled events.
type EventKind int

const (
	// KindArrival is a packet presenting itself to a queue for admission.
	KindArrival EventKind = iota + 1
	// KindDeparture is a queue finishing service on its current packet.
	KindDeparture
	// KindDrop marks an admission rejection due to full waiting capacity.
	// Drops are never scheduled; the kind exists for trace records.
	KindDrop
)

// String returns the human-readable name of the event kind.
func (k EventKind) String() string {
	switch k {
	case KindArrival:
		return "Arrival"
	case KindDeparture:
		return "Departure"
	case KindDrop:
		return "Packet Drop"
	default:
		return "Unknown"
	}
}

// OriginKind tags which identity an Origin carries.
type OriginKind int

const (
	// OriginSource means the event was produced by a traffic source.
	OriginSource OriginKind = iota + 1
	// OriginQueue means the event was produced by a queue (departure or
	// forwarded packet).
	OriginQueue
)

// Origin identifies where an event came from: either a Source or a Node.
// It is a tagged value inspected directly by the Simulator to decide whether
// an arrival should re-seed its source; only the field matching Kind is valid.
type Origin struct {
	Kind   OriginKind
	Source SourceID // valid when Kind == OriginSource
	Queue  QueueID  // valid when Kind == OriginQueue
}

// SourceOrigin builds an Origin referring to a traffic source.
func SourceOrigin(id SourceID) Origin {
	return Origin{Kind: OriginSource, Source: id}
}

// QueueOrigin builds an Origin referring to a queue.
func QueueOrigin(id QueueID) Origin {
	return Origin{Kind: OriginQueue, Queue: id}
}

// IsSource reports whether the origin refers to a traffic source.
func (o Origin) IsSource() bool {
	return o.Kind == OriginSource
}

// String renders the origin for logs and trace records.
func (o Origin) String() string {
	switch o.Kind {
	case OriginSource:
		return fmt.Sprintf("Source %d", o.Source)
	case OriginQueue:
		return fmt.Sprintf("Queue %d", o.Queue)
	default:
		return "Unknown"
	}
}

// Event is a scheduled happening in the simulation. Events are immutable once
// scheduled; the unexported seq is assigned by the EventQueue on insertion and
// provides the deterministic FIFO tie-break for equal timestamps.
type Event struct {
	Time        float64 // simulation time in seconds
	Kind        EventKind
	Destination QueueID
	Origin      Origin

	seq uint64
}

// String renders the event in the log/trace display format.
func (e *Event) String() string {
	return fmt.Sprintf("%s Event at %.5fs, Destination Queue: %d, Origin: %s",
		e.Kind, e.Time, e.Destination, e.Origin)
}
