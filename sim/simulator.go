// sim/simulator.go
package sim

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/queuenet-sim/queuenet-sim/sim/trace"
)

// Simulator is the core object that owns simulation time, the event queue, and
// all queues and sources of one run. It advances the clock strictly event by
// event: each popped event may produce new future events (a departure, a
// fan-out of downstream arrivals, the source's next arrival), which go back
// into the EventQueue.
type Simulator struct {
	Clock  float64
	Events *EventQueue
	Nodes  map[QueueID]*Node
	// Sources indexed by SourceID
	Sources []*Source
	// MaxArrivals is the halting budget of source-originated arrivals.
	MaxArrivals  int64
	ArrivalsSeen int64
	// Rand is the single random stream shared by every Source and Node.
	Rand  *RandStream
	Trace *trace.SimulationTrace
}

// NewSimulator builds a Simulator from a validated scenario. All Nodes and
// Sources share one RandStream seeded from the scenario, so a run corresponds
// to one coherent pseudo-random stream.
func NewSimulator(cfg *ScenarioConfig, level trace.TraceLevel) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	topology, err := cfg.Topology()
	if err != nil {
		return nil, err
	}

	rng := NewRandStream(NewSimulationKey(cfg.Seed))

	nodes := make(map[QueueID]*Node, len(topology))
	for id, spec := range topology {
		nodes[id] = NewNode(id, spec, rng)
	}

	sources := make([]*Source, 0, len(cfg.Sources))
	for i, spec := range cfg.Sources {
		sources = append(sources, NewSource(SourceID(i), spec.LoadErlangs, QueueID(spec.Destination), rng))
	}

	return &Simulator{
		Events:      NewEventQueue(),
		Nodes:       nodes,
		Sources:     sources,
		MaxArrivals: cfg.MaxArrivals,
		Rand:        rng,
		Trace:       trace.NewSimulationTrace(level),
	}, nil
}

// Schedule inserts an event into the simulator's EventQueue and records it in
// the trace.
func (s *Simulator) Schedule(ev *Event) {
	s.Events.Schedule(ev)
	s.record(trace.ActionScheduled, ev)
}

// Run executes the main loop until the arrival budget is reached or the event
// queue empties. It returns an error on an ordering-invariant violation (an
// event popped with a timestamp earlier than the current clock), which is a
// scheduling defect and must never be silently accepted.
func (s *Simulator) Run() error {
	if err := s.seedInitialArrivals(); err != nil {
		return err
	}

	for s.ArrivalsSeen < s.MaxArrivals {
		ev, ok := s.Events.PopEarliest()
		if !ok {
			break
		}
		if ev.Time < s.Clock {
			return fmt.Errorf("ordering defect: popped %s behind clock %.9fs", ev, s.Clock)
		}
		s.Clock = ev.Time
		s.record(trace.ActionPolled, ev)
		logrus.Debugf("[t=%.5fs] Executing %s", s.Clock, ev)

		var err error
		switch ev.Kind {
		case KindArrival:
			err = s.handleArrival(ev)
		case KindDeparture:
			err = s.handleDeparture(ev)
		default:
			err = fmt.Errorf("unexpected event kind %d in queue", ev.Kind)
		}
		if err != nil {
			return err
		}
	}
	logrus.Infof("[t=%.5fs] Simulation ended after %d source arrivals", s.Clock, s.ArrivalsSeen)
	return nil
}

// seedInitialArrivals has every source emit one initial arrival so the event
// queue starts non-empty. Each counts against the arrival budget.
func (s *Simulator) seedInitialArrivals() error {
	for _, src := range s.Sources {
		ev, err := src.NextArrival(s.Clock)
		if err != nil {
			return fmt.Errorf("source %d initial arrival: %w", src.ID, err)
		}
		s.Schedule(ev)
		s.ArrivalsSeen++
	}
	return nil
}

// handleArrival offers the packet to the destination queue. An immediate
// service start schedules the corresponding departure; if the arrival came
// from a source, that source is asked for its next arrival so the stream never
// dries up.
func (s *Simulator) handleArrival(ev *Event) error {
	node, ok := s.Nodes[ev.Destination]
	if !ok {
		return fmt.Errorf("arrival for unknown queue %d", ev.Destination)
	}

	outcome, err := node.Admit(s.Clock)
	if err != nil {
		return fmt.Errorf("%s admit: %w", node.Name, err)
	}
	switch outcome.Kind {
	case ServiceStarted:
		s.Schedule(&Event{
			Time:        s.Clock + outcome.Duration,
			Kind:        KindDeparture,
			Destination: node.ID,
			Origin:      QueueOrigin(node.ID),
		})
	case Dropped:
		s.record(trace.ActionDropped, &Event{
			Time:        s.Clock,
			Kind:        KindDrop,
			Destination: node.ID,
			Origin:      ev.Origin,
		})
	}

	if ev.Origin.IsSource() {
		id := ev.Origin.Source
		if int(id) >= len(s.Sources) {
			return fmt.Errorf("arrival from unknown source %d", id)
		}
		next, err := s.Sources[id].NextArrival(s.Clock)
		if err != nil {
			return fmt.Errorf("source %d next arrival: %w", id, err)
		}
		s.Schedule(next)
		s.ArrivalsSeen++
	}
	return nil
}

// handleDeparture completes service at the destination queue. If a waiting
// packet was picked up, its departure is scheduled; regardless, the departing
// packet is offered to every downstream queue at the current clock (zero
// propagation delay) with this queue as origin.
func (s *Simulator) handleDeparture(ev *Event) error {
	node, ok := s.Nodes[ev.Destination]
	if !ok {
		return fmt.Errorf("departure for unknown queue %d", ev.Destination)
	}

	outcome, err := node.Complete(s.Clock)
	if err != nil {
		return fmt.Errorf("%s complete: %w", node.Name, err)
	}
	if outcome.Kind == ServiceStarted {
		s.Schedule(&Event{
			Time:        s.Clock + outcome.Duration,
			Kind:        KindDeparture,
			Destination: node.ID,
			Origin:      QueueOrigin(node.ID),
		})
	}

	for _, next := range node.Downstream {
		if next == NoQueue {
			continue
		}
		s.Schedule(&Event{
			Time:        s.Clock,
			Kind:        KindArrival,
			Destination: next,
			Origin:      QueueOrigin(node.ID),
		})
	}
	return nil
}

// record appends an event record to the trace if tracing is enabled.
func (s *Simulator) record(action trace.Action, ev *Event) {
	if !s.Trace.Enabled() {
		return
	}
	s.Trace.Record(trace.EventRecord{
		Time:        ev.Time,
		Action:      action,
		Kind:        ev.Kind.String(),
		Destination: int(ev.Destination),
		Origin:      ev.Origin.String(),
	})
}

// Metrics collects the final per-queue statistics for reporting.
func (s *Simulator) Metrics() *Metrics {
	ids := make([]QueueID, 0, len(s.Nodes))
	for id := range s.Nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	reports := make([]NodeReport, 0, len(ids))
	for _, id := range ids {
		reports = append(reports, s.Nodes[id].Report())
	}
	return &Metrics{
		SimEndedTime: s.Clock,
		ArrivalsSeen: s.ArrivalsSeen,
		Reports:      reports,
	}
}
