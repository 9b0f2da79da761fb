// Defines the static queueing-network topology: which queues exist, their
// display names and waiting capacities, and where packets completing service
// are forwarded. Read-only after construction.

package sim

import (
	"fmt"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// QueueID identifies one queue in the topology.
type QueueID int

// NoQueue is the identity used when a queue has no downstream destination.
const NoQueue QueueID = -1

// SourceID identifies one traffic source.
type SourceID int

// ReferenceServiceRate is the fixed reference transmission rate (packets per
// second). Source arrival rates are derived from it by the offered-load
// fraction in Erlangs, and it is the default per-queue service rate.
const ReferenceServiceRate = 12500000.0

// QueueSpec describes one queue: its forwarding fan-out, display name, waiting
// capacity (excluding the in-service slot), and service rate.
type QueueSpec struct {
	Downstream  []QueueID
	Name        string
	Capacity    int
	ServiceRate float64
}

// Topology maps queue identities to their specs. It is consulted by the
// Simulator for departure fan-out and by node construction; it is never
// mutated after Validate has accepted it.
type Topology map[QueueID]QueueSpec

// Validate checks referential integrity and structural constraints:
// every downstream identity must name a queue in the topology, capacities must
// be non-negative, service rates positive, and the forwarding graph must be
// acyclic. Departures forward with zero propagation delay, so a cycle would
// admit unbounded chains of same-timestamp events.
func (t Topology) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("topology has no queues")
	}
	for id, spec := range t {
		if id < 0 {
			return fmt.Errorf("queue %d: identity must be non-negative", id)
		}
		if spec.Capacity < 0 {
			return fmt.Errorf("queue %d (%s): capacity %d is negative", id, spec.Name, spec.Capacity)
		}
		if spec.ServiceRate <= 0 {
			return fmt.Errorf("queue %d (%s): service rate %v must be positive", id, spec.Name, spec.ServiceRate)
		}
		for _, next := range spec.Downstream {
			if next == id {
				return fmt.Errorf("queue %d (%s): forwards to itself", id, spec.Name)
			}
			if _, ok := t[next]; !ok {
				return fmt.Errorf("queue %d (%s): downstream queue %d not in topology", id, spec.Name, next)
			}
		}
	}
	if err := t.checkAcyclic(); err != nil {
		return err
	}
	return nil
}

// checkAcyclic converts the forwarding relation into a gonum directed graph
// and topologically sorts it; an unorderable graph contains a cycle.
func (t Topology) checkAcyclic() error {
	g := simple.NewDirectedGraph()
	for id := range t {
		g.AddNode(simple.Node(id))
	}
	for id, spec := range t {
		for _, next := range spec.Downstream {
			g.SetEdge(g.NewEdge(simple.Node(id), simple.Node(next)))
		}
	}
	if _, err := topo.Sort(g); err != nil {
		return fmt.Errorf("topology contains a forwarding cycle: %w", err)
	}
	return nil
}
