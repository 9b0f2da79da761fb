// Implements the per-queue admission/service state machine. A Node is a
// finite-capacity single-server queue: it admits packets, drops on overflow,
// serves one packet at a time, and tracks cumulative and batched statistics.

package sim

import (
	"github.com/sirupsen/logrus"
)

// BatchSize is the number of offered (resp. transmitted) packets over which
// one loss-ratio (resp. mean sojourn time) batch is closed. Fixed-size batches
// give approximately independent samples for confidence-interval estimation.
const BatchSize = 5000

// OutcomeKind discriminates the results of Admit and Complete.
type OutcomeKind int

const (
	// ServiceStarted means the server picked up a packet; Outcome.Duration
	// holds the drawn service time.
	ServiceStarted OutcomeKind = iota + 1
	// Enqueued means the packet joined the waiting FIFO.
	Enqueued
	// Dropped means the packet was rejected because the waiting FIFO was full.
	Dropped
	// WentIdle means a completion found no waiting packet and the server
	// transitioned to idle.
	WentIdle
)

// Outcome is the result of one admission or completion. Duration is only
// meaningful when Kind == ServiceStarted.
type Outcome struct {
	Kind     OutcomeKind
	Duration float64
}

// Node is the state machine for one finite-capacity queue. Capacity bounds the
// waiting FIFO only; the packet in service occupies a separate slot, so the
// effective system capacity is Capacity+1.
type Node struct {
	ID          QueueID
	Name        string
	Capacity    int
	Downstream  []QueueID
	ServiceRate float64

	busy    bool
	waiting []float64 // FIFO of arrival times of waiting packets

	// Cumulative counters. At any instant:
	//   PacketsOffered == PacketsDropped + PacketsTransmitted + len(waiting) + busy
	PacketsOffered     int64
	PacketsDropped     int64
	PacketsTransmitted int64
	TotalWaitingTime   float64
	TotalServiceTime   float64

	// Batch accumulators, closed every BatchSize offered / transmitted packets.
	// BatchMeans and LossRatios are append-only and never retroactively modified.
	batchTime    float64
	batchDropped int64
	BatchMeans   []float64
	LossRatios   []float64

	rng *RandStream
}

// NewNode constructs a Node from its topology spec, injecting the simulation's
// shared random stream.
func NewNode(id QueueID, spec QueueSpec, rng *RandStream) *Node {
	return &Node{
		ID:          id,
		Name:        spec.Name,
		Capacity:    spec.Capacity,
		Downstream:  spec.Downstream,
		ServiceRate: spec.ServiceRate,
		waiting:     make([]float64, 0, spec.Capacity),
		rng:         rng,
	}
}

// Admit offers a packet arriving at the given time to this queue.
// At full waiting capacity the packet is dropped; this is a counted business
// outcome, not an error. The error return is reserved for a failed service
// draw, which cannot happen once the service rate has been validated.
func (n *Node) Admit(arrivalTime float64) (Outcome, error) {
	n.PacketsOffered++

	// Close a loss-ratio batch on every BatchSize-th offered packet. The
	// current packet counts toward this batch's offered total, but if it is
	// dropped below, that drop lands in the next batch.
	if n.PacketsOffered%BatchSize == 0 {
		n.closeLossBatch()
	}

	if len(n.waiting) == n.Capacity {
		n.PacketsDropped++
		n.batchDropped++
		return Outcome{Kind: Dropped}, nil
	}

	if !n.busy {
		n.busy = true
		duration, err := n.rng.ExpFloat(n.ServiceRate)
		if err != nil {
			return Outcome{}, err
		}
		n.TotalServiceTime += duration
		n.batchTime += duration
		return Outcome{Kind: ServiceStarted, Duration: duration}, nil
	}

	n.waiting = append(n.waiting, arrivalTime)
	return Outcome{Kind: Enqueued}, nil
}

// Complete records a service completion at the given time and, if packets are
// waiting, starts serving the oldest one. An empty FIFO is the normal path to
// the idle state, not an error.
func (n *Node) Complete(now float64) (Outcome, error) {
	n.PacketsTransmitted++

	// Close a sojourn batch before the next packet's waiting and service
	// times are accumulated.
	if n.PacketsTransmitted%BatchSize == 0 {
		n.closeSojournBatch()
	}

	if len(n.waiting) == 0 {
		n.busy = false
		return Outcome{Kind: WentIdle}, nil
	}

	arrivalTime := n.waiting[0]
	n.waiting = n.waiting[1:]

	waitingTime := now - arrivalTime
	if waitingTime < 0 {
		// Unreachable while the event queue keeps its (time, seq) ordering;
		// clamping silently would mask a scheduling defect.
		logrus.Warnf("%s: negative waiting time %.9f at t=%.5f, clamping to 0", n.Name, waitingTime, now)
		waitingTime = 0
	}
	n.TotalWaitingTime += waitingTime

	duration, err := n.rng.ExpFloat(n.ServiceRate)
	if err != nil {
		return Outcome{}, err
	}
	n.TotalServiceTime += duration
	n.batchTime += waitingTime + duration
	return Outcome{Kind: ServiceStarted, Duration: duration}, nil
}

// closeLossBatch appends the loss ratio of the last BatchSize offered packets.
func (n *Node) closeLossBatch() {
	n.LossRatios = append(n.LossRatios, float64(n.batchDropped)/float64(BatchSize))
	n.batchDropped = 0
}

// closeSojournBatch appends the mean sojourn time of the last BatchSize
// transmitted packets.
func (n *Node) closeSojournBatch() {
	n.BatchMeans = append(n.BatchMeans, n.batchTime/float64(BatchSize))
	n.batchTime = 0
}

// Busy reports whether a packet is currently in service.
func (n *Node) Busy() bool {
	return n.busy
}

// WaitingLen returns the number of packets in the waiting FIFO.
func (n *Node) WaitingLen() int {
	return len(n.waiting)
}
