// Package sim provides the core discrete-event simulation engine for a tandem
// network of finite-capacity, single-server queues fed by Poisson sources.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - event.go: the Event record (time, kind, destination, tagged origin)
//   - eventqueue.go: the future event list, a min-heap keyed by (time, sequence)
//   - simulator.go: the main loop that pops events, dispatches to queues and
//     sources, and schedules the events they produce
//
// # Architecture
//
// The remaining pieces:
//   - node.go: the per-queue admission/service state machine and its batched
//     statistics
//   - source.go: Poisson traffic sources
//   - topology.go: the static queue graph and its validation
//   - config.go: YAML scenario loading
//   - rng.go: the shared exponential-variate stream
//   - metrics.go: final per-queue reports and batch-means summaries
//   - sim/trace/: pure-data event trace records for reproducibility checks
//
// Time is a float64 in seconds and advances only when an event is dequeued.
// Events with equal timestamps are processed in insertion order; the sequence
// number in the event heap makes that tie-break deterministic, which both the
// reproducibility guarantee and the packet-conservation invariant rely on.
//
// Everything is single-threaded. The one piece of shared mutable state besides
// the clock and the event queue is the RandStream, injected by reference into
// every Source and Node so a run draws from one coherent pseudo-random stream.
package sim
