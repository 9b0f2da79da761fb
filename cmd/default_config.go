package cmd

import (
	sim "github.com/queuenet-sim/queuenet-sim/sim"
)

// Queue identities of the built-in reference network.
const (
	queueOneA = iota
	queueOneB
	queueTwoA
	queueTwoB
	queueThreeA
	queueThreeB
	queueThreeC
	queueFourA
)

// DefaultScenario returns the built-in reference network: eight routers in a
// feed-forward mesh with four Poisson sources injecting at the first stage.
// Capacities are 10 waiting packets per router and every router serves at the
// reference rate.
func DefaultScenario() *sim.ScenarioConfig {
	return &sim.ScenarioConfig{
		Seed:        0,
		MaxArrivals: 10000,
		Sources: []sim.SourceSpec{
			{LoadErlangs: 0.5, Destination: queueOneA},
			{LoadErlangs: 0.3, Destination: queueOneA},
			{LoadErlangs: 0.4, Destination: queueOneB},
			{LoadErlangs: 0.2, Destination: queueTwoA},
		},
		Queues: []sim.QueueConfig{
			{ID: queueOneA, Name: "Router Q0", Capacity: 10, Downstream: []int{queueOneB, queueTwoA}},
			{ID: queueOneB, Name: "Router Q1", Capacity: 10, Downstream: []int{queueTwoB}},
			{ID: queueTwoA, Name: "Router Q2", Capacity: 10, Downstream: []int{queueThreeA, queueThreeB}},
			{ID: queueTwoB, Name: "Router Q3", Capacity: 10, Downstream: []int{queueThreeC}},
			{ID: queueThreeA, Name: "Router Q4", Capacity: 10},
			{ID: queueThreeB, Name: "Router Q5", Capacity: 10, Downstream: []int{queueFourA}},
			{ID: queueThreeC, Name: "Router Q6", Capacity: 10},
			{ID: queueFourA, Name: "Router Q7", Capacity: 10},
		},
	}
}
