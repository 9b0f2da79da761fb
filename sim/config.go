package sim

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SourceSpec configures one traffic source: its offered load in Erlangs and
// the queue its arrivals are directed to.
type SourceSpec struct {
	LoadErlangs float64 `yaml:"load_erlangs"`
	Destination int     `yaml:"destination"`
}

// QueueConfig configures one queue of the network.
type QueueConfig struct {
	ID         int    `yaml:"id"`
	Name       string `yaml:"name"`
	Capacity   int    `yaml:"capacity"`
	Downstream []int  `yaml:"downstream,omitempty"`
	// ServiceRate in packets per second; 0 means ReferenceServiceRate.
	ServiceRate float64 `yaml:"service_rate,omitempty"`
}

// ScenarioConfig is the full simulation scenario: random seed, halting budget
// of source-originated arrivals, traffic sources, and network topology.
// Loaded from YAML via LoadScenario(path).
type ScenarioConfig struct {
	Seed        int64         `yaml:"seed"`
	MaxArrivals int64         `yaml:"max_arrivals"`
	Sources     []SourceSpec  `yaml:"sources"`
	Queues      []QueueConfig `yaml:"queues"`
}

// LoadScenario reads and parses a scenario YAML file.
func LoadScenario(path string) (*ScenarioConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML. Unknown fields are rejected so that a
// misspelled key fails loudly instead of silently using a default.
func ParseScenario(data []byte) (*ScenarioConfig, error) {
	var cfg ScenarioConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Topology builds the validated Topology described by the Queues section.
func (c *ScenarioConfig) Topology() (Topology, error) {
	t := make(Topology, len(c.Queues))
	for _, q := range c.Queues {
		if _, dup := t[QueueID(q.ID)]; dup {
			return nil, fmt.Errorf("queue %d defined twice", q.ID)
		}
		rate := q.ServiceRate
		if rate == 0 {
			rate = ReferenceServiceRate
		}
		downstream := make([]QueueID, 0, len(q.Downstream))
		for _, next := range q.Downstream {
			downstream = append(downstream, QueueID(next))
		}
		t[QueueID(q.ID)] = QueueSpec{
			Downstream:  downstream,
			Name:        q.Name,
			Capacity:    q.Capacity,
			ServiceRate: rate,
		}
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks the scenario before any simulation state is built: the
// arrival budget must be positive, at least one source must exist, source
// loads must be positive, and every source destination must name a queue.
// Topology-level constraints are checked by Topology().
func (c *ScenarioConfig) Validate() error {
	if c.MaxArrivals <= 0 {
		return fmt.Errorf("max_arrivals must be positive, got %d", c.MaxArrivals)
	}
	if len(c.Sources) == 0 {
		return fmt.Errorf("scenario has no sources")
	}
	if len(c.Queues) == 0 {
		return fmt.Errorf("scenario has no queues")
	}
	queueIDs := make(map[int]bool, len(c.Queues))
	for _, q := range c.Queues {
		queueIDs[q.ID] = true
	}
	for i, src := range c.Sources {
		if src.LoadErlangs <= 0 {
			return fmt.Errorf("source %d: load %v Erlangs must be positive", i, src.LoadErlangs)
		}
		if !queueIDs[src.Destination] {
			return fmt.Errorf("source %d: destination queue %d not defined", i, src.Destination)
		}
	}
	return nil
}
