package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/queuenet-sim/queuenet-sim/sim"
	"github.com/queuenet-sim/queuenet-sim/sim/trace"
)

var (
	// CLI flags for the simulation run
	configPath  string // Path to a scenario YAML file; empty uses the built-in default network
	seed        int64  // Seed for the shared random stream
	maxArrivals int64  // Halting budget of source-originated arrivals
	logLevel    string // Log verbosity level
	traceLevel  string // Event trace level ("none" or "events")
	showBatches bool   // Print per-queue batch means and loss ratios
	showEvents  bool   // Print every traced event record
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "queuenet-sim",
	Short: "Discrete-event simulator for tandem queueing networks",
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the queueing-network simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level: %s", traceLevel)
		}
		if showEvents && trace.TraceLevel(traceLevel) != trace.TraceLevelEvents {
			traceLevel = string(trace.TraceLevelEvents)
		}

		cfg := DefaultScenario()
		if configPath != "" {
			cfg, err = sim.LoadScenario(configPath)
			if err != nil {
				logrus.Fatalf("Unable to load scenario %s: %v", configPath, err)
			}
		}
		// Flags override the scenario file when set explicitly.
		if cmd.Flags().Changed("seed") {
			cfg.Seed = seed
		}
		if cmd.Flags().Changed("max-arrivals") {
			cfg.MaxArrivals = maxArrivals
		}

		logrus.Infof("Starting simulation with %d queues, %d sources, budget=%d arrivals, seed=%d",
			len(cfg.Queues), len(cfg.Sources), cfg.MaxArrivals, cfg.Seed)

		startTime := time.Now()

		s, err := sim.NewSimulator(cfg, trace.TraceLevel(traceLevel))
		if err != nil {
			logrus.Fatalf("Unable to build simulator: %v", err)
		}
		if err := s.Run(); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}

		m := s.Metrics()
		m.Print()
		if showBatches {
			m.PrintBatches()
		}
		if showEvents {
			for _, rec := range s.Trace.Events {
				fmt.Printf("[Time=%.5f] %s: %s Event, Destination Queue: %d, Origin: %s\n",
					rec.Time, rec.Action, rec.Kind, rec.Destination, rec.Origin)
			}
		}

		logrus.Infof("Simulation complete in %v.", time.Since(startTime))
	},
}

func init() {
	runCmd.Flags().StringVar(&configPath, "config", "", "Path to scenario YAML (default: built-in reference network)")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "Seed for the shared random stream")
	runCmd.Flags().Int64Var(&maxArrivals, "max-arrivals", 10000, "Number of source-originated arrivals before halting")
	runCmd.Flags().StringVar(&logLevel, "log-level", "warn", "Log level (trace, debug, info, warn, error)")
	runCmd.Flags().StringVar(&traceLevel, "trace", string(trace.TraceLevelNone), "Event trace level (none, events)")
	runCmd.Flags().BoolVar(&showBatches, "show-batches", false, "Print batch means and loss ratios per queue")
	runCmd.Flags().BoolVar(&showEvents, "show-events", false, "Print all traced event records (implies --trace events)")

	rootCmd.AddCommand(runCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
