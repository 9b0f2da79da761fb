// Tracks final per-queue statistics for reporting at the end of a run.

package sim

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// NodeReport is the reporting snapshot of one queue at simulation end: the
// cumulative counters plus the ordered batch sequences. The batch sequences
// are append-only during the run and copied here, so a report never changes
// after it is taken.
type NodeReport struct {
	ID                 QueueID
	Name               string
	PacketsOffered     int64
	PacketsDropped     int64
	PacketsTransmitted int64
	TotalWaitingTime   float64
	TotalServiceTime   float64
	BatchMeans         []float64 // mean sojourn time per BatchSize transmitted packets (s)
	LossRatios         []float64 // loss ratio per BatchSize offered packets
}

// Report takes the reporting snapshot of this node.
func (n *Node) Report() NodeReport {
	return NodeReport{
		ID:                 n.ID,
		Name:               n.Name,
		PacketsOffered:     n.PacketsOffered,
		PacketsDropped:     n.PacketsDropped,
		PacketsTransmitted: n.PacketsTransmitted,
		TotalWaitingTime:   n.TotalWaitingTime,
		TotalServiceTime:   n.TotalServiceTime,
		BatchMeans:         append([]float64(nil), n.BatchMeans...),
		LossRatios:         append([]float64(nil), n.LossRatios...),
	}
}

// DropRatio returns dropped/offered, or 0 before any packet was offered.
func (r NodeReport) DropRatio() float64 {
	if r.PacketsOffered == 0 {
		return 0
	}
	return float64(r.PacketsDropped) / float64(r.PacketsOffered)
}

// AvgSojournMillis returns the mean time a transmitted packet spent in the
// queue (waiting plus service), in milliseconds.
func (r NodeReport) AvgSojournMillis() float64 {
	if r.PacketsTransmitted == 0 {
		return 0
	}
	return (r.TotalWaitingTime + r.TotalServiceTime) / float64(r.PacketsTransmitted) * 1000
}

// BatchSummary condenses a batch-means sequence into point and interval
// estimates. Batches are treated as independent samples, which is the point of
// the batch-means technique.
type BatchSummary struct {
	N           int
	Mean        float64
	StdDev      float64
	HalfWidth95 float64 // normal-approximation 95% confidence half-width
}

// SummarizeBatches computes mean, standard deviation, and 95% confidence
// half-width over a batch sequence. Fewer than two samples yield zero spread.
func SummarizeBatches(samples []float64) BatchSummary {
	s := BatchSummary{N: len(samples)}
	if len(samples) == 0 {
		return s
	}
	s.Mean = stat.Mean(samples, nil)
	if len(samples) > 1 {
		s.StdDev = stat.StdDev(samples, nil)
		s.HalfWidth95 = 1.96 * s.StdDev / math.Sqrt(float64(len(samples)))
	}
	return s
}

// Metrics aggregates statistics about the simulation for final reporting.
type Metrics struct {
	SimEndedTime float64
	ArrivalsSeen int64
	Reports      []NodeReport
}

// Print displays per-queue statistics at the end of the simulation.
func (m *Metrics) Print() {
	fmt.Println("=== Simulation Metrics ===")
	fmt.Printf("Source arrivals processed : %d\n", m.ArrivalsSeen)
	fmt.Printf("Simulation ended at       : %.5f s\n", m.SimEndedTime)
	for _, r := range m.Reports {
		fmt.Printf("------------- %s -------------\n", r.Name)
		fmt.Printf("Packets Transmitted: %d\n", r.PacketsTransmitted)
		fmt.Printf("Packets dropped ratio: %.5f\n", r.DropRatio())
		fmt.Printf("Packets dropped: %d\n", r.PacketsDropped)
		fmt.Printf("Average Transmission time (ms): %.5f\n", r.AvgSojournMillis())
	}
}

// PrintBatches displays the batch means and loss ratios collected every
// BatchSize packets, with their confidence summaries.
func (m *Metrics) PrintBatches() {
	for _, r := range m.Reports {
		fmt.Printf("----------------- %s --------------\n", r.Name)
		fmt.Printf("Batch means per %d transmitted packets (in s):\n", BatchSize)
		fmt.Println("===========================================")
		for _, bm := range r.BatchMeans {
			fmt.Printf("%.5f\n", bm)
		}
		if s := SummarizeBatches(r.BatchMeans); s.N > 1 {
			fmt.Printf("mean %.6g +/- %.6g (95%%, n=%d)\n", s.Mean, s.HalfWidth95, s.N)
		}
		fmt.Println("===========================================")
		fmt.Printf("Lost packet ratio per %d offered packets:\n", BatchSize)
		fmt.Println("===========================================")
		for _, lr := range r.LossRatios {
			fmt.Printf("%.5f\n", lr)
		}
		if s := SummarizeBatches(r.LossRatios); s.N > 1 {
			fmt.Printf("mean %.6g +/- %.6g (95%%, n=%d)\n", s.Mean, s.HalfWidth95, s.N)
		}
		fmt.Println("===========================================")
	}
}
