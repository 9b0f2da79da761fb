package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalRecords       int
	PolledCount        int
	ScheduledCount     int
	DroppedCount       int
	CountsByKind       map[string]int // event kind → polled count
	PolledByQueue      map[int]int    // destination queue → polled count
	UniqueDestinations int
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		CountsByKind:  make(map[string]int),
		PolledByQueue: make(map[int]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalRecords = len(st.Events)
	for _, e := range st.Events {
		switch e.Action {
		case ActionPolled:
			summary.PolledCount++
			summary.CountsByKind[e.Kind]++
			summary.PolledByQueue[e.Destination]++
		case ActionScheduled:
			summary.ScheduledCount++
		case ActionDropped:
			summary.DroppedCount++
		}
	}

	summary.UniqueDestinations = len(summary.PolledByQueue)

	return summary
}
