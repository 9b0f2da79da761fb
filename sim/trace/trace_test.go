package trace

import (
	"testing"
)

func TestSimulationTrace_Record_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for events
	st := NewSimulationTrace(TraceLevelEvents)

	// WHEN an event record is recorded
	st.Record(EventRecord{
		Time:        0.00125,
		Action:      ActionPolled,
		Kind:        "Arrival",
		Destination: 0,
		Origin:      "Source 1",
	})

	// THEN the trace contains one record with correct data
	if len(st.Events) != 1 {
		t.Fatalf("expected 1 record, got %d", len(st.Events))
	}
	if st.Events[0].Origin != "Source 1" {
		t.Errorf("expected origin Source 1, got %s", st.Events[0].Origin)
	}
	if st.Events[0].Action != ActionPolled {
		t.Errorf("expected POLLED, got %s", st.Events[0].Action)
	}
}

func TestSimulationTrace_DisabledLevel_RecordsNothing(t *testing.T) {
	// GIVEN a trace at level none
	st := NewSimulationTrace(TraceLevelNone)

	// WHEN records are offered
	st.Record(EventRecord{Time: 1, Action: ActionPolled, Kind: "Arrival"})
	st.Record(EventRecord{Time: 2, Action: ActionScheduled, Kind: "Departure"})

	// THEN nothing is collected
	if len(st.Events) != 0 {
		t.Fatalf("expected 0 records at level none, got %d", len(st.Events))
	}
	if st.Enabled() {
		t.Error("trace at level none reports enabled")
	}
}

func TestSimulationTrace_NilSafe(t *testing.T) {
	// GIVEN a nil trace
	var st *SimulationTrace

	// WHEN used
	st.Record(EventRecord{Time: 1})

	// THEN no panic and not enabled
	if st.Enabled() {
		t.Error("nil trace reports enabled")
	}
}

func TestSimulationTrace_MultipleRecords_PreservesOrder(t *testing.T) {
	// GIVEN a trace
	st := NewSimulationTrace(TraceLevelEvents)

	// WHEN multiple records are added
	st.Record(EventRecord{Time: 0.1, Action: ActionScheduled, Kind: "Arrival", Destination: 0})
	st.Record(EventRecord{Time: 0.1, Action: ActionPolled, Kind: "Arrival", Destination: 0})
	st.Record(EventRecord{Time: 0.1, Action: ActionDropped, Kind: "Packet Drop", Destination: 0})

	// THEN insertion order is preserved
	want := []Action{ActionScheduled, ActionPolled, ActionDropped}
	for i, a := range want {
		if st.Events[i].Action != a {
			t.Errorf("record %d: got %s, want %s", i, st.Events[i].Action, a)
		}
	}
}

func TestIsValidTraceLevel(t *testing.T) {
	for _, level := range []string{"", "none", "events"} {
		if !IsValidTraceLevel(level) {
			t.Errorf("expected %q to be valid", level)
		}
	}
	if IsValidTraceLevel("verbose") {
		t.Error("expected verbose to be invalid")
	}
}
