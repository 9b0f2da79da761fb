// A Source is a stateless generator of successive Poisson arrivals for one
// traffic stream, feeding a fixed destination queue.

package sim

// Source generates arrival events at a rate derived from an offered load in
// Erlangs times the reference service rate. It holds no mutable state besides
// its parameters; successive arrivals differ only through the shared random
// stream.
type Source struct {
	ID          SourceID
	Rate        float64 // arrivals per second
	Destination QueueID

	rng *RandStream
}

// NewSource constructs a Source for the given offered load, injecting the
// simulation's shared random stream.
func NewSource(id SourceID, erlangs float64, destination QueueID, rng *RandStream) *Source {
	return &Source{
		ID:          id,
		Rate:        erlangs * ReferenceServiceRate,
		Destination: destination,
		rng:         rng,
	}
}

// NextArrival draws an exponential inter-arrival interval and returns the
// resulting Arrival event, timestamped currentTime + interval.
func (s *Source) NextArrival(currentTime float64) (*Event, error) {
	interval, err := s.rng.ExpFloat(s.Rate)
	if err != nil {
		return nil, err
	}
	return &Event{
		Time:        currentTime + interval,
		Kind:        KindArrival,
		Destination: s.Destination,
		Origin:      SourceOrigin(s.ID),
	}, nil
}
