package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNode(t *testing.T, capacity int, seed int64) *Node {
	t.Helper()
	rng := NewRandStream(NewSimulationKey(seed))
	return NewNode(0, QueueSpec{
		Name:        "Router T0",
		Capacity:    capacity,
		ServiceRate: ReferenceServiceRate,
	}, rng)
}

// conservation checks the packet-conservation invariant:
// offered = dropped + transmitted + waiting + in-service.
func conservation(t *testing.T, n *Node) {
	t.Helper()
	inService := int64(0)
	if n.Busy() {
		inService = 1
	}
	require.Equal(t, n.PacketsOffered,
		n.PacketsDropped+n.PacketsTransmitted+int64(n.WaitingLen())+inService,
		"packet conservation violated")
}

func TestNode_Admit_IdleStartsService(t *testing.T) {
	// GIVEN an idle node
	n := newTestNode(t, 10, 1)

	// WHEN a packet is admitted
	outcome, err := n.Admit(0)

	// THEN service starts immediately with a positive duration
	require.NoError(t, err)
	require.Equal(t, ServiceStarted, outcome.Kind)
	assert.Greater(t, outcome.Duration, 0.0)
	assert.True(t, n.Busy())
	assert.Equal(t, 0, n.WaitingLen())
	assert.Equal(t, outcome.Duration, n.TotalServiceTime)
	conservation(t, n)
}

func TestNode_Admit_BusyEnqueues(t *testing.T) {
	n := newTestNode(t, 10, 1)
	_, err := n.Admit(0)
	require.NoError(t, err)

	outcome, err := n.Admit(0.001)
	require.NoError(t, err)
	assert.Equal(t, Enqueued, outcome.Kind)
	assert.Equal(t, 1, n.WaitingLen())
	conservation(t, n)
}

func TestNode_InServicePacketDoesNotConsumeWaitingCapacity(t *testing.T) {
	// GIVEN a node with waiting capacity 1
	n := newTestNode(t, 1, 1)

	// WHEN the first packet arrives at t=0, the server takes it
	first, err := n.Admit(0)
	require.NoError(t, err)
	require.Equal(t, ServiceStarted, first.Kind)

	// AND a second packet arrives just after, before the first departs
	second, err := n.Admit(0.00001)
	require.NoError(t, err)

	// THEN it is enqueued, not dropped: the in-service packet does not count
	// against the waiting bound
	assert.Equal(t, Enqueued, second.Kind)

	// AND a third packet before any departure is dropped
	third, err := n.Admit(0.00002)
	require.NoError(t, err)
	assert.Equal(t, Dropped, third.Kind)
	assert.EqualValues(t, 1, n.PacketsDropped)
	conservation(t, n)
}

func TestNode_CapacityBound_NeverExceeded(t *testing.T) {
	n := newTestNode(t, 3, 2)
	for i := 0; i < 50; i++ {
		_, err := n.Admit(float64(i) * 1e-8)
		require.NoError(t, err)
		assert.LessOrEqual(t, n.WaitingLen(), 3)
	}
	conservation(t, n)
	assert.EqualValues(t, 50, n.PacketsOffered)
	assert.EqualValues(t, 46, n.PacketsDropped) // one in service, three waiting
}

func TestNode_ZeroCapacity_DropsEvenWhenIdle(t *testing.T) {
	// A zero waiting capacity rejects every packet before the busy check, so
	// the server never starts. Matches the admission order: capacity first.
	n := newTestNode(t, 0, 3)
	outcome, err := n.Admit(0)
	require.NoError(t, err)
	assert.Equal(t, Dropped, outcome.Kind)
	assert.False(t, n.Busy())
	conservation(t, n)
}

func TestNode_Complete_EmptyFIFOGoesIdle(t *testing.T) {
	// GIVEN a node serving one packet with nothing waiting
	n := newTestNode(t, 10, 4)
	_, err := n.Admit(0)
	require.NoError(t, err)

	// WHEN service completes
	outcome, err := n.Complete(0.5)

	// THEN the node goes idle; this is a normal outcome, not an error
	require.NoError(t, err)
	assert.Equal(t, WentIdle, outcome.Kind)
	assert.False(t, n.Busy())
	assert.EqualValues(t, 1, n.PacketsTransmitted)
	conservation(t, n)
}

func TestNode_Complete_ServesWaitersInFIFOOrder(t *testing.T) {
	// GIVEN a busy node with waiters that arrived at t=1, t=2, t=3
	n := newTestNode(t, 10, 5)
	_, err := n.Admit(0)
	require.NoError(t, err)
	for _, at := range []float64{1, 2, 3} {
		out, err := n.Admit(at)
		require.NoError(t, err)
		require.Equal(t, Enqueued, out.Kind)
	}

	// WHEN completions happen at t=10, t=20, t=30
	// THEN accumulated waiting time reflects oldest-first service
	for _, now := range []float64{10, 20, 30} {
		out, err := n.Complete(now)
		require.NoError(t, err)
		require.Equal(t, ServiceStarted, out.Kind)
	}
	// 10-1 + 20-2 + 30-3
	assert.InDelta(t, 54.0, n.TotalWaitingTime, 1e-12)
	conservation(t, n)
}

func TestNode_Complete_NegativeWaitingClampedToZero(t *testing.T) {
	// GIVEN a waiter whose recorded arrival is later than the completion time
	// (only reachable if event ordering were broken; the clamp is defensive)
	n := newTestNode(t, 10, 6)
	_, err := n.Admit(0)
	require.NoError(t, err)
	out, err := n.Admit(5.0)
	require.NoError(t, err)
	require.Equal(t, Enqueued, out.Kind)

	// WHEN completing at an earlier time
	outcome, err := n.Complete(1.0)

	// THEN the waiting time is clamped to zero rather than going negative
	require.NoError(t, err)
	assert.Equal(t, ServiceStarted, outcome.Kind)
	assert.Equal(t, 0.0, n.TotalWaitingTime)
}

func TestNode_LossRatioBatch_ClosesEvery5000Offered(t *testing.T) {
	// GIVEN a node offered 4999 packets with waiting capacity 10 and no
	// completions: 1 goes into service, 10 wait, 4988 drop
	n := newTestNode(t, 10, 7)
	for i := 0; i < BatchSize-1; i++ {
		_, err := n.Admit(float64(i) * 1e-9)
		require.NoError(t, err)
	}
	require.Empty(t, n.LossRatios)
	require.EqualValues(t, BatchSize-12, n.PacketsDropped)

	// WHEN one completion frees a slot and the 5000th packet is offered
	_, err := n.Complete(1.0)
	require.NoError(t, err)
	out, err := n.Admit(1.0)
	require.NoError(t, err)
	require.Equal(t, Enqueued, out.Kind)

	// THEN exactly one loss-ratio batch closes, covering those 5000 packets
	require.Len(t, n.LossRatios, 1)
	assert.InDelta(t, float64(BatchSize-12)/float64(BatchSize), n.LossRatios[0], 1e-15)
	conservation(t, n)
}

func TestNode_SojournBatch_ClosesEvery5000Transmitted(t *testing.T) {
	// GIVEN 5000 packets served one at a time with no queueing
	n := newTestNode(t, 10, 8)
	now := 0.0
	for i := 0; i < BatchSize; i++ {
		out, err := n.Admit(now)
		require.NoError(t, err)
		require.Equal(t, ServiceStarted, out.Kind)
		now += out.Duration
		done, err := n.Complete(now)
		require.NoError(t, err)
		require.Equal(t, WentIdle, done.Kind)
	}

	// THEN exactly one sojourn batch closes, its mean equal to the mean
	// service time (no packet ever waited)
	require.Len(t, n.BatchMeans, 1)
	assert.InDelta(t, n.TotalServiceTime/float64(BatchSize), n.BatchMeans[0], 1e-12)
	assert.Equal(t, 0.0, n.TotalWaitingTime)
	conservation(t, n)
}

func TestNode_BatchSequences_AppendOnly(t *testing.T) {
	// GIVEN two full loss batches
	n := newTestNode(t, 0, 9)
	for i := 0; i < BatchSize; i++ {
		_, err := n.Admit(0)
		require.NoError(t, err)
	}
	require.Len(t, n.LossRatios, 1)
	first := n.LossRatios[0]

	// WHEN the next batch fills
	for i := 0; i < BatchSize; i++ {
		_, err := n.Admit(0)
		require.NoError(t, err)
	}

	// THEN the earlier value is untouched and the new one appended
	require.Len(t, n.LossRatios, 2)
	assert.Equal(t, first, n.LossRatios[0])
}
