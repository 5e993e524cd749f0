package app

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dice-counter/internal/domain/entity"
)

func announcements(tr *StabilityTracker, totals []int) (fired []int, values []int) {
	for i, total := range totals {
		d := tr.Observe(total)
		if d.ShouldAnnounce {
			fired = append(fired, i)
			values = append(values, d.Value)
		}
	}
	return fired, values
}

func TestStabilityTracker_ConcreteScenario(t *testing.T) {
	tr := NewStabilityTracker(3)
	fired, values := announcements(tr, []int{5, 5, 5, 5, 7, 7, 7})

	require.Equal(t, []int{2, 6}, fired)
	require.Equal(t, []int{5, 7}, values)
}

func TestStabilityTracker_States(t *testing.T) {
	tr := NewStabilityTracker(3)
	require.Equal(t, entity.StateUnstable, tr.State())

	want := []entity.DetectionState{
		entity.StateUnstable, entity.StateUnstable, entity.StateAnnounced,
		entity.StateStable, entity.StateUnstable,
	}
	for i, total := range []int{5, 5, 5, 5, 7} {
		require.Equal(t, want[i], tr.Observe(total).State, "frame %d", i)
	}
}

func TestStabilityTracker_LeadingEdgeOnly(t *testing.T) {
	const window = 10
	tr := NewStabilityTracker(window)

	totals := make([]int, 2*window)
	for i := range totals {
		totals[i] = 4
	}
	fired, _ := announcements(tr, totals)
	require.Equal(t, []int{window - 1}, fired)
}

func TestStabilityTracker_ReArm(t *testing.T) {
	const window = 5
	tr := NewStabilityTracker(window)

	var totals []int
	for i := 0; i < window; i++ {
		totals = append(totals, 6)
	}
	totals = append(totals, 2)
	for i := 0; i < window; i++ {
		totals = append(totals, 9)
	}

	fired, values := announcements(tr, totals)
	require.Len(t, fired, 2)
	require.Equal(t, []int{6, 9}, values)
	require.Equal(t, len(totals)-1, fired[1])
}

func TestStabilityTracker_SameValueAfterBlipReannounces(t *testing.T) {
	tr := NewStabilityTracker(3)
	fired, values := announcements(tr, []int{8, 8, 8, 3, 8, 8, 8})
	require.Equal(t, []int{2, 6}, fired)
	require.Equal(t, []int{8, 8}, values)
}

func TestStabilityTracker_PartialRunNeverSettles(t *testing.T) {
	tr := NewStabilityTracker(4)
	fired, _ := announcements(tr, []int{1, 1, 1, 2, 2, 2, 3, 3, 3})
	require.Empty(t, fired)
}

func TestStabilityTracker_ZeroIsAnnounced(t *testing.T) {
	tr := NewStabilityTracker(3)
	fired, values := announcements(tr, []int{0, 0, 0})
	require.Equal(t, []int{2}, fired)
	require.Equal(t, []int{0}, values)
}

func TestStabilityTracker_WindowBounded(t *testing.T) {
	tr := NewStabilityTracker(3)
	for i := 0; i < 10; i++ {
		tr.Observe(i)
		require.LessOrEqual(t, tr.Len(), 3)
	}
	require.Equal(t, 3, tr.Len())
}

func TestStabilityTracker_DefaultCapacityAndReset(t *testing.T) {
	tr := NewStabilityTracker(0)
	require.Equal(t, DefaultWindowCapacity, tr.Capacity())

	tr = NewStabilityTracker(2)
	tr.Observe(1)
	tr.Observe(1)
	require.Equal(t, entity.StateAnnounced, tr.State())

	tr.Reset()
	require.Equal(t, 0, tr.Len())
	require.Equal(t, entity.StateUnstable, tr.State())
	tr.Observe(1)
	require.True(t, tr.Observe(1).ShouldAnnounce)
}
