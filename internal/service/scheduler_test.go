package service

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestScheduleIntervalRunsJob(t *testing.T) {
	t.Parallel()

	s := NewScheduler(time.UTC)
	var runs atomic.Int32
	_, err := s.ScheduleInterval(time.Second, func() { runs.Add(1) })
	require.NoError(t, err)

	s.Start()
	defer s.Stop()

	require.Eventually(t, func() bool {
		return runs.Load() >= 1
	}, 5*time.Second, 50*time.Millisecond)
}

func TestScheduleIntervalRejectsNonPositive(t *testing.T) {
	t.Parallel()

	s := NewScheduler(nil)
	_, err := s.ScheduleInterval(0, func() {})
	require.Error(t, err)
	_, err = s.ScheduleInterval(-time.Minute, func() {})
	require.Error(t, err)
}
