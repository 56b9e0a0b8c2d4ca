package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/wortschatz/internal/tasks"
)

type fakeQueue struct {
	tasks []tasks.GenerateMissingAudioTask
	err   error
}

func (q *fakeQueue) Enqueue(_ context.Context, task tasks.GenerateMissingAudioTask) (string, error) {
	if q.err != nil {
		return "", q.err
	}
	q.tasks = append(q.tasks, task)
	return "task-1", nil
}

func TestValidateCronSchedule(t *testing.T) {
	assert.NoError(t, ValidateCronSchedule("0 3 * * *"))
	assert.NoError(t, ValidateCronSchedule("*/15 * * * *"))
	assert.Error(t, ValidateCronSchedule("every night"))
	assert.Error(t, ValidateCronSchedule("0 0 3 * * *"))
}

func TestAudioSyncScheduler_StartStop(t *testing.T) {
	s := NewAudioSyncScheduler(&fakeQueue{}, "", 0)

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())
	require.NotNil(t, s.NextRunTime())
	assert.Equal(t, 3, s.NextRunTime().Hour())

	// Starting twice is a no-op.
	require.NoError(t, s.Start(context.Background()))

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.NextRunTime())

	s.Stop()
}

func TestAudioSyncScheduler_InvalidSchedule(t *testing.T) {
	s := NewAudioSyncScheduler(&fakeQueue{}, "not a schedule", 0)

	err := s.Start(context.Background())
	assert.Error(t, err)
	assert.False(t, s.IsRunning())
}

func TestAudioSyncScheduler_StopsWithContext(t *testing.T) {
	s := NewAudioSyncScheduler(&fakeQueue{}, "0 * * * *", 0)
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, s.Start(ctx))
	cancel()

	assert.Eventually(t, func() bool { return !s.IsRunning() }, time.Second, 10*time.Millisecond)
}

func TestAudioSyncScheduler_RunNow(t *testing.T) {
	t.Run("enqueues with the configured start index", func(t *testing.T) {
		queue := &fakeQueue{}
		s := NewAudioSyncScheduler(queue, "", 480)

		id, err := s.RunNow(context.Background())
		require.NoError(t, err)

		assert.Equal(t, "task-1", id)
		assert.Equal(t, "task-1", s.LastTaskID())
		assert.Equal(t, []tasks.GenerateMissingAudioTask{{StartIndex: 480}}, queue.tasks)
	})

	t.Run("reports queue errors", func(t *testing.T) {
		s := NewAudioSyncScheduler(&fakeQueue{err: errors.New("database is locked")}, "", 0)

		_, err := s.RunNow(context.Background())
		assert.ErrorContains(t, err, "database is locked")
		assert.Empty(t, s.LastTaskID())
	})
}
