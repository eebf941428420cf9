package wizard

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleDeliversResult(t *testing.T) {
	task := Schedule(context.Background(), 0, func(context.Context) (string, error) {
		return "done", nil
	})
	got, err := task.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "done", got)

	select {
	case <-task.Done():
	default:
		t.Fatal("expected Done to be closed after Wait returned")
	}
}

func TestSchedulePropagatesError(t *testing.T) {
	boom := errors.New("boom")
	task := Schedule(context.Background(), time.Millisecond, func(context.Context) (int, error) {
		return 0, boom
	})
	_, err := task.Wait(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestCancelBeforeDelaySkipsFunction(t *testing.T) {
	var calls atomic.Int32
	task := Schedule(context.Background(), time.Hour, func(context.Context) (int, error) {
		calls.Add(1)
		return 1, nil
	})
	task.Cancel()
	task.Cancel()

	_, err := task.Wait(context.Background())
	assert.ErrorIs(t, err, ErrCancelled)
	assert.Equal(t, int32(0), calls.Load())
}

func TestCancelAfterCompletionKeepsResult(t *testing.T) {
	task := Schedule(context.Background(), 0, func(context.Context) (int, error) {
		return 7, nil
	})
	<-task.Done()
	task.Cancel()
	got, err := task.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, got)
}

func TestParentContextCancelsTask(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	task := Schedule(ctx, time.Hour, func(context.Context) (int, error) {
		return 1, nil
	})
	cancel()
	_, err := task.Wait(context.Background())
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestWaitHonoursCallerContext(t *testing.T) {
	task := Schedule(context.Background(), time.Hour, func(context.Context) (int, error) {
		return 1, nil
	})
	defer task.Cancel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := task.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNilTaskCancelIsSafe(t *testing.T) {
	var task *Task[int]
	assert.NotPanics(t, task.Cancel)
}
