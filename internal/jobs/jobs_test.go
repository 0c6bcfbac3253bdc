package jobs_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"workorders/internal/core/application/usecases/commands"
	"workorders/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAutoArchiveHandler struct{ mock.Mock }

func (m *MockAutoArchiveHandler) Handle(ctx context.Context, cmd commands.AutoArchiveOrdersCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

type MockPurgeHandler struct{ mock.Mock }

func (m *MockPurgeHandler) Handle(ctx context.Context, cmd commands.PurgeOrdersCommand) (commands.PurgeResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.PurgeResult), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAutoArchiveJob_RunOncePassesAge(t *testing.T) {
	handler := new(MockAutoArchiveHandler)
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.AutoArchiveOrdersCommand) bool {
		return cmd.OlderThan() == 12*time.Hour
	})).Return(3, nil)

	job := jobs.NewAutoArchiveJob(handler, time.Minute, 12*time.Hour, discardLogger())
	archived, err := job.RunOnce(t.Context())

	require.NoError(t, err)
	assert.Equal(t, 3, archived)
	handler.AssertExpectations(t)
}

func TestAutoArchiveJob_RunOnceRejectsInvalidAge(t *testing.T) {
	handler := new(MockAutoArchiveHandler)

	job := jobs.NewAutoArchiveJob(handler, time.Minute, 0, discardLogger())
	_, err := job.RunOnce(t.Context())

	require.Error(t, err)
	handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestPurgeJob_RunOncePassesAges(t *testing.T) {
	handler := new(MockPurgeHandler)
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.PurgeOrdersCommand) bool {
		return cmd.ArchivedOlderThan() == 720*time.Hour && cmd.NotificationsOlderThan() == 168*time.Hour
	})).Return(commands.PurgeResult{Orders: 2, Notifications: 5}, nil)

	job := jobs.NewPurgeJob(handler, time.Hour, 720*time.Hour, 168*time.Hour, discardLogger())
	result, err := job.RunOnce(t.Context())

	require.NoError(t, err)
	assert.Equal(t, commands.PurgeResult{Orders: 2, Notifications: 5}, result)
}

func TestPurgeJob_RunOnceReturnsHandlerError(t *testing.T) {
	handler := new(MockPurgeHandler)
	boom := errors.New("database is gone")
	handler.On("Handle", mock.Anything, mock.Anything).Return(commands.PurgeResult{}, boom)

	job := jobs.NewPurgeJob(handler, time.Hour, 720*time.Hour, 168*time.Hour, discardLogger())
	_, err := job.RunOnce(t.Context())

	assert.ErrorIs(t, err, boom)
}

func TestJobManager_StartAndStop(t *testing.T) {
	manager := jobs.NewJobManager(
		jobs.NewAutoArchiveJob(new(MockAutoArchiveHandler), time.Hour, 12*time.Hour, discardLogger()),
		jobs.NewPurgeJob(new(MockPurgeHandler), time.Hour, 720*time.Hour, 168*time.Hour, discardLogger()),
	)

	require.NoError(t, manager.StartAll())
	manager.StopAll()
}

func TestJobManager_InvalidIntervalFailsToStart(t *testing.T) {
	manager := jobs.NewJobManager(
		jobs.NewAutoArchiveJob(new(MockAutoArchiveHandler), time.Hour, 12*time.Hour, discardLogger()),
		jobs.NewPurgeJob(new(MockPurgeHandler), 0, 720*time.Hour, 168*time.Hour, discardLogger()),
	)

	err := manager.StartAll()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "purge job")
}

func TestAutoArchiveJob_SweepsOnSchedule(t *testing.T) {
	handler := new(MockAutoArchiveHandler)
	ran := make(chan struct{}, 1)
	handler.On("Handle", mock.Anything, mock.Anything).Return(0, nil).Run(func(mock.Arguments) {
		select {
		case ran <- struct{}{}:
		default:
		}
	})

	job := jobs.NewAutoArchiveJob(handler, time.Second, 12*time.Hour, discardLogger())
	require.NoError(t, job.Start())
	defer job.Stop()

	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("auto-archive sweep did not run")
	}
}
