package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"exoprotrack/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type releaseFunc func(ctx context.Context, cmd commands.ReleaseExpiredReservationsCommand) (int, error)

func (f releaseFunc) Handle(ctx context.Context, cmd commands.ReleaseExpiredReservationsCommand) (int, error) {
	return f(ctx, cmd)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestReservationExpiryJob_RunOnce(t *testing.T) {
	t.Run("reports released count", func(t *testing.T) {
		calls := 0
		job := NewReservationExpiryJob(releaseFunc(func(context.Context, commands.ReleaseExpiredReservationsCommand) (int, error) {
			calls++
			return 2, nil
		}), "0 * * * * *", discardLogger())

		assert.Equal(t, 2, job.RunOnce(context.Background()))
		assert.Equal(t, 1, calls)
	})

	t.Run("partial sweep keeps the count", func(t *testing.T) {
		job := NewReservationExpiryJob(releaseFunc(func(context.Context, commands.ReleaseExpiredReservationsCommand) (int, error) {
			return 1, errors.New("store unavailable")
		}), "0 * * * * *", discardLogger())

		assert.Equal(t, 1, job.RunOnce(context.Background()))
	})
}

func TestReservationExpiryJob_Start(t *testing.T) {
	noop := releaseFunc(func(context.Context, commands.ReleaseExpiredReservationsCommand) (int, error) { return 0, nil })

	t.Run("invalid schedule", func(t *testing.T) {
		job := NewReservationExpiryJob(noop, "every five minutes", discardLogger())
		require.Error(t, job.Start())
	})

	t.Run("start and stop", func(t *testing.T) {
		manager := NewJobManager(noop, "0 */5 * * * *", discardLogger())
		require.NoError(t, manager.StartAll())
		manager.StopAll()
	})

	t.Run("manager wraps start errors", func(t *testing.T) {
		manager := NewJobManager(noop, "* *", discardLogger())
		err := manager.StartAll()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reservation expiry job")
	})
}
