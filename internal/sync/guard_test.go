package sync

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuardRunsFunction(t *testing.T) {
	t.Parallel()

	guard := NewGuard()

	called := false
	err := guard.TryRun("full", func() error {
		called = true
		return nil
	})

	require.NoError(t, err)
	assert.True(t, called)
}

func TestGuardPropagatesError(t *testing.T) {
	t.Parallel()

	guard := NewGuard()

	wantErr := errors.New("sync failed")
	err := guard.TryRun("full", func() error { return wantErr })

	assert.ErrorIs(t, err, wantErr)
}

func TestGuardRejectsOverlappingRunOfSameType(t *testing.T) {
	t.Parallel()

	guard := NewGuard()

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error)

	go func() {
		done <- guard.TryRun("full", func() error {
			close(started)
			<-release
			return nil
		})
	}()

	<-started

	err := guard.TryRun("full", func() error { return nil })
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	// a different sync type is not blocked
	err = guard.TryRun("refresh", func() error { return nil })
	assert.NoError(t, err)

	close(release)
	require.NoError(t, <-done)

	// released type can run again
	err = guard.TryRun("full", func() error { return nil })
	assert.NoError(t, err)
}
