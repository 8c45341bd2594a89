package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunVerdictCompletesAndSignals(t *testing.T) {
	tk, err := New(KindCompare)
	require.NoError(t, err)
	defer tk.Close()

	assert.Equal(t, Running, tk.State())

	tk.RunVerdict(func() (Verdict, error) {
		return VerdictEqual, nil
	})

	assert.Equal(t, Done, tk.State())
	v, _, err := tk.Result()
	assert.NoError(t, err)
	assert.Equal(t, VerdictEqual, v)
}

func TestResultBeforeReadyIsNotReady(t *testing.T) {
	tk, err := New(KindCompare)
	require.NoError(t, err)
	defer tk.Close()

	_, _, err = tk.Result()
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestOrphanBeforeCompletionLeavesWorkerOwningFree(t *testing.T) {
	tk, err := New(KindCompare)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		time.Sleep(10 * time.Millisecond)
		tk.RunVerdict(func() (Verdict, error) { return VerdictDifferent, nil })
		close(done)
	}()

	tk.Close() // orphans it before the worker finishes
	assert.Equal(t, Orphaned, tk.State())

	<-done // worker still completes its own accounting without panicking
}

func TestCloseAfterDoneIsIdempotent(t *testing.T) {
	tk, err := New(KindCompare)
	require.NoError(t, err)

	tk.RunVerdict(func() (Verdict, error) { return VerdictEqual, nil })
	tk.Close()
	tk.Close() // must not panic on a double free
}
