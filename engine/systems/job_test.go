package systems

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/pageflip/engine/core"
)

func TestNewJobSystemValidates(t *testing.T) {
	_, err := NewJobSystem(0, 1)
	assert.ErrorIs(t, err, ErrNoWorkers)
	_, err = NewJobSystem(1, -1)
	assert.ErrorIs(t, err, ErrNegativeChannelSize)
}

func TestJobsRunToCompletion(t *testing.T) {
	js, err := NewJobSystem(4, 8)
	require.NoError(t, err)
	assert.Equal(t, 4, js.Workers())

	var (
		mu      sync.Mutex
		results []int
		done    atomic.Int32
		failed  atomic.Int32
	)
	for i := 0; i < 10; i++ {
		i := i
		require.NoError(t, js.Submit(JobTask{
			Name: "square",
			Run: func() (interface{}, error) {
				if i == 3 {
					return nil, errors.New("boom")
				}
				return i * i, nil
			},
			OnComplete: func(result interface{}) {
				mu.Lock()
				results = append(results, result.(int))
				mu.Unlock()
			},
			OnFailure:            func(error) { failed.Add(1) },
			OnCompletionCallback: func() { done.Add(1) },
		}))
	}
	require.NoError(t, js.Shutdown())

	assert.Len(t, results, 9)
	assert.NotContains(t, results, 9)
	assert.Equal(t, int32(1), failed.Load())
	assert.Equal(t, int32(10), done.Load())
}

func TestSubmitAfterShutdown(t *testing.T) {
	js, err := NewJobSystem(1, 0)
	require.NoError(t, err)
	require.NoError(t, js.Shutdown())
	require.NoError(t, js.Shutdown())

	job := JobTask{Name: "late", Run: func() (interface{}, error) { return nil, nil }}
	assert.ErrorIs(t, js.Submit(job), ErrJobSystemShutdown)
	assert.False(t, js.AddWorkNonBlocking(job))
}

func TestSubmitNeedsRun(t *testing.T) {
	js, err := NewJobSystem(1, 1)
	require.NoError(t, err)
	defer js.Shutdown()
	assert.ErrorIs(t, js.Submit(JobTask{Name: "empty"}), core.ErrNullParameter)
}

func TestAddWorkNonBlockingDropsWhenFull(t *testing.T) {
	js, err := NewJobSystem(1, 1)
	require.NoError(t, err)

	release := make(chan struct{})
	started := make(chan struct{})
	block := JobTask{Name: "block", Run: func() (interface{}, error) {
		close(started)
		<-release
		return nil, nil
	}}
	noop := JobTask{Name: "noop", Run: func() (interface{}, error) { return nil, nil }}

	require.True(t, js.AddWorkNonBlocking(block))
	<-started
	assert.True(t, js.AddWorkNonBlocking(noop), "fills the queue")
	assert.False(t, js.AddWorkNonBlocking(noop), "queue is full")
	close(release)
	require.NoError(t, js.Shutdown())
}
