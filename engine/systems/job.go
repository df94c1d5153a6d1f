package systems

import (
	"fmt"
	"sync"

	"github.com/spaghettifunk/pageflip/engine/core"
)

// JobTask is one unit of background work. Run executes on a worker;
// OnComplete or OnFailure receives its outcome on the same worker.
type JobTask struct {
	Name       string
	Run        func() (interface{}, error)
	OnComplete func(result interface{})
	OnFailure  func(err error)
	// Called after OnComplete or OnFailure, whatever the outcome.
	OnCompletionCallback func()
}

type JobSystem struct {
	numWorkers int
	jobQueue   chan JobTask
	wg         sync.WaitGroup

	mutex    sync.RWMutex
	shutdown bool
}

var ErrNoWorkers = fmt.Errorf("attempting to create worker pool with less than 1 worker")
var ErrNegativeChannelSize = fmt.Errorf("attempting to create worker pool with a negative channel size")
var ErrJobSystemShutdown = fmt.Errorf("job system is shut down")

func NewJobSystem(numWorkers int, channelSize int) (*JobSystem, error) {
	if numWorkers <= 0 {
		return nil, ErrNoWorkers
	}
	if channelSize < 0 {
		return nil, ErrNegativeChannelSize
	}

	jq := make(chan JobTask, channelSize)
	js := &JobSystem{
		numWorkers: numWorkers,
		jobQueue:   jq,
	}

	js.start()

	return js, nil
}

func (js *JobSystem) start() {
	for i := 0; i < js.numWorkers; i++ {
		js.wg.Add(1)
		go func() {
			defer js.wg.Done()
			for job := range js.jobQueue {
				js.run(job)
			}
		}()
	}
}

func (js *JobSystem) run(job JobTask) {
	if job.OnCompletionCallback != nil {
		defer job.OnCompletionCallback()
	}
	result, err := job.Run()
	if err != nil {
		core.LogError("job %s failed: %s", job.Name, err)
		if job.OnFailure != nil {
			job.OnFailure(err)
		}
		return
	}
	if job.OnComplete != nil {
		job.OnComplete(result)
	}
}

/**
 * @brief Shuts the job system down, waiting for queued jobs to finish.
 */
func (js *JobSystem) Shutdown() error {
	js.mutex.Lock()
	if js.shutdown {
		js.mutex.Unlock()
		return nil
	}
	js.shutdown = true
	close(js.jobQueue)
	js.mutex.Unlock()

	js.wg.Wait()
	return nil
}

// Workers returns the size of the pool.
func (js *JobSystem) Workers() int {
	return js.numWorkers
}

// AddWorkNonBlocking queues jt and returns immediately, dropping it when
// the queue is full.
func (js *JobSystem) AddWorkNonBlocking(jt JobTask) bool {
	js.mutex.RLock()
	defer js.mutex.RUnlock()
	if js.shutdown {
		return false
	}
	select {
	case js.jobQueue <- jt:
		return true
	default:
		core.LogDebug("job queue full, dropped %s", jt.Name)
		return false
	}
}

/**
 * @brief Submits the provided job to be queued for execution.
 * @param info The description of the job to be executed.
 */
func (js *JobSystem) Submit(jt JobTask) error {
	if jt.Run == nil {
		return fmt.Errorf("%w: job %s has nothing to run", core.ErrNullParameter, jt.Name)
	}
	js.mutex.RLock()
	defer js.mutex.RUnlock()
	if js.shutdown {
		return ErrJobSystemShutdown
	}
	js.jobQueue <- jt
	return nil
}
