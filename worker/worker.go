package worker

import (
	"runtime"

	"github.com/getsentry/sentry-go"
)

var workerQueue = make(chan func(), runtime.NumCPU())

func init() {
	for i := 0; i < runtime.NumCPU(); i++ {
		go worker()
	}
}

func worker() {
	for f := range workerQueue {
		run(f)
	}
}

// run executes a single job. A panicking job is reported to sentry without taking the worker down with it.
func run(f func()) {
	defer sentry.Recover()
	f()
}

// Submit queues a CPU intensive function, such as building a spatial index, to run on the worker pool. Submit
// blocks while every worker is busy and the queue is full. Callers that need the result must wait for it
// themselves, for example with a sync.WaitGroup.
func Submit(f func()) {
	workerQueue <- f
}
