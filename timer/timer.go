// timer/timer.go
package timer

import (
	"container/heap"
	"sync"
	"time"
)

type task struct {
	id       int64
	execute  time.Time
	interval time.Duration
	callback func()
	index    int
}

type taskQueue []*task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	return q[i].execute.Before(q[j].execute)
}

func (q taskQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *taskQueue) Push(x interface{}) {
	n := len(*q)
	t := x.(*task)
	t.index = n
	*q = append(*q, t)
}

func (q *taskQueue) Pop() interface{} {
	old := *q
	n := len(old)
	t := old[n-1]
	t.index = -1
	*q = old[0 : n-1]
	return t
}

// Scheduler runs registered callbacks on a min-heap of due times. One
// Scheduler drives every countdown in the process.
type Scheduler struct {
	queue      taskQueue
	mutex      sync.Mutex
	nextID     int64
	resolution time.Duration
	stop       chan struct{}
	stopOnce   sync.Once
}

// NewScheduler creates a scheduler polling at the given resolution.
// The server uses 100ms; tests use a few milliseconds.
func NewScheduler(resolution time.Duration) *Scheduler {
	s := &Scheduler{
		queue:      make(taskQueue, 0),
		nextID:     1,
		resolution: resolution,
		stop:       make(chan struct{}),
	}
	heap.Init(&s.queue)
	go s.process()
	return s
}

// Schedule registers callback to fire after delay, then every interval if
// interval > 0. Returns the task id for later removal.
func (s *Scheduler) Schedule(delay, interval time.Duration, callback func()) int64 {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	t := &task{
		id:       s.nextID,
		execute:  time.Now().Add(delay),
		interval: interval,
		callback: callback,
	}
	s.nextID++

	heap.Push(&s.queue, t)
	return t.id
}

// Remove cancels a scheduled task. Removing an unknown id is a no-op.
func (s *Scheduler) Remove(taskID int64) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for i, t := range s.queue {
		if t.id == taskID {
			heap.Remove(&s.queue, i)
			break
		}
	}
}

// Stop halts the scheduler loop. Pending tasks never fire afterwards.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
}

func (s *Scheduler) process() {
	ticker := time.NewTicker(s.resolution)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.mutex.Lock()
			now := time.Now()

			var due []*task
			for s.queue.Len() > 0 {
				t := s.queue[0]
				if t.execute.After(now) {
					break
				}

				heap.Pop(&s.queue)
				due = append(due, t)

				if t.interval > 0 {
					t.execute = now.Add(t.interval)
					heap.Push(&s.queue, t)
				}
			}
			s.mutex.Unlock()

			// Callbacks run outside the queue lock so they may
			// reschedule or remove tasks.
			for _, t := range due {
				t.callback()
			}

		case <-s.stop:
			return
		}
	}
}
