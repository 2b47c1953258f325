package cron

import (
	"context"
	"sync"
	"time"

	"github.com/podlift/backend/pkg/xcontext"
)

type CronJob interface {
	Do(context.Context)
	RunNow() bool
	Next() time.Time
}

type CronJobManager struct {
	mutex sync.Mutex
	wait  sync.WaitGroup
	jobs  map[CronJob]*time.Timer
}

func NewCronJobManager() *CronJobManager {
	return &CronJobManager{jobs: make(map[CronJob]*time.Timer)}
}

func (m *CronJobManager) Register(job CronJob) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.jobs[job] = nil
}

// Start schedules every registered job and blocks until ctx is done. A job
// which is running when ctx is done finishes its current round.
func (m *CronJobManager) Start(ctx context.Context) {
	xcontext.Logger(ctx).Infof("Cron job manager started with %d jobs", len(m.jobs))

	m.mutex.Lock()
	jobs := make([]CronJob, 0, len(m.jobs))
	for job := range m.jobs {
		jobs = append(jobs, job)
	}
	m.mutex.Unlock()

	for _, job := range jobs {
		if job.RunNow() {
			m.wait.Add(1)
			go func(job CronJob) {
				defer m.wait.Done()
				m.run(ctx, job)
			}(job)
		} else {
			m.schedule(ctx, job)
		}
	}

	<-ctx.Done()
	m.stop()
	m.wait.Wait()
	xcontext.Logger(ctx).Infof("Cron job manager stopped")
}

func (m *CronJobManager) stop() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for job, timer := range m.jobs {
		if timer != nil {
			timer.Stop()
		}
		delete(m.jobs, job)
	}
}

func (m *CronJobManager) run(ctx context.Context, job CronJob) {
	if ctx.Err() != nil {
		return
	}

	start := time.Now()
	xcontext.Logger(ctx).Infof("%T is running...", job)
	job.Do(ctx)
	xcontext.Logger(ctx).Infof("%T ok in %s", job, time.Since(start))

	m.schedule(ctx, job)
}

func (m *CronJobManager) schedule(ctx context.Context, job CronJob) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	// Stopped jobs are removed from the list and never come back.
	if _, ok := m.jobs[job]; !ok {
		return
	}

	m.jobs[job] = time.AfterFunc(time.Until(job.Next()), func() {
		// Add under the lock, stop cannot have returned yet if the job is
		// still registered.
		m.mutex.Lock()
		if _, ok := m.jobs[job]; !ok {
			m.mutex.Unlock()
			return
		}
		m.wait.Add(1)
		m.mutex.Unlock()

		defer m.wait.Done()
		m.run(ctx, job)
	})
}
