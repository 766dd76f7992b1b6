package background

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"bookstore/internal/jobs"

	"github.com/go-co-op/gocron/v2"
)

const (
	statisticsRefreshJob = "statistics-refresh"
	lowStockJob          = "low-stock-alerts"
)

// JobStatus describes one scheduled job.
type JobStatus struct {
	Name    string    `json:"name"`
	NextRun time.Time `json:"next_run"`
	LastRun time.Time `json:"last_run,omitempty"`
}

// JobScheduler runs the periodic jobs of the API process.
type JobScheduler struct {
	scheduler gocron.Scheduler
	stats     jobs.StatisticsRefresher
	alerts    *jobs.StockAlertService
	jobs      map[string]gocron.Job
	mu        sync.RWMutex
}

// NewJobScheduler creates the scheduler and registers the statistics refresh
// (every statsInterval) and the low stock check (every alertInterval).
func NewJobScheduler(stats jobs.StatisticsRefresher, alerts *jobs.StockAlertService, statsInterval, alertInterval time.Duration) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	js := &JobScheduler{
		scheduler: scheduler,
		stats:     stats,
		alerts:    alerts,
		jobs:      make(map[string]gocron.Job),
	}
	if err := js.registerJobs(statsInterval, alertInterval); err != nil {
		_ = scheduler.Shutdown()
		return nil, err
	}
	return js, nil
}

// Start starts the job scheduler
func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs(statsInterval, alertInterval time.Duration) error {
	if err := js.AddJob(statisticsRefreshJob, statsInterval, js.refreshStatistics); err != nil {
		return fmt.Errorf("failed to create statistics job: %w", err)
	}
	if js.alerts != nil {
		if err := js.AddJob(lowStockJob, alertInterval, js.alerts.ScheduledLowStockCheck, context.Background()); err != nil {
			return fmt.Errorf("failed to create low stock job: %w", err)
		}
	}

	log.Printf("Registered %d background jobs", len(js.jobs))
	return nil
}

func (js *JobScheduler) refreshStatistics() error {
	if err := js.stats.Refresh(context.Background()); err != nil {
		log.Printf("Scheduled statistics refresh failed: %v", err)
		return err
	}
	return nil
}

// AddJob adds a singleton job running every interval.
func (js *JobScheduler) AddJob(name string, interval time.Duration, taskFn interface{}, params ...interface{}) error {
	js.mu.Lock()
	defer js.mu.Unlock()

	job, err := js.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(taskFn, params...),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	js.jobs[name] = job
	return nil
}

// RemoveJob removes a job from the scheduler
func (js *JobScheduler) RemoveJob(name string) error {
	js.mu.Lock()
	defer js.mu.Unlock()

	if job, exists := js.jobs[name]; exists {
		err := js.scheduler.RemoveJob(job.ID())
		delete(js.jobs, name)
		return err
	}
	return nil
}

// GetJobStatus returns the scheduled jobs sorted by name.
func (js *JobScheduler) GetJobStatus() []JobStatus {
	js.mu.RLock()
	defer js.mu.RUnlock()

	status := make([]JobStatus, 0, len(js.jobs))
	for name, job := range js.jobs {
		s := JobStatus{Name: name}
		if next, err := job.NextRun(); err == nil {
			s.NextRun = next
		}
		if last, err := job.LastRun(); err == nil {
			s.LastRun = last
		}
		status = append(status, s)
	}
	sort.Slice(status, func(i, j int) bool { return status[i].Name < status[j].Name })
	return status
}
