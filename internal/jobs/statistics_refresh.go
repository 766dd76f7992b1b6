package jobs

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/hibiken/asynq"
)

// Task type definitions
const (
	TypeStatisticsRefresh = "statistics:refresh"
)

// refreshDebounce collapses bursts of order mutations into one refresh task.
const refreshDebounce = 30 * time.Second

// StatisticsRefresher recomputes cached statistics.
type StatisticsRefresher interface {
	Refresh(ctx context.Context) error
	Invalidate(ctx context.Context)
}

type taskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// NewStatisticsRefreshTask creates a new statistics refresh task
func NewStatisticsRefreshTask() *asynq.Task {
	return asynq.NewTask(TypeStatisticsRefresh, nil)
}

// StatisticsRefreshEnqueuer drops cached statistics and schedules a background
// recomputation. It is handed to the services as their statistics invalidator.
type StatisticsRefreshEnqueuer struct {
	stats  StatisticsRefresher
	client taskEnqueuer
}

func NewStatisticsRefreshEnqueuer(stats StatisticsRefresher, client *asynq.Client) *StatisticsRefreshEnqueuer {
	e := &StatisticsRefreshEnqueuer{stats: stats}
	if client != nil {
		e.client = client
	}
	return e
}

func (e *StatisticsRefreshEnqueuer) Invalidate(ctx context.Context) {
	e.stats.Invalidate(ctx)
	if e.client == nil {
		return
	}

	_, err := e.client.EnqueueContext(ctx, NewStatisticsRefreshTask(),
		asynq.Unique(refreshDebounce),
		asynq.ProcessIn(time.Second),
		asynq.MaxRetry(3),
	)
	if err != nil && !errors.Is(err, asynq.ErrDuplicateTask) {
		log.Printf("Failed to enqueue statistics refresh: %v", err)
	}
}

// StatisticsRefreshHandler handles statistics refresh tasks
func StatisticsRefreshHandler(stats StatisticsRefresher) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		started := time.Now()
		if err := stats.Refresh(ctx); err != nil {
			log.Printf("Statistics refresh failed: %v", err)
			return err
		}
		log.Printf("Statistics refreshed in %v", time.Since(started))
		return nil
	}
}

// Worker runs the asynq server that consumes background tasks.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

func NewWorker(redisOpt asynq.RedisClientOpt, concurrency int, stats StatisticsRefresher) *Worker {
	if concurrency <= 0 {
		concurrency = 2
	}
	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{"default": 1},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeStatisticsRefresh, StatisticsRefreshHandler(stats))

	return &Worker{server: server, mux: mux}
}

func (w *Worker) Start() error {
	log.Printf("Starting background task worker")
	return w.server.Start(w.mux)
}

func (w *Worker) Stop() {
	log.Printf("Stopping background task worker")
	w.server.Shutdown()
}
