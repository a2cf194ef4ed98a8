package services

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/hibiken/asynq"
	"github.com/nmoreno/tallerplus/backend/internal/config"
	"github.com/nmoreno/tallerplus/backend/pkg/logger"
)

const TaskTypeEmail = "email:send"

// EmailTask is one outbound mail waiting for delivery.
type EmailTask struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// TaskQueue decouples mail submission from delivery. The async variant rides
// on Redis, the sync variant delivers in-process.
type TaskQueue interface {
	Enqueue(task *EmailTask) error
	IsAsync() bool
	Close() error
}

var (
	globalTaskQueue TaskQueue
	taskQueueOnce   sync.Once
)

// InitTaskQueue picks the queue implementation from config. When Redis is
// enabled but unreachable the server still comes up, in sync mode.
func InitTaskQueue(cfg *config.Config) TaskQueue {
	taskQueueOnce.Do(func() {
		if !cfg.Redis.Enabled {
			logger.Infof("[TaskQueue] Sync queue initialized (Redis disabled)")
			globalTaskQueue = NewSyncQueue()
			return
		}

		queue, err := NewAsyncQueue(&cfg.Redis)
		if err != nil {
			logger.Warnf("[TaskQueue] Redis unavailable, falling back to sync mode: %v", err)
			globalTaskQueue = NewSyncQueue()
			return
		}
		logger.Infof("[TaskQueue] Async queue initialized with Redis at %s", cfg.Redis.Addr)
		globalTaskQueue = queue
	})
	return globalTaskQueue
}

// GetTaskQueue returns the queue chosen at startup.
func GetTaskQueue() TaskQueue {
	return globalTaskQueue
}

// AsyncQueue pushes email tasks into asynq for the worker to pick up.
type AsyncQueue struct {
	client *asynq.Client
}

func NewAsyncQueue(cfg *config.RedisConfig) (*AsyncQueue, error) {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}

	client := asynq.NewClient(redisOpt)

	// Probe the connection now rather than failing on the first enqueue.
	inspector := asynq.NewInspector(redisOpt)
	defer inspector.Close()
	if _, err := inspector.Queues(); err != nil {
		client.Close()
		return nil, err
	}

	return &AsyncQueue{client: client}, nil
}

func (q *AsyncQueue) Enqueue(task *EmailTask) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return err
	}

	info, err := q.client.Enqueue(
		asynq.NewTask(TaskTypeEmail, payload),
		asynq.Queue("default"),
		asynq.MaxRetry(3),
	)
	if err != nil {
		return err
	}

	logger.Infof("[TaskQueue] Email task enqueued: id=%s to=%s", info.ID, task.To)
	return nil
}

func (q *AsyncQueue) IsAsync() bool { return true }

func (q *AsyncQueue) Close() error { return q.client.Close() }

// SyncQueue delivers mail from the enqueueing process itself. Used when Redis
// is disabled or unreachable.
type SyncQueue struct {
	processor func(context.Context, *EmailTask) error
}

func NewSyncQueue() *SyncQueue {
	return &SyncQueue{}
}

// SetProcessor wires the delivery function. Must be called before the first
// Enqueue; tasks arriving earlier are dropped with a warning.
func (q *SyncQueue) SetProcessor(processor func(context.Context, *EmailTask) error) {
	q.processor = processor
}

// Enqueue hands the task to a goroutine so the HTTP response is not held up
// by SMTP round trips.
func (q *SyncQueue) Enqueue(task *EmailTask) error {
	if q.processor == nil {
		logger.Warnf("[TaskQueue] No processor set, dropping email to %s", task.To)
		return nil
	}

	go func() {
		if err := q.processor(context.Background(), task); err != nil {
			logger.Errorf("[TaskQueue] Email delivery failed for %s: %v", task.To, err)
		}
	}()
	return nil
}

func (q *SyncQueue) IsAsync() bool { return false }

func (q *SyncQueue) Close() error { return nil }
