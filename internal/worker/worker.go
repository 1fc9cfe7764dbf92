package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

type JobType string

const (
	// JobTypeTaskReminder fires when a task with a deadline comes due.
	JobTypeTaskReminder JobType = "task_reminder"
	// JobTypeTokenCleanup purges expired refresh tokens.
	JobTypeTokenCleanup JobType = "token_cleanup"
)

type Job struct {
	ID        string                 `json:"id"`
	Type      JobType                `json:"type"`
	Payload   map[string]interface{} `json:"payload"`
	Attempts  int                    `json:"attempts"`
	MaxTries  int                    `json:"max_tries"`
	CreatedAt time.Time              `json:"created_at"`
	ProcessAt time.Time              `json:"process_at"`
}

type JobHandler func(ctx context.Context, job *Job) error

// Worker drains redis-backed job queues. Jobs whose ProcessAt lies in the
// future are pushed back until due, which is how deadline reminders wait.
type Worker struct {
	client       *redis.Client
	handlers     map[JobType]JobHandler
	queues       []string
	pollInterval time.Duration
	mu           sync.RWMutex
	ctx          context.Context
	cancel       context.CancelFunc
	wg           sync.WaitGroup
}

type WorkerConfig struct {
	RedisClient  *redis.Client
	Queues       []string
	PollInterval time.Duration
}

func NewWorker(config WorkerConfig) *Worker {
	ctx, cancel := context.WithCancel(context.Background())

	pollInterval := config.PollInterval
	if pollInterval <= 0 {
		pollInterval = 5 * time.Second
	}

	return &Worker{
		client:       config.RedisClient,
		handlers:     make(map[JobType]JobHandler),
		queues:       config.Queues,
		pollInterval: pollInterval,
		ctx:          ctx,
		cancel:       cancel,
	}
}

func (w *Worker) RegisterHandler(jobType JobType, handler JobHandler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers[jobType] = handler
}

func (w *Worker) Start(concurrency int) {
	log.Printf("starting %d worker goroutines on queues %v", concurrency, w.queues)

	for i := 0; i < concurrency; i++ {
		w.wg.Add(1)
		go w.loop()
	}
}

func (w *Worker) Stop() {
	w.cancel()
	w.wg.Wait()
	log.Println("worker stopped")
}

func (w *Worker) loop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		default:
			if err := w.processNext(); err != nil {
				log.Printf("job processing error: %v", err)
				time.Sleep(time.Second)
			}
		}
	}
}

func (w *Worker) processNext() error {
	result, err := w.client.BLPop(w.ctx, w.pollInterval, w.queues...).Result()
	if err != nil {
		if err == redis.Nil {
			return nil
		}
		return fmt.Errorf("failed to pop job: %w", err)
	}

	if len(result) < 2 {
		return fmt.Errorf("malformed BLPop result")
	}

	queue, jobData := result[0], result[1]

	var job Job
	if err := json.Unmarshal([]byte(jobData), &job); err != nil {
		return fmt.Errorf("failed to unmarshal job: %w", err)
	}

	if time.Now().Before(job.ProcessAt) {
		// Not due yet; back to the end of the queue.
		return w.push(queue, &job)
	}

	return w.execute(&job)
}

func (w *Worker) execute(job *Job) error {
	w.mu.RLock()
	handler, exists := w.handlers[job.Type]
	w.mu.RUnlock()

	if !exists {
		return fmt.Errorf("no handler registered for job type %s", job.Type)
	}

	ctx, cancel := context.WithTimeout(w.ctx, 30*time.Second)
	defer cancel()

	if err := handler(ctx, job); err != nil {
		job.Attempts++
		if job.Attempts < job.MaxTries {
			log.Printf("job %s failed (attempt %d/%d): %v", job.ID, job.Attempts, job.MaxTries, err)
			job.ProcessAt = time.Now().Add(time.Duration(1<<job.Attempts) * time.Minute)
			return w.push("retry_queue", job)
		}

		log.Printf("job %s failed permanently after %d attempts: %v", job.ID, job.Attempts, err)
		return w.moveToDeadQueue(job, err)
	}

	return nil
}

func (w *Worker) push(queue string, job *Job) error {
	jobData, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}
	return w.client.RPush(w.ctx, queue, jobData).Err()
}

func (w *Worker) moveToDeadQueue(job *Job, jobErr error) error {
	deadJob := map[string]interface{}{
		"original_job": job,
		"error":        jobErr.Error(),
		"failed_at":    time.Now(),
	}

	deadJobData, err := json.Marshal(deadJob)
	if err != nil {
		return fmt.Errorf("failed to marshal dead job: %w", err)
	}
	return w.client.RPush(w.ctx, "dead_queue", deadJobData).Err()
}

// JobQueue is the producer side, used by services to schedule work.
type JobQueue struct {
	client *redis.Client
}

func NewJobQueue(client *redis.Client) *JobQueue {
	return &JobQueue{client: client}
}

func (q *JobQueue) Enqueue(queue string, jobType JobType, payload map[string]interface{}) error {
	return q.EnqueueAt(queue, jobType, payload, time.Now())
}

func (q *JobQueue) EnqueueAt(queue string, jobType JobType, payload map[string]interface{}, processAt time.Time) error {
	job := &Job{
		ID:        fmt.Sprintf("%d", time.Now().UnixNano()),
		Type:      jobType,
		Payload:   payload,
		MaxTries:  3,
		CreatedAt: time.Now(),
		ProcessAt: processAt,
	}

	jobData, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return q.client.RPush(ctx, queue, jobData).Err()
}

func (q *JobQueue) Size(queue string) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	return q.client.LLen(ctx, queue).Result()
}
