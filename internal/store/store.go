package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/kudryavtseva/contentforge/internal/content"
	"github.com/kudryavtseva/contentforge/internal/task"
)

const (
	runQueueKey = "contentforge:runs"
	taskPrefix  = "contentforge:task:"
	taskTTL     = 24 * time.Hour
)

// Store is the task registry: task state lives in Redis as JSON values
// under taskPrefix, and ids of tasks awaiting a worker sit on the run
// queue list.
type Store struct {
	client *redis.Client
}

func New(addr, password string, db int) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &Store{client: client}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

// Create registers a new pending task and enqueues it for a worker.
func (s *Store) Create(ctx context.Context, topic string, cfg content.Config) (*task.Task, error) {
	cfg.Normalize()
	t := &task.Task{
		ID:               uuid.New().String(),
		Topic:            topic,
		Config:           cfg,
		Status:           task.StatusPending,
		CurrentOperation: "Waiting for a worker...",
		StepResults:      map[int]json.RawMessage{},
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	data, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("marshal task: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, taskPrefix+t.ID, data, taskTTL)
	pipe.RPush(ctx, runQueueKey, t.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("enqueue task: %w", err)
	}

	return t, nil
}

// Next blocks up to timeout for the next queued task. Returns nil, nil
// when the queue stays empty.
func (s *Store) Next(ctx context.Context, timeout time.Duration) (*task.Task, error) {
	result, err := s.client.BLPop(ctx, timeout, runQueueKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("pop task: %w", err)
	}

	return s.Get(ctx, result[1])
}

// Get returns the task, or nil, nil if the id is unknown.
func (s *Store) Get(ctx context.Context, id string) (*task.Task, error) {
	data, err := s.client.Get(ctx, taskPrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("get task: %w", err)
	}

	var t task.Task
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("unmarshal task: %w", err)
	}

	return &t, nil
}

func (s *Store) save(ctx context.Context, t *task.Task) error {
	t.UpdatedAt = time.Now()

	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("marshal task: %w", err)
	}

	if err := s.client.Set(ctx, taskPrefix+t.ID, data, taskTTL).Err(); err != nil {
		return fmt.Errorf("save task: %w", err)
	}

	return nil
}

// Advance moves a running task to the given step, progress and operation
// text. Progress never goes backwards: a stale lower value is clamped to
// the stored one.
func (s *Store) Advance(ctx context.Context, id string, step, progress int, operation string) (*task.Task, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("task %s not found", id)
	}

	t.Status = task.StatusRunning
	t.CurrentStep = step
	if progress > t.Progress {
		t.Progress = progress
	}
	t.CurrentOperation = operation

	if err := s.save(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// CompleteStep records the output of a finished step and bumps progress.
func (s *Store) CompleteStep(ctx context.Context, id string, step int, result json.RawMessage, progress int, operation string) (*task.Task, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("task %s not found", id)
	}

	if t.StepResults == nil {
		t.StepResults = map[int]json.RawMessage{}
	}
	t.StepResults[step] = result
	if progress > t.Progress {
		t.Progress = progress
	}
	t.CurrentOperation = operation

	if err := s.save(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Complete marks the task done with its final result.
func (s *Store) Complete(ctx context.Context, id string, final *content.PublishedArticle) error {
	t, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if t == nil {
		return fmt.Errorf("task %s not found", id)
	}

	t.Status = task.StatusCompleted
	t.Progress = 100
	t.CurrentOperation = "Completed successfully"
	t.FinalResult = final

	return s.save(ctx, t)
}

// Fail marks the task failed with the step error verbatim.
func (s *Store) Fail(ctx context.Context, id, message string) error {
	t, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if t == nil {
		return fmt.Errorf("task %s not found", id)
	}

	t.Status = task.StatusFailed
	t.Error = message
	t.CurrentOperation = "Failed"

	return s.save(ctx, t)
}

// Cancel requests cancellation of a task. Terminal tasks are left as-is;
// the pipeline checks the status between steps and stops.
func (s *Store) Cancel(ctx context.Context, id string) (*task.Task, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, nil
	}
	if t.Status.Terminal() {
		return t, nil
	}

	t.Status = task.StatusCancelled
	t.CurrentOperation = "Cancelled by user"

	if err := s.save(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Store) List(ctx context.Context) ([]*task.Task, error) {
	keys, err := s.client.Keys(ctx, taskPrefix+"*").Result()
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	if len(keys) == 0 {
		return []*task.Task{}, nil
	}

	pipe := s.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(keys))
	for i, key := range keys {
		cmds[i] = pipe.Get(ctx, key)
	}

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("fetch tasks: %w", err)
	}

	tasks := make([]*task.Task, 0, len(keys))
	for _, cmd := range cmds {
		data, err := cmd.Bytes()
		if err != nil {
			continue
		}

		var t task.Task
		if err := json.Unmarshal(data, &t); err != nil {
			continue
		}
		tasks = append(tasks, &t)
	}

	return tasks, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, taskPrefix+id).Err(); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
