package worker

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/kudryavtseva/contentforge/internal/store"
	"github.com/kudryavtseva/contentforge/internal/task"
)

// RunFunc drives one task to a terminal state.
type RunFunc func(ctx context.Context, t *task.Task)

// Pool runs queued content pipelines. Each worker pops the next task id
// from the store's run queue and executes the whole pipeline for it; one
// task occupies one worker from start to finish.
type Pool struct {
	store *store.Store
	run   RunFunc
	count int
	wg    sync.WaitGroup
}

func NewPool(st *store.Store, run RunFunc, count int) *Pool {
	return &Pool{store: st, run: run, count: count}
}

func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.count; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}
	log.Printf("Started %d pipeline workers", p.count)
}

func (p *Pool) Stop() {
	p.wg.Wait()
	log.Println("All pipeline workers stopped")
}

func (p *Pool) worker(ctx context.Context, id int) {
	defer p.wg.Done()
	log.Printf("Worker %d started", id)

	for {
		select {
		case <-ctx.Done():
			log.Printf("Worker %d shutting down", id)
			return
		default:
			t, err := p.store.Next(ctx, 2*time.Second)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				log.Printf("Worker %d: next task: %v", id, err)
				continue
			}

			if t == nil {
				continue
			}

			log.Printf("Worker %d running task %s (topic: %q)", id, t.ID, t.Topic)
			p.run(ctx, t)
		}
	}
}
