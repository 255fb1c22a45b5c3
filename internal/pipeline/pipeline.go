package pipeline

import (
	"context"
	"encoding/json"
	"log"

	"github.com/kudryavtseva/contentforge/internal/agent"
	"github.com/kudryavtseva/contentforge/internal/publish"
	"github.com/kudryavtseva/contentforge/internal/store"
	"github.com/kudryavtseva/contentforge/internal/task"
)

// Runner executes the five agent steps in order for one task, feeding each
// step's output forward and recording progress in the store after every
// step. A step failure marks the task failed and stops the run; there is no
// retry at this level.
type Runner struct {
	agents    *agent.Agents
	store     *store.Store
	publisher *publish.Publisher
}

func New(agents *agent.Agents, st *store.Store, publisher *publish.Publisher) *Runner {
	return &Runner{agents: agents, store: st, publisher: publisher}
}

// Run drives the task to a terminal state. Cancellation requested through
// the API is honored between steps; a running model call is not interrupted.
func (r *Runner) Run(ctx context.Context, t *task.Task) {
	id := t.ID
	cfg := t.Config

	// Step 0: input validation and enhancement.
	if r.stopped(ctx, id) {
		return
	}
	r.advance(ctx, id, 0, 10, "Processing user input...")
	brief, err := r.agents.ValidateInput(ctx, t.Topic, cfg)
	if err != nil {
		r.fail(ctx, id, err)
		return
	}
	r.record(ctx, id, 0, brief, 20, "User input processed")

	// Step 1: research.
	if r.stopped(ctx, id) {
		return
	}
	r.advance(ctx, id, 1, 25, "Conducting research...")
	research, err := r.agents.Research(ctx, brief)
	if err != nil {
		r.fail(ctx, id, err)
		return
	}
	r.record(ctx, id, 1, research, 45, "Research completed")

	// Step 2: structured article.
	if r.stopped(ctx, id) {
		return
	}
	r.advance(ctx, id, 2, 50, "Creating structured content...")
	article, err := r.agents.Structure(ctx, brief, research, cfg)
	if err != nil {
		r.fail(ctx, id, err)
		return
	}
	r.record(ctx, id, 2, article, 70, "Content structured")

	// Step 3: visual design.
	if r.stopped(ctx, id) {
		return
	}
	r.advance(ctx, id, 3, 75, "Designing visual content...")
	visuals, err := r.agents.DesignVisuals(ctx, brief, article)
	if err != nil {
		r.fail(ctx, id, err)
		return
	}
	r.record(ctx, id, 3, visuals, 85, "Visual design completed")

	// Step 4: SEO polish, then artifacts.
	if r.stopped(ctx, id) {
		return
	}
	r.advance(ctx, id, 4, 90, "Publishing article...")
	seo, err := r.agents.OptimizeSEO(ctx, article)
	if err != nil {
		r.fail(ctx, id, err)
		return
	}
	r.record(ctx, id, 4, seo, 95, "SEO optimization completed")

	final, err := r.publisher.Publish(article, visuals, seo)
	if err != nil {
		r.fail(ctx, id, err)
		return
	}

	if err := r.store.Complete(ctx, id, final); err != nil {
		log.Printf("Task %s: store complete: %v", id, err)
		return
	}
	log.Printf("Task %s completed: %s", id, final.HTMLFilePath)
}

// stopped reports whether the task was cancelled or removed while waiting
// for its next step.
func (r *Runner) stopped(ctx context.Context, id string) bool {
	t, err := r.store.Get(ctx, id)
	if err != nil {
		log.Printf("Task %s: status check: %v", id, err)
		return true
	}
	if t == nil {
		log.Printf("Task %s removed, stopping", id)
		return true
	}
	if t.Status == task.StatusCancelled {
		log.Printf("Task %s cancelled, stopping", id)
		return true
	}
	return false
}

func (r *Runner) advance(ctx context.Context, id string, step, progress int, operation string) {
	if _, err := r.store.Advance(ctx, id, step, progress, operation); err != nil {
		log.Printf("Task %s: advance to step %d: %v", id, step, err)
	}
}

func (r *Runner) record(ctx context.Context, id string, step int, result any, progress int, operation string) {
	data, err := json.Marshal(result)
	if err != nil {
		log.Printf("Task %s: marshal step %d result: %v", id, step, err)
		return
	}
	if _, err := r.store.CompleteStep(ctx, id, step, data, progress, operation); err != nil {
		log.Printf("Task %s: record step %d: %v", id, step, err)
		return
	}
	log.Printf("Task %s: step %s done (%d%%)", id, task.StepNames[step], progress)
}

func (r *Runner) fail(ctx context.Context, id string, cause error) {
	log.Printf("Task %s failed: %v", id, cause)
	if err := r.store.Fail(ctx, id, cause.Error()); err != nil {
		log.Printf("Task %s: store fail: %v", id, err)
	}
}
