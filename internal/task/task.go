package task

import (
	"encoding/json"
	"time"

	"github.com/kudryavtseva/contentforge/internal/content"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// Terminal reports whether the status can no longer change.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

// StepCount is the number of agent steps in the content pipeline.
const StepCount = 5

// StepNames, indexed by step number.
var StepNames = [StepCount]string{
	"input",
	"research",
	"structure",
	"visuals",
	"publish",
}

// Task tracks one end-to-end content creation request. StepResults holds
// the raw output of each completed step, keyed by step index; it always
// contains a gapless prefix of the pipeline.
type Task struct {
	ID               string                    `json:"task_id"`
	Topic            string                    `json:"topic"`
	Config           content.Config            `json:"config"`
	Status           Status                    `json:"status"`
	Progress         int                       `json:"progress"`
	CurrentStep      int                       `json:"current_step"`
	CurrentOperation string                    `json:"current_operation"`
	StepResults      map[int]json.RawMessage   `json:"step_results,omitempty"`
	FinalResult      *content.PublishedArticle `json:"final_result,omitempty"`
	Error            string                    `json:"error,omitempty"`
	CreatedAt        time.Time                 `json:"created_at"`
	UpdatedAt        time.Time                 `json:"updated_at"`
}
