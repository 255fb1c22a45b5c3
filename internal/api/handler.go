package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kudryavtseva/contentforge/internal/content"
	"github.com/kudryavtseva/contentforge/internal/store"
	"github.com/kudryavtseva/contentforge/internal/task"
)

type Handler struct {
	store      *store.Store
	modelReady bool
}

func NewHandler(st *store.Store, modelReady bool) *Handler {
	return &Handler{store: st, modelReady: modelReady}
}

type CreateContentRequest struct {
	Topic  string         `json:"topic"`
	Config content.Config `json:"config"`
}

type CreateContentResponse struct {
	TaskID string      `json:"task_id"`
	Status task.Status `json:"status"`
}

type TaskSummary struct {
	TaskID           string      `json:"task_id"`
	Status           task.Status `json:"status"`
	Progress         int         `json:"progress"`
	CurrentOperation string      `json:"current_operation"`
	StartedAt        time.Time   `json:"started_at"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// CreateContent starts a content creation task. The topic is checked here,
// before anything is queued.
func (h *Handler) CreateContent(w http.ResponseWriter, r *http.Request) {
	var req CreateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Topic = strings.TrimSpace(req.Topic)
	if req.Topic == "" {
		respondError(w, http.StatusBadRequest, "topic is required")
		return
	}

	t, err := h.store.Create(r.Context(), req.Topic, req.Config)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusAccepted, CreateContentResponse{TaskID: t.ID, Status: t.Status})
}

// GetProgress returns the full task snapshot. Polling is the sole
// notification mechanism; completed tasks always return the same result.
func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "taskID")

	t, err := h.store.Get(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if t == nil {
		respondError(w, http.StatusNotFound, "task not found")
		return
	}

	respondJSON(w, http.StatusOK, t)
}

// Download serves a generated artifact file.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "taskID")
	fileType := chi.URLParam(r, "fileType")

	t, err := h.store.Get(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if t == nil {
		respondError(w, http.StatusNotFound, "task not found")
		return
	}
	if t.Status != task.StatusCompleted || t.FinalResult == nil {
		respondError(w, http.StatusBadRequest, "task not completed or no result available")
		return
	}

	var path, contentType, ext string
	switch fileType {
	case "html":
		path, contentType, ext = t.FinalResult.HTMLFilePath, "text/html", ".html"
	case "markdown":
		path, contentType, ext = t.FinalResult.MarkdownFilePath, "text/markdown", ".md"
	default:
		respondError(w, http.StatusBadRequest, "invalid file type")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+t.FinalResult.Slug+ext+`"`)
	http.ServeFile(w, r, path)
}

// CancelTask requests cancellation of a running task. The pipeline stops
// before its next step; the record stays readable.
func (h *Handler) CancelTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "taskID")

	t, err := h.store.Cancel(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if t == nil {
		respondError(w, http.StatusNotFound, "task not found")
		return
	}

	respondJSON(w, http.StatusOK, t)
}

func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.store.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	summaries := make([]TaskSummary, 0, len(tasks))
	for _, t := range tasks {
		summaries = append(summaries, TaskSummary{
			TaskID:           t.ID,
			Status:           t.Status,
			Progress:         t.Progress,
			CurrentOperation: t.CurrentOperation,
			StartedAt:        t.CreatedAt,
		})
	}

	respondJSON(w, http.StatusOK, map[string][]TaskSummary{"tasks": summaries})
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":          "healthy",
		"timestamp":       time.Now().Format(time.RFC3339),
		"model_available": h.modelReady,
	})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}
