package pipeline

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kudryavtseva/contentforge/internal/agent"
	"github.com/kudryavtseva/contentforge/internal/content"
	"github.com/kudryavtseva/contentforge/internal/publish"
	"github.com/kudryavtseva/contentforge/internal/store"
	"github.com/kudryavtseva/contentforge/internal/task"
)

// scriptedClient replays one canned model reply per call.
type scriptedClient struct {
	replies []string
	errs    []error
	calls   int
}

func (c *scriptedClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	i := c.calls
	c.calls++
	if i < len(c.errs) && c.errs[i] != nil {
		return "", c.errs[i]
	}
	if i >= len(c.replies) {
		return "", errors.New("unexpected model call")
	}
	return c.replies[i], nil
}

var stepReplies = []string{
	`{"topic": "Go concurrency", "target_audience": "developers",
	  "content_type": "article", "content_length": "medium",
	  "tone": "professional", "include_technical_details": true}`,
	`{"topic": "Go concurrency", "executive_summary": "Goroutines and channels.",
	  "key_points": ["goroutines", "channels"],
	  "detailed_sections": {"Introduction": "Concurrency is built in."},
	  "statistics": [], "expert_quotes": [], "sources": ["golang.org"],
	  "related_topics": [], "research_quality_score": 8}`,
	`{"title": "The Complete Guide to Go Concurrency",
	  "subtitle": "Goroutines, channels and beyond",
	  "summary": "A practical tour.",
	  "table_of_contents": ["Introduction", "Channels"],
	  "markdown_content": "# The Complete Guide to Go Concurrency\n\nGoroutines are cheap.",
	  "sections": ["Introduction", "Channels"],
	  "keywords": ["go", "concurrency"],
	  "meta_description": "A practical guide to Go concurrency.",
	  "estimated_read_time": "8 min read"}`,
	`{"hero_image": {"prompt": "gophers passing messages", "alt_text": "gophers"},
	  "section_images": [{"prompt": "channel diagram", "alt_text": "channels"}],
	  "image_style": "modern", "color_scheme": "blue and white",
	  "aspect_ratios": {"hero": "16:9"}}`,
	`{"title_options": ["Go Concurrency in 2026"],
	  "meta_description": "Learn Go concurrency.",
	  "keywords": ["go", "concurrency"],
	  "improvements": ["add benchmarks"], "seo_score": 9}`,
}

func setupTest(t *testing.T, client agent.Client) (*Runner, *store.Store, *miniredis.Miniredis, string) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	st, err := store.New(mr.Addr(), "", 0)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	dir := t.TempDir()
	return New(agent.New(client), st, publish.New(dir)), st, mr, dir
}

func TestRunner_FullPipeline(t *testing.T) {
	client := &scriptedClient{replies: stepReplies}
	runner, st, mr, _ := setupTest(t, client)
	defer mr.Close()
	ctx := context.Background()

	created, err := st.Create(ctx, "go concurrency", content.Config{})
	require.NoError(t, err)

	runner.Run(ctx, created)

	got, err := st.Get(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, task.StatusCompleted, got.Status)
	assert.Equal(t, 100, got.Progress)
	assert.Len(t, got.StepResults, task.StepCount)
	assert.LessOrEqual(t, got.CurrentStep, len(got.StepResults))
	assert.Equal(t, 5, client.calls)

	require.NotNil(t, got.FinalResult)
	assert.Equal(t, "The Complete Guide to Go Concurrency", got.FinalResult.Title)
	assert.Equal(t, "the-complete-guide-to-go-concurrency", got.FinalResult.Slug)
	assert.Equal(t, 9, got.FinalResult.SEOScore)
	assert.Equal(t, 2, got.FinalResult.ImagesIncluded)

	for _, path := range []string{got.FinalResult.MarkdownFilePath, got.FinalResult.HTMLFilePath} {
		_, err := os.Stat(path)
		assert.NoError(t, err, "artifact %s should exist", path)
	}
}

func TestRunner_StepFailureStopsPipeline(t *testing.T) {
	client := &scriptedClient{
		replies: stepReplies,
		errs:    []error{nil, errors.New("model call: rate limited")},
	}
	runner, st, mr, _ := setupTest(t, client)
	defer mr.Close()
	ctx := context.Background()

	created, err := st.Create(ctx, "go concurrency", content.Config{})
	require.NoError(t, err)

	runner.Run(ctx, created)

	got, err := st.Get(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, task.StatusFailed, got.Status)
	assert.Contains(t, got.Error, "rate limited")
	// Only the completed prefix survives: step 0, nothing after.
	assert.Len(t, got.StepResults, 1)
	assert.Contains(t, got.StepResults, 0)
	assert.Equal(t, 2, client.calls)
	assert.Nil(t, got.FinalResult)
}

func TestRunner_CancelledBeforeStart(t *testing.T) {
	client := &scriptedClient{replies: stepReplies}
	runner, st, mr, _ := setupTest(t, client)
	defer mr.Close()
	ctx := context.Background()

	created, err := st.Create(ctx, "go concurrency", content.Config{})
	require.NoError(t, err)

	_, err = st.Cancel(ctx, created.ID)
	require.NoError(t, err)

	runner.Run(ctx, created)

	got, err := st.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, task.StatusCancelled, got.Status)
	assert.Empty(t, got.StepResults)
	assert.Zero(t, client.calls)
}
