package publish

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kudryavtseva/contentforge/internal/content"
)

func samplePipelineOutput() (*content.Article, *content.VisualPlan, *content.SEOReport) {
	article := &content.Article{
		Title:           "The Complete Guide to Edge Computing",
		Subtitle:        "Compute where the data lives",
		TableOfContents: []string{"Introduction", "Key Concepts"},
		Markdown:        "# The Complete Guide to Edge Computing\n\nEdge computing moves compute close to data sources.",
		Sections:        []string{"Introduction", "Key Concepts"},
		Keywords:        []string{"edge", "computing"},
		MetaDescription: "A guide to edge computing.",
	}
	visuals := &content.VisualPlan{
		Hero:          content.ImageSpec{Prompt: "servers at the edge", AltText: "edge servers"},
		SectionImages: []content.ImageSpec{{Prompt: "latency diagram", AltText: "latency"}},
	}
	seo := &content.SEOReport{
		TitleOptions:    []string{"Edge Computing in 2026"},
		MetaDescription: "Learn edge computing.",
		Keywords:        []string{"edge computing"},
		Score:           9,
	}
	return article, visuals, seo
}

func TestPublisher_WritesArtifacts(t *testing.T) {
	dir := t.TempDir()
	article, visuals, seo := samplePipelineOutput()

	result, err := New(dir).Publish(article, visuals, seo)
	require.NoError(t, err)

	assert.Equal(t, "the-complete-guide-to-edge-computing", result.Slug)
	assert.Equal(t, article.Title, result.Title)
	assert.Equal(t, 2, result.SectionsCount)
	assert.Equal(t, 2, result.ImagesIncluded)
	assert.Equal(t, 9, result.SEOScore)
	assert.Equal(t, len(strings.Fields(article.Markdown)), result.WordCount)
	assert.Equal(t, "1 min read", result.ReadTime)

	md, err := os.ReadFile(result.MarkdownFilePath)
	require.NoError(t, err)
	assert.Equal(t, article.Markdown, string(md))

	page, err := os.ReadFile(result.HTMLFilePath)
	require.NoError(t, err)
	html := string(page)
	assert.Contains(t, html, "<title>The Complete Guide to Edge Computing</title>")
	assert.Contains(t, html, `content="Learn edge computing."`)
	assert.Contains(t, html, `href="#introduction"`)
	assert.Equal(t, html, result.HTMLContent)
}

func TestPublisher_EmptyTitleFallsBack(t *testing.T) {
	dir := t.TempDir()
	article, visuals, seo := samplePipelineOutput()
	article.Title = "!!!"

	result, err := New(dir).Publish(article, visuals, seo)
	require.NoError(t, err)
	assert.Equal(t, "article", result.Slug)
}

func TestReadTime(t *testing.T) {
	assert.Equal(t, "1 min read", ReadTime("a few words"))
	assert.Equal(t, "2 min read", ReadTime(strings.Repeat("word ", 450)))
	assert.Equal(t, "1 min read", ReadTime(""))
}
