package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kudryavtseva/contentforge/internal/content"
)

// Agents holds the five prompt-driven transformations of the content
// pipeline. Each takes the previous step's typed output, calls the model
// once and returns a schema-validated result.
type Agents struct {
	client Client
}

func New(client Client) *Agents {
	return &Agents{client: client}
}

const inputSystem = `You are a user input validation and enhancement agent.
Validate that the topic is specific enough for quality content creation and
appropriate. Enhance vague topics while keeping the user's intent, and
recommend a target audience, content type, content length and tone.`

const researchSystem = `You are a comprehensive research specialist. Gather
current, accurate information with statistics, expert quotes and credible
sources, organize it into clear sections, and rate your own research quality
honestly on a 1-10 scale.`

const structureSystem = `You are a content architecture and writing
specialist. Turn research into readable, flowing prose with a compelling
title, logical sections, markdown formatting and SEO-friendly metadata.`

const visualsSystem = `You are a visual content strategy expert. Design a
hero image and section images with detailed generation prompts, meaningful
alt text, a consistent style and color scheme, and web-appropriate aspect
ratios.`

const seoSystem = `You are an SEO expert. Optimize content for search
engines while maintaining readability, and rate the final optimization on a
1-10 scale.`

// ValidateInput is step 0: clean up and enrich the raw topic.
func (a *Agents) ValidateInput(ctx context.Context, topic string, cfg content.Config) (*content.Brief, error) {
	prompt := fmt.Sprintf(`Analyze and enhance this topic for content creation: %q

Preferred settings (use them unless clearly unsuitable):
- target audience: %s
- content type: %s
- content length: %s
- tone: %s
- include technical details: %t

%s
{"topic": string, "target_audience": string, "content_type": string,
"content_length": string, "tone": string, "include_technical_details": bool}`,
		topic, cfg.TargetAudience, cfg.ContentType, cfg.ContentLength, cfg.Tone,
		cfg.TechnicalDetails, jsonOnly)

	return run[content.Brief](ctx, a.client, inputSystem, prompt)
}

// Research is step 1.
func (a *Agents) Research(ctx context.Context, brief *content.Brief) (*content.Research, error) {
	prompt := fmt.Sprintf(`Conduct thorough research on this topic:

Topic: %s
Content type: %s
Target audience: %s
Technical details: %t

Provide an executive summary, key points, detailed sections, relevant
statistics, expert quotes, credible sources and related topics. Aim for a
research quality score of 8+ out of 10.

%s
{"topic": string, "executive_summary": string, "key_points": [string],
"detailed_sections": {string: string}, "statistics": [string],
"expert_quotes": [string], "sources": [string], "related_topics": [string],
"research_quality_score": int}`,
		brief.Topic, brief.ContentType, brief.TargetAudience, brief.TechnicalDetails, jsonOnly)

	return run[content.Research](ctx, a.client, researchSystem, prompt)
}

// Structure is step 2: research turned into a full markdown article.
func (a *Agents) Structure(ctx context.Context, brief *content.Brief, research *content.Research, cfg content.Config) (*content.Article, error) {
	sections, _ := json.Marshal(research.DetailedSections)
	prompt := fmt.Sprintf(`Create well-structured content from this research:

Topic: %s
Executive summary: %s
Key points: %s
Detailed sections: %s
Statistics: %s
Sources: %s

Requirements:
- target audience: %s
- content type: %s
- content length: %s
- tone: %s
- max word count: %d
- include table of contents: %t
- include references: %t

Write the full article in markdown with headers, a compelling title and
subtitle, SEO metadata and an accurate reading time estimate.

%s
{"title": string, "subtitle": string, "summary": string,
"table_of_contents": [string], "markdown_content": string,
"sections": [string], "keywords": [string], "meta_description": string,
"estimated_read_time": string}`,
		research.Topic, research.ExecutiveSummary,
		strings.Join(research.KeyPoints, "; "), sections,
		strings.Join(research.Statistics, "; "), strings.Join(research.Sources, "; "),
		brief.TargetAudience, brief.ContentType, brief.ContentLength, brief.Tone,
		cfg.MaxWordCount, cfg.IncludeTOC, cfg.IncludeRefs, jsonOnly)

	return run[content.Article](ctx, a.client, structureSystem, prompt)
}

// DesignVisuals is step 3.
func (a *Agents) DesignVisuals(ctx context.Context, brief *content.Brief, article *content.Article) (*content.VisualPlan, error) {
	prompt := fmt.Sprintf(`Design a visual content strategy for this article:

Title: %s
Subtitle: %s
Summary: %s
Sections: %s
Keywords: %s
Content type: %s
Target audience: %s

Content preview:
%s

Specify a hero image plus section images with generation prompts and alt
text, a consistent visual style, a color scheme and aspect ratios.

%s
{"hero_image": {"prompt": string, "alt_text": string},
"section_images": [{"prompt": string, "alt_text": string}],
"image_style": string, "color_scheme": string,
"aspect_ratios": {string: string}}`,
		article.Title, article.Subtitle, article.Summary,
		strings.Join(article.Sections, "; "), strings.Join(article.Keywords, ", "),
		brief.ContentType, brief.TargetAudience, clip(article.Markdown, 800), jsonOnly)

	return run[content.VisualPlan](ctx, a.client, visualsSystem, prompt)
}

// OptimizeSEO is step 4: the final polish before artifacts are written.
func (a *Agents) OptimizeSEO(ctx context.Context, article *content.Article) (*content.SEOReport, error) {
	prompt := fmt.Sprintf(`Optimize this article for SEO:

Title: %s
Meta description: %s
Keywords: %s

Article:
%s

Provide 3-4 SEO-optimized title variations, a meta description of at most
155 characters, primary and secondary keywords, concrete content
improvements and an overall score.

%s
{"title_options": [string], "meta_description": string,
"keywords": [string], "improvements": [string], "seo_score": int}`,
		article.Title, article.MetaDescription, strings.Join(article.Keywords, ", "),
		clip(article.Markdown, 1500), jsonOnly)

	return run[content.SEOReport](ctx, a.client, seoSystem, prompt)
}

const jsonOnly = `Respond with a single JSON object and nothing else, shaped as:`

func run[T any](ctx context.Context, c Client, system, prompt string) (*T, error) {
	reply, err := c.Complete(ctx, system, prompt)
	if err != nil {
		return nil, err
	}

	payload := ExtractJSON(reply)
	if payload == "" {
		return nil, fmt.Errorf("no JSON object in model reply")
	}

	var out T
	if err := json.Unmarshal([]byte(payload), &out); err != nil {
		return nil, fmt.Errorf("decode model reply: %w", err)
	}
	if err := content.Validate(&out); err != nil {
		return nil, fmt.Errorf("model reply failed validation: %w", err)
	}
	return &out, nil
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
