package publish

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gosimple/slug"

	"github.com/kudryavtseva/contentforge/internal/content"
)

// Publisher writes the final article artifacts (one markdown file and one
// HTML page per task) into the output directory.
type Publisher struct {
	outputDir string
}

func New(outputDir string) *Publisher {
	return &Publisher{outputDir: outputDir}
}

// Publish assembles the pipeline outputs into files on disk and returns
// the final result stored on the task.
func (p *Publisher) Publish(article *content.Article, visuals *content.VisualPlan, seo *content.SEOReport) (*content.PublishedArticle, error) {
	if err := os.MkdirAll(p.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	urlSlug := slug.Make(article.Title)
	if urlSlug == "" {
		urlSlug = "article"
	}

	mdPath := filepath.Join(p.outputDir, urlSlug+".md")
	if err := os.WriteFile(mdPath, []byte(article.Markdown), 0o644); err != nil {
		return nil, fmt.Errorf("write markdown: %w", err)
	}

	readTime := article.ReadTime
	if readTime == "" {
		readTime = ReadTime(article.Markdown)
	}

	metaDescription := seo.MetaDescription
	if metaDescription == "" {
		metaDescription = article.MetaDescription
	}

	page, err := renderPage(pageData{
		Title:           article.Title,
		Subtitle:        article.Subtitle,
		MetaDescription: metaDescription,
		Keywords:        strings.Join(seo.Keywords, ", "),
		PublishDate:     time.Now().Format("January 2, 2006"),
		ReadTime:        readTime,
		TOC:             tocEntries(article.TableOfContents),
		Body:            article.Markdown,
		HeroAlt:         visuals.Hero.AltText,
	})
	if err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}

	htmlPath := filepath.Join(p.outputDir, urlSlug+".html")
	if err := os.WriteFile(htmlPath, page, 0o644); err != nil {
		return nil, fmt.Errorf("write html: %w", err)
	}

	return &content.PublishedArticle{
		HTMLFilePath:     htmlPath,
		MarkdownFilePath: mdPath,
		Title:            article.Title,
		Slug:             urlSlug,
		WordCount:        len(strings.Fields(article.Markdown)),
		SectionsCount:    len(article.Sections),
		ImagesIncluded:   1 + len(visuals.SectionImages),
		PublishDate:      time.Now().Format("January 2, 2006"),
		ReadTime:         readTime,
		SEOScore:         seo.Score,
		HTMLContent:      string(page),
		MarkdownContent:  article.Markdown,
	}, nil
}

// ReadTime estimates reading time at 225 words per minute.
func ReadTime(text string) string {
	words := len(strings.Fields(text))
	minutes := int(math.Round(float64(words) / 225))
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}

type tocEntry struct {
	Anchor string
	Title  string
}

func tocEntries(items []string) []tocEntry {
	entries := make([]tocEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, tocEntry{Anchor: slug.Make(item), Title: item})
	}
	return entries
}

type pageData struct {
	Title           string
	Subtitle        string
	MetaDescription string
	Keywords        string
	PublishDate     string
	ReadTime        string
	TOC             []tocEntry
	Body            string
	HeroAlt         string
}

func renderPage(data pageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
