package content

// Config holds per-request knobs for content generation. Zero values are
// filled in by Normalize before the pipeline starts.
type Config struct {
	OutputDirectory  string `json:"output_directory,omitempty"`
	MaxWordCount     int    `json:"max_word_count,omitempty"`
	IncludeTOC       bool   `json:"include_toc"`
	IncludeRefs      bool   `json:"include_references"`
	TargetAudience   string `json:"target_audience,omitempty"`
	ContentType      string `json:"content_type,omitempty"`
	ContentLength    string `json:"content_length,omitempty"`
	Tone             string `json:"tone,omitempty"`
	TechnicalDetails bool   `json:"include_technical_details"`
}

// Normalize fills empty fields with defaults.
func (c *Config) Normalize() {
	if c.MaxWordCount == 0 {
		c.MaxWordCount = 2000
	}
	if c.TargetAudience == "" {
		c.TargetAudience = "general"
	}
	if c.ContentType == "" {
		c.ContentType = "article"
	}
	if c.ContentLength == "" {
		c.ContentLength = "medium"
	}
	if c.Tone == "" {
		c.Tone = "professional"
	}
}

// Brief is the output of the input-validation step: the user topic cleaned
// up and enriched with audience and tone recommendations.
type Brief struct {
	Topic            string `json:"topic" validate:"required"`
	TargetAudience   string `json:"target_audience" validate:"required"`
	ContentType      string `json:"content_type" validate:"required"`
	ContentLength    string `json:"content_length" validate:"required"`
	Tone             string `json:"tone" validate:"required"`
	TechnicalDetails bool   `json:"include_technical_details"`
}

// Research is the output of the research step.
type Research struct {
	Topic            string            `json:"topic" validate:"required"`
	ExecutiveSummary string            `json:"executive_summary" validate:"required"`
	KeyPoints        []string          `json:"key_points" validate:"required,min=1"`
	DetailedSections map[string]string `json:"detailed_sections" validate:"required,min=1"`
	Statistics       []string          `json:"statistics"`
	ExpertQuotes     []string          `json:"expert_quotes"`
	Sources          []string          `json:"sources"`
	RelatedTopics    []string          `json:"related_topics"`
	QualityScore     int               `json:"research_quality_score" validate:"gte=1,lte=10"`
}

// Article is the output of the content-structuring step.
type Article struct {
	Title           string   `json:"title" validate:"required"`
	Subtitle        string   `json:"subtitle"`
	Summary         string   `json:"summary"`
	TableOfContents []string `json:"table_of_contents"`
	Markdown        string   `json:"markdown_content" validate:"required"`
	Sections        []string `json:"sections" validate:"required,min=1"`
	Keywords        []string `json:"keywords"`
	MetaDescription string   `json:"meta_description"`
	ReadTime        string   `json:"estimated_read_time"`
}

// ImageSpec describes one image to generate.
type ImageSpec struct {
	Prompt  string `json:"prompt" validate:"required"`
	AltText string `json:"alt_text" validate:"required"`
}

// VisualPlan is the output of the visual-design step.
type VisualPlan struct {
	Hero          ImageSpec         `json:"hero_image" validate:"required"`
	SectionImages []ImageSpec       `json:"section_images"`
	Style         string            `json:"image_style"`
	ColorScheme   string            `json:"color_scheme"`
	AspectRatios  map[string]string `json:"aspect_ratios"`
}

// SEOReport is the output of the publishing/SEO step.
type SEOReport struct {
	TitleOptions    []string `json:"title_options" validate:"required,min=1"`
	MetaDescription string   `json:"meta_description" validate:"required"`
	Keywords        []string `json:"keywords"`
	Improvements    []string `json:"improvements"`
	Score           int      `json:"seo_score" validate:"gte=1,lte=10"`
}

// PublishedArticle is the final pipeline result: the written artifacts and
// their stats. Content fields are inlined so the client can preview without
// a second round trip.
type PublishedArticle struct {
	HTMLFilePath     string `json:"html_file_path"`
	MarkdownFilePath string `json:"markdown_file_path"`
	Title            string `json:"article_title"`
	Slug             string `json:"article_url_slug"`
	WordCount        int    `json:"word_count"`
	SectionsCount    int    `json:"sections_count"`
	ImagesIncluded   int    `json:"images_included"`
	PublishDate      string `json:"publish_date"`
	ReadTime         string `json:"estimated_read_time"`
	SEOScore         int    `json:"seo_score"`
	HTMLContent      string `json:"html_content,omitempty"`
	MarkdownContent  string `json:"markdown_content,omitempty"`
}
