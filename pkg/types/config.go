package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "cv-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// StyleConfig holds settings for bibliography style loading.
type StyleConfig struct {
	HTTPConfig `yaml:",inline"`

	// TemplateURL is the remote CSL style template to fetch. When empty
	// or unreachable the built-in style is used.
	TemplateURL string `json:"template_url" yaml:"template_url"`

	// MaxRetries is the number of retry attempts for the template fetch.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// MaxAuthors is the author-list truncation threshold (default 6).
	// Longer lists show the first MaxAuthors names followed by "et al.".
	MaxAuthors int `json:"max_authors" yaml:"max_authors"`
}

// StoreConfig holds settings for the local cache store.
type StoreConfig struct {
	// DataDir is the directory containing the cache database (default ".cv-engine").
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// RenderConfig holds settings for HTML/PDF rendering.
type RenderConfig struct {
	// Theme selects the HTML theme (default "reorx").
	Theme string `json:"theme" yaml:"theme"`

	// ColorPrimary overrides the theme's default primary color.
	ColorPrimary string `json:"color_primary,omitempty" yaml:"color_primary,omitempty"`

	// PageSize is the PDF paper size: "A4" or "Letter" (default "A4").
	PageSize string `json:"page_size" yaml:"page_size"`

	// OutputDir is the directory for rendered output (default "output").
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// PipelineConfig groups all stage configurations for the engine.
type PipelineConfig struct {
	Style  StyleConfig  `json:"style" yaml:"style"`
	Store  StoreConfig  `json:"store" yaml:"store"`
	Render RenderConfig `json:"render" yaml:"render"`
}
