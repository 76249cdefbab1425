// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// DefaultEndpoint is the Kroki endpoint that renders Mermaid source to PNG.
const DefaultEndpoint = "https://kroki.io/mermaid/png"

// HTTPConfig holds settings for requests to the rendering service.
type HTTPConfig struct {
	// Endpoint is the URL that receives the diagram source as a POST body.
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// Timeout is the HTTP request timeout (default 30s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with every render request
	// (e.g. "mermaid-render/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// Retries is the number of extra attempts after an HTTP 429 response.
	// Zero sends exactly one request per diagram.
	Retries int `json:"retries" yaml:"retries"`
}

// ExtractParser selects how diagram blocks are located in a document.
type ExtractParser string

const (
	// ParserFence matches ```mermaid ... ``` line pairs literally.
	ParserFence ExtractParser = "fence"
	// ParserMarkdown parses the document as CommonMark and keeps fenced
	// code blocks tagged mermaid.
	ParserMarkdown ExtractParser = "markdown"
)

// RenderConfig groups everything a run needs.
type RenderConfig struct {
	HTTPConfig `yaml:",inline"`

	// OutputDir, when set, receives every image. When empty each document
	// gets a sibling {stem}_mermaid_images directory.
	OutputDir string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`

	// Delay is the pause between consecutive renders of one document (default 1s).
	Delay time.Duration `json:"delay" yaml:"delay"`

	// Parser selects the block extractor: fence or markdown.
	Parser ExtractParser `json:"parser" yaml:"parser"`

	// Extensions lists the file extensions treated as documents (default [".md"]).
	Extensions []string `json:"extensions" yaml:"extensions"`
}
