// Package local is the built-in analysis backend: an extractive
// summarizer and a pattern-based entity extractor that run without any
// external model. When enabled it takes precedence over the inference
// backend for both capabilities.
package local

type Provider struct{}

func New() *Provider {
	return &Provider{}
}

func (p *Provider) Name() string {
	return "local"
}
