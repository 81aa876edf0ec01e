package provider

import (
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const DefaultModel = anthropic.ModelClaude3_7SonnetLatest

// NewAnthropicClient returns a client for apiKey. An empty baseURL keeps the
// SDK default. Extra options are applied last.
func NewAnthropicClient(apiKey, baseURL string, opts ...option.RequestOption) *anthropic.Client {
	base := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		base = append(base, option.WithBaseURL(baseURL))
	}
	c := anthropic.NewClient(append(base, opts...)...)
	return &c
}
