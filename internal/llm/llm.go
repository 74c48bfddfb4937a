package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Client abstracts the model provider behind the analysis pipeline.
type Client interface {
	Generate(ctx context.Context, input GenerateInput) (json.RawMessage, error)
}

// GenerateInput is a compiled prompt pair ready to send to a provider.
type GenerateInput struct {
	System    string
	User      string
	ForceJSON bool
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("llm provider not configured")

// PlaceholderClient is the stand-in used when no provider is configured.
type PlaceholderClient struct{}

func (PlaceholderClient) Generate(ctx context.Context, input GenerateInput) (json.RawMessage, error) {
	_ = ctx
	_ = input
	return nil, ErrNotConfigured
}
