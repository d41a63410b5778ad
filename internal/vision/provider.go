package vision

import (
	"context"
)

// DescribePrompt is the fixed instruction sent with every image. The
// downstream extractor is tuned to the prose this prompt elicits, so it
// should not be changed casually.
const DescribePrompt = "Describe the picture"

// Config represents the configuration for a vision model request
type Config struct {
	Model       string
	Temperature float64
	Prompt      string
}

// Provider defines the interface for a vision-capable LLM provider
type Provider interface {
	// DescribeImage sends one PNG image to the model and returns the
	// free-text description. Exactly one request, no retries.
	DescribeImage(ctx context.Context, config Config, pngData []byte) (string, error)
}
