package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/lehigh-university-libraries/scantriage/internal/vision"
)

const defaultGeminiModel = "gemini-1.5-flash"

// newProvider validates credentials and builds the vision provider before
// any image is touched. A missing credential is a startup error, not a
// per-image one.
func newProvider(providerName, model string, timeout time.Duration) (vision.Provider, vision.Config, error) {
	config := vision.Config{
		Temperature: 0.0,
		Prompt:      vision.DescribePrompt,
	}

	switch providerName {
	case "cborg":
		client, err := vision.NewCBorg(os.Getenv("CBORG_API_KEY"), os.Getenv("CBORG_API_BASE"), timeout)
		if err != nil {
			return nil, config, err
		}
		if model == "" {
			model = os.Getenv("CBORG_MODEL")
		}
		if model == "" {
			model = vision.DefaultModel
		}
		config.Model = model
		return client, config, nil

	case "gemini":
		if os.Getenv("GEMINI_API_KEY") == "" {
			return nil, config, fmt.Errorf("GEMINI_API_KEY environment variable not set")
		}
		if model == "" {
			model = defaultGeminiModel
		}
		config.Model = model
		return vision.NewGemini(), config, nil

	default:
		return nil, config, fmt.Errorf("unsupported provider: %s", providerName)
	}
}
