package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultBaseURL is the CBorg API gateway run by LBL.
	DefaultBaseURL = "https://api.cborg.lbl.gov"

	// DefaultModel is the vision model served behind the gateway.
	DefaultModel = "lbl/cborg-vision"

	defaultTimeout = 120 * time.Second
)

// CBorg is a provider for the CBorg chat-completion API. Construct it once
// at startup with NewCBorg and inject it wherever a description is needed.
type CBorg struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// NewCBorg returns a CBorg provider. An empty baseURL selects the default
// gateway; timeout zero selects a bounded default so a hung request cannot
// stall a batch forever.
func NewCBorg(apiKey, baseURL string, timeout time.Duration) (*CBorg, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key not found: set the CBORG_API_KEY environment variable")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &CBorg{
		APIKey:  apiKey,
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// DescribeImage sends one chat-completion request carrying the prompt and
// the PNG image as a data URL, non-streaming, and returns the single text
// completion.
func (c *CBorg) DescribeImage(ctx context.Context, config Config, pngData []byte) (string, error) {
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngData)

	requestBody, err := json.Marshal(map[string]interface{}{
		"model": config.Model,
		"messages": []map[string]interface{}{
			{
				"role": "user",
				"content": []map[string]interface{}{
					{
						"type": "text",
						"text": config.Prompt,
					},
					{
						"type": "image_url",
						"image_url": map[string]string{
							"url": dataURL,
						},
					},
				},
			},
		},
		"temperature": config.Temperature,
		"stream":      false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	url := c.BaseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(requestBody))
	if err != nil {
		return "", fmt.Errorf("failed to create new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("received non-200 status code: %d - %s", resp.StatusCode, string(body))
	}

	var response struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response body: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from CBorg")
	}

	return response.Choices[0].Message.Content, nil
}
