package deepseek

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"seogen/internal/config"
	"seogen/internal/domain"
	"seogen/internal/llm"
)

const (
	apiURL   = "https://api.deepseek.com/v1/chat/completions"
	provider = "deepseek"

	// KeySetting names the variable reported when no key is configured.
	KeySetting = "DEEPSEEK_API_KEY"
)

// ErrNoVision is returned for requests carrying an attachment.
var ErrNoVision = errors.New("deepseek: document input is not supported")

// Client implements llm.Generator using the DeepSeek chat completions API
// (OpenAI-compatible). The answer is requested as a JSON object; there is no
// provider-side schema, so the schema is only enforced on the decoded answer.
type Client struct {
	apiKey      string
	model       string
	temperature float64
	endpoint    string
	client      *http.Client
	logger      *zap.Logger
}

// New creates a DeepSeek client. It satisfies llm.ProviderFactory.
func New(cfg *config.ProviderConfig, logger *zap.Logger) (llm.Generator, error) {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = apiURL
	}
	return newClient(cfg, endpoint, logger), nil
}

// NewClientWithEndpoint creates a client pointing at a custom API endpoint (for testing).
func NewClientWithEndpoint(cfg *config.ProviderConfig, endpoint string, logger *zap.Logger) *Client {
	return newClient(cfg, endpoint, logger)
}

func newClient(cfg *config.ProviderConfig, endpoint string, logger *zap.Logger) *Client {
	model := cfg.DefaultModel
	if model == "" {
		model = "deepseek-chat"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.7
	}
	return &Client{
		apiKey:      cfg.APIKey,
		model:       model,
		temperature: temperature,
		endpoint:    endpoint,
		client:      &http.Client{Timeout: timeout},
		logger:      logger.Named("deepseek"),
	}
}

func (c *Client) Generate(ctx context.Context, in llm.Request) (*llm.Response, error) {
	if !config.UsableKey(c.apiKey) {
		return nil, &domain.ConfigurationError{Setting: KeySetting}
	}
	if in.Attachment != nil {
		return nil, ErrNoVision
	}

	var messages []map[string]interface{}
	if in.System != "" {
		messages = append(messages, map[string]interface{}{"role": "system", "content": in.System})
	}
	messages = append(messages, map[string]interface{}{"role": "user", "content": in.Prompt})

	reqBody := map[string]interface{}{
		"model":    c.model,
		"messages": messages,
		"response_format": map[string]interface{}{
			"type": "json_object",
		},
		"temperature": c.temperature,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling deepseek API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	c.logger.Debug("chat completion",
		zap.String("model", c.model),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode != http.StatusOK {
		return nil, llm.UpstreamFromResponse(provider, resp.StatusCode, respBody, resp.Header.Get("Retry-After"))
	}

	text, err := parseResponse(respBody)
	if err != nil {
		return nil, err
	}
	doc, err := llm.DecodeResponse(text, in.Schema)
	if err != nil {
		return nil, fmt.Errorf("deepseek %s: %w", c.model, err)
	}
	return &llm.Response{JSON: doc, Model: c.model}, nil
}

// apiResponse models the chat completions response.
type apiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

func parseResponse(body []byte) (string, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: unmarshaling response: %v", domain.ErrFormat, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response from API: no choices", domain.ErrFormat)
	}

	if resp.Choices[0].FinishReason == "length" {
		return "", fmt.Errorf("%w: output truncated (finish_reason: length)", domain.ErrFormat)
	}

	text := resp.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty response from API: no content", domain.ErrFormat)
	}
	return text, nil
}
