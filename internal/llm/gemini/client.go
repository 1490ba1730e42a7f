package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
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
	apiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"
	provider   = "gemini"

	// KeySetting names the variable reported when no key is configured.
	KeySetting = "GEMINI_API_KEY"
)

// Client implements llm.Generator using Google's Gemini generateContent API.
// Text-only requests go to the long-form model, requests carrying an
// attachment go to the vision model.
type Client struct {
	apiKey      string
	model       string
	visionModel string
	temperature float64
	baseURL     string
	client      *http.Client
	logger      *zap.Logger
}

// New creates a Gemini client. It satisfies llm.ProviderFactory.
func New(cfg *config.ProviderConfig, logger *zap.Logger) (llm.Generator, error) {
	return newClient(cfg, cfg.Endpoint, logger), nil
}

// NewClientWithEndpoint creates a client pointing at a custom API base URL (for testing).
func NewClientWithEndpoint(cfg *config.ProviderConfig, baseURL string, logger *zap.Logger) *Client {
	return newClient(cfg, baseURL, logger)
}

func newClient(cfg *config.ProviderConfig, baseURL string, logger *zap.Logger) *Client {
	model := cfg.DefaultModel
	if model == "" {
		model = "gemini-3-pro-preview"
	}
	visionModel := cfg.VisionModel
	if visionModel == "" {
		visionModel = "gemini-3-flash-preview"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	if baseURL == "" {
		baseURL = apiBaseURL
	}
	return &Client{
		apiKey:      cfg.APIKey,
		model:       model,
		visionModel: visionModel,
		temperature: cfg.Temperature,
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		client:      &http.Client{Timeout: timeout},
		logger:      logger.Named("gemini"),
	}
}

func (c *Client) Generate(ctx context.Context, in llm.Request) (*llm.Response, error) {
	if !config.UsableKey(c.apiKey) {
		return nil, &domain.ConfigurationError{Setting: KeySetting}
	}

	model := c.model
	var parts []map[string]interface{}
	if in.Attachment != nil {
		model = c.visionModel
		parts = append(parts, map[string]interface{}{
			"inline_data": map[string]interface{}{
				"mime_type": in.Attachment.MIMEType,
				"data":      base64.StdEncoding.EncodeToString(in.Attachment.Data),
			},
		})
	}
	parts = append(parts, map[string]interface{}{"text": in.Prompt})

	generationConfig := map[string]interface{}{
		"responseMimeType": "application/json",
	}
	if in.Schema != nil {
		generationConfig["responseSchema"] = in.Schema.Gemini()
	}
	if c.temperature > 0 {
		generationConfig["temperature"] = c.temperature
	}

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"role":  "user",
				"parts": parts,
			},
		},
		"generationConfig": generationConfig,
	}
	if in.System != "" {
		reqBody["systemInstruction"] = map[string]interface{}{
			"parts": []map[string]interface{}{{"text": in.System}},
		}
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s:generateContent", c.baseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling gemini API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	c.logger.Debug("generateContent",
		zap.String("model", model),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
		zap.Bool("attachment", in.Attachment != nil),
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
		return nil, fmt.Errorf("gemini %s: %w", model, err)
	}
	return &llm.Response{JSON: doc, Model: model}, nil
}

// generateResponse models the Gemini API response.
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

func parseResponse(body []byte) (string, error) {
	var resp generateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: unmarshaling response: %v", domain.ErrFormat, err)
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: empty response from API: no candidates", domain.ErrFormat)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == "MAX_TOKENS" {
		return "", fmt.Errorf("%w: output truncated (finishReason: MAX_TOKENS)", domain.ErrFormat)
	}

	var sb strings.Builder
	for _, p := range candidate.Content.Parts {
		sb.WriteString(p.Text)
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", fmt.Errorf("%w: empty response from API: no text", domain.ErrFormat)
	}
	return sb.String(), nil
}
