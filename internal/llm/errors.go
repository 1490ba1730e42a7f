package llm

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"seogen/internal/domain"
)

// RateLimitError indicates a provider returned HTTP 429.
type RateLimitError struct {
	Err        error
	RetryAfter time.Duration
	Provider   string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s rate limited (retry after %s): %v", e.Provider, e.RetryAfter, e.Err)
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// NewRateLimitError creates a RateLimitError. If retryAfterSecs is 0, defaults to 60s.
func NewRateLimitError(provider string, err error, retryAfterSecs int) *RateLimitError {
	if retryAfterSecs <= 0 {
		retryAfterSecs = 60
	}
	return &RateLimitError{
		Err:        err,
		RetryAfter: time.Duration(retryAfterSecs) * time.Second,
		Provider:   provider,
	}
}

// ParseRetryAfterHeader parses a Retry-After header value into seconds.
// Returns 0 if the value is empty or not a valid integer.
func ParseRetryAfterHeader(val string) int {
	if val == "" {
		return 0
	}
	secs, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return 0
	}
	return secs
}

// providerErrorBody is the error envelope shared by Gemini and OpenAI-compatible APIs.
type providerErrorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// UpstreamFromResponse turns a non-2xx answer into a *domain.UpstreamError carrying
// the provider's error.message when present. 429 answers come back as a
// *RateLimitError wrapping the upstream error.
func UpstreamFromResponse(provider string, status int, body []byte, retryAfter string) error {
	msg := ""
	var envelope providerErrorBody
	if err := json.Unmarshal(body, &envelope); err == nil {
		msg = envelope.Error.Message
	}
	if msg == "" {
		msg = fmt.Sprintf("Erreur %s: %s", provider, statusText(status, body))
	}
	upErr := &domain.UpstreamError{Provider: provider, Status: status, Message: msg}
	if status == http.StatusTooManyRequests {
		return NewRateLimitError(provider, upErr, ParseRetryAfterHeader(retryAfter))
	}
	return upErr
}

func statusText(status int, body []byte) string {
	if text := http.StatusText(status); text != "" {
		return text
	}
	return truncate(string(body), 200)
}
