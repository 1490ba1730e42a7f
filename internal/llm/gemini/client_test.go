package gemini_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"seogen/internal/config"
	"seogen/internal/domain"
	"seogen/internal/llm"
	"seogen/internal/llm/gemini"
)

func newTestClient(serverURL, key string) *gemini.Client {
	cfg := &config.ProviderConfig{
		Provider:     "gemini",
		APIKey:       key,
		DefaultModel: "gemini-3-pro-preview",
		VisionModel:  "gemini-3-flash-preview",
		TimeoutSecs:  30,
	}
	return gemini.NewClientWithEndpoint(cfg, serverURL, zap.NewNop())
}

func successResponse(text string) map[string]interface{} {
	return map[string]interface{}{
		"candidates": []map[string]interface{}{
			{
				"content": map[string]interface{}{
					"role": "model",
					"parts": []map[string]interface{}{
						{"text": text},
					},
				},
				"finishReason": "STOP",
			},
		},
	}
}

func extractionSchema() *llm.Schema {
	return llm.ArrayOf(&llm.Schema{
		Type: llm.TypeObject,
		Properties: map[string]*llm.Schema{
			"ville":      llm.String("Ville du poste"),
			"nbrePostes": llm.Integer("Nombre de postes ouverts"),
		},
		Required: []string{"ville"},
	})
}

func TestClient_Generate_WithAttachment_UsesVisionModel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/gemini-3-flash-preview:generateContent", r.URL.Path)
		assert.Equal(t, "test-gemini-key", r.Header.Get("x-goog-api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var reqBody map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))

		contents := reqBody["contents"].([]interface{})
		assert.Len(t, contents, 1)
		msg := contents[0].(map[string]interface{})
		assert.Equal(t, "user", msg["role"])

		parts := msg["parts"].([]interface{})
		assert.Len(t, parts, 2)
		inline := parts[0].(map[string]interface{})["inline_data"].(map[string]interface{})
		assert.Equal(t, "image/png", inline["mime_type"])
		assert.Equal(t, "aW1n", inline["data"])
		assert.Equal(t, "Extrait CHAQUE poste", parts[1].(map[string]interface{})["text"])

		genConfig := reqBody["generationConfig"].(map[string]interface{})
		assert.Equal(t, "application/json", genConfig["responseMimeType"])
		schema := genConfig["responseSchema"].(map[string]interface{})
		assert.Equal(t, "ARRAY", schema["type"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(successResponse(`[{"ville":"Lyon","nbrePostes":2}]`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, "test-gemini-key")
	out, err := c.Generate(context.Background(), llm.Request{
		Prompt:     "Extrait CHAQUE poste",
		Schema:     extractionSchema(),
		Attachment: &llm.Attachment{Data: []byte("img"), MIMEType: "image/png"},
	})

	require.NoError(t, err)
	assert.Equal(t, "gemini-3-flash-preview", out.Model)
	assert.JSONEq(t, `[{"ville":"Lyon","nbrePostes":2}]`, string(out.JSON))
}

func TestClient_Generate_TextOnly_UsesDefaultModelAndSystem(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/gemini-3-pro-preview:generateContent", r.URL.Path)

		var reqBody map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		parts := reqBody["contents"].([]interface{})[0].(map[string]interface{})["parts"].([]interface{})
		assert.Len(t, parts, 1)
		sys := reqBody["systemInstruction"].(map[string]interface{})["parts"].([]interface{})[0].(map[string]interface{})
		assert.Equal(t, "Tu es un expert", sys["text"])

		_ = json.NewEncoder(w).Encode(successResponse("```json\n{\"ok\":true}\n```"))
	}))
	defer server.Close()

	c := newTestClient(server.URL, "test-gemini-key")
	out, err := c.Generate(context.Background(), llm.Request{System: "Tu es un expert", Prompt: "Génère"})

	require.NoError(t, err)
	assert.Equal(t, "gemini-3-pro-preview", out.Model)
	assert.Equal(t, `{"ok":true}`, string(out.JSON))
}

func TestClient_Generate_MissingOrPlaceholderKey(t *testing.T) {
	for _, key := range []string{"", "votre_cle_gemini_ici"} {
		c := newTestClient("http://127.0.0.1:1", key)
		_, err := c.Generate(context.Background(), llm.Request{Prompt: "x"})

		var cfgErr *domain.ConfigurationError
		require.True(t, errors.As(err, &cfgErr), "key %q", key)
		assert.Equal(t, gemini.KeySetting, cfgErr.Setting)
	}
}

func TestClient_Generate_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"API key not valid. Please pass a valid API key.","status":"INVALID_ARGUMENT"}}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, "bad-key")
	_, err := c.Generate(context.Background(), llm.Request{Prompt: "x"})

	var upErr *domain.UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, http.StatusBadRequest, upErr.Status)
	assert.Equal(t, "API key not valid. Please pass a valid API key.", upErr.Message)
}

func TestClient_Generate_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "12")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"Resource has been exhausted"}}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, "test-gemini-key")
	_, err := c.Generate(context.Background(), llm.Request{Prompt: "x"})

	var rlErr *llm.RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, "gemini", rlErr.Provider)
}

func TestClient_Generate_SchemaMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(successResponse(`[{"nbrePostes":"deux"}]`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, "test-gemini-key")
	_, err := c.Generate(context.Background(), llm.Request{Prompt: "x", Schema: extractionSchema()})

	assert.ErrorIs(t, err, domain.ErrFormat)
}

func TestClient_Generate_NoCandidatesOrTruncated(t *testing.T) {
	bodies := []string{
		`{"candidates":[]}`,
		`{"candidates":[{"content":{"parts":[{"text":"{\"a\":"}]},"finishReason":"MAX_TOKENS"}]}`,
		`{"candidates":[{"content":{"parts":[]},"finishReason":"STOP"}]}`,
	}
	for _, body := range bodies {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}))

		c := newTestClient(server.URL, "test-gemini-key")
		_, err := c.Generate(context.Background(), llm.Request{Prompt: "x"})
		assert.ErrorIs(t, err, domain.ErrFormat, body)

		server.Close()
	}
}
