package gemini

import (
	"aetherium-service/internal/application/services"
	"aetherium-service/internal/domain/apperrors"
	"aetherium-service/internal/domain/entities"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testGenCfg = entities.GenerationConfig{
	Model:           "gemini-2.5-flash",
	MaxOutputTokens: 5048,
	Temperature:     0.7,
}

func newGeminiServer(t *testing.T, status int, response string, seen *map[string]any) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-2.5-flash:generateContent"), r.URL.Path)
		if seen != nil {
			_ = json.NewDecoder(r.Body).Decode(seen)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestGenerator_MissingKey(t *testing.T) {
	g, err := NewGenerator(context.Background(), Config{})
	require.NoError(t, err)

	_, err = g.Generate(context.Background(), "hola", testGenCfg)
	assert.ErrorIs(t, err, apperrors.ErrConfigMissing)
}

func TestGenerator_Generate(t *testing.T) {
	var body map[string]any
	server := newGeminiServer(t, http.StatusOK,
		`{"candidates":[{"content":{"role":"model","parts":[{"text":"Bitcoin index"}]},"finishReason":"STOP"}]}`, &body)

	g, err := NewGenerator(context.Background(), Config{APIKey: "k", BaseURL: server.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)

	gen, err := g.Generate(context.Background(), "analyse bitcoin", testGenCfg)
	require.NoError(t, err)
	assert.Equal(t, "Bitcoin index", gen.Text)
	assert.Equal(t, "STOP", gen.FinishReason)
	assert.False(t, gen.Truncated())

	genCfg, ok := body["generationConfig"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 5048, genCfg["maxOutputTokens"])
	assert.InDelta(t, 0.7, genCfg["temperature"], 0.001)
}

func TestGenerator_TruncatedWithoutText(t *testing.T) {
	server := newGeminiServer(t, http.StatusOK,
		`{"candidates":[{"content":{"role":"model","parts":[]},"finishReason":"MAX_TOKENS"}]}`, nil)

	g, err := NewGenerator(context.Background(), Config{APIKey: "k", BaseURL: server.URL})
	require.NoError(t, err)

	gen, err := g.Generate(context.Background(), "p", testGenCfg)
	require.NoError(t, err)
	assert.Empty(t, gen.Text)
	assert.True(t, gen.Truncated())
}

func TestGenerator_NoCandidates(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty candidates", `{"candidates":[]}`},
		{"blocked prompt", `{"candidates":[],"promptFeedback":{"blockReason":"SAFETY"}}`},
		{"no candidates field", `{"promptFeedback":{"blockReason":"OTHER"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newGeminiServer(t, http.StatusOK, tt.body, nil)

			g, err := NewGenerator(context.Background(), Config{APIKey: "k", BaseURL: server.URL})
			require.NoError(t, err)

			gen, err := g.Generate(context.Background(), "p", testGenCfg)
			require.NoError(t, err)
			require.NotNil(t, gen)
			assert.Empty(t, gen.Text)
			assert.False(t, gen.Truncated())
		})
	}
}

func TestGenerator_UpstreamError(t *testing.T) {
	server := newGeminiServer(t, http.StatusInternalServerError,
		`{"error":{"code":500,"message":"internal","status":"INTERNAL"}}`, nil)

	g, err := NewGenerator(context.Background(), Config{APIKey: "k", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = g.Generate(context.Background(), "p", testGenCfg)
	assert.Error(t, err)
}

func TestGenerator_BlockedPromptFallsBackToEmptyAnalysis(t *testing.T) {
	server := newGeminiServer(t, http.StatusOK,
		`{"candidates":[],"promptFeedback":{"blockReason":"SAFETY"}}`, nil)

	g, err := NewGenerator(context.Background(), Config{APIKey: "k", BaseURL: server.URL})
	require.NoError(t, err)
	svc := services.NewAnalysisService(g, services.DefaultGenerationConfig())

	analysis, err := svc.AnalyzeCoin(context.Background(), "Bitcoin")
	require.NoError(t, err)
	assert.Equal(t, "No analysis available for Bitcoin.", analysis.Text)
	assert.True(t, analysis.Empty)
	assert.False(t, analysis.Truncated)
}
