package gemini

import (
	"aetherium-service/internal/domain/apperrors"
	"aetherium-service/internal/domain/entities"
	"aetherium-service/internal/infrastructure/logging"
	"aetherium-service/internal/infrastructure/metrics"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/genai"
)

const (
	ServiceName    = "gemini"
	DefaultTimeout = 45 * time.Second
	endpoint       = "generateContent"
)

type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	// HTTPClient es opcional, los tests lo usan
	HTTPClient *http.Client
}

// Generator implements interfaces.TextGenerator with the Gemini API.
type Generator struct {
	client  *genai.Client
	timeout time.Duration
}

// NewGenerator builds the genai client. With no API key the generator is still
// returned and every call fails with ErrConfigMissing before touching the network.
func NewGenerator(ctx context.Context, cfg Config) (*Generator, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	g := &Generator{timeout: timeout}
	if cfg.APIKey == "" {
		return g, nil
	}

	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	g.client = client
	return g, nil
}

func (g *Generator) Generate(ctx context.Context, prompt string, cfg entities.GenerationConfig) (*entities.Generation, error) {
	if g.client == nil {
		return nil, fmt.Errorf("%w: gemini api key", apperrors.ErrConfigMissing)
	}

	reqCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	genCfg := &genai.GenerateContentConfig{
		MaxOutputTokens: cfg.MaxOutputTokens,
		Temperature:     genai.Ptr(cfg.Temperature),
	}

	logging.ExternalAPI().RequestStarted(ctx, ServiceName, endpoint, http.MethodPost)
	start := time.Now()
	resp, err := g.client.Models.GenerateContent(reqCtx, cfg.Model, genai.Text(prompt), genCfg)
	duration := time.Since(start)

	if err != nil {
		status := statusFromError(err)
		metrics.RecordExternalAPIRequest(ServiceName, endpoint, status, duration.Seconds())
		logging.ExternalAPI().RequestFailed(ctx, ServiceName, endpoint, status, err, duration)
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}
	metrics.RecordExternalAPIRequest(ServiceName, endpoint, http.StatusOK, duration.Seconds())
	logging.ExternalAPI().RequestCompleted(ctx, ServiceName, endpoint, http.StatusOK, duration)

	if reason := blockReason(resp); reason != "" {
		logging.Warn(ctx, "Gemini blocked the prompt", logging.Fields{
			logging.FieldExternalService: ServiceName,
			"block_reason":               reason,
		})
	}
	return firstCandidate(resp), nil
}

// firstCandidate extrae texto y finish reason del primer candidato.
// Sin candidatos (prompt bloqueado) devuelve una generación vacía.
func firstCandidate(resp *genai.GenerateContentResponse) *entities.Generation {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return &entities.Generation{}
	}
	candidate := resp.Candidates[0]

	gen := &entities.Generation{FinishReason: string(candidate.FinishReason)}
	if candidate.Content != nil && len(candidate.Content.Parts) > 0 && candidate.Content.Parts[0] != nil {
		gen.Text = candidate.Content.Parts[0].Text
	}
	return gen
}

func blockReason(resp *genai.GenerateContentResponse) string {
	if resp == nil || resp.PromptFeedback == nil {
		return ""
	}
	return string(resp.PromptFeedback.BlockReason)
}

func statusFromError(err error) int {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return 0
}
