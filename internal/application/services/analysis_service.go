package services

import (
	"aetherium-service/internal/domain/apperrors"
	"aetherium-service/internal/domain/entities"
	"aetherium-service/internal/domain/interfaces"
	"aetherium-service/internal/infrastructure/logging"
	"aetherium-service/internal/infrastructure/metrics"
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	DefaultAnalysisModel   = "gemini-2.5-flash"
	DefaultMaxOutputTokens = 5048
	DefaultTemperature     = 0.7
	MaxCoinNameLength      = 100
)

type analysisService struct {
	generator interfaces.TextGenerator
	config    entities.GenerationConfig
}

// DefaultGenerationConfig returns the model settings used for coin analysis
func DefaultGenerationConfig() entities.GenerationConfig {
	return entities.GenerationConfig{
		Model:           DefaultAnalysisModel,
		MaxOutputTokens: DefaultMaxOutputTokens,
		Temperature:     DefaultTemperature,
	}
}

func NewAnalysisService(generator interfaces.TextGenerator, cfg entities.GenerationConfig) interfaces.AnalysisService {
	defaults := DefaultGenerationConfig()
	if cfg.Model == "" {
		cfg.Model = defaults.Model
	}
	if cfg.MaxOutputTokens <= 0 {
		cfg.MaxOutputTokens = defaults.MaxOutputTokens
	}
	return &analysisService{generator: generator, config: cfg}
}

// AnalyzeCoin generates the three-section summary for coinName.
// A truncated or empty generation is replaced by fallback text instead of failing.
func (s *analysisService) AnalyzeCoin(ctx context.Context, coinName string) (*entities.Analysis, error) {
	coinName = strings.TrimSpace(coinName)
	if err := validateCoinName(coinName); err != nil {
		logging.Analysis().ValidationFailed(ctx, coinName, err.Error())
		return nil, err
	}

	start := time.Now()
	generation, err := s.generator.Generate(ctx, BuildAnalysisPrompt(coinName), s.config)
	if err != nil {
		metrics.RecordAnalysis("error")
		logging.Analysis().ErrorWithError(ctx, "AI generation failed", err, logging.Fields{
			logging.FieldCoinName: coinName,
		})
		return nil, fmt.Errorf("generate analysis for %s: %w", coinName, err)
	}

	analysis := entities.NewAnalysis(coinName, generation.Text)

	if generation.Truncated() {
		analysis.Truncated = true
		if analysis.Text == "" {
			analysis.Text = fmt.Sprintf("Partial analysis for %s due to token limit. Try a less data-intensive coin or contact support.", coinName)
		}
		metrics.RecordAnalysis("truncated")
		logging.Analysis().AnalysisFallback(ctx, coinName, entities.FinishReasonMaxTokens)
	}

	if strings.TrimSpace(analysis.Text) == "" {
		analysis.Empty = true
		analysis.Text = fmt.Sprintf("No analysis available for %s.", coinName)
		metrics.RecordAnalysis("empty")
		logging.Analysis().AnalysisFallback(ctx, coinName, "empty_response")
		return analysis, nil
	}

	if !analysis.Truncated {
		metrics.RecordAnalysis("ok")
	}
	logging.Analysis().AnalysisGenerated(ctx, coinName, utf8.RuneCountInString(analysis.Text), time.Since(start))
	return analysis, nil
}

func validateCoinName(coinName string) error {
	if coinName == "" {
		return fmt.Errorf("%w: coin name is required", apperrors.ErrValidation)
	}
	if utf8.RuneCountInString(coinName) > MaxCoinNameLength {
		return fmt.Errorf("%w: coin name longer than %d characters", apperrors.ErrValidation, MaxCoinNameLength)
	}
	return nil
}
