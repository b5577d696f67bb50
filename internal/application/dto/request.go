package dto

import (
	"aetherium-service/internal/domain/apperrors"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// MaxAnalyzeBodyBytes limita el cuerpo de POST /api/ai/analyze-coin
const MaxAnalyzeBodyBytes = 4 << 10

// AnalyzeCoinRequest representa el body de POST /api/ai/analyze-coin
// @Description Coin to analyze
type AnalyzeCoinRequest struct {
	CoinName string `json:"coinName" example:"Bitcoin" validate:"required"` // Display name of the coin
}

// DecodeAnalyzeCoinRequest lee y valida el body. Un JSON inválido, un coinName
// ausente o que no sea string devuelven ErrValidation.
func DecodeAnalyzeCoinRequest(body io.Reader) (*AnalyzeCoinRequest, error) {
	var req AnalyzeCoinRequest
	if err := json.NewDecoder(io.LimitReader(body, MaxAnalyzeBodyBytes)).Decode(&req); err != nil {
		return nil, fmt.Errorf("%w: invalid request body: %v", apperrors.ErrValidation, err)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *AnalyzeCoinRequest) Validate() error {
	if strings.TrimSpace(r.CoinName) == "" {
		return fmt.Errorf("%w: coinName is required", apperrors.ErrValidation)
	}
	return nil
}

// ChartQuery son los query params de los endpoints de market chart
type ChartQuery struct {
	VsCurrency string
	Days       int
}

// NewChartQuery parsea vs_currency y days. days vacío queda en 0 y el servicio aplica el default.
func NewChartQuery(vsCurrency, daysParam string) (*ChartQuery, error) {
	q := &ChartQuery{VsCurrency: strings.TrimSpace(vsCurrency)}

	daysParam = strings.TrimSpace(daysParam)
	if daysParam == "" {
		return q, nil
	}

	days, err := strconv.Atoi(daysParam)
	if err != nil || days < 1 {
		return nil, fmt.Errorf("%w: days must be a positive integer", apperrors.ErrValidation)
	}
	q.Days = days
	return q, nil
}
