package handlers

import (
	"aetherium-service/internal/application/dto"
	"aetherium-service/internal/domain/interfaces"
	"net/http"
)

var analysisErrors = routeErrors{
	validation: "Valid coin name is required",
	failure:    "Failed to generate AI analysis",
}

type AnalysisHandler struct {
	analysis interfaces.AnalysisService
}

func NewAnalysisHandler(analysis interfaces.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysis: analysis}
}

// AnalyzeCoin godoc
// @Summary Generate the Aetherium index summary for a coin
// @Description Technical summary, fundamental summary and index score, generated by Gemini. Truncated or empty generations return fallback text with 200.
// @Tags ai
// @Accept json
// @Produce json
// @Param request body dto.AnalyzeCoinRequest true "Coin to analyze"
// @Success 200 {object} dto.AnalysisResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/ai/analyze-coin [post]
func (h *AnalysisHandler) AnalyzeCoin(w http.ResponseWriter, r *http.Request) {
	req, err := dto.DecodeAnalyzeCoinRequest(r.Body)
	if err != nil {
		writeServiceError(w, r, err, analysisErrors)
		return
	}

	analysis, err := h.analysis.AnalyzeCoin(r.Context(), req.CoinName)
	if err != nil {
		writeServiceError(w, r, err, analysisErrors)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewAnalysisResponse(analysis))
}
