package handlers

import (
	"aetherium-service/internal/application/dto"
	"aetherium-service/internal/domain/interfaces"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

var (
	coinDetailErrors = routeErrors{
		validation: "Coin id is required.",
		failure:    "Failed to fetch coin data from CoinGecko.",
	}
	chartErrors = routeErrors{
		validation: "Invalid chart parameters.",
		failure:    "Failed to fetch market chart from CoinGecko.",
	}
)

// CoinHandler serves CoinGecko detail and chart data
type CoinHandler struct {
	market interfaces.MarketService
}

func NewCoinHandler(market interfaces.MarketService) *CoinHandler {
	return &CoinHandler{market: market}
}

// Detail godoc
// @Summary Coin detail with market data
// @Tags coins
// @Produce json
// @Param geckoId path string true "CoinGecko id" example(bitcoin)
// @Success 200 {object} object "CoinGecko coin payload"
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/coins/{geckoId} [get]
func (h *CoinHandler) Detail(w http.ResponseWriter, r *http.Request) {
	body, err := h.market.CoinDetail(r.Context(), mux.Vars(r)["geckoId"])
	if err != nil {
		writeServiceError(w, r, err, coinDetailErrors)
		return
	}
	writeRawJSON(w, http.StatusOK, body)
}

// Chart godoc
// @Summary Daily market chart
// @Tags coins
// @Produce json
// @Param geckoId path string true "CoinGecko id" example(bitcoin)
// @Param vs_currency query string false "Quote currency" default(gbp)
// @Param days query int false "Days of history (1-365)" default(7)
// @Success 200 {object} object "CoinGecko market_chart payload"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/coins/{geckoId}/chart [get]
func (h *CoinHandler) Chart(w http.ResponseWriter, r *http.Request) {
	query, err := dto.NewChartQuery(r.URL.Query().Get("vs_currency"), r.URL.Query().Get("days"))
	if err != nil {
		writeServiceError(w, r, err, chartErrors)
		return
	}

	body, err := h.market.MarketChart(r.Context(), mux.Vars(r)["geckoId"], query.VsCurrency, query.Days)
	if err != nil {
		writeServiceError(w, r, err, chartErrors)
		return
	}
	writeRawJSON(w, http.StatusOK, body)
}

// ChartBySymbol godoc
// @Summary Daily market chart by ticker symbol
// @Description Resolves the symbol to a CoinGecko id, then fetches its market chart.
// @Tags coins
// @Produce json
// @Param symbol path string true "Ticker symbol" example(ETH)
// @Param vs_currency query string false "Quote currency" default(gbp)
// @Param days query int false "Days of history (1-365)" default(7)
// @Success 200 {object} object "CoinGecko market_chart payload"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/crypto/chart/{symbol} [get]
func (h *CoinHandler) ChartBySymbol(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]
	messages := routeErrors{
		validation: chartErrors.validation,
		notFound:   fmt.Sprintf("Coin with symbol %s not found on CoinGecko.", symbol),
		failure:    chartErrors.failure,
	}

	query, err := dto.NewChartQuery(r.URL.Query().Get("vs_currency"), r.URL.Query().Get("days"))
	if err != nil {
		writeServiceError(w, r, err, messages)
		return
	}

	body, err := h.market.ChartBySymbol(r.Context(), symbol, query.VsCurrency, query.Days)
	if err != nil {
		writeServiceError(w, r, err, messages)
		return
	}
	writeRawJSON(w, http.StatusOK, body)
}
