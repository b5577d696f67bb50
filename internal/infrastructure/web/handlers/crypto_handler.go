package handlers

import (
	"aetherium-service/internal/domain/entities"
	"aetherium-service/internal/domain/interfaces"
	"net/http"

	"github.com/gorilla/mux"
)

var (
	listingsErrors = routeErrors{
		configMissing: "API key is not configured.",
		failure:       "Failed to fetch data from CoinMarketCap.",
	}
	quoteErrors = routeErrors{
		validation:    "Coin id is required.",
		configMissing: "API key not configured.",
		failure:       "Failed to fetch coin details.",
	}
	historyErrors = routeErrors{
		validation:    "Coin id is required.",
		configMissing: "API key not configured.",
		failure:       "Failed to fetch historical data.",
	}
)

// CryptoHandler serves the CoinMarketCap backed routes
type CryptoHandler struct {
	market interfaces.MarketService
}

func NewCryptoHandler(market interfaces.MarketService) *CryptoHandler {
	return &CryptoHandler{market: market}
}

// Listings godoc
// @Summary Latest listings
// @Description Top 50 coins from CoinMarketCap, relayed verbatim.
// @Tags crypto
// @Produce json
// @Param convert query string false "Target currency" default(GBP)
// @Success 200 {object} object "CoinMarketCap listings payload"
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/crypto [get]
func (h *CryptoHandler) Listings(w http.ResponseWriter, r *http.Request) {
	body, err := h.market.Listings(r.Context(), r.URL.Query().Get("convert"))
	if err != nil {
		writeServiceError(w, r, err, listingsErrors)
		return
	}
	writeRawJSON(w, http.StatusOK, body)
}

// Quote godoc
// @Summary Latest quote for one coin
// @Tags crypto
// @Produce json
// @Param id path string true "CoinMarketCap id"
// @Param convert query string false "Target currency" default(GBP)
// @Success 200 {object} object "CoinMarketCap quotes payload"
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/crypto/{id} [get]
func (h *CryptoHandler) Quote(w http.ResponseWriter, r *http.Request) {
	body, err := h.market.Quote(r.Context(), mux.Vars(r)["id"], r.URL.Query().Get("convert"))
	if err != nil {
		writeServiceError(w, r, err, quoteErrors)
		return
	}
	writeRawJSON(w, http.StatusOK, body)
}

// History godoc
// @Summary Daily historical quotes
// @Description Daily quotes in GBP from the start of timeframe until now.
// @Tags crypto
// @Produce json
// @Param id path string true "CoinMarketCap id"
// @Param timeframe query string false "Window" Enums(1d,7d,1m,1y) default(7d)
// @Success 200 {object} object "CoinMarketCap historical payload"
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/crypto/history/{id} [get]
func (h *CryptoHandler) History(w http.ResponseWriter, r *http.Request) {
	timeframe := entities.ParseTimeframe(r.URL.Query().Get("timeframe"))
	body, err := h.market.History(r.Context(), mux.Vars(r)["id"], timeframe)
	if err != nil {
		writeServiceError(w, r, err, historyErrors)
		return
	}
	writeRawJSON(w, http.StatusOK, body)
}
