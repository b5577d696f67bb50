package handlers

import (
	"aetherium-service/internal/application/dto"
	"aetherium-service/internal/domain/interfaces"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// SymbolHandler exposes the symbol resolution cache
type SymbolHandler struct {
	resolver interfaces.SymbolResolver
	now      func() time.Time
}

func NewSymbolHandler(resolver interfaces.SymbolResolver) *SymbolHandler {
	return &SymbolHandler{resolver: resolver, now: time.Now}
}

// GeckoID godoc
// @Summary Resolve a ticker symbol to a CoinGecko id
// @Description Case-insensitive lookup in the cached CoinGecko coin list. The first matching entry wins.
// @Tags crypto
// @Produce json
// @Param symbol path string true "Ticker symbol" example(BTC)
// @Success 200 {object} dto.GeckoIDResponse
// @Failure 404 {object} dto.ErrorResponse "Symbol not in the coin list"
// @Failure 500 {object} dto.ErrorResponse "Coin list unavailable"
// @Router /api/crypto/get-gecko-id/{symbol} [get]
func (h *SymbolHandler) GeckoID(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]

	id, err := h.resolver.Resolve(r.Context(), symbol)
	if err != nil {
		writeServiceError(w, r, err, routeErrors{
			validation: "Symbol is required.",
			notFound:   fmt.Sprintf("Coin with symbol %s not found on CoinGecko.", symbol),
			failure:    "Failed to fetch coin list from CoinGecko.",
		})
		return
	}
	writeJSON(w, http.StatusOK, dto.GeckoIDResponse{ID: id})
}

// Status godoc
// @Summary Coin list snapshot status
// @Tags crypto
// @Produce json
// @Success 200 {object} dto.SymbolsStatusResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/crypto/symbols/status [get]
func (h *SymbolHandler) Status(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.resolver.Snapshot(r.Context())
	if err != nil {
		writeServiceError(w, r, err, routeErrors{failure: "Failed to read coin list status."})
		return
	}
	writeJSON(w, http.StatusOK, dto.NewSymbolsStatusResponse(snapshot, h.resolver.Window(), h.now()))
}
