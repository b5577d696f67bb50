package dto

import (
	"aetherium-service/internal/domain/entities"
	"time"
)

// NewSymbolsStatusResponse maps the resolver snapshot; snapshot may be nil
func NewSymbolsStatusResponse(snapshot *entities.CoinListSnapshot, window time.Duration, now time.Time) *SymbolsStatusResponse {
	resp := &SymbolsStatusResponse{WindowSeconds: window.Seconds()}
	if snapshot == nil {
		return resp
	}

	fetchedAt := snapshot.FetchedAt.UTC()
	resp.Loaded = true
	resp.Entries = len(snapshot.Entries)
	resp.FetchedAt = &fetchedAt
	resp.AgeSeconds = snapshot.Age(now).Seconds()
	resp.Stale = snapshot.IsStale(now, window)
	return resp
}

func NewAnalysisResponse(analysis *entities.Analysis) *AnalysisResponse {
	return &AnalysisResponse{Analysis: analysis.Text}
}

func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{Error: message}
}

func NewHealthResponse(status string, services map[string]string) *HealthResponse {
	return &HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Services:  services,
	}
}
