package price_divergence

import (
	evaluatePriceDivergence "github.com/m04kA/SMC-ArenaService/internal/usecase/evaluate_price_divergence"
)

// PriceDivergenceResponse HTTP response model
type PriceDivergenceResponse struct {
	BookingID        int64    `json:"bookingId"`
	OldComputedPrice *float64 `json:"oldComputedPrice,omitempty"`
	NewComputedPrice *float64 `json:"newComputedPrice,omitempty"`
	NegotiatedPrice  *float64 `json:"negotiatedPrice,omitempty"`
	HasDivergence    bool     `json:"hasDivergence"`
}

// FromUseCaseReport конвертирует отчет use case в HTTP response
func FromUseCaseReport(report *evaluatePriceDivergence.Report) *PriceDivergenceResponse {
	return &PriceDivergenceResponse{
		BookingID:        report.BookingID,
		OldComputedPrice: report.OldComputedPrice,
		NewComputedPrice: report.NewComputedPrice,
		NegotiatedPrice:  report.NegotiatedPrice,
		HasDivergence:    report.HasDivergence,
	}
}
