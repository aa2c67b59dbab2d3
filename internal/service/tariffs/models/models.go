package models

import (
	"time"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
	"github.com/m04kA/SMC-ArenaService/pkg/types"
)

// Request модели

// GetCourtTariffsRequest запрос на получение тарифных полос корта
type GetCourtTariffsRequest struct {
	CourtID         int64 `json:"courtId"`
	IncludeInactive bool  `json:"includeInactive,omitempty"` // Включить выключенные полосы
}

// Response модели

// PriceBandResponse ответ с данными тарифной полосы
// Границы полосы отдаются и минутами от полуночи, и строками "HH:MM"
type PriceBandResponse struct {
	ID               int64    `json:"id"`
	CourtID          int64    `json:"courtId"`
	StartMinute      int      `json:"startMinute"`
	EndMinute        int      `json:"endMinute"`
	StartTime        string   `json:"startTime"` // "08:00"
	EndTime          string   `json:"endTime"`   // "17:00"
	HourlyRate       float64  `json:"hourlyRate"`
	HourlyRateLesson *float64 `json:"hourlyRateLesson,omitempty"`
	Active           bool     `json:"active"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CourtTariffsResponse ответ со списком тарифных полос корта
type CourtTariffsResponse struct {
	CourtID int64               `json:"courtId"`
	Bands   []PriceBandResponse `json:"bands"`
}

// Методы конвертации

// FromDomainPriceBand конвертирует domain модель в DTO
func FromDomainPriceBand(b *domain.PriceBand) *PriceBandResponse {
	if b == nil {
		return nil
	}

	return &PriceBandResponse{
		ID:               b.ID,
		CourtID:          b.CourtID,
		StartMinute:      b.StartMinute,
		EndMinute:        b.EndMinute,
		StartTime:        string(types.NewTimeStringFromMinutes(b.StartMinute)),
		EndTime:          string(types.NewTimeStringFromMinutes(b.EndMinute)),
		HourlyRate:       b.HourlyRate,
		HourlyRateLesson: b.HourlyRateLesson,
		Active:           b.Active,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}

// FromDomainPriceBandList конвертирует список domain моделей в DTO
func FromDomainPriceBandList(courtID int64, bands []*domain.PriceBand) *CourtTariffsResponse {
	resp := &CourtTariffsResponse{
		CourtID: courtID,
		Bands:   make([]PriceBandResponse, 0, len(bands)),
	}
	for _, b := range bands {
		resp.Bands = append(resp.Bands, *FromDomainPriceBand(b))
	}
	return resp
}
