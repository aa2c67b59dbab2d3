package cancel_occurrence

import (
	"github.com/m04kA/SMC-ArenaService/internal/service/bookings/models"
)

// CancelRequest HTTP request model
type CancelRequest struct {
	ApplyToSeries bool `json:"applyToSeries,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CancelRequest) ToServiceRequest() *models.ScopeRequest {
	return &models.ScopeRequest{ApplyToSeries: r.ApplyToSeries}
}
