package tariffs

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
	courtRepo "github.com/m04kA/SMC-ArenaService/internal/infra/storage/court"
	"github.com/m04kA/SMC-ArenaService/internal/service/tariffs/models"
)

// Service сервис для просмотра тарифных полос кортов
type Service struct {
	bandRepo  PriceBandRepository
	courtRepo CourtRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса тарифов
func NewService(bandRepo PriceBandRepository, courtRepo CourtRepository, logger Logger) *Service {
	return &Service{
		bandRepo:  bandRepo,
		courtRepo: courtRepo,
		logger:    logger,
	}
}

// GetCourtTariffs получает тарифные полосы корта в порядке start_minute.
// По умолчанию отдаются только активные полосы; IncludeInactive добавляет
// выключенные (для экранов администрирования тарифов).
func (s *Service) GetCourtTariffs(ctx context.Context, req *models.GetCourtTariffsRequest) (*models.CourtTariffsResponse, error) {
	s.logger.Info("GetCourtTariffs: fetching tariffs for court=%d", req.CourtID)

	if req.CourtID <= 0 {
		return nil, fmt.Errorf("%w: court id must be positive", ErrInvalidInput)
	}

	if _, err := s.courtRepo.GetByID(ctx, req.CourtID); err != nil {
		if errors.Is(err, courtRepo.ErrCourtNotFound) {
			s.logger.Warn("GetCourtTariffs: court id=%d not found", req.CourtID)
			return nil, ErrCourtNotFound
		}
		s.logger.Error("GetCourtTariffs: failed to get court id=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: GetCourtTariffs - repository error: %v", ErrInternal, err)
	}

	var (
		bands []*domain.PriceBand
		err   error
	)
	if req.IncludeInactive {
		bands, err = s.bandRepo.GetAllByCourt(ctx, req.CourtID)
	} else {
		bands, err = s.bandRepo.GetActiveByCourt(ctx, req.CourtID)
	}
	if err != nil {
		s.logger.Error("GetCourtTariffs: repository error for court=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: GetCourtTariffs - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCourtTariffs: fetched %d bands for court=%d", len(bands), req.CourtID)
	return models.FromDomainPriceBandList(req.CourtID, bands), nil
}
