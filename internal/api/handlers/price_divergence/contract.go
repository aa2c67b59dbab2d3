package price_divergence

import (
	"context"

	evaluatePriceDivergence "github.com/m04kA/SMC-ArenaService/internal/usecase/evaluate_price_divergence"
)

type EvaluatePriceDivergenceUseCase interface {
	Execute(ctx context.Context, req *evaluatePriceDivergence.Request) (*evaluatePriceDivergence.Report, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
