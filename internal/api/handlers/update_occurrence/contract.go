package update_occurrence

import (
	"context"

	updateOccurrence "github.com/m04kA/SMC-ArenaService/internal/usecase/update_occurrence"
)

type UpdateOccurrenceUseCase interface {
	Execute(ctx context.Context, req *updateOccurrence.Request) (*updateOccurrence.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
