package cancel_selection

import (
	"context"

	"github.com/m04kA/HMS-ReservationService/internal/service/selection/models"
)

type SelectionService interface {
	Cancel(ctx context.Context, sessionID string) (*models.Snapshot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
