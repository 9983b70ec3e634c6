package create_session

import (
	"context"

	"github.com/m04kA/HMS-ReservationService/internal/service/selection/models"
)

type SelectionService interface {
	CreateSession(ctx context.Context, userID int64) (string, *models.Snapshot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
