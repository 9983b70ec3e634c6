package select_checkout

import (
	"context"
	"time"

	"github.com/m04kA/HMS-ReservationService/internal/service/selection/models"
)

type SelectionService interface {
	SelectCheckOut(ctx context.Context, sessionID string, roomID int64, date time.Time, isConfirming bool) (*models.Snapshot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
