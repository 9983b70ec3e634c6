package get_timeline

import (
	"time"

	"github.com/m04kA/HMS-ReservationService/internal/service/selection"
)

type SelectionService interface {
	TimelineCell(sessionID string, roomID int64, date time.Time, half selection.CellHalf) (selection.CellState, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
