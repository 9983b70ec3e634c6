package selection

import (
	"time"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
)

// CellHalf половина суток ячейки таймлайна
// Утренняя половина соответствует якорному времени выезда, дневная - заезда
type CellHalf string

const (
	CellHalfAM CellHalf = "am"
	CellHalfPM CellHalf = "pm"
)

// IsValid возвращает true для известной половины суток
func (h CellHalf) IsValid() bool {
	return h == CellHalfAM || h == CellHalfPM
}

// CellState как ячейка таймлайна должна рендериться в текущем состоянии машины
type CellState string

const (
	// CellNone ячейка не участвует в текущем шаге выбора
	CellNone CellState = "none"

	// CellSelectable клик по ячейке будет принят машиной
	CellSelectable CellState = "selectable"

	// CellPreview ячейка внутри кандидатного диапазона текущего выбора
	CellPreview CellState = "preview"
)

// CanSelectCheckIn возвращает true, если клик заезда по номеру будет принят
// В selecting_checkin кликабельны все номера; в остальных состояниях - никакие
func (m *Machine) CanSelectCheckIn(roomID int64) bool {
	return m.state == domain.StateSelectingCheckIn && roomID > 0
}

// CanSelectCheckOut возвращает true, если клик выезда по номеру будет принят
// В selecting_checkout кликабелен только номер текущего выбора
func (m *Machine) CanSelectCheckOut(roomID int64) bool {
	return m.state == domain.StateSelectingCheckOut && m.selection != nil && m.selection.RoomID == roomID
}

// CellState классифицирует ячейку таймлайна (номер, дата, половина суток)
//
// Правила:
//   - idle: все ячейки none
//   - selecting_checkin: дневные ячейки всех номеров selectable (клик заезда)
//   - selecting_checkout: ячейки номера выбора внутри кандидатного диапазона
//     preview; утренние ячейки того же номера строго позже заезда selectable
//     (клик выезда); всё остальное none
//   - confirming / creating: кандидатный диапазон рендерится preview
func (m *Machine) CellState(roomID int64, date time.Time, half CellHalf) CellState {
	switch m.state {
	case domain.StateSelectingCheckIn:
		if half == CellHalfPM {
			return CellSelectable
		}
		return CellNone

	case domain.StateSelectingCheckOut, domain.StateConfirming, domain.StateCreating:
		if m.selection == nil || roomID != m.selection.RoomID {
			return CellNone
		}

		if m.cellInsidePreview(date, half) {
			return CellPreview
		}

		if m.state == domain.StateSelectingCheckOut && half == CellHalfAM {
			if m.anchors.CheckOutTime.At(date).After(m.selection.CheckIn) {
				return CellSelectable
			}
		}

		return CellNone

	default:
		return CellNone
	}
}

// cellInsidePreview проверяет попадание якорного момента ячейки в кандидатный
// диапазон. Границы включаются: дневная ячейка дня заезда и утренняя ячейка
// дня выезда обе рендерятся как preview
func (m *Machine) cellInsidePreview(date time.Time, half CellHalf) bool {
	var instant time.Time
	switch half {
	case CellHalfAM:
		instant = m.anchors.CheckOutTime.At(date)
	case CellHalfPM:
		instant = m.anchors.CheckInTime.At(date)
	default:
		return false
	}

	return !instant.Before(m.selection.CheckIn) && !instant.After(m.selection.CheckOut)
}
