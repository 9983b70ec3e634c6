package check_availability

import (
	"fmt"
	"time"

	checkAvailability "github.com/m04kA/HMS-ReservationService/internal/usecase/check_availability"
	"github.com/m04kA/HMS-ReservationService/pkg/types"
)

// CheckAvailabilityResponse HTTP ответ проверки доступности
type CheckAvailabilityResponse struct {
	RoomID   int64  `json:"roomId"`
	CheckIn  string `json:"checkIn"`  // RFC3339
	CheckOut string `json:"checkOut"` // RFC3339

	Valid            bool           `json:"valid"`
	Conflicts        []ConflictView `json:"conflicts"`
	Warnings         []WarningView  `json:"warnings"`
	AlternativeRooms []RoomView     `json:"alternativeRooms"`
}

// ConflictView JSON представление блокирующего конфликта
type ConflictView struct {
	Kind          string `json:"kind"`
	Severity      string `json:"severity"`
	Message       string `json:"message"`
	ReservationID *int64 `json:"reservationId,omitempty"`
}

// WarningView JSON представление неблокирующего предупреждения
type WarningView struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// RoomView JSON представление альтернативного номера
type RoomView struct {
	ID           int64  `json:"id"`
	Number       string `json:"number"`
	Category     string `json:"category"`
	Premium      bool   `json:"premium"`
	MaxOccupancy int    `json:"maxOccupancy"`
}

// parseBoundary парсит границу диапазона: либо RFC3339, либо дата YYYY-MM-DD,
// к которой применяется якорное время
func parseBoundary(raw string, anchor types.TimeString) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}

	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected RFC3339 or YYYY-MM-DD, got %q", raw)
	}

	return anchor.At(date), nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ
func FromUseCaseResponse(resp *checkAvailability.Response) *CheckAvailabilityResponse {
	out := &CheckAvailabilityResponse{
		RoomID:           resp.RoomID,
		CheckIn:          resp.CheckIn.Format(time.RFC3339),
		CheckOut:         resp.CheckOut.Format(time.RFC3339),
		Valid:            resp.Valid,
		Conflicts:        make([]ConflictView, 0, len(resp.Conflicts)),
		Warnings:         make([]WarningView, 0, len(resp.Warnings)),
		AlternativeRooms: make([]RoomView, 0, len(resp.AlternativeRooms)),
	}

	for _, c := range resp.Conflicts {
		out.Conflicts = append(out.Conflicts, ConflictView{
			Kind:          string(c.Kind),
			Severity:      string(c.Severity),
			Message:       c.Message,
			ReservationID: c.ReservationID,
		})
	}
	for _, w := range resp.Warnings {
		out.Warnings = append(out.Warnings, WarningView{
			Kind:    string(w.Kind),
			Message: w.Message,
		})
	}
	for _, r := range resp.AlternativeRooms {
		out.AlternativeRooms = append(out.AlternativeRooms, RoomView{
			ID:           r.ID,
			Number:       r.Number,
			Category:     string(r.Category),
			Premium:      r.Premium,
			MaxOccupancy: r.MaxOccupancy,
		})
	}

	return out
}
