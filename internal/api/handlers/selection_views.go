package handlers

import (
	"time"

	"github.com/m04kA/HMS-ReservationService/internal/service/selection/models"
)

// JSON представления снимков машины выбора, общие для всех handlers
// операций с сессиями

// SelectionView JSON представление текущего выбора
type SelectionView struct {
	RoomID     int64  `json:"roomId"`
	RoomNumber string `json:"roomNumber"`
	CheckIn    string `json:"checkIn"`  // RFC3339
	CheckOut   string `json:"checkOut"` // RFC3339
	Nights     int    `json:"nights"`
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

// RoomView JSON представление номера
type RoomView struct {
	ID           int64  `json:"id"`
	Number       string `json:"number"`
	Category     string `json:"category"`
	Premium      bool   `json:"premium"`
	MaxOccupancy int    `json:"maxOccupancy"`
}

// PreviewView JSON представление результата валидации выбора
// Альтернативные номера - отдельное поле для замены номера одним кликом
type PreviewView struct {
	Valid            bool           `json:"valid"`
	Conflicts        []ConflictView `json:"conflicts"`
	Warnings         []WarningView  `json:"warnings"`
	AlternativeRooms []RoomView     `json:"alternativeRooms"`
}

// SnapshotView JSON представление снимка машины выбора
type SnapshotView struct {
	State     string         `json:"state"`
	Selection *SelectionView `json:"selection,omitempty"`
	Preview   *PreviewView   `json:"preview,omitempty"`
}

// FromSnapshot конвертирует снимок машины в JSON представление
func FromSnapshot(snap *models.Snapshot) *SnapshotView {
	if snap == nil {
		return nil
	}

	view := &SnapshotView{State: string(snap.State)}

	if snap.Selection != nil {
		view.Selection = &SelectionView{
			RoomID:     snap.Selection.RoomID,
			RoomNumber: snap.Selection.RoomNumber,
			CheckIn:    snap.Selection.CheckIn.Format(time.RFC3339),
			CheckOut:   snap.Selection.CheckOut.Format(time.RFC3339),
			Nights:     snap.Selection.Nights,
		}
	}

	if snap.Preview != nil {
		preview := &PreviewView{
			Valid:            snap.Preview.Valid,
			Conflicts:        make([]ConflictView, 0, len(snap.Preview.Conflicts)),
			Warnings:         make([]WarningView, 0, len(snap.Preview.Warnings)),
			AlternativeRooms: make([]RoomView, 0, len(snap.Preview.AlternativeRooms)),
		}
		for _, c := range snap.Preview.Conflicts {
			preview.Conflicts = append(preview.Conflicts, ConflictView{
				Kind:          string(c.Kind),
				Severity:      string(c.Severity),
				Message:       c.Message,
				ReservationID: c.ReservationID,
			})
		}
		for _, w := range snap.Preview.Warnings {
			preview.Warnings = append(preview.Warnings, WarningView{
				Kind:    string(w.Kind),
				Message: w.Message,
			})
		}
		for _, r := range snap.Preview.AlternativeRooms {
			preview.AlternativeRooms = append(preview.AlternativeRooms, RoomView{
				ID:           r.ID,
				Number:       r.Number,
				Category:     string(r.Category),
				Premium:      r.Premium,
				MaxOccupancy: r.MaxOccupancy,
			})
		}
		view.Preview = preview
	}

	return view
}
