package complete_creation

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/HMS-ReservationService/internal/api/handlers"
	"github.com/m04kA/HMS-ReservationService/internal/service/selection"
	"github.com/m04kA/HMS-ReservationService/internal/service/selection/models"
)

const (
	msgSessionNotFound   = "сессия выбора не найдена"
	msgCreationConflict  = "выбранный диапазон уже занят, выберите другие даты"
	msgCreationFailed    = "не удалось создать бронирование, попробуйте ещё раз"
)

type Handler struct {
	service SelectionService
	logger  Logger
}

func NewHandler(service SelectionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// ReservationView JSON представление созданного бронирования
type ReservationView struct {
	ID       int64  `json:"id"`
	RoomID   int64  `json:"roomId"`
	CheckIn  string `json:"checkIn"`  // RFC3339
	CheckOut string `json:"checkOut"` // RFC3339
	Status   string `json:"status"`
}

// CompleteCreationResponse HTTP ответ завершения создания бронирования
type CompleteCreationResponse struct {
	Snapshot    *handlers.SnapshotView `json:"snapshot"`
	Reservation *ReservationView       `json:"reservation,omitempty"`
}

// Handle POST /api/v1/selection-sessions/{sessionId}/complete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	result, err := h.service.CompleteCreation(r.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, selection.ErrSessionNotFound):
			h.logger.Warn("POST /selection-sessions/{sessionId}/complete - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, selection.ErrCreationConflict):
			h.logger.Warn("POST /selection-sessions/{sessionId}/complete - Range taken: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgCreationConflict)

		default:
			h.logger.Error("POST /selection-sessions/{sessionId}/complete - Failed: session_id=%s, error=%v", sessionID, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgCreationFailed)
		}
		return
	}

	response := CompleteCreationResponse{
		Snapshot:    handlers.FromSnapshot(result.Snapshot),
		Reservation: fromCreatedReservation(result.Reservation),
	}

	if response.Reservation != nil {
		h.logger.Info("POST /selection-sessions/{sessionId}/complete - Reservation created: session_id=%s, reservation_id=%d",
			sessionID, response.Reservation.ID)
	} else {
		h.logger.Info("POST /selection-sessions/{sessionId}/complete - Session reset without creation: session_id=%s", sessionID)
	}
	handlers.RespondJSON(w, http.StatusOK, response)
}

func fromCreatedReservation(res *models.CreatedReservation) *ReservationView {
	if res == nil {
		return nil
	}
	return &ReservationView{
		ID:       res.ID,
		RoomID:   res.RoomID,
		CheckIn:  res.CheckIn.Format(time.RFC3339),
		CheckOut: res.CheckOut.Format(time.RFC3339),
		Status:   res.Status,
	}
}
