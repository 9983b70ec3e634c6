package select_checkin

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/HMS-ReservationService/internal/api/handlers"
	"github.com/m04kA/HMS-ReservationService/internal/service/selection"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRoomID      = "некорректный идентификатор номера"
	msgSessionNotFound    = "сессия выбора не найдена"
	msgRoomNotFound       = "номер не найден"
	msgIllegalTransition  = "выбор заезда недоступен в текущем состоянии сессии"
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

// Handle POST /api/v1/selection-sessions/{sessionId}/check-in
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req SelectCheckInRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /selection-sessions/{sessionId}/check-in - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.RoomID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	date, err := req.ParseDate()
	if err != nil {
		h.logger.Warn("POST /selection-sessions/{sessionId}/check-in - Failed to parse date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	snapshot, err := h.service.SelectCheckIn(r.Context(), sessionID, req.RoomID, date)
	if err != nil {
		switch {
		case errors.Is(err, selection.ErrSessionNotFound):
			h.logger.Warn("POST /selection-sessions/{sessionId}/check-in - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, selection.ErrRoomNotFound):
			h.logger.Warn("POST /selection-sessions/{sessionId}/check-in - Room not found: session_id=%s, room_id=%d", sessionID, req.RoomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, selection.ErrIllegalTransition):
			h.logger.Warn("POST /selection-sessions/{sessionId}/check-in - Illegal transition: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgIllegalTransition)

		case errors.Is(err, selection.ErrInvalidInput):
			h.logger.Warn("POST /selection-sessions/{sessionId}/check-in - Invalid input: session_id=%s, error=%v", sessionID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /selection-sessions/{sessionId}/check-in - Failed: session_id=%s, room_id=%d, error=%v",
				sessionID, req.RoomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /selection-sessions/{sessionId}/check-in - Check-in selected: session_id=%s, room_id=%d, date=%s",
		sessionID, req.RoomID, req.Date)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromSnapshot(snapshot))
}
