package cancel_selection

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/HMS-ReservationService/internal/api/handlers"
	"github.com/m04kA/HMS-ReservationService/internal/service/selection"
)

const msgSessionNotFound = "сессия выбора не найдена"

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

// Handle POST /api/v1/selection-sessions/{sessionId}/cancel
//
// Отмена допустима из любого состояния и всегда возвращает сессию в idle
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	snapshot, err := h.service.Cancel(r.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, selection.ErrSessionNotFound):
			h.logger.Warn("POST /selection-sessions/{sessionId}/cancel - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		default:
			h.logger.Error("POST /selection-sessions/{sessionId}/cancel - Failed: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /selection-sessions/{sessionId}/cancel - Selection cancelled: session_id=%s", sessionID)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromSnapshot(snapshot))
}
