package confirm_selection

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/HMS-ReservationService/internal/api/handlers"
	"github.com/m04kA/HMS-ReservationService/internal/service/selection"
)

const (
	msgSessionNotFound   = "сессия выбора не найдена"
	msgIllegalTransition = "подтверждение недоступно в текущем состоянии сессии"
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

// Handle POST /api/v1/selection-sessions/{sessionId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	snapshot, err := h.service.ConfirmSelection(r.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, selection.ErrSessionNotFound):
			h.logger.Warn("POST /selection-sessions/{sessionId}/confirm - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, selection.ErrIllegalTransition):
			h.logger.Warn("POST /selection-sessions/{sessionId}/confirm - Illegal transition: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgIllegalTransition)

		default:
			h.logger.Error("POST /selection-sessions/{sessionId}/confirm - Failed: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /selection-sessions/{sessionId}/confirm - Selection confirmed: session_id=%s", sessionID)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromSnapshot(snapshot))
}
