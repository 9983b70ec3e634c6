package get_session

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

// SessionResponse HTTP представление сессии выбора
type SessionResponse struct {
	SessionID string                 `json:"sessionId"`
	Snapshot  *handlers.SnapshotView `json:"snapshot"`

	SelectableCheckInRooms []int64 `json:"selectableCheckInRooms"`
	SelectableCheckOutRoom *int64  `json:"selectableCheckOutRoom,omitempty"`
}

// Handle GET /api/v1/selection-sessions/{sessionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	view, err := h.service.View(r.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, selection.ErrSessionNotFound):
			h.logger.Warn("GET /selection-sessions/{sessionId} - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		default:
			h.logger.Error("GET /selection-sessions/{sessionId} - Failed to get session: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := SessionResponse{
		SessionID:              view.SessionID,
		Snapshot:               handlers.FromSnapshot(view.Snapshot),
		SelectableCheckInRooms: view.SelectableCheckInRooms,
		SelectableCheckOutRoom: view.SelectableCheckOutRoom,
	}
	if response.SelectableCheckInRooms == nil {
		response.SelectableCheckInRooms = []int64{}
	}

	handlers.RespondJSON(w, http.StatusOK, response)
}
