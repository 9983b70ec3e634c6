package create_session

import (
	"net/http"

	"github.com/m04kA/HMS-ReservationService/internal/api/handlers"
	"github.com/m04kA/HMS-ReservationService/internal/api/middleware"
)

const msgMissingUser = "не удалось определить пользователя"

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

// CreateSessionResponse HTTP ответ создания сессии выбора
type CreateSessionResponse struct {
	SessionID string                 `json:"sessionId"`
	Snapshot  *handlers.SnapshotView `json:"snapshot"`
}

// Handle POST /api/v1/selection-sessions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("POST /selection-sessions - User ID missing in context")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	sessionID, snapshot, err := h.service.CreateSession(r.Context(), userID)
	if err != nil {
		h.logger.Error("POST /selection-sessions - Failed to create session: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /selection-sessions - Session created: session_id=%s, user_id=%d", sessionID, userID)
	handlers.RespondJSON(w, http.StatusCreated, CreateSessionResponse{
		SessionID: sessionID,
		Snapshot:  handlers.FromSnapshot(snapshot),
	})
}
