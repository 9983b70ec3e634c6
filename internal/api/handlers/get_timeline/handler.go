package get_timeline

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/HMS-ReservationService/internal/api/handlers"
	"github.com/m04kA/HMS-ReservationService/internal/domain"
	"github.com/m04kA/HMS-ReservationService/internal/service/selection"
)

const (
	msgInvalidRoomID   = "некорректный параметр roomId"
	msgMissingFrom     = "требуется параметр from"
	msgInvalidFrom     = "некорректный параметр from, ожидается YYYY-MM-DD"
	msgInvalidDays     = "некорректный параметр days, ожидается число от 1 до %d"
	msgSessionNotFound = "сессия выбора не найдена"

	defaultDays = 14
	maxDays     = 62
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

// TimelineCellView состояние одной ячейки сетки-таймлайна
type TimelineCellView struct {
	Date string `json:"date"` // YYYY-MM-DD
	AM   string `json:"am"`
	PM   string `json:"pm"`
}

// TimelineResponse HTTP ответ с состоянием ячеек таймлайна для номера
type TimelineResponse struct {
	RoomID int64              `json:"roomId"`
	Cells  []TimelineCellView `json:"cells"`
}

// Handle GET /api/v1/selection-sessions/{sessionId}/timeline
//
// Возвращает состояние AM/PM ячеек таймлайна для одного номера начиная
// с даты from; UI дергает этот endpoint на каждую видимую строку сетки
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]
	query := r.URL.Query()

	roomID, err := strconv.ParseInt(query.Get("roomId"), 10, 64)
	if err != nil || roomID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	rawFrom := query.Get("from")
	if rawFrom == "" {
		handlers.RespondBadRequest(w, msgMissingFrom)
		return
	}
	from, err := time.Parse(domain.DateFormat, rawFrom)
	if err != nil {
		h.logger.Warn("GET /selection-sessions/{sessionId}/timeline - Invalid from: %s", rawFrom)
		handlers.RespondBadRequest(w, msgInvalidFrom)
		return
	}

	days := defaultDays
	if rawDays := query.Get("days"); rawDays != "" {
		days, err = strconv.Atoi(rawDays)
		if err != nil || days < 1 || days > maxDays {
			handlers.RespondBadRequest(w, fmt.Sprintf(msgInvalidDays, maxDays))
			return
		}
	}

	cells := make([]TimelineCellView, 0, days)
	for i := 0; i < days; i++ {
		date := from.AddDate(0, 0, i)

		am, err := h.service.TimelineCell(sessionID, roomID, date, selection.CellHalfAM)
		if err != nil {
			h.respondError(w, sessionID, err)
			return
		}
		pm, err := h.service.TimelineCell(sessionID, roomID, date, selection.CellHalfPM)
		if err != nil {
			h.respondError(w, sessionID, err)
			return
		}

		cells = append(cells, TimelineCellView{
			Date: date.Format(domain.DateFormat),
			AM:   string(am),
			PM:   string(pm),
		})
	}

	handlers.RespondJSON(w, http.StatusOK, TimelineResponse{RoomID: roomID, Cells: cells})
}

func (h *Handler) respondError(w http.ResponseWriter, sessionID string, err error) {
	switch {
	case errors.Is(err, selection.ErrSessionNotFound):
		h.logger.Warn("GET /selection-sessions/{sessionId}/timeline - Session not found: session_id=%s", sessionID)
		handlers.RespondNotFound(w, msgSessionNotFound)

	default:
		h.logger.Error("GET /selection-sessions/{sessionId}/timeline - Failed: session_id=%s, error=%v", sessionID, err)
		handlers.RespondInternalError(w)
	}
}
