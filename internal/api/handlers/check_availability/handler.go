package check_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/HMS-ReservationService/internal/api/handlers"
	"github.com/m04kA/HMS-ReservationService/internal/service/selection"
	checkAvailability "github.com/m04kA/HMS-ReservationService/internal/usecase/check_availability"
)

const (
	msgInvalidRoomID    = "некорректный идентификатор номера"
	msgMissingCheckIn   = "требуется параметр checkIn"
	msgMissingCheckOut  = "требуется параметр checkOut"
	msgInvalidCheckIn   = "некорректный параметр checkIn, ожидается RFC3339 или YYYY-MM-DD"
	msgInvalidCheckOut  = "некорректный параметр checkOut, ожидается RFC3339 или YYYY-MM-DD"
	msgInvalidExcludeID = "некорректный параметр excludeReservationId"
	msgInvalidInput     = "некорректные параметры запроса"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	anchors selection.Anchors
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, anchors selection.Anchors, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		anchors: anchors,
		logger:  logger,
	}
}

// Handle GET /api/v1/rooms/{roomId}/availability
//
// Границы диапазона принимаются либо как точные моменты RFC3339, либо как
// даты YYYY-MM-DD; к датам применяется якорное время заезда и выезда
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	roomID, err := strconv.ParseInt(vars["roomId"], 10, 64)
	if err != nil || roomID <= 0 {
		h.logger.Warn("GET /rooms/{roomId}/availability - Invalid room ID: %s", vars["roomId"])
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	query := r.URL.Query()

	rawCheckIn := query.Get("checkIn")
	if rawCheckIn == "" {
		handlers.RespondBadRequest(w, msgMissingCheckIn)
		return
	}
	checkIn, err := parseBoundary(rawCheckIn, h.anchors.CheckInTime)
	if err != nil {
		h.logger.Warn("GET /rooms/%d/availability - Invalid checkIn: %v", roomID, err)
		handlers.RespondBadRequest(w, msgInvalidCheckIn)
		return
	}

	rawCheckOut := query.Get("checkOut")
	if rawCheckOut == "" {
		handlers.RespondBadRequest(w, msgMissingCheckOut)
		return
	}
	checkOut, err := parseBoundary(rawCheckOut, h.anchors.CheckOutTime)
	if err != nil {
		h.logger.Warn("GET /rooms/%d/availability - Invalid checkOut: %v", roomID, err)
		handlers.RespondBadRequest(w, msgInvalidCheckOut)
		return
	}

	req := &checkAvailability.Request{
		RoomID:   roomID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
	}

	if rawExclude := query.Get("excludeReservationId"); rawExclude != "" {
		excludeID, err := strconv.ParseInt(rawExclude, 10, 64)
		if err != nil || excludeID <= 0 {
			h.logger.Warn("GET /rooms/%d/availability - Invalid exclude ID: %s", roomID, rawExclude)
			handlers.RespondBadRequest(w, msgInvalidExcludeID)
			return
		}
		req.ExcludeReservationID = &excludeID
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /rooms/%d/availability - Invalid input: %v", roomID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /rooms/%d/availability - Failed to check availability: %v", roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /rooms/%d/availability - Checked: valid=%t, conflicts=%d, warnings=%d, alternatives=%d",
		roomID, result.Valid, len(result.Conflicts), len(result.Warnings), len(result.AlternativeRooms))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
