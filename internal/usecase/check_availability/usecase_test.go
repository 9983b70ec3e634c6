package check_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	"github.com/m04kA/HMS-ReservationService/pkg/ptr"
)

// --- mocks ---

type mockReservationRepo struct {
	// byRoom бронирования, возвращаемые для каждого номера
	byRoom map[int64][]*domain.Reservation
	// err возвращается для всех вызовов, имитируя сбой хранилища
	err error
	// excludeSeen последний полученный excludeID
	excludeSeen *int64
}

func (m *mockReservationRepo) ListForRoomInRange(_ context.Context, roomID int64, rangeStart, rangeEnd time.Time, excludeID *int64) ([]*domain.Reservation, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.excludeSeen = excludeID

	matched := make([]*domain.Reservation, 0)
	for _, res := range m.byRoom[roomID] {
		if excludeID != nil && res.ID == *excludeID {
			continue
		}
		if res.IsActive() && res.Overlaps(rangeStart, rangeEnd) {
			matched = append(matched, res)
		}
	}
	return matched, nil
}

type mockRoomRepo struct {
	rooms []*domain.Room
	err   error
}

func (m *mockRoomRepo) List(_ context.Context) ([]*domain.Room, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.rooms, nil
}

type passTxManager struct{}

func (passTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- fixtures ---

func ts(y int, m time.Month, d, hour, min int) time.Time {
	return time.Date(y, m, d, hour, min, 0, 0, time.UTC)
}

func hotelRooms() []*domain.Room {
	return []*domain.Room{
		{ID: 1, Number: "101", Category: domain.CategoryStandard},
		{ID: 2, Number: "102", Category: domain.CategoryStandard},
		{ID: 3, Number: "201", Category: domain.CategorySuperior},
		{ID: 4, Number: "301", Category: domain.CategoryDeluxe},
		{ID: 5, Number: "302", Category: domain.CategoryDeluxe},
		{ID: 6, Number: "401", Category: domain.CategorySuite},
	}
}

func newTestUseCase(reservations *mockReservationRepo, rooms *mockRoomRepo) *UseCase {
	return NewUseCase(reservations, rooms, passTxManager{}, DefaultPolicy(), nopLogger{})
}

// --- tests ---

func TestUseCase_Execute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&mockReservationRepo{}, &mockRoomRepo{rooms: hotelRooms()})

	tests := []struct {
		name string
		req  *Request
	}{
		{name: "zero room id", req: &Request{CheckIn: ts(2025, 8, 10, 15, 0), CheckOut: ts(2025, 8, 11, 11, 0)}},
		{name: "negative room id", req: &Request{RoomID: -1, CheckIn: ts(2025, 8, 10, 15, 0), CheckOut: ts(2025, 8, 11, 11, 0)}},
		{name: "zero check-in", req: &Request{RoomID: 1, CheckOut: ts(2025, 8, 11, 11, 0)}},
		{name: "zero check-out", req: &Request{RoomID: 1, CheckIn: ts(2025, 8, 10, 15, 0)}},
		{
			name: "non-positive exclude id",
			req: &Request{
				RoomID:               1,
				CheckIn:              ts(2025, 8, 10, 15, 0),
				CheckOut:             ts(2025, 8, 11, 11, 0),
				ExcludeReservationID: ptr.Ptr(int64(0)),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, resp)
		})
	}
}

func TestUseCase_Execute_FreeRange(t *testing.T) {
	uc := newTestUseCase(&mockReservationRepo{byRoom: map[int64][]*domain.Reservation{}}, &mockRoomRepo{rooms: hotelRooms()})

	resp, err := uc.Execute(context.Background(), &Request{
		RoomID:   1,
		CheckIn:  ts(2025, 8, 11, 15, 0), // понедельник
		CheckOut: ts(2025, 8, 14, 11, 0),
	})

	require.NoError(t, err)
	assert.True(t, resp.Valid)
	assert.Empty(t, resp.Conflicts)
	assert.Empty(t, resp.Warnings)
	assert.Empty(t, resp.AlternativeRooms)
}

func TestUseCase_Execute_UnknownRoom(t *testing.T) {
	uc := newTestUseCase(&mockReservationRepo{}, &mockRoomRepo{rooms: hotelRooms()})

	resp, err := uc.Execute(context.Background(), &Request{
		RoomID:   99,
		CheckIn:  ts(2025, 8, 11, 15, 0),
		CheckOut: ts(2025, 8, 14, 11, 0),
	})

	require.NoError(t, err)
	assert.False(t, resp.Valid)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, domain.ConflictRoomUnavailable, resp.Conflicts[0].Kind)
	// Для неизвестного номера дальнейшие проверки не выполняются
	assert.Empty(t, resp.Warnings)
	assert.Empty(t, resp.AlternativeRooms)
}

func TestUseCase_Execute_InvalidRange(t *testing.T) {
	uc := newTestUseCase(&mockReservationRepo{}, &mockRoomRepo{rooms: hotelRooms()})

	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
	}{
		{name: "check-out before check-in", checkIn: ts(2025, 8, 14, 15, 0), checkOut: ts(2025, 8, 11, 11, 0)},
		{name: "check-out equals check-in", checkIn: ts(2025, 8, 11, 15, 0), checkOut: ts(2025, 8, 11, 15, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := uc.Execute(context.Background(), &Request{RoomID: 1, CheckIn: tt.checkIn, CheckOut: tt.checkOut})

			require.NoError(t, err)
			assert.False(t, resp.Valid)
			require.Len(t, resp.Conflicts, 1)
			assert.Equal(t, domain.ConflictInvalidRange, resp.Conflicts[0].Kind)
		})
	}
}

func TestUseCase_Execute_OverlapConflict(t *testing.T) {
	existing := &domain.Reservation{
		ID:       42,
		RoomID:   4,
		CheckIn:  ts(2025, 8, 10, 15, 0),
		CheckOut: ts(2025, 8, 13, 11, 0),
		Status:   domain.StatusConfirmed,
	}
	reservations := &mockReservationRepo{byRoom: map[int64][]*domain.Reservation{4: {existing}}}
	uc := newTestUseCase(reservations, &mockRoomRepo{rooms: hotelRooms()})

	resp, err := uc.Execute(context.Background(), &Request{
		RoomID:   4,
		CheckIn:  ts(2025, 8, 12, 15, 0),
		CheckOut: ts(2025, 8, 14, 11, 0),
	})

	require.NoError(t, err)
	assert.False(t, resp.Valid)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, domain.ConflictReservationOverlap, resp.Conflicts[0].Kind)
	require.NotNil(t, resp.Conflicts[0].ReservationID)
	assert.Equal(t, int64(42), *resp.Conflicts[0].ReservationID)
	assert.Contains(t, resp.Conflicts[0].Message, "2025-08-10 15:00")
	assert.Contains(t, resp.Conflicts[0].Message, "2025-08-13 11:00")
}

func TestUseCase_Execute_BackToBackRangesDoNotConflict(t *testing.T) {
	existing := &domain.Reservation{
		ID:       42,
		RoomID:   4,
		CheckIn:  ts(2025, 8, 10, 15, 0),
		CheckOut: ts(2025, 8, 13, 11, 0),
		Status:   domain.StatusConfirmed,
	}
	reservations := &mockReservationRepo{byRoom: map[int64][]*domain.Reservation{4: {existing}}}
	uc := newTestUseCase(reservations, &mockRoomRepo{rooms: hotelRooms()})

	// Новый заезд в момент выезда существующего бронирования
	resp, err := uc.Execute(context.Background(), &Request{
		RoomID:   4,
		CheckIn:  ts(2025, 8, 13, 11, 0),
		CheckOut: ts(2025, 8, 14, 11, 0),
	})

	require.NoError(t, err)
	assert.True(t, resp.Valid)
	assert.Empty(t, resp.Conflicts)
}

func TestUseCase_Execute_CancelledReservationIgnored(t *testing.T) {
	cancelled := &domain.Reservation{
		ID:       7,
		RoomID:   1,
		CheckIn:  ts(2025, 8, 10, 15, 0),
		CheckOut: ts(2025, 8, 13, 11, 0),
		Status:   domain.StatusCancelled,
	}
	reservations := &mockReservationRepo{byRoom: map[int64][]*domain.Reservation{1: {cancelled}}}
	uc := newTestUseCase(reservations, &mockRoomRepo{rooms: hotelRooms()})

	resp, err := uc.Execute(context.Background(), &Request{
		RoomID:   1,
		CheckIn:  ts(2025, 8, 11, 15, 0),
		CheckOut: ts(2025, 8, 12, 11, 0),
	})

	require.NoError(t, err)
	assert.True(t, resp.Valid)
}

func TestUseCase_Execute_ExcludeReservation(t *testing.T) {
	existing := &domain.Reservation{
		ID:       42,
		RoomID:   4,
		CheckIn:  ts(2025, 8, 10, 15, 0),
		CheckOut: ts(2025, 8, 13, 11, 0),
		Status:   domain.StatusConfirmed,
	}
	reservations := &mockReservationRepo{byRoom: map[int64][]*domain.Reservation{4: {existing}}}
	uc := newTestUseCase(reservations, &mockRoomRepo{rooms: hotelRooms()})

	// Перемещение бронирования 42 внутри его собственного диапазона
	resp, err := uc.Execute(context.Background(), &Request{
		RoomID:               4,
		CheckIn:              ts(2025, 8, 11, 15, 0),
		CheckOut:             ts(2025, 8, 13, 11, 0),
		ExcludeReservationID: ptr.Ptr(int64(42)),
	})

	require.NoError(t, err)
	assert.True(t, resp.Valid)
	require.NotNil(t, reservations.excludeSeen)
	assert.Equal(t, int64(42), *reservations.excludeSeen)
}

func TestUseCase_Execute_StoreFailureBecomesConflict(t *testing.T) {
	reservations := &mockReservationRepo{err: errors.New("connection refused")}
	uc := newTestUseCase(reservations, &mockRoomRepo{rooms: hotelRooms()})

	resp, err := uc.Execute(context.Background(), &Request{
		RoomID:   1,
		CheckIn:  ts(2025, 8, 11, 15, 0),
		CheckOut: ts(2025, 8, 14, 11, 0),
	})

	// Сбой хранилища не пробрасывается ошибкой: результат принимает форму конфликта
	require.NoError(t, err)
	assert.False(t, resp.Valid)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, domain.ConflictDataUnavailable, resp.Conflicts[0].Kind)
	assert.Contains(t, resp.Conflicts[0].Message, "retry")
}

func TestUseCase_Execute_RoomListFailureBecomesConflict(t *testing.T) {
	uc := newTestUseCase(&mockReservationRepo{}, &mockRoomRepo{err: errors.New("connection refused")})

	resp, err := uc.Execute(context.Background(), &Request{
		RoomID:   1,
		CheckIn:  ts(2025, 8, 11, 15, 0),
		CheckOut: ts(2025, 8, 14, 11, 0),
	})

	require.NoError(t, err)
	assert.False(t, resp.Valid)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, domain.ConflictDataUnavailable, resp.Conflicts[0].Kind)
}

func TestUseCase_Execute_Warnings(t *testing.T) {
	uc := newTestUseCase(&mockReservationRepo{}, &mockRoomRepo{rooms: hotelRooms()})

	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     []domain.WarningKind
	}{
		{
			name:     "no warnings for a plain weekday stay",
			checkIn:  ts(2025, 8, 11, 15, 0), // понедельник
			checkOut: ts(2025, 8, 14, 11, 0),
			want:     []domain.WarningKind{},
		},
		{
			name:     "single night",
			checkIn:  ts(2025, 8, 11, 15, 0),
			checkOut: ts(2025, 8, 12, 11, 0),
			want:     []domain.WarningKind{domain.WarningSingleNight},
		},
		{
			name:     "weekend check-in",
			checkIn:  ts(2025, 8, 16, 15, 0), // суббота
			checkOut: ts(2025, 8, 19, 11, 0),
			want:     []domain.WarningKind{domain.WarningWeekendCheckIn},
		},
		{
			name:     "weekend check-out",
			checkIn:  ts(2025, 8, 13, 15, 0),
			checkOut: ts(2025, 8, 17, 11, 0), // воскресенье
			want:     []domain.WarningKind{domain.WarningWeekendCheckOut},
		},
		{
			name:     "early check-in",
			checkIn:  ts(2025, 8, 11, 9, 0),
			checkOut: ts(2025, 8, 14, 11, 0),
			want:     []domain.WarningKind{domain.WarningEarlyCheckIn},
		},
		{
			name:     "late check-in at the threshold",
			checkIn:  ts(2025, 8, 11, 22, 0),
			checkOut: ts(2025, 8, 14, 11, 0),
			want:     []domain.WarningKind{domain.WarningLateCheckIn},
		},
		{
			name:     "combined warnings keep fixed order",
			checkIn:  ts(2025, 8, 16, 9, 0), // суббота, раннее время, одна ночь
			checkOut: ts(2025, 8, 17, 11, 0),
			want: []domain.WarningKind{
				domain.WarningSingleNight,
				domain.WarningWeekendCheckIn,
				domain.WarningWeekendCheckOut,
				domain.WarningEarlyCheckIn,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := uc.Execute(context.Background(), &Request{RoomID: 1, CheckIn: tt.checkIn, CheckOut: tt.checkOut})
			require.NoError(t, err)
			assert.True(t, resp.Valid)

			kinds := make([]domain.WarningKind, 0, len(resp.Warnings))
			for _, w := range resp.Warnings {
				kinds = append(kinds, w.Kind)
			}
			assert.Equal(t, tt.want, kinds)
		})
	}
}

func TestUseCase_Execute_WarningsDoNotAffectValidity(t *testing.T) {
	existing := &domain.Reservation{
		ID:       42,
		RoomID:   1,
		CheckIn:  ts(2025, 8, 15, 15, 0),
		CheckOut: ts(2025, 8, 18, 11, 0),
		Status:   domain.StatusConfirmed,
	}
	reservations := &mockReservationRepo{byRoom: map[int64][]*domain.Reservation{1: {existing}}}
	uc := newTestUseCase(reservations, &mockRoomRepo{rooms: hotelRooms()})

	// Занятый диапазон с заездом в субботу: и конфликт, и предупреждение
	resp, err := uc.Execute(context.Background(), &Request{
		RoomID:   1,
		CheckIn:  ts(2025, 8, 16, 15, 0),
		CheckOut: ts(2025, 8, 17, 11, 0),
	})

	require.NoError(t, err)
	assert.False(t, resp.Valid)
	assert.NotEmpty(t, resp.Conflicts)
	assert.NotEmpty(t, resp.Warnings)
}

func TestUseCase_Execute_Alternatives(t *testing.T) {
	occupied := func(roomID int64) *domain.Reservation {
		return &domain.Reservation{
			ID:       100 + roomID,
			RoomID:   roomID,
			CheckIn:  ts(2025, 8, 10, 15, 0),
			CheckOut: ts(2025, 8, 13, 11, 0),
			Status:   domain.StatusConfirmed,
		}
	}

	t.Run("same or higher category first, insertion order within groups", func(t *testing.T) {
		// Занят deluxe 301 (id=4); свободны все остальные
		reservations := &mockReservationRepo{byRoom: map[int64][]*domain.Reservation{4: {occupied(4)}}}
		uc := newTestUseCase(reservations, &mockRoomRepo{rooms: hotelRooms()})

		resp, err := uc.Execute(context.Background(), &Request{
			RoomID:   4,
			CheckIn:  ts(2025, 8, 11, 15, 0),
			CheckOut: ts(2025, 8, 13, 11, 0),
		})

		require.NoError(t, err)
		assert.False(t, resp.Valid)
		require.Len(t, resp.AlternativeRooms, domain.MaxAlternativeRooms)
		// Та же или выше категория идут первыми: deluxe 302, suite 401, затем низшие
		assert.Equal(t, int64(5), resp.AlternativeRooms[0].ID)
		assert.Equal(t, int64(6), resp.AlternativeRooms[1].ID)
		assert.Equal(t, int64(1), resp.AlternativeRooms[2].ID)
	})

	t.Run("occupied candidates are skipped", func(t *testing.T) {
		// Заняты deluxe 301 и 302 и suite 401: остаются только низшие категории
		reservations := &mockReservationRepo{byRoom: map[int64][]*domain.Reservation{
			4: {occupied(4)},
			5: {occupied(5)},
			6: {occupied(6)},
		}}
		uc := newTestUseCase(reservations, &mockRoomRepo{rooms: hotelRooms()})

		resp, err := uc.Execute(context.Background(), &Request{
			RoomID:   4,
			CheckIn:  ts(2025, 8, 11, 15, 0),
			CheckOut: ts(2025, 8, 13, 11, 0),
		})

		require.NoError(t, err)
		require.Len(t, resp.AlternativeRooms, domain.MaxAlternativeRooms)
		assert.Equal(t, int64(1), resp.AlternativeRooms[0].ID)
		assert.Equal(t, int64(2), resp.AlternativeRooms[1].ID)
		assert.Equal(t, int64(3), resp.AlternativeRooms[2].ID)
	})

	t.Run("no alternatives when everything is occupied", func(t *testing.T) {
		byRoom := make(map[int64][]*domain.Reservation)
		for _, room := range hotelRooms() {
			byRoom[room.ID] = []*domain.Reservation{occupied(room.ID)}
		}
		reservations := &mockReservationRepo{byRoom: byRoom}
		uc := newTestUseCase(reservations, &mockRoomRepo{rooms: hotelRooms()})

		resp, err := uc.Execute(context.Background(), &Request{
			RoomID:   4,
			CheckIn:  ts(2025, 8, 11, 15, 0),
			CheckOut: ts(2025, 8, 13, 11, 0),
		})

		require.NoError(t, err)
		assert.False(t, resp.Valid)
		assert.Empty(t, resp.AlternativeRooms)
	})

	t.Run("no alternatives for a valid range", func(t *testing.T) {
		reservations := &mockReservationRepo{byRoom: map[int64][]*domain.Reservation{}}
		uc := newTestUseCase(reservations, &mockRoomRepo{rooms: hotelRooms()})

		resp, err := uc.Execute(context.Background(), &Request{
			RoomID:   4,
			CheckIn:  ts(2025, 8, 11, 15, 0),
			CheckOut: ts(2025, 8, 13, 11, 0),
		})

		require.NoError(t, err)
		assert.True(t, resp.Valid)
		assert.Empty(t, resp.AlternativeRooms)
	})
}
