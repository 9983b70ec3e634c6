package selection

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	roomRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/room"
	checkAvailability "github.com/m04kA/HMS-ReservationService/internal/usecase/check_availability"
)

// --- mocks ---

// fakeChecker классифицирует кандидатный диапазон по списку существующих
// бронирований тем же правилом пересечения полуоткрытых интервалов
type fakeChecker struct {
	existing []*domain.Reservation
	err      error
	calls    int
}

func (f *fakeChecker) Execute(_ context.Context, req *checkAvailability.Request) (*checkAvailability.Response, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}

	resp := &checkAvailability.Response{
		RoomID:   req.RoomID,
		CheckIn:  req.CheckIn,
		CheckOut: req.CheckOut,
		Valid:    true,
	}

	for _, res := range f.existing {
		if res.RoomID != req.RoomID || !res.IsActive() {
			continue
		}
		if res.Overlaps(req.CheckIn, req.CheckOut) {
			id := res.ID
			resp.Conflicts = append(resp.Conflicts, domain.Conflict{
				Kind:          domain.ConflictReservationOverlap,
				Severity:      domain.SeverityError,
				Message:       "Room is occupied",
				ReservationID: &id,
			})
		}
	}
	resp.Valid = len(resp.Conflicts) == 0

	return resp, nil
}

type fakeRoomRepo struct {
	rooms map[int64]*domain.Room
}

func (f *fakeRoomRepo) GetByID(_ context.Context, id int64) (*domain.Room, error) {
	room, ok := f.rooms[id]
	if !ok {
		return nil, fmt.Errorf("%w: id = %d", roomRepo.ErrRoomNotFound, id)
	}
	return room, nil
}

func (f *fakeRoomRepo) List(_ context.Context) ([]*domain.Room, error) {
	ids := make([]int64, 0, len(f.rooms))
	for id := range f.rooms {
		ids = append(ids, id)
	}
	// Стабильный порядок для предсказуемых проверок
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			if ids[j] < ids[i] {
				ids[i], ids[j] = ids[j], ids[i]
			}
		}
	}
	rooms := make([]*domain.Room, 0, len(ids))
	for _, id := range ids {
		rooms = append(rooms, f.rooms[id])
	}
	return rooms, nil
}

type testLogger struct{}

func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}

// --- fixtures ---

const room301 int64 = 301

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(y int, m time.Month, d, hour, min int) time.Time {
	return time.Date(y, m, d, hour, min, 0, 0, time.UTC)
}

// newTestMachine строит машину с номером 301 и одним существующим
// бронированием [10.08 15:00, 13.08 11:00)
func newTestMachine() (*Machine, *fakeChecker) {
	checker := &fakeChecker{
		existing: []*domain.Reservation{{
			ID:       42,
			RoomID:   room301,
			CheckIn:  at(2025, 8, 10, 15, 0),
			CheckOut: at(2025, 8, 13, 11, 0),
			Status:   domain.StatusConfirmed,
		}},
	}
	rooms := &fakeRoomRepo{rooms: map[int64]*domain.Room{
		room301: {ID: room301, Number: "301", Category: domain.CategoryDeluxe},
	}}
	return NewMachine(checker, rooms, DefaultAnchors(), testLogger{}), checker
}

// advanceToSelectingCheckOut включает машину и выбирает заезд 13.08
func advanceToSelectingCheckOut(t *testing.T, m *Machine) {
	t.Helper()
	_, err := m.Enable()
	require.NoError(t, err)
	_, err = m.SelectCheckIn(context.Background(), room301, day(2025, 8, 13))
	require.NoError(t, err)
}

// --- tests ---

func TestMachine_Enable(t *testing.T) {
	m, _ := newTestMachine()

	snap, err := m.Enable()
	require.NoError(t, err)
	assert.Equal(t, domain.StateSelectingCheckIn, snap.State)
	assert.Nil(t, snap.Selection)
	assert.Nil(t, snap.Preview)

	// Повторное включение из selecting_checkin отклоняется
	_, err = m.Enable()
	assert.ErrorIs(t, err, ErrIllegalTransition)
	assert.Equal(t, domain.StateSelectingCheckIn, m.State())
}

func TestMachine_SelectCheckIn_AppliesAnchors(t *testing.T) {
	m, _ := newTestMachine()
	_, err := m.Enable()
	require.NoError(t, err)

	snap, err := m.SelectCheckIn(context.Background(), room301, day(2025, 8, 20))
	require.NoError(t, err)

	assert.Equal(t, domain.StateSelectingCheckOut, snap.State)
	require.NotNil(t, snap.Selection)
	// Заезд в 15:00 выбранного дня, выезд по умолчанию в 11:00 следующего
	assert.Equal(t, at(2025, 8, 20, 15, 0), snap.Selection.CheckIn)
	assert.Equal(t, at(2025, 8, 21, 11, 0), snap.Selection.CheckOut)
	assert.Equal(t, 1, snap.Selection.Nights)
	assert.Equal(t, "301", snap.Selection.RoomNumber)
	require.NotNil(t, snap.Preview)
	assert.True(t, snap.Preview.Valid)
}

func TestMachine_SelectCheckIn_ConflictedDefaultRangeStillAdvances(t *testing.T) {
	m, _ := newTestMachine()
	_, err := m.Enable()
	require.NoError(t, err)

	// 10.08 занят существующим бронированием: диапазон по умолчанию конфликтует,
	// но машина всё равно переходит в selecting_checkout с невалидным предпросмотром
	snap, err := m.SelectCheckIn(context.Background(), room301, day(2025, 8, 10))
	require.NoError(t, err)

	assert.Equal(t, domain.StateSelectingCheckOut, snap.State)
	require.NotNil(t, snap.Preview)
	assert.False(t, snap.Preview.Valid)
	assert.NotEmpty(t, snap.Preview.Conflicts)
}

func TestMachine_SelectCheckIn_UnknownRoom(t *testing.T) {
	m, _ := newTestMachine()
	_, err := m.Enable()
	require.NoError(t, err)

	_, err = m.SelectCheckIn(context.Background(), 999, day(2025, 8, 20))
	assert.ErrorIs(t, err, ErrRoomNotFound)
	// Состояние не изменилось, выбор не начат
	assert.Equal(t, domain.StateSelectingCheckIn, m.State())
	assert.Nil(t, m.Selection())
}

func TestMachine_SelectCheckIn_IllegalStates(t *testing.T) {
	m, _ := newTestMachine()

	// idle
	_, err := m.SelectCheckIn(context.Background(), room301, day(2025, 8, 20))
	assert.ErrorIs(t, err, ErrIllegalTransition)

	// selecting_checkout
	advanceToSelectingCheckOut(t, m)
	_, err = m.SelectCheckIn(context.Background(), room301, day(2025, 8, 20))
	assert.ErrorIs(t, err, ErrIllegalTransition)
	assert.Equal(t, domain.StateSelectingCheckOut, m.State())
}

func TestMachine_SelectCheckOut_MovesCheckOut(t *testing.T) {
	m, _ := newTestMachine()
	advanceToSelectingCheckOut(t, m)

	snap, err := m.SelectCheckOut(context.Background(), room301, day(2025, 8, 16), false)
	require.NoError(t, err)

	assert.Equal(t, domain.StateSelectingCheckOut, snap.State)
	assert.Equal(t, at(2025, 8, 16, 11, 0), snap.Selection.CheckOut)
	assert.Equal(t, 3, snap.Selection.Nights)
	assert.True(t, snap.Preview.Valid)
}

func TestMachine_SelectCheckOut_RejectsNonChronologicalDate(t *testing.T) {
	m, checker := newTestMachine()
	advanceToSelectingCheckOut(t, m)
	before := m.Snapshot()
	callsBefore := checker.calls

	// Выезд 13.08 в 11:00 не позже заезда 13.08 15:00
	_, err := m.SelectCheckOut(context.Background(), room301, day(2025, 8, 13), false)
	assert.ErrorIs(t, err, ErrCheckOutNotAfterCheckIn)

	// Состояние, выбор и предпросмотр не изменились; валидация не вызывалась
	after := m.Snapshot()
	assert.Equal(t, before, after)
	assert.Equal(t, callsBefore, checker.calls)

	// Более ранняя дата отклоняется так же
	_, err = m.SelectCheckOut(context.Background(), room301, day(2025, 8, 1), true)
	assert.ErrorIs(t, err, ErrCheckOutNotAfterCheckIn)
	assert.Equal(t, domain.StateSelectingCheckOut, m.State())
}

func TestMachine_SelectCheckOut_RejectsDifferentRoom(t *testing.T) {
	m, _ := newTestMachine()
	advanceToSelectingCheckOut(t, m)

	_, err := m.SelectCheckOut(context.Background(), 999, day(2025, 8, 16), false)
	assert.ErrorIs(t, err, ErrRoomMismatch)
	assert.Equal(t, domain.StateSelectingCheckOut, m.State())
}

func TestMachine_SelectCheckOut_ConfirmRequiresValidPreview(t *testing.T) {
	m, _ := newTestMachine()
	_, err := m.Enable()
	require.NoError(t, err)
	// Заезд 9.08: диапазон до 14.08 пересекает существующее бронирование
	_, err = m.SelectCheckIn(context.Background(), room301, day(2025, 8, 9))
	require.NoError(t, err)

	snap, err := m.SelectCheckOut(context.Background(), room301, day(2025, 8, 14), true)
	require.NoError(t, err)

	// Невалидный результат: подтверждение не происходит, предпросмотр обновлён
	assert.Equal(t, domain.StateSelectingCheckOut, snap.State)
	assert.False(t, snap.Preview.Valid)
	assert.Equal(t, at(2025, 8, 14, 11, 0), snap.Selection.CheckOut)
}

func TestMachine_SelectCheckOut_ConfirmAdvancesOnValidPreview(t *testing.T) {
	m, _ := newTestMachine()
	advanceToSelectingCheckOut(t, m)

	snap, err := m.SelectCheckOut(context.Background(), room301, day(2025, 8, 16), true)
	require.NoError(t, err)

	assert.Equal(t, domain.StateConfirming, snap.State)
	assert.True(t, snap.Preview.Valid)
}

func TestMachine_ExactOverlapDragStaysInSelectingCheckOut(t *testing.T) {
	m, _ := newTestMachine()
	_, err := m.Enable()
	require.NoError(t, err)

	// Заезд в день заезда существующего бронирования: диапазон по умолчанию конфликтует
	snap, err := m.SelectCheckIn(context.Background(), room301, day(2025, 8, 10))
	require.NoError(t, err)
	assert.False(t, snap.Preview.Valid)

	// Выезд растянут до 13.08: кандидатный диапазон в точности совпадает
	// с существующим бронированием и остаётся невалидным
	snap, err = m.SelectCheckOut(context.Background(), room301, day(2025, 8, 13), true)
	require.NoError(t, err)
	assert.Equal(t, domain.StateSelectingCheckOut, snap.State)
	assert.False(t, snap.Preview.Valid)
	assert.Equal(t, at(2025, 8, 10, 15, 0), snap.Selection.CheckIn)
	assert.Equal(t, at(2025, 8, 13, 11, 0), snap.Selection.CheckOut)
}

func TestMachine_BackToBackWithExistingReservation(t *testing.T) {
	m, _ := newTestMachine()
	_, err := m.Enable()
	require.NoError(t, err)

	// Заезд в день выезда существующего бронирования: 13.08 15:00 позже
	// его выезда 13.08 11:00, диапазон по умолчанию свободен
	snap, err := m.SelectCheckIn(context.Background(), room301, day(2025, 8, 13))
	require.NoError(t, err)
	assert.True(t, snap.Preview.Valid)

	// И наоборот: выезд 10.08 11:00 в точности к заезду существующего 10.08 15:00
	m2, _ := newTestMachine()
	_, err = m2.Enable()
	require.NoError(t, err)
	_, err = m2.SelectCheckIn(context.Background(), room301, day(2025, 8, 8))
	require.NoError(t, err)
	snap, err = m2.SelectCheckOut(context.Background(), room301, day(2025, 8, 10), true)
	require.NoError(t, err)
	assert.Equal(t, domain.StateConfirming, snap.State)
	assert.True(t, snap.Preview.Valid)
}

func TestMachine_ConfirmSelection(t *testing.T) {
	m, _ := newTestMachine()
	advanceToSelectingCheckOut(t, m)
	_, err := m.SelectCheckOut(context.Background(), room301, day(2025, 8, 16), true)
	require.NoError(t, err)

	snap, err := m.ConfirmSelection()
	require.NoError(t, err)
	assert.Equal(t, domain.StateCreating, snap.State)

	// Повторное подтверждение из creating отклоняется
	_, err = m.ConfirmSelection()
	assert.ErrorIs(t, err, ErrIllegalTransition)
	assert.Equal(t, domain.StateCreating, m.State())
}

func TestMachine_ConfirmSelection_IllegalStates(t *testing.T) {
	t.Run("from idle", func(t *testing.T) {
		m, _ := newTestMachine()
		_, err := m.ConfirmSelection()
		assert.ErrorIs(t, err, ErrIllegalTransition)
	})

	t.Run("from selecting_checkin", func(t *testing.T) {
		m, _ := newTestMachine()
		_, err := m.Enable()
		require.NoError(t, err)
		_, err = m.ConfirmSelection()
		assert.ErrorIs(t, err, ErrIllegalTransition)
	})

	t.Run("from selecting_checkout", func(t *testing.T) {
		m, _ := newTestMachine()
		advanceToSelectingCheckOut(t, m)
		_, err := m.ConfirmSelection()
		assert.ErrorIs(t, err, ErrIllegalTransition)
		assert.Equal(t, domain.StateSelectingCheckOut, m.State())
	})
}

func TestMachine_CompleteCreation_ResetsFromAnyState(t *testing.T) {
	states := []struct {
		name    string
		prepare func(t *testing.T, m *Machine)
	}{
		{name: "idle", prepare: func(t *testing.T, m *Machine) {}},
		{name: "selecting_checkin", prepare: func(t *testing.T, m *Machine) {
			_, err := m.Enable()
			require.NoError(t, err)
		}},
		{name: "selecting_checkout", prepare: func(t *testing.T, m *Machine) {
			advanceToSelectingCheckOut(t, m)
		}},
		{name: "creating", prepare: func(t *testing.T, m *Machine) {
			advanceToSelectingCheckOut(t, m)
			_, err := m.SelectCheckOut(context.Background(), room301, day(2025, 8, 16), true)
			require.NoError(t, err)
			_, err = m.ConfirmSelection()
			require.NoError(t, err)
		}},
	}

	for _, tt := range states {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestMachine()
			tt.prepare(t, m)

			snap, err := m.CompleteCreation()
			require.NoError(t, err)
			assert.Equal(t, domain.StateIdle, snap.State)
			assert.Nil(t, snap.Selection)
			assert.Nil(t, snap.Preview)
		})
	}
}

func TestMachine_Disable_AlwaysSucceeds(t *testing.T) {
	m, _ := newTestMachine()
	advanceToSelectingCheckOut(t, m)

	snap, err := m.Disable()
	require.NoError(t, err)
	assert.Equal(t, domain.StateIdle, snap.State)
	assert.Nil(t, snap.Selection)
	assert.Nil(t, snap.Preview)

	// Из idle выключение остаётся успешным no-op
	snap, err = m.Disable()
	require.NoError(t, err)
	assert.Equal(t, domain.StateIdle, snap.State)
}

func TestMachine_Selection_ReturnsCopy(t *testing.T) {
	m, _ := newTestMachine()
	advanceToSelectingCheckOut(t, m)

	sel := m.Selection()
	require.NotNil(t, sel)
	sel.RoomID = 999

	assert.Equal(t, room301, m.Selection().RoomID)
}
