package check_availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
)

// findAlternatives подбирает свободные альтернативные номера для занятого диапазона
//
// Каждый номер, кроме исходного, проверяется тем же правилом пересечения на
// идентичный диапазон; остаются только полностью свободные. Номера той же или
// более высокой категории идут первыми, внутри каждой группы сохраняется
// порядок списка номерного фонда. Результат ограничен domain.MaxAlternativeRooms.
func (uc *UseCase) findAlternatives(ctx context.Context, rooms []*domain.Room, original *domain.Room, checkIn, checkOut time.Time) ([]domain.Room, error) {
	free := make([]*domain.Room, 0)

	for _, candidate := range rooms {
		if candidate.ID == original.ID {
			continue
		}

		overlapping, err := uc.reservationRepo.ListForRoomInRange(ctx, candidate.ID, checkIn, checkOut, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to check alternative room %d: %v", ErrInternal, candidate.ID, err)
		}

		if len(overlapping) == 0 {
			free = append(free, candidate)
		}
	}

	// Стабильная двухпроходная сортировка: сперва та же или выше категория
	ordered := make([]domain.Room, 0, len(free))
	for _, candidate := range free {
		if candidate.SameOrHigherCategory(original.Category) {
			ordered = append(ordered, *candidate)
		}
	}
	for _, candidate := range free {
		if !candidate.SameOrHigherCategory(original.Category) {
			ordered = append(ordered, *candidate)
		}
	}

	if len(ordered) > domain.MaxAlternativeRooms {
		ordered = ordered[:domain.MaxAlternativeRooms]
	}

	return ordered, nil
}
