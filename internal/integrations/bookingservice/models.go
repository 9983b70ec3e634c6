package bookingservice

import "time"

// CreateReservationRequest запрос на создание бронирования
// Передаёт финализированную тройку (номер, заезд, выезд) из машины выбора
type CreateReservationRequest struct {
	RoomID    int64     `json:"roomId"`
	CheckIn   time.Time `json:"checkIn"`
	CheckOut  time.Time `json:"checkOut"`
	CreatedBy int64     `json:"createdBy"` // ID сотрудника стойки регистрации
}

// Reservation созданное бронирование в ответе сервиса бронирований
type Reservation struct {
	ID       int64     `json:"id"`
	RoomID   int64     `json:"roomId"`
	CheckIn  time.Time `json:"checkIn"`
	CheckOut time.Time `json:"checkOut"`
	Status   string    `json:"status"`
}
