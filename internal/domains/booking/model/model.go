package model

import (
	"math"
	"time"

	"hotel/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID              = "id"
	FieldUserID          = "user_id"
	FieldRoomID          = "room_id"
	FieldCheckInDate     = "check_in_date"
	FieldCheckOutDate    = "check_out_date"
	FieldNumberOfGuests  = "number_of_guests"
	FieldTotalAmount     = "total_amount"
	FieldStatus          = "status"
	FieldSpecialRequests = "special_requests"
)

// Statuses. Only pending and confirmed are reachable; cancelled and completed are reserved.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

type Booking struct {
	ID              string          `db:"id"`
	UserID          string          `db:"user_id"`
	RoomID          string          `db:"room_id"`
	CheckInDate     time.Time       `db:"check_in_date"`
	CheckOutDate    time.Time       `db:"check_out_date"`
	NumberOfGuests  int             `db:"number_of_guests"`
	TotalAmount     decimal.Decimal `db:"total_amount"`
	Status          string          `db:"status"`
	SpecialRequests string          `db:"special_requests"`
	model.Metadata
}

func (Booking) GetDefaultOrder() string {
	return TableName + ".seq ASC"
}

// IsActive reports whether the booking still holds its room.
func (b Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// Nights counts started days between check-in and check-out on the wall clock, so a daylight
// saving shift inside the stay never adds or removes a night.
func Nights(checkIn, checkOut time.Time) int {
	return int(math.Ceil(wallClock(checkOut).Sub(wallClock(checkIn)).Hours() / 24))
}

func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// Total prices a stay at the nightly rate.
func Total(nights int, price decimal.Decimal) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(nights)))
}
