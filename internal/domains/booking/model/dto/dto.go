package dto

import (
	"time"

	"hotel/internal/domains/booking/model"
	roomModel "hotel/internal/domains/room/model"
	roomDto "hotel/internal/domains/room/model/dto"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateBookingRequest struct {
	RoomID          string `json:"roomId"          validate:"required"`
	CheckInDate     string `json:"checkInDate"     validate:"required"`
	CheckOutDate    string `json:"checkOutDate"    validate:"required"`
	NumberOfGuests  int    `json:"numberOfGuests"`
	SpecialRequests string `json:"specialRequests" validate:"omitempty,max=1000"`
}

// Stay parses the requested check-in and check-out dates.
func (c *CreateBookingRequest) Stay() (checkIn, checkOut time.Time, err error) {
	checkIn, err = timezone.ParseDate(c.CheckInDate)
	if err != nil {
		return checkIn, checkOut, failure.InvalidDateRange("checkInDate must be a valid date")
	}

	checkOut, err = timezone.ParseDate(c.CheckOutDate)
	if err != nil {
		return checkIn, checkOut, failure.InvalidDateRange("checkOutDate must be a valid date")
	}

	return checkIn, checkOut, nil
}

func (c *CreateBookingRequest) ToModel(userID string, checkIn, checkOut time.Time, total decimal.Decimal, metadata gModel.Metadata) model.Booking {
	return model.Booking{
		ID:              uuid.NewString(),
		UserID:          userID,
		RoomID:          c.RoomID,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		NumberOfGuests:  c.NumberOfGuests,
		TotalAmount:     total,
		Status:          model.StatusPending,
		SpecialRequests: c.SpecialRequests,
		Metadata:        metadata,
	}
}

type BookingResponse struct {
	ID              string                `json:"_id"`
	UserID          string                `json:"userId"`
	RoomID          string                `json:"roomId"`
	CheckInDate     string                `json:"checkInDate"`
	CheckOutDate    string                `json:"checkOutDate"`
	NumberOfGuests  int                   `json:"numberOfGuests"`
	TotalAmount     decimal.Decimal       `json:"totalAmount"`
	Status          string                `json:"status"`
	SpecialRequests string                `json:"specialRequests,omitempty"`
	Room            *roomDto.RoomResponse `json:"room,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.RoomID = model.RoomID
	r.CheckInDate = timezone.Format(model.CheckInDate, constant.DateTimeFormat)
	r.CheckOutDate = timezone.Format(model.CheckOutDate, constant.DateTimeFormat)
	r.NumberOfGuests = model.NumberOfGuests
	r.TotalAmount = model.TotalAmount
	r.Status = model.Status
	r.SpecialRequests = model.SpecialRequests
	r.Metadata.FromModel(model.Metadata)
}

// WithRoom attaches the room snapshot; bookings whose room was deleted stay bare.
func (r *BookingResponse) WithRoom(room roomModel.Room) {
	if room.ID == constant.Empty {
		return
	}

	var res roomDto.RoomResponse
	res.FromModel(room)

	r.Room = &res
}

// FromModelsWithRooms builds responses enriched from a room lookup keyed by id.
func FromModelsWithRooms(models []model.Booking, rooms map[string]roomModel.Room) []BookingResponse {
	res := make([]BookingResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
		res[i].WithRoom(rooms[mod.RoomID])
	}

	return res
}
