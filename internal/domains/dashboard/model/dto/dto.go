package dto

import (
	bookingDto "hotel/internal/domains/booking/model/dto"

	"github.com/shopspring/decimal"
)

// RecentBookingsLimit is how many of the latest bookings the dashboard shows.
const RecentBookingsLimit = 5

type StatsResponse struct {
	TotalBookings  int                          `json:"totalBookings"`
	TotalRevenue   decimal.Decimal              `json:"totalRevenue"`
	AvailableRooms int                          `json:"availableRooms"`
	TotalRooms     int                          `json:"totalRooms"`
	RecentBookings []bookingDto.BookingResponse `json:"recentBookings"`
	MonthlyRevenue decimal.Decimal              `json:"monthlyRevenue"`
}
