// Package seed loads the demo accounts and the fixed room inventory into an empty store.
package seed

import (
	"context"
	"fmt"
	"time"

	"hotel/config"
	bookingModel "hotel/internal/domains/booking/model"
	bookingRepo "hotel/internal/domains/booking/repository"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	userModel "hotel/internal/domains/user/model"
	userRepo "hotel/internal/domains/user/repository"
	"hotel/shared"
	"hotel/shared/clock"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/password"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	roomsPerType   = 10
	heldRoomID     = "room-37"
	heldBookingID  = "booking-1"
	heldCustomerID = "customer-1"
)

type account struct {
	id, email, password, firstName, lastName, role string
}

var accounts = []account{
	{id: "admin-1", email: "admin@hotel.com", password: "admin123", firstName: "Admin", lastName: "User", role: constant.RoleAdmin},
	{id: heldCustomerID, email: "john@example.com", password: "password123", firstName: "John", lastName: "Doe", role: constant.RoleCustomer},
}

type roomType struct {
	name         string
	price        int64
	amenities    []string
	maxOccupancy int
	description  string
	image        string
	floor        int
}

var roomTypes = []roomType{
	{
		name:         roomModel.TypeSingle,
		price:        120,
		amenities:    []string{"WiFi", "TV", "Air Conditioning", "Mini Bar"},
		maxOccupancy: 1,
		description:  "Comfortable single room perfect for solo travelers",
		image:        "https://images.unsplash.com/photo-1631049307264-da0ec9d70304?w=500&h=300&fit=crop",
		floor:        1,
	},
	{
		name:         roomModel.TypeDouble,
		price:        180,
		amenities:    []string{"WiFi", "TV", "Air Conditioning", "Mini Bar", "Room Service"},
		maxOccupancy: 2,
		description:  "Spacious double room with modern amenities",
		image:        "https://images.unsplash.com/photo-1611892440504-42a792e24d32?w=500&h=300&fit=crop",
		floor:        2,
	},
	{
		name:         roomModel.TypeSuite,
		price:        350,
		amenities:    []string{"WiFi", "TV", "Air Conditioning", "Mini Bar", "Room Service", "Jacuzzi", "Balcony"},
		maxOccupancy: 4,
		description:  "Luxury suite with premium amenities and stunning views",
		image:        "https://images.unsplash.com/photo-1582719478250-c89cae4dc85b?w=500&h=300&fit=crop",
		floor:        3,
	},
	{
		name:         roomModel.TypeDeluxe,
		price:        500,
		amenities:    []string{"WiFi", "TV", "Air Conditioning", "Mini Bar", "Room Service", "Jacuzzi", "Balcony", "Kitchen"},
		maxOccupancy: 6,
		description:  "Premium deluxe room with all luxury amenities",
		image:        "https://images.unsplash.com/photo-1590490360182-c33d57733427?w=500&h=300&fit=crop",
		floor:        4,
	},
}

type Seeder struct {
	cfg      *config.Config
	users    userRepo.User
	rooms    roomRepo.Room
	bookings bookingRepo.Booking
	clock    clock.Clock
}

func New(cfg *config.Config, users userRepo.User, rooms roomRepo.Room, bookings bookingRepo.Booking, clock clock.Clock) *Seeder {
	return &Seeder{
		cfg:      cfg,
		users:    users,
		rooms:    rooms,
		bookings: bookings,
		clock:    clock,
	}
}

// Run is a no-op when seeding is disabled. Accounts are added when their email is free; rooms and the
// sample booking only when the inventory is empty.
func (s *Seeder) Run(ctx context.Context) error {
	if !s.cfg.App.Seed {
		return nil
	}

	metadata := gModel.NewMetadata(s.clock.Now())

	if err := s.seedUsers(ctx, metadata); err != nil {
		return err
	}

	total, err := s.rooms.Count(ctx, gDto.FilterGroup{})
	if err != nil {
		return fmt.Errorf("failed to count rooms: %w", err)
	}

	if total > 0 {
		log.Info().Int("rooms", total).Msg("inventory already present, skipping seed")

		return nil
	}

	for _, room := range Rooms(metadata) {
		if err := s.rooms.Insert(ctx, room); err != nil {
			return fmt.Errorf("failed to seed room %s: %w", room.ID, err)
		}
	}

	if err := s.bookings.Insert(ctx, Booking(metadata)); err != nil {
		return fmt.Errorf("failed to seed booking: %w", err)
	}

	log.Info().Int("rooms", len(roomTypes)*roomsPerType).Msg("seeded room inventory")

	return nil
}

func (s *Seeder) seedUsers(ctx context.Context, metadata gModel.Metadata) error {
	for _, acc := range accounts {
		exists, err := s.users.Exist(ctx, shared.FilterByField(userModel.FieldEmail, acc.email, userModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to check user %s: %w", acc.email, err)
		}

		if exists {
			continue
		}

		hashed, err := password.Hash(acc.password)
		if err != nil {
			return fmt.Errorf("failed to hash password for %s: %w", acc.email, err)
		}

		user := userModel.User{
			ID:        acc.id,
			Email:     acc.email,
			Password:  hashed,
			FirstName: acc.firstName,
			LastName:  acc.lastName,
			Role:      acc.role,
			Metadata:  metadata,
		}

		if err := s.users.Insert(ctx, user); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", acc.email, err)
		}
	}

	return nil
}

// Rooms builds room-1..room-40, ten per type, numbered floor then two-digit index. Room 407 is held.
func Rooms(metadata gModel.Metadata) []roomModel.Room {
	rooms := make([]roomModel.Room, 0, len(roomTypes)*roomsPerType)

	for _, rt := range roomTypes {
		for i := 1; i <= roomsPerType; i++ {
			id := fmt.Sprintf("room-%d", len(rooms)+1)

			rooms = append(rooms, roomModel.Room{
				ID:           id,
				RoomNumber:   fmt.Sprintf("%d%02d", rt.floor, i),
				Type:         rt.name,
				Price:        decimal.NewFromInt(rt.price),
				Amenities:    append([]string{}, rt.amenities...),
				MaxOccupancy: rt.maxOccupancy,
				IsAvailable:  id != heldRoomID,
				Description:  rt.description,
				Images:       []string{rt.image},
				Metadata:     metadata,
			})
		}
	}

	return rooms
}

// Booking is the confirmed stay that holds room 407.
func Booking(metadata gModel.Metadata) bookingModel.Booking {
	return bookingModel.Booking{
		ID:             heldBookingID,
		UserID:         heldCustomerID,
		RoomID:         heldRoomID,
		CheckInDate:    time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		CheckOutDate:   time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
		NumberOfGuests: 2,
		TotalAmount:    decimal.NewFromInt(2500),
		Status:         bookingModel.StatusConfirmed,
		Metadata:       metadata,
	}
}
