package model

import (
	"hotel/shared/model"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID           = "id"
	FieldRoomNumber   = "room_number"
	FieldType         = "type"
	FieldPrice        = "price"
	FieldAmenities    = "amenities"
	FieldMaxOccupancy = "max_occupancy"
	FieldIsAvailable  = "is_available"
	FieldDescription  = "description"
	FieldImages       = "images"
)

const (
	TypeSingle = "single"
	TypeDouble = "double"
	TypeSuite  = "suite"
	TypeDeluxe = "deluxe"
)

// Types lists the room types in display order.
var Types = []string{TypeSingle, TypeDouble, TypeSuite, TypeDeluxe}

const (
	CacheGetRoom  = "room:get"
	CacheListRoom = "room:list"
)

type Room struct {
	ID           string          `db:"id"`
	RoomNumber   string          `db:"room_number"`
	Type         string          `db:"type"`
	Price        decimal.Decimal `db:"price"`
	Amenities    pq.StringArray  `db:"amenities"`
	MaxOccupancy int             `db:"max_occupancy"`
	IsAvailable  bool            `db:"is_available"`
	Description  string          `db:"description"`
	Images       pq.StringArray  `db:"images"`
	model.Metadata
}

func (Room) GetDefaultOrder() string {
	return TableName + ".seq ASC"
}
