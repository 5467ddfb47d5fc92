package dto

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"hotel/internal/domains/room/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gModel "hotel/shared/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateRoomRequest struct {
	RoomNumber   string          `json:"roomNumber"   validate:"required,max=20"`
	Type         string          `json:"type"         validate:"required,oneof=single double suite deluxe"`
	Price        decimal.Decimal `json:"price"        validate:"dgt=0"`
	Amenities    []string        `json:"amenities"    validate:"omitempty,dive,required"`
	MaxOccupancy int             `json:"maxOccupancy" validate:"required,min=1"`
	IsAvailable  *bool           `json:"isAvailable"`
	Description  string          `json:"description"  validate:"omitempty,max=1000"`
	Images       []string        `json:"images"       validate:"omitempty,dive,url"`
}

// ToModel fills the optional fields with empty values; new rooms are available unless stated otherwise.
func (c *CreateRoomRequest) ToModel(metadata gModel.Metadata) model.Room {
	available := true
	if c.IsAvailable != nil {
		available = *c.IsAvailable
	}

	amenities := c.Amenities
	if amenities == nil {
		amenities = []string{}
	}

	images := c.Images
	if images == nil {
		images = []string{}
	}

	return model.Room{
		ID:           uuid.NewString(),
		RoomNumber:   c.RoomNumber,
		Type:         c.Type,
		Price:        c.Price,
		Amenities:    amenities,
		MaxOccupancy: c.MaxOccupancy,
		IsAvailable:  available,
		Description:  c.Description,
		Images:       images,
		Metadata:     metadata,
	}
}

// UpdateRoomRequest is a partial update; nil fields keep their stored value.
type UpdateRoomRequest struct {
	RoomNumber   *string          `json:"roomNumber"   validate:"omitempty,min=1,max=20"`
	Type         *string          `json:"type"         validate:"omitempty,oneof=single double suite deluxe"`
	Price        *decimal.Decimal `json:"price"        copier:"-" validate:"omitempty,dgt=0"`
	Amenities    []string         `json:"amenities"    validate:"omitempty,dive,required"`
	MaxOccupancy *int             `json:"maxOccupancy" validate:"omitempty,min=1"`
	IsAvailable  *bool            `json:"isAvailable"`
	Description  *string          `json:"description"  validate:"omitempty,max=1000"`
	Images       []string         `json:"images"       validate:"omitempty,dive,url"`
}

func (u *UpdateRoomRequest) IsEmpty() bool {
	return u.RoomNumber == nil && u.Type == nil && u.Price == nil && u.Amenities == nil &&
		u.MaxOccupancy == nil && u.IsAvailable == nil && u.Description == nil && u.Images == nil
}

type UploadImageRequest struct {
	Image     *multipart.FileHeader `validate:"required,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5"`
	ImageFile multipart.File        `json:"-"`
}

// RoomFilter narrows a room listing. A zero filter asks for one representative room per type.
type RoomFilter struct {
	Type     string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Guests   *int
	CheckIn  string
	CheckOut string
}

func (f *RoomFilter) FromRequest(r *http.Request) error {
	query := r.URL.Query()

	f.Type = query.Get(constant.RequestParamType)
	f.CheckIn = query.Get(constant.RequestParamCheckIn)
	f.CheckOut = query.Get(constant.RequestParamCheckOut)

	for param, target := range map[string]**decimal.Decimal{
		constant.RequestParamMinPrice: &f.MinPrice,
		constant.RequestParamMaxPrice: &f.MaxPrice,
	} {
		value := query.Get(param)
		if value == constant.Empty {
			continue
		}

		price, err := decimal.NewFromString(value)
		if err != nil {
			return failure.BadRequestFromString(param + " must be a number")
		}

		*target = &price
	}

	if value := query.Get(constant.RequestParamGuests); value != constant.Empty {
		guests, err := decimal.NewFromString(value)
		if err != nil || !guests.IsInteger() {
			return failure.BadRequestFromString(constant.RequestParamGuests + " must be a whole number")
		}

		count := int(guests.IntPart())
		f.Guests = &count
	}

	return nil
}

// String renders the filter as a stable cache key component.
func (f RoomFilter) String() string {
	parts := []string{f.Type, f.CheckIn, f.CheckOut}

	for _, price := range []*decimal.Decimal{f.MinPrice, f.MaxPrice} {
		if price == nil {
			parts = append(parts, constant.Empty)

			continue
		}

		parts = append(parts, price.String())
	}

	if f.Guests != nil {
		parts = append(parts, strconv.Itoa(*f.Guests))
	}

	return strings.Join(parts, "|")
}

func (f *RoomFilter) IsEmpty() bool {
	return f.Type == constant.Empty && f.MinPrice == nil && f.MaxPrice == nil && f.Guests == nil &&
		f.CheckIn == constant.Empty && f.CheckOut == constant.Empty
}

// ToFilterGroup ANDs every supplied criterion. Any stay date restricts the result to available rooms;
// the dates themselves are not checked against bookings.
func (f *RoomFilter) ToFilterGroup() gDto.FilterGroup {
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	add := func(field, operator string, value any) {
		group.Filters = append(group.Filters, gDto.Filter{
			ArgName:  operator + "_" + field,
			Field:    field,
			Operator: operator,
			Value:    value,
			Table:    model.TableName,
		})
	}

	if f.Type != constant.Empty {
		add(model.FieldType, gDto.FilterOperatorEq, f.Type)
	}

	if f.MinPrice != nil {
		add(model.FieldPrice, gDto.FilterOperatorGreaterEq, *f.MinPrice)
	}

	if f.MaxPrice != nil {
		add(model.FieldPrice, gDto.FilterOperatorLessEq, *f.MaxPrice)
	}

	if f.Guests != nil {
		add(model.FieldMaxOccupancy, gDto.FilterOperatorGreaterEq, *f.Guests)
	}

	if f.CheckIn != constant.Empty || f.CheckOut != constant.Empty {
		add(model.FieldIsAvailable, gDto.FilterOperatorEq, true)
	}

	return group
}

type RoomResponse struct {
	ID           string          `json:"_id"`
	RoomNumber   string          `json:"roomNumber"`
	Type         string          `json:"type"`
	Price        decimal.Decimal `json:"price"`
	Amenities    []string        `json:"amenities"`
	MaxOccupancy int             `json:"maxOccupancy"`
	IsAvailable  bool            `json:"isAvailable"`
	Description  string          `json:"description"`
	Images       []string        `json:"images"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.RoomNumber = model.RoomNumber
	r.Type = model.Type
	r.Price = model.Price
	r.Amenities = append([]string{}, model.Amenities...)
	r.MaxOccupancy = model.MaxOccupancy
	r.IsAvailable = model.IsAvailable
	r.Description = model.Description
	r.Images = append([]string{}, model.Images...)
	r.Metadata.FromModel(model.Metadata)
}

func FromModels(models []model.Room) []RoomResponse {
	res := make([]RoomResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}
