package dto

import (
	"hotel/internal/domains/user/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
)

// UserResponse is the public view of a user; the password hash is never serialized.
type UserResponse struct {
	ID        string `json:"_id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Email = model.Email
	r.FirstName = model.FirstName
	r.LastName = model.LastName
	r.Role = model.Role
	r.Metadata.FromModel(model.Metadata)
}

func FromModels(models []model.User) []UserResponse {
	res := make([]UserResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	Total     int            `json:"total"`
	TotalPage int            `json:"totalPage"`
}

func (r *GetUsersResponse) FromModels(models []model.User, total, limit int) {
	r.Users = FromModels(models)
	r.Total = total
	r.TotalPage = shared.CalculateTotalPage(total, limit)
}
