package dto

import (
	userModel "hotel/internal/domains/user/model"
	userDto "hotel/internal/domains/user/model/dto"
	"hotel/shared/constant"
	gModel "hotel/shared/model"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email     string `json:"email"          validate:"required,email"`
	Password  string `json:"password"       validate:"required"`
	FirstName string `json:"firstName"      validate:"required"`
	LastName  string `json:"lastName"       validate:"required"`
	Role      string `json:"role,omitempty" validate:"omitempty,oneof=admin customer"`
}

func (r *RegisterRequest) ToUserModel(hashedPassword string, metadata gModel.Metadata) userModel.User {
	role := r.Role
	if role == constant.Empty {
		role = constant.RoleCustomer
	}

	return userModel.User{
		ID:        uuid.NewString(),
		Email:     r.Email,
		Password:  hashedPassword,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Role:      role,
		Metadata:  metadata,
	}
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token string               `json:"token"`
	User  userDto.UserResponse `json:"user"`
}

func (a *AuthResponse) FromModel(token string, user userModel.User) {
	a.Token = token
	a.User.FromModel(user)
}
