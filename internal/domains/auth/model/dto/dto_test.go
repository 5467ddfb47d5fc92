package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hotel/internal/domains/auth/model/dto"
	userModel "hotel/internal/domains/user/model"
	"hotel/shared/constant"
	gModel "hotel/shared/model"
)

func TestRegisterRequest_ToUserModel(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		role     string
		wantRole string
	}{
		{name: "defaults to customer", role: "", wantRole: constant.RoleCustomer},
		{name: "keeps admin", role: constant.RoleAdmin, wantRole: constant.RoleAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := dto.RegisterRequest{
				Email:     "jane@example.com",
				Password:  "secret",
				FirstName: "Jane",
				LastName:  "Roe",
				Role:      tt.role,
			}

			user := req.ToUserModel("hashed", gModel.NewMetadata(now))

			assert.NotEmpty(t, user.ID)
			assert.Equal(t, "hashed", user.Password)
			assert.Equal(t, tt.wantRole, user.Role)
			assert.Equal(t, now, user.CreatedAt)
		})
	}
}

func TestAuthResponse_FromModel(t *testing.T) {
	var res dto.AuthResponse
	res.FromModel("token-1", userModel.User{
		ID:        "user-1",
		Email:     "jane@example.com",
		Password:  "hashed",
		FirstName: "Jane",
		LastName:  "Roe",
		Role:      constant.RoleCustomer,
	})

	assert.Equal(t, "token-1", res.Token)
	assert.Equal(t, "user-1", res.User.ID)
	assert.Equal(t, "Jane", res.User.FirstName)
}
