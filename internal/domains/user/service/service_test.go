package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hotel/config"
	"hotel/infras/otel/mocks"
	userMocks "hotel/internal/domains/user/mocks"
	"hotel/internal/domains/user/model"
	"hotel/internal/domains/user/service"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gModel "hotel/shared/model"
)

func TestUserService_Get(t *testing.T) {
	user := model.User{
		ID:        "customer-1",
		Email:     "john@example.com",
		Password:  "hash",
		FirstName: "John",
		LastName:  "Doe",
		Role:      constant.RoleCustomer,
		Metadata:  gModel.NewMetadata(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
	}

	tests := []struct {
		name       string
		setupMock  func(repo *userMocks.MockUser)
		wantReason string
	}{
		{
			name: "found",
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
			},
		},
		{
			name: "missing",
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)
			},
			wantReason: failure.ReasonNotFound,
		},
		{
			name: "repository error",
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, errors.New("db down"))
			},
			wantReason: failure.ReasonInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			otl := mocks.NewOtel()
			repo := userMocks.NewMockUser(ctrl)
			tt.setupMock(repo)

			svc := service.New(repo, &config.Config{}, cache.NewRedisCache(nil, otl), otl)

			res, err := svc.Get(context.Background(), "customer-1")
			if tt.wantReason != "" {
				assert.Equal(t, tt.wantReason, failure.GetReason(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "John", res.FirstName)
			assert.Equal(t, "2024-01-01T00:00:00Z", res.CreatedAt)
		})
	}
}

func TestUserService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	otl := mocks.NewOtel()
	repo := userMocks.NewMockUser(ctrl)

	params := gDto.QueryParams{Page: 1, Limit: 1}

	repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
	repo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).Return([]model.User{{ID: "admin-1", Role: constant.RoleAdmin}}, nil)

	svc := service.New(repo, &config.Config{}, cache.NewRedisCache(nil, otl), otl)

	res, err := svc.GetAll(context.Background(), params)
	assert.NoError(t, err)
	assert.Len(t, res.Users, 1)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 2, res.TotalPage)
}
