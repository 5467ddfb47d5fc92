package shared_test

import (
	"context"
	"errors"
	"testing"

	"hotel/shared"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	"hotel/shared/dto"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *bool
	}{
		{name: "empty string returns nil", input: "", expected: nil},
		{name: "true", input: "true", expected: boolPtr(true)},
		{name: "false", input: "false", expected: boolPtr(false)},
		{name: "1", input: "1", expected: boolPtr(true)},
		{name: "invalid returns nil", input: "maybe", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.ConvertStringToBool(tt.input))
		})
	}
}

func TestConvertStringToInt(t *testing.T) {
	value, err := shared.ConvertStringToInt(" 42 ")
	assert.NoError(t, err)
	assert.Equal(t, 42, value)

	_, err = shared.ConvertStringToInt("four")
	assert.Error(t, err)
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "zero total returns 1", total: 0, limit: 10, expected: 1},
		{name: "zero limit returns 1", total: 100, limit: 0, expected: 1},
		{name: "exact division", total: 100, limit: 10, expected: 10},
		{name: "division with remainder", total: 101, limit: 10, expected: 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestTransformFields(t *testing.T) {
	type statusUpdate struct {
		Status  string `db:"status"`
		Note    string `db:"note"`
		Ignored string
	}

	result := shared.TransformFields(statusUpdate{Status: "confirmed", Ignored: "x"})

	assert.Equal(t, "confirmed", result["status"])
	assert.NotContains(t, result, "note")
	assert.NotContains(t, result, "Ignored")
	assert.Contains(t, result, constant.FieldUpdatedAt)
}

func TestFilterByID(t *testing.T) {
	result := shared.FilterByID("room-1", "id", "rooms")

	assert.Equal(t, dto.FilterGroupOperatorAnd, result.Operator)
	assert.Len(t, result.Filters, 1)

	filter, ok := result.Filters[0].(dto.Filter)
	assert.True(t, ok)
	assert.Equal(t, dto.Filter{Field: "id", Value: "room-1", Operator: dto.FilterOperatorEq, Table: "rooms"}, filter)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "room:get:room-1", shared.BuildCacheKey("room:get", "room-1"))
	assert.Equal(t, "room:get", shared.BuildCacheKey("room:get"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	type query struct {
		Type   string
		Guests int
	}

	first := shared.BuildCacheKeyWithQuery("room:list", query{Type: "suite", Guests: 2})
	second := shared.BuildCacheKeyWithQuery("room:list", query{Type: "suite", Guests: 2})
	other := shared.BuildCacheKeyWithQuery("room:list", query{Type: "suite", Guests: 3})

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.Contains(t, first, "room:list:")
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Clear(gomock.Any(), "room:list:*").Return(nil)
	shared.InvalidateCaches(context.Background(), mockCache, "room:list")

	mockCache.EXPECT().Clear(gomock.Any(), "room:get:*").Return(errors.New("redis down"))
	shared.InvalidateCaches(context.Background(), mockCache, "room:get")
}

func boolPtr(b bool) *bool {
	return &b
}
