package dto_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel/shared/constant"
	"hotel/shared/dto"
	"hotel/shared/model"
	"hotel/shared/timezone"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	updatedAt := time.Date(2024, 1, 16, 18, 0, 0, 0, time.UTC)

	metadata := dto.Metadata{}
	metadata.FromModel(model.Metadata{CreatedAt: createdAt, UpdatedAt: updatedAt})

	assert.Equal(t, timezone.Format(createdAt, constant.DateTimeFormat), metadata.CreatedAt)
	assert.Equal(t, timezone.Format(updatedAt, constant.DateTimeFormat), metadata.UpdatedAt)
}

func TestQueryParams_FromRequest(t *testing.T) {
	defaults := dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit}

	tests := []struct {
		name     string
		query    string
		defaults bool
		expected dto.QueryParams
	}{
		{
			name:     "all parameters",
			query:    "page=2&limit=20&sort_by=email&sort_dir=desc",
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "email", SortDir: dto.SortDirDesc},
		},
		{name: "empty with defaults", defaults: true, expected: defaults},
		{name: "empty without defaults", expected: dto.QueryParams{}},
		{name: "malformed numbers fall back", query: "page=two&limit=-5", defaults: true, expected: defaults},
		{name: "unknown sort direction ignored", query: "sort_dir=sideways", expected: dto.QueryParams{}},
		{
			name:     "partial with defaults",
			query:    "page=3&sort_by=role",
			defaults: true,
			expected: dto.QueryParams{Page: 3, Limit: constant.DefaultValueLimit, SortBy: "role"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/users?"+tt.query, nil)

			params := dto.QueryParams{}
			params.FromRequest(req, tt.defaults)

			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestDecimal_MarshalsAsNumber(t *testing.T) {
	payload, err := json.Marshal(map[string]decimal.Decimal{"price": decimal.RequireFromString("120.50")})
	require.NoError(t, err)

	assert.JSONEq(t, `{"price":120.5}`, string(payload))
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		group     dto.FilterGroup
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name: "price range uses distinct binds",
			group: dto.FilterGroup{
				Operator: dto.FilterGroupOperatorAnd,
				Filters: []any{
					dto.Filter{ArgName: "min_price", Field: "price", Value: 100, Operator: dto.FilterOperatorGreaterEq, Table: "rooms"},
					dto.Filter{ArgName: "max_price", Field: "price", Value: 200, Operator: dto.FilterOperatorLessEq, Table: "rooms"},
				},
			},
			wantWhere: "(rooms.price >= :min_price AND rooms.price <= :max_price)",
			wantArgs:  map[string]any{"min_price": 100, "max_price": 200},
		},
		{
			name: "in expands each value",
			group: dto.FilterGroup{Filters: []any{
				dto.Filter{Field: "id", Value: []string{"room-1", "room-2"}, Operator: dto.FilterOperatorIn},
			}},
			wantWhere: "(id IN (:id_0, :id_1))",
			wantArgs:  map[string]any{"id_0": "room-1", "id_1": "room-2"},
		},
		{
			name: "empty in matches nothing",
			group: dto.FilterGroup{Filters: []any{
				dto.Filter{Field: "id", Value: []string{}, Operator: dto.FilterOperatorIn},
			}},
			wantWhere: "(FALSE)",
			wantArgs:  map[string]any{},
		},
		{
			name: "nested or group",
			group: dto.FilterGroup{
				Operator: dto.FilterGroupOperatorAnd,
				Filters: []any{
					dto.Filter{Field: "is_available", Value: true, Operator: dto.FilterOperatorEq},
					dto.FilterGroup{
						Operator: dto.FilterGroupOperatorOr,
						Filters: []any{
							dto.Filter{ArgName: "single", Field: "type", Value: "single", Operator: dto.FilterOperatorEq},
							dto.Filter{ArgName: "double", Field: "type", Value: "double", Operator: dto.FilterOperatorEq},
						},
					},
				},
			},
			wantWhere: "(is_available = :is_available AND (type = :single OR type = :double))",
			wantArgs:  map[string]any{"is_available": true, "single": "single", "double": "double"},
		},
		{
			name:      "unknown operator is skipped",
			group:     dto.FilterGroup{Filters: []any{dto.Filter{Field: "id", Value: 1, Operator: "between"}}},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.group.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
