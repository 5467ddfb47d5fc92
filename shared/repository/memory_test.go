package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	otelMocks "hotel/infras/otel/mocks"
	"hotel/shared/dto"
	"hotel/shared/model"

	"github.com/google/go-cmp/cmp"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type suite struct {
	ID        string          `db:"id"`
	Kind      string          `db:"kind"`
	Price     decimal.Decimal `db:"price"`
	Capacity  int             `db:"capacity"`
	Available bool            `db:"available"`
	Tags      pq.StringArray  `db:"tags"`
	model.Metadata
}

func eq(field string, value any) dto.Filter {
	return dto.Filter{Field: field, Value: value, Operator: dto.FilterOperatorEq}
}

func and(filters ...any) dto.FilterGroup {
	return dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd, Filters: filters}
}

func seededMemory(t *testing.T) *Memory[suite] {
	t.Helper()

	mem := NewMemory[suite]("suite", "id", otelMocks.NewOtel())
	created := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	rows := []suite{
		{ID: "a", Kind: "single", Price: decimal.NewFromInt(120), Capacity: 1, Available: true, Tags: pq.StringArray{"WiFi"}, Metadata: model.NewMetadata(created)},
		{ID: "b", Kind: "double", Price: decimal.NewFromInt(180), Capacity: 2, Available: false, Metadata: model.NewMetadata(created.AddDate(0, 1, 0))},
		{ID: "c", Kind: "double", Price: decimal.NewFromInt(180), Capacity: 2, Available: true, Metadata: model.NewMetadata(created.AddDate(0, 2, 0))},
		{ID: "d", Kind: "suite", Price: decimal.NewFromInt(350), Capacity: 4, Available: true, Metadata: model.NewMetadata(created.AddDate(0, 3, 0))},
	}

	for _, row := range rows {
		require.NoError(t, mem.Insert(context.Background(), row))
	}

	return mem
}

func ids(rows []suite) []string {
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = row.ID
	}

	return out
}

func TestMemory_InsertDuplicate(t *testing.T) {
	mem := seededMemory(t)

	err := mem.Insert(context.Background(), suite{ID: "a"})
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestMemory_GetAll(t *testing.T) {
	mem := seededMemory(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		params dto.QueryParams
		filter dto.FilterGroup
		want   []string
	}{
		{name: "no filter keeps insertion order", want: []string{"a", "b", "c", "d"}},
		{name: "eq", filter: and(eq("kind", "double")), want: []string{"b", "c"}},
		{name: "and", filter: and(eq("kind", "double"), eq("available", true)), want: []string{"c"}},
		{
			name: "or",
			filter: dto.FilterGroup{Operator: dto.FilterGroupOperatorOr, Filters: []any{
				eq("kind", "single"), eq("kind", "suite"),
			}},
			want: []string{"a", "d"},
		},
		{
			name: "decimal range against int",
			filter: and(
				dto.Filter{Field: "price", Value: 150, Operator: dto.FilterOperatorGreaterEq},
				dto.Filter{Field: "price", Value: decimal.NewFromInt(180), Operator: dto.FilterOperatorLessEq},
			),
			want: []string{"b", "c"},
		},
		{name: "in", filter: and(dto.Filter{Field: "id", Value: []string{"d", "a"}, Operator: dto.FilterOperatorIn}), want: []string{"a", "d"}},
		{name: "like is case insensitive", filter: and(dto.Filter{Field: "kind", Value: "SUI", Operator: dto.FilterOperatorLike}), want: []string{"d"}},
		{name: "not eq", filter: and(dto.Filter{Field: "kind", Value: "double", Operator: dto.FilterOperatorNotEq}), want: []string{"a", "d"}},
		{
			name:   "created at range",
			filter: and(dto.Filter{Field: "created_at", Value: time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC), Operator: dto.FilterOperatorGreaterEq}),
			want:   []string{"c", "d"},
		},
		{name: "pagination", params: dto.QueryParams{Page: 2, Limit: 3}, want: []string{"d"}},
		{name: "page past end", params: dto.QueryParams{Page: 3, Limit: 3}, want: []string{}},
		{name: "sort desc", params: dto.QueryParams{SortBy: "capacity", SortDir: dto.SortDirDesc}, want: []string{"d", "b", "c", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := mem.GetAll(ctx, tt.params, tt.filter)
			require.NoError(t, err)

			if diff := cmp.Diff(tt.want, ids(rows)); diff != "" {
				t.Errorf("GetAll() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMemory_GetReturnsFirstMatchOrZero(t *testing.T) {
	mem := seededMemory(t)
	ctx := context.Background()

	row, err := mem.Get(ctx, and(eq("kind", "double")))
	require.NoError(t, err)
	assert.Equal(t, "b", row.ID)

	row, err = mem.Get(ctx, and(eq("id", "missing")))
	require.NoError(t, err)
	assert.Empty(t, row.ID)

	_, err = mem.Get(ctx, and(eq("unknown", "x")))
	assert.ErrorIs(t, err, errUnknownColumn)
}

func TestMemory_RowsAreCopies(t *testing.T) {
	mem := seededMemory(t)
	ctx := context.Background()

	row, err := mem.Get(ctx, and(eq("id", "a")))
	require.NoError(t, err)

	row.Tags[0] = "changed"
	row.Kind = "changed"

	again, err := mem.Get(ctx, and(eq("id", "a")))
	require.NoError(t, err)
	assert.Equal(t, pq.StringArray{"WiFi"}, again.Tags)
	assert.Equal(t, "single", again.Kind)
}

func TestMemory_Update(t *testing.T) {
	mem := seededMemory(t)
	ctx := context.Background()

	available := false
	capacity := int64(3)

	err := mem.Update(ctx, map[string]any{
		"available": &available,
		"capacity":  capacity,
		"price":     decimal.RequireFromString("99.50"),
		"tags":      pq.StringArray{"TV"},
	}, and(eq("id", "a")))
	require.NoError(t, err)

	row, err := mem.Get(ctx, and(eq("id", "a")))
	require.NoError(t, err)
	assert.False(t, row.Available)
	assert.Equal(t, 3, row.Capacity)
	assert.True(t, row.Price.Equal(decimal.RequireFromString("99.5")))
	assert.Equal(t, pq.StringArray{"TV"}, row.Tags)

	err = mem.Update(ctx, map[string]any{"capacity": "three"}, and(eq("id", "a")))
	assert.ErrorIs(t, err, errIncompatibleValue)

	err = mem.Update(ctx, map[string]any{"capacity": 1}, dto.FilterGroup{})
	assert.ErrorIs(t, err, errRequiredFilter)
}

func TestMemory_DeleteExistCount(t *testing.T) {
	mem := seededMemory(t)
	ctx := context.Background()

	count, err := mem.Count(ctx, and(eq("kind", "double")))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, mem.Delete(ctx, and(eq("id", "b"))))

	exist, err := mem.Exist(ctx, and(eq("id", "b")))
	require.NoError(t, err)
	assert.False(t, exist)

	rows, err := mem.GetAll(ctx, dto.QueryParams{}, dto.FilterGroup{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "d"}, ids(rows))

	_, err = mem.Exist(ctx, dto.FilterGroup{})
	assert.ErrorIs(t, err, errRequiredFilter)

	assert.ErrorIs(t, mem.Delete(ctx, dto.FilterGroup{}), errRequiredFilter)
}

func TestRepository_BuildWhereClauseAndOrdering(t *testing.T) {
	repo := NewRepository[suite]("suite", "suites", "id", nil, otelMocks.NewOtel())

	where, args := repo.BuildWhereClause(and(dto.Filter{Field: "kind", Value: "double", Operator: dto.FilterOperatorEq, Table: "suites"}))
	assert.Equal(t, " WHERE (suites.kind = :kind) ", where)
	assert.Equal(t, map[string]any{"kind": "double"}, args)

	assert.Equal(t, "ORDER BY capacity DESC", repo.ordering(dto.QueryParams{SortBy: "capacity", SortDir: dto.SortDirDesc}))
	assert.Empty(t, repo.ordering(dto.QueryParams{SortBy: "1; DROP TABLE suites", SortDir: dto.SortDirAsc}))
	assert.Contains(t, repo.InsertColumns, "created_at")
	assert.Equal(t, "suites.id, suites.kind", repo.getSelectQuery("id", "kind"))
}

func TestIsDuplicate(t *testing.T) {
	mem := NewMemory[suite]("suite", "id", otelMocks.NewOtel())
	require.NoError(t, mem.Insert(context.Background(), suite{ID: "a"}))

	assert.True(t, IsDuplicate(mem.Insert(context.Background(), suite{ID: "a"})))
	assert.True(t, IsDuplicate(fmt.Errorf("failed to insert data (user): %w", &pq.Error{Code: "23505"})))
	assert.False(t, IsDuplicate(&pq.Error{Code: "23503"}))
	assert.False(t, IsDuplicate(errors.New("db down")))
}
