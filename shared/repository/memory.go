package repository

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"
	"time"

	"hotel/infras/otel"
	"hotel/shared/constant"
	"hotel/shared/dto"

	"github.com/shopspring/decimal"
)

var (
	ErrDuplicateKey      = errors.New("duplicate primary key")
	errUnknownColumn     = errors.New("unknown column")
	errIncompatibleValue = errors.New("incompatible column value")
	errUnsupportedFilter = errors.New("unsupported filter operator")
)

// Memory keeps rows in insertion order, keyed by the primary column. Filters are evaluated
// against the db tags of T, so the same FilterGroup works for both stores.
type Memory[T any] struct {
	mu            sync.RWMutex
	otel          otel.Otel
	entity        string
	primaryColumn string
	fields        map[string][]int
	keys          []string
	rows          map[string]T
}

func NewMemory[T any](entityName, primaryColumn string, otl otel.Otel) *Memory[T] {
	var zero T

	fields := map[string][]int{}
	indexFields(reflect.TypeOf(zero), nil, fields)

	return &Memory[T]{
		otel:          otl,
		entity:        entityName,
		primaryColumn: primaryColumn,
		fields:        fields,
		rows:          map[string]T{},
	}
}

func indexFields(typ reflect.Type, parent []int, fields map[string][]int) {
	for i := range typ.NumField() {
		field := typ.Field(i)
		index := append(slices.Clone(parent), i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			indexFields(field.Type, index, fields)

			continue
		}

		if tag := field.Tag.Get("db"); tag != "" && tag != "-" {
			fields[tag] = index
		}
	}
}

func (m *Memory[T]) spanName(operation string) string {
	return fmt.Sprintf("%s.%s.memory.%s", constant.OtelRepositoryScopeName, m.entity, operation)
}

func (m *Memory[T]) Insert(ctx context.Context, model T) (err error) {
	_, scope := m.otel.NewScope(ctx, constant.OtelRepositoryScopeName, m.spanName("Insert"))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	key, err := m.primaryKey(model)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.rows[key]; ok {
		return fmt.Errorf("failed to insert data (%s): %w", m.entity, ErrDuplicateKey)
	}

	m.keys = append(m.keys, key)
	m.rows[key] = cloneRow(model)

	return nil
}

func (m *Memory[T]) Get(ctx context.Context, filter dto.FilterGroup, _ ...string) (model T, err error) {
	_, scope := m.otel.NewScope(ctx, constant.OtelRepositoryScopeName, m.spanName("Get"))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, key := range m.keys {
		row := m.rows[key]

		ok, err := m.matchGroup(row, filter)
		if err != nil {
			return model, err
		}

		if ok {
			return cloneRow(row), nil
		}
	}

	return model, nil
}

func (m *Memory[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, _ ...string) (models []T, err error) {
	_, scope := m.otel.NewScope(ctx, constant.OtelRepositoryScopeName, m.spanName("GetAll"))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	m.mu.RLock()
	matched, err := m.filter(filter)
	m.mu.RUnlock()

	if err != nil {
		return nil, err
	}

	if index, ok := m.fields[params.SortBy]; ok && params.SortDir != "" {
		slices.SortStableFunc(matched, func(a, b T) int {
			cmp, _ := compare(fieldOf(a, index).Interface(), fieldOf(b, index).Interface())
			if params.SortDir == dto.SortDirDesc {
				return -cmp
			}

			return cmp
		})
	}

	return paginate(matched, params.Page, params.Limit), nil
}

func (m *Memory[T]) Exist(ctx context.Context, filter dto.FilterGroup) (exist bool, err error) {
	_, scope := m.otel.NewScope(ctx, constant.OtelRepositoryScopeName, m.spanName("Exist"))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if len(filter.Filters) == 0 {
		return false, errRequiredFilter
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	matched, err := m.filter(filter)
	if err != nil {
		return false, err
	}

	return len(matched) > 0, nil
}

func (m *Memory[T]) Count(ctx context.Context, filter dto.FilterGroup) (count int, err error) {
	_, scope := m.otel.NewScope(ctx, constant.OtelRepositoryScopeName, m.spanName("Count"))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	m.mu.RLock()
	defer m.mu.RUnlock()

	matched, err := m.filter(filter)
	if err != nil {
		return 0, err
	}

	return len(matched), nil
}

func (m *Memory[T]) Update(ctx context.Context, mod map[string]any, filter dto.FilterGroup) (err error) {
	_, scope := m.otel.NewScope(ctx, constant.OtelRepositoryScopeName, m.spanName("Update"))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if len(filter.Filters) == 0 {
		return errRequiredFilter
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	updated := map[string]T{}

	for _, key := range m.keys {
		row := m.rows[key]

		ok, err := m.matchGroup(row, filter)
		if err != nil {
			return err
		}

		if !ok {
			continue
		}

		for column, value := range mod {
			if err := m.set(&row, column, value); err != nil {
				return fmt.Errorf("failed to update data (%s): %w", m.entity, err)
			}
		}

		updated[key] = row
	}

	for key, row := range updated {
		m.rows[key] = row
	}

	return nil
}

func (m *Memory[T]) Delete(ctx context.Context, filter dto.FilterGroup) (err error) {
	_, scope := m.otel.NewScope(ctx, constant.OtelRepositoryScopeName, m.spanName("Delete"))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if len(filter.Filters) == 0 {
		return errRequiredFilter
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	kept := make([]string, 0, len(m.keys))

	for _, key := range m.keys {
		ok, err := m.matchGroup(m.rows[key], filter)
		if err != nil {
			return err
		}

		if ok {
			delete(m.rows, key)

			continue
		}

		kept = append(kept, key)
	}

	m.keys = kept

	return nil
}

func (m *Memory[T]) filter(filter dto.FilterGroup) ([]T, error) {
	matched := []T{}

	for _, key := range m.keys {
		row := m.rows[key]

		ok, err := m.matchGroup(row, filter)
		if err != nil {
			return nil, err
		}

		if ok {
			matched = append(matched, cloneRow(row))
		}
	}

	return matched, nil
}

func (m *Memory[T]) primaryKey(model T) (string, error) {
	index, ok := m.fields[m.primaryColumn]
	if !ok {
		return "", fmt.Errorf("%w: %s", errUnknownColumn, m.primaryColumn)
	}

	return fmt.Sprint(fieldOf(model, index).Interface()), nil
}

func (m *Memory[T]) matchGroup(row T, group dto.FilterGroup) (bool, error) {
	if len(group.Filters) == 0 {
		return true, nil
	}

	isOr := strings.EqualFold(group.Operator, dto.FilterGroupOperatorOr)

	for _, item := range group.Filters {
		var (
			ok  bool
			err error
		)

		switch filter := item.(type) {
		case dto.Filter:
			ok, err = m.match(row, filter)
		case dto.FilterGroup:
			ok, err = m.matchGroup(row, filter)
		default:
			continue
		}

		if err != nil {
			return false, err
		}

		if isOr && ok {
			return true, nil
		}

		if !isOr && !ok {
			return false, nil
		}
	}

	return !isOr, nil
}

func (m *Memory[T]) match(row T, filter dto.Filter) (bool, error) {
	index, ok := m.fields[filter.Field]
	if !ok {
		return false, fmt.Errorf("%w: %s", errUnknownColumn, filter.Field)
	}

	field := fieldOf(row, index)
	value := field.Interface()

	switch filter.Operator {
	case dto.FilterOperatorEq:
		return equal(value, filter.Value), nil
	case dto.FilterOperatorNotEq:
		return !equal(value, filter.Value), nil
	case dto.FilterOperatorLike:
		return strings.Contains(strings.ToLower(fmt.Sprint(value)), strings.ToLower(fmt.Sprint(filter.Value))), nil
	case dto.FilterOperatorIn:
		candidates := reflect.ValueOf(filter.Value)
		if candidates.Kind() != reflect.Slice && candidates.Kind() != reflect.Array {
			return false, fmt.Errorf("%w: in expects a slice", errIncompatibleValue)
		}

		for i := range candidates.Len() {
			if equal(value, candidates.Index(i).Interface()) {
				return true, nil
			}
		}

		return false, nil
	case dto.FilterOperatorLessEq:
		cmp, ok := compare(value, filter.Value)

		return ok && cmp <= 0, nil
	case dto.FilterOperatorGreaterEq:
		cmp, ok := compare(value, filter.Value)

		return ok && cmp >= 0, nil
	default:
		return false, fmt.Errorf("%w: %s", errUnsupportedFilter, filter.Operator)
	}
}

func (m *Memory[T]) set(row *T, column string, value any) error {
	index, ok := m.fields[column]
	if !ok {
		return fmt.Errorf("%w: %s", errUnknownColumn, column)
	}

	field := reflect.ValueOf(row).Elem().FieldByIndex(index)

	if value == nil {
		field.SetZero()

		return nil
	}

	val := reflect.ValueOf(value)
	for val.Kind() == reflect.Pointer && field.Kind() != reflect.Pointer {
		if val.IsNil() {
			field.SetZero()

			return nil
		}

		val = val.Elem()
	}

	switch {
	case val.Type().AssignableTo(field.Type()):
		field.Set(val)
	case val.Type().ConvertibleTo(field.Type()):
		field.Set(val.Convert(field.Type()))
	default:
		return fmt.Errorf("%w: %s cannot hold %s", errIncompatibleValue, column, val.Type())
	}

	return nil
}

func fieldOf[T any](row T, index []int) reflect.Value {
	return reflect.ValueOf(row).FieldByIndex(index)
}

// cloneRow copies slice fields so callers cannot mutate stored rows.
func cloneRow[T any](row T) T {
	clone := reflect.New(reflect.TypeOf(row)).Elem()
	clone.Set(reflect.ValueOf(row))
	cloneSlices(clone)

	return clone.Interface().(T) //nolint:forcetypeassert
}

func cloneSlices(value reflect.Value) {
	for i := range value.NumField() {
		field := value.Field(i)
		if !field.CanSet() {
			continue
		}

		switch field.Kind() {
		case reflect.Slice:
			if field.IsNil() {
				continue
			}

			copied := reflect.MakeSlice(field.Type(), field.Len(), field.Len())
			reflect.Copy(copied, field)
			field.Set(copied)
		case reflect.Struct:
			cloneSlices(field)
		default:
		}
	}
}

func paginate[T any](rows []T, page, limit int) []T {
	if limit <= 0 {
		return rows
	}

	offset := 0
	if page > 0 {
		offset = (page - 1) * limit
	}

	if offset >= len(rows) {
		return []T{}
	}

	return rows[offset:min(offset+limit, len(rows))]
}

func equal(a, b any) bool {
	if cmp, ok := compare(a, b); ok {
		return cmp == 0
	}

	return reflect.DeepEqual(a, b)
}

// compare orders two column values. The second result is false when they are not comparable.
func compare(a, b any) (int, bool) {
	switch left := a.(type) {
	case decimal.Decimal:
		right, ok := toDecimal(b)
		if !ok {
			return 0, false
		}

		return left.Cmp(right), true
	case time.Time:
		right, ok := b.(time.Time)
		if !ok {
			return 0, false
		}

		return left.Compare(right), true
	case string:
		right, ok := b.(string)
		if !ok {
			return 0, false
		}

		return strings.Compare(left, right), true
	case bool:
		right, ok := b.(bool)
		if !ok || left == right {
			return 0, ok
		}

		if !left {
			return -1, true
		}

		return 1, true
	}

	left, leftOK := toDecimal(a)
	right, rightOK := toDecimal(b)

	if !leftOK || !rightOK {
		return 0, false
	}

	return left.Cmp(right), true
}

func toDecimal(value any) (decimal.Decimal, bool) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v, true
	case *decimal.Decimal:
		if v == nil {
			return decimal.Zero, false
		}

		return *v, true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int32:
		return decimal.NewFromInt32(v), true
	case int64:
		return decimal.NewFromInt(v), true
	case float64:
		return decimal.NewFromFloat(v), true
	case string:
		d, err := decimal.NewFromString(v)

		return d, err == nil
	default:
		return decimal.Zero, false
	}
}
