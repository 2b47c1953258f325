package enum

import (
	"fmt"
	"reflect"
	"sort"
)

// registry is filled by package level var blocks, it is read-only once main
// starts.
var registry = map[reflect.Type]map[string]any{}

// New registers value as a member of its type and returns it unchanged.
func New[T ~string](value T) T {
	t := reflect.TypeOf(value)
	if _, ok := registry[t]; !ok {
		registry[t] = map[string]any{}
	}

	registry[t][string(value)] = value
	return value
}

// ToEnum returns the registered member of T whose string form is s.
func ToEnum[T ~string](s string) (T, error) {
	var defaultT T
	values, ok := registry[reflect.TypeOf(defaultT)]
	if !ok {
		return defaultT, fmt.Errorf("not found enum type %T", defaultT)
	}

	v, ok := values[s]
	if !ok {
		return defaultT, fmt.Errorf("not found value %q in enum %T, expected one of %v",
			s, defaultT, Values[T]())
	}

	return v.(T), nil
}

// Values lists every registered member of T in lexical order.
func Values[T ~string]() []T {
	var defaultT T
	values := registry[reflect.TypeOf(defaultT)]

	result := make([]T, 0, len(values))
	for _, v := range values {
		result = append(result, v.(T))
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })

	return result
}
