package types

import (
	"fmt"
	"slices"
)

// Filter operators.
const (
	OpEquals   = "equals"
	OpContains = "contains"
	OpAnyOf    = "anyOf"
)

// Filter is a single predicate over one field of a row. Filters passed
// together to a Table are ANDed.
type Filter struct {
	Key    string
	Op     string
	Values []string
}

// Equals matches rows whose scalar field key equals value.
func Equals(key, value string) Filter {
	return Filter{Key: key, Op: OpEquals, Values: []string{value}}
}

// Contains matches rows whose sequence field key holds value.
func Contains(key, value string) Filter {
	return Filter{Key: key, Op: OpContains, Values: []string{value}}
}

// AnyOf matches rows whose scalar field key equals one of values.
func AnyOf(key string, values ...string) Filter {
	return Filter{Key: key, Op: OpAnyOf, Values: values}
}

// Validate checks the filter's shape without looking at any row.
func (f Filter) Validate() error {
	if f.Key == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidFilter)
	}
	switch f.Op {
	case OpEquals, OpContains:
		if len(f.Values) != 1 {
			return fmt.Errorf("%w: %s on %q takes one value, got %d", ErrInvalidFilter, f.Op, f.Key, len(f.Values))
		}
	case OpAnyOf:
	default:
		return fmt.Errorf("%w: unknown operator %q", ErrInvalidFilter, f.Op)
	}
	return nil
}

func (f Filter) String() string {
	return fmt.Sprintf("%s %s %v", f.Key, f.Op, f.Values)
}

// Match reports whether row satisfies every filter. An unknown key, or an
// operator used against the wrong field shape, returns ErrInvalidFilter.
func Match[T Entity[T]](row T, filters []Filter) (bool, error) {
	for _, f := range filters {
		if err := f.Validate(); err != nil {
			return false, err
		}
		v, ok := row.Field(f.Key)
		if !ok {
			return false, fmt.Errorf("%w: unknown field %q", ErrInvalidFilter, f.Key)
		}
		matched, err := matchValue(f, v)
		if err != nil {
			return false, err
		}
		if !matched {
			return false, nil
		}
	}
	return true, nil
}

func matchValue(f Filter, v any) (bool, error) {
	switch f.Op {
	case OpEquals:
		s, ok := v.(string)
		if !ok {
			return false, fmt.Errorf("%w: %q is not a scalar field", ErrInvalidFilter, f.Key)
		}
		return s == f.Values[0], nil
	case OpAnyOf:
		s, ok := v.(string)
		if !ok {
			return false, fmt.Errorf("%w: %q is not a scalar field", ErrInvalidFilter, f.Key)
		}
		return slices.Contains(f.Values, s), nil
	default:
		seq, ok := v.([]string)
		if !ok {
			return false, fmt.Errorf("%w: %q is not a sequence field", ErrInvalidFilter, f.Key)
		}
		return slices.Contains(seq, f.Values[0]), nil
	}
}
