package cli

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/roster/pkg/types"
)

// parseFilters turns list arguments into filters:
//
//	key=value   equals
//	key~value   contains (sequence fields)
//	key=a,b,c   any of
func parseFilters(args []string) ([]types.Filter, error) {
	filters := make([]types.Filter, 0, len(args))
	for _, arg := range args {
		if key, value, ok := strings.Cut(arg, "~"); ok && !strings.Contains(key, "=") {
			if key == "" {
				return nil, fmt.Errorf("%w: %q (expected key~value)", types.ErrInvalidFilter, arg)
			}
			filters = append(filters, types.Contains(key, value))
			continue
		}
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q (expected key=value, key=a,b or key~value)", types.ErrInvalidFilter, arg)
		}
		if strings.Contains(value, ",") {
			filters = append(filters, types.AnyOf(key, strings.Split(value, ",")...))
			continue
		}
		filters = append(filters, types.Equals(key, value))
	}
	return filters, nil
}
