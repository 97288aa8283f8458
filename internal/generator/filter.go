package generator

import (
	"fmt"
	"strings"

	"github.com/mcpswag/mcpswag/internal/spec"
)

// TooManyOperationsError is returned when the operation count exceeds the
// configured cap, before or after filtering.
type TooManyOperationsError struct {
	Count    int
	Max      int
	Filtered bool
}

func (e *TooManyOperationsError) Error() string {
	if e.Filtered {
		return fmt.Sprintf("after filtering, %d operations remain, which exceeds the maximum of %d; use --tag or --path-filter to further reduce the number of operations", e.Count, e.Max)
	}
	return fmt.Sprintf("this specification contains %d operations, which exceeds the maximum of %d; use --tag or --path-filter to reduce the number of operations", e.Count, e.Max)
}

// FilterOperations applies the tag and path filters from opts and enforces
// the operation cap. When both filter kinds are supplied an operation is kept
// if either matches; when only one kind is supplied, only that kind's match
// is required.
func FilterOperations(ops []spec.Operation, opts Options) ([]spec.Operation, error) {
	hasTags := len(opts.Tags) > 0
	hasPaths := len(opts.PathFilters) > 0

	if !hasTags && !hasPaths {
		if opts.MaxOperations > 0 && len(ops) > opts.MaxOperations {
			return nil, &TooManyOperationsError{Count: len(ops), Max: opts.MaxOperations}
		}
		return ops, nil
	}

	var filtered []spec.Operation
	for _, op := range ops {
		tagMatch := hasTags && tagsIntersect(op.Tags, opts.Tags)
		pathMatch := hasPaths && pathMatches(op.Path, opts.PathFilters)

		switch {
		case hasTags && hasPaths:
			if tagMatch || pathMatch {
				filtered = append(filtered, op)
			}
		case hasTags:
			if tagMatch {
				filtered = append(filtered, op)
			}
		default:
			if pathMatch {
				filtered = append(filtered, op)
			}
		}
	}

	if opts.MaxOperations > 0 && len(filtered) > opts.MaxOperations {
		return nil, &TooManyOperationsError{Count: len(filtered), Max: opts.MaxOperations, Filtered: true}
	}
	return filtered, nil
}

func tagsIntersect(opTags, filterTags []string) bool {
	for _, ft := range filterTags {
		for _, t := range opTags {
			if t == ft {
				return true
			}
		}
	}
	return false
}

// pathMatches reports whether path matches any filter as a proper path
// prefix: exact match, or the filter followed by "/". Filter "/users" matches
// "/users" and "/users/{id}" but not "/usersabc".
func pathMatches(path string, filters []string) bool {
	for _, pf := range filters {
		if !strings.HasPrefix(pf, "/") {
			pf = "/" + pf
		}
		if path == pf || strings.HasPrefix(path, pf+"/") {
			return true
		}
	}
	return false
}
