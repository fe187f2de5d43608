// Package listing filters and sorts in-memory record lists for the client tables.
package listing

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// All disables the category filter.
const All = "all"

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

func ParseDirection(s string) Direction {
	if strings.EqualFold(s, string(Desc)) {
		return Desc
	}
	return Asc
}

type SortSpec struct {
	Key       string
	Direction Direction
}

// Toggle returns the spec after a click on column key: the same column flips
// asc to desc, anything else starts ascending.
func (s *SortSpec) Toggle(key string) SortSpec {
	if s != nil && s.Key == key && s.Direction == Asc {
		return SortSpec{Key: key, Direction: Desc}
	}
	return SortSpec{Key: key, Direction: Asc}
}

type Query struct {
	Search   string
	Category string
	Sort     *SortSpec
}

// Schema describes how a record type is filtered and sorted.
type Schema[T any] struct {
	Category        func(T) *string
	DefaultCategory string
	Search          []func(T) *string
	// Columns returns the sortable value of a column; nil means missing.
	Columns map[string]func(T) any
}

// Apply returns the records matching q in the requested order. items is not modified.
func (s Schema[T]) Apply(items []T, q Query) []T {
	out := make([]T, 0, len(items))

	term := strings.TrimSpace(q.Search)
	fold := cases.Fold()
	if term != "" {
		term = fold.String(term)
	}

	for _, item := range items {
		if !s.matchCategory(item, q.Category) {
			continue
		}
		if term != "" && !s.matchSearch(item, term, fold) {
			continue
		}
		out = append(out, item)
	}

	if q.Sort == nil || q.Sort.Key == "" {
		return out
	}
	col, ok := s.Columns[q.Sort.Key]
	if !ok {
		return out
	}
	desc := q.Sort.Direction == Desc
	sort.SliceStable(out, func(i, j int) bool {
		a, b := col(out[i]), col(out[j])
		// Missing values sort last in both directions.
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		}
		c := compare(a, b)
		if desc {
			return c > 0
		}
		return c < 0
	})
	return out
}

func (s Schema[T]) matchCategory(item T, category string) bool {
	if category == "" || category == All || s.Category == nil {
		return true
	}
	v := s.Category(item)
	got := s.DefaultCategory
	if v != nil && *v != "" {
		got = *v
	}
	return got == category
}

func (s Schema[T]) matchSearch(item T, term string, fold cases.Caser) bool {
	for _, field := range s.Search {
		v := field(item)
		if v == nil {
			continue
		}
		if strings.Contains(fold.String(*v), term) {
			return true
		}
	}
	return false
}

// Str adapts a nullable string column.
func Str(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

// Int adapts a nullable int column.
func Int(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func compare(a, b any) int {
	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y)
		}
	case int:
		if y, ok := b.(int); ok {
			return cmpOrdered(x, y)
		}
	case int64:
		if y, ok := b.(int64); ok {
			return cmpOrdered(x, y)
		}
	case float64:
		if y, ok := b.(float64); ok {
			return cmpOrdered(x, y)
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	case bool:
		if y, ok := b.(bool); ok {
			switch {
			case x == y:
				return 0
			case !x:
				return -1
			default:
				return 1
			}
		}
	}
	return 0
}

func cmpOrdered[N int | int64 | float64](a, b N) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
