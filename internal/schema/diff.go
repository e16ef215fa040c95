package schema

import "sort"

// DiffResult partitions the columns of two table structures into three
// disjoint, lexicographically sorted sets. Columns present on both sides
// with equal type, nullability and default fall into none of them.
type DiffResult struct {
	OnlyInMine  []string // columns present only in the first structure
	OnlyInOther []string // columns present only in the second structure
	Differing   []string // columns present in both but structurally unequal
}

// HasChanges reports whether the diff found anything at all.
func (r DiffResult) HasChanges() bool {
	return len(r.OnlyInMine) > 0 || len(r.OnlyInOther) > 0 || len(r.Differing) > 0
}

// Diff compares two table structures column by column. It is a pure
// function: no I/O, inputs are never mutated. Equality consults Type,
// Nullable and Default only; Key, Extra and Comment are informational and
// never make a column differ. Swapping the arguments swaps OnlyInMine and
// OnlyInOther.
func Diff(mine, other TableStructure) DiffResult {
	var result DiffResult

	for name, attrs := range mine {
		otherAttrs, ok := other[name]
		if !ok {
			result.OnlyInMine = append(result.OnlyInMine, name)
			continue
		}
		if !attributesEqual(attrs, otherAttrs) {
			result.Differing = append(result.Differing, name)
		}
	}
	for name := range other {
		if _, ok := mine[name]; !ok {
			result.OnlyInOther = append(result.OnlyInOther, name)
		}
	}

	sort.Strings(result.OnlyInMine)
	sort.Strings(result.OnlyInOther)
	sort.Strings(result.Differing)
	return result
}

func attributesEqual(a, b ColumnAttributes) bool {
	if a.Type != b.Type || a.Nullable != b.Nullable {
		return false
	}
	return defaultOrNull(a.Default) == defaultOrNull(b.Default)
}

// defaultOrNull folds the two spellings of "no default" into one value.
func defaultOrNull(d string) string {
	if d == "" {
		return "NULL"
	}
	return d
}
