package aggregator

import (
	"sort"

	"mediareport/internal/models"
)

// Summary-shaped field names.
const (
	keyVolume       = "volume"
	keyReach        = "reach"
	keyAVE          = "ave"
	keyTotals       = "totals"
	keyMediaSummary = "mediaSummary"
)

// Aggregate walks root and returns the summed totals.
//
// A node counts itself when it has a nested totals object or any of
// volume/reach/ave/totals; it also counts its mediaSummary child. The
// mediaSummary subtree is never walked again, so each summary is counted once.
// Arrays are walked element by element but carry no fields of their own.
func Aggregate(root any) models.Totals {
	return walk(root, models.Totals{})
}

func walk(node any, acc models.Totals) models.Totals {
	switch n := node.(type) {
	case []any:
		for _, el := range n {
			acc = walk(el, acc)
		}

		return acc
	case []map[string]any:
		for _, el := range n {
			acc = walk(el, acc)
		}

		return acc
	}

	obj, ok := models.AsObject(node)
	if !ok {
		return acc
	}

	acc = acc.Add(selfTotals(obj))

	if ms, has := obj[keyMediaSummary]; has {
		if msObj, isObj := models.AsObject(ms); isObj {
			acc = acc.Add(readSummary(msObj))
		}
	}

	// Sorted keys keep float sums identical between calls on the same input.
	keys := make([]string, 0, len(obj))
	for k := range obj {
		if k == keyMediaSummary {
			continue
		}

		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, k := range keys {
		acc = walk(obj[k], acc)
	}

	return acc
}

// selfTotals reads a node that is itself summary-shaped.
func selfTotals(obj map[string]any) models.Totals {
	if nested, ok := models.AsObject(obj[keyTotals]); ok {
		return fields(nested)
	}

	for _, k := range []string{keyVolume, keyReach, keyAVE, keyTotals} {
		if _, has := obj[k]; has {
			return fields(obj)
		}
	}

	return models.Totals{}
}

// readSummary reads a mediaSummary value, preferring its nested totals.
func readSummary(obj map[string]any) models.Totals {
	if nested, ok := models.AsObject(obj[keyTotals]); ok {
		return fields(nested)
	}

	return fields(obj)
}

func fields(obj map[string]any) models.Totals {
	return models.Totals{
		Volume: ToNum(obj[keyVolume]),
		Reach:  ToNum(obj[keyReach]),
		AVE:    ToNum(obj[keyAVE]),
	}
}
