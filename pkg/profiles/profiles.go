// Package profiles implements the pure part of reconciliation:
// remapping of source-local ids, filtering of profiles against
// source metadata, merging of representatives and unification of
// metadata.
//
// This package has no I/O dependencies.
package profiles

import (
	"strings"

	"github.com/gnames/mtreps/pkg/schema"
)

// Tokens splits a space-delimited profiles string.
// Empty or blank input gives an empty slice.
func Tokens(s string) []string {
	return strings.Fields(s)
}

// Remap replaces every id found in idMap with its accession. Ids that
// are not in the map pass through unchanged; the Profile Filter decides
// later if they are valid. It returns the new ids and the number of
// replaced ids.
func Remap(ids []string, idMap schema.IDMap) ([]string, int) {
	if len(ids) == 0 {
		return []string{}, 0
	}
	res := make([]string, len(ids))
	var count int
	for i, id := range ids {
		if acc, ok := idMap[id]; ok {
			res[i] = acc
			count++
			continue
		}
		res[i] = id
	}
	return res, count
}

// RemapIDs is Remap for space-delimited strings.
func RemapIDs(s string, idMap schema.IDMap) string {
	res, _ := Remap(Tokens(s), idMap)
	return strings.Join(res, " ")
}

// Filter keeps only ids present in valid, preserving their order.
// It returns kept ids and the number of dropped ones.
func Filter(ids []string, valid schema.AccessionSet) ([]string, int) {
	res := make([]string, 0, len(ids))
	for _, id := range ids {
		if valid.Has(id) {
			res = append(res, id)
		}
	}
	return res, len(ids) - len(res)
}

// FilterIDs is Filter for space-delimited strings.
func FilterIDs(s string, valid schema.AccessionSet) (string, int) {
	res, dropped := Filter(Tokens(s), valid)
	return strings.Join(res, " "), dropped
}
