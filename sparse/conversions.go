// Package sparse: triplet normalization and format construction.
//
// Every conversion funnels through the interchange form: storage →
// Triplets() → normalize → target builder. Normalization sorts, sums
// duplicates, and drops entries that cancel to exactly zero, which is what
// makes round-trips lossless up to ordering and conversion idempotent.

package sparse

import "sort"

// normalizeTriplets returns a row-major sorted copy of ts with duplicate
// coordinates summed and exact zeros dropped. Input is not mutated.
// Complexity: O(nnz·log nnz).
func normalizeTriplets(ts []Triplet) []Triplet {
	return normalize(ts, func(a, b Triplet) bool {
		if a.Row != b.Row {
			return a.Row < b.Row
		}

		return a.Col < b.Col
	})
}

// normalizeTripletsColMajor is the column-major twin used by the CSC builder.
func normalizeTripletsColMajor(ts []Triplet) []Triplet {
	return normalize(ts, func(a, b Triplet) bool {
		if a.Col != b.Col {
			return a.Col < b.Col
		}

		return a.Row < b.Row
	})
}

// normalize sorts a copy of ts with less, then merges equal coordinates by
// summing and filters exact zeros in one forward pass.
func normalize(ts []Triplet, less func(a, b Triplet) bool) []Triplet {
	if len(ts) == 0 {
		return nil
	}
	sorted := make([]Triplet, len(ts))
	copy(sorted, ts)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })

	out := sorted[:0]
	for _, t := range sorted {
		if n := len(out); n > 0 && out[n-1].Row == t.Row && out[n-1].Col == t.Col {
			out[n-1].Val += t.Val
			continue
		}
		out = append(out, t)
	}
	// Second pass: duplicate sums may have cancelled to exactly zero.
	filtered := out[:0]
	for _, t := range out {
		if t.Val != 0 {
			filtered = append(filtered, t)
		}
	}

	return filtered
}

// buildStorage constructs the requested format from raw (valid-index,
// finite-value) triplets. The builders receive normalized input in the sort
// order they rely on.
func buildStorage(f Format, rows, cols int, ts []Triplet) (Storage, error) {
	switch f {
	case FormatCSR:
		return newCSR(rows, cols, normalizeTriplets(ts)), nil
	case FormatCSC:
		return newCSC(rows, cols, normalizeTripletsColMajor(ts)), nil
	case FormatCOO:
		return newCOO(rows, cols, normalizeTriplets(ts)), nil
	case FormatGraph:
		return newGraphStore(rows, cols, normalizeTriplets(ts)), nil
	default:
		return nil, ErrUnknownFormat
	}
}
