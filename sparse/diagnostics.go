// Package sparse: structural diagnostics.
//
// All diagnostics run one O(nnz) pass over the interchange form, never
// mutate storage, and are safe to call at any time on any format. The
// square-only checks return ErrNotSquare rather than guessing.

package sparse

import (
	"fmt"
	"math"
)

// SparsityInfo is a read-only density snapshot of a matrix.
type SparsityInfo struct {
	Rows, Cols int
	NNZ        int
	Density    float64 // NNZ / (Rows*Cols)
	Sparsity   float64 // 1 - Density
	MaxRowNNZ  int
	AvgRowNNZ  float64
}

// DominanceParams is the derived snapshot solvers use to gate eligibility
// and size iteration budgets. Computed on demand; never cached.
type DominanceParams struct {
	// Delta is the minimum normalized dominance margin
	// min_i (|a_ii| - Σ_{j≠i}|a_ij|) / |a_ii|; negative when some row
	// violates dominance, and -Inf when a diagonal entry is missing.
	Delta float64

	// MaxPNormGap is ‖I - D⁻¹A‖_∞ = max_i Σ_{j≠i}|a_ij| / |a_ii| — the
	// contraction factor of the Neumann iteration matrix; < 1 iff the
	// matrix is strictly diagonally dominant with nonzero diagonal.
	MaxPNormGap float64

	// SMax is the Gershgorin bound max_i Σ_j |a_ij| on the spectral radius.
	SMax float64

	// ConditionEstimate is the crude bound SMax / min_i(|a_ii| - off_i),
	// +Inf when the minimum margin is not positive.
	ConditionEstimate float64

	// Sparsity is 1 - NNZ/(rows·cols).
	Sparsity float64
}

// rowProfile holds the per-row absolute sums a single pass accumulates.
type rowProfile struct {
	absDiag []float64 // |a_ii|
	offSum  []float64 // Σ_{j≠i} |a_ij|
}

// profileRows walks Triplets() once; O(nnz) time, O(rows) space.
func (m *Matrix) profileRows() rowProfile {
	p := rowProfile{
		absDiag: make([]float64, m.rows),
		offSum:  make([]float64, m.rows),
	}
	for _, t := range m.storage.Triplets() {
		if t.Row == t.Col {
			p.absDiag[t.Row] = math.Abs(t.Val)
			continue
		}
		p.offSum[t.Row] += math.Abs(t.Val)
	}

	return p
}

// IsDiagonallyDominant reports whether |a_ii| ≥ Σ_{j≠i}|a_ij| holds for
// every row. Rows with neither diagonal nor off-diagonal entries count as
// dominant (0 ≥ 0). Returns ErrNotSquare for rectangular matrices.
func (m *Matrix) IsDiagonallyDominant() (bool, error) {
	if !m.IsSquare() {
		return false, fmt.Errorf("IsDiagonallyDominant: %w", ErrNotSquare)
	}
	p := m.profileRows()
	for i := 0; i < m.rows; i++ {
		if p.absDiag[i] < p.offSum[i] {
			return false, nil
		}
	}

	return true, nil
}

// DominanceFactor returns the minimum per-row ratio |a_ii| / Σ_{j≠i}|a_ij|.
//
// The boolean is false iff every row's off-diagonal sum is zero (a purely
// diagonal matrix has no meaningful ratio). A factor ≥ 1 means dominant;
// the larger the factor, the faster Neumann-style iterations contract.
func (m *Matrix) DominanceFactor() (float64, bool, error) {
	if !m.IsSquare() {
		return 0, false, fmt.Errorf("DominanceFactor: %w", ErrNotSquare)
	}
	p := m.profileRows()
	factor, any := math.Inf(1), false
	for i := 0; i < m.rows; i++ {
		if p.offSum[i] == 0 {
			continue
		}
		any = true
		if r := p.absDiag[i] / p.offSum[i]; r < factor {
			factor = r
		}
	}
	if !any {
		return 0, false, nil
	}

	return factor, true, nil
}

// SpectralRadiusEstimate returns the Gershgorin-circle upper bound on the
// spectral radius: max_i Σ_j |a_ij|.
func (m *Matrix) SpectralRadiusEstimate() (float64, error) {
	if !m.IsSquare() {
		return 0, fmt.Errorf("SpectralRadiusEstimate: %w", ErrNotSquare)
	}
	p := m.profileRows()
	var sMax float64
	for i := 0; i < m.rows; i++ {
		if s := p.absDiag[i] + p.offSum[i]; s > sMax {
			sMax = s
		}
	}

	return sMax, nil
}

// Sparsity returns density statistics; valid for any shape.
func (m *Matrix) Sparsity() SparsityInfo {
	info := SparsityInfo{
		Rows: m.rows,
		Cols: m.cols,
		NNZ:  m.storage.NNZ(),
	}
	total := float64(m.rows) * float64(m.cols)
	info.Density = float64(info.NNZ) / total
	info.Sparsity = 1 - info.Density
	perRow := make([]int, m.rows)
	for _, t := range m.storage.Triplets() {
		perRow[t.Row]++
	}
	for _, n := range perRow {
		if n > info.MaxRowNNZ {
			info.MaxRowNNZ = n
		}
	}
	info.AvgRowNNZ = float64(info.NNZ) / float64(m.rows)

	return info
}

// DominanceParams computes the full eligibility snapshot in one pass.
// See the field docs for the exact quantities.
func (m *Matrix) DominanceParams() (DominanceParams, error) {
	if !m.IsSquare() {
		return DominanceParams{}, fmt.Errorf("DominanceParams: %w", ErrNotSquare)
	}
	p := m.profileRows()
	dp := DominanceParams{
		Delta:    math.Inf(1),
		Sparsity: m.Sparsity().Sparsity,
	}
	minMargin := math.Inf(1) // absolute margin |a_ii| - off_i
	for i := 0; i < m.rows; i++ {
		d, off := p.absDiag[i], p.offSum[i]
		rowSum := d + off
		if rowSum > dp.SMax {
			dp.SMax = rowSum
		}
		if margin := d - off; margin < minMargin {
			minMargin = margin
		}
		switch {
		case d == 0 && off == 0:
			// empty row: contributes nothing to delta or the gap
		case d == 0:
			dp.Delta = math.Inf(-1)
			dp.MaxPNormGap = math.Inf(1)
		default:
			if delta := (d - off) / d; delta < dp.Delta {
				dp.Delta = delta
			}
			if gap := off / d; gap > dp.MaxPNormGap {
				dp.MaxPNormGap = gap
			}
		}
	}
	if minMargin > 0 && !math.IsInf(minMargin, 1) {
		dp.ConditionEstimate = dp.SMax / minMargin
	} else {
		dp.ConditionEstimate = math.Inf(1)
	}

	return dp, nil
}
