package utils

import (
	"gonum.org/v1/gonum/mat"
)

// SingularValueCutoff is the fraction of the largest singular value below
// which a singular value is dropped from a least-squares pseudo-inverse.
const SingularValueCutoff = 0.1

// PseudoInverse returns the n x m Moore-Penrose pseudo-inverse of the m x n
// matrix A, along with the number of singular values retained. Singular
// values smaller than cutoff times the largest are zeroed. A failed
// factorization yields a zero operator rather than an error.
func PseudoInverse(A mat.Matrix, cutoff float64) (Ainv *mat.Dense, rank int) {
	var (
		m, n = A.Dims()
		svd  mat.SVD
		U, V mat.Dense
	)
	Ainv = mat.NewDense(n, m, nil)
	if !svd.Factorize(A, mat.SVDThin) {
		return
	}
	values := svd.Values(nil)
	if len(values) == 0 || values[0] == 0 {
		return
	}
	svd.UTo(&U)
	svd.VTo(&V)
	limit := cutoff * values[0]
	// A+ = V * S+ * U^T, accumulated one retained singular triplet at a time
	for k, s := range values {
		if s < limit {
			continue
		}
		rank++
		oos := 1. / s
		for i := 0; i < n; i++ {
			vik := V.At(i, k) * oos
			if vik == 0 {
				continue
			}
			for j := 0; j < m; j++ {
				Ainv.Set(i, j, Ainv.At(i, j)+vik*U.At(j, k))
			}
		}
	}
	return
}

// WeightedLeastSquares builds the cached operator G (ncols x N) that maps a
// vector of N samples to the least-squares coefficients of the design
// matrix D (N x ncols) under per-row weights w: coeffs = G * samples.
func WeightedLeastSquares(D *mat.Dense, w []float64, cutoff float64) (G *mat.Dense, rank int) {
	var (
		N, nc = D.Dims()
		WD    = mat.NewDense(N, nc, nil)
	)
	for i := 0; i < N; i++ {
		for j := 0; j < nc; j++ {
			WD.Set(i, j, w[i]*D.At(i, j))
		}
	}
	var pinv *mat.Dense
	pinv, rank = PseudoInverse(WD, cutoff)
	// Fold the row weights into the operator so it applies to raw samples
	G = mat.NewDense(nc, N, nil)
	for i := 0; i < nc; i++ {
		for j := 0; j < N; j++ {
			G.Set(i, j, pinv.At(i, j)*w[j])
		}
	}
	return
}

// InverseDistanceWeights returns 1/d weights normalized to sum to one.
func InverseDistanceWeights(dist []float64) (w []float64) {
	var sum float64
	w = make([]float64, len(dist))
	for i, d := range dist {
		if d > 0 {
			w[i] = 1. / d
		}
		sum += w[i]
	}
	if sum == 0 {
		return
	}
	for i := range w {
		w[i] /= sum
	}
	return
}
