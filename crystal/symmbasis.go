// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crystal

import "math"

// InvariantSubspace returns an orthonormal basis (each basis vector a slice
// of length dim) of the subspace left pointwise invariant by every operator
// in reps (each a dim x dim matrix): the set { v : reps[k]*v = v for all k }.
//
// The classic representation-theory trick is used: the group average
// P = (1/|reps|) * sum_k reps[k] is the orthogonal projector onto the
// invariant subspace (since every rep is orthogonal and the invariant
// subspace is a sub-representation). P's column space equals the invariant
// subspace, so projecting the standard basis through P and Gram-Schmidt
// orthonormalizing the images yields a basis for it -- no eigensolver
// needed, only matrix-vector products and dot products.
func InvariantSubspace(reps [][][]float64, dim int) [][]float64 {
	if len(reps) == 0 {
		return nil
	}
	P := make([][]float64, dim)
	for i := range P {
		P[i] = make([]float64, dim)
	}
	for _, R := range reps {
		for i := 0; i < dim; i++ {
			for j := 0; j < dim; j++ {
				P[i][j] += R[i][j]
			}
		}
	}
	n := float64(len(reps))
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			P[i][j] /= n
		}
	}

	const eps = 1e-8
	var basis [][]float64
	for col := 0; col < dim; col++ {
		e := make([]float64, dim)
		e[col] = 1
		v := matvec(P, e)
		// orthogonalize against what we already have
		for _, b := range basis {
			d := dot(v, b)
			for k := range v {
				v[k] -= d * b[k]
			}
		}
		nrm := math.Sqrt(dot(v, v))
		if nrm > eps {
			for k := range v {
				v[k] /= nrm
			}
			basis = append(basis, v)
		}
	}
	return basis
}

func matvec(A [][]float64, x []float64) []float64 {
	n := len(A)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		var s float64
		for j := 0; j < len(x); j++ {
			s += A[i][j] * x[j]
		}
		y[i] = s
	}
	return y
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

// LittleGroup returns the subset of ops that fix site (chem,i) at R=0
// (g.IndexMap[chem][i] == i and the induced translation is zero).
func (c *Crystal) LittleGroup(chem, i int) []GroupOp {
	var out []GroupOp
	for _, g := range c.G {
		Rp, ip, err := c.GPos(g, [3]int{0, 0, 0}, chem, i)
		if err != nil {
			continue
		}
		if ip == i && Rp == [3]int{0, 0, 0} {
			out = append(out, g)
		}
	}
	return out
}

// VectorBasis returns an orthonormal basis of Cartesian vectors left
// invariant by the little group of site (chem,i) -- the symmetry-adapted
// vector basis an origin vector-star borrows its vectors from (spec.md
// §4.4, "Origin star").
func (c *Crystal) VectorBasis(chem, i int) [][3]float64 {
	lg := c.LittleGroup(chem, i)
	reps := make([][][]float64, len(lg))
	for k, g := range lg {
		reps[k] = g.CartRot
	}
	basis := InvariantSubspace(reps, 3)
	out := make([][3]float64, len(basis))
	for k, v := range basis {
		out[k] = [3]float64{v[0], v[1], v[2]}
	}
	return out
}

// SymmTensorBasis returns an orthonormal basis (in Voigt 6-vector form,
// mapped back to symmetric 3x3 tensors) of the space of symmetric tensors
// left invariant by the little group of site (chem,i).
func (c *Crystal) SymmTensorBasis(chem, i int) [][3][3]float64 {
	return TensorBasisFixedBy(c.LittleGroup(chem, i))
}

// TensorBasisFixedBy returns an orthonormal basis (Voigt-mapped back to
// symmetric 3x3 tensors) of the space of symmetric tensors left invariant
// under every operation in ops. SymmTensorBasis is the common case (ops is
// a site's little group); the interstitial calculator's elastodiffusion
// extension (spec.md §4.8) additionally needs the invariant tensor space of
// a jump's stabilizer, which is not a site's little group, hence this is
// exposed directly rather than folded into SymmTensorBasis.
func TensorBasisFixedBy(ops []GroupOp) [][3][3]float64 {
	reps := make([][][]float64, len(ops))
	for k, g := range ops {
		reps[k] = voigtRep(g.CartRot)
	}
	basis := InvariantSubspace(reps, 6)
	out := make([][3][3]float64, len(basis))
	for k, v := range basis {
		out[k] = voigtToTensor(v)
	}
	return out
}

// voigtRep builds the 6x6 matrix acting on Voigt-ordered symmetric tensors
// [T00,T11,T22,T12,T02,T01] induced by the Cartesian rotation R, via
// T' = R*T*R^T applied to the six independent basis tensors.
func voigtRep(R [][]float64) [][]float64 {
	basisT := []([3][3]float64){
		{{1, 0, 0}, {0, 0, 0}, {0, 0, 0}},
		{{0, 0, 0}, {0, 1, 0}, {0, 0, 0}},
		{{0, 0, 0}, {0, 0, 0}, {0, 0, 1}},
		{{0, 0, 0}, {0, 0, 1}, {0, 1, 0}},
		{{0, 0, 1}, {0, 0, 0}, {1, 0, 0}},
		{{0, 1, 0}, {1, 0, 0}, {0, 0, 0}},
	}
	out := make([][]float64, 6)
	for i := range out {
		out[i] = make([]float64, 6)
	}
	for col, T := range basisT {
		Tp := rotateTensor(R, T)
		v := tensorToVoigt(Tp)
		for row := 0; row < 6; row++ {
			out[row][col] = v[row]
		}
	}
	return out
}

func rotateTensor(R [][]float64, T [3][3]float64) [3][3]float64 {
	var RT [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var s float64
			for k := 0; k < 3; k++ {
				s += R[i][k] * T[k][j]
			}
			RT[i][j] = s
		}
	}
	var out [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var s float64
			for k := 0; k < 3; k++ {
				s += RT[i][k] * R[j][k]
			}
			out[i][j] = s
		}
	}
	return out
}

func tensorToVoigt(T [3][3]float64) []float64 {
	return []float64{T[0][0], T[1][1], T[2][2], T[1][2], T[0][2], T[0][1]}
}

// ProjectSymmTensor projects tensor T onto the subspace spanned by basis
// (as returned by SymmTensorBasis/TensorBasisFixedBy, whose vectors are
// orthonormal under the Voigt-vector inner product used throughout this
// file), returning the nearest tensor compatible with that symmetry.
func ProjectSymmTensor(T [3][3]float64, basis [][3][3]float64) [3][3]float64 {
	v := tensorToVoigt(T)
	out := make([]float64, 6)
	for _, b := range basis {
		bv := tensorToVoigt(b)
		var d float64
		for k := 0; k < 6; k++ {
			d += v[k] * bv[k]
		}
		for k := 0; k < 6; k++ {
			out[k] += d * bv[k]
		}
	}
	return voigtToTensor(out)
}

func voigtToTensor(v []float64) [3][3]float64 {
	return [3][3]float64{
		{v[0], v[5], v[4]},
		{v[5], v[1], v[3]},
		{v[4], v[3], v[2]},
	}
}
