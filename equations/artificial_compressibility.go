package equations

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// ArtificialCompressibility is Chorin's pseudo-compressible form of the
// incompressible Navier-Stokes equations in variables p, u, v, w:
//
//	dp/dt + β ∇·u = 0
//	du/dt + ∇·(u u + p I) = ν ∇²u
//
// It is only time accurate when marched to convergence in pseudo-time.
type ArtificialCompressibility struct {
	Beta      float64
	Viscosity float64
}

func NewArtificialCompressibility(beta, viscosity float64) *ArtificialCompressibility {
	return &ArtificialCompressibility{Beta: beta, Viscosity: viscosity}
}

func (ac *ArtificialCompressibility) NumVars() int { return 4 }

func (ac *ArtificialCompressibility) VariableNames() []string {
	return []string{"p", "u", "v", "w"}
}

func (ac *ArtificialCompressibility) Convection() Convection { return acConvection{ac.Beta} }

func (ac *ArtificialCompressibility) Diffusion() Diffusion {
	if ac.Viscosity == 0 {
		return nil
	}
	return acDiffusion{ac.Viscosity}
}

func (ac *ArtificialCompressibility) Source() Source { return nil }

func (ac *ArtificialCompressibility) ToPrimitive(U []float64) []float64 {
	return append([]float64(nil), U...)
}

func (ac *ArtificialCompressibility) ToConservative(W []float64) []float64 {
	return append([]float64(nil), W...)
}

type acConvection struct {
	beta float64
}

func (c acConvection) Flux(U []float64, n r3.Vec) []float64 {
	var (
		p  = U[0]
		un = U[1]*n.X + U[2]*n.Y + U[3]*n.Z
	)
	return []float64{
		c.beta * un,
		U[1]*un + p*n.X,
		U[2]*un + p*n.Y,
		U[3]*un + p*n.Z,
	}
}

func (c acConvection) SortedEigenvalues(U []float64, n r3.Vec) []float64 {
	var (
		un = U[1]*n.X + U[2]*n.Y + U[3]*n.Z
		a  = math.Sqrt(un*un + c.beta)
	)
	return []float64{un - a, un, un, un + a}
}

func (c acConvection) MaxAbsEigenvalue(U []float64, n r3.Vec) float64 {
	un := U[1]*n.X + U[2]*n.Y + U[3]*n.Z
	return math.Abs(un) + math.Sqrt(un*un+c.beta)
}

type acDiffusion struct {
	nu float64
}

func (d acDiffusion) Flux(U []float64, gradU []r3.Vec, n r3.Vec) []float64 {
	return []float64{
		0,
		d.nu * r3.Dot(gradU[1], n),
		d.nu * r3.Dot(gradU[2], n),
		d.nu * r3.Dot(gradU[3], n),
	}
}

func (d acDiffusion) MaxAbsDiffusivity(U []float64) float64 { return math.Abs(d.nu) }
