package equations

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// ScalarAdvectionDiffusion is dU/dt + ∇·(a U) = ∇·(κ∇U) - k U
type ScalarAdvectionDiffusion struct {
	Velocity     r3.Vec
	Diffusivity  float64
	ReactionRate float64
}

func NewScalarAdvectionDiffusion(velocity r3.Vec, diffusivity, reactionRate float64) *ScalarAdvectionDiffusion {
	return &ScalarAdvectionDiffusion{
		Velocity:     velocity,
		Diffusivity:  diffusivity,
		ReactionRate: reactionRate,
	}
}

func (s *ScalarAdvectionDiffusion) NumVars() int            { return 1 }
func (s *ScalarAdvectionDiffusion) VariableNames() []string { return []string{"U"} }

func (s *ScalarAdvectionDiffusion) Convection() Convection {
	if s.Velocity == (r3.Vec{}) {
		return nil
	}
	return scalarConvection{s.Velocity}
}

func (s *ScalarAdvectionDiffusion) Diffusion() Diffusion {
	if s.Diffusivity == 0 {
		return nil
	}
	return scalarDiffusion{s.Diffusivity}
}

func (s *ScalarAdvectionDiffusion) Source() Source {
	if s.ReactionRate == 0 {
		return nil
	}
	return scalarDecay{s.ReactionRate}
}

func (s *ScalarAdvectionDiffusion) ToPrimitive(U []float64) []float64    { return []float64{U[0]} }
func (s *ScalarAdvectionDiffusion) ToConservative(W []float64) []float64 { return []float64{W[0]} }

type scalarConvection struct {
	a r3.Vec
}

func (c scalarConvection) Flux(U []float64, n r3.Vec) []float64 {
	return []float64{r3.Dot(c.a, n) * U[0]}
}

func (c scalarConvection) SortedEigenvalues(U []float64, n r3.Vec) []float64 {
	return []float64{r3.Dot(c.a, n)}
}

func (c scalarConvection) MaxAbsEigenvalue(U []float64, n r3.Vec) float64 {
	return math.Abs(r3.Dot(c.a, n))
}

type scalarDiffusion struct {
	kappa float64
}

func (d scalarDiffusion) Flux(U []float64, gradU []r3.Vec, n r3.Vec) []float64 {
	return []float64{d.kappa * r3.Dot(gradU[0], n)}
}

func (d scalarDiffusion) MaxAbsDiffusivity(U []float64) float64 { return math.Abs(d.kappa) }

type scalarDecay struct {
	k float64
}

func (s scalarDecay) Term(U []float64, gradU []r3.Vec) []float64 {
	return []float64{-s.k * U[0]}
}
