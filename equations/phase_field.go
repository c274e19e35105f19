package equations

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// PhaseField is the Fan-Chen multi-grain Allen-Cahn model. Each variable is
// the order parameter η_i of one grain orientation, evolving as
//
//	dη_i/dt = -L (∂f/∂η_i - κ ∇²η_i)
//	f = Σ_i (-α/2 η_i² + β/4 η_i⁴) + γ Σ_i Σ_{j>i} η_i² η_j²
type PhaseField struct {
	NumGrains          int
	Mobility, Kappa    float64
	Alpha, Beta, Gamma float64
}

func NewPhaseField(numGrains int, mobility, kappa, alpha, beta, gamma float64) (pf *PhaseField, err error) {
	if numGrains < 1 {
		err = fmt.Errorf("phase field needs at least one grain, have %d", numGrains)
		return
	}
	pf = &PhaseField{
		NumGrains: numGrains,
		Mobility:  mobility,
		Kappa:     kappa,
		Alpha:     alpha,
		Beta:      beta,
		Gamma:     gamma,
	}
	// Unit defaults give the classical double well with minima at ±1
	if pf.Mobility == 0 {
		pf.Mobility = 1
	}
	if pf.Alpha == 0 {
		pf.Alpha = 1
	}
	if pf.Beta == 0 {
		pf.Beta = 1
	}
	if pf.Gamma == 0 {
		pf.Gamma = 1
	}
	return
}

func (pf *PhaseField) NumVars() int { return pf.NumGrains }

func (pf *PhaseField) VariableNames() (names []string) {
	for i := 0; i < pf.NumGrains; i++ {
		names = append(names, fmt.Sprintf("eta%d", i))
	}
	return
}

func (pf *PhaseField) Convection() Convection { return nil }

func (pf *PhaseField) Diffusion() Diffusion {
	if pf.Kappa == 0 {
		return nil
	}
	return pfDiffusion{pf}
}

func (pf *PhaseField) Source() Source { return pfBulk{pf} }

func (pf *PhaseField) ToPrimitive(U []float64) []float64 {
	return append([]float64(nil), U...)
}

func (pf *PhaseField) ToConservative(W []float64) []float64 {
	return append([]float64(nil), W...)
}

type pfDiffusion struct {
	pf *PhaseField
}

func (d pfDiffusion) Flux(U []float64, gradU []r3.Vec, n r3.Vec) (f []float64) {
	var (
		lk = d.pf.Mobility * d.pf.Kappa
	)
	f = make([]float64, len(U))
	for i := range U {
		f[i] = lk * r3.Dot(gradU[i], n)
	}
	return
}

func (d pfDiffusion) MaxAbsDiffusivity(U []float64) float64 {
	return math.Abs(d.pf.Mobility * d.pf.Kappa)
}

type pfBulk struct {
	pf *PhaseField
}

func (s pfBulk) Term(U []float64, gradU []r3.Vec) (S []float64) {
	var (
		pf    = s.pf
		sumSq float64
	)
	for _, eta := range U {
		sumSq += eta * eta
	}
	S = make([]float64, len(U))
	for i, eta := range U {
		others := sumSq - eta*eta
		dfdEta := -pf.Alpha*eta + pf.Beta*eta*eta*eta + 2*pf.Gamma*eta*others
		S[i] = -pf.Mobility * dfdEta
	}
	return
}
