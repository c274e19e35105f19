package equations

import (
	"errors"
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Convection is the hyperbolic part of a conservation law
type Convection interface {
	// Flux returns F(U)·n
	Flux(U []float64, n r3.Vec) []float64
	// SortedEigenvalues returns the eigenvalues of dF·n/dU in ascending order
	SortedEigenvalues(U []float64, n r3.Vec) []float64
	MaxAbsEigenvalue(U []float64, n r3.Vec) float64
}

// Diffusion is the gradient dependent part. Flux returns the transport
// κ∇U·n, positive when U increases along n.
type Diffusion interface {
	Flux(U []float64, gradU []r3.Vec, n r3.Vec) []float64
	MaxAbsDiffusivity(U []float64) float64
}

// Source is a pointwise production term per unit volume
type Source interface {
	Term(U []float64, gradU []r3.Vec) []float64
}

// GoverningEquations supplies the flux families of a system. Convection,
// Diffusion and Source return nil when the system has no such term.
type GoverningEquations interface {
	NumVars() int
	VariableNames() []string
	Convection() Convection
	Diffusion() Diffusion
	Source() Source
	ToPrimitive(U []float64) []float64
	ToConservative(W []float64) []float64
}

var ErrUnknownEquations = errors.New("unknown governing equations")

type EquationType uint

const (
	EQN_ScalarAdvectionDiffusion EquationType = iota
	EQN_Euler
	EQN_ArtificialCompressibility
	EQN_PhaseField
)

var (
	EquationNames = map[string]EquationType{
		"scalar":                    EQN_ScalarAdvectionDiffusion,
		"advectiondiffusion":        EQN_ScalarAdvectionDiffusion,
		"euler":                     EQN_Euler,
		"artificialcompressibility": EQN_ArtificialCompressibility,
		"incompressible":            EQN_ArtificialCompressibility,
		"phasefield":                EQN_PhaseField,
	}
	EquationPrintNames = []string{"Scalar Advection Diffusion", "Euler", "Artificial Compressibility", "Phase Field"}
)

func (et EquationType) Print() (txt string) {
	txt = EquationPrintNames[et]
	return
}

func NewEquationType(label string) (et EquationType, err error) {
	var (
		ok bool
	)
	label = strings.ToLower(strings.NewReplacer(" ", "", "_", "", "-", "").Replace(label))
	if et, ok = EquationNames[label]; !ok {
		err = fmt.Errorf("%w: [%s]", ErrUnknownEquations, label)
	}
	return
}

// Parameters carries the physical constants of every equation set, each
// equation set reads the fields it needs
type Parameters struct {
	Velocity     r3.Vec  // Scalar advection velocity
	Diffusivity  float64 // Scalar diffusivity
	ReactionRate float64 // First order decay of the scalar, S = -k U
	Gamma        float64 // Ratio of specific heats
	Beta         float64 // Artificial compressibility
	Viscosity    float64 // Kinematic viscosity
	NumGrains    int
	Mobility     float64 // Allen-Cahn L
	Kappa        float64 // Gradient energy coefficient
	Alpha        float64 // Bulk free energy coefficients
	BetaPF       float64
	GammaPF      float64
}

func NewEquations(et EquationType, p Parameters) (eqn GoverningEquations, err error) {
	switch et {
	case EQN_ScalarAdvectionDiffusion:
		eqn = NewScalarAdvectionDiffusion(p.Velocity, p.Diffusivity, p.ReactionRate)
	case EQN_Euler:
		gamma := p.Gamma
		if gamma == 0 {
			gamma = 1.4
		}
		eqn = NewEuler(gamma)
	case EQN_ArtificialCompressibility:
		if p.Beta <= 0 {
			err = fmt.Errorf("artificial compressibility must be positive, have %g", p.Beta)
			return
		}
		eqn = NewArtificialCompressibility(p.Beta, p.Viscosity)
	case EQN_PhaseField:
		var pf *PhaseField
		if pf, err = NewPhaseField(p.NumGrains, p.Mobility, p.Kappa, p.Alpha, p.BetaPF, p.GammaPF); err != nil {
			return
		}
		eqn = pf
	default:
		err = fmt.Errorf("%w: type %d", ErrUnknownEquations, et)
	}
	return
}
