package bcs

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gofv/equations"
	"github.com/notargets/gofv/mesh"
	"github.com/notargets/gofv/types"
)

var ErrUnsupportedEquations = errors.New("boundary condition does not support these equations")

// Parameters are the inputs of a boundary condition. Profile, when set,
// overrides Values with a space and time dependent boundary state.
type Parameters struct {
	Values     []float64
	Profile    func(x r3.Vec, time float64) []float64
	FreeStream *equations.FreeStream
}

func NewBoundaryCondition(bcType types.BCFLAG, eqn equations.GoverningEquations,
	p Parameters) (bc mesh.BoundaryCondition, err error) {
	switch bcType {
	case types.BC_FixedValue:
		if p.Profile == nil && len(p.Values) != eqn.NumVars() {
			err = fmt.Errorf("fixed value needs %d values, have %d", eqn.NumVars(), len(p.Values))
			return
		}
		bc = &FixedValue{Eqn: eqn, Values: p.Values, Profile: p.Profile}
	case types.BC_ZeroGradient:
		bc = &ZeroGradient{Eqn: eqn}
	case types.BC_SlipWall:
		var wall *SlipWall
		if wall, err = NewSlipWall(eqn); err != nil {
			return
		}
		bc = wall
	case types.BC_Farfield:
		e, ok := eqn.(*equations.Euler)
		if !ok {
			err = fmt.Errorf("%w: farfield needs the Euler equations", ErrUnsupportedEquations)
			return
		}
		if p.FreeStream == nil {
			err = fmt.Errorf("farfield needs a free stream state")
			return
		}
		bc = &Farfield{Eqn: e, FS: p.FreeStream}
	default:
		err = fmt.Errorf("no boundary condition implemented for type %s", bcType)
	}
	return
}

// normalFlux is F(U)·n, zero when the equations carry no convection
func normalFlux(eqn equations.GoverningEquations, U []float64, n r3.Vec) []float64 {
	conv := eqn.Convection()
	if conv == nil {
		return make([]float64, len(U))
	}
	return conv.Flux(U, n)
}

// upwindFlux is the local Lax-Friedrichs flux between the interior and the
// ghost state
func upwindFlux(eqn equations.GoverningEquations, UL, UR []float64, n r3.Vec) (F []float64) {
	conv := eqn.Convection()
	F = make([]float64, len(UL))
	if conv == nil {
		return
	}
	var (
		FL, FR = conv.Flux(UL, n), conv.Flux(UR, n)
		lambda = math.Max(conv.MaxAbsEigenvalue(UL, n), conv.MaxAbsEigenvalue(UR, n))
	)
	for i := range F {
		F[i] = 0.5*(FL[i]+FR[i]) - 0.5*lambda*(UR[i]-UL[i])
	}
	return
}

// FixedValue holds the ghost state at a prescribed value
type FixedValue struct {
	Eqn     equations.GoverningEquations
	Values  []float64
	Profile func(x r3.Vec, time float64) []float64
}

func (bc *FixedValue) value(m *mesh.Mesh, f int, time float64) []float64 {
	if bc.Profile != nil {
		return bc.Profile(m.Faces[f].Centroid, time)
	}
	return bc.Values
}

func (bc *FixedValue) SetGhostCellValues(m *mesh.Mesh, f int, time float64) {
	copy(m.GhostCell(f).U, bc.value(m, f, time))
}

func (bc *FixedValue) ConvectiveFlux(m *mesh.Mesh, f int, time float64) []float64 {
	return upwindFlux(bc.Eqn, m.InteriorCell(f).U, bc.value(m, f, time), m.Faces[f].Normal)
}

// ZeroGradient copies the interior state into the ghost
type ZeroGradient struct {
	Eqn equations.GoverningEquations
}

func (bc *ZeroGradient) SetGhostCellValues(m *mesh.Mesh, f int, time float64) {
	copy(m.GhostCell(f).U, m.InteriorCell(f).U)
}

func (bc *ZeroGradient) ConvectiveFlux(m *mesh.Mesh, f int, time float64) []float64 {
	return normalFlux(bc.Eqn, m.InteriorCell(f).U, m.Faces[f].Normal)
}
