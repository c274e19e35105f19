package bcs

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gofv/equations"
	"github.com/notargets/gofv/mesh"
)

// SlipWall is an inviscid wall. The ghost mirrors the normal velocity and the
// wall transmits only pressure.
type SlipWall struct {
	pressure func(U []float64) float64
	vel0     int // First momentum or velocity component
}

func NewSlipWall(eqn equations.GoverningEquations) (bc *SlipWall, err error) {
	switch e := eqn.(type) {
	case *equations.Euler:
		bc = &SlipWall{pressure: e.Pressure, vel0: 1}
	case *equations.ArtificialCompressibility:
		bc = &SlipWall{pressure: func(U []float64) float64 { return U[0] }, vel0: 1}
	default:
		err = fmt.Errorf("%w: slip wall needs a momentum equation", ErrUnsupportedEquations)
	}
	return
}

func (bc *SlipWall) SetGhostCellValues(m *mesh.Mesh, f int, time float64) {
	var (
		n   = m.Faces[f].Normal
		Uin = m.InteriorCell(f).U
		Ug  = m.GhostCell(f).U
		v0  = bc.vel0
	)
	copy(Ug, Uin)
	mom := r3.Vec{X: Uin[v0], Y: Uin[v0+1], Z: Uin[v0+2]}
	mom = r3.Sub(mom, r3.Scale(2*r3.Dot(mom, n), n))
	Ug[v0], Ug[v0+1], Ug[v0+2] = mom.X, mom.Y, mom.Z
}

func (bc *SlipWall) ConvectiveFlux(m *mesh.Mesh, f int, time float64) (F []float64) {
	var (
		n   = m.Faces[f].Normal
		Uin = m.InteriorCell(f).U
		p   = bc.pressure(Uin)
		v0  = bc.vel0
	)
	F = make([]float64, len(Uin))
	F[v0] = n.X * p
	F[v0+1] = n.Y * p
	F[v0+2] = n.Z * p
	return
}

// Farfield sets the ghost from the Riemann invariants along the face normal
// against a free stream state
type Farfield struct {
	Eqn *equations.Euler
	FS  *equations.FreeStream
}

func (bc *Farfield) SetGhostCellValues(m *mesh.Mesh, f int, time float64) {
	copy(m.GhostCell(f).U, bc.RiemannState(m.InteriorCell(f).U, m.Faces[f].Normal))
}

func (bc *Farfield) ConvectiveFlux(m *mesh.Mesh, f int, time float64) []float64 {
	n := m.Faces[f].Normal
	return bc.Eqn.Convection().Flux(bc.RiemannState(m.InteriorCell(f).U, n), n)
}

// RiemannState is the boundary state from the 1D characteristics normal to the boundary
//
//	Rinf = VnormInf - 2 * Cinf / (Gamma -1)
//	Rint = VnormInt + 2 * Cint / (Gamma -1)
//	Vn = 0.5 * (Rint + Rinf)
//	C = 0.25 * (Gamma -1) *(Rint - Rinf)
//
// Entropy and tangential velocity come from upstream, P/(rho^Gamma) = constant
func (bc *Farfield) RiemannState(Uint []float64, n r3.Vec) (Q []float64) {
	var (
		FS       = bc.FS
		QInf     = FS.Qinf
		rhoInt   = Uint[0]
		velInt   = bc.Eqn.Velocity(Uint)
		pInt     = bc.Eqn.Pressure(Uint)
		CInt     = bc.Eqn.SoundSpeed(Uint)
		rhoInf   = QInf[0]
		velInf   = bc.Eqn.Velocity(QInf)
		Gamma    = FS.Gamma
		GM1      = Gamma - 1.
		OOGM1    = 1. / GM1
		VnormInt = r3.Dot(velInt, n)
		Vtang    r3.Vec
		Beta     float64
	)
	Q = make([]float64, 5)
	if FS.Minf > 1. { // Supersonic far field
		if VnormInt < 0 { // Inflow, copy all field variables from Qinf
			copy(Q, QInf)
		} else { // Outflow, copy all from Qint
			copy(Q, Uint)
		}
		return
	}
	VnormInf := r3.Dot(velInf, n)
	Rinf := VnormInf - 2.*FS.Cinf*OOGM1
	Rint := VnormInt + 2.*CInt*OOGM1
	Vnorm := 0.5 * (Rint + Rinf)
	C := 0.25 * GM1 * (Rint - Rinf)
	if VnormInt < 0 { // Inflow, entropy and tangent velocity from Qinf
		Vtang = r3.Sub(velInf, r3.Scale(VnormInf, n))
		Beta = FS.Pinf / math.Pow(rhoInf, Gamma)
	} else { // Outflow, entropy and tangent velocity from Qint
		Vtang = r3.Sub(velInt, r3.Scale(VnormInt, n))
		Beta = pInt / math.Pow(rhoInt, Gamma)
	}
	vel := r3.Add(r3.Scale(Vnorm, n), Vtang)
	rho := math.Pow(C*C/(Gamma*Beta), OOGM1)
	p := Beta * math.Pow(rho, Gamma)
	Q[0] = rho
	Q[1] = rho * vel.X
	Q[2] = rho * vel.Y
	Q[3] = rho * vel.Z
	Q[4] = p*OOGM1 + 0.5*rho*r3.Dot(vel, vel)
	return
}
