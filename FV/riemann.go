package FV

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gofv/equations"
	"github.com/notargets/gofv/utils"
)

var (
	ErrWaveSpeedOrdering = errors.New("invalid wave speed ordering")
	ErrUnknownFluxType   = errors.New("unknown flux type")
	ErrUnsupportedFlux   = errors.New("flux type not available for these equations")
)

// RiemannSolver resolves the normal flux between a left and a right state,
// n is the unit normal pointing from left to right
type RiemannSolver interface {
	Flux(UL, UR []float64, n r3.Vec) ([]float64, error)
}

type FluxType uint

const (
	FLUX_Rusanov FluxType = iota
	FLUX_HLL
	FLUX_HLLC
	FLUX_Roe
)

var (
	FluxNames = map[string]FluxType{
		"rusanov":       FLUX_Rusanov,
		"lax":           FLUX_Rusanov,
		"laxfriedrichs": FLUX_Rusanov,
		"hll":           FLUX_HLL,
		"hllc":          FLUX_HLLC,
		"roe":           FLUX_Roe,
	}
	FluxPrintNames = []string{"Rusanov", "HLL", "HLLC", "Roe"}
)

func (ft FluxType) Print() (txt string) {
	txt = FluxPrintNames[ft]
	return
}

func NewFluxType(label string) (ft FluxType, err error) {
	var ok bool
	label = strings.ToLower(strings.NewReplacer(" ", "", "-", "", "_", "").Replace(label))
	if ft, ok = FluxNames[label]; !ok {
		err = fmt.Errorf("%w: unable to use flux named %s", ErrUnknownFluxType, label)
	}
	return
}

func NewRiemannSolver(ft FluxType, eqn equations.GoverningEquations) (rs RiemannSolver, err error) {
	conv := eqn.Convection()
	if conv == nil {
		err = fmt.Errorf("%w: no convection term", ErrUnsupportedFlux)
		return
	}
	switch ft {
	case FLUX_Rusanov:
		rs = &Rusanov{Conv: conv}
	case FLUX_HLL:
		rs = &HLL{Conv: conv}
	case FLUX_HLLC, FLUX_Roe:
		e, ok := eqn.(*equations.Euler)
		if !ok {
			err = fmt.Errorf("%w: %s needs the Euler equations", ErrUnsupportedFlux, ft.Print())
			return
		}
		if ft == FLUX_HLLC {
			rs = &HLLC{Eqn: e}
		} else {
			rs = &Roe{Eqn: e}
		}
	default:
		err = fmt.Errorf("%w: type %d", ErrUnknownFluxType, ft)
	}
	return
}

// Rusanov is the local Lax-Friedrichs flux
type Rusanov struct {
	Conv equations.Convection
}

func (rs *Rusanov) Flux(UL, UR []float64, n r3.Vec) (F []float64, err error) {
	var (
		FL, FR = rs.Conv.Flux(UL, n), rs.Conv.Flux(UR, n)
		maxV   = math.Max(rs.Conv.MaxAbsEigenvalue(UL, n), rs.Conv.MaxAbsEigenvalue(UR, n))
	)
	F = make([]float64, len(UL))
	for i := range F {
		F[i] = 0.5*(FL[i]+FR[i]) - 0.5*maxV*(UR[i]-UL[i])
	}
	return
}

// waveSpeeds bounds the left and right running waves by the extreme eigenvalues of both states
func waveSpeeds(conv equations.Convection, UL, UR []float64, n r3.Vec) (SL, SR float64) {
	var (
		evL, evR = conv.SortedEigenvalues(UL, n), conv.SortedEigenvalues(UR, n)
		last     = len(evL) - 1
	)
	SL = math.Min(evL[0], evR[0])
	SR = math.Max(evL[last], evR[last])
	return
}

// HLL is the two wave Harten, Lax, van Leer flux
type HLL struct {
	Conv equations.Convection
}

func (rs *HLL) Flux(UL, UR []float64, n r3.Vec) (F []float64, err error) {
	SL, SR := waveSpeeds(rs.Conv, UL, UR, n)
	switch {
	case SL >= 0:
		F = rs.Conv.Flux(UL, n)
	case SR <= 0:
		F = rs.Conv.Flux(UR, n)
	case SL < 0 && SR > 0:
		var (
			FL, FR = rs.Conv.Flux(UL, n), rs.Conv.Flux(UR, n)
			oodS   = 1. / (SR - SL)
		)
		F = make([]float64, len(UL))
		for i := range F {
			F[i] = (SR*FL[i] - SL*FR[i] + SL*SR*(UR[i]-UL[i])) * oodS
		}
	default:
		err = fmt.Errorf("%w: SL = %v, SR = %v", ErrWaveSpeedOrdering, SL, SR)
	}
	return
}

// HLLC restores the contact wave of the Euler equations inside the HLL fan
type HLLC struct {
	Eqn *equations.Euler
}

func (rs *HLLC) starState(U []float64, n r3.Vec, S, SM float64) (Us []float64) {
	var (
		rho = U[0]
		vel = rs.Eqn.Velocity(U)
		un  = r3.Dot(vel, n)
		p   = rs.Eqn.Pressure(U)
		fac = rho * (S - un) / (S - SM)
		// Normal velocity replaced by the contact speed, tangential preserved
		velS = r3.Add(vel, r3.Scale(SM-un, n))
	)
	Us = []float64{
		fac,
		fac * velS.X,
		fac * velS.Y,
		fac * velS.Z,
		fac * (U[4]/rho + (SM-un)*(SM+p/(rho*(S-un)))),
	}
	return
}

func (rs *HLLC) Flux(UL, UR []float64, n r3.Vec) (F []float64, err error) {
	var (
		conv   = rs.Eqn.Convection()
		SL, SR = waveSpeeds(conv, UL, UR, n)
	)
	switch {
	case SL >= 0:
		F = conv.Flux(UL, n)
	case SR <= 0:
		F = conv.Flux(UR, n)
	case SL < 0 && SR > 0:
		var (
			rhoL, rhoR = UL[0], UR[0]
			uL, uR     = r3.Dot(rs.Eqn.Velocity(UL), n), r3.Dot(rs.Eqn.Velocity(UR), n)
			pL, pR     = rs.Eqn.Pressure(UL), rs.Eqn.Pressure(UR)
			SM         = (pR - pL + rhoL*uL*(SL-uL) - rhoR*uR*(SR-uR)) /
				(rhoL*(SL-uL) - rhoR*(SR-uR))
			S  = SL
			U  = UL
			FK []float64
		)
		if SM < 0 {
			S, U = SR, UR
			FK = conv.Flux(UR, n)
		} else {
			FK = conv.Flux(UL, n)
		}
		Us := rs.starState(U, n, S, SM)
		F = make([]float64, len(U))
		for i := range F {
			F[i] = FK[i] + S*(Us[i]-U[i])
		}
	default:
		err = fmt.Errorf("%w: SL = %v, SR = %v", ErrWaveSpeedOrdering, SL, SR)
	}
	return
}

// Roe is the Roe averaged flux difference splitting for the Euler
// equations, evaluated in the face frame (n, t1, t2)
type Roe struct {
	Eqn *equations.Euler
}

func (rs *Roe) Flux(UL, UR []float64, n r3.Vec) (F []float64, err error) {
	var (
		conv   = rs.Eqn.Convection()
		t1, t2 = utils.TangentBasis(n)
		GM1    = rs.Eqn.Gamma - 1
		FL, FR = conv.Flux(UL, n), conv.Flux(UR, n)
	)
	rotate := func(U []float64) (rho, u, v, w, p, h float64) {
		vel := rs.Eqn.Velocity(U)
		rho = U[0]
		u, v, w = r3.Dot(vel, n), r3.Dot(vel, t1), r3.Dot(vel, t2)
		p = rs.Eqn.Pressure(U)
		h = rs.Eqn.Enthalpy(U)
		return
	}
	rhoL, uL, vL, wL, pL, hL := rotate(UL)
	rhoR, uR, vR, wR, pR, hR := rotate(UR)
	// Compute Roe average variables
	rhoLs, rhoRs := math.Sqrt(rhoL), math.Sqrt(rhoR)
	rhoLsRs := rhoLs + rhoRs

	rho := rhoLs * rhoRs
	u := (rhoLs*uL + rhoRs*uR) / rhoLsRs
	v := (rhoLs*vL + rhoRs*vR) / rhoLsRs
	w := (rhoLs*wL + rhoRs*wR) / rhoLsRs
	h := (rhoLs*hL + rhoRs*hR) / rhoLsRs
	c2 := GM1 * (h - 0.5*(u*u+v*v+w*w))
	if !(c2 > 0) {
		err = fmt.Errorf("%w: Roe averaged sound speed squared = %v", ErrWaveSpeedOrdering, c2)
		return
	}
	c := math.Sqrt(c2)
	// Riemann fluxes
	dW1 := -0.5*(rho*(uR-uL))/c + 0.5*(pR-pL)/c2
	dW2 := (rhoR - rhoL) - (pR-pL)/c2
	dW3 := rho * (vR - vL)
	dW3b := rho * (wR - wL)
	dW4 := 0.5*(rho*(uR-uL))/c + 0.5*(pR-pL)/c2
	dW1 = math.Abs(u-c) * dW1
	dW2 = math.Abs(u) * dW2
	dW3 = math.Abs(u) * dW3
	dW3b = math.Abs(u) * dW3b
	dW4 = math.Abs(u+c) * dW4
	// Dissipation in the face frame
	var (
		d0 = dW1 + dW2 + dW4
		dn = dW1*(u-c) + dW2*u + dW4*(u+c)
		d1 = dW1*v + dW2*v + dW3 + dW4*v
		d2 = dW1*w + dW2*w + dW3b + dW4*w
		d4 = dW1*(h-u*c) + 0.5*dW2*(u*u+v*v+w*w) + dW3*v + dW3b*w + dW4*(h+u*c)
	)
	// rotate back to Cartesian
	dm := r3.Add(r3.Scale(dn, n), r3.Add(r3.Scale(d1, t1), r3.Scale(d2, t2)))
	D := [5]float64{d0, dm.X, dm.Y, dm.Z, d4}
	F = make([]float64, 5)
	for i := range F {
		F[i] = 0.5*(FL[i]+FR[i]) - 0.5*D[i]
	}
	return
}
