package equations

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

type FlowFunction uint8

func (pm FlowFunction) String() string {
	strings := []string{
		"Density",
		"XMomentum",
		"YMomentum",
		"ZMomentum",
		"Energy",
		"Mach",
		"Static Pressure",
		"Dynamic Pressure",
		"Pressure Coefficient",
		"Sound Speed",
		"Velocity",
		"XVelocity",
		"YVelocity",
		"ZVelocity",
		"Enthalpy",
	}
	return strings[int(pm)]
}

const (
	Density FlowFunction = iota
	XMomentum
	YMomentum
	ZMomentum
	Energy
	Mach                // 5
	StaticPressure      // 6
	DynamicPressure     // 7
	PressureCoefficient // 8
	SoundSpeed          // 9
	Velocity            // 10
	XVelocity           // 11
	YVelocity           // 12
	ZVelocity           // 13
	Enthalpy            // 14
)

// Euler is the compressible Euler system in conservative variables
// rho, rhoU, rhoV, rhoW, E for a calorically perfect gas
type Euler struct {
	Gamma float64
	FS    *FreeStream // Reference state for pressure coefficient, may be nil
}

func NewEuler(gamma float64) *Euler {
	return &Euler{Gamma: gamma}
}

func (e *Euler) NumVars() int { return 5 }

func (e *Euler) VariableNames() []string {
	return []string{"rho", "rhoU", "rhoV", "rhoW", "E"}
}

func (e *Euler) Convection() Convection { return eulerConvection{e} }
func (e *Euler) Diffusion() Diffusion   { return nil }
func (e *Euler) Source() Source         { return nil }

// ToPrimitive returns rho, u, v, w, p
func (e *Euler) ToPrimitive(U []float64) []float64 {
	var (
		rho = U[0]
		vel = e.Velocity(U)
	)
	return []float64{rho, vel.X, vel.Y, vel.Z, e.Pressure(U)}
}

func (e *Euler) ToConservative(W []float64) []float64 {
	var (
		rho, u, v, w, p = W[0], W[1], W[2], W[3], W[4]
	)
	return []float64{rho, rho * u, rho * v, rho * w,
		p/(e.Gamma-1.) + 0.5*rho*(u*u+v*v+w*w)}
}

func (e *Euler) Velocity(U []float64) r3.Vec {
	oorho := 1. / U[0]
	return r3.Vec{X: U[1] * oorho, Y: U[2] * oorho, Z: U[3] * oorho}
}

func (e *Euler) Pressure(U []float64) float64   { return e.GetFlowFunction(U, StaticPressure) }
func (e *Euler) SoundSpeed(U []float64) float64 { return e.GetFlowFunction(U, SoundSpeed) }
func (e *Euler) Enthalpy(U []float64) float64   { return e.GetFlowFunction(U, Enthalpy) }

func (e *Euler) GetFlowFunction(U []float64, pf FlowFunction) (f float64) {
	var (
		rho, rhoU, rhoV, rhoW, E = U[0], U[1], U[2], U[3], U[4]
		Gamma                    = e.Gamma
		GM1                      = Gamma - 1.
		oorho                    = 1. / rho
		q, p                     float64
	)
	// Calculate q if needed
	switch pf {
	case StaticPressure, DynamicPressure, PressureCoefficient, SoundSpeed, Mach, Enthalpy:
		q = 0.5 * (rhoU*rhoU + rhoV*rhoV + rhoW*rhoW) * oorho
	}
	// Calculate p if needed
	switch pf {
	case StaticPressure, PressureCoefficient, SoundSpeed, Enthalpy, Mach:
		p = GM1 * (E - q)
	}

	switch pf {
	case Density:
		f = rho
	case XMomentum:
		f = rhoU
	case YMomentum:
		f = rhoV
	case ZMomentum:
		f = rhoW
	case Energy:
		f = E
	case StaticPressure:
		f = p
	case DynamicPressure:
		f = q
	case PressureCoefficient:
		if e.FS != nil {
			f = -(p - e.FS.Pinf) / e.FS.QQinf
		}
	case SoundSpeed:
		f = math.Sqrt(math.Abs(Gamma * p * oorho))
	case Velocity:
		f = math.Sqrt(rhoU*rhoU+rhoV*rhoV+rhoW*rhoW) * oorho
	case XVelocity:
		f = rhoU * oorho
	case YVelocity:
		f = rhoV * oorho
	case ZVelocity:
		f = rhoW * oorho
	case Mach:
		C := math.Sqrt(math.Abs(Gamma * p * oorho))
		vmag := math.Sqrt(rhoU*rhoU+rhoV*rhoV+rhoW*rhoW) * oorho
		f = vmag / C
	case Enthalpy:
		f = (E + p) * oorho
	}
	return
}

type eulerConvection struct {
	e *Euler
}

func (c eulerConvection) Flux(U []float64, n r3.Vec) []float64 {
	var (
		p  = c.e.Pressure(U)
		un = r3.Dot(c.e.Velocity(U), n)
	)
	return []float64{
		U[0] * un,
		U[1]*un + p*n.X,
		U[2]*un + p*n.Y,
		U[3]*un + p*n.Z,
		(U[4] + p) * un,
	}
}

// waveSpeed is the sound speed of a physical state, NaN when γp/ρ <= 0 so
// that every wave speed built on it is NaN
func (c eulerConvection) waveSpeed(U []float64) float64 {
	CC := c.e.Gamma * c.e.Pressure(U) / U[0]
	if !(CC > 0) {
		return math.NaN()
	}
	return math.Sqrt(CC)
}

func (c eulerConvection) SortedEigenvalues(U []float64, n r3.Vec) []float64 {
	var (
		un = r3.Dot(c.e.Velocity(U), n)
		C  = c.waveSpeed(U)
	)
	return []float64{un - C, un, un, un, un + C}
}

func (c eulerConvection) MaxAbsEigenvalue(U []float64, n r3.Vec) float64 {
	return math.Abs(r3.Dot(c.e.Velocity(U), n)) + c.waveSpeed(U)
}

// FreeStream is a reference state with unit density and unit sound speed
// moving at Minf, Alpha degrees from the x axis in the x-y plane
type FreeStream struct {
	Gamma             float64
	Minf              float64
	Qinf              []float64
	Pinf, QQinf, Cinf float64
	Alpha             float64
}

func NewFreeStream(Minf, Gamma, Alpha float64) (fs *FreeStream) {
	var (
		ooggm1 = 1. / (Gamma * (Gamma - 1.))
		uinf   = Minf * math.Cos(Alpha*math.Pi/180.)
		vinf   = Minf * math.Sin(Alpha*math.Pi/180.)
		eqn    = NewEuler(Gamma)
	)
	fs = &FreeStream{
		Gamma: Gamma,
		Minf:  Minf,
		Qinf:  []float64{1, uinf, vinf, 0, ooggm1 + 0.5*Minf*Minf},
		Alpha: Alpha,
	}
	fs.Pinf = eqn.GetFlowFunction(fs.Qinf, StaticPressure)
	fs.QQinf = eqn.GetFlowFunction(fs.Qinf, DynamicPressure)
	fs.Cinf = eqn.GetFlowFunction(fs.Qinf, SoundSpeed)
	return
}
