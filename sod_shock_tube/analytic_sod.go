package sod_shock_tube

import "math"

const (
	X0              = 0.5
	Gamma           = 1.4
	rho_l, P_l, u_l = 1., 1., 0.
	rho_r, P_r, u_r = 0.125, 0.1, 0.
)

// Sod is the exact solution of the Sod shock tube on [0,1] with the
// diaphragm at X0
type Sod struct {
	Mu                         float64
	CL                         float64
	PPost, VPost               float64
	RhoPost, RhoMiddle, VShock float64
}

func NewSod() (s *Sod) {
	var (
		gamma = Gamma
		mu    = math.Sqrt((gamma - 1) / (gamma + 1))
	)
	s = &Sod{
		Mu:    mu,
		CL:    math.Sqrt(gamma * P_l / rho_l),
		PPost: fzero(sod_func, math.Pi),
	}
	s.VPost = 2 * (math.Sqrt(gamma) / (gamma - 1)) * (1 - math.Pow(s.PPost, (gamma-1)/(2*gamma)))
	s.RhoPost = rho_r * (((s.PPost / P_r) + mu*mu) / (1 + mu*mu*(s.PPost/P_r)))
	s.VShock = s.VPost * (s.RhoPost / rho_r) / ((s.RhoPost / rho_r) - 1.)
	s.RhoMiddle = rho_l * math.Pow(s.PPost/P_l, 1./gamma)
	return
}

// WavePositions returns the rarefaction head and tail, the contact and the shock at time t
func (s *Sod) WavePositions(t float64) (x1, x2, x3, x4 float64) {
	c_2 := s.CL - 0.5*(Gamma-1.)*s.VPost
	x1 = X0 - s.CL*t
	x2 = X0 + t*(s.VPost-c_2)
	x3 = X0 + s.VPost*t
	x4 = X0 + s.VShock*t
	return
}

// Sample returns density, velocity and pressure at x and time t
func (s *Sod) Sample(x, t float64) (rho, u, p float64) {
	if t <= 0 {
		if x < X0 {
			return rho_l, u_l, P_l
		}
		return rho_r, u_r, P_r
	}
	var (
		mu2            = s.Mu * s.Mu
		x1, x2, x3, x4 = s.WavePositions(t)
	)
	switch {
	case x < x1:
		rho, u, p = rho_l, u_l, P_l
	case x <= x2:
		c := mu2*((X0-x)/t) + (1.-mu2)*s.CL
		rho = rho_l * math.Pow(c/s.CL, 2/(Gamma-1))
		p = P_l * math.Pow(rho/rho_l, Gamma)
		u = (1. - mu2) * ((-(X0 - x) / t) + s.CL)
	case x <= x3:
		rho, u, p = s.RhoMiddle, s.VPost, s.PPost
	case x <= x4:
		rho, u, p = s.RhoPost, s.VPost, s.PPost
	default:
		rho, u, p = rho_r, u_r, P_r
	}
	return
}

// SOD_calc tabulates the solution at time t on both sides of each wave, E
// is the specific internal energy
func SOD_calc(t float64) (X, Rho, P, U, E []float64) {
	var (
		s              = NewSod()
		x1, x2, x3, x4 = s.WavePositions(t)
		tol            = 0.00000001
	)
	X = []float64{
		0,
		x1 - tol, x1 + tol,
		x2 - tol, x2 + tol,
		x3 - tol, x3 + tol,
		x4 - tol, x4 + tol,
		1,
	}
	Rho = make([]float64, len(X))
	P = make([]float64, len(X))
	U = make([]float64, len(X))
	E = make([]float64, len(X))
	for i, x := range X {
		Rho[i], U[i], P[i] = s.Sample(x, t)
		E[i] = P[i] / ((Gamma - 1.) * Rho[i])
	}
	return
}

func fzero(f func(P float64) (y float64), start float64) float64 {
	var (
		tol = 0.0000001
		res float64
	)
	start_old := start / 2
	res = f(start_old)
	for math.Abs(res) > tol {
		resNew := f(start)
		deriv := (start - start_old) / (resNew - res)
		start_new := math.Abs(start - 0.01*f(start)/deriv)
		start_old = start
		start = start_new
		res = resNew
	}
	return start
}

func sod_func(P float64) (y float64) {
	var (
		gamma = Gamma
		mu    = math.Sqrt((gamma - 1) / (gamma + 1))
		mu2   = mu * mu
	)
	y = (P-P_r)*math.Sqrt((1-mu2)/(rho_r*(P+mu2*P_r))) - 2*(math.Sqrt(gamma)/(gamma-1))*(1-math.Pow(P, (gamma-1)/(2*gamma)))
	return
}
