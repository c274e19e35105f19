package solver

import (
	"fmt"
	"io"
	"math"
	"runtime"
	"sort"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gofv/FV"
	"github.com/notargets/gofv/InputParameters"
	"github.com/notargets/gofv/bcs"
	"github.com/notargets/gofv/equations"
	"github.com/notargets/gofv/mesh"
	"github.com/notargets/gofv/timestepping"
	"github.com/notargets/gofv/types"
	"github.com/notargets/gofv/utils"
)

type SolveMode uint

const (
	MODE_Explicit SolveMode = iota // Time accurate to FinalTime
	MODE_Steady                    // Pseudo time to convergence
	MODE_DualTime                  // Real time steps, each converged in pseudo time
)

var (
	SolveModeNames = map[string]SolveMode{
		"explicit": MODE_Explicit,
		"unsteady": MODE_Explicit,
		"steady":   MODE_Steady,
		"dualtime": MODE_DualTime,
		"dual":     MODE_DualTime,
	}
	SolveModePrintNames = []string{"Explicit", "Steady", "Dual Time"}
)

func (sm SolveMode) Print() (txt string) {
	txt = SolveModePrintNames[sm]
	return
}

func NewSolveMode(label string) (sm SolveMode, err error) {
	var ok bool
	label = strings.ToLower(strings.NewReplacer(" ", "", "-", "", "_", "").Replace(label))
	if len(label) == 0 {
		return MODE_Explicit, nil
	}
	if sm, ok = SolveModeNames[label]; !ok {
		err = fmt.Errorf("unknown solve mode [%s]", label)
	}
	return
}

// Solver composes the strategy set named by the input parameters over one mesh
type Solver struct {
	IP         *InputParameters.InputParametersFV
	Out        io.Writer
	Mesh       *mesh.Mesh
	Eqn        equations.GoverningEquations
	FS         *equations.FreeStream
	P          *FV.Partitions
	SD         *FV.SpaceDiscretization
	TS         timestepping.TimeStep
	TD         *timestepping.TimeDiscretization
	Integrator timestepping.TimeIntegrator
	Conv       *timestepping.Convergence
	Norm       types.NormType
	Mode       SolveMode
	Case       InitType
	maxDt      float64
}

func NewSolver(ip *InputParameters.InputParametersFV, out io.Writer) (s *Solver, err error) {
	ip.SetDefaults()
	s = &Solver{IP: ip, Out: out}
	if s.Mode, err = NewSolveMode(ip.Mode); err != nil {
		return
	}
	if s.Case, err = NewInitType(ip.InitType); err != nil {
		return
	}
	if s.Norm, err = types.NewNormType(ip.Norm); err != nil {
		return
	}
	if err = s.newMesh(); err != nil {
		return
	}
	if err = s.newEquations(); err != nil {
		return
	}
	s.Mesh.AllocateVariables(s.Eqn.NumVars())
	pd := ip.ParallelDegree
	if pd <= 0 {
		pd = runtime.NumCPU()
	}
	s.P = FV.NewPartitions(s.Mesh, pd)
	if err = s.setBoundaryConditions(); err != nil {
		return
	}
	if err = s.newSpaceDiscretization(); err != nil {
		return
	}
	if err = s.InitializeSolution(); err != nil {
		return
	}
	if err = s.newTimeStepping(); err != nil {
		return
	}
	return
}

func (s *Solver) newMesh() (err error) {
	var (
		mp = s.IP.Mesh
		et mesh.ElementType
	)
	if et, err = mesh.NewElementType(mp.ElementType); err != nil {
		return
	}
	s.Mesh, err = mesh.NewCartesianMesh(mp.Nx, mp.Ny, mp.Nz,
		r3.Vec{X: mp.Min[0], Y: mp.Min[1], Z: mp.Min[2]},
		r3.Vec{X: mp.Max[0], Y: mp.Max[1], Z: mp.Max[2]}, et)
	return
}

func (s *Solver) newEquations() (err error) {
	var (
		ip = s.IP
		et equations.EquationType
	)
	if et, err = equations.NewEquationType(ip.Equations); err != nil {
		return
	}
	p := equations.Parameters{
		Velocity:     r3.Vec{X: ip.Velocity[0], Y: ip.Velocity[1], Z: ip.Velocity[2]},
		Diffusivity:  ip.Diffusivity,
		ReactionRate: ip.ReactionRate,
		Gamma:        ip.Gamma,
		Beta:         ip.Beta,
		Viscosity:    ip.Viscosity,
		NumGrains:    ip.NumGrains,
		Mobility:     ip.Mobility,
		Kappa:        ip.Kappa,
	}
	if s.Eqn, err = equations.NewEquations(et, p); err != nil {
		return
	}
	if e, ok := s.Eqn.(*equations.Euler); ok {
		s.FS = equations.NewFreeStream(ip.Minf, e.Gamma, ip.Alpha)
		e.FS = s.FS
	}
	return
}

// setBoundaryConditions binds each named boundary of the input file, values
// are given in primitive variables
func (s *Solver) setBoundaryConditions() (err error) {
	names := make([]string, 0, len(s.IP.BCs))
	for name := range s.IP.BCs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		var (
			bp     = s.IP.BCs[name]
			bcType types.BCFLAG
			bc     mesh.BoundaryCondition
			p      = bcs.Parameters{FreeStream: s.FS}
		)
		if bcType, err = types.NewBCFLAG(bp.Type); err != nil {
			return
		}
		if len(bp.Values) != 0 {
			if len(bp.Values) != s.Eqn.NumVars() {
				return fmt.Errorf("boundary [%s] needs %d values, have %d", name, s.Eqn.NumVars(), len(bp.Values))
			}
			p.Values = s.Eqn.ToConservative(bp.Values)
		}
		if bc, err = bcs.NewBoundaryCondition(bcType, s.Eqn, p); err != nil {
			return fmt.Errorf("boundary [%s]: %w", name, err)
		}
		if err = s.Mesh.SetBoundaryCondition(name, bc); err != nil {
			return
		}
	}
	return s.Mesh.CheckBoundaryConditions()
}

func (s *Solver) newSpaceDiscretization() (err error) {
	var (
		ip        = s.IP
		m         = s.Mesh
		gt        FV.GradientType
		residuals []FV.ResidualCalculator
		fi        *FV.FaceInterpolator
		nb        = FV.FaceNeighbors
	)
	if gt, err = FV.NewGradientType(ip.Gradient); err != nil {
		return
	}
	if strings.HasPrefix(strings.ToLower(ip.Neighborhood), "node") {
		nb = FV.NodeNeighbors
	}
	if s.Eqn.Diffusion() != nil || gt == FV.GRAD_GreenGauss {
		fi = FV.NewFaceInterpolator(m, s.P)
	}
	if conv := s.Eqn.Convection(); conv != nil {
		var (
			ft FV.FluxType
			rt FV.ReconstructionType
			rs FV.RiemannSolver
		)
		if ft, err = FV.NewFluxType(ip.FluxType); err != nil {
			return
		}
		if rs, err = FV.NewRiemannSolver(ft, s.Eqn); err != nil {
			return
		}
		if rt, err = FV.NewReconstructionType(ip.Reconstruction); err != nil {
			return
		}
		residuals = append(residuals, FV.NewConvective(m, s.P, FV.NewSolutionReconstructor(rt, m, s.P), rs))
	}
	if diff := s.Eqn.Diffusion(); diff != nil {
		residuals = append(residuals, FV.NewDiffusive(m, s.P, diff))
	}
	if src := s.Eqn.Source(); src != nil {
		residuals = append(residuals, FV.NewSource(s.P, src))
	}
	s.SD = FV.NewSpaceDiscretization(m, s.P, fi, FV.NewCellGradientCalculator(gt, m, s.P, nb), residuals...)
	return
}

func (s *Solver) newTimeStepping() (err error) {
	var (
		ip = s.IP
		tt timestepping.TimeStepType
		it timestepping.IntegratorType
	)
	if it, err = timestepping.NewIntegratorType(ip.Integrator); err != nil {
		return
	}
	if len(ip.TimeStep) == 0 && s.Mode != MODE_Explicit {
		tt = timestepping.TS_Local
	} else if tt, err = timestepping.NewTimeStepType(ip.TimeStep); err != nil {
		return
	}
	s.maxDt = ip.MaxDt
	switch s.Mode {
	case MODE_Explicit:
		if tt != timestepping.TS_Global {
			return fmt.Errorf("explicit time accurate solution needs a global time step")
		}
		if !(ip.FinalTime > 0) {
			return fmt.Errorf("explicit solution needs a positive FinalTime, have %g", ip.FinalTime)
		}
	case MODE_DualTime:
		if !(ip.RealDt > 0) {
			return fmt.Errorf("dual time solution needs a positive RealDt, have %g", ip.RealDt)
		}
		// Pseudo steps are held to half the real step
		if s.maxDt <= 0 || s.maxDt > 0.5*ip.RealDt {
			s.maxDt = 0.5 * ip.RealDt
		}
		s.TD = timestepping.NewTimeDiscretization(s.Mesh, s.P, ip.RealDt)
	}
	s.TS = timestepping.NewTimeStep(tt, ip.CFL, s.maxDt, s.Eqn, s.P)
	s.Integrator = timestepping.NewTimeIntegrator(it, s.SD, s.TS, s.TD)
	tol := ip.Tolerance
	if len(tol) == 0 {
		tol = utils.ConstArray(s.Eqn.NumVars(), 1.e-8)
	}
	if len(tol) != s.Eqn.NumVars() {
		return fmt.Errorf("need %d tolerances, have %d", s.Eqn.NumVars(), len(tol))
	}
	s.Conv = timestepping.NewConvergence(tol)
	return
}

// capTimeStep keeps the next explicit step from passing FinalTime
func (s *Solver) capTimeStep(time float64) {
	if !s.TS.Global() {
		return
	}
	remaining := s.IP.FinalTime - time
	if s.maxDt > 0 {
		remaining = math.Min(remaining, s.maxDt)
	}
	s.TS.SetMaxDt(remaining)
}

// nextRealStep shortens the real step that would pass FinalTime to land on it,
// with pseudo steps held to half of it
func (s *Solver) nextRealStep(time float64) (realTime float64) {
	dt := s.IP.RealDt
	if realTime = time + dt; realTime > s.IP.FinalTime || s.finished(realTime) {
		realTime = s.IP.FinalTime
		dt = realTime - time
	}
	s.TD.RealDt = dt
	s.TS.SetMaxDt(math.Min(s.maxDt, 0.5*dt))
	return
}
