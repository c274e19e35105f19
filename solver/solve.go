package solver

import (
	"errors"
	"fmt"
	"time"

	"github.com/notargets/gofv/timestepping"
	"github.com/notargets/gofv/utils"
)

var ErrDiverged = errors.New("residual is not finite")

type Result struct {
	Steps     int
	Time      float64
	Converged bool
	History   [][]float64 // Residual norm per variable after each step
	Elapsed   time.Duration
}

func (s *Solver) Solve() (res *Result, err error) {
	var (
		start = time.Now()
	)
	res = &Result{}
	s.PrintInitialization()
	switch s.Mode {
	case MODE_Explicit:
		err = s.solveExplicit(res)
	case MODE_Steady:
		err = s.solveSteady(res)
	case MODE_DualTime:
		err = s.solveDualTime(res)
	}
	res.Elapsed = time.Since(start)
	if err != nil {
		err = fmt.Errorf("step %d, time %g: %w", res.Steps, res.Time, err)
		return
	}
	s.PrintFinal(res)
	return
}

func (s *Solver) finished(time float64) bool {
	return time >= s.IP.FinalTime || utils.Near(s.IP.FinalTime, time, 1.e-12)
}

func (s *Solver) solveExplicit(res *Result) (err error) {
	for !s.finished(res.Time) && res.Steps < s.IP.MaxIterations {
		s.capTimeStep(res.Time)
		if err = s.Integrator.Step(res.Time); err != nil {
			return
		}
		dt := timestepping.CurrentDt(s.Mesh)
		res.Time += dt
		res.Steps++
		if _, err = s.record(res, dt); err != nil {
			return
		}
	}
	res.Converged = s.finished(res.Time)
	return
}

func (s *Solver) solveSteady(res *Result) (err error) {
	for res.Steps < s.IP.MaxIterations {
		if err = s.Integrator.Step(0); err != nil {
			return
		}
		res.Steps++
		var total []float64
		if total, err = s.record(res, timestepping.CurrentDt(s.Mesh)); err != nil {
			return
		}
		if s.Conv.HasConverged(total) {
			res.Converged = true
			break
		}
	}
	return
}

// solveDualTime converges each real step in pseudo time and then shifts the
// history. The result is converged when every real step was.
func (s *Solver) solveDualTime(res *Result) (err error) {
	res.Converged = true
	for !s.finished(res.Time) && res.Steps < s.IP.MaxIterations {
		var (
			realTime  = s.nextRealStep(res.Time)
			converged bool
			total     []float64
		)
		for iter := 0; iter < s.IP.InnerIters; iter++ {
			if err = s.Integrator.Step(realTime); err != nil {
				return
			}
			if total = TotalResidual(s); utils.IsNan(total) {
				return fmt.Errorf("%w: %v", ErrDiverged, total)
			}
			if converged = s.Conv.HasConverged(total); converged {
				break
			}
		}
		res.Converged = res.Converged && converged
		s.TD.ShiftSolution(s.Mesh)
		res.Time = realTime
		res.Steps++
		res.History = append(res.History, total)
		if res.Steps%s.IP.PrintEvery == 0 {
			s.PrintUpdate(res.Steps, res.Time, s.TD.RealDt, total)
		}
	}
	return
}

func TotalResidual(s *Solver) []float64 {
	return timestepping.TotalResidual(s.Mesh, s.Norm)
}

func (s *Solver) record(res *Result, dt float64) (total []float64, err error) {
	total = TotalResidual(s)
	res.History = append(res.History, total)
	if res.Steps%s.IP.PrintEvery == 0 {
		s.PrintUpdate(res.Steps, res.Time, dt, total)
	}
	if utils.IsNan(total) {
		err = fmt.Errorf("%w: %v", ErrDiverged, total)
	}
	return
}

func (s *Solver) PrintInitialization() {
	var (
		m = s.Mesh
		w = s.Out
	)
	fmt.Fprintf(w, "%s\n", s.IP.Title)
	m.PrintStatistics(w)
	fmt.Fprintf(w, "Using %d go routines in parallel, %s BLAS\n", s.P.ParallelDegree, utils.BLASImplementation)
	fmt.Fprintf(w, "Solving %s, %s\n", s.Case.Print(), s.Mode.Print())
	if s.FS != nil && s.Case == INIT_FreeStream {
		fmt.Fprintf(w, "Mach Infinity = %8.5f, Angle of Attack = %8.5f\n", s.FS.Minf, s.FS.Alpha)
	}
	fmt.Fprintf(w, "CFL = %8.4f, Num Cells = %d, Residual norm = %s\n\n", s.IP.CFL, m.NumCells, s.Norm)
	switch s.Mode {
	case MODE_Explicit:
		fmt.Fprintf(w, "Solving until finaltime = %8.5f\n", s.IP.FinalTime)
	case MODE_Steady:
		fmt.Fprintf(w, "Solving until Max Iterations = %d\n", s.IP.MaxIterations)
	case MODE_DualTime:
		fmt.Fprintf(w, "Solving until finaltime = %8.5f in real steps of %8.5f\n", s.IP.FinalTime, s.IP.RealDt)
	}
	fmt.Fprintf(w, "    iter    time  min_dt")
	for _, name := range s.Eqn.VariableNames() {
		fmt.Fprintf(w, "%11s", "Res_"+name)
	}
	fmt.Fprintf(w, "\n")
}

func (s *Solver) PrintUpdate(steps int, time, dt float64, total []float64) {
	format := "%11.4e"
	fmt.Fprintf(s.Out, "%8d%8.5f%8.5f", steps, time, dt)
	for _, r := range total {
		fmt.Fprintf(s.Out, format, r)
	}
	fmt.Fprintf(s.Out, "\n")
}

func (s *Solver) PrintFinal(res *Result) {
	var rate float64
	if res.Steps > 0 {
		rate = float64(res.Elapsed.Microseconds()) / float64(s.Mesh.NumCells*res.Steps)
	}
	fmt.Fprintf(s.Out, "\nRate of execution = %8.5f us/(cell*iteration) over %d iterations\n", rate, res.Steps)
	if s.Mode != MODE_Explicit {
		fmt.Fprintf(s.Out, "Converged = %v\n", res.Converged)
	}
	fmt.Fprintf(s.Out, "%s\n", utils.GetMemUsage())
}
