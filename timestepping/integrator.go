package timestepping

import (
	"fmt"
	"strings"

	"github.com/notargets/gofv/FV"
	"github.com/notargets/gofv/mesh"
)

// TimeIntegrator advances every real cell by its own Cell.Dt
type TimeIntegrator interface {
	Step(time float64) error
}

type IntegratorType uint

const (
	TI_ExplicitEuler IntegratorType = iota
	TI_SSPRK2
)

var (
	IntegratorNames = map[string]IntegratorType{
		"euler":         TI_ExplicitEuler,
		"expliciteuler": TI_ExplicitEuler,
		"forwardeuler":  TI_ExplicitEuler,
		"ssprk2":        TI_SSPRK2,
		"rk2":           TI_SSPRK2,
		"heun":          TI_SSPRK2,
	}
	IntegratorPrintNames = []string{"Explicit Euler", "SSP Runge Kutta 2"}
)

func (it IntegratorType) Print() (txt string) {
	txt = IntegratorPrintNames[it]
	return
}

func NewIntegratorType(label string) (it IntegratorType, err error) {
	var ok bool
	label = strings.ToLower(strings.NewReplacer(" ", "", "-", "", "_", "").Replace(label))
	if len(label) == 0 {
		return TI_ExplicitEuler, nil
	}
	if it, ok = IntegratorNames[label]; !ok {
		err = fmt.Errorf("unknown time integrator [%s]", label)
	}
	return
}

// NewTimeIntegrator composes an integrator, td is nil outside of dual time stepping
func NewTimeIntegrator(it IntegratorType, sd *FV.SpaceDiscretization, ts TimeStep,
	td *TimeDiscretization) (ti TimeIntegrator) {
	switch it {
	case TI_SSPRK2:
		ti = NewSSPRK2(sd, ts, td)
	default:
		ti = &ExplicitEuler{SD: sd, TS: ts, TD: td}
	}
	return
}

// residual evaluates R(U) at time, plus the real time term when dual time stepping
func residual(sd *FV.SpaceDiscretization, td *TimeDiscretization, time float64) (err error) {
	if err = sd.Evaluate(time); err != nil {
		return
	}
	if td != nil {
		td.AddPseudoSource(sd.Mesh)
	}
	return
}

// ExplicitEuler is U = U + dt/V R(U)
type ExplicitEuler struct {
	SD *FV.SpaceDiscretization
	TS TimeStep
	TD *TimeDiscretization
}

func (ee *ExplicitEuler) Step(time float64) (err error) {
	m := ee.SD.Mesh
	if err = ee.TS.Compute(m); err != nil {
		return
	}
	if err = residual(ee.SD, ee.TD, time); err != nil {
		return
	}
	ee.SD.P.Cells.ParallelFor(func(np, kMin, kMax int) {
		for c := kMin; c < kMax; c++ {
			cell := &m.Cells[c]
			fac := cell.Dt / cell.Volume
			for v := range cell.U {
				cell.U[v] += fac * cell.Residual[v]
			}
		}
	})
	return
}

/*
SSPRK2 is the two stage strong stability preserving Runge Kutta (Heun) method

	U1 = U0 + dt/V R(U0)
	U  = 0.5 U0 + 0.5 (U1 + dt/V R(U1))

dt is computed once from U0 and held for both stages. The residual left in
Cell.Residual is R(U0), the same one explicit Euler reports. The second stage
time only advances with a global step outside of dual time, where the real time
is frozen across pseudo iterations.
*/
type SSPRK2 struct {
	SD *FV.SpaceDiscretization
	TS TimeStep
	TD *TimeDiscretization
	U0 [][]float64
	R0 [][]float64
}

func NewSSPRK2(sd *FV.SpaceDiscretization, ts TimeStep, td *TimeDiscretization) (rk *SSPRK2) {
	m := sd.Mesh
	rk = &SSPRK2{SD: sd, TS: ts, TD: td,
		U0: make([][]float64, m.NumCells),
		R0: make([][]float64, m.NumCells),
	}
	for c := range rk.U0 {
		rk.U0[c] = make([]float64, m.NumVars)
		rk.R0[c] = make([]float64, m.NumVars)
	}
	return
}

func (rk *SSPRK2) Step(time float64) (err error) {
	var (
		m = rk.SD.Mesh
		p = rk.SD.P
	)
	if err = rk.TS.Compute(m); err != nil {
		return
	}
	if err = residual(rk.SD, rk.TD, time); err != nil {
		return
	}
	p.Cells.ParallelFor(func(np, kMin, kMax int) {
		for c := kMin; c < kMax; c++ {
			cell := &m.Cells[c]
			fac := cell.Dt / cell.Volume
			copy(rk.U0[c], cell.U)
			copy(rk.R0[c], cell.Residual)
			for v := range cell.U {
				cell.U[v] += fac * cell.Residual[v]
			}
		}
	})
	stageTime := time
	if rk.TS.Global() && rk.TD == nil && m.NumCells > 0 {
		stageTime += m.Cells[0].Dt
	}
	if err = residual(rk.SD, rk.TD, stageTime); err != nil {
		return
	}
	p.Cells.ParallelFor(func(np, kMin, kMax int) {
		for c := kMin; c < kMax; c++ {
			cell := &m.Cells[c]
			fac := cell.Dt / cell.Volume
			for v := range cell.U {
				cell.U[v] = 0.5*rk.U0[c][v] + 0.5*(cell.U[v]+fac*cell.Residual[v])
			}
			copy(cell.Residual, rk.R0[c])
		}
	})
	return
}

// CurrentDt is the shared increment of a global time step, the smallest
// local increment otherwise
func CurrentDt(m *mesh.Mesh) (dt float64) {
	for c, cell := range m.RealCells() {
		if c == 0 || cell.Dt < dt {
			dt = cell.Dt
		}
	}
	return
}
