package timestepping

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/notargets/gofv/FV"
	"github.com/notargets/gofv/equations"
	"github.com/notargets/gofv/mesh"
)

var (
	ErrUnboundedTimeStep = errors.New("no wave speed, diffusivity or maximum time step bounds the time step")
	ErrNonPhysicalState  = errors.New("wave speed is not finite")
)

// TimeStep sets Cell.Dt for every real cell
type TimeStep interface {
	Compute(m *mesh.Mesh) error
	// Global is true when every cell shares one time increment so that a
	// stage time of time + dt is meaningful
	Global() bool
	// SetMaxDt replaces the cap on every cell increment, zero removes it
	SetMaxDt(maxDt float64)
}

type TimeStepType uint

const (
	TS_Global TimeStepType = iota
	TS_Local
)

var (
	TimeStepNames = map[string]TimeStepType{
		"global": TS_Global,
		"local":  TS_Local,
	}
	TimeStepPrintNames = []string{"Global", "Local"}
)

func (tt TimeStepType) Print() (txt string) {
	txt = TimeStepPrintNames[tt]
	return
}

func NewTimeStepType(label string) (tt TimeStepType, err error) {
	var ok bool
	label = strings.ToLower(strings.TrimSpace(label))
	if len(label) == 0 {
		return TS_Global, nil
	}
	if tt, ok = TimeStepNames[label]; !ok {
		err = fmt.Errorf("unknown time step type [%s]", label)
	}
	return
}

// CFLCondition evaluates dt = CFL / (λ/h + 2κ/h²) per cell, with h the cell
// volume over its largest face area, λ the largest wave speed over the cell's
// face normals and κ the diffusivity. A positive MaxDt caps the result.
type CFLCondition struct {
	CFL   float64
	MaxDt float64
	Eqn   equations.GoverningEquations
	P     *FV.Partitions
}

func (cc *CFLCondition) CellTimeStep(m *mesh.Mesh, c int) (dt float64, err error) {
	var (
		cell         = &m.Cells[c]
		maxArea, lam float64
		kappa        float64
		conv         = cc.Eqn.Convection()
		diff         = cc.Eqn.Diffusion()
	)
	for _, f := range cell.Faces {
		face := &m.Faces[f]
		maxArea = math.Max(maxArea, face.Area)
		if conv != nil {
			lam = math.Max(lam, conv.MaxAbsEigenvalue(cell.U, face.Normal))
		}
	}
	if diff != nil {
		kappa = diff.MaxAbsDiffusivity(cell.U)
	}
	h := cell.Volume / maxArea
	denom := lam/h + 2*kappa/(h*h)
	switch {
	case math.IsNaN(denom):
		err = fmt.Errorf("%w: cell %d", ErrNonPhysicalState, c)
	case denom > 0:
		dt = cc.CFL / denom
		if cc.MaxDt > 0 {
			dt = math.Min(dt, cc.MaxDt)
		}
	case cc.MaxDt > 0:
		dt = cc.MaxDt
	default:
		err = fmt.Errorf("%w: cell %d", ErrUnboundedTimeStep, c)
	}
	return
}

func (cc *CFLCondition) SetMaxDt(maxDt float64) { cc.MaxDt = maxDt }

func (cc *CFLCondition) computeLocal(m *mesh.Mesh) (err error) {
	err = cc.P.Cells.ParallelForErr(func(np, kMin, kMax int) (err error) {
		for c := kMin; c < kMax; c++ {
			if m.Cells[c].Dt, err = cc.CellTimeStep(m, c); err != nil {
				return
			}
		}
		return
	})
	return
}

type LocalTimeStep struct {
	CFLCondition
}

func (ts *LocalTimeStep) Compute(m *mesh.Mesh) error { return ts.computeLocal(m) }

func (ts *LocalTimeStep) Global() bool { return false }

type GlobalTimeStep struct {
	CFLCondition
}

func (ts *GlobalTimeStep) Compute(m *mesh.Mesh) (err error) {
	if err = ts.computeLocal(m); err != nil {
		return
	}
	dtMin := math.MaxFloat64
	for _, cell := range m.RealCells() {
		dtMin = math.Min(dtMin, cell.Dt)
	}
	ts.P.Cells.ParallelFor(func(np, kMin, kMax int) {
		for c := kMin; c < kMax; c++ {
			m.Cells[c].Dt = dtMin
		}
	})
	return
}

func (ts *GlobalTimeStep) Global() bool { return true }

func NewTimeStep(tt TimeStepType, cfl, maxDt float64, eqn equations.GoverningEquations,
	p *FV.Partitions) (ts TimeStep) {
	cc := CFLCondition{CFL: cfl, MaxDt: maxDt, Eqn: eqn, P: p}
	switch tt {
	case TS_Local:
		ts = &LocalTimeStep{cc}
	default:
		ts = &GlobalTimeStep{cc}
	}
	return
}
