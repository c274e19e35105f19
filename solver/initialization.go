package solver

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gofv/equations"
	"github.com/notargets/gofv/sod_shock_tube"
	"github.com/notargets/gofv/utils"
)

type InitType uint

const (
	INIT_FreeStream InitType = iota
	INIT_Sod
	INIT_Pulse
	INIT_Sine
	INIT_Grains
)

var (
	InitNames = map[string]InitType{
		"freestream": INIT_FreeStream,
		"sod":        INIT_Sod,
		"shocktube":  INIT_Sod,
		"pulse":      INIT_Pulse,
		"gaussian":   INIT_Pulse,
		"sine":       INIT_Sine,
		"grains":     INIT_Grains,
	}
	InitPrintNames = []string{"Freestream", "Sod Shock Tube", "Gaussian Pulse", "Sine Wave", "Random Grains"}
)

func (it InitType) Print() (txt string) {
	txt = InitPrintNames[it]
	return
}

func NewInitType(label string) (it InitType, err error) {
	var ok bool
	label = strings.ToLower(strings.NewReplacer(" ", "", "-", "", "_", "").Replace(label))
	if len(label) == 0 {
		return INIT_FreeStream, nil
	}
	if it, ok = InitNames[label]; !ok {
		err = fmt.Errorf("unknown initial condition [%s]", label)
	}
	return
}

func (s *Solver) InitializeSolution() (err error) {
	var (
		m        = s.Mesh
		mp       = s.IP.Mesh
		lo       = r3.Vec{X: mp.Min[0], Y: mp.Min[1], Z: mp.Min[2]}
		hi       = r3.Vec{X: mp.Max[0], Y: mp.Max[1], Z: mp.Max[2]}
		center   = r3.Scale(0.5, r3.Add(lo, hi))
		exact    *sod_shock_tube.Sod
		rng      *rand.Rand
		primFunc func(x r3.Vec) []float64
	)
	wrongEquations := func() error {
		return fmt.Errorf("initial condition %s does not apply to %s", s.Case.Print(), s.IP.Equations)
	}
	switch s.Case {
	case INIT_FreeStream:
		switch eqn := s.Eqn.(type) {
		case *equations.Euler:
			primFunc = func(x r3.Vec) []float64 { return eqn.ToPrimitive(s.FS.Qinf) }
		case *equations.ArtificialCompressibility:
			primFunc = func(x r3.Vec) []float64 {
				return []float64{0, s.IP.Velocity[0], s.IP.Velocity[1], s.IP.Velocity[2]}
			}
		default:
			primFunc = func(x r3.Vec) []float64 { return make([]float64, s.Eqn.NumVars()) }
		}
	case INIT_Sod:
		if _, ok := s.Eqn.(*equations.Euler); !ok {
			return wrongEquations()
		}
		exact = sod_shock_tube.NewSod()
		primFunc = func(x r3.Vec) []float64 {
			rho, u, p := exact.Sample((x.X-lo.X)/(hi.X-lo.X), 0)
			return []float64{rho, u, 0, 0, p}
		}
	case INIT_Pulse, INIT_Sine:
		if _, ok := s.Eqn.(*equations.ScalarAdvectionDiffusion); !ok {
			return wrongEquations()
		}
		Lx := hi.X - lo.X
		if s.Case == INIT_Pulse {
			sigma := 0.1 * Lx
			primFunc = func(x r3.Vec) []float64 {
				d := r3.Sub(x, center)
				return []float64{math.Exp(-r3.Norm2(d) / (2 * utils.POW(sigma, 2)))}
			}
		} else {
			primFunc = func(x r3.Vec) []float64 { return []float64{math.Sin(math.Pi * (x.X - lo.X) / Lx)} }
		}
	case INIT_Grains:
		if _, ok := s.Eqn.(*equations.PhaseField); !ok {
			return wrongEquations()
		}
		// Small fluctuations about zero, cells visited in arena order so a seed reproduces the field
		rng = rand.New(rand.NewSource(s.IP.Seed))
		primFunc = func(x r3.Vec) (eta []float64) {
			eta = make([]float64, s.Eqn.NumVars())
			for i := range eta {
				eta[i] = 0.002 * (rng.Float64() - 0.5)
			}
			return
		}
	default:
		return fmt.Errorf("unknown initial condition type %d", s.Case)
	}
	for c := range m.RealCells() {
		cell := &m.Cells[c]
		copy(cell.U, s.Eqn.ToConservative(primFunc(cell.Centroid)))
	}
	return
}
