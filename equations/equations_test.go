package equations

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestEuler(t *testing.T) {
	var (
		eqn = NewEuler(1.4)
		n   = r3.Unit(r3.Vec{X: 1, Y: 2, Z: -2})
	)
	{ // Primitive and conservative forms agree
		W := []float64{1.2, 0.3, -0.4, 0.5, 2.5}
		U := eqn.ToConservative(W)
		assert.InDelta(t, 2.5, eqn.Pressure(U), 1.e-14)
		Wb := eqn.ToPrimitive(U)
		for i := range W {
			assert.InDelta(t, W[i], Wb[i], 1.e-14)
		}
		assert.InDelta(t, math.Sqrt(1.4*2.5/1.2), eqn.SoundSpeed(U), 1.e-14)
		assert.InDelta(t, (U[4]+2.5)/1.2, eqn.Enthalpy(U), 1.e-14)
		assert.InDelta(t, 0.5, eqn.GetFlowFunction(U, ZVelocity), 1.e-14)
	}
	{ // A gas at rest only transmits pressure
		U := eqn.ToConservative([]float64{1, 0, 0, 0, 1})
		F := eqn.Convection().Flux(U, n)
		assert.Equal(t, 0., F[0])
		assert.InDelta(t, n.X, F[1], 1.e-15)
		assert.InDelta(t, n.Y, F[2], 1.e-15)
		assert.InDelta(t, n.Z, F[3], 1.e-15)
		assert.Equal(t, 0., F[4])
	}
	{ // Eigenvalues are sorted and bounded by the max
		U := eqn.ToConservative([]float64{1, 2, 0.5, -1, 1})
		ev := eqn.Convection().SortedEigenvalues(U, n)
		assert.Equal(t, 5, len(ev))
		for i := 1; i < len(ev); i++ {
			assert.True(t, ev[i-1] <= ev[i])
		}
		maxEV := eqn.Convection().MaxAbsEigenvalue(U, n)
		assert.InDelta(t, math.Max(math.Abs(ev[0]), math.Abs(ev[4])), maxEV, 1.e-14)
		assert.Nil(t, eqn.Diffusion())
		assert.Nil(t, eqn.Source())
	}
	{ // Non physical states have NaN wave speeds, flow functions stay finite
		for _, W := range [][]float64{{1, 0.5, 0, 0, -0.5}, {-1, 0, 0, 0, 1}} {
			U := eqn.ToConservative(W)
			ev := eqn.Convection().SortedEigenvalues(U, n)
			assert.True(t, math.IsNaN(ev[0]))
			assert.True(t, math.IsNaN(ev[4]))
			assert.False(t, math.IsNaN(ev[2]))
			assert.True(t, math.IsNaN(eqn.Convection().MaxAbsEigenvalue(U, n)))
			assert.False(t, math.IsNaN(eqn.SoundSpeed(U)))
		}
	}
	{
		fs := NewFreeStream(0.5, 1.4, 0)
		assert.InDelta(t, 1., fs.Cinf, 1.e-14)
		assert.InDelta(t, 1./1.4, fs.Pinf, 1.e-14)
		assert.InDelta(t, 0.125, fs.QQinf, 1.e-14)
		eqn.FS = fs
		assert.InDelta(t, 0., eqn.GetFlowFunction(fs.Qinf, PressureCoefficient), 1.e-14)
		assert.InDelta(t, 0.5, eqn.GetFlowFunction(fs.Qinf, Mach), 1.e-14)
		assert.Equal(t, "Static Pressure", StaticPressure.String())
	}
}

func TestScalarAdvectionDiffusion(t *testing.T) {
	{ // Only the configured terms are present
		eqn := NewScalarAdvectionDiffusion(r3.Vec{X: 1}, 0, 0)
		assert.NotNil(t, eqn.Convection())
		assert.Nil(t, eqn.Diffusion())
		assert.Nil(t, eqn.Source())
		eqn = NewScalarAdvectionDiffusion(r3.Vec{}, 0.1, 2)
		assert.Nil(t, eqn.Convection())
		require.NotNil(t, eqn.Diffusion())
		require.NotNil(t, eqn.Source())
		f := eqn.Diffusion().Flux([]float64{3}, []r3.Vec{{X: 2, Y: 1}}, r3.Vec{X: 1})
		assert.InDelta(t, 0.2, f[0], 1.e-15)
		assert.Equal(t, 0.1, eqn.Diffusion().MaxAbsDiffusivity(nil))
		assert.Equal(t, -6., eqn.Source().Term([]float64{3}, nil)[0])
	}
	{
		eqn := NewScalarAdvectionDiffusion(r3.Vec{X: -2, Y: 1}, 0, 0)
		c := eqn.Convection()
		n := r3.Vec{X: 1}
		assert.Equal(t, []float64{-6}, c.Flux([]float64{3}, n))
		assert.Equal(t, []float64{-2}, c.SortedEigenvalues([]float64{3}, n))
		assert.Equal(t, 2., c.MaxAbsEigenvalue([]float64{3}, n))
	}
}

func TestArtificialCompressibility(t *testing.T) {
	eqn := NewArtificialCompressibility(4, 0)
	assert.Nil(t, eqn.Diffusion())
	U := []float64{1, 0, 0, 0}
	n := r3.Vec{Z: 1}
	ev := eqn.Convection().SortedEigenvalues(U, n)
	assert.Equal(t, []float64{-2, 0, 0, 2}, ev)
	assert.Equal(t, 2., eqn.Convection().MaxAbsEigenvalue(U, n))
	assert.Equal(t, []float64{0, 0, 0, 1}, eqn.Convection().Flux(U, n))
	eqn = NewArtificialCompressibility(4, 0.01)
	require.NotNil(t, eqn.Diffusion())
	f := eqn.Diffusion().Flux(U, []r3.Vec{{X: 5}, {X: 1}, {}, {}}, r3.Vec{X: 1})
	assert.Equal(t, []float64{0, 0.01, 0, 0}, f)
}

func TestPhaseField(t *testing.T) {
	eqn, err := NewPhaseField(2, 0, 0.5, 0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, eqn.NumVars())
	assert.Equal(t, []string{"eta0", "eta1"}, eqn.VariableNames())
	assert.Nil(t, eqn.Convection())
	{ // Single grain states are equilibria of the bulk energy
		S := eqn.Source().Term([]float64{1, 0}, nil)
		assert.InDelta(t, 0., S[0], 1.e-15)
		assert.InDelta(t, 0., S[1], 1.e-15)
		S = eqn.Source().Term([]float64{0, -1}, nil)
		assert.InDelta(t, 0., S[1], 1.e-15)
	}
	{ // Overlapping grains are driven apart
		S := eqn.Source().Term([]float64{0.5, 0.5}, nil)
		// -(-0.5 + 0.125 + 2*0.5*0.25)
		assert.InDelta(t, 0.125, S[0], 1.e-15)
		assert.Equal(t, S[0], S[1])
	}
	assert.Equal(t, 0.5, eqn.Diffusion().MaxAbsDiffusivity(nil))
	_, err = NewPhaseField(0, 1, 1, 1, 1, 1)
	assert.Error(t, err)
}

func TestNewEquations(t *testing.T) {
	for label, want := range map[string]EquationType{
		"Euler":                      EQN_Euler,
		"scalar":                     EQN_ScalarAdvectionDiffusion,
		"artificial_compressibility": EQN_ArtificialCompressibility,
		"Phase Field":                EQN_PhaseField,
	} {
		et, err := NewEquationType(label)
		require.NoError(t, err)
		assert.Equal(t, want, et)
	}
	_, err := NewEquationType("maxwell")
	assert.True(t, errors.Is(err, ErrUnknownEquations))
	eqn, err := NewEquations(EQN_Euler, Parameters{})
	require.NoError(t, err)
	assert.Equal(t, 1.4, eqn.(*Euler).Gamma)
	_, err = NewEquations(EQN_ArtificialCompressibility, Parameters{})
	assert.Error(t, err)
	_, err = NewEquations(EQN_PhaseField, Parameters{})
	assert.Error(t, err)
	eqn, err = NewEquations(EQN_PhaseField, Parameters{NumGrains: 3, Kappa: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, eqn.NumVars())
	assert.Equal(t, "Euler", EQN_Euler.Print())
}
