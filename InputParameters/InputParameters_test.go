package InputParameters

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputParameters(t *testing.T) {
	{ // Test parsing a complete input file
		input := `
Title: "Sod shock tube"
Equations: Euler
Mesh:
  Nx: 50
  Max: [1, 0.02, 0.02]
  ElementType: Hex
InitType: Sod
BCs:
  xmin:
    Type: ZeroGradient
  xmax:
    Type: Fixed
    Values: [0.125, 0, 0, 0, 0.1]
FluxType: HLLC
Reconstruction: VK
CFL: 0.4
FinalTime: 0.2
Tolerance: [1.e-8, 1.e-8]
`
		var ip InputParametersFV
		require.NoError(t, ip.Parse([]byte(input)))
		assert.Equal(t, "Sod shock tube", ip.Title)
		assert.Equal(t, 50, ip.Mesh.Nx)
		assert.Equal(t, 1, ip.Mesh.Ny)
		assert.Equal(t, [3]float64{1, 0.02, 0.02}, ip.Mesh.Max)
		assert.Equal(t, "Hex", ip.Mesh.ElementType)
		assert.Equal(t, "ZeroGradient", ip.BCs["xmin"].Type)
		assert.Equal(t, []float64{0.125, 0, 0, 0, 0.1}, ip.BCs["xmax"].Values)
		assert.Equal(t, 0.4, ip.CFL)
		assert.Equal(t, []float64{1.e-8, 1.e-8}, ip.Tolerance)
		assert.Equal(t, 5000, ip.MaxIterations)

		var buf bytes.Buffer
		ip.Print(&buf)
		out := buf.String()
		assert.True(t, strings.Contains(out, "\"Sod shock tube\""))
		// BCs print in sorted order
		assert.True(t, strings.Index(out, "BCs[xmax]") < strings.Index(out, "BCs[xmin]"))
	}
	{ // Defaults
		var ip InputParametersFV
		require.NoError(t, ip.Parse([]byte("Title: empty\n")))
		assert.Equal(t, [3]float64{1, 1, 1}, ip.Mesh.Max)
		assert.Equal(t, 0.5, ip.CFL)
		assert.Equal(t, 100, ip.InnerIters)
	}
	{
		var ip InputParametersFV
		assert.Error(t, ip.Parse([]byte("CFL: [1, 2\n")))
	}
}
