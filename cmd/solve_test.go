package cmd

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunFV(t *testing.T) {
	var (
		err error
		dir = t.TempDir()
	)
	fileInput := []byte(`
Title: Advected pulse
Equations: Scalar
Velocity: [1, 0, 0]
Mesh:
  Nx: 20
  Max: [1, 0.05, 0.05]
InitType: Pulse
BCs:
  xmin: {Type: Fixed, Values: [0]}
  xmax: {Type: Outflow}
  ymin: {Type: ZeroGradient}
  ymax: {Type: ZeroGradient}
  zmin: {Type: ZeroGradient}
  zmax: {Type: ZeroGradient}
FluxType: Rusanov
Reconstruction: VK
Integrator: SSPRK2
Mode: explicit
CFL: 0.5
FinalTime: 0.1
ParallelDegree: 2
PrintEvery: 5
`)
	icFile := filepath.Join(dir, "pulse.yaml")
	require.NoError(t, os.WriteFile(icFile, fileInput, 0644))
	mfv := &ModelFV{ICFile: icFile, OutputFile: filepath.Join(dir, "pulse.csv")}
	ip, err := processInput(mfv)
	require.NoError(t, err)
	assert.Equal(t, mfv.OutputFile, ip.OutputFile)
	assert.Equal(t, 20, ip.Mesh.Nx)

	var out bytes.Buffer
	require.NoError(t, RunFV(mfv, ip, &out))
	assert.True(t, strings.Contains(out.String(), "Advected pulse"))
	assert.True(t, strings.Contains(out.String(), "Rate of execution"))

	f, err := os.Open(mfv.OutputFile)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, 21, len(rows))
	assert.Equal(t, []string{"x", "y", "z", "U"}, rows[0])
	{ // Missing or malformed input files are errors, not panics
		_, err = processInput(&ModelFV{ICFile: filepath.Join(dir, "missing.yaml")})
		assert.Error(t, err)
		bad := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(bad, []byte("CFL: [1, 2\n"), 0644))
		_, err = processInput(&ModelFV{ICFile: bad})
		assert.Error(t, err)
	}
	{ // Relative output files land in the configured output directory
		viper.Set("OutputDir", dir)
		defer viper.Set("OutputDir", "")
		ip2, err := processInput(&ModelFV{ICFile: icFile, OutputFile: "relative.csv"})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "relative.csv"), ip2.OutputFile)
		viper.Set("ParallelDegree", 3)
		defer viper.Set("ParallelDegree", 0)
		ip2, err = processInput(&ModelFV{ICFile: icFile})
		require.NoError(t, err)
		assert.Equal(t, 2, ip2.ParallelDegree)
	}
	{ // Solver construction errors surface through RunFV
		ip.Equations = "Plasma"
		assert.Error(t, RunFV(&ModelFV{}, ip, &out))
	}
}
