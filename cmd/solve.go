/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gofv/InputParameters"
	"github.com/notargets/gofv/solver"
)

type ModelFV struct {
	ICFile     string
	OutputFile string
	Profile    string // cpu or mem, empty for none
	Perf       bool   // Count CPU cycles of the solve
}

var exampleFile = `
########################################
Title: "Sod shock tube"
Equations: Euler
Mesh:
  Nx: 100
  Max: [1, 0.01, 0.01]
InitType: Sod
BCs:
  xmin: {Type: ZeroGradient}
  xmax: {Type: ZeroGradient}
  ymin: {Type: SlipWall}
  ymax: {Type: SlipWall}
  zmin: {Type: SlipWall}
  zmax: {Type: SlipWall}
FluxType: HLLC
Reconstruction: VK
Integrator: SSPRK2
Mode: explicit
CFL: 0.5
FinalTime: 0.2
########################################
`

// SolveCmd represents the solve command
var SolveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Finite volume solution of the case described by an input parameters file",
	Long:  `Finite volume solution of the case described by an input parameters file`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
			ip  *InputParameters.InputParametersFV
		)
		mfv := &ModelFV{}
		if mfv.ICFile, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
			panic(err)
		}
		mfv.OutputFile, _ = cmd.Flags().GetString("output")
		mfv.Profile, _ = cmd.Flags().GetString("profile")
		mfv.Perf, _ = cmd.Flags().GetBool("perf")
		if len(mfv.ICFile) == 0 {
			fmt.Printf("error: must supply an input parameters file (-I, --inputConditionsFile)\n")
			fmt.Printf("Example File:%s\n", exampleFile)
			os.Exit(1)
		}
		if ip, err = processInput(mfv); err != nil {
			panic(err)
		}
		switch mfv.Profile {
		case "cpu":
			defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
		case "mem":
			defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
		}
		if err = RunFV(mfv, ip, os.Stdout); err != nil {
			panic(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(SolveCmd)
	SolveCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- Equations\n\t- Mesh\n\t- FluxType\n\t- CFL")
	SolveCmd.Flags().StringP("output", "o", "", "CSV file for the final solution, overrides OutputFile")
	SolveCmd.Flags().String("profile", "", "write a pprof profile of the run: cpu or mem")
	SolveCmd.Flags().Bool("perf", false, "count CPU cycles of the solve with perf events (linux)")
}

func processInput(mfv *ModelFV) (ip *InputParameters.InputParametersFV, err error) {
	var data []byte
	if data, err = ioutil.ReadFile(mfv.ICFile); err != nil {
		return
	}
	ip = &InputParameters.InputParametersFV{}
	if err = ip.Parse(data); err != nil {
		return
	}
	// Site wide settings from the config file or environment, the input file wins
	if ip.ParallelDegree == 0 {
		ip.ParallelDegree = viper.GetInt("ParallelDegree")
	}
	if len(mfv.OutputFile) != 0 {
		ip.OutputFile = mfv.OutputFile
	}
	if dir := viper.GetString("OutputDir"); len(dir) != 0 && len(ip.OutputFile) != 0 && !filepath.IsAbs(ip.OutputFile) {
		ip.OutputFile = filepath.Join(dir, ip.OutputFile)
	}
	return
}

func RunFV(mfv *ModelFV, ip *InputParameters.InputParametersFV, out io.Writer) (err error) {
	var (
		s   *solver.Solver
		res *solver.Result
	)
	ip.Print(out)
	if s, err = solver.NewSolver(ip, out); err != nil {
		return
	}
	solve := func() (err error) {
		res, err = s.Solve()
		return
	}
	if mfv.Perf {
		var cycles uint64
		if cycles, err = measureCycles(solve); err != nil {
			return
		}
		fmt.Fprintf(out, "CPU cycles = %d, %8.3f per cell iteration\n",
			cycles, float64(cycles)/float64(s.Mesh.NumCells*max(res.Steps, 1)))
	} else if err = solve(); err != nil {
		return
	}
	if len(ip.OutputFile) != 0 {
		var f *os.File
		if f, err = os.Create(ip.OutputFile); err != nil {
			return
		}
		defer f.Close()
		if err = s.WriteSolution(f); err != nil {
			return
		}
		fmt.Fprintf(out, "Wrote solution to %s\n", ip.OutputFile)
	}
	return
}
