package InputParameters

import (
	"fmt"
	"io"
	"sort"

	"github.com/ghodss/yaml"
)

type MeshParameters struct {
	Nx          int        `json:"Nx"`
	Ny          int        `json:"Ny"`
	Nz          int        `json:"Nz"`
	Min         [3]float64 `json:"Min"`
	Max         [3]float64 `json:"Max"`
	ElementType string     `json:"ElementType"` // Hex or Tet
}

type BCParameters struct {
	Type   string    `json:"Type"`
	Values []float64 `json:"Values"` // Primitive variables for FixedValue
}

// Parameters obtained from the YAML input file. ghodss/yaml converts YAML
// to JSON before decoding, so field tags are json tags.
type InputParametersFV struct {
	Title          string                  `json:"Title"`
	Equations      string                  `json:"Equations"`
	Mesh           MeshParameters          `json:"Mesh"`
	InitType       string                  `json:"InitType"`
	BCs            map[string]BCParameters `json:"BCs"` // Keyed by boundary name
	FluxType       string                  `json:"FluxType"`
	Reconstruction string                  `json:"Reconstruction"`
	Gradient       string                  `json:"Gradient"`
	Neighborhood   string                  `json:"Neighborhood"`
	Integrator     string                  `json:"Integrator"`
	TimeStep       string                  `json:"TimeStep"`
	Mode           string                  `json:"Mode"` // explicit, steady or dualtime
	CFL            float64                 `json:"CFL"`
	MaxDt          float64                 `json:"MaxDt"`
	FinalTime      float64                 `json:"FinalTime"`
	RealDt         float64                 `json:"RealDt"`
	MaxIterations  int                     `json:"MaxIterations"`
	InnerIters     int                     `json:"InnerIterations"`
	Tolerance      []float64               `json:"Tolerance"`
	Norm           string                  `json:"Norm"`
	ParallelDegree int                     `json:"ParallelDegree"`
	PrintEvery     int                     `json:"PrintEvery"`
	OutputFile     string                  `json:"OutputFile"`
	// Physics
	Gamma        float64    `json:"Gamma"`
	Minf         float64    `json:"Minf"`
	Alpha        float64    `json:"Alpha"`
	Velocity     [3]float64 `json:"Velocity"`
	Diffusivity  float64    `json:"Diffusivity"`
	ReactionRate float64    `json:"ReactionRate"`
	Beta         float64    `json:"Beta"`
	Viscosity    float64    `json:"Viscosity"`
	NumGrains    int        `json:"NumGrains"`
	Mobility     float64    `json:"Mobility"`
	Kappa        float64    `json:"Kappa"`
	Seed         int64      `json:"Seed"`
}

func (ip *InputParametersFV) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, ip); err != nil {
		return
	}
	ip.SetDefaults()
	return
}

// SetDefaults fills unset values, Parse applies it
func (ip *InputParametersFV) SetDefaults() {
	if ip.Mesh.Nx == 0 {
		ip.Mesh.Nx = 1
	}
	if ip.Mesh.Ny == 0 {
		ip.Mesh.Ny = 1
	}
	if ip.Mesh.Nz == 0 {
		ip.Mesh.Nz = 1
	}
	if ip.Mesh.Max == [3]float64{} {
		ip.Mesh.Max = [3]float64{1, 1, 1}
	}
	if ip.CFL == 0 {
		ip.CFL = 0.5
	}
	if ip.MaxIterations <= 0 {
		ip.MaxIterations = 5000
	}
	if ip.InnerIters <= 0 {
		ip.InnerIters = 100
	}
	if ip.PrintEvery <= 0 {
		ip.PrintEvery = 100
	}
}

func (ip *InputParametersFV) Print(w io.Writer) {
	fmt.Fprintf(w, "\"%s\"\t\t= Title\n", ip.Title)
	fmt.Fprintf(w, "[%s]\t\t= Equations\n", ip.Equations)
	fmt.Fprintf(w, "[%dx%dx%d %s]\t= Mesh\n", ip.Mesh.Nx, ip.Mesh.Ny, ip.Mesh.Nz, ip.Mesh.ElementType)
	fmt.Fprintf(w, "[%s]\t\t= InitType\n", ip.InitType)
	fmt.Fprintf(w, "[%s]\t\t= Mode\n", ip.Mode)
	fmt.Fprintf(w, "%8.5f\t\t= CFL\n", ip.CFL)
	fmt.Fprintf(w, "%8.5f\t\t= FinalTime\n", ip.FinalTime)
	fmt.Fprintf(w, "[%s]\t\t\t= Flux Type\n", ip.FluxType)
	fmt.Fprintf(w, "[%s]\t\t\t= Reconstruction\n", ip.Reconstruction)
	fmt.Fprintf(w, "[%s]\t\t\t= Integrator\n", ip.Integrator)
	fmt.Fprintf(w, "[%d]\t\t\t= Max Iterations\n", ip.MaxIterations)
	keys := make([]string, len(ip.BCs))
	i := 0
	for k := range ip.BCs {
		keys[i] = k
		i++
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(w, "BCs[%s] = %v\n", key, ip.BCs[key])
	}
}
