package types

import (
	"fmt"
	"math"
	"strings"
)

type BCFLAG uint8

const (
	BC_None BCFLAG = iota
	BC_FixedValue
	BC_ZeroGradient
	BC_SlipWall
	BC_Farfield
)

var BCNameMap = map[string]BCFLAG{
	"fixed":        BC_FixedValue,
	"fixedvalue":   BC_FixedValue,
	"dirichlet":    BC_FixedValue,
	"inflow":       BC_FixedValue,
	"in":           BC_FixedValue,
	"zerogradient": BC_ZeroGradient,
	"neuman":       BC_ZeroGradient,
	"neumann":      BC_ZeroGradient,
	"outflow":      BC_ZeroGradient,
	"out":          BC_ZeroGradient,
	"wall":         BC_SlipWall,
	"slip":         BC_SlipWall,
	"slipwall":     BC_SlipWall,
	"far":          BC_Farfield,
	"farfield":     BC_Farfield,
}

func (bc BCFLAG) String() string {
	return [...]string{"None", "FixedValue", "ZeroGradient", "SlipWall", "Farfield"}[bc]
}

func NewBCFLAG(label string) (bc BCFLAG, err error) {
	var ok bool
	if bc, ok = BCNameMap[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("unknown boundary condition type [%s]", label)
	}
	return
}

// NormType selects how per-cell residuals are reduced to one value per variable
type NormType uint8

const (
	L1 NormType = iota
	L2
	LInf
)

var NormNames = map[string]NormType{
	"l1":   L1,
	"l2":   L2,
	"linf": LInf,
	"max":  LInf,
}

func (nt NormType) String() string {
	return [...]string{"L1", "L2", "LInf"}[nt]
}

// Order is the L argument gonum floats.Norm expects for this norm
func (nt NormType) Order() float64 {
	switch nt {
	case L1:
		return 1
	case L2:
		return 2
	default:
		return math.Inf(1)
	}
}

func NewNormType(label string) (nt NormType, err error) {
	var ok bool
	if len(label) == 0 {
		return L2, nil
	}
	if nt, ok = NormNames[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("unknown residual norm [%s]", label)
	}
	return
}
