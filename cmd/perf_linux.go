//go:build linux

package cmd

import (
	"fmt"

	perf "github.com/hodgesds/perf-utils"
)

// measureCycles runs f under a CPU cycle counter. When perf events are not
// available (no permission, virtualized host) f still runs once, uncounted.
func measureCycles(f func() error) (cycles uint64, err error) {
	var (
		ran      bool
		solveErr error
		pv       *perf.ProfileValue
	)
	pv, err = perf.CPUCycles(func() error {
		ran = true
		solveErr = f()
		return nil
	})
	if solveErr != nil {
		return 0, solveErr
	}
	if err != nil {
		if ran {
			return 0, fmt.Errorf("reading cpu cycles: %w", err)
		}
		fmt.Printf("perf events unavailable: %s\n", err.Error())
		return 0, f()
	}
	cycles = pv.Value
	return
}
