package types

import (
	"fmt"
	"math"

	"github.com/kubev2v/qpcr-planner/internal/calculator"
)

// ErrNonFiniteVolume is returned by a renderer when a volume is infinite or NaN,
// which happens when an unvalidated recipe overflows float64.
type ErrNonFiniteVolume struct {
	error
	Field string
}

func NewErrNonFiniteVolume(field string) *ErrNonFiniteVolume {
	return &ErrNonFiniteVolume{
		error: fmt.Errorf("volume %s is out of range: the recipe volumes or reaction counts are too large", field),
		Field: field,
	}
}

// CheckVolumes returns an *ErrNonFiniteVolume naming the first volume of d that is not finite.
func (d *ReportData) CheckVolumes() error {
	for _, s := range d.Solutions {
		if field := nonFiniteVolume(s.WorkingSolution); field != "" {
			return NewErrNonFiniteVolume(fmt.Sprintf("workingSolutions[%s].%s", s.Target, field))
		}
	}
	if field := nonFiniteVolume(calculator.WorkingSolution(d.Result.MasterMix)); field != "" {
		return NewErrNonFiniteVolume("masterMix." + field)
	}
	if !finite(d.Result.TotalCDNAVolume) {
		return NewErrNonFiniteVolume("totalcDNAVolume")
	}
	return nil
}

// nonFiniteVolume returns the document name of the first non-finite volume of ws, or "".
func nonFiniteVolume(ws calculator.WorkingSolution) string {
	switch {
	case !finite(ws.Mix):
		return "mix"
	case !finite(ws.ForwardPrimer):
		return "forwardPrimer"
	case !finite(ws.ReversePrimer):
		return "reversePrimer"
	case !finite(ws.Water):
		return "water"
	case !finite(ws.TotalVolume):
		return "totalVolume"
	}
	return ""
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
