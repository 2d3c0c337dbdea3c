package plan

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/tsegers/opendeco/pkg/deco"
)

// NDLRow is one line of a no-decompression table.
type NDLRow struct {
	Depth     float64 // metres
	NDL       float64 // minutes at the bottom after the descent
	Capped    bool
	PPO2      float64
	BeyondMOD bool
}

// NDLTable lists the no-decompression limit of gas for every depth from
// `from` to `to` metres in `step` increments, each for a fresh diver
// descending at DescentRate.
func (p *Planner) NDLTable(gas deco.Gas, gfLow, gfHigh int, from, to, step float64) ([]NDLRow, error) {
	if !(from > 0) || !(step > 0) || to < from {
		return nil, fmt.Errorf("%w: depth range %v-%v step %v", ErrInvalidDive, from, to, step)
	}

	var rows []NDLRow

	for msw := from; msw <= to+1e-9; msw += step {
		st, err := deco.NewState(p.cfg, gfLow, gfHigh, deco.MSWToBar(StopIncrement))
		if err != nil {
			return nil, err
		}

		depth := p.cfg.AbsDepth(deco.MSWToBar(msw))

		if _, err := st.AddSegmentAscDec(p.cfg.SurfacePressure, depth, msw/DescentRate, gas); err != nil {
			return nil, err
		}

		ndl, err := st.CalcNDL(depth, p.cfg.AscentRate, gas)

		capped := errors.Is(err, deco.ErrNDLBound)
		if err != nil && !capped {
			return nil, err
		}

		rows = append(rows, NDLRow{
			Depth:     msw,
			NDL:       ndl,
			Capped:    capped,
			PPO2:      deco.PPO2(depth, gas),
			BeyondMOD: depth-gas.MOD() >= p.cfg.DepthTolerance,
		})
	}

	p.logger.Debug("ndl table computed", slog.String("gas", gas.String()), slog.Int("rows", len(rows)))

	return rows, nil
}
