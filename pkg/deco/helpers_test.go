package deco_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tsegers/opendeco/pkg/deco"
)

const floatTol = 1e-9

func abs(msw float64) float64 {
	return deco.DefaultConfig().AbsDepth(deco.MSWToBar(msw))
}

func mustGas(t *testing.T, o2, he int) deco.Gas {
	t.Helper()

	g, err := deco.NewGas(o2, he, deco.ModAuto)
	require.NoError(t, err)

	return g
}

func newState(t *testing.T, cfg deco.Config, lo, hi int) *deco.State {
	t.Helper()

	st, err := deco.NewState(cfg, lo, hi, deco.MSWToBar(3))
	require.NoError(t, err)

	return st
}

// square descends at 9 m/min and spends the rest of runtime at the bottom.
func square(t *testing.T, st *deco.State, msw, runtime float64, gas deco.Gas) {
	t.Helper()

	descent := msw / 9

	err := st.SimulateDive([]deco.Waypoint{
		{Depth: abs(msw), Time: descent, Gas: gas},
		{Depth: abs(msw), Time: runtime - descent, Gas: gas},
	}, nil)
	require.NoError(t, err)
}
