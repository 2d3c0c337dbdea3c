package deco_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsegers/opendeco/pkg/deco"
)

func Test_SimulateDive_Reports_Each_Waypoint_As_Dive(t *testing.T) {
	t.Parallel()

	cfg := deco.DefaultConfig()
	st := newState(t, cfg, 30, 75)
	ean32 := mustGas(t, 32, 0)

	waypoints := []deco.Waypoint{
		{Depth: abs(30), Time: 3.333, Gas: ean32},
		{Depth: abs(30), Time: 20, Gas: ean32},
		{Depth: abs(20), Time: 2, Gas: ean32},
		{Depth: abs(20), Time: 10, Gas: ean32},
	}

	var rec deco.Recorder

	require.NoError(t, st.SimulateDive(waypoints, &rec))
	require.Len(t, rec.Events, len(waypoints))

	for i, e := range rec.Events {
		assert.Equal(t, deco.KindDive, e.Kind)
		assert.Equal(t, waypoints[i], e.Waypoint)
	}

	assert.InDelta(t, abs(30), st.MaxDepth(), floatTol)
}

func Test_SimulateDive_Matches_Manual_Segments(t *testing.T) {
	t.Parallel()

	cfg := deco.DefaultConfig()
	sim := newState(t, cfg, 30, 75)
	manual := sim.Clone()
	air := mustGas(t, 21, 0)

	require.NoError(t, sim.SimulateDive([]deco.Waypoint{
		{Depth: abs(25), Time: 3, Gas: air},
		{Depth: abs(25), Time: 15, Gas: air},
	}, nil))

	_, err := manual.AddSegmentAscDec(cfg.SurfacePressure, abs(25), 3, air)
	require.NoError(t, err)
	_, err = manual.AddSegmentConst(abs(25), 15, air)
	require.NoError(t, err)

	want, _ := manual.Tissues()
	got, _ := sim.Tissues()
	assert.Equal(t, want, got)
}

func Test_SimulateDive_Returns_ErrInvalidDuration_When_Waypoint_Has_No_Time(t *testing.T) {
	t.Parallel()

	st := newState(t, deco.DefaultConfig(), 30, 75)

	err := st.SimulateDive([]deco.Waypoint{{Depth: abs(10), Time: 0, Gas: mustGas(t, 21, 0)}}, nil)
	require.ErrorIs(t, err, deco.ErrInvalidDuration)
}

func Test_Sink_Receives_Copy_Of_State(t *testing.T) {
	t.Parallel()

	st := newState(t, deco.DefaultConfig(), 30, 75)
	air := mustGas(t, 21, 0)

	var seen []float64

	sink := deco.SinkFunc(func(s deco.State, _ deco.Waypoint, _ deco.Kind) {
		seen = append(seen, s.MaxDepth())
		_, _ = s.AddSegmentConst(abs(60), 60, air)
	})

	require.NoError(t, st.SimulateDive([]deco.Waypoint{
		{Depth: abs(10), Time: 2, Gas: air},
		{Depth: abs(10), Time: 5, Gas: air},
	}, sink))

	assert.Equal(t, []float64{abs(10), abs(10)}, seen)
	assert.InDelta(t, abs(10), st.MaxDepth(), floatTol)
}

func Test_Kind_String_Names_Every_Kind(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "dive", deco.KindDive.String())
	assert.Equal(t, "gas_switch", deco.KindGasSwitch.String())
	assert.Equal(t, "surface", deco.KindSurfaced.String())
	assert.Equal(t, "unknown", deco.Kind(42).String())
}
