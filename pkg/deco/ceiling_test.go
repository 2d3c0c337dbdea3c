package deco

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testState(t *testing.T, cfg Config, lo, hi int) *State {
	t.Helper()

	st, err := NewState(cfg, lo, hi, MSWToBar(3))
	require.NoError(t, err)

	return st
}

func Test_RoundCeiling_Rounds_Up_To_Next_Stop(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	st := testState(t, cfg, 30, 70)

	tests := []struct {
		name    string
		ceiling float64
		want    float64
	}{
		{name: "between stops", ceiling: cfg.AbsDepth(MSWToBar(4)), want: cfg.AbsDepth(MSWToBar(6))},
		{name: "exact stop", ceiling: cfg.AbsDepth(MSWToBar(6)), want: cfg.AbsDepth(MSWToBar(6))},
		{name: "float noise above stop", ceiling: cfg.AbsDepth(MSWToBar(6)) + 1e-9, want: cfg.AbsDepth(MSWToBar(6))},
		{name: "mod of ean50", ceiling: 3.2, want: cfg.AbsDepth(MSWToBar(24))},
		{name: "surface", ceiling: cfg.SurfacePressure, want: cfg.SurfacePressure},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.InDelta(t, tt.want, st.RoundCeiling(tt.ceiling), 1e-9)
		})
	}
}

func Test_RoundCeiling_Skips_Three_Metres_When_LastStopAtSix(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.LastStopAtSix = true
	st := testState(t, cfg, 30, 70)

	assert.InDelta(t, cfg.AbsDepth(MSWToBar(6)), st.RoundCeiling(cfg.AbsDepth(MSWToBar(1))), 1e-9)
	assert.InDelta(t, cfg.AbsDepth(MSWToBar(9)), st.RoundCeiling(cfg.AbsDepth(MSWToBar(7))), 1e-9)
	assert.InDelta(t, MSWToBar(6), st.lastStop(), 1e-9)
}

func Test_RoundCeiling_Panics_When_Increment_Zero(t *testing.T) {
	t.Parallel()

	var st State

	assert.Panics(t, func() { st.RoundCeiling(2.0) })
}

func Test_Ceiling_Is_Above_Surface_When_Saturated_At_Surface(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	st := testState(t, cfg, 30, 70)

	assert.LessOrEqual(t, cfg.GaugeDepth(st.Ceiling(30)), 0.0)
	assert.LessOrEqual(t, cfg.GaugeDepth(st.Ceiling(100)), 0.0)
	assert.InDelta(t, 0.0, st.GF99(cfg.SurfacePressure), 1e-9)
}

func Test_Ceiling_Deepens_When_Gradient_Factor_Lowers(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	st := testState(t, cfg, 30, 70)
	air, err := NewGas(21, 0, ModAuto)
	require.NoError(t, err)

	_, err = st.AddSegmentConst(cfg.AbsDepth(MSWToBar(40)), 40, air)
	require.NoError(t, err)

	assert.Greater(t, st.RawCeiling(30), st.RawCeiling(70))
	assert.Greater(t, st.RawCeiling(70), st.RawCeiling(100))
	assert.Greater(t, st.GF99(cfg.SurfacePressure), 100.0)
}

func Test_GF_Returns_Low_Factor_When_First_Stop_Unknown(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	st := testState(t, cfg, 30, 70)

	assert.InDelta(t, 30.0, st.GF(cfg.AbsDepth(MSWToBar(3))), 1e-9)
	assert.InDelta(t, 30.0, st.GF(cfg.AbsDepth(MSWToBar(30))), 1e-9)
}

func Test_GF_Interpolates_Between_First_And_Last_Stop(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	st := testState(t, cfg, 30, 70)
	st.firstStop = FirstStop{Status: FirstStopFixed, Depth: cfg.AbsDepth(MSWToBar(15))}

	tests := []struct {
		msw  float64
		want float64
	}{
		{msw: 21, want: 30},
		{msw: 15, want: 30},
		{msw: 9, want: 50},
		{msw: 3, want: 70},
		{msw: 0, want: 70},
	}

	for _, tt := range tests {
		tt := tt
		assert.InDelta(t, tt.want, st.GF(cfg.AbsDepth(MSWToBar(tt.msw))), 1e-9, "at %v m", tt.msw)
	}
}

func Test_GF_Uses_High_Factor_From_Six_Metres_When_LastStopAtSix(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.LastStopAtSix = true
	st := testState(t, cfg, 30, 70)
	st.firstStop = FirstStop{Status: FirstStopFixed, Depth: cfg.AbsDepth(MSWToBar(15))}

	assert.InDelta(t, 70.0, st.GF(cfg.AbsDepth(MSWToBar(6))), 1e-9)
}
